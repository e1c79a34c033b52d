// Package injection renders, finds and replaces the marker-delimited block
// of environment assignments that envinject places at the top of a bundled
// extension script.
//
// Everything here is a pure function of its inputs: the package never
// touches the filesystem. The patcher package layers backup, write and
// rollback on top of Plan.
//
// A rendered block looks like:
//
//	// --- My Env Injector Start ---
//	process.env.FOO = 'bar';
//	// --- My Env Injector End ---
//
// Apply is idempotent because Plan is a fixed point: stripping the block,
// normalizing the surrounding blank lines and reinserting the block yields
// the same bytes when run over its own output.
package injection
