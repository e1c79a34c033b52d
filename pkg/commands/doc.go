// Package commands groups the command implementations behind the CLI.
//
// Each subpackage exposes an Options struct and a Run function returning a
// types.Report. Run only returns an error for conditions that stop the whole
// invocation (unparseable input, invalid configuration). Per-target
// failures are recorded in the report and never abort the remaining
// targets; a prefix matching nothing yields a report with NoMatch set.
package commands
