package types

// Target is a candidate file found under an extension installation
type Target struct {
	// Dir is the matched installation directory
	Dir string

	// Path is the bundled script to patch inside Dir
	Path string

	// Missing is true when Path does not exist as a regular file
	Missing bool
}

// TargetState is the injection state of a target as reported by status
type TargetState string

const (
	TargetStateInjected    TargetState = "injected"
	TargetStateStale       TargetState = "stale"
	TargetStateNotInjected TargetState = "not injected"
	TargetStateMissing     TargetState = "not found"
)
