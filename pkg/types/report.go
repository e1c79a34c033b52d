package types

// TargetReport is the outcome for one discovered target
type TargetReport struct {
	Target Target

	// Result is set by commands that modify targets
	Result *Result

	// State is set by the status command
	State TargetState

	// Err is set when the target could not be inspected
	Err error
}

// Report collects per-target outcomes of one command invocation
type Report struct {
	// Command is the command name, e.g. "apply"
	Command string

	// Extension is the name prefix used for discovery
	Extension string

	// ParentDir is the directory searched for installations
	ParentDir string

	// DryRun is true when nothing was written
	DryRun bool

	// NoMatch is true when no installation matched Extension
	NoMatch bool

	// Vars are the variable names injected, in order
	Vars []string

	Targets []TargetReport
}

// Count returns how many targets ended with status
func (r *Report) Count(status Status) int {
	n := 0
	for _, t := range r.Targets {
		if t.Result != nil && t.Result.Status == status {
			n++
		}
	}
	return n
}

// HasFailures reports whether any target failed
func (r *Report) HasFailures() bool {
	for _, t := range r.Targets {
		if t.Err != nil || (t.Result != nil && t.Result.Status == StatusFailed) {
			return true
		}
	}
	return false
}
