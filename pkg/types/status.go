package types

// Status is the outcome of a single patch operation on a target
type Status string

const (
	// StatusApplied indicates the target was rewritten
	StatusApplied Status = "applied"

	// StatusSkipped indicates nothing was written; see SkipReason
	StatusSkipped Status = "skipped"

	// StatusWouldChange indicates a dry run found the target needs rewriting
	StatusWouldChange Status = "would change"

	// StatusRestored indicates the target was restored from its backup
	StatusRestored Status = "restored"

	// StatusRemoved indicates an injected block was stripped from the target
	StatusRemoved Status = "removed"

	// StatusFailed indicates the operation failed; see Result.Err
	StatusFailed Status = "failed"
)

// SkipReason explains a StatusSkipped result
type SkipReason string

const (
	SkipNone           SkipReason = ""
	SkipAlreadyApplied SkipReason = "already applied"
	SkipTargetMissing  SkipReason = "target missing"
	SkipNoBackup       SkipReason = "no backup"
	SkipNoBlock        SkipReason = "no injected block"
)

// Result describes what happened to one target file
type Result struct {
	// Target is the path of the patched file
	Target string

	// Status is the outcome
	Status Status

	// Reason is set when Status is StatusSkipped
	Reason SkipReason

	// BackupPath is the sibling backup location for Target
	BackupPath string

	// BackupCreated reports whether this operation created the backup
	BackupCreated bool

	// Err is the failure cause when Status is StatusFailed
	Err error

	// RollbackAttempted reports whether a restore was tried after Err
	RollbackAttempted bool

	// RestoreErr is set when the rollback itself failed
	RestoreErr error
}

// Restored reports whether a failed operation left the target restored
func (r *Result) Restored() bool {
	return r.RollbackAttempted && r.RestoreErr == nil
}

// Changed reports whether the target content was modified and kept
func (r *Result) Changed() bool {
	switch r.Status {
	case StatusApplied, StatusRestored, StatusRemoved:
		return true
	}
	return false
}
