package output

import (
	"github.com/arthur-debert/envinject/pkg/types"
)

// Report prints the per-target outcome of an apply, restore or remove run
func (r *Renderer) Report(rep *types.Report) {
	if rep.NoMatch {
		r.noMatch(rep)
		return
	}

	for _, t := range rep.Targets {
		r.Line("Muted", "Found extension directory:", "%s", r.Style("Path", t.Target.Dir))
		if t.Result == nil {
			continue
		}
		r.result(rep.Command, t.Result)
	}

	if rep.DryRun {
		r.Line("Warning", "Dry run:", "no files were changed")
	}
}

// Status prints the injection state of every target
func (r *Renderer) Status(rep *types.Report) {
	if rep.NoMatch {
		r.noMatch(rep)
		return
	}

	for _, t := range rep.Targets {
		if t.Err != nil {
			r.Line("Error", "error", "%s: %v", r.Style("Path", t.Target.Path), t.Err)
			continue
		}
		r.Line(stateStyle(t.State), padState(t.State), "%s", r.Style("Path", t.Target.Path))
	}
}

func (r *Renderer) noMatch(rep *types.Report) {
	r.Line("Warning", "No extension found,", "with base name: %s in: %s", rep.Extension, r.Style("Path", rep.ParentDir))
}

func (r *Renderer) result(command string, res *types.Result) {
	path := r.Style("Path", res.Target)

	switch res.Status {
	case types.StatusApplied:
		if res.BackupCreated {
			r.Line("Muted", "Backup created:", "%s", r.Style("Path", res.BackupPath))
		}
		r.Line("Success", "Successfully injected", "env vars into %s", path)
	case types.StatusRemoved:
		r.Line("Success", "Removed", "env block from %s", path)
	case types.StatusRestored:
		r.Line("Success", "Restored from backup:", "%s", r.Style("Path", res.BackupPath))
	case types.StatusWouldChange:
		r.Line("Warning", "Would "+verb(command)+":", "%s", path)
	case types.StatusSkipped:
		r.skipped(res, path)
	case types.StatusFailed:
		r.Line("Error", "Error modifying", "%s: %v", path, res.Err)
		if res.Restored() {
			r.Line("Muted", "Restored", "%s to its previous content", path)
		}
	}
}

func (r *Renderer) skipped(res *types.Result, path string) {
	switch res.Reason {
	case types.SkipAlreadyApplied:
		r.Line("Skipped", "Up to date:", "env vars already injected in %s", path)
	case types.SkipTargetMissing:
		r.Line("Warning", "Not found:", "%s", path)
	case types.SkipNoBackup:
		r.Line("Skipped", "Backup file not found:", "%s", r.Style("Path", res.BackupPath))
	case types.SkipNoBlock:
		r.Line("Skipped", "Nothing to remove:", "no env block in %s", path)
	default:
		r.Line("Skipped", "Skipped", "%s", path)
	}
}

func verb(command string) string {
	switch command {
	case "restore":
		return "restore"
	case "remove":
		return "remove block from"
	}
	return "inject into"
}

func stateStyle(s types.TargetState) string {
	switch s {
	case types.TargetStateInjected:
		return "Success"
	case types.TargetStateStale:
		return "Warning"
	case types.TargetStateMissing:
		return "Error"
	}
	return "Skipped"
}

// padState aligns state labels in a column
func padState(s types.TargetState) string {
	const width = len("not injected")
	out := string(s)
	for len(out) < width {
		out += " "
	}
	return out
}
