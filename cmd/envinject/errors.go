package envinject

import (
	"fmt"

	"github.com/arthur-debert/envinject/pkg/errors"
	"github.com/arthur-debert/envinject/pkg/output"
	"github.com/spf13/cobra"
)

// PrintError writes a fatal error on the command's standard output, next to
// the per-target diagnostics. Usage mistakes come from cobra itself and are
// followed by the usage text on stderr.
func PrintError(cmd *cobra.Command, err error) {
	w := cmd.OutOrStdout()
	r := output.NewRenderer(w, false)
	fmt.Fprintln(w, r.Style("Error", fmt.Sprintf("Error: %v", err)))

	if errors.GetErrorCode(err) == errors.ErrUnknown {
		fmt.Fprintln(cmd.ErrOrStderr())
		_ = cmd.Usage()
	}
}
