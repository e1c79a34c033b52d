// Package output renders envinject's diagnostics to the terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/envinject/pkg/logging"
	"github.com/arthur-debert/envinject/pkg/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Renderer writes styled lines to a writer
type Renderer struct {
	writer  io.Writer
	noColor bool
	styles  map[string]lipgloss.Style
}

// NewRenderer creates a Renderer for w. Color is used only when noColor is
// false and ShouldUseColor(w) agrees.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	log := logging.GetLogger("output.Renderer")

	noColor = noColor || !ShouldUseColor(w)
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	log.Debug().
		Bool("noColor", noColor).
		Str("TERM", os.Getenv("TERM")).
		Msg("Creating renderer")

	return &Renderer{
		writer:  w,
		noColor: noColor,
		styles:  styles.Build(r),
	}
}

// ShouldUseColor reports whether w is a color-capable terminal and NO_COLOR is unset
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).EnvColorProfile() != termenv.Ascii
}

// NoColor reports whether output is plain text
func (r *Renderer) NoColor() bool {
	return r.noColor
}

// Style renders text with the named style; unknown names render plain text
func (r *Renderer) Style(name, text string) string {
	if style, ok := r.styles[name]; ok {
		return style.Render(text)
	}
	return text
}

// Printf writes a formatted, unstyled string
func (r *Renderer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(r.writer, format, args...)
}

// Line writes label in the named style followed by the formatted message and a newline
func (r *Renderer) Line(style, label, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if label == "" {
		fmt.Fprintln(r.writer, msg)
		return
	}
	fmt.Fprintf(r.writer, "%s %s\n", r.Style(style, label), msg)
}
