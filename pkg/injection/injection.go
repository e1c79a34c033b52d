package injection

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/envinject/pkg/errors"
	"github.com/arthur-debert/envinject/pkg/types"
)

// Default marker lines
const (
	DefaultStartMarker = "// --- My Env Injector Start ---"
	DefaultEndMarker   = "// --- My Env Injector End ---"
)

// Markers are the literal sentinel lines bounding an injected block
type Markers struct {
	Start string
	End   string
}

// DefaultMarkers returns the built-in marker pair
func DefaultMarkers() Markers {
	return Markers{Start: DefaultStartMarker, End: DefaultEndMarker}
}

// Validate checks that both markers are usable as single-line sentinels
func (m Markers) Validate() error {
	if strings.TrimSpace(m.Start) == "" || strings.TrimSpace(m.End) == "" {
		return errors.New(errors.ErrInvalidInput, "start and end markers must not be empty")
	}
	if m.Start == m.End {
		return errors.Newf(errors.ErrInvalidInput, "start and end markers must differ: %q", m.Start)
	}
	if strings.ContainsAny(m.Start+m.End, "\r\n") {
		return errors.New(errors.ErrInvalidInput, "markers must be single lines")
	}
	return nil
}

// Injector renders and locates blocks for one marker pair
type Injector struct {
	markers Markers
	pattern *regexp.Regexp
}

// New creates an Injector for the given markers
func New(markers Markers) (*Injector, error) {
	if err := markers.Validate(); err != nil {
		return nil, err
	}
	pattern := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(markers.Start) + `.*?` + regexp.QuoteMeta(markers.End))
	return &Injector{markers: markers, pattern: pattern}, nil
}

// Default returns an Injector using DefaultMarkers
func Default() *Injector {
	inj, err := New(DefaultMarkers())
	if err != nil {
		panic(fmt.Sprintf("default markers invalid: %v", err))
	}
	return inj
}

// Markers returns the marker pair in use
func (i *Injector) Markers() Markers {
	return i.markers
}

// Render returns the block for spec, terminated by a newline after the end marker
func (i *Injector) Render(spec *types.InjectionSpec) string {
	var b strings.Builder
	b.WriteString(i.markers.Start)
	b.WriteByte('\n')
	for _, v := range spec.Vars() {
		fmt.Fprintf(&b, "process.env.%s = '%s';\n", v.Name, Escape(v.Value))
	}
	b.WriteString(i.markers.End)
	b.WriteByte('\n')
	return b.String()
}

// Strip removes every marker-delimited span from content and reports how many were removed.
// A start marker without a matching end marker is left in place.
func (i *Injector) Strip(content string) (string, int) {
	n := len(i.pattern.FindAllStringIndex(content, -1))
	if n == 0 {
		return content, 0
	}
	return i.pattern.ReplaceAllLiteralString(content, ""), n
}

// Plan computes the content that applying spec to content would produce.
// changed is false when content is already exactly that result.
func (i *Injector) Plan(content string, spec *types.InjectionSpec) (string, bool) {
	stripped, _ := i.Strip(content)
	planned := i.Render(spec) + "\n" + Normalize(stripped)
	return planned, planned != content
}

// Unplan computes content with any block removed and the body normalized.
// changed is false when no block was present.
func (i *Injector) Unplan(content string) (string, bool) {
	stripped, n := i.Strip(content)
	if n == 0 {
		return content, false
	}
	return Normalize(stripped), true
}

// Inspect reports the injection state of content. With a nil spec any
// single well-formed block counts as injected.
func (i *Injector) Inspect(content string, spec *types.InjectionSpec) types.TargetState {
	blocks := i.pattern.FindAllString(content, -1)
	switch {
	case len(blocks) == 0:
		return types.TargetStateNotInjected
	case len(blocks) > 1:
		return types.TargetStateStale
	case spec == nil:
		return types.TargetStateInjected
	}
	if blocks[0]+"\n" != i.Render(spec) {
		return types.TargetStateStale
	}
	return types.TargetStateInjected
}

// Lines extracts the assignment lines of the first block in content
func (i *Injector) Lines(content string) []string {
	block := i.pattern.FindString(content)
	if block == "" {
		return nil
	}
	inner := strings.TrimPrefix(block, i.markers.Start)
	inner = strings.TrimSuffix(inner, i.markers.End)

	var lines []string
	for _, line := range strings.Split(inner, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ValidName reports whether name can follow `process.env.` as a plain JS identifier
func ValidName(name string) bool {
	return identPattern.MatchString(name)
}

// ValidateSpec rejects a spec containing a name that is not a JS identifier.
// Such a name could carry quotes or marker lines into the rendered block.
func ValidateSpec(spec *types.InjectionSpec) error {
	for _, name := range spec.Names() {
		if !ValidName(name) {
			return errors.Newf(errors.ErrInvalidInput, "invalid env var name %q", name).
				WithDetail("name", name)
		}
	}
	return nil
}

var jsStringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// Escape makes value safe to place between single quotes in a JS string literal
func Escape(value string) string {
	return jsStringEscaper.Replace(value)
}

// Normalize drops leading blank lines and collapses trailing blank lines to a
// single trailing newline. Content with no non-blank lines normalizes to "".
func Normalize(content string) string {
	for {
		idx := strings.IndexByte(content, '\n')
		if idx < 0 {
			if strings.TrimSpace(content) == "" {
				return ""
			}
			break
		}
		if strings.TrimSpace(content[:idx]) != "" {
			break
		}
		content = content[idx+1:]
	}

	for {
		trimmed := strings.TrimRight(content, "\r\n")
		idx := strings.LastIndexByte(trimmed, '\n')
		if strings.TrimSpace(trimmed[idx+1:]) != "" {
			return trimmed + "\n"
		}
		if idx < 0 {
			return ""
		}
		content = trimmed[:idx]
	}
}
