// Package varspec parses the variables to inject from JSON or YAML while
// keeping the order in which they were written.
package varspec

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/envinject/pkg/errors"
	"github.com/arthur-debert/envinject/pkg/injection"
	"github.com/arthur-debert/envinject/pkg/logging"
	"github.com/arthur-debert/envinject/pkg/types"
	"gopkg.in/yaml.v3"
)

// ParseJSON parses a JSON object of variable names to values.
// Names must be JS identifiers. String values are used verbatim, numbers
// and booleans keep their literal text; null, arrays and objects are rejected. A repeated name keeps its
// first position and its last value.
func ParseJSON(data []byte) (*types.InjectionSpec, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInputParse, "invalid JSON")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New(errors.ErrInputParse, "env vars must be a JSON object")
	}

	spec := &types.InjectionSpec{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInputParse, "invalid JSON")
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.Newf(errors.ErrInputParse, "unexpected token %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInputParse, "invalid value for %q", key)
		}
		if !injection.ValidName(key) {
			return nil, invalidName(key)
		}
		value, err := jsonScalar(key, raw)
		if err != nil {
			return nil, err
		}
		spec.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInputParse, "invalid JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrInputParse, "unexpected data after JSON object")
	}

	return spec, nil
}

func jsonScalar(key string, raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", errors.Newf(errors.ErrInputParse, "missing value for %q", key)
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", errors.Wrapf(err, errors.ErrInputParse, "invalid string for %q", key)
		}
		return s, nil
	case 'n':
		return "", errors.Newf(errors.ErrInputParse, "value for %q must not be null", key)
	case '{', '[':
		return "", errors.Newf(errors.ErrInputParse, "value for %q must be a string, got %s", key, kindOf(trimmed[0]))
	default:
		// numbers and booleans
		return string(trimmed), nil
	}
}

func invalidName(name string) error {
	return errors.Newf(errors.ErrInputParse, "invalid env var name %q: must be a JS identifier", name).
		WithDetail("name", name)
}

func kindOf(b byte) string {
	if b == '{' {
		return "object"
	}
	return "array"
}

// ParseYAML parses a YAML mapping of variable names to scalar values in document order
func ParseYAML(data []byte) (*types.InjectionSpec, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrInputParse, "invalid YAML")
	}

	spec := &types.InjectionSpec{}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return spec, nil
	}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrInputParse, "env vars must be a YAML mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := resolve(root.Content[i])
		valueNode := resolve(root.Content[i+1])

		if keyNode.Kind != yaml.ScalarNode {
			return nil, errors.Newf(errors.ErrInputParse, "line %d: keys must be scalars", keyNode.Line)
		}
		if !injection.ValidName(keyNode.Value) {
			return nil, invalidName(keyNode.Value)
		}
		if valueNode.Kind != yaml.ScalarNode || valueNode.Tag == "!!null" {
			return nil, errors.Newf(errors.ErrInputParse, "line %d: value for %q must be a scalar", valueNode.Line, keyNode.Value)
		}
		spec.Set(keyNode.Value, valueNode.Value)
	}

	return spec, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// ParseFile reads a vars file, choosing the parser by extension.
// Files ending in .yaml or .yml are YAML, everything else is JSON.
func ParseFile(fsys types.FS, path string) (*types.InjectionSpec, error) {
	logger := logging.GetLogger("varspec")

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInputParse, "cannot read vars file %s", path)
	}

	var spec *types.InjectionSpec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		spec, err = ParseYAML(data)
	default:
		spec, err = ParseJSON(data)
	}
	if err != nil {
		if e, ok := err.(*errors.EnvinjectError); ok {
			e.WithDetail("file", path)
		}
		return nil, err
	}

	logger.Debug().
		Str("file", path).
		Strs("vars", spec.Names()).
		Msg("Loaded vars file")
	return spec, nil
}
