// Package notes reads pending release note files: a YAML front matter header
// followed by a one line body.
package notes

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMalformedFrontMatter indicates the header is not valid YAML or is not terminated.
	ErrMalformedFrontMatter = errors.New("malformed front matter")
	// ErrMetadataNotMapping indicates the header parsed but is not a key/value mapping.
	ErrMetadataNotMapping = errors.New("front matter must be a mapping")
)

const fence = "---"

// Field is a scalar metadata value as written in the header. Present is false
// when the key is absent, null or an empty string.
type Field struct {
	Present bool
	Value   string
	// Scalar is false when the key holds a mapping or a sequence.
	Scalar bool
}

// AuthorsField is the raw `authors` header value.
type AuthorsField struct {
	Present bool
	// List is true only for a sequence of scalar values.
	List   bool
	Values []string
}

// Metadata holds the recognized header keys. Unknown keys are ignored.
type Metadata struct {
	Category Field
	Authors  AuthorsField
}

// SplitFrontMatter separates the YAML header from the body. A document that
// does not open with a `---` line has no header and its whole text is the body.
func SplitFrontMatter(raw string) (meta string, body string, hasHeader bool, err error) {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")
	if strings.TrimRight(lines[0], " \t") != fence {
		return "", normalized, false, nil
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == fence {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), true, nil
		}
	}
	return "", "", false, fmt.Errorf("%w: missing closing %q", ErrMalformedFrontMatter, fence)
}

// Parse splits raw into metadata and body. Values are reported as written,
// nothing is defaulted or validated against the category registry.
func Parse(raw string) (Metadata, string, error) {
	metaText, body, hasHeader, err := SplitFrontMatter(raw)
	if err != nil {
		return Metadata{}, "", err
	}
	if !hasHeader || strings.TrimSpace(metaText) == "" {
		return Metadata{}, body, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(metaText), &doc); err != nil {
		return Metadata{}, "", fmt.Errorf("%w: %w", ErrMalformedFrontMatter, err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return Metadata{}, body, nil
		}
		root = root.Content[0]
	}
	root = resolve(root)
	if isNull(root) {
		return Metadata{}, body, nil
	}
	if root.Kind != yaml.MappingNode {
		return Metadata{}, "", ErrMetadataNotMapping
	}

	var meta Metadata
	for i := 0; i+1 < len(root.Content); i += 2 {
		value := resolve(root.Content[i+1])
		switch root.Content[i].Value {
		case "category":
			meta.Category = scalarField(value)
		case "authors":
			meta.Authors = authorsField(value)
		}
	}
	return meta, body, nil
}

func scalarField(n *yaml.Node) Field {
	if isBlank(n) {
		return Field{}
	}
	if n.Kind == yaml.ScalarNode {
		return Field{Present: true, Value: n.Value, Scalar: true}
	}
	return Field{Present: true, Value: render(n)}
}

func authorsField(n *yaml.Node) AuthorsField {
	if isBlank(n) {
		return AuthorsField{}
	}
	if n.Kind != yaml.SequenceNode {
		return AuthorsField{Present: true}
	}
	values := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		item = resolve(item)
		if item.Kind != yaml.ScalarNode || isNull(item) {
			return AuthorsField{Present: true}
		}
		values = append(values, item.Value)
	}
	return AuthorsField{Present: true, List: true, Values: values}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// isBlank matches the values treated as "not provided": null and the empty string.
func isBlank(n *yaml.Node) bool {
	return isNull(n) || (n.Kind == yaml.ScalarNode && n.Value == "")
}

func render(n *yaml.Node) string {
	out, err := yaml.Marshal(n)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
