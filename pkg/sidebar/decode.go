package sidebar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

var ErrInvalidDeclaration = errors.New("invalid sidebar declaration")

type declaration struct {
	Label        string         `mapstructure:"label"`
	Slug         string         `mapstructure:"slug"`
	Link         string         `mapstructure:"link"`
	Items        any            `mapstructure:"items"`
	Children     any            `mapstructure:"children"`
	Collapsed    bool           `mapstructure:"collapsed"`
	Autogenerate *Autogenerate  `mapstructure:"autogenerate"`
	Badge        any            `mapstructure:"badge"`
	Attrs        map[string]any `mapstructure:"attrs"`
}

// FromDeclaration constructs a sidebar from a literal nested declaration,
// as produced by a YAML or JSON decoder into untyped values. Each entry is
// either a map of node attributes or a string, shorthand for a page slug.
func FromDeclaration(decl []any) (Sidebar, error) {
	return decodeItems(decl, "sidebar")
}

// Decode parses a YAML sidebar declaration.
func Decode(r io.Reader) (Sidebar, error) {
	var sidebar Sidebar

	if err := yaml.NewDecoder(r).Decode(&sidebar); err != nil {
		if errors.Is(err, io.EOF) {
			return Sidebar{}, nil
		}

		return nil, errors.WithStack(err)
	}

	return sidebar, nil
}

func DecodeBytes(data []byte) (Sidebar, error) {
	return Decode(bytes.NewReader(data))
}

// Encode writes the YAML declaration of the sidebar.
func Encode(w io.Writer, sidebar Sidebar) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()

	if sidebar == nil {
		sidebar = Sidebar{}
	}

	if err := encoder.Encode(sidebar); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func EncodeBytes(sidebar Sidebar) ([]byte, error) {
	var buff bytes.Buffer

	if err := Encode(&buff, sidebar); err != nil {
		return nil, errors.WithStack(err)
	}

	return buff.Bytes(), nil
}

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (n *Node) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any

	if err := unmarshal(&raw); err != nil {
		return errors.WithStack(err)
	}

	node, err := decodeNode(raw, "node")
	if err != nil {
		return errors.WithStack(err)
	}

	*n = *node

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(Node)

type plainNode Node

// emptyGroupNode mirrors Node but always writes its items, so that a
// declared group without children is not read back as a bare leaf.
type emptyGroupNode struct {
	Label        string            `json:"label" yaml:"label"`
	Slug         string            `json:"slug,omitempty" yaml:"slug,omitempty"`
	Link         string            `json:"link,omitempty" yaml:"link,omitempty"`
	Items        []*Node           `json:"items" yaml:"items,flow"`
	Collapsed    bool              `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Autogenerate *Autogenerate     `json:"autogenerate,omitempty" yaml:"autogenerate,omitempty"`
	Badge        *Badge            `json:"badge,omitempty" yaml:"badge,omitempty"`
	Attrs        map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`

	shorthand bool
}

// wire returns the value handed to the encoders.
func (n *Node) wire() any {
	if n.Items != nil && len(n.Items) == 0 {
		return (*emptyGroupNode)(n)
	}

	return (*plainNode)(n)
}

// MarshalYAML implements yaml.InterfaceMarshaler. Shorthand entries which
// were not relabeled are written back as bare slugs.
func (n *Node) MarshalYAML() (any, error) {
	if n.bareShorthand() {
		return n.Slug, nil
	}

	return n.wire(), nil
}

var _ yaml.InterfaceMarshaler = new(Node)

// MarshalJSON implements json.Marshaler with the same shorthand rule as
// MarshalYAML, string entries are valid sidebar items.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.bareShorthand() {
		data, err := json.Marshal(n.Slug)
		return data, errors.WithStack(err)
	}

	data, err := json.Marshal(n.wire())
	return data, errors.WithStack(err)
}

var _ json.Marshaler = new(Node)

func (n *Node) bareShorthand() bool {
	return n.shorthand && n.Label == n.Slug && n.Items == nil && n.Autogenerate == nil &&
		n.Badge == nil && n.Link == "" && len(n.Attrs) == 0 && !n.Collapsed
}

func decodeItems(raw any, path string) (Sidebar, error) {
	if raw == nil {
		return Sidebar{}, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidDeclaration, "%s: expected a list, got '%T'", path, raw)
	}

	nodes := make(Sidebar, 0, len(list))
	for idx, item := range list {
		node, err := decodeNode(item, fmt.Sprintf("%s[%d]", path, idx))
		if err != nil {
			return nil, errors.WithStack(err)
		}

		nodes = append(nodes, node)
	}

	return nodes, nil
}

func decodeNode(raw any, path string) (*Node, error) {
	switch typ := raw.(type) {
	case string:
		return &Node{Label: typ, Slug: typ, shorthand: true}, nil

	case map[string]any:
		var decl declaration

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			ErrorUnused: true,
			Result:      &decl,
		})
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if err := decoder.Decode(typ); err != nil {
			return nil, errors.Wrapf(ErrInvalidDeclaration, "%s: %s", path, err.Error())
		}

		node := &Node{
			Label:        decl.Label,
			Slug:         decl.Slug,
			Link:         decl.Link,
			Collapsed:    decl.Collapsed,
			Autogenerate: decl.Autogenerate,
		}

		_, hasItems := typ["items"]
		_, hasChildren := typ["children"]

		switch {
		case hasItems && hasChildren:
			return nil, errors.Wrapf(ErrInvalidDeclaration, "%s: 'items' and 'children' are mutually exclusive", path)

		case hasItems:
			node.Items, err = decodeItems(decl.Items, path+".items")

		case hasChildren:
			node.Items, err = decodeItems(decl.Children, path+".children")
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if decl.Badge != nil {
			badge, err := decodeBadge(decl.Badge, path+".badge")
			if err != nil {
				return nil, errors.WithStack(err)
			}

			node.Badge = badge
		}

		if decl.Attrs != nil {
			node.Attrs = make(map[string]string, len(decl.Attrs))
			for key, value := range decl.Attrs {
				node.Attrs[key] = fmt.Sprint(value)
			}
		}

		return node, nil

	default:
		return nil, errors.Wrapf(ErrInvalidDeclaration, "%s: unexpected entry type '%T'", path, raw)
	}
}

func decodeBadge(raw any, path string) (*Badge, error) {
	if text, ok := raw.(string); ok {
		return &Badge{Text: text}, nil
	}

	var badge Badge

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &badge,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrapf(ErrInvalidDeclaration, "%s: %s", path, err.Error())
	}

	return &badge, nil
}
