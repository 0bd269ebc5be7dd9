// Package sidebar holds the navigation tree of a documentation site: an
// ordered, nested list of entries pointing at content pages or external
// links, as consumed by the site renderer.
package sidebar

import (
	"maps"
	"slices"
)

type Kind string

const (
	KindLeaf         Kind = "leaf"
	KindLink         Kind = "link"
	KindGroup        Kind = "group"
	KindAutogenerate Kind = "autogenerate"
	KindInvalid      Kind = "invalid"
)

type BadgeVariant string

const (
	BadgeDefault BadgeVariant = "default"
	BadgeNote    BadgeVariant = "note"
	BadgeTip     BadgeVariant = "tip"
	BadgeCaution BadgeVariant = "caution"
	BadgeDanger  BadgeVariant = "danger"
	BadgeSuccess BadgeVariant = "success"
)

var badgeVariants = []BadgeVariant{
	BadgeDefault, BadgeNote, BadgeTip, BadgeCaution, BadgeDanger, BadgeSuccess,
}

type Badge struct {
	Text    string       `json:"text" yaml:"text" mapstructure:"text"`
	Variant BadgeVariant `json:"variant,omitempty" yaml:"variant,omitempty" mapstructure:"variant"`
}

type Autogenerate struct {
	Directory string `json:"directory" yaml:"directory" mapstructure:"directory"`
	Collapsed bool   `json:"collapsed,omitempty" yaml:"collapsed,omitempty" mapstructure:"collapsed"`
}

// Node is one entry of the sidebar. A node either targets a page (Slug) or
// an URL (Link), or groups children (Items or Autogenerate).
type Node struct {
	Label        string            `json:"label" yaml:"label"`
	Slug         string            `json:"slug,omitempty" yaml:"slug,omitempty"`
	Link         string            `json:"link,omitempty" yaml:"link,omitempty"`
	Items        []*Node           `json:"items,omitempty" yaml:"items,omitempty"`
	Collapsed    bool              `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Autogenerate *Autogenerate     `json:"autogenerate,omitempty" yaml:"autogenerate,omitempty"`
	Badge        *Badge            `json:"badge,omitempty" yaml:"badge,omitempty"`
	Attrs        map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`

	// shorthand is set when the node was declared as a bare slug string,
	// its label is then derived from the slug until a page title replaces it.
	shorthand bool
}

// Sidebar is the ordered top level list of nodes.
type Sidebar []*Node

func (n *Node) Kind() Kind {
	switch {
	case n.Autogenerate != nil:
		return KindAutogenerate
	case n.Items != nil:
		return KindGroup
	case n.Slug != "":
		return KindLeaf
	case n.Link != "":
		return KindLink
	default:
		return KindInvalid
	}
}

func (n *Node) IsGroup() bool {
	kind := n.Kind()
	return kind == KindGroup || kind == KindAutogenerate
}

func (n *Node) HasTarget() bool {
	return n.Slug != "" || n.Link != ""
}

func (n *Node) Shorthand() bool {
	return n.shorthand
}

func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	clone := *n

	if n.Items != nil {
		clone.Items = Sidebar(n.Items).Clone()
	}

	if n.Autogenerate != nil {
		autogenerate := *n.Autogenerate
		clone.Autogenerate = &autogenerate
	}

	if n.Badge != nil {
		badge := *n.Badge
		clone.Badge = &badge
	}

	if n.Attrs != nil {
		clone.Attrs = maps.Clone(n.Attrs)
	}

	return &clone
}

func (s Sidebar) Clone() Sidebar {
	if s == nil {
		return nil
	}

	clone := make(Sidebar, 0, len(s))
	for _, n := range s {
		clone = append(clone, n.Clone())
	}

	return clone
}

// Equal reports whether both trees hold the same nodes in the same order.
func Equal(a, b Sidebar) bool {
	return slices.EqualFunc(a, b, nodeEqual)
}

func nodeEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Label != b.Label || a.Slug != b.Slug || a.Link != b.Link || a.Collapsed != b.Collapsed {
		return false
	}

	if (a.Items == nil) != (b.Items == nil) || !Equal(a.Items, b.Items) {
		return false
	}

	if (a.Autogenerate == nil) != (b.Autogenerate == nil) {
		return false
	}

	if a.Autogenerate != nil && *a.Autogenerate != *b.Autogenerate {
		return false
	}

	if (a.Badge == nil) != (b.Badge == nil) {
		return false
	}

	if a.Badge != nil && *a.Badge != *b.Badge {
		return false
	}

	return maps.Equal(a.Attrs, b.Attrs)
}
