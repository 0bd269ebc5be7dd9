// Package starlight writes the documentation site configuration consumed by
// the Astro Starlight integration.
package starlight

import (
	"github.com/bornholm/sidenav/pkg/sidebar"
)

type Logo struct {
	Src           string `json:"src" yaml:"src"`
	Alt           string `json:"alt,omitempty" yaml:"alt,omitempty"`
	ReplacesTitle bool   `json:"replacesTitle,omitempty" yaml:"replacesTitle,omitempty"`
}

type Social struct {
	Icon  string `json:"icon" yaml:"icon"`
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href" yaml:"href"`
}

type HeadEntry struct {
	Tag     string         `json:"tag" yaml:"tag"`
	Attrs   map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Content string         `json:"content,omitempty" yaml:"content,omitempty"`
}

// Config is the site configuration. Every field but Sidebar is written as
// given.
type Config struct {
	Site        string          `json:"site,omitempty" yaml:"site,omitempty"`
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Logo        *Logo           `json:"logo,omitempty" yaml:"logo,omitempty"`
	Social      []Social        `json:"social,omitempty" yaml:"social,omitempty"`
	Head        []HeadEntry     `json:"head,omitempty" yaml:"head,omitempty"`
	CustomCSS   []string        `json:"customCss,omitempty" yaml:"customCss,omitempty"`
	Sidebar     sidebar.Sidebar `json:"sidebar" yaml:"sidebar"`
}
