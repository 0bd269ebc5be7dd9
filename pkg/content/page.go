// Package content indexes the documentation pages of a content file system
// and maps them to sidebar slugs.
package content

import (
	"path"
	"strings"
	"time"

	"github.com/bornholm/sidenav/pkg/sidebar"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type Page struct {
	Slug        string
	Path        string
	Dir         string
	Size        int64
	ModTime     time.Time
	Frontmatter Frontmatter
}

type Frontmatter struct {
	Title       string             `yaml:"title"`
	Description string             `yaml:"description"`
	Draft       bool               `yaml:"draft"`
	Sidebar     SidebarFrontmatter `yaml:"sidebar"`
}

type SidebarFrontmatter struct {
	Label  string `yaml:"label"`
	Order  *int   `yaml:"order"`
	Hidden bool   `yaml:"hidden"`
	Badge  any    `yaml:"badge"`
}

// Label returns the text used for the page in the sidebar.
func (p *Page) Label() string {
	if p.Frontmatter.Sidebar.Label != "" {
		return p.Frontmatter.Sidebar.Label
	}

	if p.Frontmatter.Title != "" {
		return p.Frontmatter.Title
	}

	return strings.TrimSuffix(path.Base(p.Path), path.Ext(p.Path))
}

func (p *Page) Badge() *sidebar.Badge {
	switch typ := p.Frontmatter.Sidebar.Badge.(type) {
	case string:
		return &sidebar.Badge{Text: typ}
	case map[string]any:
		badge := &sidebar.Badge{}
		if text, ok := typ["text"].(string); ok {
			badge.Text = text
		}
		if variant, ok := typ["variant"].(string); ok {
			badge.Variant = sidebar.BadgeVariant(variant)
		}
		return badge
	default:
		return nil
	}
}

// Node returns the sidebar leaf pointing at the page.
func (p *Page) Node() *sidebar.Node {
	return &sidebar.Node{
		Label: p.Label(),
		Slug:  p.Slug,
		Badge: p.Badge(),
	}
}

// Slug returns the slug of a content file given its path relative to the
// content root. Index files map to their directory.
func Slug(filePath string) string {
	filePath = strings.Trim(path.Clean("/"+filePath), "/")

	slug := strings.TrimSuffix(filePath, path.Ext(filePath))

	if path.Base(slug) == "index" {
		slug = path.Dir(slug)
		if slug == "." {
			slug = ""
		}
	}

	return normalizePath(slug)
}

// normalizePath applies the slug casing and spacing rules to a path without
// touching its extension, segment by segment.
func normalizePath(p string) string {
	p = strings.ToLower(p)
	p = strings.Join(strings.Fields(p), "-")

	return p
}

const frontmatterFence = "---"

// ParseFrontmatter extracts the YAML frontmatter heading a page.
func ParseFrontmatter(data []byte) (Frontmatter, error) {
	var frontmatter Frontmatter

	content := strings.TrimPrefix(string(data), "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	if !strings.HasPrefix(content, frontmatterFence+"\n") {
		return frontmatter, nil
	}

	rest := content[len(frontmatterFence)+1:]

	raw := ""
	if !strings.HasPrefix(rest, frontmatterFence) {
		end := strings.Index(rest, "\n"+frontmatterFence)
		if end == -1 {
			return frontmatter, errors.New("unterminated frontmatter")
		}

		raw = rest[:end]
	}

	if strings.TrimSpace(raw) == "" {
		return frontmatter, nil
	}

	if err := yaml.Unmarshal([]byte(raw), &frontmatter); err != nil {
		return frontmatter, errors.WithStack(err)
	}

	return frontmatter, nil
}
