package config

import (
	"github.com/bornholm/sidenav/pkg/sidebar"
	"github.com/goccy/go-yaml"
)

type Sidebar struct {
	Items   sidebar.Sidebar         `yaml:"items"`
	Exclude InterpolatedStringSlice `yaml:"exclude"`
	Resolve InterpolatedBool        `yaml:"resolve"`
	Strict  InterpolatedBool        `yaml:"strict"`
}

func NewDefaultSidebarConfig() Sidebar {
	return Sidebar{
		Items: sidebar.Sidebar{
			{
				Label: "Projects",
				Items: sidebar.Sidebar{
					{Label: "Just-Blade", Slug: "just-blade"},
					{Label: "WP-Blade", Slug: "wp-blade"},
					{Label: "WP-Theme", Slug: "wp-theme"},
				},
			},
			{
				Label:        "Reference",
				Autogenerate: &sidebar.Autogenerate{Directory: "reference"},
			},
		},
		Exclude: InterpolatedStringSlice{},
		Resolve: true,
		Strict:  false,
	}
}

func NewSidebarConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"": []*yaml.Comment{yaml.HeadComment(" Navigation sidebar")},
		".items": []*yaml.Comment{
			yaml.HeadComment(
				" Ordered sidebar entries. An entry is either:",
				" - a page: { label, slug }, or a bare slug string",
				" - an external link: { label, link }",
				" - a group: { label, items (or children), collapsed }",
				" - an autogenerated group: { label, autogenerate: { directory, collapsed } }",
				" Every entry accepts an optional 'badge' (text or { text, variant }) and 'attrs'",
			),
		},
		".exclude": []*yaml.Comment{
			yaml.HeadComment(
				" Exclusion rules, entries matching any rule are removed",
				" Variables: label, slug, link, depth, group, collapsed, badge, directory, attrs",
				" See https://expr-lang.org/docs/language-definition",
			),
		},
		".resolve": []*yaml.Comment{yaml.HeadComment(" Check that every slug matches a content page")},
		".strict":  []*yaml.Comment{yaml.HeadComment(" Treat validation warnings as errors")},
	}
}
