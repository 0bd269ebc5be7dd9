package config

import "github.com/goccy/go-yaml"

// Site holds the metadata passed through verbatim to the generated
// configuration.
type Site struct {
	URL         InterpolatedString      `yaml:"url"`
	Title       InterpolatedString      `yaml:"title"`
	Description InterpolatedString      `yaml:"description"`
	Logo        *Logo                   `yaml:"logo,omitempty"`
	Social      []Social                `yaml:"social"`
	Head        []HeadEntry             `yaml:"head"`
	CustomCSS   InterpolatedStringSlice `yaml:"customCss"`
}

type Logo struct {
	Src           InterpolatedString `yaml:"src"`
	Alt           InterpolatedString `yaml:"alt"`
	ReplacesTitle InterpolatedBool   `yaml:"replacesTitle"`
}

type Social struct {
	Icon  InterpolatedString `yaml:"icon"`
	Label InterpolatedString `yaml:"label"`
	Href  InterpolatedString `yaml:"href"`
}

type HeadEntry struct {
	Tag     InterpolatedString `yaml:"tag"`
	Attrs   *InterpolatedMap   `yaml:"attrs,omitempty"`
	Content InterpolatedString `yaml:"content,omitempty"`
}

func NewDefaultSiteConfig() Site {
	return Site{
		URL:         "${SIDENAV_SITE_URL:-https://liferay-studio.github.io}",
		Title:       "Liferay Studio",
		Description: "Liferay Studio is a collection of tools and projects for Liferay developers.",
		Social: []Social{
			{
				Icon:  "github",
				Label: "GitHub",
				Href:  "https://liferay-studio.github.io",
			},
		},
		Head:      []HeadEntry{},
		CustomCSS: InterpolatedStringSlice{},
	}
}

func NewSiteConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":             []*yaml.Comment{yaml.HeadComment(" Site metadata")},
		".url":         []*yaml.Comment{yaml.HeadComment(" Deployed site base URL")},
		".title":       []*yaml.Comment{yaml.HeadComment(" Site title")},
		".description": []*yaml.Comment{yaml.HeadComment(" Site description")},
		".social":      []*yaml.Comment{yaml.HeadComment(" Social links displayed in the site header")},
		".head": []*yaml.Comment{
			yaml.HeadComment(" Additional tags injected in the pages <head>"),
			yaml.FootComment(
				"Example:",
				"head:",
				"  - tag: script",
				"    attrs:",
				"      src: https://www.googletagmanager.com/gtag/js?id=${SIDENAV_GTAG_ID}",
				"      async: true",
			),
		},
		".customCss": []*yaml.Comment{yaml.HeadComment(" Stylesheets added to every page")},
	}
}
