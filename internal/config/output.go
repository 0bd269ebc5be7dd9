package config

import "github.com/goccy/go-yaml"

type Output struct {
	Format InterpolatedString `yaml:"format"`
	Path   InterpolatedString `yaml:"path"`
}

func NewDefaultOutputConfig() Output {
	return Output{
		Format: "${SIDENAV_OUTPUT_FORMAT:-mjs}",
		Path:   "${SIDENAV_OUTPUT_PATH:-astro.config.mjs}",
	}
}

func NewOutputConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":        []*yaml.Comment{yaml.HeadComment(" Generated site configuration")},
		".format": []*yaml.Comment{yaml.HeadComment(" Output format (mjs, json or yaml)")},
		".path":   []*yaml.Comment{yaml.HeadComment(" Output file, '-' writes to stdout")},
	}
}
