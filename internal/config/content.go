package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bornholm/sidenav/pkg/filesystem"
	"github.com/bornholm/sidenav/pkg/filesystem/local"
	"github.com/bornholm/sidenav/pkg/filesystem/s3"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type Content struct {
	Type       InterpolatedString      `yaml:"type"`
	Options    *InterpolatedMap        `yaml:"options"`
	Extensions InterpolatedStringSlice `yaml:"extensions"`
}

func NewDefaultContentConfig() Content {
	return Content{
		Type: InterpolatedString(fmt.Sprintf("${SIDENAV_CONTENT_TYPE:-%s}", local.Type)),
		Options: &InterpolatedMap{
			Data: map[string]any{
				"dir": "${SIDENAV_CONTENT_DIR:-./src/content/docs}",
			},
		},
		Extensions: InterpolatedStringSlice{".md", ".mdx", ".mdoc"},
	}
}

func NewContentConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":      []*yaml.Comment{yaml.HeadComment(" Content pages source, used to resolve slugs and autogenerate groups")},
		".type": []*yaml.Comment{yaml.HeadComment(" Filesystem type", fmt.Sprintf(" Available: %v", filesystem.Registered()))},
		".options": []*yaml.Comment{
			yaml.HeadComment(" Filesystem options"),
			getFilesystemOptionComment("S3 filesystem", s3.Options{}),
		},
		".extensions": []*yaml.Comment{yaml.HeadComment(" File extensions of content pages")},
	}
}

func getFilesystemOptionComment(message string, opts any) *yaml.Comment {
	rawOpts, err := yaml.Marshal(opts)
	if err != nil {
		panic(errors.WithStack(err))
	}

	comments := []string{message, "options:"}
	comments = append(comments, slices.Collect(func(yield func(string) bool) {
		for _, str := range strings.Split(strings.TrimSpace(string(rawOpts)), "\n") {
			if !yield("  " + str) {
				return
			}
		}
	})...)

	return yaml.FootComment(comments...)
}
