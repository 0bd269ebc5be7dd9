package config

import "github.com/goccy/go-yaml"

type Store struct {
	Path InterpolatedString `yaml:"path"`
}

func NewDefaultStoreConfig() Store {
	return Store{
		Path: "${SIDENAV_STORE_PATH:-.sidenav.db}",
	}
}

func NewStoreConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":      []*yaml.Comment{yaml.HeadComment(" Sidebar revisions history")},
		".path": []*yaml.Comment{yaml.HeadComment(" SQLite database path, leave empty to disable the history")},
	}
}
