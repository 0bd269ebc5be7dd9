package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type HTTP struct {
	Address           InterpolatedString    `yaml:"address"`
	ReadHeaderTimeout *InterpolatedDuration `yaml:"readHeaderTimeout"`
	Pprof             InterpolatedBool      `yaml:"pprof"`
	DAV               DAV                   `yaml:"dav"`
}

type DAV struct {
	Enabled   InterpolatedBool `yaml:"enabled"`
	Users     []DAVUser        `yaml:"users"`
	RateLimit RateLimit        `yaml:"rateLimit"`
}

// DAVUser password hashes are not interpolated, bcrypt hashes contain '$'.
type DAVUser struct {
	Username     InterpolatedString `yaml:"username"`
	PasswordHash string             `yaml:"passwordHash"`
}

type RateLimit struct {
	Rate  InterpolatedFloat `yaml:"rate"`
	Burst InterpolatedInt   `yaml:"burst"`
}

func NewDefaultHTTPConfig() HTTP {
	return HTTP{
		Address:           "${SIDENAV_HTTP_ADDRESS:-:8080}",
		ReadHeaderTimeout: NewInterpolatedDuration(10 * time.Second),
		Pprof:             false,
		DAV: DAV{
			Enabled: false,
			Users:   []DAVUser{},
			RateLimit: RateLimit{
				Rate:  10,
				Burst: 20,
			},
		},
	}
}

func NewHTTPConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                   []*yaml.Comment{yaml.HeadComment(" Preview server configuration")},
		".address":           []*yaml.Comment{yaml.HeadComment(" Preview server listening address")},
		".readHeaderTimeout": []*yaml.Comment{yaml.HeadComment(" Maximum duration for reading request headers")},
		".pprof":             []*yaml.Comment{yaml.HeadComment(" Expose profiling endpoints under /debug/pprof")},
		".dav":               []*yaml.Comment{yaml.HeadComment(" WebDAV access to the content pages under /dav/")},
		".dav.users": []*yaml.Comment{
			yaml.HeadComment(
				" Users allowed to access the content, with bcrypt password hashes",
				" Generate a hash with 'sidenav hash-password'",
			),
		},
		".dav.rateLimit": []*yaml.Comment{yaml.HeadComment(" Per user requests rate (per second) and burst")},
	}
}
