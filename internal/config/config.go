package config

import (
	"bytes"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type Config struct {
	Logger  Logger  `yaml:"logger"`
	Site    Site    `yaml:"site"`
	Sidebar Sidebar `yaml:"sidebar"`
	Content Content `yaml:"content"`
	Output  Output  `yaml:"output"`
	Store   Store   `yaml:"store"`
	HTTP    HTTP    `yaml:"http"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Logger:  NewDefaultLoggerConfig(),
		Site:    NewDefaultSiteConfig(),
		Sidebar: NewDefaultSidebarConfig(),
		Content: NewDefaultContentConfig(),
		Output:  NewDefaultOutputConfig(),
		Store:   NewDefaultStoreConfig(),
		HTTP:    NewDefaultHTTPConfig(),
	}
}

func Interpolate(conf *Config) error {
	var buff bytes.Buffer

	if err := Dump(&buff, conf); err != nil {
		return errors.WithStack(err)
	}

	if err := Load(&buff, conf); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func LoadFile(path string, conf *Config) error {
	file, err := os.OpenFile(path, os.O_RDONLY, os.ModePerm)
	if err != nil {
		return errors.WithStack(err)
	}

	defer file.Close()

	if err := Load(file, conf); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func Load(r io.Reader, conf *Config) error {
	decoder := yaml.NewDecoder(r)

	if err := decoder.Decode(conf); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

var sections = map[string]yaml.CommentMap{
	"$.logger":  NewLoggerConfigCommentMap(),
	"$.site":    NewSiteConfigCommentMap(),
	"$.sidebar": NewSidebarConfigCommentMap(),
	"$.content": NewContentConfigCommentMap(),
	"$.output":  NewOutputConfigCommentMap(),
	"$.store":   NewStoreConfigCommentMap(),
	"$.http":    NewHTTPConfigCommentMap(),
}

func Dump(w io.Writer, conf *Config) error {
	configComments := yaml.CommentMap{}
	for configSelector, sectionComments := range sections {
		for sectionSelector, sectionComments := range sectionComments {
			configComments[configSelector+sectionSelector] = sectionComments
		}
	}

	encoder := yaml.NewEncoder(w, yaml.WithComment(configComments))
	defer encoder.Close()

	if err := encoder.Encode(conf); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
