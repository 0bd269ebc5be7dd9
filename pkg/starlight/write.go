package starlight

import (
	"bytes"
	"embed"
	"encoding/json"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"github.com/bornholm/sidenav/pkg/sidebar"
)

var ErrUnknownFormat = errors.New("unknown format")

type Format string

const (
	FormatMJS  Format = "mjs"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var Formats = []Format{FormatMJS, FormatJSON, FormatYAML}

func ParseFormat(raw string) (Format, error) {
	switch format := Format(strings.ToLower(strings.TrimSpace(raw))); format {
	case FormatMJS, FormatJSON, FormatYAML:
		return format, nil
	case "yml":
		return FormatYAML, nil
	case "js":
		return FormatMJS, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "'%s'", raw)
	}
}

// ContentType returns the media type of documents written in the given
// format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/javascript"
	}
}

//go:embed templates/*.tmpl
var templateFs embed.FS

var mjsTemplate = template.Must(
	template.New("").
		Funcs(sprig.TxtFuncMap()).
		ParseFS(templateFs, "templates/*.tmpl"),
)

// Write encodes the configuration in the given format.
func Write(w io.Writer, config *Config, format Format) error {
	normalized := *config
	if normalized.Sidebar == nil {
		normalized.Sidebar = sidebar.Sidebar{}
	}

	switch format {
	case FormatMJS:
		// Rendered in memory to not leave a truncated module behind on error
		var buff bytes.Buffer
		if err := mjsTemplate.ExecuteTemplate(&buff, "astro.config.mjs.tmpl", &normalized); err != nil {
			return errors.WithStack(err)
		}

		if _, err := io.Copy(w, &buff); err != nil {
			return errors.WithStack(err)
		}

	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(&normalized); err != nil {
			return errors.WithStack(err)
		}

	case FormatYAML:
		encoder := yaml.NewEncoder(w, yaml.IndentSequence(true))
		defer encoder.Close()

		if err := encoder.Encode(&normalized); err != nil {
			return errors.WithStack(err)
		}

	default:
		return errors.Wrapf(ErrUnknownFormat, "'%s'", format)
	}

	return nil
}

func WriteBytes(config *Config, format Format) ([]byte, error) {
	var buff bytes.Buffer

	if err := Write(&buff, config, format); err != nil {
		return nil, errors.WithStack(err)
	}

	return buff.Bytes(), nil
}
