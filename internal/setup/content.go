package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/sidenav/internal/config"
	"github.com/bornholm/sidenav/pkg/content"
	"github.com/bornholm/sidenav/pkg/filesystem"
	"github.com/pkg/errors"
)

// NewContentFromConfig returns the content pages collection, or nil when no
// content source is configured.
var NewContentFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*content.Collection, error) {
	if conf.Content.Type == "" {
		return nil, nil
	}

	var options any
	if conf.Content.Options != nil {
		options = conf.Content.Options.Data
	}

	fs, err := filesystem.New(filesystem.Type(conf.Content.Type), options)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' content filesystem", conf.Content.Type)
	}

	funcs := []content.OptionFunc{
		content.WithLogger(slog.Default().With(slog.String("component", "content"))),
	}

	if len(conf.Content.Extensions) > 0 {
		funcs = append(funcs, content.WithExtensions(conf.Content.Extensions...))
	}

	return content.NewCollection(fs, funcs...), nil
})
