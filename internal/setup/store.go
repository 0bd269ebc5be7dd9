package setup

import (
	"context"

	"github.com/bornholm/sidenav/internal/config"
	"github.com/bornholm/sidenav/internal/store"
	"github.com/pkg/errors"
)

// NewStoreFromConfig returns the revisions store, or nil when the history is
// disabled.
var NewStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*store.Store, error) {
	if conf.Store.Path == "" {
		return nil, nil
	}

	store := store.NewStore(string(conf.Store.Path))

	if err := store.HealthCheck(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	return store, nil
})
