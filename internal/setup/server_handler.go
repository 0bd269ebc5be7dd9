package setup

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/bornholm/sidenav/internal/authn"
	"github.com/bornholm/sidenav/internal/authn/basic"
	"github.com/bornholm/sidenav/internal/config"
	"github.com/bornholm/sidenav/internal/pprof"
	"github.com/bornholm/sidenav/internal/preview"
	"github.com/bornholm/sidenav/internal/ratelimit"
	"github.com/bornholm/sidenav/pkg/log"
	"github.com/pkg/errors"
	"golang.org/x/net/webdav"
	"golang.org/x/time/rate"

	sloghttp "github.com/samber/slog-http"
)

func NewHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	mux := &http.ServeMux{}

	slogMiddleware := sloghttp.New(slog.Default())

	previewOptions := []preview.OptionFunc{
		preview.WithDAV(bool(conf.HTTP.DAV.Enabled)),
	}

	store, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if store != nil {
		previewOptions = append(previewOptions, preview.WithHistory(store))
	}

	if conf.HTTP.DAV.Enabled {
		davHandler, err := NewDAVHandlerFromConfig(ctx, conf)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		mux.Handle("/dav/", slogMiddleware(davHandler))
	}

	if conf.HTTP.Pprof {
		mux.Handle("/debug/pprof/", pprof.NewHandler("/debug/pprof"))
	}

	source := preview.SourceFunc(func(ctx context.Context) (*preview.Snapshot, error) {
		return NewSnapshotFromConfig(ctx, conf)
	})

	mux.Handle("/", slogMiddleware(preview.NewHandler(source, previewOptions...)))

	return mux, nil
}

func NewDAVHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	collection, err := NewContentFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if collection == nil {
		return nil, errors.New("webdav access requires a content source")
	}

	users := basic.Users{}
	for _, u := range conf.HTTP.DAV.Users {
		users[string(u.Username)] = []byte(u.PasswordHash)
	}

	if len(users) == 0 {
		slog.WarnContext(ctx, "webdav access enabled without users, every request will be rejected")
	}

	davHandler := &webdav.Handler{
		FileSystem: collection.FileSystem(),
		LockSystem: webdav.NewMemLS(),
		Prefix:     "/dav/",
		Logger: func(r *http.Request, err error) {
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				ctx := r.Context()
				slog.ErrorContext(ctx, err.Error(), log.Error(err))
				return
			}
		},
	}

	limit := rate.Limit(conf.HTTP.DAV.RateLimit.Rate)
	burst := int(conf.HTTP.DAV.RateLimit.Burst)

	// Unauthenticated attempts are limited per client address
	addrRateLimiter := ratelimit.New(limit, burst)
	userRateLimiter := ratelimit.New(limit, burst)

	davAuth := authn.Chain(
		authn.WithAuthenticators(
			basic.NewAuthenticator("sidenav", users),
		),
	)

	handler := addrRateLimiter.Middleware(ratelimit.RemoteAddr)(
		davAuth(
			userRateLimiter.Middleware(authn.UserKey)(davHandler),
		),
	)

	return handler, nil
}
