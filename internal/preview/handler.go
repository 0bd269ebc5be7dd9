// Package preview serves an HTML rendition of the built sidebar along with
// the generated site configuration.
package preview

import (
	"context"
	"net/http"

	"github.com/bornholm/sidenav/internal/store"
	"github.com/bornholm/sidenav/pkg/sidebar"
	"github.com/bornholm/sidenav/pkg/starlight"
)

// Snapshot is the result of one sidebar build.
type Snapshot struct {
	Config *starlight.Config
	Report *sidebar.Report
}

type Source interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type SourceFunc func(ctx context.Context) (*Snapshot, error)

// Snapshot implements Source.
func (fn SourceFunc) Snapshot(ctx context.Context) (*Snapshot, error) {
	return fn(ctx)
}

type History interface {
	ListRevisions(ctx context.Context, limit int) ([]*store.Revision, error)
	GetRevision(ctx context.Context, id string) (*store.Revision, error)
}

type Handler struct {
	source     Source
	history    History
	davEnabled bool
	mux        *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type Options struct {
	History    History
	DAVEnabled bool
}

type OptionFunc func(opts *Options)

func WithHistory(history History) OptionFunc {
	return func(opts *Options) {
		opts.History = history
	}
}

func WithDAV(enabled bool) OptionFunc {
	return func(opts *Options) {
		opts.DAVEnabled = enabled
	}
}

func NewHandler(source Source, funcs ...OptionFunc) *Handler {
	opts := &Options{}
	for _, fn := range funcs {
		fn(opts)
	}

	handler := &Handler{
		source:     source,
		history:    opts.History,
		davEnabled: opts.DAVEnabled,
		mux:        &http.ServeMux{},
	}

	handler.mux.HandleFunc("GET /{$}", handler.serveIndex)
	handler.mux.HandleFunc("GET /sidebar.json", handler.serveConfig(starlight.FormatJSON, true))
	handler.mux.HandleFunc("GET /astro.config.mjs", handler.serveConfig(starlight.FormatMJS, false))
	handler.mux.HandleFunc("GET /config.yml", handler.serveConfig(starlight.FormatYAML, false))
	handler.mux.HandleFunc("GET /revisions/{id}", handler.serveRevision)

	return handler
}

var _ http.Handler = &Handler{}
