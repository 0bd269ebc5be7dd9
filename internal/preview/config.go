package preview

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bornholm/sidenav/internal/store"
	"github.com/bornholm/sidenav/pkg/log"
	"github.com/bornholm/sidenav/pkg/starlight"
	"github.com/pkg/errors"
)

func (h *Handler) serveConfig(format starlight.Format, sidebarOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		snapshot, err := h.source.Snapshot(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "could not build sidebar", log.Error(errors.WithStack(err)))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())

		if sidebarOnly {
			encoder := json.NewEncoder(w)
			encoder.SetIndent("", "  ")

			if err := encoder.Encode(snapshot.Config.Sidebar); err != nil {
				slog.ErrorContext(ctx, "could not encode sidebar", log.Error(errors.WithStack(err)))
			}

			return
		}

		data, err := starlight.WriteBytes(snapshot.Config, format)
		if err != nil {
			slog.ErrorContext(ctx, "could not write configuration", log.Error(errors.WithStack(err)), slog.String("format", string(format)))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if _, err := w.Write(data); err != nil {
			slog.ErrorContext(ctx, "could not write response", log.Error(errors.WithStack(err)))
		}
	}
}

func (h *Handler) serveRevision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.history == nil {
		http.NotFound(w, r)
		return
	}

	revision, err := h.history.GetRevision(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrRevisionNotFound) {
			http.NotFound(w, r)
			return
		}

		slog.ErrorContext(ctx, "could not retrieve revision", log.Error(errors.WithStack(err)))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", starlight.FormatYAML.ContentType())
	w.Header().Set("ETag", `"`+revision.Checksum+`"`)

	if _, err := w.Write(revision.Content); err != nil {
		slog.ErrorContext(ctx, "could not write response", log.Error(errors.WithStack(err)))
	}
}
