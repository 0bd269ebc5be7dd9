package preview

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/sidenav/internal/ui"
	"github.com/bornholm/sidenav/pkg/log"
	"github.com/bornholm/sidenav/pkg/sidebar"
	"github.com/pkg/errors"
)

const revisionsLimit = 10

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := IndexTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Sidebar",
		},
		NavbarTemplateData: ui.NavbarTemplateData{
			NavbarItems: []ui.NavbarItem{ui.NavbarItemSidebarJSON, ui.NavbarItemAstroConfig},
		},
		Nodes:          []NodeTemplateData{},
		HistoryEnabled: h.history != nil,
	}

	if h.davEnabled {
		data.NavbarItems = append(data.NavbarItems, ui.NavbarItemWebDAV)
	}

	status := http.StatusOK

	snapshot, err := h.source.Snapshot(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not build sidebar", log.Error(errors.WithStack(err)))
		data.BuildError = err.Error()
		status = http.StatusInternalServerError
	} else {
		data.SiteTitle = snapshot.Config.Title
		data.SiteURL = snapshot.Config.Site
		data.Description = snapshot.Config.Description

		for depth, n := range sidebar.Walk(snapshot.Config.Sidebar) {
			data.Nodes = append(data.Nodes, NewNodeTemplateData(depth, n))
		}

		if snapshot.Report != nil {
			data.Errors = snapshot.Report.Errors()
			data.Warnings = snapshot.Report.Warnings()
		}
	}

	if h.history != nil {
		revisions, err := h.history.ListRevisions(ctx, revisionsLimit)
		if err != nil {
			slog.ErrorContext(ctx, "could not list revisions", log.Error(errors.WithStack(err)))
		}

		for _, rev := range revisions {
			data.Revisions = append(data.Revisions, NewRevisionTemplateData(rev))
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := templates.ExecuteTemplate(w, "index", data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		return
	}
}
