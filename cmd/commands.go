package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bornholm/sidenav/internal/authn/basic"
	"github.com/bornholm/sidenav/internal/config"
	"github.com/bornholm/sidenav/internal/setup"
	"github.com/bornholm/sidenav/pkg/sidebar"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// errFailed reports a failure already explained to the user.
var errFailed = errors.New("failed")

func runCheck(ctx context.Context, conf *config.Config, args []string) error {
	snapshot, err := setup.NewSnapshotFromConfig(ctx, conf)
	if err != nil {
		return errors.WithStack(err)
	}

	report := snapshot.Report

	for _, issue := range report.Issues {
		fmt.Println(issue.String())
	}

	collection, err := setup.NewContentFromConfig(ctx, conf)
	if err != nil {
		return errors.WithStack(err)
	}

	if collection != nil {
		orphans, err := collection.Orphans(ctx, snapshot.Config.Sidebar)
		if err != nil {
			return errors.WithStack(err)
		}

		for _, p := range orphans {
			slog.WarnContext(ctx, "page not referenced by the sidebar", slog.String("slug", p.Slug), slog.String("path", p.Path))
		}
	}

	if err := report.Err(); err != nil {
		slog.ErrorContext(ctx, "invalid sidebar", slog.Int("errors", len(report.Errors())), slog.Int("warnings", len(report.Warnings())))
		return errors.WithStack(errFailed)
	}

	slog.InfoContext(ctx, "sidebar is valid", slog.Int("nodes", sidebar.Count(snapshot.Config.Sidebar)), slog.Int("warnings", len(report.Warnings())))

	return nil
}

func runWalk(ctx context.Context, conf *config.Config, args []string) error {
	nodes, err := setup.NewSidebarFromConfig(ctx, conf)
	if err != nil {
		return errors.WithStack(err)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for depth, n := range sidebar.Walk(nodes) {
		indent := strings.Repeat("  ", depth-1)

		switch n.Kind() {
		case sidebar.KindLeaf:
			fmt.Fprintf(out, "%s%s (%s)\n", indent, n.Label, n.Slug)
		case sidebar.KindLink:
			fmt.Fprintf(out, "%s%s -> %s\n", indent, n.Label, n.Link)
		case sidebar.KindAutogenerate:
			fmt.Fprintf(out, "%s%s/ [%s]\n", indent, n.Label, n.Autogenerate.Directory)
		default:
			fmt.Fprintf(out, "%s%s/\n", indent, n.Label)
		}
	}

	return nil
}

func runBuild(ctx context.Context, conf *config.Config, args []string) error {
	snapshot, err := setup.NewSnapshotFromConfig(ctx, conf)
	if err != nil {
		return errors.WithStack(err)
	}

	report := snapshot.Report

	for _, issue := range report.Warnings() {
		slog.WarnContext(ctx, issue.Message, slog.String("path", issue.Path), slog.String("code", string(issue.Code)))
	}

	if err := report.Err(); err != nil {
		for _, issue := range report.Errors() {
			slog.ErrorContext(ctx, issue.Message, slog.String("path", issue.Path), slog.String("code", string(issue.Code)))
		}

		return errors.WithStack(errFailed)
	}

	store, err := setup.NewStoreFromConfig(ctx, conf)
	if err != nil {
		return errors.WithStack(err)
	}

	if store != nil {
		defer store.Close()
	}

	path, err := setup.WriteOutputFromConfig(ctx, conf, snapshot.Config, os.Stdout)
	if err != nil {
		return errors.WithStack(err)
	}

	slog.InfoContext(ctx, "site configuration written", slog.String("path", path), slog.String("format", string(conf.Output.Format)))

	if store == nil {
		return nil
	}

	revision, created, err := store.SaveRevision(ctx, snapshot.Config.Sidebar)
	if err != nil {
		return errors.WithStack(err)
	}

	if created {
		slog.InfoContext(ctx, "revision recorded", slog.String("revision", revision.ID), slog.Int("nodes", revision.Nodes))
	} else {
		slog.InfoContext(ctx, "sidebar unchanged since latest revision", slog.String("revision", revision.ID))
	}

	return nil
}

func runServe(ctx context.Context, conf *config.Config, args []string) error {
	handler, err := setup.NewHandlerFromConfig(ctx, conf)
	if err != nil {
		return errors.Wrap(err, "could not generate handler from config")
	}

	store, err := setup.NewStoreFromConfig(ctx, conf)
	if err != nil {
		return errors.WithStack(err)
	}

	closers := make([]io.Closer, 0, 1)
	if store != nil {
		closers = append(closers, store)
	}

	server := &http.Server{
		Addr:    string(conf.HTTP.Address),
		Handler: handler,
	}

	if conf.HTTP.ReadHeaderTimeout != nil {
		server.ReadHeaderTimeout = time.Duration(*conf.HTTP.ReadHeaderTimeout)
	}

	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return errors.Wrap(err, "could not listen")
	}

	slog.InfoContext(ctx, "http server listening", slog.String("addr", listener.Addr().String()))

	if err := serve(ctx, server, listener, closers...); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func runHistory(ctx context.Context, conf *config.Config, args []string) error {
	store, err := setup.NewStoreFromConfig(ctx, conf)
	if err != nil {
		return errors.WithStack(err)
	}

	if store == nil {
		return errors.New("revisions history is disabled, see 'store.path'")
	}

	defer store.Close()

	revisions, err := store.ListRevisions(ctx, historyLimit)
	if err != nil {
		return errors.WithStack(err)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for _, r := range revisions {
		fmt.Fprintf(out, "%s  %s  %-14s  %4d nodes  %8s  %s\n",
			r.ID,
			r.CreatedAt.Local().Format(time.DateTime),
			humanize.Time(r.CreatedAt),
			r.Nodes,
			humanize.Bytes(uint64(r.Size)),
			r.Checksum[:12],
		)
	}

	return nil
}

func runHashPassword(ctx context.Context, conf *config.Config, args []string) error {
	var password string

	if len(args) > 0 {
		password = args[0]
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			password = scanner.Text()
		}

		if err := scanner.Err(); err != nil {
			return errors.WithStack(err)
		}
	}

	if password == "" {
		return errors.New("password must not be empty")
	}

	hash, err := basic.HashPassword(password)
	if err != nil {
		return errors.WithStack(err)
	}

	fmt.Println(string(hash))

	return nil
}
