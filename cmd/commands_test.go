package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bornholm/sidenav/internal/config"
	"github.com/bornholm/sidenav/internal/store"
	"github.com/bornholm/sidenav/pkg/filesystem/local"
	"github.com/bornholm/sidenav/pkg/filesystem/testsuite"
	"github.com/bornholm/sidenav/pkg/sidebar"
	"github.com/pkg/errors"
)

func newBuildConfig(t *testing.T, storePath string) *config.Config {
	t.Helper()

	dir := t.TempDir()

	if err := testsuite.SeedDir(dir); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	items, err := sidebar.DecodeBytes([]byte("- label: Introduction\n  items:\n    - introduction/what-is-liferay\n"))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	conf := config.NewDefaultConfig()

	conf.Site.URL = "https://docs.example.net"
	conf.Content.Type = config.InterpolatedString(local.Type)
	conf.Content.Options = &config.InterpolatedMap{
		Data: map[string]any{"dir": dir},
	}
	conf.Sidebar.Items = items
	conf.Store.Path = config.InterpolatedString(storePath)
	conf.Output.Format = "json"
	conf.Output.Path = config.InterpolatedString(filepath.Join(t.TempDir(), "sidebar.json"))

	return conf
}

func TestBuildRecordsRevision(t *testing.T) {
	ctx := context.Background()
	conf := newBuildConfig(t, filepath.Join(t.TempDir(), "revisions.db"))

	if err := runBuild(ctx, conf, nil); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := os.Stat(string(conf.Output.Path)); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	revisions := store.NewStore(string(conf.Store.Path))
	defer revisions.Close()

	count, err := revisions.CountRevisions(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), count; e != g {
		t.Errorf("count: expected '%v', got '%v'", e, g)
	}
}

func TestBuildLeavesOutputUntouchedWhenStoreFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conf := newBuildConfig(t, filepath.Join(t.TempDir(), "missing", "revisions.db"))

	if err := runBuild(ctx, conf, nil); err == nil {
		t.Fatal("err: expected an error, got 'nil'")
	}

	if _, err := os.Stat(string(conf.Output.Path)); !os.IsNotExist(err) {
		t.Errorf("os.Stat(output): expected not exist error, got '%v'", err)
	}
}
