package setup

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bornholm/sidenav/internal/authn/basic"
	"github.com/bornholm/sidenav/internal/config"
	"github.com/bornholm/sidenav/pkg/filesystem/local"
	"github.com/bornholm/sidenav/pkg/filesystem/testsuite"
	"github.com/bornholm/sidenav/pkg/sidebar"
	"github.com/pkg/errors"
)

const testSidebar = `
- label: Introduction
  items:
    - introduction/what-is-liferay
- label: OSGi
  autogenerate:
    directory: osgi
- label: Upcoming
  slug: themes/advanced/drafts/upcoming
- label: Liferay Forum
  link: https://liferay.dev/forums
`

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()

	if err := testsuite.SeedDir(dir); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	items, err := sidebar.DecodeBytes([]byte(testSidebar))
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
	conf.Sidebar.Exclude = config.InterpolatedStringSlice{`slug startsWith "themes/"`}
	conf.Sidebar.Strict = true
	conf.Store.Path = ""
	conf.Output.Format = "json"
	conf.Output.Path = config.InterpolatedString(filepath.Join(t.TempDir(), "site", "sidebar.json"))

	return conf
}

func TestNewSnapshotFromConfig(t *testing.T) {
	ctx := context.Background()
	conf := newTestConfig(t)

	snapshot, err := NewSnapshotFromConfig(ctx, conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := snapshot.Report.Err(); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	nodes := snapshot.Config.Sidebar

	if e, g := 3, len(nodes); e != g {
		t.Fatalf("len(nodes): expected '%v', got '%v'", e, g)
	}

	if e, g := "What is Liferay?", nodes[0].Items[0].Label; e != g {
		t.Errorf("nodes[0].Items[0].Label: expected '%v', got '%v'", e, g)
	}

	osgi := nodes[1]

	if osgi.Autogenerate != nil {
		t.Errorf("osgi.Autogenerate: expected expanded group")
	}

	labels := []string{}
	for _, n := range osgi.Items {
		labels = append(labels, n.Label)
	}

	if e, g := "Services,Modules", strings.Join(labels, ","); e != g {
		t.Errorf("osgi labels: expected '%v', got '%v'", e, g)
	}

	if e, g := "Liferay Forum", nodes[2].Label; e != g {
		t.Errorf("nodes[2].Label: expected '%v', got '%v'", e, g)
	}

	if e, g := "https://docs.example.net", snapshot.Config.Site; e != g {
		t.Errorf("snapshot.Config.Site: expected '%v', got '%v'", e, g)
	}

	if conf.Sidebar.Items[1].Autogenerate == nil {
		t.Errorf("conf.Sidebar.Items[1].Autogenerate: expected declared tree to be left untouched")
	}

	var stdout bytes.Buffer

	path, err := WriteOutputFromConfig(ctx, conf, snapshot.Config, &stdout)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !strings.Contains(string(data), `"label": "What is Liferay?"`) {
		t.Errorf("output: expected expanded labels, got '%s'", data)
	}

	if stdout.Len() != 0 {
		t.Errorf("stdout: expected nothing to be written")
	}
}

func TestNewSnapshotFromConfigUnresolved(t *testing.T) {
	ctx := context.Background()
	conf := newTestConfig(t)

	conf.Sidebar.Items = append(conf.Sidebar.Items, &sidebar.Node{Label: "Missing", Slug: "does/not-exist"})

	snapshot, err := NewSnapshotFromConfig(ctx, conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	issues := snapshot.Report.Errors()

	if e, g := 1, len(issues); e != g {
		t.Fatalf("len(issues): expected '%v', got '%v'", e, g)
	}

	if e, g := sidebar.CodeUnresolvedSlug, issues[0].Code; e != g {
		t.Errorf("issues[0].Code: expected '%v', got '%v'", e, g)
	}
}

func TestNewHandlerFromConfig(t *testing.T) {
	ctx := context.Background()
	conf := newTestConfig(t)

	hash, err := basic.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	conf.HTTP.DAV.Enabled = true
	conf.HTTP.DAV.Users = []config.DAVUser{
		{Username: "editor", PasswordHash: string(hash)},
	}

	handler, err := NewHandlerFromConfig(ctx, conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if e, g := http.StatusOK, w.Code; e != g {
		t.Errorf("GET /: expected '%v', got '%v'", e, g)
	}

	if !strings.Contains(w.Body.String(), "What is Liferay?") {
		t.Errorf("GET /: expected the expanded sidebar to be rendered")
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dav/osgi/modules.md", nil))

	if e, g := http.StatusUnauthorized, w.Code; e != g {
		t.Errorf("GET /dav/osgi/modules.md: expected '%v', got '%v'", e, g)
	}

	req := httptest.NewRequest(http.MethodGet, "/dav/osgi/modules.md", nil)
	req.SetBasicAuth("editor", "s3cret")

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if e, g := http.StatusOK, w.Code; e != g {
		t.Errorf("GET /dav/osgi/modules.md: expected '%v', got '%v'", e, g)
	}

	if e, g := testsuite.Fixture["osgi/modules.md"], w.Body.String(); e != g {
		t.Errorf("GET /dav/osgi/modules.md: expected '%v', got '%v'", e, g)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))

	if e, g := http.StatusOK, w.Code; e == g {
		t.Errorf("GET /debug/pprof/: expected profiling to be disabled")
	}
}
