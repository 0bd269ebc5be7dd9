package preview

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bornholm/sidenav/internal/store"
	"github.com/bornholm/sidenav/pkg/sidebar"
	"github.com/bornholm/sidenav/pkg/starlight"
	"github.com/pkg/errors"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestSource(t *testing.T) SourceFunc {
	t.Helper()

	nodes := sidebar.Sidebar{
		{Label: "Introduction", Slug: "introduction"},
		{Label: "OSGi Concepts", Collapsed: true, Items: sidebar.Sidebar{
			{Label: "Modules", Slug: "osgi/modules", Badge: &sidebar.Badge{Text: "New", Variant: sidebar.BadgeTip}},
			{Label: "Forum", Link: "https://liferay.dev/forums"},
		}},
	}

	report, err := sidebar.Validate(context.Background(), nodes)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return func(ctx context.Context) (*Snapshot, error) {
		return &Snapshot{
			Config: &starlight.Config{
				Site:        "https://liferay-studio.github.io",
				Title:       "Liferay Studio",
				Description: "Tools and projects for Liferay developers.",
				Sidebar:     nodes,
			},
			Report: report,
		}, nil
	}
}

type memoryHistory struct {
	revisions []*store.Revision
}

func (h *memoryHistory) ListRevisions(ctx context.Context, limit int) ([]*store.Revision, error) {
	if limit > 0 && limit < len(h.revisions) {
		return h.revisions[:limit], nil
	}

	return h.revisions, nil
}

func (h *memoryHistory) GetRevision(ctx context.Context, id string) (*store.Revision, error) {
	for _, r := range h.revisions {
		if r.ID == id {
			return r, nil
		}
	}

	return nil, errors.WithStack(store.ErrRevisionNotFound)
}

var _ History = &memoryHistory{}

func doRequest(t *testing.T, handler http.Handler, target string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return res, string(body)
}

func TestServeIndex(t *testing.T) {
	content := []byte("- label: Introduction\n  slug: introduction\n")

	revision := &store.Revision{
		ID:        "d1gk3pbqvlpqrmcuqcbg",
		Checksum:  "9b1ad1e0f4a3c2b8e7d6f5a4b3c2d1e0",
		Content:   content,
		Nodes:     1,
		Size:      int64(len(content)),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}

	handler := NewHandler(newTestSource(t), WithHistory(&memoryHistory{revisions: []*store.Revision{revision}}), WithDAV(true))

	res, body := doRequest(t, handler, "/")

	if e, g := http.StatusOK, res.StatusCode; e != g {
		t.Fatalf("res.StatusCode: expected '%v', got '%v'", e, g)
	}

	expected := []string{
		"Liferay Studio",
		"OSGi Concepts",
		"osgi/modules",
		"https://liferay.dev/forums",
		"/revisions/" + revision.ID,
		`href="/dav/"`,
		"4 nodes",
		"9b1ad1e0f4a3",
		"2 hours ago",
	}

	for _, e := range expected {
		if !strings.Contains(body, e) {
			t.Errorf("body: expected to contain '%s'", e)
		}
	}

	res, body = doRequest(t, handler, "/revisions/"+revision.ID)

	if e, g := http.StatusOK, res.StatusCode; e != g {
		t.Fatalf("res.StatusCode: expected '%v', got '%v'", e, g)
	}

	if e, g := string(revision.Content), body; e != g {
		t.Errorf("body: expected '%v', got '%v'", e, g)
	}

	res, _ = doRequest(t, handler, "/revisions/unknown")

	if e, g := http.StatusNotFound, res.StatusCode; e != g {
		t.Errorf("res.StatusCode: expected '%v', got '%v'", e, g)
	}
}

func TestServeSidebarJSON(t *testing.T) {
	handler := NewHandler(newTestSource(t))

	res, body := doRequest(t, handler, "/sidebar.json")

	if e, g := http.StatusOK, res.StatusCode; e != g {
		t.Fatalf("res.StatusCode: expected '%v', got '%v'", e, g)
	}

	if e, g := "application/json", res.Header.Get("Content-Type"); e != g {
		t.Errorf("Content-Type: expected '%v', got '%v'", e, g)
	}

	var nodes []map[string]any
	if err := json.Unmarshal([]byte(body), &nodes); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(nodes); e != g {
		t.Fatalf("len(nodes): expected '%v', got '%v'", e, g)
	}

	if e, g := true, nodes[1]["collapsed"]; e != g {
		t.Errorf("nodes[1][\"collapsed\"]: expected '%v', got '%v'", e, g)
	}
}

func TestServeAstroConfig(t *testing.T) {
	handler := NewHandler(newTestSource(t))

	res, body := doRequest(t, handler, "/astro.config.mjs")

	if e, g := http.StatusOK, res.StatusCode; e != g {
		t.Fatalf("res.StatusCode: expected '%v', got '%v'", e, g)
	}

	if !strings.Contains(body, "export default defineConfig({") {
		t.Errorf("body: expected an astro configuration module, got '%s'", body)
	}

	res, _ = doRequest(t, handler, "/revisions/any")

	if e, g := http.StatusNotFound, res.StatusCode; e != g {
		t.Errorf("res.StatusCode: expected '%v', got '%v'", e, g)
	}
}

func TestServeIndexBuildError(t *testing.T) {
	handler := NewHandler(SourceFunc(func(ctx context.Context) (*Snapshot, error) {
		return nil, errors.New("content directory unavailable")
	}))

	res, body := doRequest(t, handler, "/")

	if e, g := http.StatusInternalServerError, res.StatusCode; e != g {
		t.Errorf("res.StatusCode: expected '%v', got '%v'", e, g)
	}

	if !strings.Contains(body, "content directory unavailable") {
		t.Errorf("body: expected build error to be displayed")
	}
}
