package preview

import (
	"embed"
	"html/template"
	"time"

	"github.com/bornholm/sidenav/internal/store"
	"github.com/bornholm/sidenav/internal/ui"
	"github.com/bornholm/sidenav/pkg/sidebar"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

var templates *template.Template

func init() {
	tmpl, err := ui.Templates(nil, templateFs)
	if err != nil {
		panic(errors.WithStack(err))
	}

	templates = tmpl
}

// NodeTemplateData is one row of the rendered sidebar tree
type NodeTemplateData struct {
	Depth     int
	Kind      sidebar.Kind
	Label     string
	Slug      string
	Link      string
	Collapsed bool
	Badge     *sidebar.Badge
}

type RevisionTemplateData struct {
	ID        string
	Checksum  string
	Nodes     int
	Size      int64
	CreatedAt time.Time
}

type IndexTemplateData struct {
	ui.HeadTemplateData
	ui.NavbarTemplateData
	Description    string
	BuildError     string
	Nodes          []NodeTemplateData
	Errors         []sidebar.Issue
	Warnings       []sidebar.Issue
	HistoryEnabled bool
	Revisions      []RevisionTemplateData
}

func NewNodeTemplateData(depth int, n *sidebar.Node) NodeTemplateData {
	return NodeTemplateData{
		Depth:     depth,
		Kind:      n.Kind(),
		Label:     n.Label,
		Slug:      n.Slug,
		Link:      n.Link,
		Collapsed: n.Collapsed,
		Badge:     n.Badge,
	}
}

func NewRevisionTemplateData(r *store.Revision) RevisionTemplateData {
	checksum := r.Checksum
	if len(checksum) > 12 {
		checksum = checksum[:12]
	}

	return RevisionTemplateData{
		ID:        r.ID,
		Checksum:  checksum,
		Nodes:     r.Nodes,
		Size:      r.Size,
		CreatedAt: r.CreatedAt,
	}
}
