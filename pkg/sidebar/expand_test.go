package sidebar

import (
	"context"
	"testing"

	"github.com/pkg/errors"
)

type fakeGenerator struct {
	directories map[string]Sidebar
	titles      map[string]string
}

func (g *fakeGenerator) Generate(ctx context.Context, directory string) (Sidebar, error) {
	nodes, exists := g.directories[directory]
	if !exists {
		return nil, errors.Errorf("unknown directory '%s'", directory)
	}

	return nodes.Clone(), nil
}

func (g *fakeGenerator) Title(ctx context.Context, slug string) (string, bool, error) {
	title, exists := g.titles[slug]
	return title, exists, nil
}

func TestExpand(t *testing.T) {
	generator := &fakeGenerator{
		directories: map[string]Sidebar{
			"themes": {
				{Label: "Theme Basics", Slug: "themes/basics"},
				{Label: "Advanced", Items: Sidebar{{Label: "Contributors", Slug: "themes/advanced/contributors"}}},
			},
		},
		titles: map[string]string{
			"portlets/mvc-portlet": "MVC Portlet",
		},
	}

	nodes := Sidebar{
		{Label: "Tutorials", Items: Sidebar{
			{Label: "portlets/mvc-portlet", Slug: "portlets/mvc-portlet", shorthand: true},
			{Label: "Themes", Autogenerate: &Autogenerate{Directory: "themes", Collapsed: true}},
		}},
	}

	expanded, err := Expand(context.Background(), nodes, generator)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	tutorials := expanded[0]

	if e, g := "MVC Portlet", tutorials.Items[0].Label; e != g {
		t.Errorf("tutorials.Items[0].Label: expected '%v', got '%v'", e, g)
	}

	themes := tutorials.Items[1]
	if e, g := KindGroup, themes.Kind(); e != g {
		t.Errorf("themes.Kind(): expected '%v', got '%v'", e, g)
	}

	if e, g := 2, len(themes.Items); e != g {
		t.Fatalf("len(themes.Items): expected '%v', got '%v'", e, g)
	}

	if !themes.Items[1].Collapsed {
		t.Errorf("themes.Items[1].Collapsed: expected 'true', got 'false'")
	}

	// Input tree is left untouched
	if e, g := "portlets/mvc-portlet", nodes[0].Items[0].Label; e != g {
		t.Errorf("nodes[0].Items[0].Label: expected '%v', got '%v'", e, g)
	}

	if nodes[0].Items[1].Autogenerate == nil {
		t.Errorf("nodes[0].Items[1].Autogenerate: expected descriptor to be preserved")
	}
}

func TestExpandFailure(t *testing.T) {
	nodes := Sidebar{
		{Label: "Missing", Autogenerate: &Autogenerate{Directory: "missing"}},
	}

	if _, err := Expand(context.Background(), nodes, &fakeGenerator{}); err == nil {
		t.Errorf("err: expected error, got nil")
	}
}
