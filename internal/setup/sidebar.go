package setup

import (
	"context"

	"github.com/bornholm/sidenav/internal/config"
	"github.com/bornholm/sidenav/internal/preview"
	"github.com/bornholm/sidenav/pkg/sidebar"
	"github.com/bornholm/sidenav/pkg/starlight"
	"github.com/pkg/errors"
)

// NewSnapshotFromConfig builds the sidebar declared in the configuration:
// autogenerated groups are expanded from the content pages, excluded entries
// are pruned and the resulting tree is validated.
func NewSnapshotFromConfig(ctx context.Context, conf *config.Config) (*preview.Snapshot, error) {
	nodes, err := NewSidebarFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	collection, err := NewContentFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	funcs := []sidebar.ValidateOptionFunc{
		sidebar.WithStrict(bool(conf.Sidebar.Strict)),
	}

	if collection != nil && bool(conf.Sidebar.Resolve) {
		funcs = append(funcs, sidebar.WithResolver(collection))
	}

	report, err := sidebar.Validate(ctx, nodes, funcs...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &preview.Snapshot{
		Config: NewStarlightConfigFromConfig(conf, nodes),
		Report: report,
	}, nil
}

func NewSidebarFromConfig(ctx context.Context, conf *config.Config) (sidebar.Sidebar, error) {
	nodes := conf.Sidebar.Items.Clone()

	collection, err := NewContentFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if collection != nil {
		// Pages may have changed since the previous build
		collection.Reload()

		nodes, err = sidebar.Expand(ctx, nodes, collection)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	rules := make([]*sidebar.Rule, 0, len(conf.Sidebar.Exclude))
	for _, script := range conf.Sidebar.Exclude {
		rule := sidebar.NewRule(script)
		if err := rule.Compile(); err != nil {
			return nil, errors.Wrapf(err, "could not compile exclusion rule '%s'", script)
		}

		rules = append(rules, rule)
	}

	nodes, err = sidebar.Prune(nodes, rules...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return nodes, nil
}

func NewStarlightConfigFromConfig(conf *config.Config, nodes sidebar.Sidebar) *starlight.Config {
	site := conf.Site

	starlightConf := &starlight.Config{
		Site:        string(site.URL),
		Title:       string(site.Title),
		Description: string(site.Description),
		Social:      make([]starlight.Social, 0, len(site.Social)),
		Head:        make([]starlight.HeadEntry, 0, len(site.Head)),
		CustomCSS:   []string(site.CustomCSS),
		Sidebar:     nodes,
	}

	if site.Logo != nil {
		starlightConf.Logo = &starlight.Logo{
			Src:           string(site.Logo.Src),
			Alt:           string(site.Logo.Alt),
			ReplacesTitle: bool(site.Logo.ReplacesTitle),
		}
	}

	for _, s := range site.Social {
		starlightConf.Social = append(starlightConf.Social, starlight.Social{
			Icon:  string(s.Icon),
			Label: string(s.Label),
			Href:  string(s.Href),
		})
	}

	for _, h := range site.Head {
		entry := starlight.HeadEntry{
			Tag:     string(h.Tag),
			Content: string(h.Content),
		}

		if h.Attrs != nil {
			entry.Attrs = h.Attrs.Data
		}

		starlightConf.Head = append(starlightConf.Head, entry)
	}

	return starlightConf
}
