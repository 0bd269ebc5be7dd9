package sidebar

import (
	"context"

	"github.com/pkg/errors"
)

// Generator produces the nodes of an autogenerated group from a content
// directory.
type Generator interface {
	Generate(ctx context.Context, directory string) (Sidebar, error)
}

// Titler provides the title of the page behind a slug. Generators
// implementing it are used to label shorthand entries.
type Titler interface {
	Title(ctx context.Context, slug string) (string, bool, error)
}

// Expand returns a copy of the tree where autogenerated groups are replaced
// by plain groups holding the nodes produced by the generator. Groups nested
// in generated nodes inherit the collapsed flag of the autogenerate
// descriptor.
func Expand(ctx context.Context, nodes Sidebar, generator Generator) (Sidebar, error) {
	titler, _ := generator.(Titler)

	var expand func(nodes Sidebar) (Sidebar, error)
	expand = func(nodes Sidebar) (Sidebar, error) {
		expanded := make(Sidebar, 0, len(nodes))

		for _, n := range nodes {
			if n == nil {
				continue
			}

			clone := n.Clone()

			if clone.shorthand && titler != nil {
				title, found, err := titler.Title(ctx, clone.Slug)
				if err != nil {
					return nil, errors.Wrapf(err, "could not retrieve title of page '%s'", clone.Slug)
				}

				if found && title != "" {
					clone.Label = title
				}
			}

			switch {
			case clone.Autogenerate != nil:
				generated, err := generator.Generate(ctx, clone.Autogenerate.Directory)
				if err != nil {
					return nil, errors.Wrapf(err, "could not generate group '%s' from directory '%s'", clone.Label, clone.Autogenerate.Directory)
				}

				if clone.Autogenerate.Collapsed {
					for _, g := range Walk(generated) {
						if g.IsGroup() {
							g.Collapsed = true
						}
					}
				}

				clone.Items = append(Sidebar{}, clone.Items...)
				clone.Items = append(clone.Items, generated...)
				clone.Autogenerate = nil

			case clone.Items != nil:
				items, err := expand(clone.Items)
				if err != nil {
					return nil, errors.WithStack(err)
				}

				clone.Items = items
			}

			expanded = append(expanded, clone)
		}

		return expanded, nil
	}

	expanded, err := expand(nodes)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return expanded, nil
}
