package sidebar

import (
	"github.com/pkg/errors"
)

// Prune returns a copy of the tree without the nodes matched by any of the
// rules. Groups left without children are removed as well.
func Prune(nodes Sidebar, rules ...*Rule) (Sidebar, error) {
	if len(rules) == 0 {
		return nodes.Clone(), nil
	}

	var prune func(nodes Sidebar, depth int) (Sidebar, error)
	prune = func(nodes Sidebar, depth int) (Sidebar, error) {
		kept := make(Sidebar, 0, len(nodes))

		for _, n := range nodes {
			if n == nil {
				continue
			}

			excluded := false
			for _, r := range rules {
				matched, err := r.Match(depth, n)
				if err != nil {
					return nil, errors.Wrapf(err, "could not evaluate rule '%s' on node '%s'", r, n.Label)
				}

				if matched {
					excluded = true
					break
				}
			}

			if excluded {
				continue
			}

			clone := n.Clone()

			if n.Items != nil {
				items, err := prune(n.Items, depth+1)
				if err != nil {
					return nil, errors.WithStack(err)
				}

				if len(items) == 0 && len(n.Items) > 0 {
					continue
				}

				clone.Items = items
			}

			kept = append(kept, clone)
		}

		return kept, nil
	}

	pruned, err := prune(nodes, 1)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return pruned, nil
}
