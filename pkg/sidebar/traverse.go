package sidebar

import (
	"iter"
)

// Walk yields every node of the tree with its depth, in declaration order.
// Top level nodes have depth 1. The sequence can be iterated several times.
func Walk(nodes Sidebar) iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		walk(nodes, 1, yield)
	}
}

func walk(nodes Sidebar, depth int, yield func(int, *Node) bool) bool {
	for _, n := range nodes {
		if n == nil {
			continue
		}

		if !yield(depth, n) {
			return false
		}

		if !walk(n.Items, depth+1, yield) {
			return false
		}
	}

	return true
}

// Leaves yields the nodes pointing at a page or a link.
func Leaves(nodes Sidebar) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, n := range Walk(nodes) {
			if !n.HasTarget() {
				continue
			}

			if !yield(n) {
				return
			}
		}
	}
}

// Slugs yields the page slugs referenced by the tree, duplicates included.
func Slugs(nodes Sidebar) iter.Seq[string] {
	return func(yield func(string) bool) {
		for n := range Leaves(nodes) {
			if n.Slug == "" {
				continue
			}

			if !yield(n.Slug) {
				return
			}
		}
	}
}

// Find returns the first node targeting the given slug.
func Find(nodes Sidebar, slug string) (*Node, bool) {
	for n := range Leaves(nodes) {
		if n.Slug == slug {
			return n, true
		}
	}

	return nil, false
}

func Count(nodes Sidebar) int {
	total := 0
	for range Walk(nodes) {
		total++
	}

	return total
}
