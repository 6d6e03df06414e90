package ctree

import "sort"

// componentMap is a snapshot of every component reachable from a sweep
// root, sorted by birth vertex, supporting binary-search lookup of "the
// component born at vertex v". Augmentation can create components the
// original comps[] table never indexed, so merge rebuilds this once per
// tree rather than reusing comps[].
type componentMap struct {
	byBirth []*component
}

// buildComponentMap walks every component reachable from root through
// pred links (a DFS, same shape as the original's ct_queueLeaves, which
// combines this walk with leaf discovery), collects them, and sorts by
// birth. Every leaf discovered along the way is also pushed onto lq.
func buildComponentMap(root *component, lq *leafQueue) *componentMap {
	var all []*component
	stack := []*component{root}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		all = append(all, c)

		if c.isLeaf() {
			lq.pushBack(c)
		} else {
			for p := c.pred; p != nil; p = p.nextPred {
				stack = append(stack, p)
			}
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].birth < all[j].birth })

	return &componentMap{byBirth: all}
}

// find returns the component born at vertex v. Panics if none exists —
// every vertex born in this tree must appear in the map once augmentation
// has run.
func (m *componentMap) find(v VId) *component {
	i := sort.Search(len(m.byBirth), func(i int) bool { return m.byBirth[i].birth >= v })
	assertf(i < len(m.byBirth) && m.byBirth[i].birth == v, "no component born at vertex %d", v)
	return m.byBirth[i]
}
