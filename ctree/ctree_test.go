package ctree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// pathMesh is a minimal Callbacks collaborator for test scenarios: a
// fixed adjacency list plus scalar values, with TotalOrder supplied
// directly by the scenario (so tests can exercise plateau/degenerate
// orderings without deriving them from the values).
type pathMesh struct {
	values []float64
	adj    [][]VId
}

func (m *pathMesh) value(v VId) float64 { return m.values[v] }

// neighbors reports a vertex's true degree even when buf is too small
// to hold every neighbor, matching a real mesh collaborator (which
// knows its own degree independently of the caller's buffer size) so
// that an undersized maxValence is actually caught by the sweep's own
// bounds check instead of being silently masked by copy's truncation.
func (m *pathMesh) neighbors(v VId, buf []VId) int {
	copy(buf, m.adj[v])
	return len(m.adj[v])
}

func (m *pathMesh) callbacks() Callbacks {
	return Callbacks{Value: m.value, Neighbors: m.neighbors}
}

// chain builds a pathMesh whose vertices 0..n-1 form a simple path
// 0-1-2-...-n-1, with the given scalar values.
func chain(values []float64) *pathMesh {
	n := len(values)
	adj := make([][]VId, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			adj[i] = append(adj[i], VId(i-1))
		}
		if i < n-1 {
			adj[i] = append(adj[i], VId(i+1))
		}
	}
	return &pathMesh{values: values, adj: adj}
}

func maxValenceOf(m *pathMesh) int {
	max := 0
	for _, a := range m.adj {
		if len(a) > max {
			max = len(a)
		}
	}
	return max
}

// S1 — monotone 1-D chain: single arc hi=4 lo=0, root branch (4,0), no children.
func TestS1MonotoneChain(t *testing.T) {
	m := chain([]float64{0, 1, 2, 3, 4})
	order := TotalOrder{0, 1, 2, 3, 4}

	ctx := Init(5, order, m.callbacks())
	ctx.SetMaxValence(maxValenceOf(m))
	tree := ctx.SweepAndMerge()

	if tree.Hi.I != 4 || tree.Lo.I != 0 {
		t.Fatalf("got arc hi=%d lo=%d, want hi=4 lo=0", tree.Hi.I, tree.Lo.I)
	}

	root := ctx.Decompose()
	if root.Extremum != 4 || root.Saddle != 0 {
		t.Fatalf("got root branch (%d,%d), want (4,0)", root.Extremum, root.Saddle)
	}
	if len(root.Children()) != 0 {
		t.Fatalf("got %d children, want 0", len(root.Children()))
	}
}

// S2 — V shape: vertex 1 is the minimum, with arcs to maxima 0 and 2.
func TestS2VShape(t *testing.T) {
	m := chain([]float64{2, 0, 3}) // order picks vertex 1 first regardless of value
	order := TotalOrder{1, 0, 2}

	ctx := Init(3, order, m.callbacks())
	ctx.SetMaxValence(maxValenceOf(m))
	ctx.SweepAndMerge()

	arcMap := ctx.ArcMap()
	a0, a1, a2 := arcMap[0], arcMap[1], arcMap[2]
	if a0 == a2 {
		t.Fatalf("vertices 0 and 2 are on opposite sides of the minimum and must have distinct arcs")
	}
	if a1 != a0 && a1 != a2 {
		t.Fatalf("vertex 1 (the minimum) must land on one of the two arcs incident to it")
	}

	root := ctx.Decompose()
	if root.Saddle != 1 {
		t.Fatalf("root saddle = %d, want 1 (the minimum)", root.Saddle)
	}
	if root.Extremum != 0 && root.Extremum != 2 {
		t.Fatalf("root extremum = %d, want 0 or 2", root.Extremum)
	}
	children := root.Children()
	if len(children) != 1 {
		t.Fatalf("got %d children, want 1", len(children))
	}
	other := 0
	if root.Extremum == 0 {
		other = 2
	}
	if children[0].Extremum != VId(other) || children[0].Saddle != 1 {
		t.Fatalf("child branch = (%d,%d), want (%d,1)", children[0].Extremum, children[0].Saddle, other)
	}
}

// S3 — W shape: two minima (1,3), two maxima (0,4), one saddle (2).
func TestS3WShape(t *testing.T) {
	m := chain([]float64{2, 0, 3, 1, 4})
	order := TotalOrder{1, 3, 0, 2, 4}

	ctx := Init(5, order, m.callbacks())
	ctx.SetMaxValence(maxValenceOf(m))
	tree := ctx.SweepAndMerge()

	arcs, nodes := ArcsAndNodes(tree)
	if len(arcs) != 4 {
		t.Fatalf("got %d arcs, want 4", len(arcs))
	}
	if len(nodes) != 5 {
		t.Fatalf("got %d nodes, want 5 (every vertex is critical in a W shape)", len(nodes))
	}

	var minima, maxima, saddles int
	for _, n := range nodes {
		switch {
		case n.isMin():
			minima++
		case n.isMax():
			maxima++
		default:
			saddles++
		}
	}
	if minima != 2 || maxima != 2 || saddles != 1 {
		t.Fatalf("got minima=%d maxima=%d saddles=%d, want 2/2/1", minima, maxima, saddles)
	}

	root := ctx.Decompose()
	var count func(b *Branch) int
	count = func(b *Branch) int {
		n := 1
		for _, c := range b.Children() {
			n += count(c)
		}
		return n
	}
	if got := count(root); got != 3 {
		t.Fatalf("got %d branches, want 3", got)
	}
}

// S4 — plateau requiring total order: all values equal, order breaks the
// tie into a single monotone chain.
func TestS4Plateau(t *testing.T) {
	m := chain([]float64{1, 1, 1, 1})
	order := TotalOrder{0, 1, 2, 3}

	ctx := Init(4, order, m.callbacks())
	ctx.SetMaxValence(maxValenceOf(m))
	ctx.SweepAndMerge()

	root := ctx.Decompose()
	if root.Extremum != 3 || root.Saddle != 0 {
		t.Fatalf("got root branch (%d,%d), want (3,0)", root.Extremum, root.Saddle)
	}
	if len(root.Children()) != 0 {
		t.Fatalf("got %d children, want 0", len(root.Children()))
	}
}

// S5 — two disjoint merges ("psi" shape): minima 0 and 2 merge at saddle
// 1 into a branch that continues up to merge with minimum 4 at saddle 3,
// finally reaching maximum 6.
//
//	0   2   4
//	 \ /   /
//	  1   /
//	   \ /
//	    3
//	    |
//	    5
//	    |
//	    6
func TestS5PsiShape(t *testing.T) {
	adj := make([][]VId, 7)
	edge := func(a, b VId) {
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	edge(0, 1)
	edge(2, 1)
	edge(1, 3)
	edge(4, 3)
	edge(3, 5)
	edge(5, 6)

	values := []float64{0, 1, 0.5, 2, 1.5, 3, 4}
	m := &pathMesh{values: values, adj: adj}
	order := TotalOrder{0, 2, 1, 4, 3, 5, 6}

	ctx := Init(7, order, m.callbacks())
	ctx.SetMaxValence(maxValenceOf(m))
	tree := ctx.SweepAndMerge()

	arcs, nodes := ArcsAndNodes(tree)
	// 6 critical vertices (3 minima + 1 maximum + 2 saddles) make a tree
	// of 5 arcs.
	if len(arcs) != 5 {
		t.Fatalf("got %d arcs, want 5", len(arcs))
	}

	var minima, maxima, saddles int
	for _, n := range nodes {
		switch {
		case n.isMin():
			minima++
		case n.isMax():
			maxima++
		default:
			saddles++
		}
	}
	if minima != 3 || maxima != 1 || saddles != 2 {
		t.Fatalf("got minima=%d maxima=%d saddles=%d, want 3/1/2", minima, maxima, saddles)
	}

	arcMap := ctx.ArcMap()
	for v := VId(0); v < 7; v++ {
		if arcMap[v] == nil {
			t.Fatalf("vertex %d has no arc", v)
		}
	}
	// 0 and 2 are on either side of the first saddle (vertex 1) and must
	// land on distinct arcs.
	if arcMap[0] == arcMap[2] {
		t.Fatalf("vertices 0 and 2 should not share an arc")
	}
	// 5 is regular (degree 2, between the second saddle and the
	// maximum) and must share its arc with the maximum, vertex 6.
	if arcMap[5] != arcMap[6] {
		t.Fatalf("vertices 5 and 6 should share an arc")
	}
}

// S6 — simplification determinism: decomposing two independent copies of
// the same tree with the same priority yields identical branch
// hierarchies (compared structurally, since Go pointer identity differs
// between the two copies).
func TestS6DecompositionDeterminism(t *testing.T) {
	m := chain([]float64{2, 0, 3, 1, 4})
	order := TotalOrder{1, 3, 0, 2, 4}

	build := func() *Branch {
		ctx := Init(5, order, m.callbacks())
		ctx.SetMaxValence(maxValenceOf(m))
		ctx.SweepAndMerge()
		return ctx.Decompose()
	}

	root1 := build()
	root2 := build()

	type shape struct {
		Extremum, Saddle VId
		Children         []shape
	}
	var snapshot func(b *Branch) shape
	snapshot = func(b *Branch) shape {
		s := shape{Extremum: b.Extremum, Saddle: b.Saddle}
		for _, c := range b.Children() {
			s.Children = append(s.Children, snapshot(c))
		}
		return s
	}

	if diff := cmp.Diff(snapshot(root1), snapshot(root2), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("decomposition is not deterministic (-run1 +run2):\n%s", diff)
	}
}

// TestCopyTreeRoundTrip exercises the §6.2/§C.1 CopyTree/ArcsAndNodes/
// DeleteTree trio: a copy must have the same shape as the original and
// be independently destructible.
func TestCopyTreeRoundTrip(t *testing.T) {
	m := chain([]float64{2, 0, 3, 1, 4})
	order := TotalOrder{1, 3, 0, 2, 4}

	ctx := Init(5, order, m.callbacks())
	ctx.SetMaxValence(maxValenceOf(m))
	tree := ctx.SweepAndMerge()

	copied := ctx.CopyTree(tree, false)

	origArcs, origNodes := ArcsAndNodes(tree)
	copyArcs, copyNodes := ArcsAndNodes(copied)

	if len(origArcs) != len(copyArcs) {
		t.Fatalf("copy has %d arcs, original has %d", len(copyArcs), len(origArcs))
	}
	if len(origNodes) != len(copyNodes) {
		t.Fatalf("copy has %d nodes, original has %d", len(copyNodes), len(origNodes))
	}

	vertexSet := func(nodes []*Node) map[VId]bool {
		s := make(map[VId]bool, len(nodes))
		for _, n := range nodes {
			s[n.I] = true
		}
		return s
	}
	if diff := cmp.Diff(vertexSet(origNodes), vertexSet(copyNodes)); diff != "" {
		t.Fatalf("copy does not cover the same vertex set (-orig +copy):\n%s", diff)
	}

	ctx.DeleteTree(copied)

	// The original tree must still be walkable after the copy is deleted.
	arcsAfter, nodesAfter := ArcsAndNodes(tree)
	if len(arcsAfter) != len(origArcs) || len(nodesAfter) != len(origNodes) {
		t.Fatalf("deleting the copy corrupted the original tree")
	}
}

// TestMaxValenceViolation checks that a mesh reporting more neighbors
// than the configured maxValence panics with a ViolationError, per
// §7's "contract violations panic" rule.
func TestMaxValenceViolation(t *testing.T) {
	m := chain([]float64{0, 1, 2, 3})
	order := TotalOrder{0, 1, 2, 3}

	ctx := Init(4, order, m.callbacks())
	ctx.SetMaxValence(1) // every interior vertex here has 2 neighbors

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for exceeding maxValence, got none")
		}
		if _, ok := r.(*ViolationError); !ok {
			t.Fatalf("expected *ViolationError, got %T: %v", r, r)
		}
	}()
	ctx.SweepAndMerge()
}

// TestVolumeAccumulation exercises ProcVertex/ArcMerge, the accumulator
// pattern from SPEC_FULL.md §C.4: every vertex in the chain should end
// up counted exactly once across the arcs it belongs to.
func TestVolumeAccumulation(t *testing.T) {
	m := chain([]float64{0, 1, 2, 3, 4})
	order := TotalOrder{0, 1, 2, 3, 4}

	cb := m.callbacks()
	counts := make(map[*Arc]int)
	cb.ProcVertex = func(v VId, a *Arc) { counts[a]++ }
	cb.ArcMerge = func(keep, discard *Arc) {
		counts[keep] += counts[discard]
		delete(counts, discard)
	}

	ctx := Init(5, order, cb)
	ctx.SetMaxValence(maxValenceOf(m))
	ctx.SweepAndMerge()

	total := 0
	for _, c := range counts {
		total += c
	}
	if total != 5 {
		t.Fatalf("got %d total accumulated vertices, want 5", total)
	}
}
