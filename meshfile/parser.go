package meshfile

import (
	"fmt"
	"sort"

	"github.com/cem-okulmus/contourtree/ctree"
)

// Mesh is a free-form mesh parsed from the VERTEX/EDGE text format: an
// adjacency list plus per-vertex scalar values, implementing the same
// ctree.Callbacks shape as gridmesh.Grid but without assuming any
// regular grid structure.
type Mesh struct {
	Values    []float64
	Adjacency [][]ctree.VId
}

// Parse reads the VERTEX/EDGE text format described in grammar.go and
// returns a Mesh.
//
// Grounded on lib/parser.go's GetGraph: a participle.MustBuild grammar
// parsed once into a lightweight statement list, followed by a single
// pass assembling the caller-facing structure (there, a renumbered
// Graph; here, a dense adjacency list and value table).
func Parse(s string) (*Mesh, error) {
	var mf meshFile
	if err := grammar.ParseString(s, &mf); err != nil {
		return nil, fmt.Errorf("meshfile: parse: %w", err)
	}

	maxID := -1
	for _, st := range mf.Statements {
		if st.Vertex != nil && st.Vertex.ID > maxID {
			maxID = st.Vertex.ID
		}
	}
	if maxID < 0 {
		return nil, fmt.Errorf("meshfile: no VERTEX statements")
	}

	m := &Mesh{
		Values:    make([]float64, maxID+1),
		Adjacency: make([][]ctree.VId, maxID+1),
	}
	seen := make([]bool, maxID+1)

	for _, st := range mf.Statements {
		switch {
		case st.Vertex != nil:
			v := st.Vertex
			if v.ID < 0 || v.ID > maxID {
				return nil, fmt.Errorf("meshfile: vertex id %d out of range", v.ID)
			}
			m.Values[v.ID] = v.Value
			seen[v.ID] = true

		case st.Edge != nil:
			e := st.Edge
			if e.A < 0 || e.A > maxID || e.B < 0 || e.B > maxID {
				return nil, fmt.Errorf("meshfile: edge (%d,%d) references an undeclared vertex", e.A, e.B)
			}
			m.Adjacency[e.A] = append(m.Adjacency[e.A], ctree.VId(e.B))
			m.Adjacency[e.B] = append(m.Adjacency[e.B], ctree.VId(e.A))
		}
	}

	for id, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("meshfile: vertex %d referenced but never declared with VERTEX", id)
		}
	}

	return m, nil
}

// NumVerts returns the number of vertices in the mesh.
func (m *Mesh) NumVerts() int { return len(m.Values) }

// Value returns v's scalar sample. Satisfies ctree.Callbacks.Value.
func (m *Mesh) Value(v ctree.VId) float64 { return m.Values[v] }

// Neighbors copies as much of v's adjacency list as fits into buf and
// returns the number of entries copied.
// Satisfies ctree.Callbacks.Neighbors.
func (m *Mesh) Neighbors(v ctree.VId, buf []ctree.VId) int {
	return copy(buf, m.Adjacency[v])
}

// MaxValence returns the degree of the mesh's highest-degree vertex, for
// ctree.Context.SetMaxValence.
func (m *Mesh) MaxValence() int {
	max := 0
	for _, adj := range m.Adjacency {
		if len(adj) > max {
			max = len(adj)
		}
	}
	return max
}

// Less is the symbolic-perturbation total-order comparator: ties in
// scalar value break on vertex id, the same convention as
// gridmesh.Grid.Less.
func (m *Mesh) Less(a, b ctree.VId) bool {
	if m.Values[a] == m.Values[b] {
		return a < b
	}
	return m.Values[a] < m.Values[b]
}

// TotalOrder returns every vertex sorted ascending by Less, ready to
// pass to ctree.Init.
func (m *Mesh) TotalOrder() ctree.TotalOrder {
	order := make(ctree.TotalOrder, m.NumVerts())
	for i := range order {
		order[i] = ctree.VId(i)
	}
	sort.Slice(order, func(i, j int) bool { return m.Less(order[i], order[j]) })
	return order
}

// Callbacks returns a ctree.Callbacks wired to this mesh's Value and
// Neighbors.
func (m *Mesh) Callbacks() ctree.Callbacks {
	return ctree.Callbacks{
		Value:     m.Value,
		Neighbors: m.Neighbors,
	}
}
