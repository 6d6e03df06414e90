// Package gridmesh implements the ctree.Callbacks mesh collaborator for
// a regular 3D voxel grid: neighbor enumeration by tetrahedral-parity
// connectivity, scalar lookup, and a symbolic-perturbation total order.
//
// ctree never imports this package; a caller wires Grid's methods into
// ctree.Callbacks and ctree.Init itself.
package gridmesh

import (
	"sort"

	"github.com/cem-okulmus/contourtree/ctree"
)

// oddTetParity selects the 6- vs. 18-neighbor connectivity scheme for a
// voxel, alternating by (x+y+z)%2 so adjacent voxels use complementary
// schemes — the standard freudenthal/tetrahedral subdivision of a cubic
// grid into simplices.
//
// Grounded on original_source/examples/simple/src/Global.h's
// ODD_TET_PARITY.
const oddTetParity = 1

// Grid is a regular NX x NY x NZ voxel grid with one scalar sample per
// vertex, addressed in x-fastest, then y, then z order.
//
// Grounded on original_source/examples/simple/src/{Mesh,Data}.{h,cpp}.
type Grid struct {
	NX, NY, NZ int
	Values     []float64
}

// New builds a Grid over nx*ny*nz samples. len(values) must equal
// nx*ny*nz.
func New(nx, ny, nz int, values []float64) *Grid {
	if len(values) != nx*ny*nz {
		panic("gridmesh.New: len(values) does not match nx*ny*nz")
	}
	return &Grid{NX: nx, NY: ny, NZ: nz, Values: values}
}

// NumVerts returns the number of grid vertices.
func (g *Grid) NumVerts() int { return g.NX * g.NY * g.NZ }

// index converts grid coordinates to a flat vertex id.
//
// Grounded on Data::convertIndex(x,y,z).
func (g *Grid) index(x, y, z int) ctree.VId {
	return ctree.VId((z*g.NY+y)*g.NX + x)
}

// coords converts a flat vertex id back to grid coordinates.
//
// Grounded on Data::convertIndex(id,&x,&y,&z).
func (g *Grid) coords(v ctree.VId) (x, y, z int) {
	id := int(v)
	size01 := g.NX * g.NY
	z = id / size01
	y = (id - z*size01) / g.NX
	x = id - z*size01 - y*g.NX
	return
}

// Value returns the scalar sample at v. Satisfies ctree.Callbacks.Value.
func (g *Grid) Value(v ctree.VId) float64 { return g.Values[v] }

// Less is the symbolic-perturbation total order comparator: ties in
// scalar value break on vertex id, guaranteeing a strict order over the
// whole vertex set regardless of how the scalar field is sampled.
//
// Grounded on Data::less.
func (g *Grid) Less(a, b ctree.VId) bool {
	if g.Values[a] == g.Values[b] {
		return a < b
	}
	return g.Values[a] < g.Values[b]
}

// TotalOrder returns every vertex sorted ascending by Less, ready to
// pass to ctree.Init.
//
// Grounded on Mesh::createGraph.
func (g *Grid) TotalOrder() ctree.TotalOrder {
	order := make(ctree.TotalOrder, g.NumVerts())
	for i := range order {
		order[i] = ctree.VId(i)
	}
	sort.Slice(order, func(i, j int) bool { return g.Less(order[i], order[j]) })
	return order
}

// Neighbors fills buf with v's neighbors under tetrahedral-parity
// connectivity and returns the count. Satisfies ctree.Callbacks.Neighbors.
//
// Grounded on Mesh::getNeighbors.
func (g *Grid) Neighbors(v ctree.VId, buf []ctree.VId) int {
	x, y, z := g.coords(v)
	if (x+y+z)%2 == oddTetParity {
		return g.find6Neighbors(x, y, z, buf)
	}
	return g.find18Neighbors(x, y, z, buf)
}

// MaxValence is the largest possible return value of Neighbors, for
// ctree.Context.SetMaxValence.
func (g *Grid) MaxValence() int { return 18 }

// find6Neighbors lists the 6 face-adjacent voxels of (x,y,z), skipping
// any that fall outside the grid.
//
// Grounded on Mesh::find6Neighbors.
func (g *Grid) find6Neighbors(x, y, z int, buf []ctree.VId) int {
	type delta struct{ dx, dy, dz int }
	deltas := [6]delta{
		{-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
		{+1, 0, 0}, {0, +1, 0}, {0, 0, +1},
	}

	n := 0
	for _, d := range deltas {
		nx, ny, nz := x+d.dx, y+d.dy, z+d.dz
		if nx < 0 || nx >= g.NX || ny < 0 || ny >= g.NY || nz < 0 || nz >= g.NZ {
			continue
		}
		buf[n] = g.index(nx, ny, nz)
		n++
	}
	return n
}

// find18Neighbors lists the 6 face-adjacent and 12 edge-adjacent voxels
// of (x,y,z), skipping any that fall outside the grid.
//
// Grounded on Mesh::find18Neighbors.
func (g *Grid) find18Neighbors(x, y, z int, buf []ctree.VId) int {
	type delta struct{ dx, dy, dz int }
	deltas := [18]delta{
		{-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
		{+1, 0, 0}, {0, +1, 0}, {0, 0, +1},

		{-1, -1, 0}, {+1, -1, 0},
		{0, -1, -1}, {0, +1, -1},
		{-1, 0, -1}, {-1, 0, +1},

		{-1, +1, 0}, {+1, +1, 0},
		{0, -1, +1}, {0, +1, +1},
		{+1, 0, -1}, {+1, 0, +1},
	}

	n := 0
	for _, d := range deltas {
		nx, ny, nz := x+d.dx, y+d.dy, z+d.dz
		if nx < 0 || nx >= g.NX || ny < 0 || ny >= g.NY || nz < 0 || nz >= g.NZ {
			continue
		}
		buf[n] = g.index(nx, ny, nz)
		n++
	}
	return n
}

// Callbacks returns a ctree.Callbacks wired to this grid's Value and
// Neighbors, with everything else left to ctree's defaults.
func (g *Grid) Callbacks() ctree.Callbacks {
	return ctree.Callbacks{
		Value:     g.Value,
		Neighbors: g.Neighbors,
	}
}
