package gridmesh

import "github.com/cem-okulmus/contourtree/ctree"

// SaddleType classifies where a grid cell's bilinear/trilinear
// ambiguity lies.
//
// Grounded on original_source/examples/trilinear/trilinear.h's
// SaddleType enum.
type SaddleType int

const (
	YZFaceSaddle SaddleType = iota
	XZFaceSaddle
	XYFaceSaddle
	LoBodySaddle
	HiBodySaddle
)

// FaceSaddle records one detected saddle candidate: its kind and the
// lower/left/front vertex of the face or cell it belongs to.
//
// This is deliberately the comparison-based classification layer of
// trilinear.c's preprocessing only — it does not compute the
// trilinear-interpolant root location (trilinear.c's
// tl_get_saddle_info's `location[3]`); see DESIGN.md for why the full
// root-solving geometry is out of scope here.
type FaceSaddle struct {
	Type  SaddleType
	Where ctree.VId
}

// ambiguous reports whether a face's four corners, taken in the cyclic
// order v00, v10, v11, v01 around the face, are "saddle-shaped": the
// value does not vary monotonically along either of the face's own
// axes, so a bilinear interpolant over these four corners has an
// interior critical point. This is the textbook marching-squares
// ambiguous-case test, and is what trilinear.c's find_face_saddle uses
// diagonal comparisons to detect without evaluating the interpolant.
func (g *Grid) ambiguous(v00, v10, v11, v01 ctree.VId) bool {
	alongU0 := g.Less(v00, v10)
	alongU1 := g.Less(v01, v11)
	alongV0 := g.Less(v00, v01)
	alongV1 := g.Less(v10, v11)
	return alongU0 != alongU1 && alongV0 != alongV1
}

// CellSaddles reports the face-saddle candidates of the grid cell whose
// lower/left/front corner is (x,y,z), and whether the cell carries a
// body saddle (tagged as LoBodySaddle — this layer does not distinguish
// lo/hi body saddle pairs the way trilinear.c's full root solver does).
//
// Grounded on trilinear.c's per-cell sweep in its graph-construction
// pass (the YZ/XZ/XY find_face_saddle calls), simplified to comparison
// classification only.
func (g *Grid) CellSaddles(x, y, z int) []FaceSaddle {
	if x+1 >= g.NX || y+1 >= g.NY || z+1 >= g.NZ {
		return nil
	}

	v := func(dx, dy, dz int) ctree.VId { return g.index(x+dx, y+dy, z+dz) }
	where := g.index(x, y, z)

	var out []FaceSaddle

	// YZ face: vary y, z at fixed x (the face at x, and the face at x+1
	// are each checked by the caller's sweep over every cell; here we
	// only classify the face anchored at this cell's lower x).
	if g.ambiguous(v(0, 0, 0), v(0, 1, 0), v(0, 1, 1), v(0, 0, 1)) {
		out = append(out, FaceSaddle{Type: YZFaceSaddle, Where: where})
	}
	// XZ face: vary x, z at fixed y.
	if g.ambiguous(v(0, 0, 0), v(1, 0, 0), v(1, 0, 1), v(0, 0, 1)) {
		out = append(out, FaceSaddle{Type: XZFaceSaddle, Where: where})
	}
	// XY face: vary x, y at fixed z.
	if g.ambiguous(v(0, 0, 0), v(1, 0, 0), v(1, 1, 0), v(0, 1, 0)) {
		out = append(out, FaceSaddle{Type: XYFaceSaddle, Where: where})
	}

	if g.bodyAmbiguous(x, y, z) {
		out = append(out, FaceSaddle{Type: LoBodySaddle, Where: where})
	}

	return out
}

// bodyAmbiguous extends the face test to the cell's body diagonal pairs:
// a cell carries a body saddle candidate when its three diagonals
// compared here (corners 000-111, 100-011 and 010-101) do not all agree
// on which endpoint is greater, the trilinear analog of the face test
// above.
func (g *Grid) bodyAmbiguous(x, y, z int) bool {
	v := func(dx, dy, dz int) ctree.VId { return g.index(x+dx, y+dy, z+dz) }
	diag1 := g.Less(v(0, 0, 0), v(1, 1, 1))
	diag2 := g.Less(v(1, 0, 0), v(0, 1, 1))
	diag3 := g.Less(v(0, 1, 0), v(1, 0, 1))
	return diag1 != diag2 || diag2 != diag3
}
