package gridmesh

import (
	"sort"
	"testing"

	"github.com/cem-okulmus/contourtree/ctree"
)

func TestIndexCoordsRoundTrip(t *testing.T) {
	g := New(3, 4, 5, make([]float64, 3*4*5))
	for z := 0; z < 5; z++ {
		for y := 0; y < 4; y++ {
			for x := 0; x < 3; x++ {
				v := g.index(x, y, z)
				gx, gy, gz := g.coords(v)
				if gx != x || gy != y || gz != z {
					t.Fatalf("coords(index(%d,%d,%d)) = (%d,%d,%d)", x, y, z, gx, gy, gz)
				}
			}
		}
	}
}

func TestNewPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected New to panic on a mismatched sample count")
		}
	}()
	New(2, 2, 2, make([]float64, 5))
}

func TestLessSymbolicPerturbation(t *testing.T) {
	values := []float64{1, 1, 1, 0}
	g := New(2, 2, 1, values)

	// Vertices 0 and 1 tie on value; symbolic perturbation breaks the
	// tie on vertex id.
	if !g.Less(0, 1) {
		t.Fatal("expected Less(0,1) to break the tie on id")
	}
	if g.Less(1, 0) {
		t.Fatal("Less must be antisymmetric on a tie")
	}
	if !g.Less(3, 0) {
		t.Fatal("expected vertex 3 (value 0) to be Less than vertex 0 (value 1)")
	}
}

func TestTotalOrderIsSortedByValue(t *testing.T) {
	values := []float64{3, 1, 2, 0}
	g := New(2, 2, 1, values)
	order := g.TotalOrder()

	if len(order) != 4 {
		t.Fatalf("got %d entries, want 4", len(order))
	}
	if !sort.SliceIsSorted(order, func(i, j int) bool { return g.Less(order[i], order[j]) }) {
		t.Fatal("TotalOrder must be sorted ascending by Less")
	}
	// Lowest value (vertex 3) must come first.
	if order[0] != 3 {
		t.Fatalf("order[0] = %d, want 3 (lowest value)", order[0])
	}
}

func TestNeighborsParitySelectsScheme(t *testing.T) {
	g := New(3, 3, 3, make([]float64, 27))
	buf := make([]ctree.VId, g.MaxValence())

	// Center vertex (1,1,1): parity (1+1+1)%2 = 1 == oddTetParity -> 6-neighbor scheme.
	n := g.Neighbors(g.index(1, 1, 1), buf)
	if n != 6 {
		t.Fatalf("got %d neighbors at an odd-parity interior vertex, want 6", n)
	}

	// (1,1,0): parity (1+1+0)%2 = 0 -> 18-neighbor scheme, minus the
	// ones that fall outside the grid (z-1 is out of range here).
	n = g.Neighbors(g.index(1, 1, 0), buf)
	if n == 0 {
		t.Fatal("expected at least one neighbor for an even-parity interior-ish vertex")
	}
}

func TestFind6And18NeighborsStayInBounds(t *testing.T) {
	g := New(2, 2, 2, make([]float64, 8))
	buf := make([]ctree.VId, g.MaxValence())

	for z := 0; z < 2; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				n6 := g.find6Neighbors(x, y, z, buf)
				for i := 0; i < n6; i++ {
					if int(buf[i]) < 0 || int(buf[i]) >= g.NumVerts() {
						t.Fatalf("find6Neighbors produced out-of-range vertex %d", buf[i])
					}
				}
				n18 := g.find18Neighbors(x, y, z, buf)
				for i := 0; i < n18; i++ {
					if int(buf[i]) < 0 || int(buf[i]) >= g.NumVerts() {
						t.Fatalf("find18Neighbors produced out-of-range vertex %d", buf[i])
					}
				}
			}
		}
	}
}

func TestCallbacksWireValueAndNeighbors(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	g := New(2, 2, 2, values)
	cb := g.Callbacks()

	if cb.Value(3) != 4 {
		t.Fatalf("cb.Value(3) = %v, want 4", cb.Value(3))
	}
	buf := make([]ctree.VId, g.MaxValence())
	if cb.Neighbors == nil {
		t.Fatal("cb.Neighbors must be set")
	}
	n := cb.Neighbors(0, buf)
	if n == 0 {
		t.Fatal("expected at least one neighbor for vertex 0")
	}
}
