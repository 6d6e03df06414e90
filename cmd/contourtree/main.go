// Command contourtree computes the contour tree and branch decomposition
// of a scalar mesh and prints the result as text or JSON.
//
// Grounded on balanced.go's shape: flag-based configuration, a
// logActive-style verbose toggle, and a check(err)-style panic wrapper
// around the library calls (adapted to recover, since ctree raises
// panics rather than errors — see DESIGN.md).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cem-okulmus/contourtree/ctree"
	"github.com/cem-okulmus/contourtree/gridmesh"
	"github.com/cem-okulmus/contourtree/meshfile"
)

// logActive mirrors balanced.go's helper of the same name: a single
// package-level *log.Logger (here ctree's own) is toggled between
// os.Stderr and io.Discard.
func logActive(b bool) {
	log.SetFlags(0)
	ctree.SetVerbose(b)
}

// check mirrors balanced.go's check(err): panic on a fatal setup error,
// to be caught by the same recover in main that catches ctree's own
// ViolationError panics.
func check(e error) {
	if e != nil {
		panic(e)
	}
}

// meshSource is the common shape of gridmesh.Grid and meshfile.Mesh that
// main needs: enough to drive ctree.Init and SetMaxValence.
type meshSource interface {
	NumVerts() int
	MaxValence() int
	TotalOrder() ctree.TotalOrder
	Callbacks() ctree.Callbacks
}

// loadMesh reads either a meshfile-format text mesh, or (when gridDims is
// non-empty) a flat whitespace-separated list of scalar samples laid out
// for a gridmesh.Grid of the given "NX,NY,NZ" dimensions.
func loadMesh(path, gridDims string) (meshSource, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if gridDims == "" {
		return meshfile.Parse(string(raw))
	}

	dims := strings.Split(gridDims, ",")
	if len(dims) != 3 {
		return nil, fmt.Errorf("-grid must be \"NX,NY,NZ\", got %q", gridDims)
	}
	nx, err := strconv.Atoi(strings.TrimSpace(dims[0]))
	if err != nil {
		return nil, fmt.Errorf("-grid: bad NX: %w", err)
	}
	ny, err := strconv.Atoi(strings.TrimSpace(dims[1]))
	if err != nil {
		return nil, fmt.Errorf("-grid: bad NY: %w", err)
	}
	nz, err := strconv.Atoi(strings.TrimSpace(dims[2]))
	if err != nil {
		return nil, fmt.Errorf("-grid: bad NZ: %w", err)
	}

	fields := strings.Fields(string(raw))
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("-mesh: sample %d: %w", i, err)
		}
		values[i] = v
	}

	return gridmesh.New(nx, ny, nz, values), nil
}

// volumeAccumulator wires ct_vertexFunc/ct_arcMergeFunc's original
// accumulator pattern (tourtre.h: "you can keep an accumulator in
// ctArc.data") into a Callbacks triple: count vertices per arc, sum
// counts on collapse, and prioritize simplification by accumulated
// count instead of persistence.
func volumeAccumulator(cb *ctree.Callbacks) {
	cb.ProcVertex = func(v ctree.VId, a *ctree.Arc) {
		if a.Data == nil {
			n := 0
			a.Data = &n
		}
		*(a.Data.(*int))++
	}
	cb.ArcMerge = func(keep, discard *ctree.Arc) {
		if keep.Data == nil {
			n := 0
			keep.Data = &n
		}
		if discard.Data != nil {
			*(keep.Data.(*int)) += *(discard.Data.(*int))
		}
	}
	cb.Priority = func(leaf *ctree.Node) float64 {
		arc := leaf.LeafArc()
		if arc.Data == nil {
			return 0
		}
		return float64(*(arc.Data.(*int)))
	}
}

func main() {
	logActive(false)

	meshPath := flag.String("mesh", "", "path to a mesh file (meshfile VERTEX/EDGE text format, or a flat sample list when -grid is set)")
	gridDims := flag.String("grid", "", "optional \"NX,NY,NZ\" — when set, -mesh is read as a flat list of scalar samples for a regular voxel grid")
	priority := flag.String("priority", "persistence", "simplification priority: persistence | volume")
	maxValence := flag.Int("maxvalence", 0, "override the mesh's own maximum vertex valence (0 = use the mesh's default)")
	format := flag.String("format", "text", "output format: text | json")
	verbose := flag.Bool("verbose", false, "log sweep/merge/decompose progress to stderr")
	out := flag.String("out", "", "output file path (default: stdout)")
	flag.Parse()

	if *meshPath == "" {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	logActive(*verbose)

	defer func() {
		if r := recover(); r != nil {
			log.Fatalf("contourtree: %v", r)
		}
	}()

	mesh, err := loadMesh(*meshPath, *gridDims)
	check(err)

	cb := mesh.Callbacks()
	switch *priority {
	case "persistence":
		// cb.Priority left nil: Callbacks.priority defaults to
		// |value(leaf) - value(otherEnd)|, i.e. persistence.
	case "volume":
		volumeAccumulator(&cb)
	default:
		check(fmt.Errorf("-priority: unknown strategy %q", *priority))
	}

	ctx := ctree.Init(mesh.NumVerts(), mesh.TotalOrder(), cb)
	if *maxValence > 0 {
		ctx.SetMaxValence(*maxValence)
	} else {
		ctx.SetMaxValence(mesh.MaxValence())
	}

	ctx.ParallelSweep()
	ctx.MergeTrees()

	// Snapshot the contour tree and its vertex-to-arc map before
	// Decompose runs: decomposition collapses regular nodes in place,
	// the same way the original's ct_decompose doc warns callers not to
	// touch the tree or ct_arcMap once decompose has consumed them.
	arcs, _ := ctree.ArcsAndNodes(ctx.Tree())
	arcMap := append([]*ctree.Arc(nil), ctx.ArcMap()...)
	// Collapsing a regular node moves the surviving arc's Lo end, so the
	// merged tree's Lo ends are recorded here and put back afterwards.
	los := make([]*ctree.Node, len(arcs))
	for i, a := range arcs {
		los[i] = a.Lo
	}

	root := ctx.Decompose()
	for i, a := range arcs {
		a.Lo = los[i]
	}

	r := buildReport(arcs, arcMap, root, ctx.BranchMap())

	if *out != "" {
		f, err := os.Create(*out)
		check(err)
		defer f.Close()
		bw := bufio.NewWriter(f)
		writeReport(bw, *format, r)
		check(bw.Flush())
	} else {
		writeReport(os.Stdout, *format, r)
	}

	ctx.Cleanup()
}
