package ctree

import "sync"

// Context is the working state of one contour tree computation: the
// mesh-independent view of §4's algorithm, parameterized entirely by
// the TotalOrder and Callbacks given to Init. It is not safe for
// concurrent use by multiple goroutines except where noted (Parallel*).
//
// Grounded on src/ctContext.h's ctContext and the exported entry points
// of tourtre.h (ct_init/ct_joinSweep/ct_splitSweep/ct_mergeTrees/
// ct_sweepAndMerge/ct_decompose/ct_arcMap/ct_branchMap/ct_cleanup).
type Context struct {
	numVerts   int
	order      TotalOrder
	cb         Callbacks
	maxValence int

	joinComps, splitComps []*component
	nextJoin, nextSplit   []VId
	joinRoot, splitRoot   *component

	nodes     map[VId]*Node
	arcMap    []*Arc
	branchMap []*Branch
	tree      *Arc
}

const defaultMaxValence = 256

// Init creates a Context ready for JoinSweep/SplitSweep. order must be a
// permutation of [0, numVerts); cb.Value and cb.Neighbors must be set.
func Init(numVerts int, order TotalOrder, cb Callbacks) *Context {
	assertf(numVerts > 0, "Init: numVerts must be positive, got %d", numVerts)
	assertf(len(order) == numVerts, "Init: order has length %d, want %d", len(order), numVerts)
	assertf(cb.Value != nil, "Init: Callbacks.Value is required")
	assertf(cb.Neighbors != nil, "Init: Callbacks.Neighbors is required")

	ctx := &Context{
		numVerts:   numVerts,
		order:      order,
		cb:         cb,
		maxValence: defaultMaxValence,

		joinComps:  make([]*component, numVerts),
		splitComps: make([]*component, numVerts),
		nextJoin:   make([]VId, numVerts),
		nextSplit:  make([]VId, numVerts),
	}
	for i := range ctx.nextJoin {
		ctx.nextJoin[i] = NIL
		ctx.nextSplit[i] = NIL
	}
	return ctx
}

// SetMaxValence overrides the default neighbor-buffer size (256). Call
// before JoinSweep/SplitSweep if any vertex has more neighbors than that.
func (ctx *Context) SetMaxValence(n int) {
	ctx.maxValence = n
}

func (ctx *Context) checkReady() {
	assertf(ctx.numVerts > 0, "Context: not initialized")
	assertf(ctx.order != nil, "Context: TotalOrder is required")
	assertf(ctx.cb.Value != nil, "Context: Callbacks.Value is required")
	assertf(ctx.cb.Neighbors != nil, "Context: Callbacks.Neighbors is required")
}

// JoinSweep performs the ascending monotone sweep, recording the join
// tree's components.
func (ctx *Context) JoinSweep() {
	ctx.checkReady()
	logger.Printf("join sweep: %d vertices", ctx.numVerts)
	ctx.joinRoot = sweep(ctx.order, 0, ctx.numVerts, +1, joinComponent, ctx.joinComps, ctx.nextJoin, &ctx.cb, ctx.maxValence)
}

// SplitSweep performs the descending monotone sweep, recording the
// split tree's components.
func (ctx *Context) SplitSweep() {
	ctx.checkReady()
	logger.Printf("split sweep: %d vertices", ctx.numVerts)
	ctx.splitRoot = sweep(ctx.order, ctx.numVerts-1, -1, -1, splitComponent, ctx.splitComps, ctx.nextSplit, &ctx.cb, ctx.maxValence)
}

// ParallelSweep runs JoinSweep and SplitSweep concurrently. The two
// sweeps touch disjoint state (joinComps/nextJoin vs. splitComps/
// nextSplit) so this is safe; a panic in either sweep propagates out of
// ParallelSweep once both goroutines have finished.
//
// Grounded on lib/search.go's Worker dispatch: goroutines recover their
// own panics and hand them back to the caller instead of crashing the
// process, since a ViolationError here usually indicates a malformed
// mesh (bad TotalOrder/Neighbors) rather than a bug worth a stack trace
// from inside a goroutine.
func (ctx *Context) ParallelSweep() {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var caught any

	run := func(f func()) {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				mu.Lock()
				if caught == nil {
					caught = r
				}
				mu.Unlock()
			}
		}()
		f()
	}

	wg.Add(2)
	go run(ctx.JoinSweep)
	go run(ctx.SplitSweep)
	wg.Wait()

	if caught != nil {
		panic(caught)
	}
}

// MergeTrees augments the join/split component graphs and interleaves
// them into the contour tree. JoinSweep and SplitSweep must have run
// first.
func (ctx *Context) MergeTrees() *Arc {
	assertf(ctx.joinRoot != nil && ctx.splitRoot != nil,
		"MergeTrees: call JoinSweep and SplitSweep first")

	logger.Printf("augmenting join/split trees")
	ctx.joinRoot, ctx.splitRoot = augment(ctx.order, ctx.joinComps, ctx.splitComps, ctx.joinRoot, ctx.splitRoot)
	ctx.joinComps, ctx.splitComps = nil, nil

	logger.Printf("merging augmented trees into the contour tree")
	arc, nodes, arcMap := mergeTrees(ctx.numVerts, ctx.joinRoot, ctx.splitRoot, ctx.nextJoin, ctx.nextSplit, &ctx.cb)
	ctx.nodes = nodes
	ctx.arcMap = arcMap
	ctx.tree = arc
	ctx.joinRoot, ctx.splitRoot = nil, nil
	logger.Printf("merge complete: %d critical nodes", len(nodes))
	return arc
}

// SweepAndMerge runs JoinSweep, SplitSweep, and MergeTrees in sequence,
// returning the resulting contour tree.
func (ctx *Context) SweepAndMerge() *Arc {
	ctx.checkReady()
	ctx.JoinSweep()
	ctx.SplitSweep()
	return ctx.MergeTrees()
}

// Decompose computes the branch decomposition of the contour tree built
// by MergeTrees/SweepAndMerge, returning its root branch. ArcMap must
// already be populated (i.e. MergeTrees must have run).
func (ctx *Context) Decompose() *Branch {
	assertf(ctx.arcMap != nil, "Decompose: call MergeTrees (or SweepAndMerge) first")
	logger.Printf("decomposing contour tree into branches")
	root, branchMap := decompose(ctx.numVerts, ctx.nodes, ctx.arcMap, &ctx.cb)
	ctx.branchMap = branchMap
	logger.Printf("decompose complete: root (%d,%d)", root.Extremum, root.Saddle)
	return root
}

// ArcMap returns the per-vertex arc assignment built by MergeTrees:
// ArcMap()[v] is the arc of the contour tree that v lies on.
func (ctx *Context) ArcMap() []*Arc {
	return ctx.arcMap
}

// BranchMap returns the per-vertex branch assignment built by Decompose:
// BranchMap()[v] is the branch of the decomposition that v lies on.
func (ctx *Context) BranchMap() []*Branch {
	return ctx.branchMap
}

// Tree returns the arc of the contour tree produced by the most recent
// MergeTrees/SweepAndMerge call, or nil if neither has run.
func (ctx *Context) Tree() *Arc {
	return ctx.tree
}

// Cleanup releases the Context's working state. It does not free the
// contour tree or branch decomposition themselves — use DeleteTree for
// that, once the caller no longer needs them.
func (ctx *Context) Cleanup() {
	logger.Printf("cleanup: releasing working state")
	ctx.joinComps, ctx.splitComps = nil, nil
	ctx.nextJoin, ctx.nextSplit = nil, nil
	ctx.joinRoot, ctx.splitRoot = nil, nil
	ctx.nodes = nil
	ctx.arcMap = nil
	ctx.branchMap = nil
	ctx.tree = nil
}
