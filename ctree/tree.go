package ctree

import (
	"fmt"

	"github.com/spakin/disjoint"
)

// Node is a critical vertex of the contour tree: a local minimum, local
// maximum, or saddle. Up and Down are the doubly-linked incidence lists
// of arcs attached above/below this node.
type Node struct {
	I VId

	up, down *Arc

	children branchList
	Data     any
}

// Arc is an edge of the contour tree, joining a lower node Lo to a
// higher node Hi. nextUp/prevUp thread Lo's up list; nextDown/prevDown
// thread Hi's down list.
type Arc struct {
	Hi, Lo *Node

	nextUp, prevUp     *Arc
	nextDown, prevDown *Arc

	Branch   *Branch
	children branchList

	// uf is the union-find element backing arc collapse during branch
	// decomposition (ctArc_union/ctArc_find in the original). Wired to
	// spakin/disjoint since, unlike the component union-find in
	// component.go, decomposition doesn't care which element ends up as
	// the representative: collapse points the representative's Payload
	// at the surviving arc, so a rank-based union costs nothing here.
	uf *disjoint.Element

	Data any
}

func newNode(i VId) *Node {
	return &Node{I: i}
}

func newArc(hi, lo *Node) *Arc {
	a := &Arc{Hi: hi, Lo: lo}
	a.uf = disjoint.NewElement()
	a.uf.Payload = a
	return a
}

// newNode and newArc below route allocation through the caller's
// Callbacks, so a host that supplies AllocNode/AllocArc (e.g. to draw
// from a pool) sees every Node and Arc the merge step creates.

func (cb *Callbacks) newNode(i VId) *Node {
	n := cb.allocNode()
	n.I = i
	return n
}

func (cb *Callbacks) newArc(hi, lo *Node) *Arc {
	a := cb.allocArc()
	a.Hi, a.Lo = hi, lo
	a.uf = disjoint.NewElement()
	a.uf.Payload = a
	return a
}

// find returns the live arc that a has been merged into, if any.
func (a *Arc) find() *Arc {
	return a.uf.Find().Payload.(*Arc)
}

// arcUnion merges a's and b's collapse groups.
func arcUnion(a, b *Arc) {
	disjoint.Union(a.uf, b.uf)
}

func (n *Node) isMax() bool     { return n.up == nil }
func (n *Node) isMin() bool     { return n.down == nil }
func (n *Node) isLeaf() bool    { return n.up == nil || n.down == nil }
func (n *Node) isRegular() bool {
	return n.up != nil && n.up.nextUp == nil && n.down != nil && n.down.nextDown == nil
}

// leafArc returns the single arc attached to a leaf node.
func (n *Node) leafArc() *Arc {
	assertf(n.isMax() || n.isMin(), "leafArc: node %d is neither max nor min", n.I)
	if n.up == nil {
		return n.down
	}
	return n.up
}

// LeafArc returns the single arc attached to a leaf node. A
// Callbacks.Priority implementation uses this to inspect (and prioritize
// on) the arc's accumulated Data, the same way the original's
// ct_priorityFunc doc tells callers to use ctNode_leafArc.
func (n *Node) LeafArc() *Arc { return n.leafArc() }

// IsMax reports whether n is a local maximum (has no up-arc).
func (n *Node) IsMax() bool { return n.isMax() }

// IsMin reports whether n is a local minimum (has no down-arc).
func (n *Node) IsMin() bool { return n.isMin() }

// otherNode returns the node at the far end of a leaf node's arc.
func otherNode(n *Node) *Node {
	assertf(n.isMax() || n.isMin(), "otherNode: node %d is neither max nor min", n.I)
	if n.up == nil {
		return n.down.Lo
	}
	return n.up.Hi
}

// String reports the node's vertex and its up/down arc endpoints, in
// the same spirit as lib/node.go's printUp/printLow debug helpers.
func (n *Node) String() string {
	up, down := "-", "-"
	if n.up != nil {
		up = fmt.Sprintf("%d", n.up.Hi.I)
	}
	if n.down != nil {
		down = fmt.Sprintf("%d", n.down.Lo.I)
	}
	return fmt.Sprintf("Node{%d up:%s down:%s}", n.I, up, down)
}

// String reports the arc's endpoints.
func (a *Arc) String() string {
	return fmt.Sprintf("Arc{%d-%d}", a.Lo.I, a.Hi.I)
}

func (n *Node) addUpArc(a *Arc) {
	a.prevUp = nil
	a.nextUp = n.up
	if n.up != nil {
		n.up.prevUp = a
	}
	n.up = a
}

func (n *Node) addDownArc(a *Arc) {
	a.prevDown = nil
	a.nextDown = n.down
	if n.down != nil {
		n.down.prevDown = a
	}
	n.down = a
}

func (n *Node) removeUpArc(a *Arc) {
	if n.up == a {
		n.up = a.nextUp
	}
	if a.nextUp != nil {
		a.nextUp.prevUp = a.prevUp
	}
	if a.prevUp != nil {
		a.prevUp.nextUp = a.nextUp
	}
	a.nextUp, a.prevUp = nil, nil
}

func (n *Node) removeDownArc(a *Arc) {
	if n.down == a {
		n.down = a.nextDown
	}
	if a.nextDown != nil {
		a.nextDown.prevDown = a.prevDown
	}
	if a.prevDown != nil {
		a.prevDown.nextDown = a.nextDown
	}
	a.nextDown, a.prevDown = nil, nil
}

// prune detaches a leaf node's sole arc from the tree and returns the
// node at the other end. It does not deallocate anything.
func (n *Node) prune() *Node {
	switch {
	case n.isMax():
		n.down.Lo.removeUpArc(n.down)
		return n.down.Lo
	case n.isMin():
		n.up.Hi.removeDownArc(n.up)
		return n.up.Hi
	default:
		panic(newViolationAt("prune: node is not a leaf", n.I))
	}
}

// collapse merges a regular node's single up-arc and down-arc into one,
// returning the surviving (up) arc. cb.ArcMerge, if set, is invoked with
// (survivor, discarded) so a caller accumulating per-arc data (volume,
// vertex counts, ...) can fold the discarded arc's data into the
// survivor's.
func (n *Node) collapse(cb *Callbacks) *Arc {
	assertf(n.isRegular(), "collapse: node %d is not regular", n.I)

	if cb.ArcMerge != nil {
		cb.ArcMerge(n.up, n.down)
	}

	mergeBranchLists(&n.up.children, &n.down.children, cb.Value)
	mergeBranchLists(&n.up.children, &n.children, cb.Value)

	n.down.Lo.removeUpArc(n.down)
	n.down.Lo.addUpArc(n.up)

	n.up.Lo = n.down.Lo
	arcUnion(n.down, n.up)
	n.up.uf.Find().Payload = n.up

	return n.up
}
