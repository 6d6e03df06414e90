package ctree

// nodeFrame pairs a node reached during a tree walk with the node it was
// reached from, so the walk doesn't re-cross the arc it just came in on.
type nodeFrame struct {
	node, prev *Node
}

// CopyTree duplicates the tree reachable from a, returning an arc of the
// copy, allocating new nodes and arcs through ctx's Callbacks (so a host
// with custom AllocNode/AllocArc sees the copy's nodes and arcs too). If
// moveData is true, each original Node/Arc's Data is moved (rather than
// shared) onto its copy, and the original's Data is left pointing at the
// copy — a convenience for rebuilding auxiliary indexes that used to
// point into the source tree.
//
// Grounded on src/tourtre.c's ct_copyTree (two explicit-stack passes:
// first clone nodes into a map keyed by vertex id, then walk again to
// link cloned arcs between them).
func (ctx *Context) CopyTree(a *Arc, moveData bool) *Arc {
	cb := &ctx.cb
	start := a.Lo

	byVertex := make(map[VId]*Node)
	stack := []nodeFrame{{node: start}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, p := top.node, top.prev

		clone := cb.newNode(n.I)
		byVertex[n.I] = clone
		if moveData {
			clone.Data = n.Data
			n.Data = clone
		}

		for up := n.up; up != nil; up = up.nextUp {
			if up.Hi != p {
				stack = append(stack, nodeFrame{node: up.Hi, prev: n})
			}
		}
		for down := n.down; down != nil; down = down.nextDown {
			if down.Lo != p {
				stack = append(stack, nodeFrame{node: down.Lo, prev: n})
			}
		}
	}

	var anArc *Arc
	stack = []nodeFrame{{node: start}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, p := top.node, top.prev

		for up := n.up; up != nil; up = up.nextUp {
			if up.Hi != p {
				stack = append(stack, nodeFrame{node: up.Hi, prev: n})

				newLo, newHi := byVertex[n.I], byVertex[up.Hi.I]
				newArc := cb.newArc(newHi, newLo)
				newLo.addUpArc(newArc)
				newHi.addDownArc(newArc)
				anArc = newArc
				if moveData {
					newArc.Data = up.Data
					up.Data = newArc
				}
			}
		}
		for down := n.down; down != nil; down = down.nextDown {
			if down.Lo != p {
				stack = append(stack, nodeFrame{node: down.Lo, prev: n})

				newHi, newLo := byVertex[n.I], byVertex[down.Lo.I]
				newArc := cb.newArc(newHi, newLo)
				newLo.addUpArc(newArc)
				newHi.addDownArc(newArc)
				anArc = newArc
				if moveData {
					newArc.Data = down.Data
					down.Data = newArc
				}
			}
		}
	}

	return anArc
}

// ArcsAndNodes returns every arc and node reachable from a, in the order
// a depth-first walk first encounters them.
//
// Grounded on src/tourtre.c's ct_arcsAndNodes.
func ArcsAndNodes(a *Arc) ([]*Arc, []*Node) {
	start := a.Lo
	var arcs []*Arc
	var nodes []*Node
	stack := []nodeFrame{{node: start}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, p := top.node, top.prev

		nodes = append(nodes, n)

		for up := n.up; up != nil; up = up.nextUp {
			if up.Hi != p {
				stack = append(stack, nodeFrame{node: up.Hi, prev: n})
				arcs = append(arcs, up)
			}
		}
		for down := n.down; down != nil; down = down.nextDown {
			if down.Lo != p {
				stack = append(stack, nodeFrame{node: down.Lo, prev: n})
				arcs = append(arcs, down)
			}
		}
	}

	return arcs, nodes
}

// DeleteTree frees every arc and node reachable from a through ctx's
// FreeArc/FreeNode callbacks, if set. With no callbacks set, this is a
// no-op beyond the traversal itself — Go's GC reclaims unreferenced
// nodes and arcs on its own, unlike the original's manual arena.
//
// Grounded on src/tourtre.c's ct_deleteTree.
func (ctx *Context) DeleteTree(a *Arc) {
	arcs, nodes := ArcsAndNodes(a)
	for _, arc := range arcs {
		ctx.cb.freeArc(arc)
	}
	for _, n := range nodes {
		ctx.cb.freeNode(n)
	}
}
