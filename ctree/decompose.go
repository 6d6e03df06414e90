package ctree

// decompose collapses the contour tree into a branch decomposition: it
// repeatedly pops the least-priority leaf, prunes it, and folds its
// branch into whichever node it was pruned onto, collapsing that node
// once it becomes regular. What remains when a single arc spans two
// leaves is the root branch.
//
// Grounded on src/tourtre.c's ct_decompose.
func decompose(numVerts int, nodes map[VId]*Node, arcMap []*Arc, cb *Callbacks) (*Branch, []*Branch) {
	pq := newPriorityQueue(cb)
	for _, n := range nodes {
		if n.isLeaf() {
			pq.push(n)
		}
	}

	var root *Branch

	for {
		n := pq.pop()

		if n.isLeaf() && otherNode(n).isLeaf() {
			arc := n.leafArc()
			root = cb.newBranch(arc.Hi.I, arc.Lo.I)
			root.children = arc.children
			arc.Branch = root
			for _, bc := range root.Children() {
				bc.Parent = root
			}
			break
		}

		var b *Branch
		var prunedMax bool

		switch {
		case n.isMax():
			arc := n.leafArc()
			if arc.nextUp == nil && arc.prevUp == nil {
				continue
			}
			b = cb.newBranch(n.I, otherNode(n).I)
			prunedMax = true

		case n.isMin():
			arc := n.leafArc()
			if arc.nextDown == nil && arc.prevDown == nil {
				continue
			}
			b = cb.newBranch(n.I, otherNode(n).I)
			prunedMax = false

		default:
			panic(newViolationAt("decompose: node is neither max nor min", n.I))
		}

		arc := n.leafArc()
		b.children = arc.children
		arc.Branch = b
		for _, bc := range b.Children() {
			bc.Parent = b
		}

		o := n.prune()
		insertBranchSorted(&o.children, b, cb.Value)

		if o.isRegular() {
			a := o.collapse(cb)
			if prunedMax {
				if a.Lo.isMin() {
					pq.push(a.Lo)
				}
			} else {
				if a.Hi.isMax() {
					pq.push(a.Hi)
				}
			}
		}
	}

	branchMap := make([]*Branch, numVerts)
	for i := 0; i < numVerts; i++ {
		a := arcMap[i]
		assertf(a != nil, "decompose: vertex %d has no arc", i)
		branchMap[i] = a.find().Branch
	}

	return root, branchMap
}
