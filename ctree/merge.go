package ctree

// mergeTrees interleaves the augmented join and split component graphs
// into a single contour tree, pruning leaf components in lockstep with
// their counterpart in the other tree until only one arc remains.
//
// Two phantom components, plusInf (a join component born at the join
// root's death) and minusInf (a split component born at the split
// root's death), sit above/below both roots so the root components
// themselves are pruned the same way as any other leaf, instead of
// needing special-cased termination logic.
//
// Grounded on src/tourtre.c's ct_merge/ct_queueLeaves.
func mergeTrees(numVerts int, joinRoot, splitRoot *component, nextJoin, nextSplit []VId, cb *Callbacks) (root *Arc, nodes map[VId]*Node, arcMap []*Arc) {
	nodes = make(map[VId]*Node)
	arcMap = make([]*Arc, numVerts)
	lq := newLeafQueue()

	plusInf := newComponent(joinComponent)
	minusInf := newComponent(splitComponent)

	plusInf.addPred(joinRoot)
	plusInf.birth = joinRoot.death
	joinRoot.succ = plusInf

	minusInf.addPred(splitRoot)
	minusInf.birth = splitRoot.death
	splitRoot.succ = minusInf

	joinMap := buildComponentMap(plusInf, lq)
	splitMap := buildComponentMap(minusInf, lq)

	getNode := func(v VId) *Node {
		if n, ok := nodes[v]; ok {
			return n
		}
		n := cb.newNode(v)
		nodes[v] = n
		return n
	}

	var arc *Arc
	for {
		assertf(!lq.isEmpty(), "merge: leaf queue exhausted before a single arc remained")
		leaf := lq.popFront()

		if leaf.death == NIL {
			// leaf is whichever of plusInf/minusInf got pruned last: the
			// whole tree has collapsed to the single arc spanning it.
			if arcMap[leaf.birth] == nil && cb.ProcVertex != nil {
				cb.ProcVertex(leaf.birth, arc)
			}
			arcMap[leaf.birth] = arc
			break
		}

		var otherMap *componentMap
		var next []VId
		var hi, lo *Node

		if leaf.typ == joinComponent {
			otherMap = splitMap
			next = nextJoin
			lo = getNode(leaf.birth)
			hi = getNode(leaf.death)
		} else {
			otherMap = joinMap
			next = nextSplit
			hi = getNode(leaf.birth)
			lo = getNode(leaf.death)
		}

		arc = cb.newArc(hi, lo)
		hi.addDownArc(arc)
		lo.addUpArc(arc)

		for c := leaf.birth; c != leaf.death; c = next[c] {
			if arcMap[c] == nil {
				arcMap[c] = arc
				if cb.ProcVertex != nil {
					cb.ProcVertex(c, arc)
				}
			}
		}

		succ := leaf.succ
		leaf.prune()

		other := otherMap.find(leaf.birth)
		otherSucc := otherMap.find(succ.birth)
		assertf(other.isRegular(), "merge: counterpart of leaf born at %d is not regular", leaf.birth)

		other.pred.eatSuccessor()

		switch {
		case succ.isLeaf() && otherSucc.isRegular():
			lq.pushBack(succ)
		case succ.isRegular() && otherSucc.isLeaf():
			lq.pushBack(otherSucc)
		}
	}

	return arc, nodes, arcMap
}
