package ctree

// augment aligns the join and split component graphs so that every
// vertex critical in one is also critical (as a birth) in the other.
// Without this, the leaf-pruning merge in mergeTrees has no way to
// line up a leaf of one tree with its counterpart in the other, since
// "the component born at vertex v" would be undefined on one side.
//
// For each interior vertex v (excluding the very first and last in the
// total order, which are always critical in both trees already): if v
// is a join birth but not a split birth, split's component is cut in two
// at v, with the lower half keeping the vertices born before v and a new
// component picking up v's death and successors. The symmetric case
// mirrors this for split births needing insertion into join.
func augment(order TotalOrder, joinComps, splitComps []*component, joinRoot, splitRoot *component) (*component, *component) {
	for itr := 1; itr < len(order)-1; itr++ {
		i := order[itr]
		joinComp := joinComps[i]
		splitComp := splitComps[i]

		switch {
		case joinComp.birth == i && splitComp.birth != i:
			newComp := newComponent(splitComponent)
			newComp.birth = i
			newComp.death = splitComp.death
			splitComp.death = i

			if splitComp.succ != nil {
				splitComp.succ.removePred(splitComp)
				splitComp.succ.addPred(newComp)
			}

			newComp.succ = splitComp.succ
			newComp.addPred(splitComp)
			splitComp.succ = newComp

			if splitComp == splitRoot {
				splitRoot = newComp
			}

		case splitComp.birth == i && joinComp.birth != i:
			newComp := newComponent(joinComponent)
			newComp.death = i
			newComp.birth = joinComp.birth
			joinComp.birth = i

			for joinComp.pred != nil {
				p := joinComp.pred
				joinComp.removePred(p)
				newComp.addPred(p)
				p.succ = newComp
			}

			joinComp.addPred(newComp)
			newComp.succ = joinComp
		}
	}

	return joinRoot, splitRoot
}
