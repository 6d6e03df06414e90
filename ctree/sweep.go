package ctree

// sweep performs a single monotone pass over the vertices from start to
// end (exclusive) in steps of inc, classifying each vertex by how many
// distinct already-visited neighbor components it touches:
//
//   - 0 distinct components: v is an extremum. Start a new component.
//   - 1 distinct component:  v is regular. Extend that component.
//   - ≥2 distinct components: v is a saddle. All of them die into a new
//     component born at v.
//
// "Already visited" for vertex u means rank[u] is strictly on the near
// side of rank[v] for this sweep's direction; comps[u] != nil encodes
// exactly that, since comps is only populated for vertices already swept.
//
// Returns the surviving root component.
func sweep(order TotalOrder, start, end, inc int, typ componentType, comps []*component, next []VId, cb *Callbacks, maxValence int) *component {
	nbrs := make([]VId, maxValence)
	var i VId
	var iComp *component

	for itr := start; itr != end; itr += inc {
		i = order[itr]
		iComp = nil

		n := cb.Neighbors(i, nbrs)
		assertf(n <= maxValence, "neighbor count %d at vertex %d exceeds maxValence %d", n, i, maxValence)

		numNbrComps := 0
		for k := 0; k < n; k++ {
			j := nbrs[k]
			if comps[j] == nil {
				continue
			}
			jComp := comps[j].find()
			if iComp == jComp {
				continue
			}

			switch numNbrComps {
			case 0:
				numNbrComps++
				iComp = jComp
				comps[i] = iComp
				next[iComp.last] = i

			case 1:
				// v is a saddle: iComp and jComp both die here, replaced
				// by a fresh component born at v.
				newComp := newComponent(typ)
				newComp.birth = i
				newComp.addPred(iComp)
				newComp.addPred(jComp)

				iComp.death = i
				iComp.succ = newComp
				union(iComp, newComp)

				jComp.death = i
				jComp.succ = newComp
				union(jComp, newComp)

				next[jComp.last] = i

				iComp = newComp
				comps[i] = newComp
				newComp.last = i

				numNbrComps++

			default:
				// a third (or later) distinct predecessor of the same
				// saddle: it dies directly into the saddle component
				// already created above.
				jComp.death = i
				jComp.succ = iComp
				union(jComp, iComp)
				iComp.addPred(jComp)
				next[jComp.last] = i
			}
		}

		switch numNbrComps {
		case 0:
			iComp = newComponent(typ)
			iComp.birth = i
			comps[i] = iComp
			iComp.last = i
		case 1:
			iComp.last = i
		}
	}

	root := comps[i].find()
	root.death = i
	next[i] = NIL
	return root
}
