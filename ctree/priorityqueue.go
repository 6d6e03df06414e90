package ctree

import "container/heap"

// pqItem is one entry of the branch-decomposition priority queue: a leaf
// node, its priority, and the vertex its leaf arc pointed at when pushed.
// otherEnd lets pop() detect a stale entry without a separate
// invalidation pass: if the leaf's arc has since collapsed to point
// somewhere else, otherEnd no longer matches and the entry is re-pushed
// with a fresh priority instead of returned.
//
// Grounded on src/ctQueue.c's ctPriorityQ (array heap, "modified priority
// queue" from the Carr/Snoeyink/Axen toporrery paper), reimplemented over
// container/heap.
type pqItem struct {
	node     *Node
	priority float64
	otherEnd VId
}

type pqHeap []pqItem

func (h pqHeap) Len() int { return len(h) }

// Less breaks priority ties on leaf vertex id. decompose seeds the heap
// by ranging over a map[VId]*Node, whose iteration order is randomized
// per run, so without this secondary key equal-priority leaves could pop
// in a different order across runs and produce a different branch
// decomposition (spec §4.6's "the heap must break ties deterministically").
func (h pqHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].node.I < h[j].node.I
}
func (h pqHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *pqHeap) Push(x interface{}) { *h = append(*h, x.(pqItem)) }
func (h *pqHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type priorityQueue struct {
	h  pqHeap
	cb *Callbacks
}

func newPriorityQueue(cb *Callbacks) *priorityQueue {
	return &priorityQueue{cb: cb}
}

func (pq *priorityQueue) isEmpty() bool { return pq.h.Len() == 0 }

// push computes n's priority (cb.Priority if set, else persistence) and
// records the far end of its leaf arc as of now.
func (pq *priorityQueue) push(n *Node) {
	heap.Push(&pq.h, pqItem{
		node:     n,
		priority: pq.cb.priority(n),
		otherEnd: otherNode(n).I,
	})
}

// pop returns the least-priority leaf whose leaf arc still points where
// it did when pushed, discarding and re-pushing any stale entries it
// finds along the way.
func (pq *priorityQueue) pop() *Node {
	for {
		assertf(pq.h.Len() != 0, "priorityQueue.pop: queue is empty")
		item := heap.Pop(&pq.h).(pqItem)
		if otherNode(item.node).I != item.otherEnd {
			pq.push(item.node)
			continue
		}
		return item.node
	}
}
