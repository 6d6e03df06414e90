package ctree

// componentType distinguishes which sweep a component belongs to.
type componentType int

const (
	joinComponent componentType = iota
	splitComponent
)

// component is a sweep-phase entity: a connected piece of a level set as
// it is born, grows, and either dies into a saddle or survives to become
// the sweep root. Components exist only during sweep/augment/merge and
// are discarded once merge finishes.
type component struct {
	birth, death, last VId
	typ                componentType

	pred           *component // head of the doubly-linked pred list
	nextPred       *component
	prevPred       *component
	succ           *component
	ufParent       *component // union-find parent; root iff ufParent == self
}

func newComponent(typ componentType) *component {
	c := &component{birth: NIL, death: NIL, last: NIL, typ: typ}
	c.ufParent = c
	return c
}

// find returns the union-find root of c, compressing the path as it goes.
func (c *component) find() *component {
	root := c.ufParent
	for root != root.ufParent {
		root = root.ufParent
	}
	for s := c; s != root; {
		next := s.ufParent
		s.ufParent = root
		s = next
	}
	return root
}

// union points a at b's parent (a.ufParent = b.ufParent). In sweep both
// arguments are roots, so b becomes the root of a's set. Naive: no rank, per
// spec.md §4.1 — union chains are bounded by tree height and every find
// compresses the path, so the missing rank never costs more than a
// constant factor.
func union(a, b *component) {
	a.ufParent = b.ufParent
}

// addPred prepends c to self's pred list.
func (self *component) addPred(c *component) {
	c.prevPred = nil
	c.nextPred = self.pred
	if self.pred != nil {
		self.pred.prevPred = c
	}
	self.pred = c
}

// removePred unlinks c from self's pred list.
func (self *component) removePred(c *component) {
	if self.pred == c {
		self.pred = c.nextPred
	}
	if c.nextPred != nil {
		c.nextPred.prevPred = c.prevPred
	}
	if c.prevPred != nil {
		c.prevPred.nextPred = c.nextPred
	}
	c.nextPred, c.prevPred = nil, nil
}

// eatSuccessor merges self with its successor: self becomes the larger,
// merged component, and the (now garbage) successor is returned.
func (self *component) eatSuccessor() *component {
	if self.succ == nil || self.succ.pred != self {
		panic(newViolation("eatSuccessor: self is not succ's only predecessor"))
	}
	if self.nextPred != nil {
		panic(newViolation("eatSuccessor: succ has another predecessor after self"))
	}

	s := self.succ
	ss := s.succ
	if ss != nil {
		ss.removePred(s)
		ss.addPred(self)
	}
	self.death = s.death
	self.succ = s.succ
	s.succ, s.pred = nil, nil
	s.nextPred, s.prevPred = nil, nil
	union(self, self)

	return s
}

// prune detaches a leaf component from its successor's pred list.
func (self *component) prune() {
	if self.pred != nil {
		panic(newViolation("prune: component is not a leaf"))
	}
	if self.succ != nil {
		self.succ.removePred(self)
	}
	self.succ = nil
}

func (self *component) isLeaf() bool { return self.pred == nil }

func (self *component) isRegular() bool {
	return self.pred != nil && self.pred.nextPred == nil
}
