// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aig

import "fmt"

// Type C represents a reference counted and-inverter graph.
//
// Gates are structurally hashed: And returns the same node for the
// same (ordered) pair of inputs.  Inputs are fresh on every call to
// NewIn and never shared.  Every constructor returns an owned
// reference; ownership is released with Release and duplicated with
// Copy.  A node whose count reaches zero is unlinked from the hash
// and its slot zeroed; slot ids are never reused.
type C struct {
	nodes  []node   // list of all nodes
	strash []uint32 // strash
	cnf    []int    // per-node CNF ids, assigned by Encode
	live   int
	F      Lit // false literal
	T      Lit
}

type node struct {
	a, b Lit    // inputs; a == LitNull means input or dead slot
	n    uint32 // next strash
	refs int32
}

// NewC creates a new and-inverter graph.
func NewC() *C {
	return NewCCap(128)
}

// NewCCap creates a new and-inverter graph with initial capacity capHint.
func NewCCap(capHint int) *C {
	if capHint < 2 {
		capHint = 2
	}
	c := &C{}
	c.nodes = make([]node, 2, capHint)
	c.strash = make([]uint32, capHint)
	c.T = toLit(1)
	c.F = c.T.Not()
	c.nodes[1].refs = 1 // the constant node is immortal
	c.live = 1
	return c
}

// Len returns the number of node slots ever allocated, including the
// reserved constant slot.
func (c *C) Len() int {
	return len(c.nodes)
}

// Live returns the number of live (referenced) nodes.
func (c *C) Live() int {
	return c.live
}

// Refs returns the reference count of m's node.
func (c *C) Refs(m Lit) int32 {
	return c.nodes[m.id()].refs
}

// IsInput tells whether m refers to an input node.
func (c *C) IsInput(m Lit) bool {
	nd := &c.nodes[m.id()]
	return nd.refs > 0 && nd.a == LitNull && m.Reg() != c.T
}

// Ins returns the children/operands of m.
//
// If m is an input or constant, Ins returns LitNull, LitNull.
func (c *C) Ins(m Lit) (Lit, Lit) {
	nd := &c.nodes[m.id()]
	return nd.a, nd.b
}

// NewIn returns an owned reference to a fresh input.  Inputs are
// never structurally shared.
func (c *C) NewIn() Lit {
	nd, id := c.newNode()
	nd.refs = 1
	c.live++
	return toLit(id)
}

// Copy increments the reference count of m's node and returns m.
func (c *C) Copy(m Lit) Lit {
	if m == LitNull {
		panic("aig: copy of null reference")
	}
	id := m.id()
	if id == 1 {
		return m
	}
	nd := &c.nodes[id]
	if nd.refs <= 0 {
		panic(fmt.Sprintf("aig: copy of dead node a%d", id))
	}
	nd.refs++
	return m
}

// Release gives up one owned reference to m.  When a node's count
// reaches zero its children are released too, via an explicit work
// list so that arbitrarily deep cones do not grow the call stack.
func (c *C) Release(m Lit) {
	if m == LitNull {
		panic("aig: release of null reference")
	}
	work := []uint32{m.id()}
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		if id <= 1 {
			continue
		}
		nd := &c.nodes[id]
		if nd.refs <= 0 {
			panic(fmt.Sprintf("aig: release of dead node a%d", id))
		}
		nd.refs--
		if nd.refs > 0 {
			continue
		}
		if nd.a != LitNull {
			c.unstrash(id)
			work = append(work, nd.a.id(), nd.b.id())
		}
		nd.a, nd.b, nd.n = LitNull, LitNull, 0
		c.live--
	}
}

// And returns an owned reference to a literal equivalent to "a and b".
// a and b are borrowed: the gate takes its own references on them.
func (c *C) And(a, b Lit) Lit {
	if a == b {
		return c.Copy(a)
	}
	if a == b.Not() {
		return c.F
	}
	if a > b {
		a, b = b, a
	}
	if a == c.F {
		return c.F
	}
	if a == c.T {
		return c.Copy(b)
	}
	h := strashCode(a, b)
	si := c.strash[h%uint32(cap(c.nodes))]
	for si != 0 {
		nd := &c.nodes[si]
		if nd.a == a && nd.b == b {
			return c.Copy(toLit(si))
		}
		si = nd.n
	}
	c.Copy(a)
	c.Copy(b)
	nd, j := c.newNode()
	nd.a = a
	nd.b = b
	nd.refs = 1
	k := h % uint32(cap(c.nodes))
	nd.n = c.strash[k]
	c.strash[k] = j
	c.live++
	return toLit(j)
}

// Or constructs a literal which is the disjunction of a and b.
func (c *C) Or(a, b Lit) Lit {
	return c.And(a.Not(), b.Not()).Not()
}

// Xor constructs a literal which is equivalent to (a xor b).
func (c *C) Xor(a, b Lit) Lit {
	l := c.And(a, b.Not())
	r := c.And(a.Not(), b)
	g := c.Or(l, r)
	c.Release(l)
	c.Release(r)
	return g
}

// Implies constructs a literal which is equivalent to (a implies b).
func (c *C) Implies(a, b Lit) Lit {
	return c.Or(a.Not(), b)
}

// Choice constructs a literal which is equivalent to
//
//	if i then t else e
func (c *C) Choice(i, t, e Lit) Lit {
	l := c.And(i, t)
	r := c.And(i.Not(), e)
	g := c.Or(l, r)
	c.Release(l)
	c.Release(r)
	return g
}

// Eval evaluates the graph with values vs, where for each literal m,
// vs[i] contains the value for m's node if m.id() == i.  vs should
// contain values for all inputs; vs[1] is forced to true.
func (c *C) Eval(vs []bool) {
	vs[1] = true
	for i := 2; i < len(c.nodes); i++ {
		nd := &c.nodes[i]
		if nd.a == LitNull {
			continue
		}
		va, vb := vs[nd.a.id()], vs[nd.b.id()]
		if nd.a.IsInv() {
			va = !va
		}
		if nd.b.IsInv() {
			vb = !vb
		}
		vs[i] = va && vb
	}
}

// Value reads the evaluated value of m from vs after Eval.
func (c *C) Value(vs []bool, m Lit) bool {
	v := vs[m.id()]
	if m.IsInv() {
		return !v
	}
	return v
}

func (c *C) unstrash(id uint32) {
	nd := &c.nodes[id]
	k := strashCode(nd.a, nd.b) % uint32(cap(c.nodes))
	si := c.strash[k]
	if si == id {
		c.strash[k] = nd.n
		return
	}
	for si != 0 {
		p := &c.nodes[si]
		if p.n == id {
			p.n = nd.n
			return
		}
		si = p.n
	}
	panic(fmt.Sprintf("aig: node a%d not in strash", id))
}

func (c *C) newNode() (*node, uint32) {
	if len(c.nodes) == cap(c.nodes) {
		c.grow()
	}
	id := len(c.nodes)
	c.nodes = c.nodes[:id+1]
	return &c.nodes[id], uint32(id)
}

func (c *C) grow() {
	newCap := cap(c.nodes) * 2
	nodes := make([]node, len(c.nodes), newCap)
	strash := make([]uint32, newCap)
	copy(nodes, c.nodes)
	ucap := uint32(newCap)
	for i := range nodes {
		nd := &nodes[i]
		if nd.a == LitNull {
			continue
		}
		nd.n = 0
		k := strashCode(nd.a, nd.b) % ucap
		nd.n = strash[k]
		strash[k] = uint32(i)
	}
	c.nodes = nodes
	c.strash = strash
}

func strashCode(a, b Lit) uint32 {
	return uint32((a << 13) * b)
}
