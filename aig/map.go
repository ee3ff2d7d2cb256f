// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aig

import "fmt"

// A Map is an owning association from literals of a source graph to
// literals of a destination graph (which may be the same graph).
// Every pair holds one reference on each side; lookups add none.
// Mapping preserves inversion tags: if a maps to b then a.Not() maps
// to b.Not() without separate storage.
type Map struct {
	src *C
	dst *C
	t   map[Lit]Lit
}

// NewMap creates an empty map from src literals to dst literals.
func NewMap(src, dst *C) *Map {
	return &Map{src: src, dst: dst, t: make(map[Lit]Lit)}
}

// Count returns the number of mapped pairs.
func (m *Map) Count() int {
	return len(m.t)
}

// Mapped returns the literal s maps to, tag-adjusted to s's polarity,
// or LitNull if s is unmapped.  No reference is added.
func (m *Map) Mapped(s Lit) Lit {
	if s == LitNull {
		panic("aig: mapped null reference")
	}
	d, ok := m.t[s.Reg()]
	if !ok {
		return LitNull
	}
	if s.IsInv() {
		return d.Not()
	}
	return d
}

// Map associates s with d, taking one reference on each.  A prior
// association for s is overwritten and its destination reference
// released.
func (m *Map) Map(s, d Lit) {
	if s == LitNull || d == LitNull {
		panic("aig: map of null reference")
	}
	if s.IsInv() {
		s, d = s.Not(), d.Not()
	}
	if old, ok := m.t[s]; ok {
		m.dst.Release(old)
		m.t[s] = m.dst.Copy(d)
		return
	}
	m.t[s] = m.dst.Copy(d)
	m.src.Copy(s)
}

// Delete releases every owned reference exactly once and empties the
// map.
func (m *Map) Delete() {
	for s, d := range m.t {
		m.src.Release(s)
		m.dst.Release(d)
	}
	m.t = make(map[Lit]Lit)
}

// CloneCone rebuilds the cone of root in the destination graph and
// returns an owned reference to the rebuilt root.  Unmapped inputs
// become fresh destination inputs; already mapped literals act as
// base cases.  The traversal is an explicit work list, not recursion.
func (m *Map) CloneCone(root Lit) Lit {
	work := []Lit{root.Reg()}
	for len(work) > 0 {
		s := work[len(work)-1]
		if m.Mapped(s) != LitNull {
			work = work[:len(work)-1]
			continue
		}
		a, b := m.src.Ins(s)
		if a == LitNull {
			if s == m.src.T {
				m.t[s] = m.dst.T
				m.src.Copy(s)
				// constants are immortal on both sides
				continue
			}
			in := m.dst.NewIn()
			m.Map(s, in)
			m.dst.Release(in)
			work = work[:len(work)-1]
			continue
		}
		da, db := m.Mapped(a), m.Mapped(b)
		if da == LitNull || db == LitNull {
			if da == LitNull {
				work = append(work, a.Reg())
			}
			if db == LitNull {
				work = append(work, b.Reg())
			}
			continue
		}
		g := m.dst.And(da, db)
		m.Map(s, g)
		m.dst.Release(g)
		work = work[:len(work)-1]
	}
	d := m.Mapped(root)
	if d == LitNull {
		panic(fmt.Sprintf("aig: clone of %s lost its root", root))
	}
	return m.dst.Copy(d)
}
