// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bv

import "fmt"

// A Map is an owning association from source references to
// destination references.  Every pair holds one reference on each of
// src and dst; a successful lookup adds none.  Tag propagation is
// implicit: if a maps to b, then a.Not() maps to b.Not() without
// separate storage.
type Map struct {
	s *Store
	t map[Ref]Ref
}

// NewMap creates an empty map over s.
func NewMap(s *Store) *Map {
	return &Map{s: s, t: make(map[Ref]Ref)}
}

// Count returns the number of mapped pairs.
func (m *Map) Count() int {
	return len(m.t)
}

// Mapped returns the reference src maps to, tag-adjusted to src's
// polarity, or RefNull if unmapped.  No reference is added.
func (m *Map) Mapped(src Ref) Ref {
	if src == RefNull {
		panic("bv: mapped null reference")
	}
	dst, ok := m.t[src.Reg()]
	if !ok {
		return RefNull
	}
	if src.IsInv() {
		return dst.Not()
	}
	return dst
}

// Map associates src with dst, taking one reference on each.  A
// prior association for src is overwritten and its old destination
// released.  The constant-false sentinel is not mappable.
func (m *Map) Map(src, dst Ref) {
	if src == RefNull || dst == RefNull {
		panic("bv: map of null reference")
	}
	if m.s.isFalseNode(src) {
		panic(fmt.Sprintf("bv: map of constant sentinel %s", src))
	}
	if src.IsInv() {
		src, dst = src.Not(), dst.Not()
	}
	if old, ok := m.t[src]; ok {
		m.s.Release(old)
		m.t[src] = m.s.Copy(dst)
		return
	}
	m.t[src] = m.s.Copy(dst)
	m.s.Copy(src)
}

// isFalseNode tells whether r's node is the single-bit false
// constant, the one node maps reserve as their unmapped marker.
func (s *Store) isFalseNode(r Ref) bool {
	nd := s.node(r)
	return nd.kind == KindConst && nd.bits == "0"
}

// Delete releases every owned (src, dst) pair exactly once and
// empties the map.
func (m *Map) Delete() {
	for src, dst := range m.t {
		m.s.Release(src)
		m.s.Release(dst)
	}
	m.t = make(map[Ref]Ref)
}
