// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bv

import "testing"

func TestMapRoundTrip(t *testing.T) {
	s := NewStore()
	a, b := s.Var(8, "a"), s.Var(8, "b")
	m := NewMap(s)
	if got := m.Mapped(a); got != RefNull {
		t.Errorf("unmapped lookup %s", got)
	}
	m.Map(a, b)
	if got := m.Mapped(a); got != b {
		t.Errorf("mapped(a) = %s", got)
	}
	if got := m.Mapped(a.Not()); got != b.Not() {
		t.Errorf("mapped(!a) = %s", got)
	}
	if m.Count() != 1 {
		t.Errorf("count %d", m.Count())
	}
}

func TestMapOwnsOneRefPerSide(t *testing.T) {
	s := NewStore()
	a, b, c := s.Var(8, "a"), s.Var(8, "b"), s.Var(8, "c")
	m := NewMap(s)
	m.Map(a, b)
	if s.Refs(a) != 2 || s.Refs(b) != 2 {
		t.Errorf("refs after map: %d %d", s.Refs(a), s.Refs(b))
	}
	m.Mapped(a) // lookups add nothing
	if s.Refs(b) != 2 {
		t.Errorf("refs after lookup: %d", s.Refs(b))
	}
	m.Map(a, c) // overwrite releases the old destination
	if s.Refs(b) != 1 || s.Refs(c) != 2 || s.Refs(a) != 2 {
		t.Errorf("refs after overwrite: %d %d %d", s.Refs(b), s.Refs(c), s.Refs(a))
	}
	m.Delete()
	if s.Refs(a) != 1 || s.Refs(c) != 1 {
		t.Errorf("refs after delete: %d %d", s.Refs(a), s.Refs(c))
	}
}

func TestMapInvertedPair(t *testing.T) {
	s := NewStore()
	a, b := s.Var(8, "a"), s.Var(8, "b")
	m := NewMap(s)
	m.Map(a.Not(), b)
	if got := m.Mapped(a); got != b.Not() {
		t.Errorf("mapped(a) = %s", got)
	}
	if got := m.Mapped(a.Not()); got != b {
		t.Errorf("mapped(!a) = %s", got)
	}
}

func TestMapSentinelPanics(t *testing.T) {
	s := NewStore()
	a := s.Var(1, "a")
	m := NewMap(s)
	defer func() {
		if recover() == nil {
			t.Errorf("no panic mapping the false constant")
		}
	}()
	m.Map(s.False(), a)
}
