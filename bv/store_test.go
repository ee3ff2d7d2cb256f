// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bv

import "testing"

func TestStoreInterns(t *testing.T) {
	s := NewStore()
	a, b := s.Var(8, "a"), s.Var(8, "b")
	g := s.And(a, b)
	h := s.And(a, b)
	if g != h {
		t.Errorf("and not interned: %s %s", g, h)
	}
	if k := s.And(b, a); k != g {
		t.Errorf("and not commuted: %s %s", k, g)
	}
	if s.Refs(g) != 3 {
		t.Errorf("refs %d", s.Refs(g))
	}
	if c := s.Const("0101"); c != s.Const("0101") {
		t.Errorf("const not interned")
	}
}

func TestStoreFreshVars(t *testing.T) {
	s := NewStore()
	a, b := s.Var(8, "x"), s.Var(8, "x")
	if a == b {
		t.Errorf("vars shared")
	}
	p, q := s.Array(8, 4, "m"), s.Array(8, 4, "m")
	if p == q {
		t.Errorf("arrays shared")
	}
	f, g := s.UF([]int{8}, 8, "f"), s.UF([]int{8}, 8, "f")
	if f == g {
		t.Errorf("ufs shared")
	}
}

func TestStoreReleaseCascades(t *testing.T) {
	s := NewStore()
	a, b := s.Var(4, "a"), s.Var(4, "b")
	n := s.Live()
	g := s.And(a, b)
	h := s.Add(g, a)
	s.Release(g) // shared by h
	if s.Live() != n+2 {
		t.Errorf("live %d", s.Live())
	}
	s.Release(h)
	if s.Live() != n {
		t.Errorf("live %d after cascade", s.Live())
	}
	// ids are never reused: the rebuilt node gets a fresh slot
	g2 := s.And(a, b)
	if g2 == g {
		t.Errorf("slot reused for %s", g2)
	}
	if g2.id() <= g.id() {
		t.Errorf("id %d not above %d", g2.id(), g.id())
	}
}

func TestStoreConstBitsTag(t *testing.T) {
	s := NewStore()
	c := s.Const("0110")
	if bits, ok := s.ConstBits(c); !ok || bits != "0110" {
		t.Errorf("bits %q", bits)
	}
	if bits, ok := s.ConstBits(c.Not()); !ok || bits != "1001" {
		t.Errorf("inverted bits %q", bits)
	}
	if _, ok := s.ConstBits(s.Var(4, "")); ok {
		t.Errorf("var has const bits")
	}
}

func TestStoreWidthPanics(t *testing.T) {
	s := NewStore()
	a, b := s.Var(8, "a"), s.Var(4, "b")
	defer func() {
		if recover() == nil {
			t.Errorf("no panic on width mismatch")
		}
	}()
	s.Add(a, b)
}

func TestStoreDeadRefPanics(t *testing.T) {
	s := NewStore()
	a := s.Var(8, "a")
	b := s.Var(8, "b")
	g := s.And(a, b)
	s.Release(g)
	defer func() {
		if recover() == nil {
			t.Errorf("no panic on dead reference")
		}
	}()
	s.Width(g)
}

func TestStoreSymbols(t *testing.T) {
	s := NewStore()
	a := s.Var(8, "")
	if s.Symbol(a) != "" {
		t.Errorf("symbol %q", s.Symbol(a))
	}
	s.SetSymbol(a, "x")
	if s.Symbol(a) != "x" {
		t.Errorf("symbol %q", s.Symbol(a))
	}
}
