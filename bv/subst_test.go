// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bv

import "testing"

func TestSubstReplacesVar(t *testing.T) {
	s := NewStore()
	a, b, x := s.Var(4, "a"), s.Var(4, "b"), s.Var(4, "x")
	g := s.Add(a, x)
	h := s.And(g, b)
	m := NewMap(s)
	m.Map(x, b)
	r := m.Subst(h)
	want := s.And(s.Add(a, b), b)
	if r != want {
		t.Errorf("subst got %s, want %s", r, want)
	}
	m.Delete()
}

func TestSubstSelfMapIdentity(t *testing.T) {
	s := NewStore()
	a := s.Var(4, "a")
	m := NewMap(s)
	m.Map(a, a)
	if r := m.Subst(a); r != a {
		t.Errorf("self subst got %s", r)
	}
	m.Delete()
	if s.Refs(a) != 2 { // the original plus the subst result
		t.Errorf("refs %d", s.Refs(a))
	}
}

func TestSubstTagPreserved(t *testing.T) {
	s := NewStore()
	a, b := s.Var(4, "a"), s.Var(4, "b")
	m := NewMap(s)
	m.Map(a, b)
	if r := m.Subst(a.Not()); r != b.Not() {
		t.Errorf("inverted subst got %s", r)
	}
	m.Delete()
}

func TestSubstMappedInteriorShortCircuits(t *testing.T) {
	s := NewStore()
	a, b, c := s.Var(4, "a"), s.Var(4, "b"), s.Var(4, "c")
	g := s.Add(a, b)
	h := s.Mul(g, a)
	m := NewMap(s)
	m.Map(g, c)  // interior node replaced wholesale
	m.Map(a, b)  // must not apply below g
	r := m.Subst(h)
	want := s.Mul(c, b)
	if r != want {
		t.Errorf("subst got %s, want %s", r, want)
	}
	m.Delete()
}

func TestSubstDeepChain(t *testing.T) {
	s := NewStore()
	x, y := s.Var(4, "x"), s.Var(4, "y")
	one := s.One(4)
	const depth = 200000
	g := s.Copy(x)
	for i := 0; i < depth; i++ {
		ng := s.Add(g, one)
		s.Release(g)
		g = ng
	}
	m := NewMap(s)
	m.Map(x, y)
	r := m.Subst(g) // must not recurse
	if s.Width(r) != 4 || r == g {
		t.Errorf("deep subst got %s", r)
	}
	m.Delete()
}

func TestSubstExtMapper(t *testing.T) {
	s := NewStore()
	a, b := s.Var(4, "a"), s.Var(4, "b")
	g := s.And(s.Add(a, b), b)
	m := NewMap(s)
	zeroVars := func(s *Store, state interface{}, n Ref) Ref {
		if s.KindOf(n) == KindVar {
			return s.Zero(s.Width(n))
		}
		return RefNull
	}
	r := m.SubstExt(nil, zeroVars, g)
	if bits, ok := s.ConstBits(r); !ok || bits != "0000" {
		t.Errorf("mapper subst got %s", r)
	}
	m.Delete()
}

func TestSubstFalseConstant(t *testing.T) {
	s := NewStore()
	a := s.Var(1, "a")
	g := s.And(a, s.False()) // folds to the false constant
	if g != s.False() {
		t.Fatalf("fold gave %s", g)
	}
	h := s.Cond(a, s.False(), s.True())
	m := NewMap(s)
	m.Map(a, s.True())
	r := m.Subst(h)
	if r != s.False() {
		t.Errorf("subst through false constant got %s", r)
	}
	if r2 := m.Subst(s.False()); r2 != s.False() {
		t.Errorf("subst of false constant got %s", r2)
	}
	m.Delete()
}
