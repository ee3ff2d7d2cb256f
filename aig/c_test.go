// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aig

import "testing"

func TestCAndShares(t *testing.T) {
	c := NewC()
	a, b := c.NewIn(), c.NewIn()
	g := c.And(a, b)
	h := c.And(a, b)
	if g != h {
		t.Errorf("and not shared: %s %s", g, h)
	}
	if k := c.And(b, a); k != g {
		t.Errorf("and not commuted: %s %s", k, g)
	}
	if c.Refs(g) != 3 {
		t.Errorf("got %d refs", c.Refs(g))
	}
}

func TestCAndSimp(t *testing.T) {
	c := NewC()
	a := c.NewIn()
	if g := c.And(a, a); g != a {
		t.Errorf("and(a,a) = %s", g)
	}
	if g := c.And(a, a.Not()); g != c.F {
		t.Errorf("and(a,!a) = %s", g)
	}
	if g := c.And(c.T, a); g != a {
		t.Errorf("and(T,a) = %s", g)
	}
	if g := c.And(c.F, a); g != c.F {
		t.Errorf("and(F,a) = %s", g)
	}
}

func TestCReleaseFrees(t *testing.T) {
	c := NewC()
	a, b := c.NewIn(), c.NewIn()
	n := c.Live()
	g := c.And(a, b)
	h := c.And(g, b.Not())
	c.Release(g)
	if c.Live() != n+2 {
		t.Errorf("live %d after release of shared gate", c.Live())
	}
	c.Release(h)
	if c.Live() != n {
		t.Errorf("live %d after release of cone", c.Live())
	}
	// constants survive any number of releases
	c.Release(c.T)
	c.Release(c.F)
	if c.Live() != n {
		t.Errorf("live %d after releasing constants", c.Live())
	}
}

func TestCGrowStrash(t *testing.T) {
	c := NewCCap(2)
	a, b := c.NewIn(), c.NewIn()
	g := c.And(a, b)
	acc := c.Copy(g)
	for i := 0; i < 300; i++ {
		in := c.NewIn()
		nacc := c.And(acc, in)
		c.Release(acc)
		acc = nacc
	}
	if h := c.And(a, b); h != g {
		t.Errorf("strash lost %s across grow", g)
	}
}

func TestCEval(t *testing.T) {
	c := NewC()
	a, b, s := c.NewIn(), c.NewIn(), c.NewIn()
	x := c.Xor(a, b)
	im := c.Implies(a, b)
	ch := c.Choice(s, a, b)
	vs := make([]bool, c.Len())
	for i := 0; i < 8; i++ {
		va, vb, vsel := i&1 != 0, i&2 != 0, i&4 != 0
		vs[1] = true
		vs[a.id()], vs[b.id()], vs[s.id()] = va, vb, vsel
		c.Eval(vs)
		if got := c.Value(vs, x); got != (va != vb) {
			t.Errorf("xor(%v,%v) = %v", va, vb, got)
		}
		if got := c.Value(vs, im); got != (!va || vb) {
			t.Errorf("implies(%v,%v) = %v", va, vb, got)
		}
		want := vb
		if vsel {
			want = va
		}
		if got := c.Value(vs, ch); got != want {
			t.Errorf("choice(%v,%v,%v) = %v", vsel, va, vb, got)
		}
	}
}
