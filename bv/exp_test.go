// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bv

import "testing"

func constOf(t *testing.T, s *Store, r Ref) string {
	t.Helper()
	bits, ok := s.ConstBits(r)
	if !ok {
		t.Fatalf("%s is not constant", r)
	}
	return bits
}

func TestExpFolds(t *testing.T) {
	s := NewStore()
	for _, tc := range []struct {
		got  Ref
		want string
	}{
		{s.Add(s.Const("0101"), s.Const("0011")), "1000"},
		{s.Add(s.Const("1111"), s.Const("0001")), "0000"}, // wraps
		{s.Mul(s.Const("0011"), s.Const("0011")), "1001"},
		{s.And(s.Const("0110"), s.Const("0011")), "0010"},
		{s.Udiv(s.Const("0111"), s.Const("0010")), "0011"},
		{s.Udiv(s.Const("0111"), s.Const("0000")), "1111"}, // by zero: ones
		{s.Urem(s.Const("0111"), s.Const("0010")), "0001"},
		{s.Urem(s.Const("0111"), s.Const("0000")), "0111"}, // by zero: dividend
		{s.Sll(s.Const("0011"), s.Const("0010")), "1100"},
		{s.Sll(s.Const("0011"), s.Const("0110")), "0000"}, // out of range
		{s.Srl(s.Const("1100"), s.Const("0010")), "0011"},
		{s.Concat(s.Const("10"), s.Const("01")), "1001"},
		{s.Slice(s.Const("110010"), 4, 1), "1001"},
	} {
		if got := constOf(t, s, tc.got); got != tc.want {
			t.Errorf("fold got %s, want %s", got, tc.want)
		}
	}
}

func TestExpIdentities(t *testing.T) {
	s := NewStore()
	a := s.Var(4, "a")
	z, o := s.Zero(4), s.Ones(4)
	if g := s.Add(a, z); g != a {
		t.Errorf("a+0 = %s", g)
	}
	if g := s.And(a, o); g != a {
		t.Errorf("a&ones = %s", g)
	}
	if g := s.And(a, z); g != z {
		t.Errorf("a&0 = %s", g)
	}
	if g := s.And(a, a.Not()); g != z {
		t.Errorf("a&!a = %s", g)
	}
	if g := s.Eq(a, a); g != s.True() {
		t.Errorf("a==a folds to %s", g)
	}
	if g := s.Eq(a, a.Not()); g != s.False() {
		t.Errorf("a==!a folds to %s", g)
	}
	if g := s.Ult(a, z); g != s.False() {
		t.Errorf("a<0 folds to %s", g)
	}
	if g := s.Urem(a, z); g != a {
		t.Errorf("a mod 0 = %s", g)
	}
	if g := s.Udiv(a, z); g != o {
		t.Errorf("a / 0 = %s", g)
	}
}

func TestExpCond(t *testing.T) {
	s := NewStore()
	a, b := s.Var(4, "a"), s.Var(4, "b")
	if g := s.Cond(s.True(), a, b); g != a {
		t.Errorf("cond(1,a,b) = %s", g)
	}
	if g := s.Cond(s.False(), a, b); g != b {
		t.Errorf("cond(0,a,b) = %s", g)
	}
	c := s.Var(1, "c")
	if g := s.Cond(c, a, a); g != a {
		t.Errorf("cond(c,a,a) = %s", g)
	}
}

func TestExpUintInt(t *testing.T) {
	s := NewStore()
	if got := constOf(t, s, s.Uint(6, 4)); got != "0110" {
		t.Errorf("uint 6 = %s", got)
	}
	if got := constOf(t, s, s.Int(-1, 4)); got != "1111" {
		t.Errorf("int -1 = %s", got)
	}
	if got := constOf(t, s, s.Int(-2, 4)); got != "1110" {
		t.Errorf("int -2 = %s", got)
	}
	if got := constOf(t, s, s.One(4)); got != "0001" {
		t.Errorf("one = %s", got)
	}
}

func TestExpBetaReduce(t *testing.T) {
	s := NewStore()
	p := s.Param(4, "p")
	one := s.One(4)
	body := s.Add(p, one)
	f := s.Fun(p, body)
	arg := s.Const("0101")
	r := s.Apply(f, arg)
	if got := constOf(t, s, r); got != "0110" {
		t.Errorf("apply fold got %s", got)
	}
}

func TestExpUFApplyInterned(t *testing.T) {
	s := NewStore()
	f := s.UF([]int{4, 4}, 8, "f")
	a, b := s.Var(4, "a"), s.Var(4, "b")
	x := s.Apply(f, a, b)
	y := s.Apply(f, a, b)
	if x != y {
		t.Errorf("uf application not interned")
	}
	if s.Width(x) != 8 {
		t.Errorf("codomain width %d", s.Width(x))
	}
	z := s.Apply(f, b, a)
	if z == x && a != b {
		t.Errorf("argument order ignored")
	}
}

func TestExpArraySorts(t *testing.T) {
	s := NewStore()
	m := s.Array(8, 4, "m")
	i := s.Var(4, "i")
	v := s.Var(8, "v")
	w := s.Write(m, i, v)
	if !s.IsArray(w) {
		t.Errorf("write is not array sorted")
	}
	r := s.Read(w, i)
	if s.Width(r) != 8 {
		t.Errorf("read width %d", s.Width(r))
	}
	func() {
		defer func() {
			if recover() == nil {
				t.Errorf("no panic on eq over arrays")
			}
		}()
		s.Eq(m, w)
	}()
	func() {
		defer func() {
			if recover() == nil {
				t.Errorf("no panic on read index width")
			}
		}()
		s.Read(m, v)
	}()
}
