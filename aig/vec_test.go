// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aig

import "testing"

func setVec(vs []bool, v Vec, u uint) {
	for i, m := range v {
		vs[m.id()] = u&(1<<uint(i)) != 0
	}
}

func vecVal(c *C, vs []bool, v Vec) uint {
	var r uint
	for i, m := range v {
		if c.Value(vs, m) {
			r |= 1 << uint(i)
		}
	}
	return r
}

// TestVecArith checks the word circuits against machine arithmetic at
// width 4, over all operand pairs.
func TestVecArith(t *testing.T) {
	c := NewC()
	const w = 4
	a, b := c.NewVec(w), c.NewVec(w)
	sum := c.AddVec(a, b)
	diff := c.SubVec(a, b)
	prod := c.MulVec(a, b)
	quot := c.UdivVec(a, b)
	rem := c.UremVec(a, b)
	lt := c.UltVec(a, b)
	eq := c.EqVec(a, b)
	vs := make([]bool, c.Len())
	for x := uint(0); x < 16; x++ {
		for y := uint(0); y < 16; y++ {
			setVec(vs, a, x)
			setVec(vs, b, y)
			c.Eval(vs)
			if got := vecVal(c, vs, sum); got != (x+y)&15 {
				t.Errorf("%d+%d = %d", x, y, got)
			}
			if got := vecVal(c, vs, diff); got != (x-y)&15 {
				t.Errorf("%d-%d = %d", x, y, got)
			}
			if got := vecVal(c, vs, prod); got != (x*y)&15 {
				t.Errorf("%d*%d = %d", x, y, got)
			}
			wq, wr := uint(15), x // division by zero convention
			if y != 0 {
				wq, wr = x/y, x%y
			}
			if got := vecVal(c, vs, quot); got != wq {
				t.Errorf("%d/%d = %d", x, y, got)
			}
			if got := vecVal(c, vs, rem); got != wr {
				t.Errorf("%d%%%d = %d", x, y, got)
			}
			if got := c.Value(vs, lt); got != (x < y) {
				t.Errorf("%d<%d = %v", x, y, got)
			}
			if got := c.Value(vs, eq); got != (x == y) {
				t.Errorf("%d==%d = %v", x, y, got)
			}
		}
	}
}

// TestVecShift checks the barrel shifters, including out-of-range
// amounts.
func TestVecShift(t *testing.T) {
	c := NewC()
	const w = 4
	a, sh := c.NewVec(w), c.NewVec(w)
	sll := c.SllVec(a, sh)
	srl := c.SrlVec(a, sh)
	sra := c.SraVec(a, sh)
	vs := make([]bool, c.Len())
	for x := uint(0); x < 16; x++ {
		for s := uint(0); s < 16; s++ {
			setVec(vs, a, x)
			setVec(vs, sh, s)
			c.Eval(vs)
			wl, wr, wa := uint(0), uint(0), uint(0)
			if x&8 != 0 {
				wa = 15
			}
			if s < w {
				wl = (x << s) & 15
				wr = x >> s
				wa = (wa &^ (15 >> s)) | (x >> s)
			}
			if got := vecVal(c, vs, sll); got != wl {
				t.Errorf("%d<<%d = %d", x, s, got)
			}
			if got := vecVal(c, vs, srl); got != wr {
				t.Errorf("%d>>%d = %d", x, s, got)
			}
			if got := vecVal(c, vs, sra); got != wa&15 {
				t.Errorf("%d>>>%d = %d, want %d", x, s, got, wa&15)
			}
		}
	}
}

func TestVecSliceConcat(t *testing.T) {
	c := NewC()
	a := c.NewVec(6)
	hi := c.SliceVec(a, 5, 3)
	lo := c.SliceVec(a, 2, 0)
	back := c.ConcatVec(hi, lo)
	ze := c.UextVec(lo, 6)
	se := c.SextVec(lo, 6)
	vs := make([]bool, c.Len())
	for x := uint(0); x < 64; x++ {
		setVec(vs, a, x)
		c.Eval(vs)
		if got := vecVal(c, vs, back); got != x {
			t.Errorf("concat(slice) %d = %d", x, got)
		}
		if got := vecVal(c, vs, ze); got != x&7 {
			t.Errorf("uext %d = %d", x, got)
		}
		ws := x & 7
		if ws&4 != 0 {
			ws |= 56
		}
		if got := vecVal(c, vs, se); got != ws {
			t.Errorf("sext %d = %d", x, got)
		}
	}
}

func TestVecConst(t *testing.T) {
	c := NewC()
	v := c.ConstVec("1010")
	vs := make([]bool, c.Len())
	c.Eval(vs)
	if got := vecVal(c, vs, v); got != 10 {
		t.Errorf("const 1010 = %d", got)
	}
	n := c.Live()
	c.ReleaseVec(v)
	if c.Live() != n {
		t.Errorf("const vec affected live count")
	}
}
