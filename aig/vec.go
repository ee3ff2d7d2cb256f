// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aig

import "fmt"

// A Vec is a word of AIG literals, least significant bit first.
// Every literal in a Vec built by the methods below is an owned
// reference; ReleaseVec gives the word up.  Operands are borrowed.
type Vec []Lit

// NewVec returns a word of w fresh inputs.
func (c *C) NewVec(w int) Vec {
	if w <= 0 {
		panic(fmt.Sprintf("aig: invalid width %d", w))
	}
	v := make(Vec, w)
	for i := range v {
		v[i] = c.NewIn()
	}
	return v
}

// ConstVec returns the word for bits, given most significant bit
// first as a string of '0' and '1' (the usual written order).
func (c *C) ConstVec(bits string) Vec {
	w := len(bits)
	if w == 0 {
		panic("aig: empty constant")
	}
	v := make(Vec, w)
	for i := 0; i < w; i++ {
		switch bits[w-1-i] {
		case '0':
			v[i] = c.F
		case '1':
			v[i] = c.T
		default:
			panic(fmt.Sprintf("aig: invalid constant %q", bits))
		}
	}
	return v
}

// ZeroVec returns the all-zero word of width w.
func (c *C) ZeroVec(w int) Vec {
	v := make(Vec, w)
	for i := range v {
		v[i] = c.F
	}
	return v
}

// CopyVec returns a new owned reference for every bit of v.
func (c *C) CopyVec(v Vec) Vec {
	r := make(Vec, len(v))
	for i, m := range v {
		r[i] = c.Copy(m)
	}
	return r
}

// ReleaseVec releases every bit of v.
func (c *C) ReleaseVec(v Vec) {
	for _, m := range v {
		c.Release(m)
	}
}

// NotVec returns the bitwise complement of a.
func (c *C) NotVec(a Vec) Vec {
	r := make(Vec, len(a))
	for i, m := range a {
		r[i] = c.Copy(m).Not()
	}
	return r
}

// AndVec returns the bitwise conjunction of a and b.
func (c *C) AndVec(a, b Vec) Vec {
	r := make(Vec, len(a))
	for i := range a {
		r[i] = c.And(a[i], b[i])
	}
	return r
}

// EqVec returns a literal which is true iff a and b agree on every bit.
func (c *C) EqVec(a, b Vec) Lit {
	acc := c.T
	for i := range a {
		x := c.Xor(a[i], b[i])
		nacc := c.And(acc, x.Not())
		c.Release(x)
		c.Release(acc)
		acc = nacc
	}
	return acc
}

// UltVec returns a literal which is true iff a < b unsigned.
func (c *C) UltVec(a, b Vec) Lit {
	lt := c.F
	for i := 0; i < len(a); i++ {
		x := c.Xor(a[i], b[i])
		t1 := c.And(a[i].Not(), b[i])
		t2 := c.And(x.Not(), lt)
		nlt := c.Or(t1, t2)
		c.Release(x)
		c.Release(t1)
		c.Release(t2)
		c.Release(lt)
		lt = nlt
	}
	return lt
}

// AddVec returns a + b, dropping the final carry.
func (c *C) AddVec(a, b Vec) Vec {
	s, cout := c.addVec(a, b, c.F)
	c.Release(cout)
	return s
}

// AddCarryVec returns a + b together with the carry out.
func (c *C) AddCarryVec(a, b Vec) (Vec, Lit) {
	return c.addVec(a, b, c.F)
}

func (c *C) addVec(a, b Vec, cin Lit) (Vec, Lit) {
	s := make(Vec, len(a))
	carry := c.Copy(cin)
	for i := range a {
		x := c.Xor(a[i], b[i])
		s[i] = c.Xor(x, carry)
		t1 := c.And(a[i], b[i])
		t2 := c.And(carry, x)
		ncarry := c.Or(t1, t2)
		c.Release(x)
		c.Release(t1)
		c.Release(t2)
		c.Release(carry)
		carry = ncarry
	}
	return s, carry
}

// SubVec returns a - b.
func (c *C) SubVec(a, b Vec) Vec {
	nb := c.NotVec(b)
	s, cout := c.addVec(a, nb, c.T)
	c.ReleaseVec(nb)
	c.Release(cout)
	return s
}

// MulVec returns a * b, dropping overflow, via shift and add.
func (c *C) MulVec(a, b Vec) Vec {
	w := len(a)
	acc := c.ZeroVec(w)
	for i := 0; i < w; i++ {
		row := make(Vec, w)
		for j := 0; j < i; j++ {
			row[j] = c.F
		}
		for j := i; j < w; j++ {
			row[j] = c.And(a[j-i], b[i])
		}
		nacc, cout := c.addVec(acc, row, c.F)
		c.Release(cout)
		c.ReleaseVec(acc)
		c.ReleaseVec(row)
		acc = nacc
	}
	return acc
}

// UdivVec returns a / b unsigned.  Division by zero yields the
// all-ones word.
func (c *C) UdivVec(a, b Vec) Vec {
	q, r := c.divRem(a, b)
	c.ReleaseVec(r)
	return q
}

// UremVec returns a mod b unsigned.  Remainder by zero yields a.
func (c *C) UremVec(a, b Vec) Vec {
	q, r := c.divRem(a, b)
	c.ReleaseVec(q)
	return r
}

// divRem implements restoring division.  When the divisor is zero the
// greater-or-equal test holds in every round, so the quotient is all
// ones and the remainder is the dividend.
func (c *C) divRem(a, d Vec) (Vec, Vec) {
	w := len(a)
	q := make(Vec, w)
	r := c.ZeroVec(w)
	for i := w - 1; i >= 0; i-- {
		nr := make(Vec, w)
		nr[0] = c.Copy(a[i])
		copy(nr[1:], r[:w-1])
		c.Release(r[w-1])
		r = nr
		ge := c.UltVec(r, d).Not()
		q[i] = ge
		sub := c.SubVec(r, d)
		nr2 := c.CondVec(ge, sub, r)
		c.ReleaseVec(sub)
		c.ReleaseVec(r)
		r = nr2
	}
	return q, r
}

// SllVec returns a shifted left by sh; shifts of at least len(a)
// yield zero.
func (c *C) SllVec(a, sh Vec) Vec {
	return c.shift(a, sh, func(res Vec, d int) Vec {
		w := len(res)
		s := make(Vec, w)
		for j := 0; j < w; j++ {
			if j < d {
				s[j] = c.F
			} else {
				s[j] = c.Copy(res[j-d])
			}
		}
		return s
	}, c.F)
}

// SrlVec returns a shifted right logically by sh.
func (c *C) SrlVec(a, sh Vec) Vec {
	return c.shift(a, sh, func(res Vec, d int) Vec {
		w := len(res)
		s := make(Vec, w)
		for j := 0; j < w; j++ {
			if j+d < w {
				s[j] = c.Copy(res[j+d])
			} else {
				s[j] = c.F
			}
		}
		return s
	}, c.F)
}

// SraVec returns a shifted right arithmetically by sh.
func (c *C) SraVec(a, sh Vec) Vec {
	sign := a[len(a)-1]
	return c.shift(a, sh, func(res Vec, d int) Vec {
		w := len(res)
		s := make(Vec, w)
		for j := 0; j < w; j++ {
			if j+d < w {
				s[j] = c.Copy(res[j+d])
			} else {
				s[j] = c.Copy(sign)
			}
		}
		return s
	}, sign)
}

// shift is a barrel shifter: one mux stage per shift-amount bit, plus
// a final stage forcing fill when the amount is out of range.
func (c *C) shift(a, sh Vec, stage func(Vec, int) Vec, fill Lit) Vec {
	w := len(a)
	res := c.CopyVec(a)
	for k := 0; k < len(sh) && k < 31 && 1<<uint(k) < w; k++ {
		shifted := stage(res, 1<<uint(k))
		nr := c.CondVec(sh[k], shifted, res)
		c.ReleaseVec(shifted)
		c.ReleaseVec(res)
		res = nr
	}
	big := c.F
	for k := range sh {
		if k < 31 && 1<<uint(k) < w {
			continue
		}
		nb := c.Or(big, sh[k])
		c.Release(big)
		big = nb
	}
	if big != c.F {
		full := make(Vec, w)
		for j := range full {
			full[j] = c.Copy(fill)
		}
		nr := c.CondVec(big, full, res)
		c.ReleaseVec(full)
		c.ReleaseVec(res)
		c.Release(big)
		res = nr
	}
	return res
}

// CondVec returns the word equal to t when sel holds and e otherwise.
func (c *C) CondVec(sel Lit, t, e Vec) Vec {
	r := make(Vec, len(t))
	for i := range t {
		r[i] = c.Choice(sel, t[i], e[i])
	}
	return r
}

// ConcatVec returns hi ∘ lo, with lo in the low bits.
func (c *C) ConcatVec(hi, lo Vec) Vec {
	r := make(Vec, 0, len(hi)+len(lo))
	for _, m := range lo {
		r = append(r, c.Copy(m))
	}
	for _, m := range hi {
		r = append(r, c.Copy(m))
	}
	return r
}

// SliceVec returns bits upper..lower of a, inclusive.
func (c *C) SliceVec(a Vec, upper, lower int) Vec {
	if lower < 0 || upper < lower || upper >= len(a) {
		panic(fmt.Sprintf("aig: slice [%d:%d] of width %d", upper, lower, len(a)))
	}
	r := make(Vec, 0, upper-lower+1)
	for i := lower; i <= upper; i++ {
		r = append(r, c.Copy(a[i]))
	}
	return r
}

// UextVec zero-extends a to width w.
func (c *C) UextVec(a Vec, w int) Vec {
	if w < len(a) {
		panic(fmt.Sprintf("aig: uext to %d below width %d", w, len(a)))
	}
	r := c.CopyVec(a)
	for len(r) < w {
		r = append(r, c.F)
	}
	return r
}

// SextVec sign-extends a to width w.
func (c *C) SextVec(a Vec, w int) Vec {
	if w < len(a) {
		panic(fmt.Sprintf("aig: sext to %d below width %d", w, len(a)))
	}
	r := c.CopyVec(a)
	sign := a[len(a)-1]
	for len(r) < w {
		r = append(r, c.Copy(sign))
	}
	return r
}
