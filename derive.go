// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bex

import (
	"strings"

	"github.com/irifrance/bex/bv"
)

// Derived operators.  Everything below lowers to the core term
// constructors, so the graph, the maps, the substitution engine and
// the bit blaster only ever see core kinds.  Like the core
// constructors, these return owned references and borrow operands.

// Or returns the bitwise disjunction of a and x.
func (b *Bex) Or(a, x bv.Ref) bv.Ref {
	na, nx := b.s.Not(a), b.s.Not(x)
	g := b.s.And(na, nx)
	b.s.Release(na)
	b.s.Release(nx)
	return g.Not()
}

// Nor returns the complement of Or.
func (b *Bex) Nor(a, x bv.Ref) bv.Ref {
	g := b.Or(a, x)
	return g.Not()
}

// Nand returns the complement of And.
func (b *Bex) Nand(a, x bv.Ref) bv.Ref {
	g := b.s.And(a, x)
	return g.Not()
}

// Xor returns the bitwise exclusive or of a and x.
func (b *Bex) Xor(a, x bv.Ref) bv.Ref {
	nx := b.s.Not(x)
	l := b.s.And(a, nx)
	b.s.Release(nx)
	na := b.s.Not(a)
	r := b.s.And(na, x)
	b.s.Release(na)
	g := b.Or(l, r)
	b.s.Release(l)
	b.s.Release(r)
	return g
}

// Xnor returns the complement of Xor.
func (b *Bex) Xnor(a, x bv.Ref) bv.Ref {
	g := b.Xor(a, x)
	return g.Not()
}

// Implies returns the single-bit implication a -> x.
func (b *Bex) Implies(a, x bv.Ref) bv.Ref {
	if b.s.Width(a) != 1 || b.s.Width(x) != 1 {
		panic("bex: implies of non boolean operands")
	}
	nx := b.s.Not(x)
	g := b.s.And(a, nx)
	b.s.Release(nx)
	return g.Not()
}

// Iff returns the single-bit equivalence of a and x.
func (b *Bex) Iff(a, x bv.Ref) bv.Ref {
	if b.s.Width(a) != 1 || b.s.Width(x) != 1 {
		panic("bex: iff of non boolean operands")
	}
	return b.s.Eq(a, x)
}

// Ne returns the single-bit disequality of a and x.
func (b *Bex) Ne(a, x bv.Ref) bv.Ref {
	g := b.s.Eq(a, x)
	return g.Not()
}

// Neg returns the two's complement negation of a.
func (b *Bex) Neg(a bv.Ref) bv.Ref {
	na := b.s.Not(a)
	one := b.s.One(b.s.Width(a))
	g := b.s.Add(na, one)
	b.s.Release(na)
	b.s.Release(one)
	return g
}

// Inc returns a + 1.
func (b *Bex) Inc(a bv.Ref) bv.Ref {
	one := b.s.One(b.s.Width(a))
	g := b.s.Add(a, one)
	b.s.Release(one)
	return g
}

// Dec returns a - 1.
func (b *Bex) Dec(a bv.Ref) bv.Ref {
	ones := b.s.Ones(b.s.Width(a))
	g := b.s.Add(a, ones)
	b.s.Release(ones)
	return g
}

// Sub returns a - x.
func (b *Bex) Sub(a, x bv.Ref) bv.Ref {
	nx := b.Neg(x)
	g := b.s.Add(a, nx)
	b.s.Release(nx)
	return g
}

// Redor returns the single-bit or-reduction of a.
func (b *Bex) Redor(a bv.Ref) bv.Ref {
	z := b.s.Zero(b.s.Width(a))
	g := b.Ne(a, z)
	b.s.Release(z)
	return g
}

// Redand returns the single-bit and-reduction of a.
func (b *Bex) Redand(a bv.Ref) bv.Ref {
	o := b.s.Ones(b.s.Width(a))
	g := b.s.Eq(a, o)
	b.s.Release(o)
	return g
}

// Redxor returns the single-bit xor-reduction of a.
func (b *Bex) Redxor(a bv.Ref) bv.Ref {
	acc := b.s.Slice(a, 0, 0)
	for i := 1; i < b.s.Width(a); i++ {
		bit := b.s.Slice(a, i, i)
		nacc := b.Xor(acc, bit)
		b.s.Release(acc)
		b.s.Release(bit)
		acc = nacc
	}
	return acc
}

// Uext zero-extends a by extra bits.
func (b *Bex) Uext(a bv.Ref, extra int) bv.Ref {
	if extra < 0 {
		panic("bex: uext by negative amount")
	}
	if extra == 0 {
		return b.s.Copy(a)
	}
	z := b.s.Zero(extra)
	g := b.s.Concat(z, a)
	b.s.Release(z)
	return g
}

// Sext sign-extends a by extra bits.
func (b *Bex) Sext(a bv.Ref, extra int) bv.Ref {
	if extra < 0 {
		panic("bex: sext by negative amount")
	}
	if extra == 0 {
		return b.s.Copy(a)
	}
	w := b.s.Width(a)
	sign := b.s.Slice(a, w-1, w-1)
	ones, zero := b.s.Ones(extra), b.s.Zero(extra)
	fill := b.s.Cond(sign, ones, zero)
	b.s.Release(sign)
	b.s.Release(ones)
	b.s.Release(zero)
	g := b.s.Concat(fill, a)
	b.s.Release(fill)
	return g
}

// Ugt returns a > x unsigned.
func (b *Bex) Ugt(a, x bv.Ref) bv.Ref { return b.s.Ult(x, a) }

// Ulte returns a <= x unsigned.
func (b *Bex) Ulte(a, x bv.Ref) bv.Ref {
	g := b.s.Ult(x, a)
	return g.Not()
}

// Ugte returns a >= x unsigned.
func (b *Bex) Ugte(a, x bv.Ref) bv.Ref {
	g := b.s.Ult(a, x)
	return g.Not()
}

// signMask interns the constant with only the sign bit set.
func (b *Bex) signMask(w int) bv.Ref {
	if w == 1 {
		return b.s.Const("1")
	}
	return b.s.Const("1" + strings.Repeat("0", w-1))
}

// Slt returns a < x in two's complement, by flipping the sign bits
// and comparing unsigned.
func (b *Bex) Slt(a, x bv.Ref) bv.Ref {
	w := b.s.Width(a)
	m := b.signMask(w)
	sa := b.Xor(a, m)
	sx := b.Xor(x, m)
	b.s.Release(m)
	g := b.s.Ult(sa, sx)
	b.s.Release(sa)
	b.s.Release(sx)
	return g
}

// Slte returns a <= x signed.
func (b *Bex) Slte(a, x bv.Ref) bv.Ref {
	g := b.Slt(x, a)
	return g.Not()
}

// Sgt returns a > x signed.
func (b *Bex) Sgt(a, x bv.Ref) bv.Ref { return b.Slt(x, a) }

// Sgte returns a >= x signed.
func (b *Bex) Sgte(a, x bv.Ref) bv.Ref {
	g := b.Slt(a, x)
	return g.Not()
}

// Sra returns a shifted right arithmetically by x.
func (b *Bex) Sra(a, x bv.Ref) bv.Ref {
	w := b.s.Width(a)
	sign := b.s.Slice(a, w-1, w-1)
	pos := b.s.Srl(a, x)
	na := b.s.Not(a)
	nsrl := b.s.Srl(na, x)
	b.s.Release(na)
	neg := nsrl.Not()
	g := b.s.Cond(sign, neg, pos)
	b.s.Release(sign)
	b.s.Release(pos)
	b.s.Release(neg)
	return g
}

// Rol rotates a left by x; x is taken modulo nothing and must be
// below the width for a full rotation.
func (b *Bex) Rol(a, x bv.Ref) bv.Ref {
	w := b.s.Width(a)
	l := b.s.Sll(a, x)
	wc := b.s.Uint(uint64(w), w)
	d := b.Sub(wc, x)
	b.s.Release(wc)
	r := b.s.Srl(a, d)
	b.s.Release(d)
	g := b.Or(l, r)
	b.s.Release(l)
	b.s.Release(r)
	return g
}

// Ror rotates a right by x.
func (b *Bex) Ror(a, x bv.Ref) bv.Ref {
	w := b.s.Width(a)
	r := b.s.Srl(a, x)
	wc := b.s.Uint(uint64(w), w)
	d := b.Sub(wc, x)
	b.s.Release(wc)
	l := b.s.Sll(a, d)
	b.s.Release(d)
	g := b.Or(l, r)
	b.s.Release(l)
	b.s.Release(r)
	return g
}

// Sdiv returns a / x in two's complement.  The quotient of the
// magnitudes is negated when exactly one operand is negative;
// division by zero follows the unsigned convention on the magnitudes.
func (b *Bex) Sdiv(a, x bv.Ref) bv.Ref {
	w := b.s.Width(a)
	sa := b.s.Slice(a, w-1, w-1)
	sx := b.s.Slice(x, w-1, w-1)
	absA := b.absolute(a, sa)
	absX := b.absolute(x, sx)
	q := b.s.Udiv(absA, absX)
	b.s.Release(absA)
	b.s.Release(absX)
	sq := b.Xor(sa, sx)
	b.s.Release(sa)
	b.s.Release(sx)
	nq := b.Neg(q)
	g := b.s.Cond(sq, nq, q)
	b.s.Release(sq)
	b.s.Release(nq)
	b.s.Release(q)
	return g
}

// Srem returns the signed remainder of a / x; its sign follows the
// dividend.
func (b *Bex) Srem(a, x bv.Ref) bv.Ref {
	w := b.s.Width(a)
	sa := b.s.Slice(a, w-1, w-1)
	sx := b.s.Slice(x, w-1, w-1)
	absA := b.absolute(a, sa)
	absX := b.absolute(x, sx)
	b.s.Release(sx)
	r := b.s.Urem(absA, absX)
	b.s.Release(absA)
	b.s.Release(absX)
	nr := b.Neg(r)
	g := b.s.Cond(sa, nr, r)
	b.s.Release(sa)
	b.s.Release(nr)
	b.s.Release(r)
	return g
}

// Smod returns the signed modulus of a / x; its sign follows the
// divisor.
func (b *Bex) Smod(a, x bv.Ref) bv.Ref {
	w := b.s.Width(a)
	r := b.Srem(a, x)
	z := b.s.Zero(w)
	isZero := b.s.Eq(r, z)
	b.s.Release(z)
	sr := b.s.Slice(r, w-1, w-1)
	sx := b.s.Slice(x, w-1, w-1)
	same := b.s.Eq(sr, sx)
	b.s.Release(sr)
	b.s.Release(sx)
	use := b.Or(isZero, same)
	b.s.Release(isZero)
	b.s.Release(same)
	alt := b.s.Add(r, x)
	g := b.s.Cond(use, r, alt)
	b.s.Release(use)
	b.s.Release(alt)
	b.s.Release(r)
	return g
}

func (b *Bex) absolute(a, sign bv.Ref) bv.Ref {
	na := b.Neg(a)
	g := b.s.Cond(sign, na, a)
	b.s.Release(na)
	return g
}

// Uaddo returns the single-bit unsigned addition overflow of a + x.
func (b *Bex) Uaddo(a, x bv.Ref) bv.Ref {
	w := b.s.Width(a)
	za := b.Uext(a, 1)
	zx := b.Uext(x, 1)
	sum := b.s.Add(za, zx)
	b.s.Release(za)
	b.s.Release(zx)
	g := b.s.Slice(sum, w, w)
	b.s.Release(sum)
	return g
}

// Usubo returns the single-bit unsigned subtraction overflow (borrow)
// of a - x.
func (b *Bex) Usubo(a, x bv.Ref) bv.Ref { return b.s.Ult(a, x) }

// Saddo returns the single-bit signed addition overflow of a + x:
// the operands agree in sign and the sum does not.
func (b *Bex) Saddo(a, x bv.Ref) bv.Ref {
	w := b.s.Width(a)
	sum := b.s.Add(a, x)
	sa := b.s.Slice(a, w-1, w-1)
	sx := b.s.Slice(x, w-1, w-1)
	ss := b.s.Slice(sum, w-1, w-1)
	b.s.Release(sum)
	agree := b.Xnor(sa, sx)
	differ := b.Xor(sa, ss)
	b.s.Release(sa)
	b.s.Release(sx)
	b.s.Release(ss)
	g := b.s.And(agree, differ)
	b.s.Release(agree)
	b.s.Release(differ)
	return g
}

// Ssubo returns the single-bit signed subtraction overflow of a - x:
// the operands differ in sign and the difference disagrees with a.
func (b *Bex) Ssubo(a, x bv.Ref) bv.Ref {
	w := b.s.Width(a)
	diff := b.Sub(a, x)
	sa := b.s.Slice(a, w-1, w-1)
	sx := b.s.Slice(x, w-1, w-1)
	sd := b.s.Slice(diff, w-1, w-1)
	b.s.Release(diff)
	opp := b.Xor(sa, sx)
	flip := b.Xor(sa, sd)
	b.s.Release(sa)
	b.s.Release(sx)
	b.s.Release(sd)
	g := b.s.And(opp, flip)
	b.s.Release(opp)
	b.s.Release(flip)
	return g
}

// Umulo returns the single-bit unsigned multiplication overflow of
// a * x, via the high half of the double-width product.
func (b *Bex) Umulo(a, x bv.Ref) bv.Ref {
	w := b.s.Width(a)
	za := b.Uext(a, w)
	zx := b.Uext(x, w)
	p := b.s.Mul(za, zx)
	b.s.Release(za)
	b.s.Release(zx)
	hi := b.s.Slice(p, 2*w-1, w)
	b.s.Release(p)
	g := b.Redor(hi)
	b.s.Release(hi)
	return g
}

// Smulo returns the single-bit signed multiplication overflow of
// a * x: the double-width product is not the sign extension of its
// low half.
func (b *Bex) Smulo(a, x bv.Ref) bv.Ref {
	w := b.s.Width(a)
	sa := b.Sext(a, w)
	sx := b.Sext(x, w)
	p := b.s.Mul(sa, sx)
	b.s.Release(sa)
	b.s.Release(sx)
	lo := b.s.Slice(p, w-1, 0)
	se := b.Sext(lo, w)
	b.s.Release(lo)
	g := b.Ne(p, se)
	b.s.Release(p)
	b.s.Release(se)
	return g
}

// Sdivo returns the single-bit signed division overflow of a / x:
// the minimum value divided by minus one.
func (b *Bex) Sdivo(a, x bv.Ref) bv.Ref {
	w := b.s.Width(a)
	min := b.signMask(w)
	ea := b.s.Eq(a, min)
	b.s.Release(min)
	ones := b.s.Ones(w)
	ex := b.s.Eq(x, ones)
	b.s.Release(ones)
	g := b.s.And(ea, ex)
	b.s.Release(ea)
	b.s.Release(ex)
	return g
}
