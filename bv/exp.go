// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bv

import (
	"fmt"
	"strings"
)

// Every constructor returns an owned reference; operand references
// are borrowed.  Malformed terms (width or sort mismatches) panic
// with a diagnostic naming the operator and the operand widths, per
// the precondition contract: they indicate a defect in the caller.

// Const interns the constant with the given bits, most significant
// bit first.
func (s *Store) Const(bits string) Ref {
	if len(bits) == 0 {
		panic("bv: empty constant")
	}
	for i := 0; i < len(bits); i++ {
		if bits[i] != '0' && bits[i] != '1' {
			panic(fmt.Sprintf("bv: invalid constant %q", bits))
		}
	}
	return s.alloc(node{kind: KindConst, width: int32(len(bits)), bits: bits})
}

// Zero interns the all-zero constant of width w.
func (s *Store) Zero(w int) Ref {
	if w <= 0 {
		panic(fmt.Sprintf("bv: zero of invalid width %d", w))
	}
	return s.Const(strings.Repeat("0", w))
}

// Ones interns the all-one constant of width w.
func (s *Store) Ones(w int) Ref {
	if w <= 0 {
		panic(fmt.Sprintf("bv: ones of invalid width %d", w))
	}
	return s.Const(strings.Repeat("1", w))
}

// One interns the constant 1 of width w.
func (s *Store) One(w int) Ref {
	return s.Uint(1, w)
}

// True interns the single-bit true constant.
func (s *Store) True() Ref { return s.Const("1") }

// False interns the single-bit false constant, the sentinel which
// node maps refuse as a source.
func (s *Store) False() Ref { return s.Const("0") }

// Uint interns u as a constant of width w, truncating high bits.
func (s *Store) Uint(u uint64, w int) Ref {
	if w <= 0 {
		panic(fmt.Sprintf("bv: constant of invalid width %d", w))
	}
	b := make([]byte, w)
	for i := 0; i < w; i++ {
		if i < 64 && u&(1<<uint(i)) != 0 {
			b[w-1-i] = '1'
		} else {
			b[w-1-i] = '0'
		}
	}
	return s.Const(string(b))
}

// Int interns i as a two's complement constant of width w.
func (s *Store) Int(i int64, w int) Ref {
	return s.Uint(uint64(i), w)
}

// Var creates a fresh bit-vector variable.  Variables are never
// shared: two calls with identical arguments yield distinct nodes.
func (s *Store) Var(w int, sym string) Ref {
	if w <= 0 {
		panic(fmt.Sprintf("bv: var of invalid width %d", w))
	}
	return s.alloc(node{kind: KindVar, width: int32(w), sym: sym})
}

// Param creates a fresh function parameter.
func (s *Store) Param(w int, sym string) Ref {
	if w <= 0 {
		panic(fmt.Sprintf("bv: param of invalid width %d", w))
	}
	return s.alloc(node{kind: KindParam, width: int32(w), sym: sym})
}

// Array creates a fresh array variable with element width ew and
// index width iw.
func (s *Store) Array(ew, iw int, sym string) Ref {
	if ew <= 0 || iw <= 0 {
		panic(fmt.Sprintf("bv: array with element width %d index width %d", ew, iw))
	}
	return s.alloc(node{kind: KindArray, width: int32(ew), iwidth: int32(iw), sym: sym})
}

// UF creates a fresh uninterpreted function with the given domain
// widths and codomain width.
func (s *Store) UF(dom []int, cod int, sym string) Ref {
	if len(dom) == 0 {
		panic("bv: uf with empty domain")
	}
	if cod <= 0 {
		panic(fmt.Sprintf("bv: uf with codomain width %d", cod))
	}
	ds := make([]int32, len(dom))
	for i, w := range dom {
		if w <= 0 {
			panic(fmt.Sprintf("bv: uf with domain width %d", w))
		}
		ds[i] = int32(w)
	}
	return s.alloc(node{kind: KindUF, width: int32(cod), dom: ds, sym: sym})
}

// Arity returns the domain size of a uf node.
func (s *Store) Arity(r Ref) int {
	nd := s.node(r)
	if nd.kind != KindUF {
		panic(fmt.Sprintf("bv: arity of %s node", nd.kind))
	}
	return len(nd.dom)
}

// Not returns the bitwise complement of a: the same node under a
// flipped polarity tag.
func (s *Store) Not(a Ref) Ref {
	return s.Copy(a).Not()
}

// And returns the bitwise conjunction of a and b.
func (s *Store) And(a, b Ref) Ref {
	w := s.binOp("and", a, b)
	if a == b {
		return s.Copy(a)
	}
	if a == b.Not() {
		return s.Zero(w)
	}
	ab, aok := s.ConstBits(a)
	bb, bok := s.ConstBits(b)
	if aok && bok {
		return s.Const(foldBin(KindAnd, ab, bb, w))
	}
	if aok && isZeroBits(ab) || bok && isZeroBits(bb) {
		return s.Zero(w)
	}
	if aok && isOnesBits(ab) {
		return s.Copy(b)
	}
	if bok && isOnesBits(bb) {
		return s.Copy(a)
	}
	if a > b {
		a, b = b, a
	}
	return s.alloc(node{kind: KindAnd, width: int32(w), kids: []Ref{a, b}})
}

// Eq returns the single-bit equality of a and b.
func (s *Store) Eq(a, b Ref) Ref {
	if s.IsArray(a) || s.IsArray(b) {
		panic("bv: eq over array operands is not supported")
	}
	s.binOp("eq", a, b)
	if a == b {
		return s.True()
	}
	if a == b.Not() {
		return s.False()
	}
	ab, aok := s.ConstBits(a)
	bb, bok := s.ConstBits(b)
	if aok && bok {
		if ab == bb {
			return s.True()
		}
		return s.False()
	}
	if a > b {
		a, b = b, a
	}
	return s.alloc(node{kind: KindEq, width: 1, kids: []Ref{a, b}})
}

// Add returns a + b, dropping overflow.
func (s *Store) Add(a, b Ref) Ref {
	w := s.binOp("add", a, b)
	ab, aok := s.ConstBits(a)
	bb, bok := s.ConstBits(b)
	if aok && bok {
		return s.Const(foldBin(KindAdd, ab, bb, w))
	}
	if aok && isZeroBits(ab) {
		return s.Copy(b)
	}
	if bok && isZeroBits(bb) {
		return s.Copy(a)
	}
	if a > b {
		a, b = b, a
	}
	return s.alloc(node{kind: KindAdd, width: int32(w), kids: []Ref{a, b}})
}

// Mul returns a * b, dropping overflow.
func (s *Store) Mul(a, b Ref) Ref {
	w := s.binOp("mul", a, b)
	ab, aok := s.ConstBits(a)
	bb, bok := s.ConstBits(b)
	if aok && bok {
		return s.Const(foldBin(KindMul, ab, bb, w))
	}
	if aok && isZeroBits(ab) || bok && isZeroBits(bb) {
		return s.Zero(w)
	}
	if aok && bitsToBig(ab).Cmp(bigOne) == 0 {
		return s.Copy(b)
	}
	if bok && bitsToBig(bb).Cmp(bigOne) == 0 {
		return s.Copy(a)
	}
	if a > b {
		a, b = b, a
	}
	return s.alloc(node{kind: KindMul, width: int32(w), kids: []Ref{a, b}})
}

// Ult returns the single-bit unsigned comparison a < b.
func (s *Store) Ult(a, b Ref) Ref {
	s.binOp("ult", a, b)
	if a == b {
		return s.False()
	}
	ab, aok := s.ConstBits(a)
	bb, bok := s.ConstBits(b)
	if aok && bok {
		if bitsToBig(ab).Cmp(bitsToBig(bb)) < 0 {
			return s.True()
		}
		return s.False()
	}
	if bok && isZeroBits(bb) {
		return s.False() // nothing is below zero
	}
	return s.alloc(node{kind: KindUlt, width: 1, kids: []Ref{a, b}})
}

// Sll returns a shifted left by b; shifts of at least the width
// yield zero.
func (s *Store) Sll(a, b Ref) Ref { return s.shiftOp(KindSll, "sll", a, b) }

// Srl returns a shifted right logically by b.
func (s *Store) Srl(a, b Ref) Ref { return s.shiftOp(KindSrl, "srl", a, b) }

func (s *Store) shiftOp(kind Kind, op string, a, b Ref) Ref {
	w := s.binOp(op, a, b)
	ab, aok := s.ConstBits(a)
	bb, bok := s.ConstBits(b)
	if aok && bok {
		return s.Const(foldBin(kind, ab, bb, w))
	}
	if bok && isZeroBits(bb) {
		return s.Copy(a)
	}
	return s.alloc(node{kind: kind, width: int32(w), kids: []Ref{a, b}})
}

// Udiv returns a / b unsigned; division by zero yields all ones.
func (s *Store) Udiv(a, b Ref) Ref {
	w := s.binOp("udiv", a, b)
	ab, aok := s.ConstBits(a)
	bb, bok := s.ConstBits(b)
	if aok && bok {
		return s.Const(foldBin(KindUdiv, ab, bb, w))
	}
	if bok && isZeroBits(bb) {
		return s.Ones(w)
	}
	return s.alloc(node{kind: KindUdiv, width: int32(w), kids: []Ref{a, b}})
}

// Urem returns a mod b unsigned; remainder by zero yields a.
func (s *Store) Urem(a, b Ref) Ref {
	w := s.binOp("urem", a, b)
	ab, aok := s.ConstBits(a)
	bb, bok := s.ConstBits(b)
	if aok && bok {
		return s.Const(foldBin(KindUrem, ab, bb, w))
	}
	if bok && isZeroBits(bb) {
		return s.Copy(a)
	}
	return s.alloc(node{kind: KindUrem, width: int32(w), kids: []Ref{a, b}})
}

// Concat returns a ∘ b with a in the high bits.
func (s *Store) Concat(a, b Ref) Ref {
	wa, wb := s.bvWidth("concat", a), s.bvWidth("concat", b)
	ab, aok := s.ConstBits(a)
	bb, bok := s.ConstBits(b)
	if aok && bok {
		return s.Const(ab + bb)
	}
	return s.alloc(node{kind: KindConcat, width: int32(wa + wb), kids: []Ref{a, b}})
}

// Slice returns bits upper..lower of a, inclusive, both counted from
// the least significant bit.
func (s *Store) Slice(a Ref, upper, lower int) Ref {
	w := s.bvWidth("slice", a)
	if lower < 0 || upper < lower || upper >= w {
		panic(fmt.Sprintf("bv: slice [%d:%d] of width %d", upper, lower, w))
	}
	if lower == 0 && upper == w-1 {
		return s.Copy(a)
	}
	if ab, ok := s.ConstBits(a); ok {
		return s.Const(ab[w-1-upper : w-lower])
	}
	return s.alloc(node{
		kind: KindSlice, width: int32(upper - lower + 1),
		upper: int32(upper), lower: int32(lower), kids: []Ref{a},
	})
}

// Read returns the element of array arr at index idx.
func (s *Store) Read(arr, idx Ref) Ref {
	if !s.IsArray(arr) {
		panic(fmt.Sprintf("bv: read of %s node", s.KindOf(arr)))
	}
	iw, w := s.IndexWidth(arr), s.Width(arr)
	if s.bvWidth("read", idx) != iw {
		panic(fmt.Sprintf("bv: read index width %d, array index width %d",
			s.Width(idx), iw))
	}
	return s.alloc(node{kind: KindRead, width: int32(w), kids: []Ref{arr, idx}})
}

// Write returns the array equal to arr except that index idx holds
// val.
func (s *Store) Write(arr, idx, val Ref) Ref {
	if !s.IsArray(arr) {
		panic(fmt.Sprintf("bv: write of %s node", s.KindOf(arr)))
	}
	iw, w := s.IndexWidth(arr), s.Width(arr)
	if s.bvWidth("write", idx) != iw {
		panic(fmt.Sprintf("bv: write index width %d, array index width %d",
			s.Width(idx), iw))
	}
	if s.bvWidth("write", val) != w {
		panic(fmt.Sprintf("bv: write value width %d, array element width %d",
			s.Width(val), w))
	}
	return s.alloc(node{
		kind: KindWrite, width: int32(w), iwidth: int32(iw),
		kids: []Ref{arr, idx, val},
	})
}

// Cond returns if c then t else e over bit-vector branches.
func (s *Store) Cond(c, t, e Ref) Ref {
	if s.bvWidth("cond", c) != 1 {
		panic(fmt.Sprintf("bv: cond condition width %d", s.Width(c)))
	}
	if s.IsArray(t) || s.IsArray(e) {
		panic("bv: cond over array branches is not supported")
	}
	w := s.binOp("cond", t, e)
	if cb, ok := s.ConstBits(c); ok {
		if cb == "1" {
			return s.Copy(t)
		}
		return s.Copy(e)
	}
	if t == e {
		return s.Copy(t)
	}
	return s.alloc(node{kind: KindCond, width: int32(w), kids: []Ref{c, t, e}})
}

// Fun returns a function of one parameter.  The parameter must be a
// fresh param node bound to no other function.
func (s *Store) Fun(param, body Ref) Ref {
	if s.KindOf(param) != KindParam {
		panic(fmt.Sprintf("bv: fun parameter is a %s node", s.KindOf(param)))
	}
	w := s.bvWidth("fun", body)
	return s.alloc(node{kind: KindFun, width: int32(w), kids: []Ref{param, body}})
}

// Apply applies f to args.  Applications of uninterpreted functions
// are interned terms subject to congruence; applications of Fun nodes
// beta-reduce immediately through the substitution engine.
func (s *Store) Apply(f Ref, args ...Ref) Ref {
	switch s.KindOf(f) {
	case KindUF:
		nd := s.node(f)
		if len(args) != len(nd.dom) {
			panic(fmt.Sprintf("bv: apply of %d arguments to uf of arity %d",
				len(args), len(nd.dom)))
		}
		for i, a := range args {
			if s.bvWidth("apply", a) != int(nd.dom[i]) {
				panic(fmt.Sprintf("bv: apply argument %d has width %d, want %d",
					i, s.Width(a), nd.dom[i]))
			}
		}
		kids := make([]Ref, 0, len(args)+1)
		kids = append(kids, f)
		kids = append(kids, args...)
		return s.alloc(node{kind: KindApply, width: nd.width, kids: kids})
	case KindFun:
		if len(args) != 1 {
			panic(fmt.Sprintf("bv: apply of %d arguments to unary fun", len(args)))
		}
		param, body := s.Kid(f, 0), s.Kid(f, 1)
		if s.Width(param) != s.bvWidth("apply", args[0]) {
			panic(fmt.Sprintf("bv: apply argument width %d, parameter width %d",
				s.Width(args[0]), s.Width(param)))
		}
		m := NewMap(s)
		m.Map(param, args[0])
		res := m.Subst(body)
		m.Delete()
		return res
	}
	panic(fmt.Sprintf("bv: apply of %s node", s.KindOf(f)))
}

func (s *Store) bvWidth(op string, r Ref) int {
	nd := s.node(r)
	switch nd.kind {
	case KindArray, KindWrite, KindUF, KindFun:
		panic(fmt.Sprintf("bv: %s operand is a %s node", op, nd.kind))
	}
	return int(nd.width)
}

func (s *Store) binOp(op string, a, b Ref) int {
	wa, wb := s.bvWidth(op, a), s.bvWidth(op, b)
	if wa != wb {
		panic(fmt.Sprintf("bv: %s operands have widths %d and %d", op, wa, wb))
	}
	return wa
}

var bigOne = bitsToBig("1")
