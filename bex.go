// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package bex is the reduction core of a bit-vector/array SMT solver.
// Terms live in a hash-consed, reference counted expression graph
// (package bv), are bit-blasted into a structurally hashed
// and-inverter graph (package aig), Tseitin-encoded to CNF and solved
// by an abstracted incremental SAT backend (package sat).  Arrays and
// uninterpreted functions are modeled lazily: a solve loop adds
// violated read/write and congruence axioms as lemmas until the model
// is consistent.
package bex

import (
	"fmt"
	"log/slog"

	"github.com/irifrance/bex/aig"
	"github.com/irifrance/bex/bv"
	"github.com/irifrance/bex/sat"
)

// Solve statuses.  ParseError is produced by external front ends and
// passed through unchanged.
const (
	Unknown    = sat.Unknown
	ParseError = 1
	Sat        = sat.Sat
	Unsat      = sat.Unsat
)

// Bex is one solving session.  All term, AIG and CNF state is owned
// by the session; nothing is shared across sessions and nothing is
// process-global.
type Bex struct {
	s    *bv.Store
	c    *aig.C
	smgr *sat.Mgr
	log  *slog.Logger

	asserts []bv.Ref // owned
	encoded int      // prefix of asserts already in CNF
	assumes []bv.Ref // owned, consumed by the next Sat

	reads   []bv.Ref // owned registered read terms
	applies []bv.Ref // owned registered applications
	rdone   int      // prefix of reads whose cones are encoded
	adone   int
	lemmas  []bv.Ref // owned lemma terms
	pending []bv.Ref // owned lemmas awaiting encoding

	assumeLit map[bv.Ref]int
	keep      []bv.Ref // spent assumptions, kept so cached AIGs stay live
	last      int
}

// New creates a session over the default ("mini") SAT backend.
func New() *Bex {
	b, err := NewWith("mini", 0)
	if err != nil {
		panic(err)
	}
	return b
}

// NewWith creates a session over the named SAT backend.
func NewWith(backend string, verbosity int) (*Bex, error) {
	smgr, err := sat.New(backend, verbosity)
	if err != nil {
		return nil, err
	}
	smgr.Init()
	s := bv.NewStore()
	c := aig.NewC()
	s.SetAIG(c)
	return &Bex{
		s:         s,
		c:         c,
		smgr:      smgr,
		log:       slog.Default(),
		assumeLit: make(map[bv.Ref]int),
		last:      Unknown,
	}, nil
}

// SetLogger replaces the session logger.
func (b *Bex) SetLogger(l *slog.Logger) {
	if l == nil {
		panic("bex: nil logger")
	}
	b.log = l
	b.smgr.SetLogger(l)
}

// Store exposes the session's term store.
func (b *Bex) Store() *bv.Store { return b.s }

// SatMgr exposes the session's SAT manager.
func (b *Bex) SatMgr() *sat.Mgr { return b.smgr }

// Copy takes another owned reference to n.
func (b *Bex) Copy(n bv.Ref) bv.Ref { return b.s.Copy(n) }

// Release gives up an owned reference to n.
func (b *Bex) Release(n bv.Ref) { b.s.Release(n) }

// Width returns the bit width of n (element width for arrays).
func (b *Bex) Width(n bv.Ref) int { return b.s.Width(n) }

// IndexWidth returns the index width of an array term.
func (b *Bex) IndexWidth(n bv.Ref) int { return b.s.IndexWidth(n) }

// Symbol returns n's symbol, or "".
func (b *Bex) Symbol(n bv.Ref) string { return b.s.Symbol(n) }

// SetSymbol names n.
func (b *Bex) SetSymbol(n bv.Ref, sym string) { b.s.SetSymbol(n, sym) }

// IsConst tells whether n is a constant.
func (b *Bex) IsConst(n bv.Ref) bool { return b.s.IsConst(n) }

// IsVar tells whether n is a bit-vector variable.
func (b *Bex) IsVar(n bv.Ref) bool { return b.s.IsVar(n) }

// IsArray tells whether n is array sorted.
func (b *Bex) IsArray(n bv.Ref) bool { return b.s.IsArray(n) }

// Const interns a constant from bits, most significant first.
func (b *Bex) Const(bits string) bv.Ref { return b.s.Const(bits) }

// Zero interns the zero constant of width w.
func (b *Bex) Zero(w int) bv.Ref { return b.s.Zero(w) }

// One interns the constant 1 of width w.
func (b *Bex) One(w int) bv.Ref { return b.s.One(w) }

// Ones interns the all-ones constant of width w.
func (b *Bex) Ones(w int) bv.Ref { return b.s.Ones(w) }

// True interns the single-bit true constant.
func (b *Bex) True() bv.Ref { return b.s.True() }

// False interns the single-bit false constant.
func (b *Bex) False() bv.Ref { return b.s.False() }

// Uint interns u at width w.
func (b *Bex) Uint(u uint64, w int) bv.Ref { return b.s.Uint(u, w) }

// Int interns i at width w, two's complement.
func (b *Bex) Int(i int64, w int) bv.Ref { return b.s.Int(i, w) }

// Var creates a fresh bit-vector variable.
func (b *Bex) Var(w int, sym string) bv.Ref { return b.s.Var(w, sym) }

// Param creates a fresh function parameter.
func (b *Bex) Param(w int, sym string) bv.Ref { return b.s.Param(w, sym) }

// Array creates a fresh array variable.
func (b *Bex) Array(ew, iw int, sym string) bv.Ref { return b.s.Array(ew, iw, sym) }

// UF creates a fresh uninterpreted function.
func (b *Bex) UF(dom []int, cod int, sym string) bv.Ref { return b.s.UF(dom, cod, sym) }

// Not returns the bitwise complement of a.
func (b *Bex) Not(a bv.Ref) bv.Ref { return b.s.Not(a) }

// And returns the bitwise conjunction of a and b.
func (b *Bex) And(a, x bv.Ref) bv.Ref { return b.s.And(a, x) }

// Eq returns the single-bit equality of a and b.
func (b *Bex) Eq(a, x bv.Ref) bv.Ref { return b.s.Eq(a, x) }

// Add returns a + b.
func (b *Bex) Add(a, x bv.Ref) bv.Ref { return b.s.Add(a, x) }

// Mul returns a * b.
func (b *Bex) Mul(a, x bv.Ref) bv.Ref { return b.s.Mul(a, x) }

// Ult returns a < b unsigned.
func (b *Bex) Ult(a, x bv.Ref) bv.Ref { return b.s.Ult(a, x) }

// Sll returns a << b.
func (b *Bex) Sll(a, x bv.Ref) bv.Ref { return b.s.Sll(a, x) }

// Srl returns a >> b, logical.
func (b *Bex) Srl(a, x bv.Ref) bv.Ref { return b.s.Srl(a, x) }

// Udiv returns a / b unsigned; division by zero yields all ones.
func (b *Bex) Udiv(a, x bv.Ref) bv.Ref { return b.s.Udiv(a, x) }

// Urem returns a mod b unsigned; remainder by zero yields a.
func (b *Bex) Urem(a, x bv.Ref) bv.Ref { return b.s.Urem(a, x) }

// Concat returns a ∘ b with a in the high bits.
func (b *Bex) Concat(a, x bv.Ref) bv.Ref { return b.s.Concat(a, x) }

// Slice returns bits upper..lower of a.
func (b *Bex) Slice(a bv.Ref, upper, lower int) bv.Ref { return b.s.Slice(a, upper, lower) }

// Read returns the element of arr at idx.
func (b *Bex) Read(arr, idx bv.Ref) bv.Ref { return b.s.Read(arr, idx) }

// Write returns arr updated at idx with val.
func (b *Bex) Write(arr, idx, val bv.Ref) bv.Ref { return b.s.Write(arr, idx, val) }

// Cond returns if c then t else e.
func (b *Bex) Cond(c, t, e bv.Ref) bv.Ref { return b.s.Cond(c, t, e) }

// Fun returns a function of one parameter.
func (b *Bex) Fun(param, body bv.Ref) bv.Ref { return b.s.Fun(param, body) }

// Apply applies f to args.
func (b *Bex) Apply(f bv.Ref, args ...bv.Ref) bv.Ref { return b.s.Apply(f, args...) }

// Assert adds the single-bit constraint n to the formula.
func (b *Bex) Assert(n bv.Ref) {
	if b.s.Width(n) != 1 {
		panic(fmt.Sprintf("bex: assert of width %d term", b.s.Width(n)))
	}
	b.asserts = append(b.asserts, b.s.Copy(n))
}

// Assume adds the single-bit constraint n for the next Sat call only.
func (b *Bex) Assume(n bv.Ref) {
	if b.s.Width(n) != 1 {
		panic(fmt.Sprintf("bex: assume of width %d term", b.s.Width(n)))
	}
	b.assumes = append(b.assumes, b.s.Copy(n))
}

// Failed tells whether assumption n was used to derive the last
// Unsat result.  Valid only directly after an Unsat Sat call.
func (b *Bex) Failed(n bv.Ref) bool {
	if b.last != Unsat {
		panic("bex: failed query without unsat result")
	}
	lit, ok := b.assumeLit[n]
	if !ok {
		panic(fmt.Sprintf("bex: failed query of unassumed term %s", n))
	}
	return b.smgr.Failed(lit)
}

// Delete releases everything the session owns.  The session must not
// be used afterwards.
func (b *Bex) Delete() {
	for _, n := range b.asserts {
		b.s.Release(n)
	}
	for _, n := range b.assumes {
		b.s.Release(n)
	}
	for _, n := range b.reads {
		b.s.Release(n)
	}
	for _, n := range b.applies {
		b.s.Release(n)
	}
	for _, n := range b.lemmas {
		b.s.Release(n)
	}
	for _, n := range b.pending {
		b.s.Release(n)
	}
	for _, n := range b.keep {
		b.s.Release(n)
	}
	b.asserts, b.assumes, b.reads, b.applies = nil, nil, nil, nil
	b.lemmas, b.pending, b.keep = nil, nil, nil
	b.smgr.Reset()
}
