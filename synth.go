// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bex

import (
	"fmt"

	"github.com/irifrance/bex/aig"
	"github.com/irifrance/bex/bv"
)

// synth bit-blasts the cone under root, caching one vector per node.
// Reads and applications become fresh AIG inputs and are registered
// for lazy refinement.  The traversal is an explicit work list; the
// returned vector is borrowed from root's node.
func (b *Bex) synth(root bv.Ref) aig.Vec {
	work := []bv.Ref{root.Reg()}
	for len(work) > 0 {
		n := work[len(work)-1]
		if b.s.AV(n) != nil {
			work = work[:len(work)-1]
			continue
		}
		switch kind := b.s.KindOf(n); kind {
		case bv.KindConst:
			bits, _ := b.s.ConstBits(n)
			b.s.SetAV(n, b.c.ConstVec(bits))
		case bv.KindVar:
			b.s.SetAV(n, b.c.NewVec(b.s.Width(n)))
		case bv.KindRead:
			b.s.SetAV(n, b.c.NewVec(b.s.Width(n)))
			b.reads = append(b.reads, b.s.Copy(n))
		case bv.KindApply:
			b.s.SetAV(n, b.c.NewVec(b.s.Width(n)))
			b.applies = append(b.applies, b.s.Copy(n))
		case bv.KindParam:
			panic("bex: bit blast of unbound parameter")
		case bv.KindArray, bv.KindWrite, bv.KindUF, bv.KindFun:
			panic(fmt.Sprintf("bex: bit blast of %s node", kind))
		default:
			ready := true
			for i := 0; i < b.s.NumKids(n); i++ {
				k := b.s.Kid(n, i).Reg()
				if b.s.AV(k) == nil {
					work = append(work, k)
					ready = false
				}
			}
			if !ready {
				continue
			}
			b.s.SetAV(n, b.blast(n))
		}
		work = work[:len(work)-1]
	}
	return b.s.AV(root.Reg())
}

// blast builds the vector of the regular interior node n from its
// already blasted children.
func (b *Bex) blast(n bv.Ref) aig.Vec {
	kind := b.s.KindOf(n)
	switch kind {
	case bv.KindSlice:
		a, ao := b.kidVec(b.s.Kid(n, 0))
		upper, lower := b.s.SliceBounds(n)
		r := b.c.SliceVec(a, upper, lower)
		if ao {
			b.c.ReleaseVec(a)
		}
		return r
	case bv.KindCond:
		c := b.s.Kid(n, 0)
		sel := b.s.AV(c.Reg())[0]
		if c.IsInv() {
			sel = sel.Not()
		}
		t, to := b.kidVec(b.s.Kid(n, 1))
		e, eo := b.kidVec(b.s.Kid(n, 2))
		r := b.c.CondVec(sel, t, e)
		if to {
			b.c.ReleaseVec(t)
		}
		if eo {
			b.c.ReleaseVec(e)
		}
		return r
	}
	a, ao := b.kidVec(b.s.Kid(n, 0))
	x, xo := b.kidVec(b.s.Kid(n, 1))
	var r aig.Vec
	switch kind {
	case bv.KindAnd:
		r = b.c.AndVec(a, x)
	case bv.KindEq:
		r = aig.Vec{b.c.EqVec(a, x)}
	case bv.KindUlt:
		r = aig.Vec{b.c.UltVec(a, x)}
	case bv.KindAdd:
		r = b.c.AddVec(a, x)
	case bv.KindMul:
		r = b.c.MulVec(a, x)
	case bv.KindSll:
		r = b.c.SllVec(a, x)
	case bv.KindSrl:
		r = b.c.SrlVec(a, x)
	case bv.KindUdiv:
		r = b.c.UdivVec(a, x)
	case bv.KindUrem:
		r = b.c.UremVec(a, x)
	case bv.KindConcat:
		r = b.c.ConcatVec(a, x)
	default:
		panic(fmt.Sprintf("bex: bit blast of %s node", kind))
	}
	if ao {
		b.c.ReleaseVec(a)
	}
	if xo {
		b.c.ReleaseVec(x)
	}
	return r
}

// kidVec returns the vector of the possibly inverted child reference
// k.  The bool reports whether the caller owns the vector.
func (b *Bex) kidVec(k bv.Ref) (aig.Vec, bool) {
	av := b.s.AV(k.Reg())
	if !k.IsInv() {
		return av, false
	}
	return b.c.NotVec(av), true
}

// encodeBool blasts and Tseitin-encodes the single-bit term n,
// returning its CNF literal.
func (b *Bex) encodeBool(n bv.Ref) int {
	v := b.synth(n)
	m := v[0]
	if n.IsInv() {
		m = m.Not()
	}
	return b.c.Encode(b.smgr, m)
}

// encodeVec blasts n's cone and encodes every bit of its vector so
// the SAT model assigns it a value.
func (b *Bex) encodeVec(n bv.Ref) {
	v := b.synth(n)
	for _, m := range v {
		b.c.Encode(b.smgr, m)
	}
}

// encodePending encodes the support of every registered read and
// application: index and argument cones, and the index and value
// cones of each write along a read's array chain.  Encoding those
// cones can register further reads, so the cursors loop to a fixed
// point.
func (b *Bex) encodePending() {
	for b.rdone < len(b.reads) || b.adone < len(b.applies) {
		for ; b.rdone < len(b.reads); b.rdone++ {
			r := b.reads[b.rdone]
			b.encodeVec(r)
			b.encodeVec(b.s.Kid(r, 1))
			cur := b.s.Kid(r, 0)
			for b.s.KindOf(cur) == bv.KindWrite {
				b.encodeVec(b.s.Kid(cur, 1))
				b.encodeVec(b.s.Kid(cur, 2))
				cur = b.s.Kid(cur, 0)
			}
		}
		for ; b.adone < len(b.applies); b.adone++ {
			ap := b.applies[b.adone]
			b.encodeVec(ap)
			for i := 1; i < b.s.NumKids(ap); i++ {
				b.encodeVec(b.s.Kid(ap, i))
			}
		}
	}
}
