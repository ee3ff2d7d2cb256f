// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bex

import (
	"fmt"

	"github.com/irifrance/bex/bv"
	"github.com/irifrance/bex/sat"
)

// Solve loop states.
const (
	stEncoding = iota
	stSolving
	stChecking
	stRefining
	stDone
)

// Sat solves the asserted formula under the pending assumptions with
// no limits.
func (b *Bex) Sat() int { return b.LimitedSat(-1, -1) }

// LimitedSat solves with bounds: lodLimit caps the number of
// refinement rounds, satLimit is forwarded to the backend per call.
// Either limit below zero means unbounded; a Sat result from an
// exhausted lodLimit is reported as Unknown.
//
// The loop alternates encoding, backend solving, consistency checking
// of the candidate model against the lazily abstracted reads and
// applications, and refinement by lemma.  Every lemma blocks the
// model that produced it, so with unbounded limits the loop
// terminates.
func (b *Bex) LimitedSat(lodLimit, satLimit int64) int {
	assumes := b.assumes
	b.assumes = nil
	var assumeLits []int
	b.assumeLit = make(map[bv.Ref]int)

	res := Unknown
	rounds := int64(0)
	state := stEncoding
	for state != stDone {
		switch state {
		case stEncoding:
			for ; b.encoded < len(b.asserts); b.encoded++ {
				lit := b.encodeBool(b.asserts[b.encoded])
				b.smgr.Add(lit)
				b.smgr.Add(0)
			}
			for _, a := range assumes {
				lit := b.encodeBool(a)
				assumeLits = append(assumeLits, lit)
				b.assumeLit[a] = lit
			}
			b.encodePending()
			state = stSolving
		case stSolving:
			for _, lit := range assumeLits {
				b.smgr.Assume(lit)
			}
			res = b.smgr.Sat(satLimit)
			if res != Sat {
				state = stDone
				break
			}
			state = stChecking
		case stChecking:
			lemmas := b.checkConsistency()
			if len(lemmas) == 0 {
				state = stDone
				break
			}
			b.log.Debug("refining", "round", rounds, "lemmas", len(lemmas))
			b.pending = lemmas
			state = stRefining
		case stRefining:
			if lodLimit >= 0 && rounds >= lodLimit {
				for _, lem := range b.pending {
					b.s.Release(lem)
				}
				b.pending = nil
				res = Unknown
				state = stDone
				break
			}
			rounds++
			for _, lem := range b.pending {
				lit := b.encodeBool(lem)
				b.smgr.Add(lit)
				b.smgr.Add(0)
				b.lemmas = append(b.lemmas, lem)
			}
			b.pending = nil
			b.encodePending()
			state = stSolving
		}
	}
	b.keep = append(b.keep, assumes...)
	b.last = res
	return res
}

// pend is one read pending consistency: the read, its index and the
// write indexes it bypassed, all borrowed.
type pendRead struct {
	r    bv.Ref
	idx  bv.Ref
	path []bv.Ref
}

// checkConsistency checks the candidate model against every
// registered read and application and returns owned lemma terms for
// the violations, or none if the model is consistent.
func (b *Bex) checkConsistency() []bv.Ref {
	var lemmas []bv.Ref
	base := make(map[string]pendRead)
	for _, r := range b.reads {
		idx := b.s.Kid(r, 1)
		vi := b.value(idx)
		vr := b.value(r)
		cur := b.s.Kid(r, 0)
		var path []bv.Ref
		matched := false
		for b.s.KindOf(cur) == bv.KindWrite {
			j, v := b.s.Kid(cur, 1), b.s.Kid(cur, 2)
			if b.value(j) == vi {
				matched = true
				if b.value(v) != vr {
					lemmas = append(lemmas, b.rowLemma(r, idx, path, j, v))
				}
				break
			}
			path = append(path, j)
			cur = b.s.Kid(cur, 0)
		}
		if matched {
			continue
		}
		// The read bypassed every write: it sees the base array.
		// Reads of the same base at the same model index must agree.
		key := fmt.Sprintf("%d:%s", uint32(cur.Reg()), vi)
		p, ok := base[key]
		if !ok {
			base[key] = pendRead{r: r, idx: idx, path: path}
			continue
		}
		if b.value(p.r) != vr {
			lemmas = append(lemmas, b.raaLemma(p, pendRead{r: r, idx: idx, path: path}))
		}
	}
	groups := make(map[bv.Ref][]bv.Ref)
	for _, ap := range b.applies {
		f := b.s.Kid(ap, 0).Reg()
		groups[f] = append(groups[f], ap)
	}
	for _, aps := range groups {
		for i := 0; i < len(aps); i++ {
			for j := i + 1; j < len(aps); j++ {
				if lem := b.congruence(aps[i], aps[j]); lem != bv.RefNull {
					lemmas = append(lemmas, lem)
				}
			}
		}
	}
	return lemmas
}

// rowLemma returns the read-over-write axiom instance violated by the
// model: if the index misses every bypassed write and hits j, the
// read equals the written value.
func (b *Bex) rowLemma(r, idx bv.Ref, path []bv.Ref, j, v bv.Ref) bv.Ref {
	ante := make([]bv.Ref, 0, len(path)+1)
	for _, pj := range path {
		ante = append(ante, b.Ne(idx, pj))
	}
	ante = append(ante, b.s.Eq(idx, j))
	return b.lemma(ante, b.s.Eq(r, v))
}

// raaLemma returns the read-over-array axiom instance violated by the
// model: two reads that bypass their write chains down to the same
// base array and agree on index must agree on value.
func (b *Bex) raaLemma(p, q pendRead) bv.Ref {
	ante := make([]bv.Ref, 0, len(p.path)+len(q.path)+1)
	for _, pj := range p.path {
		ante = append(ante, b.Ne(p.idx, pj))
	}
	for _, qj := range q.path {
		ante = append(ante, b.Ne(q.idx, qj))
	}
	ante = append(ante, b.s.Eq(p.idx, q.idx))
	return b.lemma(ante, b.s.Eq(p.r, q.r))
}

// congruence returns the congruence axiom instance violated by the
// two applications of one function, or RefNull if the model satisfies
// it.
func (b *Bex) congruence(a1, a2 bv.Ref) bv.Ref {
	n := b.s.NumKids(a1)
	for i := 1; i < n; i++ {
		if b.value(b.s.Kid(a1, i)) != b.value(b.s.Kid(a2, i)) {
			return bv.RefNull
		}
	}
	if b.value(a1) == b.value(a2) {
		return bv.RefNull
	}
	ante := make([]bv.Ref, 0, n-1)
	for i := 1; i < n; i++ {
		ante = append(ante, b.s.Eq(b.s.Kid(a1, i), b.s.Kid(a2, i)))
	}
	return b.lemma(ante, b.s.Eq(a1, a2))
}

// lemma builds the implication conj(ante) -> conseq as a single-bit
// term, consuming the owned antecedents and consequent.
func (b *Bex) lemma(ante []bv.Ref, conseq bv.Ref) bv.Ref {
	acc := b.s.True()
	for _, a := range ante {
		nacc := b.s.And(acc, a)
		b.s.Release(acc)
		b.s.Release(a)
		acc = nacc
	}
	nc := conseq.Not()
	g := b.s.And(acc, nc)
	b.s.Release(acc)
	b.s.Release(nc)
	return g.Not()
}

// value reads the candidate model value of n, most significant bit
// first.  Bits the backend leaves unassigned read as zero, making the
// value total for lemma selection.
func (b *Bex) value(n bv.Ref) string {
	av := b.s.AV(n.Reg())
	if av == nil {
		panic(fmt.Sprintf("bex: model value of unblasted term %s", n))
	}
	w := len(av)
	buf := make([]byte, w)
	for i, m := range av {
		if n.IsInv() {
			m = m.Not()
		}
		buf[w-1-i] = '0'
		if cl := b.c.CnfLit(m); cl != 0 && b.smgr.Deref(cl) == sat.True {
			buf[w-1-i] = '1'
		}
	}
	return string(buf)
}

// ArrayAssignment returns the index and value strings the model
// assigns to the reads performed on the array term arr, after a Sat
// result.
func (b *Bex) ArrayAssignment(arr bv.Ref) (indices, values []string) {
	if b.last != Sat {
		panic("bex: array assignment without sat result")
	}
	if !b.s.IsArray(arr) {
		panic(fmt.Sprintf("bex: array assignment of %s node", b.s.KindOf(arr)))
	}
	for _, r := range b.reads {
		if b.s.Kid(r, 0).Reg() != arr.Reg() {
			continue
		}
		indices = append(indices, b.Value(b.s.Kid(r, 1)))
		values = append(values, b.Value(r))
	}
	return indices, values
}

// Value returns the model value of n after a Sat result, most
// significant bit first.  Unconstrained bits read as 'x'.
func (b *Bex) Value(n bv.Ref) string {
	if b.last != Sat {
		panic("bex: model value without sat result")
	}
	if b.s.IsArray(n) {
		panic("bex: model value of array term")
	}
	w := b.s.Width(n)
	buf := make([]byte, w)
	for i := range buf {
		buf[i] = 'x'
	}
	av := b.s.AV(n.Reg())
	if av == nil {
		return string(buf)
	}
	for i, m := range av {
		if n.IsInv() {
			m = m.Not()
		}
		cl := b.c.CnfLit(m)
		if cl == 0 {
			continue
		}
		switch b.smgr.Deref(cl) {
		case sat.True:
			buf[w-1-i] = '1'
		case sat.False:
			buf[w-1-i] = '0'
		}
	}
	return string(buf)
}
