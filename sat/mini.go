// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package sat

import (
	"fmt"
	"io"
)

// mini is the in-package DPLL backend: occurrence-list unit
// propagation, chronological backtracking, no clause learning.  It is
// the default backend; it favors predictability over raw speed.
type mini struct {
	nVars   int
	clauses [][]int
	pos     [][]int // var -> clause indices where it occurs positively
	neg     [][]int
	buf     []int
	assume  []int
	unsat0  bool // an empty clause was added

	model   []int8
	prev    []int8
	hasPrev bool
	changed bool
	failed  map[int]bool

	decisions int64
	conflicts int64
}

func newMini() *mini {
	return &mini{}
}

func (b *mini) Init() {}

func (b *mini) Add(m int) {
	if m == 0 {
		if len(b.buf) == 0 {
			b.unsat0 = true
			return
		}
		ci := len(b.clauses)
		cls := make([]int, len(b.buf))
		copy(cls, b.buf)
		b.clauses = append(b.clauses, cls)
		for _, l := range cls {
			v := l
			if v < 0 {
				v = -v
			}
			b.growTo(v)
			if l > 0 {
				b.pos[v] = append(b.pos[v], ci)
			} else {
				b.neg[v] = append(b.neg[v], ci)
			}
		}
		b.buf = b.buf[:0]
		return
	}
	v := m
	if v < 0 {
		v = -v
	}
	b.growTo(v)
	b.buf = append(b.buf, m)
}

func (b *mini) growTo(v int) {
	for b.nVars < v {
		b.nVars++
		b.pos = append(b.pos, nil)
		b.neg = append(b.neg, nil)
	}
	for len(b.pos) <= b.nVars {
		b.pos = append(b.pos, nil)
		b.neg = append(b.neg, nil)
	}
}

func (b *mini) Assume(m int) {
	if m == 0 {
		panic("sat: assume of null literal")
	}
	v := m
	if v < 0 {
		v = -v
	}
	b.growTo(v)
	b.assume = append(b.assume, m)
}

type miniDecision struct {
	v        int
	sign     int8
	flipped  bool
	trailLen int
}

func (b *mini) Sat(limit int64) int {
	assumptions := b.assume
	b.assume = nil
	b.failed = nil
	if b.unsat0 {
		b.markFailed(assumptions)
		return Unsat
	}

	assign := make([]int8, b.nVars+1)
	trail := make([]int, 0, b.nVars)
	var decs []miniDecision
	conflicts := int64(0)

	// level 0: unit clauses, then assumptions
	for _, cls := range b.clauses {
		if len(cls) == 1 {
			if !b.enqueue(assign, &trail, cls[0]) {
				return Unsat
			}
		}
	}
	if !b.propagate(assign, &trail, 0) {
		return Unsat
	}
	for _, m := range assumptions {
		head := len(trail)
		if !b.enqueue(assign, &trail, m) || !b.propagate(assign, &trail, head) {
			b.markFailed(assumptions)
			return Unsat
		}
	}

	for {
		v := 0
		for i := 1; i <= b.nVars; i++ {
			if assign[i] == 0 && (len(b.pos[i]) > 0 || len(b.neg[i]) > 0) {
				v = i
				break
			}
		}
		if v == 0 {
			b.saveModel(assign)
			return Sat
		}
		decs = append(decs, miniDecision{v: v, sign: 1, trailLen: len(trail)})
		head := len(trail)
		ok := b.enqueue(assign, &trail, v) && b.propagate(assign, &trail, head)
		for !ok {
			conflicts++
			if limit >= 0 && conflicts > limit {
				return Unknown
			}
			// chronological backtracking: flip the deepest unflipped decision
			i := len(decs) - 1
			for i >= 0 && decs[i].flipped {
				i--
			}
			if i < 0 {
				b.markFailed(assumptions)
				return Unsat
			}
			d := &decs[i]
			decs = decs[:i+1]
			for len(trail) > d.trailLen {
				m := trail[len(trail)-1]
				trail = trail[:len(trail)-1]
				if m < 0 {
					assign[-m] = 0
				} else {
					assign[m] = 0
				}
			}
			d.flipped = true
			d.sign = -d.sign
			head = len(trail)
			ok = b.enqueue(assign, &trail, int(d.sign)*d.v) && b.propagate(assign, &trail, head)
		}
	}
}

// enqueue assigns literal m true; false on conflict.
func (b *mini) enqueue(assign []int8, trail *[]int, m int) bool {
	v, want := m, int8(1)
	if m < 0 {
		v, want = -m, -1
	}
	switch assign[v] {
	case want:
		return true
	case -want:
		return false
	}
	assign[v] = want
	*trail = append(*trail, m)
	return true
}

// propagate runs unit propagation from trail position head; false on
// conflict.
func (b *mini) propagate(assign []int8, trail *[]int, head int) bool {
	for head < len(*trail) {
		m := (*trail)[head]
		head++
		// clauses where m's negation occurs may have become unit
		var occ []int
		if m > 0 {
			occ = b.neg[m]
		} else {
			occ = b.pos[-m]
		}
		for _, ci := range occ {
			cls := b.clauses[ci]
			unit := 0
			sat := false
			unassigned := 0
			for _, l := range cls {
				v, want := l, int8(1)
				if l < 0 {
					v, want = -l, -1
				}
				switch assign[v] {
				case want:
					sat = true
				case 0:
					unassigned++
					unit = l
				}
				if sat {
					break
				}
			}
			if sat {
				continue
			}
			if unassigned == 0 {
				return false
			}
			if unassigned == 1 {
				if !b.enqueue(assign, trail, unit) {
					return false
				}
			}
		}
	}
	return true
}

func (b *mini) saveModel(assign []int8) {
	b.prev = b.model
	b.hasPrev = b.model != nil
	b.model = make([]int8, len(assign))
	copy(b.model, assign)
	b.changed = false
	if !b.hasPrev {
		b.changed = true
		return
	}
	n := len(b.model)
	if len(b.prev) < n {
		n = len(b.prev)
	}
	for i := 1; i < n; i++ {
		if b.model[i] != b.prev[i] {
			b.changed = true
			return
		}
	}
	if len(b.model) != len(b.prev) {
		b.changed = true
	}
}

// markFailed over-approximates the failed assumption set with all
// assumptions of the call, like a backend without core extraction.
func (b *mini) markFailed(assumptions []int) {
	b.failed = make(map[int]bool, len(assumptions))
	for _, m := range assumptions {
		b.failed[m] = true
	}
}

func (b *mini) Deref(m int) int {
	v := m
	if v < 0 {
		v = -v
	}
	if b.model == nil || v >= len(b.model) || b.model[v] == 0 {
		return DontCare
	}
	val := int(b.model[v])
	if m < 0 {
		val = -val
	}
	return val
}

func (b *mini) Failed(m int) bool {
	return b.failed != nil && b.failed[m]
}

func (b *mini) Changed() bool {
	return b.changed
}

func (b *mini) Stats(w io.Writer) {
	fmt.Fprintf(w, "[bex.sat] mini vars %d clauses %d\n", b.nVars, len(b.clauses))
}

func (b *mini) Reset() {
	*b = mini{}
}
