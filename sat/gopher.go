// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package sat

import (
	"fmt"
	"io"

	"github.com/crillab/gophersat/solver"
)

// gopher adapts the gophersat solver to the Backend contract.  The
// engine has no incremental interface, so the adapter buffers clauses
// and re-solves from scratch on every Sat call; assumptions become
// per-call unit clauses.  Effort limits are not supported and are
// ignored: this backend never answers Unknown.
type gopher struct {
	clauses [][]int
	buf     []int
	assume  []int
	unsat0  bool
	nVars   int

	model   []bool
	hasM    bool
	prev    []bool
	hasPrev bool
	changed bool
	failed  map[int]bool
	solves  int
}

func newGopher() *gopher {
	return &gopher{}
}

func (g *gopher) Init() {}

func (g *gopher) Add(m int) {
	if m == 0 {
		if len(g.buf) == 0 {
			g.unsat0 = true
			return
		}
		cls := make([]int, len(g.buf))
		copy(cls, g.buf)
		g.clauses = append(g.clauses, cls)
		g.buf = g.buf[:0]
		return
	}
	v := m
	if v < 0 {
		v = -v
	}
	if v > g.nVars {
		g.nVars = v
	}
	g.buf = append(g.buf, m)
}

func (g *gopher) Assume(m int) {
	if m == 0 {
		panic("sat: assume of null literal")
	}
	g.assume = append(g.assume, m)
}

func (g *gopher) Sat(limit int64) int {
	_ = limit // gophersat exposes no effort bound
	assumptions := g.assume
	g.assume = nil
	g.failed = nil
	g.solves++
	if g.unsat0 {
		g.markFailed(assumptions)
		return Unsat
	}
	pb := make([][]int, 0, len(g.clauses)+len(assumptions))
	pb = append(pb, g.clauses...)
	for _, m := range assumptions {
		pb = append(pb, []int{m})
	}
	if len(pb) == 0 {
		g.saveModel(nil)
		return Sat
	}
	prob := solver.ParseSlice(pb)
	s := solver.New(prob)
	switch s.Solve() {
	case solver.Sat:
		g.saveModel(s.Model())
		return Sat
	case solver.Unsat:
		g.markFailed(assumptions)
		return Unsat
	}
	return Unknown
}

func (g *gopher) saveModel(m []bool) {
	g.prev, g.hasPrev = g.model, g.hasM
	g.model, g.hasM = m, true
	g.changed = !g.hasPrev
	if g.hasPrev {
		n := len(g.model)
		if len(g.prev) < n {
			n = len(g.prev)
		}
		for i := 0; i < n; i++ {
			if g.model[i] != g.prev[i] {
				g.changed = true
				break
			}
		}
		if len(g.model) != len(g.prev) {
			g.changed = true
		}
	}
}

func (g *gopher) markFailed(assumptions []int) {
	g.failed = make(map[int]bool, len(assumptions))
	for _, m := range assumptions {
		g.failed[m] = true
	}
}

func (g *gopher) Deref(m int) int {
	v := m
	if v < 0 {
		v = -v
	}
	if !g.hasM || v > len(g.model) {
		return DontCare
	}
	val := False
	if g.model[v-1] {
		val = True
	}
	if m < 0 {
		val = -val
	}
	return val
}

func (g *gopher) Failed(m int) bool {
	return g.failed != nil && g.failed[m]
}

func (g *gopher) Changed() bool {
	return g.changed
}

func (g *gopher) Stats(w io.Writer) {
	fmt.Fprintf(w, "[bex.sat] gophersat vars %d clauses %d solves %d\n",
		g.nVars, len(g.clauses), g.solves)
}

func (g *gopher) Reset() {
	*g = gopher{}
}
