// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package sat

import "testing"

func addAll(b Backend, clauses ...[]int) {
	for _, cls := range clauses {
		for _, m := range cls {
			b.Add(m)
		}
		b.Add(0)
	}
}

func TestMiniSat(t *testing.T) {
	b := newMini()
	b.Init()
	addAll(b, []int{1, 2}, []int{-1, 2})
	if res := b.Sat(-1); res != Sat {
		t.Fatalf("status %d", res)
	}
	if b.Deref(2) != True {
		t.Errorf("deref 2 = %d", b.Deref(2))
	}
	if b.Deref(-2) != False {
		t.Errorf("deref -2 = %d", b.Deref(-2))
	}
}

func TestMiniUnsat(t *testing.T) {
	b := newMini()
	b.Init()
	addAll(b, []int{1}, []int{-1})
	if res := b.Sat(-1); res != Unsat {
		t.Errorf("status %d", res)
	}
}

func TestMiniAssumptionsScoped(t *testing.T) {
	b := newMini()
	b.Init()
	addAll(b, []int{1, 2})
	b.Assume(-1)
	b.Assume(-2)
	if res := b.Sat(-1); res != Unsat {
		t.Fatalf("status %d", res)
	}
	if !b.Failed(-1) || !b.Failed(-2) {
		t.Errorf("failed set incomplete")
	}
	// assumptions do not survive the call
	if res := b.Sat(-1); res != Sat {
		t.Errorf("status %d after assumptions expired", res)
	}
}

func TestMiniLimit(t *testing.T) {
	b := newMini()
	b.Init()
	// unsat, but only after decisions
	addAll(b, []int{1, 2}, []int{1, -2}, []int{-1, 2}, []int{-1, -2})
	if res := b.Sat(0); res != Unknown {
		t.Errorf("status %d under zero conflict budget", res)
	}
	if res := b.Sat(-1); res != Unsat {
		t.Errorf("status %d unbounded", res)
	}
}

func TestMiniChanged(t *testing.T) {
	b := newMini()
	b.Init()
	addAll(b, []int{1, 2})
	if res := b.Sat(-1); res != Sat {
		t.Fatalf("status %d", res)
	}
	if !b.Changed() {
		t.Errorf("first model not changed")
	}
	if res := b.Sat(-1); res != Sat {
		t.Fatalf("status %d", res)
	}
	if b.Changed() {
		t.Errorf("identical re-solve reported change")
	}
}

func TestMiniEmptyClause(t *testing.T) {
	b := newMini()
	b.Init()
	b.Add(0)
	if res := b.Sat(-1); res != Unsat {
		t.Errorf("status %d with empty clause", res)
	}
}
