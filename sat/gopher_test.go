// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package sat

import "testing"

func TestGopherSat(t *testing.T) {
	b := newGopher()
	b.Init()
	addAll(b, []int{1, 2}, []int{-1, 2})
	if res := b.Sat(-1); res != Sat {
		t.Fatalf("status %d", res)
	}
	if b.Deref(2) != True {
		t.Errorf("deref 2 = %d", b.Deref(2))
	}
}

func TestGopherUnsatAssumptions(t *testing.T) {
	b := newGopher()
	b.Init()
	addAll(b, []int{1})
	b.Assume(-1)
	if res := b.Sat(-1); res != Unsat {
		t.Fatalf("status %d", res)
	}
	if !b.Failed(-1) {
		t.Errorf("assumption not failed")
	}
	// the assumption was scoped to the previous call
	if res := b.Sat(-1); res != Sat {
		t.Errorf("status %d after assumptions expired", res)
	}
}

func TestGopherIncrementalAdd(t *testing.T) {
	b := newGopher()
	b.Init()
	addAll(b, []int{1, 2})
	if res := b.Sat(-1); res != Sat {
		t.Fatalf("status %d", res)
	}
	addAll(b, []int{-1}, []int{-2})
	if res := b.Sat(-1); res != Unsat {
		t.Errorf("status %d after strengthening", res)
	}
}
