// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aig

import (
	"testing"

	"github.com/irifrance/bex/sat"
)

func TestEncodeXor(t *testing.T) {
	c := NewC()
	smgr, err := sat.New("mini", 0)
	if err != nil {
		t.Fatal(err)
	}
	smgr.Init()
	a, b := c.NewIn(), c.NewIn()
	x := c.Xor(a, b)
	if c.CnfLit(x) != 0 {
		t.Errorf("cnf lit before encode")
	}
	lx := c.Encode(smgr, x)
	if lx == 0 || c.CnfLit(x) != lx {
		t.Errorf("encode gave %d, cnf lit %d", lx, c.CnfLit(x))
	}
	if c.CnfLit(x.Not()) != -lx {
		t.Errorf("inverted cnf lit %d", c.CnfLit(x.Not()))
	}
	// force x true; a and b must differ in every model
	smgr.Add(lx)
	smgr.Add(0)
	if res := smgr.Sat(-1); res != sat.Sat {
		t.Fatalf("status %d", res)
	}
	va, vb := smgr.Deref(c.CnfLit(a)), smgr.Deref(c.CnfLit(b))
	if va == sat.DontCare || va == vb {
		t.Errorf("model a=%d b=%d under forced xor", va, vb)
	}
}

func TestEncodeTrueConst(t *testing.T) {
	c := NewC()
	smgr, err := sat.New("mini", 0)
	if err != nil {
		t.Fatal(err)
	}
	smgr.Init()
	lt := c.Encode(smgr, c.T)
	lf := c.Encode(smgr, c.F)
	if lt != -lf {
		t.Errorf("T/F lits %d %d", lt, lf)
	}
	if res := smgr.Sat(-1); res != sat.Sat {
		t.Fatalf("status %d", res)
	}
	if smgr.Deref(lt) != sat.True || smgr.Deref(lf) != sat.False {
		t.Errorf("constant derefs %d %d", smgr.Deref(lt), smgr.Deref(lf))
	}
}

func TestEncodeStableIDs(t *testing.T) {
	c := NewC()
	smgr, err := sat.New("mini", 0)
	if err != nil {
		t.Fatal(err)
	}
	smgr.Init()
	a, b := c.NewIn(), c.NewIn()
	g := c.And(a, b)
	l1 := c.Encode(smgr, g)
	l2 := c.Encode(smgr, g)
	if l1 != l2 {
		t.Errorf("re-encode changed lit %d %d", l1, l2)
	}
	h := c.And(g, a.Not())
	lh := c.Encode(smgr, h)
	if lh <= l1 {
		t.Errorf("new gate got lit %d, not above %d", lh, l1)
	}
}
