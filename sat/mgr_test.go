// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package sat

import (
	"strings"
	"testing"
)

func TestMgrIDsMonotone(t *testing.T) {
	s, err := New("mini", 0)
	if err != nil {
		t.Fatal(err)
	}
	s.Init()
	last := 0
	for i := 0; i < 100; i++ {
		v := s.NextID()
		if v <= last {
			t.Fatalf("id %d after %d", v, last)
		}
		last = v
	}
	if s.LastID() != last {
		t.Errorf("last id %d, want %d", s.LastID(), last)
	}
	s.Reset()
	s.Init()
	if v := s.NextID(); v <= last {
		t.Errorf("id %d reused across reset", v)
	}
}

func TestMgrLastIDFresh(t *testing.T) {
	s, err := New("mini", 0)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("no panic on fresh LastID")
		}
	}()
	s.LastID()
}

func TestMgrUninitialized(t *testing.T) {
	s, err := New("mini", 0)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("no panic on Add before Init")
		}
	}()
	s.Add(1)
}

func TestMgrDumpCnf(t *testing.T) {
	s, err := New("mini", 0)
	if err != nil {
		t.Fatal(err)
	}
	s.Init()
	a, b := s.NextID(), s.NextID()
	s.Add(a)
	s.Add(b)
	s.Add(0)
	s.Add(-a)
	s.Add(0)
	var sb strings.Builder
	if err := s.DumpCnf(&sb); err != nil {
		t.Fatal(err)
	}
	want := "p cnf 2 2\n1 2 0\n-1 0\n"
	if sb.String() != want {
		t.Errorf("dump %q, want %q", sb.String(), want)
	}
}

func TestMgrSolve(t *testing.T) {
	s, err := New("", 0) // default backend
	if err != nil {
		t.Fatal(err)
	}
	s.Init()
	a := s.NextID()
	s.Add(a)
	s.Add(0)
	s.Assume(-a)
	if res := s.Sat(-1); res != Unsat {
		t.Fatalf("status %d", res)
	}
	if !s.Failed(-a) {
		t.Errorf("assumption not failed")
	}
	if res := s.Sat(-1); res != Sat {
		t.Fatalf("status %d", res)
	}
	if s.Deref(a) != True {
		t.Errorf("deref %d", s.Deref(a))
	}
}

func TestMgrUnknownBackend(t *testing.T) {
	if _, err := New("cryptominisat", 0); err == nil {
		t.Errorf("no error for unknown backend")
	}
}
