// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package sat provides an incremental CNF manager over swappable
// Boolean SAT backends.
//
// Literals are non-zero ints in DIMACS convention; 0 terminates a
// clause in Add streams.  CNF variable ids are issued by the manager
// and strictly increase over its lifetime.
package sat

import (
	"fmt"
	"io"
)

// Solve statuses, also used as process exit codes.
const (
	Unknown = 0
	Sat     = 10
	Unsat   = 20
)

// Deref values.
const (
	True     = 1
	False    = -1
	DontCare = 0
)

// Backend is the capability contract a concrete SAT engine provides.
// All methods assume Init has been called; calling them out of order
// is a programming error, not a runtime condition.
type Backend interface {
	// Init prepares the backend for incremental use.
	Init()

	// Add appends a literal to the current clause; 0 ends it.
	Add(m int)

	// Assume registers a unit assumption for the next Sat call only.
	Assume(m int)

	// Sat solves under the pending assumptions.  limit < 0 means no
	// limit; otherwise it bounds the search effort and Unknown may be
	// returned.  Result is Sat, Unsat or Unknown.
	Sat(limit int64) int

	// Deref queries the model after a Sat result.
	Deref(m int) int

	// Failed tells whether assumption m was used to derive the last
	// Unsat result.  Valid only directly after an Unsat.
	Failed(m int) bool

	// Changed tells whether the model differs from the previous
	// satisfiable call.
	Changed() bool

	// Stats writes backend statistics to w.
	Stats(w io.Writer)

	// Reset discards all clauses and state.
	Reset()
}

// NewBackend resolves a backend by name.  Known names are "mini"
// (the in-package DPLL engine) and "gophersat".
func NewBackend(name string) (Backend, error) {
	switch name {
	case "", "mini":
		return newMini(), nil
	case "gophersat":
		return newGopher(), nil
	}
	return nil, fmt.Errorf("sat: unknown backend %q", name)
}
