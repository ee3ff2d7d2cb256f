// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package sat

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
)

// A Mgr owns the incremental CNF state of one solving session: the
// monotone variable id counter, the clause stream pushed to the
// backend, and verbosity.  Ids strictly increase and are never
// reused; once issued an id denotes a fixed Boolean variable for the
// session.
type Mgr struct {
	id          int
	name        string
	be          Backend
	verbosity   int
	log         *slog.Logger
	out         io.Writer
	initialized bool

	clause      []int
	clauses     [][]int // kept for DumpCnf
	assumptions []int
	solves      int
}

// New creates a manager over the named backend.  Verbosity below -1
// or an unknown backend name is an error.
func New(backend string, verbosity int) (*Mgr, error) {
	if verbosity < -1 {
		return nil, fmt.Errorf("sat: invalid verbosity %d", verbosity)
	}
	be, err := NewBackend(backend)
	if err != nil {
		return nil, err
	}
	if backend == "" {
		backend = "mini"
	}
	return NewMgr(be, backend, verbosity), nil
}

// NewMgr creates a manager over an already constructed backend.
func NewMgr(be Backend, name string, verbosity int) *Mgr {
	return &Mgr{
		id:        1,
		name:      name,
		be:        be,
		verbosity: verbosity,
		log:       slog.Default(),
		out:       os.Stderr,
	}
}

// Name returns the backend name.
func (s *Mgr) Name() string { return s.name }

// NextID returns the next CNF variable id and advances the counter.
func (s *Mgr) NextID() int {
	if s.id == math.MaxInt {
		panic("sat: cnf id space exhausted")
	}
	v := s.id
	s.id++
	return v
}

// LastID returns the most recently issued id.  At least one id must
// have been issued.
func (s *Mgr) LastID() int {
	if s.id <= 1 {
		panic("sat: no cnf id issued")
	}
	return s.id - 1
}

// Init initializes the backend.  It must be called once before Add,
// Assume or Sat.
func (s *Mgr) Init() {
	if s.verbosity >= 3 {
		s.log.Info("initializing backend", "sat", s.name)
	}
	s.be.Init()
	s.initialized = true
}

// SetOutput redirects statistics output.
func (s *Mgr) SetOutput(w io.Writer) {
	if w == nil {
		panic("sat: nil output")
	}
	s.out = w
}

// SetLogger replaces the manager's logger.
func (s *Mgr) SetLogger(l *slog.Logger) {
	if l == nil {
		panic("sat: nil logger")
	}
	s.log = l
}

// EnableVerbosity turns on backend narration.
func (s *Mgr) EnableVerbosity() {
	if s.verbosity < 1 {
		s.verbosity = 1
	}
}

// PrintStats writes manager and backend statistics.
func (s *Mgr) PrintStats() {
	fmt.Fprintf(s.out, "[bex.sat] backend %s vars %d clauses %d solves %d\n",
		s.name, s.id-1, len(s.clauses), s.solves)
	s.be.Stats(s.out)
}

// Add appends a literal to the current clause; 0 terminates it and
// pushes it to the backend.
func (s *Mgr) Add(m int) {
	s.mustInit()
	if m == 0 {
		cls := make([]int, len(s.clause))
		copy(cls, s.clause)
		s.clauses = append(s.clauses, cls)
		s.clause = s.clause[:0]
	} else {
		s.clause = append(s.clause, m)
	}
	s.be.Add(m)
}

// DumpCnf writes the clauses added so far in DIMACS format.
func (s *Mgr) DumpCnf(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", s.id-1, len(s.clauses)); err != nil {
		return err
	}
	for _, cls := range s.clauses {
		for _, m := range cls {
			if _, err := fmt.Fprintf(w, "%d ", m); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "0"); err != nil {
			return err
		}
	}
	return nil
}

// Assume registers a unit assumption scoped to the next Sat call.
func (s *Mgr) Assume(m int) {
	s.mustInit()
	if m == 0 {
		panic("sat: assume of null literal")
	}
	s.assumptions = append(s.assumptions, m)
	s.be.Assume(m)
}

// Sat invokes the backend.  limit < 0 solves without bound; Unknown
// is only possible under a finite limit.  Assumptions are consumed.
func (s *Mgr) Sat(limit int64) int {
	s.mustInit()
	if s.verbosity > 0 {
		s.log.Info("calling backend", "sat", s.name,
			"vars", s.id-1, "clauses", len(s.clauses), "assumptions", len(s.assumptions))
	}
	s.assumptions = s.assumptions[:0]
	s.solves++
	return s.be.Sat(limit)
}

// Deref queries the model of the last satisfiable Sat call.
func (s *Mgr) Deref(m int) int {
	s.mustInit()
	return s.be.Deref(m)
}

// Failed tells whether assumption m contributed to the last Unsat.
func (s *Mgr) Failed(m int) bool {
	s.mustInit()
	return s.be.Failed(m)
}

// Changed tells whether the model changed since the previous
// satisfiable Sat call.
func (s *Mgr) Changed() bool {
	s.mustInit()
	return s.be.Changed()
}

// Reset discards the backend state and the clause buffer.  The id
// counter is not rewound: ids are unique across the manager lifetime.
func (s *Mgr) Reset() {
	if s.verbosity >= 3 {
		s.log.Info("resetting backend", "sat", s.name)
	}
	s.be.Reset()
	s.clause = s.clause[:0]
	s.clauses = s.clauses[:0]
	s.assumptions = s.assumptions[:0]
	s.initialized = false
}

func (s *Mgr) mustInit() {
	if !s.initialized {
		panic("sat: manager used before Init")
	}
}
