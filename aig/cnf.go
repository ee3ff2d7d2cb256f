// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aig

import "github.com/irifrance/bex/sat"

// Encode Tseitin-encodes the cone of m into smgr and returns the CNF
// literal standing for m.  Already encoded nodes keep their CNF ids;
// ids are issued by smgr and never reused.  The traversal is an
// explicit work list so deep cones do not grow the call stack.
func (c *C) Encode(smgr *sat.Mgr, m Lit) int {
	for len(c.cnf) < len(c.nodes) {
		c.cnf = append(c.cnf, 0)
	}
	work := []Lit{m.Reg()}
	for len(work) > 0 {
		x := work[len(work)-1]
		id := x.id()
		if c.cnf[id] != 0 {
			work = work[:len(work)-1]
			continue
		}
		nd := &c.nodes[id]
		if nd.a == LitNull {
			v := smgr.NextID()
			c.cnf[id] = v
			if id == 1 {
				// the true constant holds unconditionally
				smgr.Add(v)
				smgr.Add(0)
			}
			work = work[:len(work)-1]
			continue
		}
		ca, cb := c.cnf[nd.a.id()], c.cnf[nd.b.id()]
		if ca == 0 || cb == 0 {
			if ca == 0 {
				work = append(work, nd.a.Reg())
			}
			if cb == 0 {
				work = append(work, nd.b.Reg())
			}
			continue
		}
		g := smgr.NextID()
		c.cnf[id] = g
		la, lb := signed(ca, nd.a), signed(cb, nd.b)
		smgr.Add(-g)
		smgr.Add(la)
		smgr.Add(0)
		smgr.Add(-g)
		smgr.Add(lb)
		smgr.Add(0)
		smgr.Add(g)
		smgr.Add(-la)
		smgr.Add(-lb)
		smgr.Add(0)
		work = work[:len(work)-1]
	}
	return signed(c.cnf[m.id()], m)
}

// CnfLit returns the CNF literal previously assigned to m by Encode,
// or 0 if m's node has not been encoded.
func (c *C) CnfLit(m Lit) int {
	id := int(m.id())
	if id >= len(c.cnf) || c.cnf[id] == 0 {
		return 0
	}
	return signed(c.cnf[id], m)
}

func signed(v int, m Lit) int {
	if m.IsInv() {
		return -v
	}
	return v
}
