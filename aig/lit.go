// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aig

import "fmt"

// A Lit is a reference to an AIG node together with an inversion tag.
// The tag lives on the reference, not the node: m and m.Not() refer to
// the same gate.  The zero value LitNull refers to nothing.
type Lit uint32

// LitNull is the null AIG reference.
const LitNull Lit = 0

func toLit(id uint32) Lit {
	return Lit(id << 1)
}

// Not returns m with the inversion tag flipped.
func (m Lit) Not() Lit {
	return m ^ 1
}

// IsInv tells whether m carries the inversion tag.
func (m Lit) IsInv() bool {
	return m&1 == 1
}

// Reg returns m without its inversion tag.
func (m Lit) Reg() Lit {
	return m &^ 1
}

func (m Lit) id() uint32 {
	return uint32(m >> 1)
}

func (m Lit) String() string {
	if m == LitNull {
		return "anull"
	}
	if m.IsInv() {
		return fmt.Sprintf("!a%d", m.id())
	}
	return fmt.Sprintf("a%d", m.id())
}
