// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package bv implements a hash-consed, reference counted expression
// graph for bit-vector, array and uninterpreted-function terms,
// together with tag-preserving node maps and non-recursive
// substitution over the graph.
package bv

import "fmt"

// A Ref is a reference to a node together with a polarity tag.  The
// tag means "bitwise inverted" and lives on the reference, not the
// node: r and r.Not() refer to the same node.  Equality and hashing
// of references operate on the (id, tag) pair.
type Ref uint32

// RefNull is the null reference.
const RefNull Ref = 0

func toRef(id uint32) Ref {
	return Ref(id << 1)
}

// Not returns r with the polarity tag flipped.
func (r Ref) Not() Ref {
	return r ^ 1
}

// IsInv tells whether r carries the polarity tag.
func (r Ref) IsInv() bool {
	return r&1 == 1
}

// Reg returns r without its polarity tag.
func (r Ref) Reg() Ref {
	return r &^ 1
}

func (r Ref) id() uint32 {
	return uint32(r >> 1)
}

func (r Ref) String() string {
	if r == RefNull {
		return "null"
	}
	if r.IsInv() {
		return fmt.Sprintf("!n%d", r.id())
	}
	return fmt.Sprintf("n%d", r.id())
}
