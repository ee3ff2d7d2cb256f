// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bv

// Kind identifies the operator of a node.  The store interns every
// kind except the fresh-each-call ones: KindVar, KindParam,
// KindArray and KindUF are never shared, even when structurally
// identical.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindConst
	KindVar
	KindParam
	KindArray // array variable
	KindUF    // uninterpreted function symbol
	KindSlice
	KindAnd
	KindEq
	KindAdd
	KindMul
	KindUlt
	KindSll
	KindSrl
	KindUdiv
	KindUrem
	KindConcat
	KindRead
	KindWrite
	KindCond
	KindFun   // lambda of one parameter
	KindApply // uninterpreted function application
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindConst:   "const",
	KindVar:     "var",
	KindParam:   "param",
	KindArray:   "array",
	KindUF:      "uf",
	KindSlice:   "slice",
	KindAnd:     "and",
	KindEq:      "eq",
	KindAdd:     "add",
	KindMul:     "mul",
	KindUlt:     "ult",
	KindSll:     "sll",
	KindSrl:     "srl",
	KindUdiv:    "udiv",
	KindUrem:    "urem",
	KindConcat:  "concat",
	KindRead:    "read",
	KindWrite:   "write",
	KindCond:    "cond",
	KindFun:     "fun",
	KindApply:   "apply",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) fresh() bool {
	switch k {
	case KindVar, KindParam, KindArray, KindUF:
		return true
	}
	return false
}
