// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bv

import "fmt"

// A Mapper implements the base case of an extended substitution.  It
// is consulted with tag-normalized (non-inverted) references only and
// returns a newly owned replacement, or RefNull when it has none.
type Mapper func(s *Store, state interface{}, n Ref) Ref

// Subst rewrites the graph under root through the map: every mapped
// node is replaced by its destination, every unmapped node is rebuilt
// from its substituted children and recorded in the map.  A mapped
// interior node short-circuits its entire subtree.  The caller owns
// the returned reference.
//
// The traversal is an explicit work list; the map itself is the
// results cache, so each node is processed at most twice regardless
// of DAG depth.
func (m *Map) Subst(root Ref) Ref {
	return m.SubstExt(nil, nil, root)
}

// SubstExt is Subst with a mapper consulted before structural
// substitution.  A non-null mapper result is cached in the map and
// the subtree below the node is not visited; the node's original tag
// is re-applied by the engine.
func (m *Map) SubstExt(state interface{}, f Mapper, root Ref) Ref {
	if root == RefNull {
		panic("bv: substitute of null reference")
	}
	// the false constant is the map's unmapped marker; it always
	// substitutes to itself and is never cached
	if m.s.isFalseNode(root) {
		return m.s.Copy(root)
	}
	work := []Ref{root.Reg()}
	for len(work) > 0 {
		n := work[len(work)-1]
		if m.Mapped(n) != RefNull {
			work = work[:len(work)-1]
			continue
		}
		if f != nil {
			if res := f(m.s, state, n); res != RefNull {
				m.Map(n, res)
				m.s.Release(res)
				work = work[:len(work)-1]
				continue
			}
		}
		kids := m.s.node(n).kids
		if len(kids) == 0 {
			m.Map(n, n)
			work = work[:len(work)-1]
			continue
		}
		ready := true
		for _, k := range kids {
			if m.s.isFalseNode(k) {
				continue
			}
			if m.Mapped(k.Reg()) == RefNull {
				work = append(work, k.Reg())
				ready = false
			}
		}
		if !ready {
			continue
		}
		dst := m.rebuild(n)
		m.Map(n, dst)
		m.s.Release(dst)
		work = work[:len(work)-1]
	}
	return m.s.Copy(m.Mapped(root))
}

// rebuild interns the substituted image of the regular node n from
// its already mapped children.
func (m *Map) rebuild(n Ref) Ref {
	nd := m.s.node(n)
	kind := nd.kind
	upper, lower := int(nd.upper), int(nd.lower)
	kids := make([]Ref, len(nd.kids))
	for i, k := range nd.kids {
		if m.s.isFalseNode(k) {
			kids[i] = k
			continue
		}
		kids[i] = m.Mapped(k)
	}
	switch kind {
	case KindAnd:
		return m.s.And(kids[0], kids[1])
	case KindEq:
		return m.s.Eq(kids[0], kids[1])
	case KindAdd:
		return m.s.Add(kids[0], kids[1])
	case KindMul:
		return m.s.Mul(kids[0], kids[1])
	case KindUlt:
		return m.s.Ult(kids[0], kids[1])
	case KindSll:
		return m.s.Sll(kids[0], kids[1])
	case KindSrl:
		return m.s.Srl(kids[0], kids[1])
	case KindUdiv:
		return m.s.Udiv(kids[0], kids[1])
	case KindUrem:
		return m.s.Urem(kids[0], kids[1])
	case KindConcat:
		return m.s.Concat(kids[0], kids[1])
	case KindSlice:
		return m.s.Slice(kids[0], upper, lower)
	case KindRead:
		return m.s.Read(kids[0], kids[1])
	case KindWrite:
		return m.s.Write(kids[0], kids[1], kids[2])
	case KindCond:
		return m.s.Cond(kids[0], kids[1], kids[2])
	case KindFun:
		return m.s.Fun(kids[0], kids[1])
	case KindApply:
		return m.s.Apply(kids[0], kids[1:]...)
	}
	panic(fmt.Sprintf("bv: substitute of %s node", kind))
}
