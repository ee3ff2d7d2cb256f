// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bv

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/irifrance/bex/aig"
)

// A Store creates, interns and reference counts term nodes.
// Structurally identical interned terms share one node id; node ids
// strictly increase and are never reused.  Children always have
// smaller ids than their parents, so the graph is acyclic by
// construction.
type Store struct {
	nodes []node
	tbl   map[uint64]uint32 // hash -> first slot, chained via node.next
	live  int
	amgr  *aig.C // releases cached bit-blasts when nodes die
}

type node struct {
	kind   Kind
	width  int32
	iwidth int32 // arrays: index width
	refs   int32
	upper  int32 // slice bounds
	lower  int32
	kids   []Ref
	dom    []int32 // uf: domain widths
	bits   string  // const: most significant bit first
	sym    string
	hash   uint64
	next   uint32 // strash chain
	av     aig.Vec
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{tbl: make(map[uint64]uint32)}
	s.nodes = make([]node, 1, 128) // slot 0 reserved for RefNull
	return s
}

// SetAIG attaches the AIG the store's cached bit-blasts live in, so
// freeing a node can release its translation.
func (s *Store) SetAIG(c *aig.C) {
	s.amgr = c
}

// Live returns the number of live nodes.
func (s *Store) Live() int { return s.live }

// Len returns the number of node slots ever allocated.
func (s *Store) Len() int { return len(s.nodes) }

func (s *Store) node(r Ref) *node {
	if r == RefNull {
		panic("bv: null reference")
	}
	nd := &s.nodes[r.id()]
	if nd.refs <= 0 {
		panic(fmt.Sprintf("bv: dead reference %s", r))
	}
	return nd
}

// KindOf returns the kind of r's node.
func (s *Store) KindOf(r Ref) Kind { return s.node(r).kind }

// Width returns the bit width of r.  For arrays it is the element
// width.
func (s *Store) Width(r Ref) int { return int(s.node(r).width) }

// IndexWidth returns the index width of an array node.
func (s *Store) IndexWidth(r Ref) int {
	nd := s.node(r)
	if nd.iwidth == 0 {
		panic(fmt.Sprintf("bv: %s node %s has no index width", nd.kind, r))
	}
	return int(nd.iwidth)
}

// NumKids returns the child count of r's node.
func (s *Store) NumKids(r Ref) int { return len(s.node(r).kids) }

// Kid returns the i'th child reference of r's node, borrowed.
func (s *Store) Kid(r Ref, i int) Ref { return s.node(r).kids[i] }

// SliceBounds returns the upper and lower bit of a slice node.
func (s *Store) SliceBounds(r Ref) (int, int) {
	nd := s.node(r)
	if nd.kind != KindSlice {
		panic(fmt.Sprintf("bv: slice bounds of %s node", nd.kind))
	}
	return int(nd.upper), int(nd.lower)
}

// Symbol returns the symbol of r's node, or "".
func (s *Store) Symbol(r Ref) string { return s.node(r).sym }

// SetSymbol names r's node.
func (s *Store) SetSymbol(r Ref, sym string) { s.node(r).sym = sym }

// Refs returns the reference count of r's node.
func (s *Store) Refs(r Ref) int32 {
	if r == RefNull {
		panic("bv: null reference")
	}
	return s.nodes[r.id()].refs
}

// IsArray tells whether r refers to an array-sorted node.
func (s *Store) IsArray(r Ref) bool {
	switch s.node(r).kind {
	case KindArray, KindWrite:
		return true
	}
	return false
}

// IsConst tells whether r refers to a constant node.
func (s *Store) IsConst(r Ref) bool { return s.node(r).kind == KindConst }

// IsVar tells whether r refers to a bit-vector variable.
func (s *Store) IsVar(r Ref) bool { return s.node(r).kind == KindVar }

// ConstBits returns the bits of r (most significant first) when r is
// a constant reference, honoring the polarity tag.
func (s *Store) ConstBits(r Ref) (string, bool) {
	nd := s.node(r)
	if nd.kind != KindConst {
		return "", false
	}
	if !r.IsInv() {
		return nd.bits, true
	}
	inv := make([]byte, len(nd.bits))
	for i := 0; i < len(nd.bits); i++ {
		if nd.bits[i] == '0' {
			inv[i] = '1'
		} else {
			inv[i] = '0'
		}
	}
	return string(inv), true
}

// Copy takes a new owned reference to r's node and returns r.
func (s *Store) Copy(r Ref) Ref {
	s.node(r).refs++
	return r
}

// Release gives up one owned reference to r.  When a node's count
// reaches zero it is unlinked from the hash, its children released
// via an explicit work list, its cached bit-blast invalidated, and
// its slot zeroed.  Slot ids are never reused.
func (s *Store) Release(r Ref) {
	if r == RefNull {
		panic("bv: release of null reference")
	}
	work := []uint32{r.id()}
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		nd := &s.nodes[id]
		if nd.refs <= 0 {
			panic(fmt.Sprintf("bv: release of dead node n%d", id))
		}
		nd.refs--
		if nd.refs > 0 {
			continue
		}
		if !nd.kind.fresh() {
			s.unlink(id)
		}
		for _, k := range nd.kids {
			work = append(work, k.id())
		}
		if nd.av != nil && s.amgr != nil {
			s.amgr.ReleaseVec(nd.av)
		}
		*nd = node{}
		s.live--
	}
}

// AV returns the cached bit-blast of r's node, or nil.
func (s *Store) AV(r Ref) aig.Vec { return s.node(r).av }

// SetAV caches the bit-blast of r's node.  The node takes ownership
// of the vector's references.
func (s *Store) SetAV(r Ref, v aig.Vec) {
	nd := s.node(r)
	if nd.av != nil {
		panic(fmt.Sprintf("bv: node %s already bit-blasted", r))
	}
	nd.av = v
}

// alloc creates a node, interning it unless its kind is fresh.
// Child references are borrowed from the caller; the node takes its
// own.  The returned reference is owned by the caller.
func (s *Store) alloc(nd node) Ref {
	if nd.width <= 0 {
		panic(fmt.Sprintf("bv: %s node with invalid width %d", nd.kind, nd.width))
	}
	if !nd.kind.fresh() {
		nd.hash = hashNode(&nd)
		if id, ok := s.lookup(&nd); ok {
			return s.Copy(toRef(id))
		}
	}
	for _, k := range nd.kids {
		s.Copy(k)
	}
	nd.refs = 1
	id := uint32(len(s.nodes))
	s.nodes = append(s.nodes, nd)
	s.live++
	if !nd.kind.fresh() {
		p := &s.nodes[id]
		p.next = s.tbl[nd.hash]
		s.tbl[nd.hash] = id
	}
	return toRef(id)
}

func (s *Store) lookup(nd *node) (uint32, bool) {
	id := s.tbl[nd.hash]
	for id != 0 {
		p := &s.nodes[id]
		if p.hash == nd.hash && sameNode(p, nd) {
			return id, true
		}
		id = p.next
	}
	return 0, false
}

func (s *Store) unlink(id uint32) {
	nd := &s.nodes[id]
	head := s.tbl[nd.hash]
	if head == id {
		if nd.next == 0 {
			delete(s.tbl, nd.hash)
		} else {
			s.tbl[nd.hash] = nd.next
		}
		return
	}
	for head != 0 {
		p := &s.nodes[head]
		if p.next == id {
			p.next = nd.next
			return
		}
		head = p.next
	}
	panic(fmt.Sprintf("bv: node n%d not interned", id))
}

func sameNode(a, b *node) bool {
	if a.kind != b.kind || a.width != b.width || a.iwidth != b.iwidth ||
		a.upper != b.upper || a.lower != b.lower ||
		a.bits != b.bits || len(a.kids) != len(b.kids) {
		return false
	}
	for i := range a.kids {
		if a.kids[i] != b.kids[i] {
			return false
		}
	}
	return true
}

func hashNode(nd *node) uint64 {
	var buf [8]byte
	d := xxhash.New()
	buf[0] = byte(nd.kind)
	d.Write(buf[:1])
	binary.LittleEndian.PutUint32(buf[:4], uint32(nd.width))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(nd.iwidth))
	d.Write(buf[:8])
	binary.LittleEndian.PutUint32(buf[:4], uint32(nd.upper))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(nd.lower))
	d.Write(buf[:8])
	d.WriteString(nd.bits)
	for _, k := range nd.kids {
		binary.LittleEndian.PutUint32(buf[:4], uint32(k))
		d.Write(buf[:4])
	}
	return d.Sum64()
}
