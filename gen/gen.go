// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package gen generates random and structured bit-vector problems for
// testing and benchmarking.
package gen

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/irifrance/bex"
	"github.com/irifrance/bex/bv"
)

/// make the rng seedable
var rng = rand.New(rand.NewSource(33))
var mu sync.Mutex

func Seed(s int64) {
	mu.Lock()
	defer mu.Unlock()
	rng = rand.New(rand.NewSource(s))
}

// RandTerm builds a random term of width w over n fresh variables of
// b, with at most depth operator levels.  The caller owns the result.
func RandTerm(b *bex.Bex, w, n, depth int) bv.Ref {
	mu.Lock() // for package rng
	defer mu.Unlock()
	vs := make([]bv.Ref, n)
	for i := range vs {
		vs[i] = b.Var(w, fmt.Sprintf("v%d", i))
	}
	t := randTerm(b, vs, w, depth)
	for _, v := range vs {
		b.Release(v)
	}
	return t
}

func randTerm(b *bex.Bex, vs []bv.Ref, w, depth int) bv.Ref {
	if depth <= 0 || rng.Intn(4) == 0 {
		if rng.Intn(3) == 0 {
			return b.Uint(rng.Uint64(), w)
		}
		return b.Copy(vs[rng.Intn(len(vs))])
	}
	x := randTerm(b, vs, w, depth-1)
	y := randTerm(b, vs, w, depth-1)
	var t bv.Ref
	switch rng.Intn(7) {
	case 0:
		t = b.And(x, y)
	case 1:
		t = b.Or(x, y)
	case 2:
		t = b.Add(x, y)
	case 3:
		t = b.Sub(x, y)
	case 4:
		t = b.Mul(x, y)
	case 5:
		t = b.Sll(x, y)
	case 6:
		t = b.Not(x)
	}
	b.Release(x)
	b.Release(y)
	return t
}

// RandAsserts adds m random single-bit constraints over n variables
// of width w.
func RandAsserts(b *bex.Bex, w, n, m, depth int) {
	mu.Lock()
	defer mu.Unlock()
	vs := make([]bv.Ref, n)
	for i := range vs {
		vs[i] = b.Var(w, fmt.Sprintf("v%d", i))
	}
	for i := 0; i < m; i++ {
		x := randTerm(b, vs, w, depth)
		y := randTerm(b, vs, w, depth)
		var p bv.Ref
		switch rng.Intn(3) {
		case 0:
			p = b.Eq(x, y)
		case 1:
			p = b.Ult(x, y)
		case 2:
			e := b.Eq(x, y)
			p = e.Not()
		}
		b.Release(x)
		b.Release(y)
		b.Assert(p)
		b.Release(p)
	}
	for _, v := range vs {
		b.Release(v)
	}
}

// Distrib asserts (a+b)*c != a*c + b*c at width w, an unsatisfiable
// problem that the term rewrites cannot fold away.
func Distrib(b *bex.Bex, w int) {
	a := b.Var(w, "a")
	x := b.Var(w, "b")
	c := b.Var(w, "c")
	s := b.Add(a, x)
	l := b.Mul(s, c)
	b.Release(s)
	ac := b.Mul(a, c)
	xc := b.Mul(x, c)
	r := b.Add(ac, xc)
	b.Release(ac)
	b.Release(xc)
	p := b.Ne(l, r)
	b.Release(l)
	b.Release(r)
	b.Assert(p)
	b.Release(p)
	b.Release(a)
	b.Release(x)
	b.Release(c)
}

// WriteChain asserts that reading back the k'th of n writes at
// distinct constant indexes yields something other than the written
// value, an unsatisfiable problem driving the lazy array refinement.
func WriteChain(b *bex.Bex, ew, iw, n, k int) {
	if k < 0 || k >= n {
		panic(fmt.Sprintf("gen: write chain read %d of %d writes", k, n))
	}
	arr := b.Array(ew, iw, "mem")
	cur := b.Copy(arr)
	for i := 0; i < n; i++ {
		idx := b.Uint(uint64(i), iw)
		val := b.Uint(uint64(i+1), ew)
		nxt := b.Write(cur, idx, val)
		b.Release(cur)
		b.Release(idx)
		b.Release(val)
		cur = nxt
	}
	idx := b.Uint(uint64(k), iw)
	rd := b.Read(cur, idx)
	b.Release(cur)
	val := b.Uint(uint64(k+1), ew)
	p := b.Ne(rd, val)
	b.Release(rd)
	b.Release(idx)
	b.Release(val)
	b.Assert(p)
	b.Release(p)
	b.Release(arr)
}
