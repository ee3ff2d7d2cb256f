// Copyright 2018 The Bex Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bv

import (
	"fmt"
	"math/big"
	"strings"
)

func isZeroBits(bits string) bool {
	return strings.IndexByte(bits, '1') < 0
}

func isOnesBits(bits string) bool {
	return strings.IndexByte(bits, '0') < 0
}

func bitsToBig(bits string) *big.Int {
	v, ok := new(big.Int).SetString(bits, 2)
	if !ok {
		panic(fmt.Sprintf("bv: invalid constant %q", bits))
	}
	return v
}

func bigToBits(v *big.Int, w int) string {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(w))
	v = new(big.Int).Mod(v, mod)
	if v.Sign() < 0 {
		v.Add(v, mod)
	}
	bits := v.Text(2)
	if len(bits) < w {
		bits = strings.Repeat("0", w-len(bits)) + bits
	}
	return bits
}

// foldBin evaluates a binary bit-vector operator on constant bits.
// Division keeps the fixed conventions: udiv by zero is all ones,
// urem by zero is the dividend.
func foldBin(kind Kind, a, b string, w int) string {
	x, y := bitsToBig(a), bitsToBig(b)
	var r *big.Int
	switch kind {
	case KindAnd:
		r = new(big.Int).And(x, y)
	case KindAdd:
		r = new(big.Int).Add(x, y)
	case KindMul:
		r = new(big.Int).Mul(x, y)
	case KindUdiv:
		if y.Sign() == 0 {
			return strings.Repeat("1", w)
		}
		r = new(big.Int).Div(x, y)
	case KindUrem:
		if y.Sign() == 0 {
			return a
		}
		r = new(big.Int).Mod(x, y)
	case KindSll, KindSrl:
		if y.Cmp(big.NewInt(int64(w))) >= 0 {
			return strings.Repeat("0", w)
		}
		sh := uint(y.Uint64())
		if kind == KindSll {
			r = new(big.Int).Lsh(x, sh)
		} else {
			r = new(big.Int).Rsh(x, sh)
		}
	default:
		panic(fmt.Sprintf("bv: fold of %s", kind))
	}
	return bigToBits(r, w)
}
