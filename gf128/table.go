package gf128

import "encoding/binary"

// last4 maps a 4-bit remainder to its contribution after one nibble's
// worth of reduction steps. These sixteen constants are the teacher's
// precomputed table from gcm/gcm.go's make_tables/gf_mult pair, reused
// here verbatim; they fall out of the same R reduction constant Mul uses
// above, just folded four bits at a time instead of one.
var last4 = [16]uint64{
	0x0000, 0x1c20, 0x3840, 0x2460, 0x7080, 0x6ca0, 0x48c0, 0x54e0,
	0xe100, 0xfd20, 0xd940, 0xc560, 0x9180, 0x8da0, 0xa9c0, 0xb5e0,
}

// Table is a precomputed 4-bit windowed multiplier for a fixed left-hand
// operand H (GHASH's hash subkey). It reproduces the teacher's
// make_tables/gf_mult technique: fast, but NOT constant-time — table
// index and loop trip count both branch on H alone (which is constant
// once precomputed) while the multiplicand's nibbles select table rows
// directly, so timing leaks bits of the multiplicand. Safe to use when H
// is the only secret involved and the multiplicand (the running GHASH
// state) isn't separately sensitive in a way timing could expose; Mul
// above is the constant-time fallback when that assumption doesn't hold.
type Table struct {
	hl, hh [16]uint64
}

// Precompute builds a Table for left-hand operand h.
func Precompute(h [16]byte) *Table {
	t := &Table{}
	vh := binary.BigEndian.Uint64(h[0:8])
	vl := binary.BigEndian.Uint64(h[8:16])

	t.hl[8] = vl
	t.hh[8] = vh

	for i := 4; i > 0; i >>= 1 {
		tbit := uint32(vl&1) * 0xe1000000
		vl = (vh << 63) | (vl >> 1)
		vh = (vh >> 1) ^ (uint64(tbit) << 32)
		t.hl[i] = vl
		t.hh[i] = vh
	}

	for i := 2; i < 16; i <<= 1 {
		vh = t.hh[i]
		vl = t.hl[i]
		for j := 1; j < i; j++ {
			t.hh[i+j] = vh ^ t.hh[j]
			t.hl[i+j] = vl ^ t.hl[j]
		}
	}
	return t
}

// Mul computes h*x in GF(2^128) for the H this Table was built from.
func (t *Table) Mul(x [16]byte) [16]byte {
	lo := x[15] & 0x0f
	hi := x[15] >> 4

	zh := t.hh[lo]
	zl := t.hl[lo]

	rem := zl & 0x0f
	zl = ((zh << 60) | (zl >> 4)) ^ t.hl[hi]
	zh = (zh >> 4) ^ (last4[rem] << 48) ^ t.hh[hi]

	for i := 14; i >= 0; i-- {
		lo = x[i] & 0x0f
		hi = x[i] >> 4

		rem = zl & 0x0f
		zl = ((zh << 60) | (zl >> 4)) ^ t.hl[lo]
		zh = (zh >> 4) ^ (last4[rem] << 48) ^ t.hh[lo]

		rem = zl & 0x0f
		zl = ((zh << 60) | (zl >> 4)) ^ t.hl[hi]
		zh = (zh >> 4) ^ (last4[rem] << 48) ^ t.hh[hi]
	}

	var out [16]byte
	binary.BigEndian.PutUint64(out[0:8], zh)
	binary.BigEndian.PutUint64(out[8:16], zl)
	return out
}
