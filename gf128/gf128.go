// Package gf128 implements multiplication in GF(2^128) reduced modulo the
// GCM polynomial R = x^128 + x^7 + x^2 + x + 1, the field GHASH's
// universal hash runs over. Elements are big-endian 16-byte blocks, bit 0
// of byte 0 being the coefficient of x^0, matching NIST SP 800-38D's
// bit-ordering convention.
package gf128

import "encoding/binary"

// r0 is 0xe1000000_00000000, the upper 64 bits of the bit-reversed
// reduction constant used by both the bit-serial and windowed-table
// multipliers below (the constant the teacher's make_tables/gf_mult pair
// calls "black magic").
const r0 = 0xe1000000_00000000

// Mul computes x*y in GF(2^128) using a constant-time bit-serial
// reference algorithm: every bit of x is processed, on every iteration,
// with the conditional accumulation done via an arithmetic all-ones/
// all-zeros mask rather than a branch, so execution time does not depend
// on the bit pattern of either operand. This is the correctness reference
// and the default; Table.Mul (table.go) trades the constant-time property for
// speed.
func Mul(x, y [16]byte) [16]byte {
	x0 := binary.BigEndian.Uint64(x[0:8])
	x1 := binary.BigEndian.Uint64(x[8:16])
	y0 := binary.BigEndian.Uint64(y[0:8])
	y1 := binary.BigEndian.Uint64(y[8:16])

	var z0, z1 uint64
	for i := 0; i < 64; i++ {
		mask := uint64(int64(x0) >> 63) // all-ones if MSB set, else 0
		z0 ^= mask & y0
		z1 ^= mask & y1
		x0 <<= 1

		lsb := y1 & 1
		y1 = (y1 >> 1) | (y0 << 63)
		y0 = (y0 >> 1) ^ (r0 & (-lsb))
	}
	for i := 0; i < 64; i++ {
		mask := uint64(int64(x1) >> 63)
		z0 ^= mask & y0
		z1 ^= mask & y1
		x1 <<= 1

		lsb := y1 & 1
		y1 = (y1 >> 1) | (y0 << 63)
		y0 = (y0 >> 1) ^ (r0 & (-lsb))
	}

	var out [16]byte
	binary.BigEndian.PutUint64(out[0:8], z0)
	binary.BigEndian.PutUint64(out[8:16], z1)
	return out
}
