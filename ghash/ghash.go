// Package ghash implements the GHASH universal hash function from NIST SP
// 800-38D, the authentication core of GCM. It absorbs 16-byte blocks
// (padded AAD, padded ciphertext, and the 64||64-bit length block) and
// reduces each one through gf128 multiplication by the hash subkey H.
package ghash

import (
	"encoding/binary"

	"github.com/gmsec/sm4gcm/base"
	"github.com/gmsec/sm4gcm/gf128"
)

// multiplier is the subset of gf128's API GHASH needs: a single
// left-multiply by a fixed H, constant-time or accelerated depending on
// which the caller constructed.
type multiplier interface {
	Mul(x [16]byte) [16]byte
}

type constTimeMultiplier struct{ h [16]byte }

func (m constTimeMultiplier) Mul(x [16]byte) [16]byte { return gf128.Mul(m.h, x) }

// GHASH accumulates blocks under a fixed hash subkey H.
type GHASH struct {
	mul   multiplier
	state [16]byte
}

// New builds a GHASH accumulator for hash subkey h using the
// constant-time gf128.Mul reference multiply.
func New(h [16]byte) *GHASH {
	return &GHASH{mul: constTimeMultiplier{h: h}}
}

// NewAccelerated builds a GHASH accumulator backed by gf128's precomputed
// 4-bit windowed table for h. Faster, not constant-time (see gf128.Table).
func NewAccelerated(h [16]byte) *GHASH {
	return &GHASH{mul: gf128.Precompute(h)}
}

// Reset clears the running digest so the GHASH instance can be reused for
// a new message under the same H.
func (g *GHASH) Reset() {
	g.state = [16]byte{}
}

// Zero scrubs the running digest. Callers that still need the digest
// value must copy it out first (Lengths already returns it by value) —
// zeroing here never invalidates a value the caller already holds.
func (g *GHASH) Zero() {
	base.Zero(g.state[:])
}

// Block absorbs exactly one 16-byte block.
func (g *GHASH) Block(b *[16]byte) {
	var x [16]byte
	for i := range x {
		x[i] = g.state[i] ^ b[i]
	}
	g.state = g.mul.Mul(x)
}

// Write absorbs data zero-padded up to a multiple of 16 bytes, as AAD and
// ciphertext both are before being hashed per SP 800-38D §6.4.
func (g *GHASH) Write(data []byte) {
	for len(data) >= 16 {
		var b [16]byte
		copy(b[:], data[:16])
		g.Block(&b)
		data = data[16:]
	}
	if len(data) > 0 {
		var b [16]byte
		copy(b[:], data)
		g.Block(&b)
	}
}

// Lengths absorbs the final 64||64-bit big-endian bit-length block,
// ⌈len(A)⌉_64 ∥ ⌈len(C)⌉_64, and returns the finished digest.
func (g *GHASH) Lengths(aadLen, ctLen int) [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], uint64(aadLen)<<3)
	binary.BigEndian.PutUint64(b[8:16], uint64(ctLen)<<3)
	g.Block(&b)
	return g.state
}

// Sum computes GHASH_H(A, C) in one call: absorb A padded, absorb C
// padded, absorb the length block, return the digest. It does not mutate
// any state held by the caller beyond what's returned.
func Sum(h [16]byte, aad, ciphertext []byte) [16]byte {
	g := New(h)
	g.Write(aad)
	g.Write(ciphertext)
	return g.Lengths(len(aad), len(ciphertext))
}
