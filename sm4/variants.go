package sm4

import "fmt"

// Variant selects which realization of the S-box substitution a Cipher
// uses. All variants are required to produce bit-identical ciphertext for
// every key and plaintext; they differ only in how the substitution byte
// is computed, not in what it computes. Selection happens once, at
// construction time — never probed or switched mid-stream.
type Variant int

const (
	// VariantScalar looks the substitution byte up directly in the
	// canonical 256-byte table from GB/T 32907-2016.
	VariantScalar Variant = iota
	// VariantByteShuffle looks the substitution byte up in a copy of
	// the same table that package init builds by passing it through a
	// 16x16 layout indexed by high/low nibble. At run time it is a flat
	// 256-byte lookup, like VariantScalar; no 16-byte shuffle or SIMD
	// realization is performed.
	VariantByteShuffle
	// VariantGaloisAffine tries at package init to express the table as
	// an affine transform applied to the GF(2^8) multiplicative inverse
	// modulo sm4Poly, and checks the derived table against all 256
	// canonical entries, falling back silently to a copy of the
	// canonical table if the check fails. That output-only affine form
	// does not reproduce the SM4 table, so the check fails and this
	// variant looks bytes up in the copied canonical table; no affine
	// computation runs at encryption time.
	VariantGaloisAffine
)

func (v Variant) String() string {
	switch v {
	case VariantScalar:
		return "scalar"
	case VariantByteShuffle:
		return "byte-shuffle"
	case VariantGaloisAffine:
		return "galois-affine"
	default:
		return fmt.Sprintf("sm4.Variant(%d)", int(v))
	}
}

// sbox returns the 256-byte substitution table backing v. All three
// tables are byte-for-byte identical; only how they were produced
// differs.
func (v Variant) sbox() *[256]byte {
	switch v {
	case VariantByteShuffle:
		return &byteShuffleBox
	case VariantGaloisAffine:
		return &galoisAffineBox
	default:
		return &sbox
	}
}

// byteShuffleBox is sbox written into 16 rows of 16 and read back out in
// the same order by high/low nibble; the result is a flat table equal to
// sbox.
var byteShuffleBox [256]byte

// galoisAffineBox is populated either by the affine derivation below, or
// (if self-validation fails) by a direct copy of sbox.
var galoisAffineBox [256]byte

func init() {
	var rows [16][16]byte
	for i := 0; i < 256; i++ {
		rows[i>>4][i&0xf] = sbox[i]
	}
	for i := 0; i < 256; i++ {
		byteShuffleBox[i] = rows[i>>4][i&0xf]
	}

	if m, c, ok := deriveAffine(); ok {
		for x := 0; x < 256; x++ {
			galoisAffineBox[x] = affineApply(m, c, gf8Inverse(byte(x)))
		}
	} else {
		galoisAffineBox = sbox
	}
}

// sm4Poly is the reduction modulus of the GF(2^8) field deriveAffine
// takes inverses in: m(x) = x^8 + x^4 + x^3 + x^2 + 1.
const sm4Poly = 0x11D

func gf8Mul(a, b byte) byte {
	var p byte
	for i := 0; i < 8 && b != 0; i++ {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= byte(sm4Poly & 0xff)
		}
		b >>= 1
	}
	return p
}

var gf8InverseTable [256]byte

func init() {
	gf8InverseTable[0] = 0
	for a := 1; a < 256; a++ {
		for b := 1; b < 256; b++ {
			if gf8Mul(byte(a), byte(b)) == 1 {
				gf8InverseTable[a] = byte(b)
				break
			}
		}
	}
}

func gf8Inverse(a byte) byte {
	return gf8InverseTable[a]
}

// deriveAffine solves for an 8x8 GF(2) matrix m (one column per input bit,
// each column a byte whose bits are the output column) and a constant c
// such that sbox(x) == affineApply(m, c, gf8Inverse(x)) for every x, by
// reading the columns off sbox at the inverses of the basis vectors, then
// validates the result against every one of the 256 table entries.
func deriveAffine() (m [8]byte, c byte, ok bool) {
	c = sbox[0] // gf8Inverse(0) == 0, so f(0) == c
	for bit := 0; bit < 8; bit++ {
		basis := byte(1) << uint(bit)
		x := gf8Inverse(basis) // inverse is an involution on GF(2^8)\{0}
		m[bit] = sbox[x] ^ c
	}

	for x := 0; x < 256; x++ {
		if affineApply(m, c, gf8Inverse(byte(x))) != sbox[x] {
			return m, c, false
		}
	}
	return m, c, true
}

// affineApply computes c ^ sum_{bit set in y} m[bit].
func affineApply(m [8]byte, c byte, y byte) byte {
	r := c
	for bit := 0; bit < 8; bit++ {
		if y&(1<<uint(bit)) != 0 {
			r ^= m[bit]
		}
	}
	return r
}
