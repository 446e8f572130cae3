package gf128

import (
	"encoding/hex"
	"testing"
)

// one is the multiplicative identity of the GCM field in its bit-reversed
// representation: bit 0 of byte 0 is the coefficient of x^0, so "1" is the
// single high bit of the first byte.
var one = [16]byte{0x80}

func TestMulIdentity(t *testing.T) {
	xs := [][16]byte{
		mustBlock(t, "66e94bd4ef8a2c3b884cfa59ca342b2e"),
		mustBlock(t, "00000000000000000000000000000001"[:32]),
		mustBlock(t, "ffffffffffffffffffffffffffffffff"),
	}
	for _, x := range xs {
		got := Mul(x, one)
		if got != x {
			t.Fatalf("Mul(x, 1) = %x, want %x", got, x)
		}
		got = Mul(one, x)
		if got != x {
			t.Fatalf("Mul(1, x) = %x, want %x", got, x)
		}
	}
}

func TestMulCommutative(t *testing.T) {
	a := mustBlock(t, "66e94bd4ef8a2c3b884cfa59ca342b2e")
	b := mustBlock(t, "0388dace60b6a392f328c2b971b2fe78")
	if Mul(a, b) != Mul(b, a) {
		t.Fatalf("GF(2^128) multiplication must be commutative")
	}
}

func TestZeroAnnihilates(t *testing.T) {
	var zero [16]byte
	x := mustBlock(t, "66e94bd4ef8a2c3b884cfa59ca342b2e")
	if Mul(x, zero) != zero {
		t.Fatalf("Mul(x, 0) must be 0")
	}
}

// Table.Mul must agree with Mul on every sample, bit for bit - it's an
// accelerated realization of the same multiply, not a different one.
func TestTableAgreesWithMul(t *testing.T) {
	h := mustBlock(t, "66e94bd4ef8a2c3b884cfa59ca342b2e")
	tbl := Precompute(h)

	samples := [][16]byte{
		mustBlock(t, "0388dace60b6a392f328c2b971b2fe78"),
		mustBlock(t, "ffffffffffffffffffffffffffffffff"),
		{},
		one,
	}
	for _, x := range samples {
		want := Mul(h, x)
		got := tbl.Mul(x)
		if got != want {
			t.Fatalf("Table.Mul(%x) = %x, want %x", x, got, want)
		}
	}
}

func mustBlock(t *testing.T, s string) [16]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex literal %q: %v", s, err)
	}
	var out [16]byte
	if len(b) != 16 {
		t.Fatalf("literal %q is not 16 bytes", s)
	}
	copy(out[:], b)
	return out
}

func BenchmarkMul(b *testing.B) {
	x := [16]byte{0x66, 0xe9, 0x4b, 0xd4, 0xef, 0x8a, 0x2c, 0x3b, 0x88, 0x4c, 0xfa, 0x59, 0xca, 0x34, 0x2b, 0x2e}
	y := [16]byte{0x03, 0x88, 0xda, 0xce, 0x60, 0xb6, 0xa3, 0x92, 0xf3, 0x28, 0xc2, 0xb9, 0x71, 0xb2, 0xfe, 0x78}
	b.SetBytes(16)
	for i := 0; i < b.N; i++ {
		y = Mul(x, y)
	}
}

func BenchmarkTableMul(b *testing.B) {
	h := [16]byte{0x66, 0xe9, 0x4b, 0xd4, 0xef, 0x8a, 0x2c, 0x3b, 0x88, 0x4c, 0xfa, 0x59, 0xca, 0x34, 0x2b, 0x2e}
	tbl := Precompute(h)
	x := [16]byte{0x03, 0x88, 0xda, 0xce, 0x60, 0xb6, 0xa3, 0x92, 0xf3, 0x28, 0xc2, 0xb9, 0x71, 0xb2, 0xfe, 0x78}
	b.SetBytes(16)
	for i := 0; i < b.N; i++ {
		x = tbl.Mul(x)
	}
}
