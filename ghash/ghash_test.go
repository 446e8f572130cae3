package ghash

import (
	"encoding/hex"
	"testing"
)

// Test case 2 from the original McGrew/Viega GCM specification: H is the
// AES-128 encryption of the all-zero block under a zero key, no AAD, a
// single all-zero ciphertext block.
func TestSumKnownVector(t *testing.T) {
	h := mustBlock(t, "66e94bd4ef8a2c3b884cfa59ca342b2e")
	ct := mustBytes(t, "0388dace60b6a392f328c2b971b2fe78")

	got := Sum(h, nil, ct)
	want := mustBlock(t, "f38cbb1ad69223dcc3457ae5b6b0f885")
	if got != want {
		t.Fatalf("Sum = %x, want %x", got, want)
	}
}

func TestEmptyMessageEmptyAAD(t *testing.T) {
	var h [16]byte
	h[0] = 1
	got := Sum(h, nil, nil)
	var want [16]byte
	if got != want {
		t.Fatalf("Sum(h, nil, nil) = %x, want all-zero", got)
	}
}

func TestAcceleratedAgreesWithReference(t *testing.T) {
	h := mustBlock(t, "66e94bd4ef8a2c3b884cfa59ca342b2e")
	aad := mustBytes(t, "feedfacedeadbeeffeedfacedeadbeefabaddad2")
	ct := mustBytes(t, "42831ec2217774244b7221b784d0d49ce3aa212f2c02a4e035c17e2329aca12e")

	ref := New(h)
	ref.Write(aad)
	ref.Write(ct)
	wantDigest := ref.Lengths(len(aad), len(ct))

	acc := NewAccelerated(h)
	acc.Write(aad)
	acc.Write(ct)
	gotDigest := acc.Lengths(len(aad), len(ct))

	if gotDigest != wantDigest {
		t.Fatalf("accelerated GHASH = %x, want %x", gotDigest, wantDigest)
	}
}

func TestResetAllowsReuse(t *testing.T) {
	h := mustBlock(t, "66e94bd4ef8a2c3b884cfa59ca342b2e")
	ct := mustBytes(t, "0388dace60b6a392f328c2b971b2fe78")

	g := New(h)
	g.Write(ct)
	first := g.Lengths(0, len(ct))

	g.Reset()
	g.Write(ct)
	second := g.Lengths(0, len(ct))

	if first != second {
		t.Fatalf("Reset did not produce a clean restart: %x != %x", first, second)
	}
}

func mustBlock(t *testing.T, s string) [16]byte {
	t.Helper()
	b := mustBytes(t, s)
	if len(b) != 16 {
		t.Fatalf("literal %q is not 16 bytes", s)
	}
	var out [16]byte
	copy(out[:], b)
	return out
}

func mustBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex literal %q: %v", s, err)
	}
	return b
}
