package sm4

import (
	"crypto/cipher"

	"github.com/gmsec/sm4gcm/base"
)

// Cipher is an SM4 cipher.Block bound to one key and one Variant. It
// caches the expanded round-key schedule so repeated Encrypt/Decrypt calls
// don't re-run key expansion per block.
type Cipher struct {
	variant Variant
	rk      RoundKeys
}

var _ cipher.Block = (*Cipher)(nil)

// New returns an SM4 cipher.Block for key, computing the substitution
// bytes with the given Variant. key must be exactly KeySize bytes.
func New(key []byte, variant Variant) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, base.ErrInvalidKey
	}
	var kb [KeySize]byte
	copy(kb[:], key)
	c := &Cipher{
		variant: variant,
		rk:      ExpandKey(variant, &kb),
	}
	base.Zero(kb[:])
	return c, nil
}

// BlockSize implements cipher.Block.
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt implements cipher.Block. dst and src must either fully overlap
// or not overlap at all.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("sm4: input not full block")
	}
	if len(dst) < BlockSize {
		panic("sm4: output not full block")
	}
	EncryptBlock(c.variant, &c.rk, dst, src)
}

// Decrypt implements cipher.Block. dst and src must either fully overlap
// or not overlap at all.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("sm4: input not full block")
	}
	if len(dst) < BlockSize {
		panic("sm4: output not full block")
	}
	DecryptBlock(c.variant, &c.rk, dst, src)
}

// Variant reports which S-box realization this Cipher was constructed
// with.
func (c *Cipher) Variant() Variant { return c.variant }

// Zero scrubs the cached round-key schedule. Call it when the Cipher is
// no longer needed; callers that hold the original key bytes separately
// must zero those themselves (New already zeroes its own copy).
func (c *Cipher) Zero() {
	for i := range c.rk {
		c.rk[i] = 0
	}
}
