// Package gcm implements SM4-GCM: Galois/Counter Mode authenticated
// encryption (NIST SP 800-38D) built over the sm4 block cipher, using
// ghash/gf128 for the authentication tag. A Cipher is derived once from a
// 128-bit key and reused across many Seal/Open calls with distinct IVs,
// mirroring the teacher's persistent gcm context rather than a one-shot
// init/update/final phase split.
package gcm

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gmsec/sm4gcm/base"
	"github.com/gmsec/sm4gcm/ghash"
	"github.com/gmsec/sm4gcm/sm4"
)

// maxPlaintextBytes is GCM's length limit, 2^39-256 bits, expressed in
// bytes; it coincides with the point at which the 32-bit block counter
// would need more than 2^32-2 increments.
const maxPlaintextBytes = (int64(1) << 36) - 32

// Cipher is an SM4-GCM context bound to one 128-bit key. It derives the
// round-key schedule and hash subkey H once at construction and reuses
// them across every subsequent Seal/Open call; each call's counter and
// GHASH state are local to that call.
type Cipher struct {
	variant sm4.Variant
	blk     *sm4.Cipher
	h       [16]byte

	tagLen              int
	rejectNonStandardIV bool
	accelerated         bool
	logger              *zap.SugaredLogger
}

// NewCipher derives a Cipher from a 16-byte key, computing SM4 block
// operations with the given Variant (see sm4.Variant — any of the three
// realizations may be chosen; all are required to agree).
func NewCipher(key []byte, variant sm4.Variant, settings *Settings) (*Cipher, error) {
	blk, err := sm4.New(key, variant)
	if err != nil {
		return nil, err
	}

	var zero, h [16]byte
	blk.Encrypt(h[:], zero[:])

	rs := resolveSettings(settings)
	if rs.tagLen < 1 || rs.tagLen > 16 {
		return nil, fmt.Errorf("sm4gcm: default tag length %d: %w", rs.tagLen, base.ErrInvalidTagLen)
	}

	c := &Cipher{
		variant:             variant,
		blk:                 blk,
		h:                   h,
		tagLen:              rs.tagLen,
		rejectNonStandardIV: rs.rejectNonStandardIV,
		accelerated:         rs.accelerated,
		logger:              rs.logger,
	}

	if c.logger != nil {
		c.logger.Debugw("sm4gcm cipher constructed", "op", uuid.NewString(), "variant", variant.String())
	}
	return c, nil
}

// Close zeroizes the round-key schedule and hash subkey. Call it when the
// Cipher is no longer needed.
func (c *Cipher) Close() {
	c.blk.Zero()
	base.Zero(c.h[:])
}

// Seal encrypts plaintext under iv and authenticates it together with
// aad, returning ciphertext (same length as plaintext) and a tag of
// tagLen bytes. Passing tagLen=0 uses the Cipher's configured default
// (16 unless overridden by Settings.TagLen).
func (c *Cipher) Seal(iv, aad, plaintext []byte, tagLen int) (ciphertext, tag []byte, err error) {
	if tagLen == 0 {
		tagLen = c.tagLen
	}
	if tagLen < 1 || tagLen > 16 {
		return nil, nil, fmt.Errorf("sm4gcm: tag length %d: %w", tagLen, base.ErrInvalidTagLen)
	}
	if int64(len(plaintext)) > maxPlaintextBytes {
		return nil, nil, fmt.Errorf("sm4gcm: plaintext length %d: %w", len(plaintext), base.ErrInputTooLong)
	}

	j0, err := c.deriveJ0(iv)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = make([]byte, len(plaintext))
	c.ctrXOR(j0, ciphertext, plaintext)

	full := c.computeTag(j0, aad, ciphertext)
	tag = append([]byte(nil), full[:tagLen]...)
	base.Zero(full[:])

	if c.logger != nil {
		c.logger.Debugw("sm4gcm seal", "op", uuid.NewString(), "variant", c.variant.String(),
			"plaintext_len", len(plaintext), "aad_len", len(aad), "tag_len", tagLen)
		c.logger.Debug(base.LogHex("j0", j0[:]))
	}
	return ciphertext, tag, nil
}

// Open verifies tag against aad and ciphertext under iv, and only on
// success decrypts and returns the plaintext. No plaintext buffer is
// allocated or written before verification succeeds — the ordering this
// package's decrypt path must honor, since the source this was built from
// interleaves decryption with the hash update instead.
func (c *Cipher) Open(iv, aad, ciphertext, tag []byte) (plaintext []byte, err error) {
	tagLen := len(tag)
	if tagLen < 1 || tagLen > 16 {
		return nil, fmt.Errorf("sm4gcm: tag length %d: %w", tagLen, base.ErrInvalidTagLen)
	}
	if int64(len(ciphertext)) > maxPlaintextBytes {
		return nil, fmt.Errorf("sm4gcm: ciphertext length %d: %w", len(ciphertext), base.ErrInputTooLong)
	}

	j0, err := c.deriveJ0(iv)
	if err != nil {
		return nil, err
	}

	full := c.computeTag(j0, aad, ciphertext)
	defer base.Zero(full[:])

	if subtle.ConstantTimeCompare(full[:tagLen], tag) != 1 {
		if c.logger != nil {
			c.logger.Debugw("sm4gcm auth failure", "op", uuid.NewString(), "aad_len", len(aad), "ciphertext_len", len(ciphertext))
		}
		return nil, fmt.Errorf("sm4gcm: %w", base.ErrAuthFailure)
	}

	plaintext = make([]byte, len(ciphertext))
	c.ctrXOR(j0, plaintext, ciphertext)

	if c.logger != nil {
		c.logger.Debugw("sm4gcm open", "op", uuid.NewString(), "ciphertext_len", len(ciphertext))
		c.logger.Debug(base.LogHex("j0", j0[:]))
	}
	return plaintext, nil
}

// computeTag runs GHASH over aad||ciphertext and masks it with E_K(J0),
// the shared tail of both Seal and Open.
func (c *Cipher) computeTag(j0 [16]byte, aad, ciphertext []byte) [16]byte {
	g := c.newGHASH()
	defer g.Zero()
	g.Write(aad)
	g.Write(ciphertext)
	y := g.Lengths(len(aad), len(ciphertext))

	var ekj0, full [16]byte
	c.blk.Encrypt(ekj0[:], j0[:])
	for i := range full {
		full[i] = y[i] ^ ekj0[i]
	}
	base.Zero(ekj0[:])
	return full
}

func (c *Cipher) newGHASH() *ghash.GHASH {
	if c.accelerated {
		return ghash.NewAccelerated(c.h)
	}
	return ghash.New(c.h)
}

// deriveJ0 computes the initial counter block per §3: the 12-byte fast
// path (IV || 0x00000001), or the general NIST SP 800-38D path
// (GHASH_H(IV padded || 0^64 || len64(IV))) for any other length, unless
// the Cipher was configured to reject non-standard IVs.
func (c *Cipher) deriveJ0(iv []byte) ([16]byte, error) {
	if len(iv) == 0 {
		return [16]byte{}, fmt.Errorf("sm4gcm: empty iv: %w", base.ErrInvalidNonce)
	}
	if len(iv) == 12 {
		var j0 [16]byte
		copy(j0[:12], iv)
		j0[15] = 1
		return j0, nil
	}
	if c.rejectNonStandardIV {
		return [16]byte{}, fmt.Errorf("sm4gcm: iv length %d, only 12-byte ivs accepted: %w", len(iv), base.ErrInvalidNonce)
	}

	g := c.newGHASH()
	defer g.Zero()
	g.Write(iv)
	return g.Lengths(0, len(iv)), nil
}

// ctrXOR runs the CTR keystream starting at S_1 = E_K(inc32(J0)), the
// block index the encrypt/decrypt algorithm in §4.5 steps from; S_0 =
// E_K(J0) is reserved for the tag mask and is never produced here.
func (c *Cipher) ctrXOR(j0 [16]byte, dst, src []byte) {
	ctr := j0
	var ks [16]byte
	defer base.Zero(ks[:])
	for len(src) > 0 {
		incCounter32(&ctr)
		c.blk.Encrypt(ks[:], ctr[:])
		n := len(src)
		if n > 16 {
			n = 16
		}
		for i := 0; i < n; i++ {
			dst[i] = src[i] ^ ks[i]
		}
		src = src[n:]
		dst = dst[n:]
	}
}

// incCounter32 increments only the low 32 bits (bytes 12..15) of the
// counter block, wrapping modulo 2^32 — a definite unsigned increment,
// fixing the signed-index decrement bug noted in the source this design
// was drawn from.
func incCounter32(b *[16]byte) {
	v := binary.BigEndian.Uint32(b[12:16])
	v++
	binary.BigEndian.PutUint32(b[12:16], v)
}
