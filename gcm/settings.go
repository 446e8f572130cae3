package gcm

import (
	"go.uber.org/zap"
	"k8s.io/utils/ptr"
)

// defaultTagLen is the tag length used when Settings.TagLen is nil and a
// call to Seal doesn't override it with an explicit tagLen.
const defaultTagLen = 16

// Settings configures a Cipher's optional behavior. A nil Settings (or a
// Settings with every field left nil) gets the library defaults: 16-byte
// tags, general (non-12-byte) IV support per NIST SP 800-38D, constant-time
// GHASH, and no logging. Optional fields follow the teacher's
// k8s.io/utils/ptr convention for "unset" vs. "explicitly false/zero".
type Settings struct {
	// Logger receives debug-level logging at context construction, on
	// auth failure, and a hex dump of J0 (the public initial counter
	// block, derived from the IV) on every successful Seal/Open. Never logs key
	// material, keystream, plaintext, or ciphertext. A nil Logger
	// disables logging entirely; logging is never on the per-block hot
	// path.
	Logger *zap.SugaredLogger

	// TagLen is the default authentication tag length in bytes, used
	// by Seal when its own tagLen argument is 0. Must be in [1,16] if
	// set. Defaults to 16.
	TagLen *int

	// RejectNonStandardIV, when true, restricts J0 derivation to the
	// 12-byte fast path and returns ErrInvalidNonce for any other IV
	// length instead of running the general GHASH-derived path.
	RejectNonStandardIV *bool

	// Accelerated selects gf128's 4-bit windowed table multiplier for
	// GHASH instead of the constant-time bit-serial reference. Faster,
	// but NOT constant-time (see gf128.Table) — opt-in only.
	Accelerated *bool
}

type resolvedSettings struct {
	logger              *zap.SugaredLogger
	tagLen              int
	rejectNonStandardIV bool
	accelerated         bool
}

func resolveSettings(s *Settings) resolvedSettings {
	if s == nil {
		return resolvedSettings{tagLen: defaultTagLen}
	}
	return resolvedSettings{
		logger:              s.Logger,
		tagLen:              ptr.Deref(s.TagLen, defaultTagLen),
		rejectNonStandardIV: ptr.Deref(s.RejectNonStandardIV, false),
		accelerated:         ptr.Deref(s.Accelerated, false),
	}
}
