package base

import "errors"

// ErrInvalidKey is returned when a key does not match the cipher's required size.
var ErrInvalidKey = errors.New("invalid key length")

// ErrInvalidNonce is returned when an IV/nonce is empty, or non-standard length
// while the caller asked for strict 12-byte-only nonces.
var ErrInvalidNonce = errors.New("invalid nonce")

// ErrInvalidTagLen is returned when a requested authentication tag length
// falls outside [1,16] bytes.
var ErrInvalidTagLen = errors.New("invalid tag length")

// ErrInputTooLong is returned when plaintext, ciphertext or AAD exceeds the
// length bounds an AEAD construction can authenticate safely.
var ErrInputTooLong = errors.New("input exceeds maximum length")

// ErrAuthFailure is returned by Open when the authentication tag does not
// match; no plaintext is released when this error is returned.
var ErrAuthFailure = errors.New("message authentication failed")
