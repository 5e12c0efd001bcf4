// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

// Sentinel errors returned by the key derivation, envelope and object cipher
// functions. Callers match them with [errors.Is]; none of them is transient,
// so an operation failing with one of these must not be retried with the
// same inputs.
var (
	// ErrInvalidKeyMaterial is returned when a secret, salt, key or IV has
	// the wrong shape before any cryptographic work is attempted (empty
	// secret, salt that is not 16 bytes, key that is not 32 bytes, ...).
	ErrInvalidKeyMaterial = errors.New("invalid key material")

	// ErrFormat is returned when a wrapped key or an encrypted object blob
	// is too short to contain the mandatory nonce and authentication tag.
	ErrFormat = errors.New("malformed ciphertext")

	// ErrIntegrity is returned when AES-GCM tag verification fails: wrong
	// key, corrupted bytes or deliberate tampering. No plaintext is ever
	// returned together with this error.
	ErrIntegrity = errors.New("ciphertext authentication failed")
)
