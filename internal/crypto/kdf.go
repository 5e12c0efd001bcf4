// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Sizes of every piece of key material handled by this package.
const (
	// KeySize is the length of both the FEK and the KEK (AES-256).
	KeySize = 32
	// SaltSize is the length of the per-user KDF salt.
	SaltSize = 16
	// NonceSize is the AES-GCM nonce length used for wrapping and for objects.
	NonceSize = 12
	// TagSize is the AES-GCM authentication tag length.
	TagSize = 16
	// ObjectOverhead is how many bytes EncryptObject adds to a plaintext.
	ObjectOverhead = NonceSize + TagSize

	// KDFIterations is the fixed PBKDF2 work factor. Changing it makes every
	// stored wrapping unreadable, so it is not configurable.
	KDFIterations = 100_000
)

// DeriveKEK stretches secret with salt into a 32-byte key-encryption key
// using PBKDF2-HMAC-SHA256 with [KDFIterations] rounds.
//
// The derivation is deterministic: the same secret and salt always produce
// the same KEK, which is what lets a login re-derive the key without storing
// anything besides the salt. An empty secret or a salt that is not exactly
// [SaltSize] bytes is rejected with [ErrInvalidKeyMaterial].
func DeriveKEK(secret, salt []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty secret", ErrInvalidKeyMaterial)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrInvalidKeyMaterial, SaltSize, len(salt))
	}

	return pbkdf2.Key(secret, salt, KDFIterations, KeySize, sha256.New), nil
}
