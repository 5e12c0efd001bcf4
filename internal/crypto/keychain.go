// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// keyChainService is the private implementation of [KeyChainService]. It
// delegates to the package-level primitives and only adds random generation.
type keyChainService struct {
	random io.Reader
}

// NewKeyChainService constructs a [KeyChainService] that draws randomness
// from crypto/rand.
func NewKeyChainService() KeyChainService {
	return &keyChainService{random: rand.Reader}
}

func (k *keyChainService) randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(k.random, b); err != nil {
		return nil, fmt.Errorf("read %d random bytes: %w", n, err)
	}
	return b, nil
}

// GenerateSalt implements [KeyChainService].
func (k *keyChainService) GenerateSalt() ([]byte, error) {
	return k.randomBytes(SaltSize)
}

// GenerateIV implements [KeyChainService].
func (k *keyChainService) GenerateIV() ([]byte, error) {
	return k.randomBytes(NonceSize)
}

// GenerateFEK implements [KeyChainService].
func (k *keyChainService) GenerateFEK() ([]byte, error) {
	return k.randomBytes(KeySize)
}

// DeriveKEK implements [KeyChainService] on top of the package-level
// [DeriveKEK]. The password is used as its UTF-8 bytes.
func (k *keyChainService) DeriveKEK(secret string, salt []byte) ([]byte, error) {
	return DeriveKEK([]byte(secret), salt)
}

// WrapFEK implements [KeyChainService]. No associated data is bound, so the
// stored {salt, iv, wrappedFEK} triple is all that is needed to unwrap.
func (k *keyChainService) WrapFEK(fek, kek, iv []byte) ([]byte, error) {
	return WrapFEK(fek, kek, iv, nil)
}

// UnwrapFEK implements [KeyChainService].
func (k *keyChainService) UnwrapFEK(wrapped, kek, iv []byte) ([]byte, error) {
	return UnwrapFEK(wrapped, kek, iv, nil)
}

// EncryptObject implements [KeyChainService].
func (k *keyChainService) EncryptObject(plaintext, fek []byte) ([]byte, error) {
	return EncryptObject(plaintext, fek)
}

// DecryptObject implements [KeyChainService].
func (k *keyChainService) DecryptObject(blob, fek []byte) ([]byte, error) {
	return DecryptObject(blob, fek)
}
