// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// newGCM builds an AES-256-GCM AEAD with the standard 12-byte nonce and
// 16-byte tag.
func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrInvalidKeyMaterial, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}

// WrapFEK encrypts the 32-byte file-encryption key under kek with AES-256-GCM
// and the caller-provided 12-byte iv. The result is ciphertext ‖ tag.
//
// ad is bound as associated data; pass nil to bind nothing. Whatever is
// passed here must be passed to [UnwrapFEK] again.
func WrapFEK(fek, kek, iv, ad []byte) ([]byte, error) {
	if len(fek) != KeySize {
		return nil, fmt.Errorf("%w: FEK must be %d bytes, got %d", ErrInvalidKeyMaterial, KeySize, len(fek))
	}
	if len(iv) != NonceSize {
		return nil, fmt.Errorf("%w: IV must be %d bytes, got %d", ErrInvalidKeyMaterial, NonceSize, len(iv))
	}

	gcm, err := newGCM(kek)
	if err != nil {
		return nil, err
	}

	return gcm.Seal(nil, iv, fek, ad), nil
}

// UnwrapFEK is the inverse of [WrapFEK]. A blob shorter than the tag yields
// [ErrFormat]; a tag that does not verify (wrong KEK, wrong IV, altered
// bytes, different ad) yields [ErrIntegrity]. Nothing is returned on failure.
func UnwrapFEK(wrapped, kek, iv, ad []byte) ([]byte, error) {
	if len(wrapped) < TagSize {
		return nil, fmt.Errorf("%w: wrapped key is %d bytes, need at least %d", ErrFormat, len(wrapped), TagSize)
	}
	if len(iv) != NonceSize {
		return nil, fmt.Errorf("%w: IV must be %d bytes, got %d", ErrFormat, NonceSize, len(iv))
	}

	gcm, err := newGCM(kek)
	if err != nil {
		return nil, err
	}

	fek, err := gcm.Open(nil, iv, wrapped, ad)
	if err != nil {
		return nil, fmt.Errorf("%w: unwrap file key", ErrIntegrity)
	}

	if len(fek) != KeySize {
		return nil, fmt.Errorf("%w: unwrapped key is %d bytes, want %d", ErrFormat, len(fek), KeySize)
	}

	return fek, nil
}
