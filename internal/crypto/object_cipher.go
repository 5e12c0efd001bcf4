// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// EncryptObject seals plaintext under fek and returns IV ‖ ciphertext ‖ tag.
// The 12-byte IV is drawn from crypto/rand on every call and there is no way
// to pass one in, so nonce reuse under the same FEK cannot be requested.
func EncryptObject(plaintext, fek []byte) ([]byte, error) {
	gcm, err := newGCM(fek)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize, NonceSize+len(plaintext)+TagSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// DecryptObject opens a blob produced by [EncryptObject]. Blobs shorter than
// [ObjectOverhead] are rejected with [ErrFormat] before any decryption is
// attempted; a failed tag check yields [ErrIntegrity].
func DecryptObject(blob, fek []byte) ([]byte, error) {
	if len(blob) < ObjectOverhead {
		return nil, fmt.Errorf("%w: blob is %d bytes, need at least %d", ErrFormat, len(blob), ObjectOverhead)
	}

	gcm, err := newGCM(fek)
	if err != nil {
		return nil, err
	}

	nonce, sealed := blob[:NonceSize], blob[NonceSize:]

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decrypt object", ErrIntegrity)
	}
	if plaintext == nil {
		plaintext = []byte{}
	}

	return plaintext, nil
}
