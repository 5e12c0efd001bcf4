// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// KeyMaterial is the persisted envelope of a user's file-encryption key.
//
// All three fields are standard base64 and always travel together: the
// salt feeds the KDF, the IV was used to wrap, and WrappedFEK is the
// AES-GCM ciphertext ‖ tag of the 32-byte FEK. None of them is secret on
// its own; without the user's password they reveal nothing about the FEK.
type KeyMaterial struct {
	// KEKSalt is the 16-byte PBKDF2 salt.
	KEKSalt string `json:"kek_salt"`

	// WrapIV is the 12-byte AES-GCM nonce used for wrapping.
	WrapIV string `json:"wrap_iv"`

	// WrappedFEK is ciphertext ‖ tag (48 bytes once decoded).
	WrappedFEK string `json:"wrapped_fek"`
}

// IsZero reports whether no key material has been provisioned yet.
func (k KeyMaterial) IsZero() bool {
	return k.KEKSalt == "" && k.WrapIV == "" && k.WrappedFEK == ""
}

// User is an account of the file keeper.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// Name is the display name of the user.
	Name string `json:"name,omitempty"`

	// Password is the plaintext secret as received from the client.
	// It is only ever populated on input and is cleared before a user is
	// returned from the service layer.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash used for authentication.
	PasswordHash string `json:"-"`

	// Keys is the wrapped FEK of the user.
	Keys KeyMaterial `json:"-"`

	// PasswordChangedAt is set on every successful password change. Tokens
	// issued before this moment are no longer accepted.
	PasswordChangedAt *time.Time `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
