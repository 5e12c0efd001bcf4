package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT with the accessors the authentication flow needs.
//
// It embeds [jwt.Token] for signing and parsing and [jwt.RegisteredClaims]
// for the standard claim set. SignedString is the compact form sent to the
// client and UserID is the parsed "sub" claim.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	SignedString string `json:"-"`

	UserID int64 `json:"-"`
}

// GetUserID parses the "sub" claim as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// IssuedBefore reports whether the token was issued before moment. Tokens
// without an "iat" claim are treated as issued before anything. The claim
// has second precision, so moment is truncated to whole seconds.
func (t *Token) IssuedBefore(moment time.Time) bool {
	if t.IssuedAt == nil {
		return true
	}
	return t.IssuedAt.Time.Before(moment.Truncate(time.Second))
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
