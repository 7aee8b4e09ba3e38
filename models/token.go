package models

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSubject is returned when a token carries no "sub" claim.
var ErrNoSubject = errors.New("token has no subject")

// Token wraps a signed JWT. The "sub" claim is the account ID that owns vaults
// on the server and is recorded in vault bindings on the client.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact header.payload.signature form.
	SignedString string `json:"-"`

	// UserID caches the parsed "sub" claim.
	UserID string `json:"-"`
}

// GetUserID returns the account ID from the "sub" claim.
func (t *Token) GetUserID() (string, error) {
	if t.UserID != "" {
		return t.UserID, nil
	}
	sub, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting UserID from token: %w", err)
	}
	if sub == "" {
		return "", ErrNoSubject
	}
	return sub, nil
}

func (t *Token) String() string {
	return t.SignedString
}
