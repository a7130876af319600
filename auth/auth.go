// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

var ErrInvalidToken = errors.New("invalid token format")

// sessionTokenBytes is 192 bits of entropy.
const sessionTokenBytes = 24

// GenerateSessionToken creates a random secure token for a login session.
// Only the client sees it; the database stores HashToken(token).
func GenerateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	// URL-safe base64 without padding
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidateTokenFormat rejects strings that GenerateSessionToken could not
// have produced, so junk never reaches the database.
func ValidateTokenFormat(token string) error {
	if len(token) != base64.RawURLEncoding.EncodedLen(sessionTokenBytes) {
		return ErrInvalidToken
	}
	if _, err := base64.RawURLEncoding.DecodeString(token); err != nil {
		return ErrInvalidToken
	}
	return nil
}

// HashToken creates a one-way hash of a session token for storage
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
