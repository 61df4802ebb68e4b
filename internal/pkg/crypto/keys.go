// Package crypto derives purpose-bound keys from the console secret and seals
// small values at rest.
package crypto

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the length of every derived key.
const KeySize = 32

// Purposes passed as HKDF info. Each yields an independent key from the same secret.
const (
	PurposeSessionCookie = "shop-console/session-cookie"
	PurposeTokenSeal     = "shop-console/token-seal"
)

var ErrEmptySecret = errors.New("empty secret")

// DeriveKey derives a KeySize-byte key for purpose from secret using HKDF-SHA256.
func DeriveKey(secret []byte, purpose string) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	h := hkdf.New(sha256.New, secret, nil, []byte(purpose))
	out := make([]byte, KeySize)
	if _, err := io.ReadFull(h, out); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", purpose, err)
	}
	return out, nil
}
