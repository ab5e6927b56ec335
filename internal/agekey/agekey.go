// Package agekey generates, validates and masks age X25519 keys.
package agekey

import (
	"fmt"
	"strings"

	"filippo.io/age"

	"github.com/ojsef39/opsops/internal/errs"
)

// SecretKeyPrefix starts every age private key.
const SecretKeyPrefix = "AGE-SECRET-KEY-"

const (
	maskHead = 15
	maskTail = 7
)

// Pair is a freshly generated key pair.
type Pair struct {
	PublicKey  string
	PrivateKey string
}

// Generate creates a new X25519 key pair.
func Generate() (Pair, error) {
	id, err := age.GenerateX25519Identity()
	if err != nil {
		return Pair{}, fmt.Errorf("generating age key: %w", err)
	}
	return Pair{PublicKey: id.Recipient().String(), PrivateKey: id.String()}, nil
}

// Validate checks the private key prefix.
func Validate(privateKey string) error {
	if !strings.HasPrefix(privateKey, SecretKeyPrefix) {
		return fmt.Errorf("%w: secret does not look like an age private key (expected %s prefix)", errs.ErrInvalidFormat, SecretKeyPrefix)
	}
	return nil
}

// PublicKey derives the recipient string for privateKey.
func PublicKey(privateKey string) (string, error) {
	if err := Validate(privateKey); err != nil {
		return "", err
	}
	id, err := age.ParseX25519Identity(privateKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrInvalidFormat, err)
	}
	return id.Recipient().String(), nil
}

// Mask hides the middle of key, keeping the first 15 and last 7 characters.
// Keys too short to mask are fully starred.
func Mask(key string) string {
	if len(key) <= maskHead+maskTail {
		return strings.Repeat("*", len(key))
	}
	return key[:maskHead] + strings.Repeat("*", len(key)-maskHead-maskTail) + key[len(key)-maskTail:]
}
