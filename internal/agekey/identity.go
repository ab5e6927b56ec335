package agekey

import (
	"strings"

	"github.com/awnumar/memguard"
)

// Identity holds a validated private key encrypted in memory.
type Identity struct {
	enclave *memguard.Enclave
	masked  string
}

// NewIdentity validates privateKey and seals it. Surrounding whitespace,
// as printed by `op read`, is trimmed first.
func NewIdentity(privateKey string) (*Identity, error) {
	privateKey = strings.TrimSpace(privateKey)
	if err := Validate(privateKey); err != nil {
		return nil, err
	}
	return &Identity{
		enclave: memguard.NewEnclave([]byte(privateKey)),
		masked:  Mask(privateKey),
	}, nil
}

// Reveal returns the plaintext key. Callers should keep the result only as
// long as needed to hand it to a child process.
func (i *Identity) Reveal() (string, error) {
	buf, err := i.enclave.Open()
	if err != nil {
		return "", err
	}
	defer buf.Destroy()
	return string(buf.Bytes()), nil
}

// Masked returns the display-safe form of the key.
func (i *Identity) Masked() string {
	return i.masked
}

// PublicKey derives the recipient string.
func (i *Identity) PublicKey() (string, error) {
	key, err := i.Reveal()
	if err != nil {
		return "", err
	}
	return PublicKey(key)
}

// String never prints the key.
func (i *Identity) String() string {
	return i.masked
}
