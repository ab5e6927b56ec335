package agekey

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojsef39/opsops/internal/errs"
)

func TestGenerate(t *testing.T) {
	pair, err := Generate()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(pair.PrivateKey, SecretKeyPrefix))
	assert.True(t, strings.HasPrefix(pair.PublicKey, "age1"))

	pub, err := PublicKey(pair.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, pair.PublicKey, pub)
}

func TestGenerate_Unique(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)

	assert.NotEqual(t, a.PrivateKey, b.PrivateKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "valid prefix", key: "AGE-SECRET-KEY-1ABC", wantErr: false},
		{name: "empty", key: "", wantErr: true},
		{name: "public key", key: "age1ql3z7hjy54pw3hyww5ayyfg7zqgvc7w3j2elw8zmrj2kg5sfn9aqmcac8p", wantErr: true},
		{name: "lowercase prefix", key: "age-secret-key-1abc", wantErr: true},
		{name: "leading space", key: " AGE-SECRET-KEY-1ABC", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrInvalidFormat)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPublicKey_Invalid(t *testing.T) {
	_, err := PublicKey("not-a-key")
	assert.ErrorIs(t, err, errs.ErrInvalidFormat)

	_, err = PublicKey(SecretKeyPrefix + "1GARBAGE")
	assert.ErrorIs(t, err, errs.ErrInvalidFormat)
}

func TestMask(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "short", key: "abc", want: "***"},
		{name: "exactly head plus tail", key: strings.Repeat("x", 22), want: strings.Repeat("*", 22)},
		{
			name: "age key shape",
			key:  "AGE-SECRET-KEY-1234567890ABCDEFG",
			want: "AGE-SECRET-KEY-" + strings.Repeat("*", 10) + "ABCDEFG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mask(tt.key)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(tt.key))
		})
	}
}

func TestIdentity(t *testing.T) {
	pair, err := Generate()
	require.NoError(t, err)

	id, err := NewIdentity(pair.PrivateKey + "\n")
	require.NoError(t, err)

	revealed, err := id.Reveal()
	require.NoError(t, err)
	assert.Equal(t, pair.PrivateKey, revealed)

	pub, err := id.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, pair.PublicKey, pub)

	assert.Equal(t, Mask(pair.PrivateKey), id.Masked())
	assert.NotContains(t, fmt.Sprintf("%v", id), pair.PrivateKey)
	assert.NotContains(t, fmt.Sprintf("%s", id), pair.PrivateKey)
}

func TestNewIdentity_RejectsNonAgeSecret(t *testing.T) {
	_, err := NewIdentity("hunter2")
	assert.ErrorIs(t, err, errs.ErrInvalidFormat)
}
