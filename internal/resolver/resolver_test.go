package resolver

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojsef39/opsops/internal/agekey"
	"github.com/ojsef39/opsops/internal/errs"
	"github.com/ojsef39/opsops/internal/logging"
	"github.com/ojsef39/opsops/internal/onepassword"
	"github.com/ojsef39/opsops/internal/runner/runnertest"
	"github.com/ojsef39/opsops/internal/sopsconfig"
)

type staticConfig struct {
	cfg *sopsconfig.Config
	err error
}

func (s staticConfig) ReadOrCreate() (*sopsconfig.Config, error) { return s.cfg, s.err }

type staticSecret struct {
	value string
	err   error
	refs  []string
}

func (s *staticSecret) Read(_ context.Context, ref string) (string, error) {
	s.refs = append(s.refs, ref)
	return s.value, s.err
}

func withReference(ref string) staticConfig {
	cfg := sopsconfig.NewDefault()
	cfg.OnePasswordItem = ref
	return staticConfig{cfg: cfg}
}

func TestResolveDecryptionKey(t *testing.T) {
	pair, err := agekey.Generate()
	require.NoError(t, err)

	secrets := &staticSecret{value: pair.PrivateKey + "\n"}
	r := New(withReference("op://Vault/Item/Field"), secrets, logging.Discard())

	id, err := r.ResolveDecryptionKey(context.Background())
	require.NoError(t, err)

	got, err := id.Reveal()
	require.NoError(t, err)
	assert.Equal(t, pair.PrivateKey, got)
	assert.Equal(t, []string{"op://Vault/Item/Field"}, secrets.refs)
}

func TestResolveDecryptionKey_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		config  staticConfig
		secret  *staticSecret
		wantErr error
	}{
		{
			name:    "config unreadable",
			config:  staticConfig{err: errs.ErrParse},
			secret:  &staticSecret{},
			wantErr: errs.ErrConfigUnreadable,
		},
		{
			name:    "empty reference",
			config:  withReference(""),
			secret:  &staticSecret{},
			wantErr: errs.ErrReferenceMissing,
		},
		{
			name:    "malformed reference",
			config:  withReference("op://Vault/Item"),
			secret:  &staticSecret{},
			wantErr: errs.ErrInvalidFormat,
		},
		{
			name:    "op failure",
			config:  withReference("op://Vault/Item/Field"),
			secret:  &staticSecret{err: boom},
			wantErr: boom,
		},
		{
			name:    "not an age key",
			config:  withReference("op://Vault/Item/Field"),
			secret:  &staticSecret{value: "hunter2"},
			wantErr: errs.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.config, tt.secret, logging.Discard())
			_, err := r.ResolveDecryptionKey(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolveDecryptionKey_ConfigErrorKeepsCause(t *testing.T) {
	r := New(staticConfig{err: errs.ErrParse}, &staticSecret{}, logging.Discard())

	_, err := r.ResolveDecryptionKey(context.Background())
	assert.ErrorIs(t, err, errs.ErrParse)
}

func TestResolveDecryptionKey_ThroughOpClient(t *testing.T) {
	pair, err := agekey.Generate()
	require.NoError(t, err)

	fake := runnertest.New().On("op read op://Vault/Item/Field", runnertest.Response{Stdout: pair.PrivateKey + "\n"})
	var out bytes.Buffer
	log := &logging.Logger{Verbose: true, Debug: true, Out: &out, Err: &out}
	r := New(withReference("op://Vault/Item/Field"), onepassword.NewClient(fake, "", log), log)

	id, err := r.ResolveDecryptionKey(context.Background())
	require.NoError(t, err)

	pub, err := id.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, pair.PublicKey, pub)
	assert.NotContains(t, out.String(), pair.PrivateKey)
	assert.Contains(t, out.String(), id.Masked())
}

func TestResolveDecryptionKey_OpExitFailure(t *testing.T) {
	fake := runnertest.New().On("op read", runnertest.Response{ExitCode: 1, Stderr: "item not found"})
	r := New(withReference("op://Vault/Item/Field"), onepassword.NewClient(fake, "", logging.Discard()), logging.Discard())

	_, err := r.ResolveDecryptionKey(context.Background())
	assert.ErrorIs(t, err, errs.ErrSubprocess)
	assert.Contains(t, err.Error(), "item not found")
}
