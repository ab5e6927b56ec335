// Package resolver turns the 1Password reference stored in .sops.yaml into
// a validated age identity.
package resolver

import (
	"context"
	"fmt"

	"github.com/ojsef39/opsops/internal/agekey"
	"github.com/ojsef39/opsops/internal/errs"
	"github.com/ojsef39/opsops/internal/logging"
	"github.com/ojsef39/opsops/internal/onepassword"
	"github.com/ojsef39/opsops/internal/sopsconfig"
)

// ConfigSource yields the current project config.
type ConfigSource interface {
	ReadOrCreate() (*sopsconfig.Config, error)
}

// SecretReader reads a secret by reference, as `op read` does.
type SecretReader interface {
	Read(ctx context.Context, ref string) (string, error)
}

// Resolver fetches the age private key named by the project config.
type Resolver struct {
	config  ConfigSource
	secrets SecretReader
	log     *logging.Logger
}

func New(config ConfigSource, secrets SecretReader, log *logging.Logger) *Resolver {
	return &Resolver{config: config, secrets: secrets, log: log}
}

// Reference returns the validated reference from the config.
func (r *Resolver) Reference() (onepassword.Reference, error) {
	cfg, err := r.config.ReadOrCreate()
	if err != nil {
		return onepassword.Reference{}, fmt.Errorf("%w: %w", errs.ErrConfigUnreadable, err)
	}
	if !cfg.HasReference() {
		return onepassword.Reference{}, fmt.Errorf("%w. Run 'opsops init' to configure", errs.ErrReferenceMissing)
	}
	return onepassword.ParseReference(cfg.OnePasswordItem)
}

// ResolveDecryptionKey reads the key from 1Password and validates it.
func (r *Resolver) ResolveDecryptionKey(ctx context.Context) (*agekey.Identity, error) {
	ref, err := r.Reference()
	if err != nil {
		return nil, err
	}

	r.log.Infof("Retrieving age key from %s", ref)
	secret, err := r.secrets.Read(ctx, ref.String())
	if err != nil {
		return nil, fmt.Errorf("reading age key from 1Password: %w", err)
	}

	id, err := agekey.NewIdentity(secret)
	if err != nil {
		return nil, fmt.Errorf("value at %s: %w", ref, err)
	}
	r.log.Debugf("Got private key %s", id.Masked())
	return id, nil
}
