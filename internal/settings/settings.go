// Package settings loads the per-user opsops settings file.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ojsef39/opsops/internal/onepassword"
	"github.com/ojsef39/opsops/internal/sops"
)

// Environment variables that override file values.
const (
	EnvSopsBinary   = "OPSOPS_SOPS_BINARY"
	EnvOpBinary     = "OPSOPS_OP_BINARY"
	EnvDefaultVault = "OPSOPS_DEFAULT_VAULT"
)

const defaultPath = "~/.config/opsops/config.toml"

// Settings are user preferences that apply across projects.
type Settings struct {
	SopsBinary   string `toml:"sops_binary"`
	OpBinary     string `toml:"op_binary"`
	DefaultVault string `toml:"default_vault"`
	ItemCategory string `toml:"item_category"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		SopsBinary:   sops.DefaultBinary,
		OpBinary:     onepassword.DefaultBinary,
		DefaultVault: "Personal",
		ItemCategory: string(onepassword.CategoryPassword),
	}
}

// DefaultPath returns the absolute location of the settings file.
func DefaultPath() (string, error) {
	return expandPath(defaultPath)
}

// Load reads path (DefaultPath when empty) over the defaults and applies
// environment overrides from lookup. A missing file is not an error; the
// returned bool reports whether one was read.
func Load(path string, lookup func(string) (string, bool)) (*Settings, string, bool, error) {
	s := Default()

	if path == "" {
		path = defaultPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return nil, "", false, err
	}

	exists := true
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		exists = false
	case err != nil:
		return nil, "", false, fmt.Errorf("open settings: %w", err)
	default:
		defer file.Close()
		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&s); err != nil {
			return nil, "", false, fmt.Errorf("parse settings %s: %w", resolved, err)
		}
	}

	if lookup != nil {
		s.ApplyEnv(lookup)
	}
	if err := s.Validate(); err != nil {
		return nil, "", false, err
	}
	return &s, resolved, exists, nil
}

// ApplyEnv overrides fields from the environment.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvSopsBinary); ok && strings.TrimSpace(v) != "" {
		s.SopsBinary = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvOpBinary); ok && strings.TrimSpace(v) != "" {
		s.OpBinary = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvDefaultVault); ok && strings.TrimSpace(v) != "" {
		s.DefaultVault = strings.TrimSpace(v)
	}
}

// Validate rejects empty binaries and unknown item categories.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.SopsBinary) == "" {
		return errors.New("sops_binary must not be empty")
	}
	if strings.TrimSpace(s.OpBinary) == "" {
		return errors.New("op_binary must not be empty")
	}
	if strings.TrimSpace(s.DefaultVault) == "" {
		return errors.New("default_vault must not be empty")
	}
	switch onepassword.Category(s.ItemCategory) {
	case onepassword.CategoryLogin, onepassword.CategoryPassword, onepassword.CategoryIdentity, onepassword.CategoryServer:
	default:
		return fmt.Errorf("item_category %q is not one of login, password, identity, server", s.ItemCategory)
	}
	return nil
}

func expandPath(p string) (string, error) {
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if p == "~" {
			p = home
		} else if len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
			p = filepath.Join(home, p[2:])
		}
	}
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", p, err)
	}
	return abs, nil
}
