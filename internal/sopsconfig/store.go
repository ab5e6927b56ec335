package sopsconfig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ojsef39/opsops/internal/errs"
	"github.com/ojsef39/opsops/internal/logging"
)

// RootLocator finds the project root.
type RootLocator interface {
	Locate() (string, bool)
}

// Store loads and saves the .sops.yaml at the project root.
type Store struct {
	locator RootLocator
	log     *logging.Logger
}

// NewStore creates a Store resolving the project root through locator.
func NewStore(locator RootLocator, log *logging.Logger) *Store {
	return &Store{locator: locator, log: log}
}

// Path returns the location of the config file, whether or not it exists.
func (s *Store) Path() (string, error) {
	root, ok := s.locator.Locate()
	if !ok {
		return "", errs.ErrNoProjectRoot
	}
	return filepath.Join(root, FileName), nil
}

// Open opens the config file for reading. It returns errs.ErrConfigNotFound
// when the project has no .sops.yaml.
func (s *Store) Open() (*os.File, error) {
	path, err := s.Path()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Debugf("Config file not found: %s", path)
		return nil, fmt.Errorf("%w: %s", errs.ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", errs.ErrRead, path, err)
	}
	s.log.Debugf("Using config file %s", path)
	return f, nil
}

// ReadRaw returns the file contents.
func (s *Store) ReadRaw() ([]byte, error) {
	f, err := s.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrRead, err)
	}
	return data, nil
}

// Load reads and parses the config file. A missing file is an error.
func (s *Store) Load() (*Config, error) {
	data, err := s.ReadRaw()
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if !cfg.HasReference() {
		s.log.Debugf("Config has no onepassworditem")
	}
	return cfg, nil
}

// ReadOrCreate loads the config, or returns an empty in-memory config when
// there is no file or no project root. Nothing is written to disk.
func (s *Store) ReadOrCreate() (*Config, error) {
	cfg, err := s.Load()
	if errors.Is(err, errs.ErrConfigNotFound) || errors.Is(err, errs.ErrNoProjectRoot) {
		s.log.Debugf("Starting from an empty config: %v", err)
		return New(), nil
	}
	return cfg, err
}

// Write serializes cfg and overwrites the config file.
func (s *Store) Write(cfg *Config) error {
	path, err := s.Path()
	if err != nil {
		return err
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrWrite, err)
	}
	s.log.Infof("Wrote %s", path)
	return nil
}
