// Package sops builds and runs single-use invocations of the sops binary
// with the age key injected through the environment.
package sops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ojsef39/opsops/internal/agekey"
	"github.com/ojsef39/opsops/internal/errs"
	"github.com/ojsef39/opsops/internal/runner"
)

const (
	// DefaultBinary is the sops executable name.
	DefaultBinary = "sops"
	// KeyEnvVar carries the age private key to sops.
	KeyEnvVar = "SOPS_AGE_KEY"
	// ExitFileUnchanged is returned by sops when an edit made no changes.
	ExitFileUnchanged = 200
)

// ErrConsumed is returned when a terminal action runs twice on one Command.
var ErrConsumed = errors.New("sops command already executed")

// KeyResolver supplies the age identity to hand to sops.
type KeyResolver interface {
	ResolveDecryptionKey(ctx context.Context) (*agekey.Identity, error)
}

// Command accumulates arguments and environment for one sops run.
// Status, Spawn and Output each consume it.
type Command struct {
	runner   runner.Runner
	cmd      runner.Command
	hasKey   bool
	consumed bool
}

// New starts a command for bin, falling back to DefaultBinary.
func New(r runner.Runner, bin string) *Command {
	if bin == "" {
		bin = DefaultBinary
	}
	return &Command{runner: r, cmd: runner.Command{Name: bin}}
}

func (c *Command) Arg(arg string) *Command {
	c.cmd.Args = append(c.cmd.Args, arg)
	return c
}

func (c *Command) Args(args ...string) *Command {
	c.cmd.Args = append(c.cmd.Args, args...)
	return c
}

func (c *Command) Dir(dir string) *Command {
	c.cmd.Dir = dir
	return c
}

func (c *Command) Env(key, value string) *Command {
	c.cmd.Env = append(c.cmd.Env, key+"="+value)
	return c
}

func (c *Command) Stdin(r io.Reader) *Command {
	c.cmd.Stdin = r
	return c
}

func (c *Command) Stdout(w io.Writer) *Command {
	c.cmd.Stdout = w
	return c
}

func (c *Command) Stderr(w io.Writer) *Command {
	c.cmd.Stderr = w
	return c
}

// WithAgeKey resolves the key and places it in the child environment.
// A resolver failure aborts the build.
func (c *Command) WithAgeKey(ctx context.Context, kr KeyResolver) (*Command, error) {
	if err := c.injectKey(ctx, kr); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Command) injectKey(ctx context.Context, kr KeyResolver) error {
	id, err := kr.ResolveDecryptionKey(ctx)
	if err != nil {
		return err
	}
	key, err := id.Reveal()
	if err != nil {
		return fmt.Errorf("opening age key: %w", err)
	}
	c.Env(KeyEnvVar, key)
	c.hasKey = true
	return nil
}

// HasAgeKey reports whether a key was injected.
func (c *Command) HasAgeKey() bool {
	return c.hasKey
}

// String renders the command line. Environment values are never included.
func (c *Command) String() string {
	return c.cmd.String()
}

// Status runs sops with unset streams attached to the terminal and returns
// its exit code.
func (c *Command) Status(ctx context.Context) (int, error) {
	if err := c.consume(); err != nil {
		return 0, err
	}
	cmd := c.cmd
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	res, err := c.runner.Run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return res.ExitCode, nil
}

// Spawn starts sops and returns without waiting.
func (c *Command) Spawn(ctx context.Context) (runner.Process, error) {
	if err := c.consume(); err != nil {
		return nil, err
	}
	return c.runner.Start(ctx, c.cmd)
}

// Output runs sops and captures whatever streams were not redirected.
func (c *Command) Output(ctx context.Context) (runner.Result, error) {
	if err := c.consume(); err != nil {
		return runner.Result{}, err
	}
	return c.runner.Run(ctx, c.cmd)
}

func (c *Command) consume() error {
	if c.consumed {
		return ErrConsumed
	}
	c.consumed = true
	return nil
}

// CheckInstalled reports errs.ErrNotInstalled when bin is not on PATH.
func CheckInstalled(r runner.Runner, bin string) error {
	if bin == "" {
		bin = DefaultBinary
	}
	if _, err := r.LookPath(bin); err != nil {
		return fmt.Errorf("SOPS (%s) %w: install from https://github.com/getsops/sops", bin, errs.ErrNotInstalled)
	}
	return nil
}

// EncryptedPath is where encrypt writes its output.
func EncryptedPath(path string) string {
	return path + ".enc"
}

// DecryptedPath strips a trailing .enc, or appends .dec when there is none.
func DecryptedPath(path string) string {
	if trimmed, ok := strings.CutSuffix(path, ".enc"); ok && trimmed != "" {
		return trimmed
	}
	return path + ".dec"
}
