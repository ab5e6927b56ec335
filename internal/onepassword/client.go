// Package onepassword wraps the subcommands of the 1Password `op` CLI that
// opsops needs.
package onepassword

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ojsef39/opsops/internal/errs"
	"github.com/ojsef39/opsops/internal/logging"
	"github.com/ojsef39/opsops/internal/runner"
)

// DefaultBinary is the name of the 1Password CLI.
const DefaultBinary = "op"

// Client runs `op` through a runner.Runner.
type Client struct {
	runner runner.Runner
	bin    string
	log    *logging.Logger
}

// NewClient returns a client for bin, falling back to DefaultBinary.
func NewClient(r runner.Runner, bin string, log *logging.Logger) *Client {
	if bin == "" {
		bin = DefaultBinary
	}
	return &Client{runner: r, bin: bin, log: log}
}

// CheckInstalled reports ErrNotInstalled when the binary is not on PATH.
func (c *Client) CheckInstalled() error {
	if _, err := c.runner.LookPath(c.bin); err != nil {
		return fmt.Errorf("1Password CLI (%s) %w", c.bin, errs.ErrNotInstalled)
	}
	return nil
}

// Read resolves a secret reference and returns the trimmed value.
func (c *Client) Read(ctx context.Context, ref string) (string, error) {
	out, err := c.run(ctx, nil, "read", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ItemField returns one field of an item in vault.
func (c *Client) ItemField(ctx context.Context, vault, item, field string) (string, error) {
	out, err := c.run(ctx, nil, "item", "get", item, "--vault", vault, "--field", field)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// CreateItem creates item. Password field values are redacted from logs
// and error messages.
func (c *Client) CreateItem(ctx context.Context, item Item) error {
	_, err := c.run(ctx, item.secrets(), item.args()...)
	if err != nil {
		return fmt.Errorf("creating item %q in vault %q: %w", item.Title, item.Vault, err)
	}
	return nil
}

type vaultEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type itemEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type itemDetail struct {
	Fields []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	} `json:"fields"`
}

// Vaults lists vault names.
func (c *Client) Vaults(ctx context.Context) ([]string, error) {
	var vaults []vaultEntry
	if err := c.runJSON(ctx, &vaults, "vault", "list", "--format=json"); err != nil {
		return nil, fmt.Errorf("listing vaults: %w", err)
	}
	names := make([]string, 0, len(vaults))
	for _, v := range vaults {
		names = append(names, v.Name)
	}
	return names, nil
}

// Items lists item titles in vault.
func (c *Client) Items(ctx context.Context, vault string) ([]string, error) {
	var items []itemEntry
	if err := c.runJSON(ctx, &items, "item", "list", "--vault", vault, "--format=json"); err != nil {
		return nil, fmt.Errorf("listing items in vault %q: %w", vault, err)
	}
	titles := make([]string, 0, len(items))
	for _, i := range items {
		titles = append(titles, i.Title)
	}
	return titles, nil
}

// Fields lists field labels of item in vault.
func (c *Client) Fields(ctx context.Context, vault, item string) ([]string, error) {
	var detail itemDetail
	if err := c.runJSON(ctx, &detail, "item", "get", item, "--vault", vault, "--format=json"); err != nil {
		return nil, fmt.Errorf("listing fields of %q: %w", item, err)
	}
	labels := make([]string, 0, len(detail.Fields))
	for _, f := range detail.Fields {
		labels = append(labels, f.Label)
	}
	return labels, nil
}

func (c *Client) runJSON(ctx context.Context, v any, args ...string) error {
	out, err := c.run(ctx, nil, args...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(out, v); err != nil {
		return fmt.Errorf("%w: decoding op output: %v", errs.ErrParse, err)
	}
	return nil
}

func (c *Client) run(ctx context.Context, secrets []string, args ...string) ([]byte, error) {
	cmd := runner.Command{Name: c.bin, Args: args}
	c.log.Debugf("running %s", logging.Redact(cmd.String(), secrets...))

	res, err := c.runner.Run(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to execute 1Password CLI: %w", err)
	}
	if !res.Success() {
		return nil, fmt.Errorf("%w: 1Password CLI exited with status %d: %s",
			errs.ErrSubprocess, res.ExitCode, logging.Redact(res.StderrText(), secrets...))
	}
	return res.Stdout, nil
}
