package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ojsef39/opsops/internal/errs"
	"github.com/ojsef39/opsops/internal/onepassword"
	"github.com/ojsef39/opsops/internal/sopsconfig"
)

const sopsConfigGuide = "https://github.com/getsops/sops#using-sops-yaml-conf-to-select-kms-pgp-and-age-for-new-files"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize opsops",
	Long: `Creates a minimal .sops.yaml when the project has none and assigns the
1Password item holding the age private key.

The item is picked interactively from the vaults, items and fields the op
CLI can see. A .sops.yaml that already has a reference is left alone.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	err = initConfig(cmd, a)
	if errors.Is(err, errs.ErrUserAborted) {
		fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Init aborted: "+err.Error()))
		return nil
	}
	return err
}

func initConfig(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()

	raw, err := a.store.ReadRaw()
	switch {
	case errors.Is(err, errs.ErrConfigNotFound):
		return createConfig(cmd, a)
	case err != nil:
		return err
	}

	cfg, err := sopsconfig.Parse(raw)
	if err != nil {
		return err
	}
	if cfg.HasReference() {
		fmt.Fprintln(out, successStyle.Render("✓ .sops.yaml file exists. No action needed."))
		return nil
	}

	if legacy, _ := sopsconfig.IsLegacy(raw); legacy {
		fmt.Fprintln(out, warnStyle.Render("⚠ .sops.yaml exists but is missing onepassworditem field."))
	} else {
		fmt.Fprintln(out, warnStyle.Render("⚠ .sops.yaml exists but onepassworditem is empty."))
	}
	return assignItem(cmd, a)
}

func createConfig(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, errorStyle.Render("✗ .sops.yaml is missing."))

	create, err := a.prompter.Confirm("Would you like to create a basic .sops.yaml file?", true)
	if err != nil {
		return err
	}
	if !create {
		fmt.Fprintln(out, warnStyle.Render("Please create a .sops.yaml file manually following the guide at: "+sopsConfigGuide))
		return nil
	}

	if err := a.store.Write(sopsconfig.NewDefault()); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintln(out, successStyle.Render("✓ Created basic .sops.yaml file."))
	return assignItem(cmd, a)
}

func assignItem(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()

	assign, err := a.prompter.Confirm("Would you like to assign an age key from 1Password?", true)
	if err != nil {
		return err
	}
	if !assign {
		fmt.Fprintln(out, mutedStyle.Render("No 1Password item assigned. Run 'opsops init' again when ready."))
		return nil
	}

	if err := a.op.CheckInstalled(); err != nil {
		return err
	}

	ref, err := pickReference(cmd, a)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, progressStyle.Render("Writing 1Password reference to config: "+ref.String()))

	cfg, err := a.store.ReadOrCreate()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	cfg.OnePasswordItem = ref.String()
	if err := a.store.Write(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintln(out, successStyle.Render("✓ Successfully updated .sops.yaml with 1Password reference."))
	return nil
}

// pickReference walks the user from vault to item to field.
func pickReference(cmd *cobra.Command, a *app) (onepassword.Reference, error) {
	ctx := cmd.Context()

	vault, err := pickOne(cmd, a, "Choose a Vault", "vaults", func() ([]string, error) {
		return a.op.Vaults(ctx)
	})
	if err != nil {
		return onepassword.Reference{}, err
	}

	item, err := pickOne(cmd, a, "Choose an Item", "items", func() ([]string, error) {
		return a.op.Items(ctx, vault)
	})
	if err != nil {
		return onepassword.Reference{}, err
	}

	field, err := pickOne(cmd, a, "Choose a Field", "fields", func() ([]string, error) {
		return a.op.Fields(ctx, vault, item)
	})
	if err != nil {
		return onepassword.Reference{}, err
	}

	return onepassword.Reference{Vault: vault, Item: item, Field: field}, nil
}

func pickOne(cmd *cobra.Command, a *app, title, noun string, list func() ([]string, error)) (string, error) {
	_, cleanup := startSpinner(cmd.OutOrStdout(), "Fetching "+noun+" from 1Password...", a.spinners)
	options, err := list()
	cleanup()
	if err != nil {
		return "", fmt.Errorf("failed to retrieve %s: %w", noun, err)
	}
	if len(options) == 0 {
		return "", fmt.Errorf("no %s found", noun)
	}

	idx, err := a.prompter.Select(title, options)
	if err != nil {
		return "", err
	}
	return options[idx], nil
}
