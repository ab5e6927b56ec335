package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ojsef39/opsops/internal/agekey"
	"github.com/ojsef39/opsops/internal/errs"
	"github.com/ojsef39/opsops/internal/onepassword"
)

var generateVault string

// Field labels of items created by generate-age-key.
const (
	publicKeyField  = "Public Key"
	privateKeyField = "Private Key"
)

var generateAgeKeyCmd = &cobra.Command{
	Use:   "generate-age-key",
	Short: "Generate an age key pair",
	Long: `Generates a new age X25519 key pair, prints both halves and offers to
store them as a 1Password item with "Public Key" and "Private Key" fields.`,
	Args: cobra.NoArgs,
	RunE: runGenerateAgeKey,
}

func init() {
	generateAgeKeyCmd.Flags().StringVar(&generateVault, "vault", "", "1Password vault to save the key in (default from settings, \"Personal\")")

	rootCmd.AddCommand(generateAgeKeyCmd)
}

func runGenerateAgeKey(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	pair, err := agekey.Generate()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s\n", warnStyle.Bold(true).Render(fmt.Sprintf("%-13s", "Public Key:")), labelStyle.Render(pair.PublicKey))
	fmt.Fprintf(out, "%s %s\n", errorStyle.Bold(true).Render(fmt.Sprintf("%-13s", "Private Key:")), pair.PrivateKey)

	save, err := a.prompter.Confirm("Would you like to save this key in 1Password?", false)
	if err != nil && !errors.Is(err, errs.ErrUserAborted) {
		return err
	}
	if !save {
		fmt.Fprintln(out, mutedStyle.Render("Remember to save this key in a secure location!"))
		return nil
	}

	name, err := a.prompter.Input("Choose a name for the 1Password item", "age key")
	if err != nil {
		if errors.Is(err, errs.ErrUserAborted) {
			fmt.Fprintln(out, mutedStyle.Render("Remember to save this key in a secure location!"))
			return nil
		}
		return err
	}

	vault := generateVault
	if vault == "" {
		vault = a.settings.DefaultVault
	}
	saveToOnePassword(cmd, a, pair, vault, name)
	return nil
}

// saveToOnePassword stores pair as a new item. A failure is reported but
// does not fail the command, since the key has already been shown.
func saveToOnePassword(cmd *cobra.Command, a *app, pair agekey.Pair, vault, title string) {
	if err := a.op.CheckInstalled(); err != nil {
		a.log.Errorf("Failed to create item in 1Password: %v", err)
		return
	}

	item := onepassword.Item{
		Vault:    vault,
		Title:    title,
		Category: onepassword.Category(a.settings.ItemCategory),
		Fields: []onepassword.Field{
			{Label: publicKeyField, Type: onepassword.FieldString, Value: pair.PublicKey},
			{Label: privateKeyField, Type: onepassword.FieldPassword, Value: pair.PrivateKey},
		},
	}

	s, cleanup := startSpinner(cmd.OutOrStdout(), "Saving key to 1Password...", a.spinners)
	err := a.op.CreateItem(cmd.Context(), item)
	if err != nil {
		cleanup()
		a.log.Errorf("Failed to create item in 1Password: %v", err)
		return
	}

	ref := onepassword.Reference{Vault: vault, Item: title, Field: privateKeyField}
	s.FinalMSG = successStyle.Render(fmt.Sprintf("✓ Saved key to %q in vault %q", title, vault))
	cleanup()
	fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Reference for .sops.yaml: "+ref.String()))
}
