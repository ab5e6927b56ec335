package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ojsef39/opsops/internal/onepassword"
	"github.com/ojsef39/opsops/internal/sopsconfig"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Troubleshoot your current config",
	Long: `Checks that .sops.yaml names a 1Password reference, that the reference
resolves to an age private key, and that the matching public key appears
in one of the creation rules.

Exit codes:
  0 - the key from 1Password matches a creation rule
  1 - any check failed`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := a.store.ReadOrCreate()
	if err != nil {
		fmt.Fprintln(errOut, errorStyle.Render("✗ Error reading sops file: "+err.Error()))
		return exitSilently(1)
	}
	if !cfg.HasReference() {
		fmt.Fprintln(errOut, errorStyle.Render("✗ No 1Password reference found in .sops.yaml. Run 'opsops init' to configure."))
		return exitSilently(1)
	}
	fmt.Fprintln(out, successStyle.Render("✓ 1Password reference found in .sops.yaml:")+" "+cfg.OnePasswordItem)

	id, err := a.keys.ResolveDecryptionKey(cmd.Context())
	if err != nil {
		fmt.Fprintln(errOut, errorStyle.Render("✗ Couldn't get age key: "+err.Error()))
		return exitSilently(1)
	}
	fmt.Fprintln(out, successStyle.Render("✓ Got private key:")+" "+id.Masked())

	publicKey, err := id.PublicKey()
	if err != nil {
		fmt.Fprintln(errOut, errorStyle.Render("✗ Invalid private key format: "+err.Error()))
		return exitSilently(1)
	}
	a.log.Debugf("Derived public key %s", publicKey)
	checkStoredPublicKey(cmd, a, cfg.OnePasswordItem, publicKey)

	if match, ok := cfg.FindPublicKey(publicKey); ok {
		label := "✓ Found matching public key:"
		if match.Kind == sopsconfig.GroupMatch {
			label = "✓ Found matching public key in key group:"
		}
		fmt.Fprintln(out, successStyle.Render(label)+" "+match.Key)
		return nil
	}

	fmt.Fprintln(errOut, errorStyle.Render("✗ No matching public key found in .sops.yaml config."))
	fmt.Fprintln(errOut, warnStyle.Render("  Your public key is: "+publicKey))
	if missing := cfg.RulesWithoutKeys(); len(missing) > 0 {
		fmt.Fprintln(errOut, warnStyle.Render("  Rules without age keys:"))
		for _, i := range missing {
			pattern := cfg.CreationRules[i].PathRegex
			if pattern == "" {
				pattern = "<no path_regex>"
			}
			fmt.Fprintf(errOut, "  - Rule #%d: %s\n", i, pattern)
		}
	}
	return exitSilently(1)
}

// checkStoredPublicKey compares the item's public key field, when it has
// one, with the key derived from the private key.
func checkStoredPublicKey(cmd *cobra.Command, a *app, reference, publicKey string) {
	ref, err := onepassword.ParseReference(reference)
	if err != nil {
		return
	}
	stored, err := a.op.ItemField(cmd.Context(), ref.Vault, ref.Item, publicKeyField)
	if err != nil {
		a.log.Debugf("Skipping %q field check for %s: %v", publicKeyField, ref.Item, err)
		return
	}
	if stored != publicKey {
		a.log.Warnf("%q field of %s is %s, which does not belong to the private key", publicKeyField, ref.Item, stored)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ "+publicKeyField+" field in 1Password matches the private key"))
}
