package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit PATH",
	Short: "Edit a file using sops with a key from 1Password",
	Long: `Opens PATH in sops' editor session with the age key from 1Password
passed through SOPS_AGE_KEY. Exits with sops' own status on failure.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	if err := checkSopsTarget(a, path); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), progressStyle.Render("Opening file for editing: "+path))
	return runSops(cmd.Context(), cmd, a, editAction, path, path)
}
