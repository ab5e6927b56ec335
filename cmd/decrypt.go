package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ojsef39/opsops/internal/sops"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt PATH",
	Short: "Decrypt a file using sops",
	Long: `Decrypts PATH with sops. A trailing .enc is stripped for the output
file name; otherwise .dec is appended.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecrypt,
}

func init() {
	rootCmd.AddCommand(decryptCmd)
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	if err := checkSopsTarget(a, path); err != nil {
		return err
	}

	output := sops.DecryptedPath(path)
	fmt.Fprintln(cmd.OutOrStdout(), progressStyle.Render(fmt.Sprintf("Decrypting %s to %s", path, output)))
	return runSops(cmd.Context(), cmd, a, decryptAction, output, "--decrypt", "--output", output, path)
}
