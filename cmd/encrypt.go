package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ojsef39/opsops/internal/sops"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt PATH",
	Short: "Encrypt a file using sops",
	Long:  `Encrypts PATH with sops and writes the result to PATH.enc.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runEncrypt,
}

func init() {
	rootCmd.AddCommand(encryptCmd)
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	if err := checkSopsTarget(a, path); err != nil {
		return err
	}

	output := sops.EncryptedPath(path)
	fmt.Fprintln(cmd.OutOrStdout(), progressStyle.Render(fmt.Sprintf("Encrypting %s to %s", path, output)))
	return runSops(cmd.Context(), cmd, a, encryptAction, output, "--encrypt", "--output", output, path)
}
