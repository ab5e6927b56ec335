package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/awnumar/memguard"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/ojsef39/opsops/internal/errs"
)

var (
	verbose      bool
	debug        bool
	noColor      bool
	settingsPath string

	// exitFunc terminates the process. Tests replace it.
	exitFunc = os.Exit
)

var rootCmd = &cobra.Command{
	Use:   "opsops",
	Short: "A wrapper that integrates sops with 1Password",
	Long: `opsops runs sops with an age private key read from 1Password,
so the key never has to be stored on disk.

The 1Password reference lives in the project's .sops.yaml under
onepassworditem. Run 'opsops init' to set it up.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			disableColor()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), logo())
		_ = cmd.Usage()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output (implies --verbose)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "path to the opsops settings file (default ~/.config/opsops/config.toml)")
}

func Execute() {
	err := rootCmd.Execute()
	printError(rootCmd.ErrOrStderr(), err)
	// wipe any key material before the process goes away
	memguard.Purge()
	exitFunc(errs.ExitCode(err))
}

// printError reports err unless it only carries an exit code.
func printError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var exitErr *errs.ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
}

// exitSilently returns an error that sets the exit code without a message.
// The command has already printed its own report.
func exitSilently(code int) error {
	return errs.WithExitCode(code, nil)
}

func disableColor() {
	color.NoColor = true
	lipgloss.SetColorProfile(termenv.Ascii)
}
