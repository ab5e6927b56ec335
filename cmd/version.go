package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/ojsef39/opsops/cmd.version=...".
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Prints the opsops version, the commit and date it was built from, and the Go toolchain and platform.`,
	Args:  cobra.NoArgs,
	Run:   runVersion,
}

func init() {
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print only the version number")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("opsops {{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
}

func buildInfo() [][2]string {
	return [][2]string{
		{"Version", version},
		{"Commit", commit},
		{"Build Date", buildDate},
		{"Go", runtime.Version()},
		{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
	}
}

func runVersion(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	if versionShort {
		fmt.Fprintln(out, version)
		return
	}

	fmt.Fprint(out, logo())
	for _, field := range buildInfo() {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-11s", field[0]+":")), field[1])
	}
}
