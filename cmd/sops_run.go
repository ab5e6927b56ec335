package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ojsef39/opsops/internal/errs"
	"github.com/ojsef39/opsops/internal/sops"
)

// sopsAction holds the messages for one kind of sops run.
type sopsAction struct {
	success string
	failure string
}

var (
	editAction    = sopsAction{success: "File edited and saved successfully: %s", failure: "Error while editing the file"}
	encryptAction = sopsAction{success: "Successfully encrypted file to %s with SOPS", failure: "Error while encrypting the file"}
	decryptAction = sopsAction{success: "Successfully decrypted file to %s with SOPS", failure: "Error while decrypting the file"}
)

// checkSopsTarget verifies that path is a regular file and sops is on PATH.
func checkSopsTarget(a *app, path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", errs.ErrFileNotFound, path)
	}
	if err := sops.CheckInstalled(a.runner, a.settings.SopsBinary); err != nil {
		return err
	}
	return nil
}

// runSops resolves the age key, runs sops with args attached to the
// command's streams and reports the outcome.
func runSops(ctx context.Context, cmd *cobra.Command, a *app, action sopsAction, target string, args ...string) error {
	c, err := sops.New(a.runner, a.settings.SopsBinary).
		Args(args...).
		Stdin(cmd.InOrStdin()).
		Stdout(cmd.OutOrStdout()).
		Stderr(cmd.ErrOrStderr()).
		WithAgeKey(ctx, a.keys)
	if err != nil {
		return fmt.Errorf("failed to get age key: %w", err)
	}
	a.log.Debugf("Running %s (%s set: %t)", c, sops.KeyEnvVar, c.HasAgeKey())

	code, err := c.Status(ctx)
	return reportSopsResult(cmd, action, target, code, err)
}

// reportSopsResult applies the exit policy: 0 succeeds, 200 means the file
// was left unchanged and also succeeds, any other code becomes the process
// exit code, and a launch failure exits 1.
func reportSopsResult(cmd *cobra.Command, action sopsAction, target string, code int, err error) error {
	if err != nil {
		return errs.WithExitCode(1, fmt.Errorf("failed to launch sops: %w", err))
	}

	out := cmd.OutOrStdout()
	switch sops.Classify(code) {
	case sops.Success:
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf(action.success, target)))
		return nil
	case sops.Unchanged:
		fmt.Fprintln(out, infoStyle.Render("File has not changed: "+target))
		return nil
	default:
		return errs.WithExitCode(code, fmt.Errorf("%s (sops exit code %d)", action.failure, code))
	}
}
