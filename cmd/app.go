package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ojsef39/opsops/internal/logging"
	"github.com/ojsef39/opsops/internal/onepassword"
	"github.com/ojsef39/opsops/internal/project"
	"github.com/ojsef39/opsops/internal/prompt"
	"github.com/ojsef39/opsops/internal/resolver"
	"github.com/ojsef39/opsops/internal/runner"
	"github.com/ojsef39/opsops/internal/settings"
	"github.com/ojsef39/opsops/internal/sops"
	"github.com/ojsef39/opsops/internal/sopsconfig"
)

// app bundles the collaborators a command needs.
type app struct {
	log      *logging.Logger
	settings *settings.Settings
	runner   runner.Runner
	store    *sopsconfig.Store
	op       *onepassword.Client
	keys     sops.KeyResolver
	prompter prompt.Prompter

	// spinners are shown only on an interactive, non-verbose terminal
	spinners bool
}

// newApp builds the app for a command invocation. Tests replace it.
var newApp = defaultApp

func defaultApp(cmd *cobra.Command) (*app, error) {
	log := logging.New(verbose, debug)
	log.Out = cmd.OutOrStdout()
	log.Err = cmd.ErrOrStderr()

	s, path, exists, err := settings.Load(settingsPath, os.LookupEnv)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if exists {
		log.Debugf("Loaded settings from %s", path)
	} else {
		log.Debugf("No settings file at %s, using defaults", path)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}

	r := runner.NewOS(os.Environ())
	store := sopsconfig.NewStore(project.NewLocator(wd), log)
	op := onepassword.NewClient(r, s.OpBinary, log)

	return &app{
		log:      log,
		settings: s,
		runner:   r,
		store:    store,
		op:       op,
		keys:     resolver.New(store, op, log),
		prompter: prompt.NewHuh(),
		spinners: prompt.IsTerminal(os.Stdout) && !log.Verbose,
	}, nil
}
