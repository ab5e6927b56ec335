package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/ojsef39/opsops/internal/agekey"
	"github.com/ojsef39/opsops/internal/logging"
	"github.com/ojsef39/opsops/internal/onepassword"
	"github.com/ojsef39/opsops/internal/project"
	"github.com/ojsef39/opsops/internal/prompt"
	"github.com/ojsef39/opsops/internal/resolver"
	"github.com/ojsef39/opsops/internal/runner/runnertest"
	"github.com/ojsef39/opsops/internal/settings"
	"github.com/ojsef39/opsops/internal/sopsconfig"
)

func init() {
	disableColor()
}

// testEnv is a project directory wired to a fake runner and scripted prompts.
type testEnv struct {
	dir     string
	fake    *runnertest.Fake
	prompts *prompt.Scripted
	app     *app
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fake := runnertest.New()
	prompts := &prompt.Scripted{}
	// Out and Err are pointed at the command's streams per invocation
	log := &logging.Logger{}
	s := settings.Default()
	store := sopsconfig.NewStore(&project.Locator{Dir: dir, Ceiling: dir}, log)
	op := onepassword.NewClient(fake, s.OpBinary, log)

	env := &testEnv{
		dir:     dir,
		fake:    fake,
		prompts: prompts,
		app: &app{
			log:      log,
			settings: &s,
			runner:   fake,
			store:    store,
			op:       op,
			keys:     resolver.New(store, op, log),
			prompter: prompts,
		},
	}

	orig := newApp
	newApp = func(cmd *cobra.Command) (*app, error) {
		env.app.log.Out = cmd.OutOrStdout()
		env.app.log.Err = cmd.ErrOrStderr()
		return env.app, nil
	}
	t.Cleanup(func() { newApp = orig })

	return env
}

func (e *testEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(e.dir, sopsconfig.FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func (e *testEnv) readConfig(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, sopsconfig.FileName))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func (e *testEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// withKey stores an age key pair behind op://Vault/Item/Field and returns it.
func (e *testEnv) withKey(t *testing.T) agekey.Pair {
	t.Helper()
	pair, err := agekey.Generate()
	if err != nil {
		t.Fatal(err)
	}
	e.fake.On("op read op://Vault/Item/Field", runnertest.Response{Stdout: pair.PrivateKey + "\n"})
	return pair
}

func resetFlags() {
	verbose = false
	debug = false
	noColor = false
	settingsPath = ""
	listConfigOutput = "table"
	generateVault = ""
	versionShort = false
	if f := rootCmd.Flags().Lookup("version"); f != nil {
		_ = f.Value.Set("false")
	}
	docsDir = "target/doc"
}

// executeCommand runs the root command with args and returns what it wrote.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	printError(&errOut, err)
	return out.String(), errOut.String(), err
}
