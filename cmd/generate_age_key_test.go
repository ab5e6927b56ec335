package cmd

import (
	"strings"
	"testing"

	"github.com/ojsef39/opsops/internal/runner/runnertest"
)

func TestGenerateAgeKey_NotSaved(t *testing.T) {
	env := newTestEnv(t)
	env.prompts.Confirms = []bool{false}

	out, _, err := executeCommand(t, "generate-age-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Public Key:", "age1", "Private Key:", "AGE-SECRET-KEY-", "Remember to save this key"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
	if len(env.fake.Calls()) != 0 {
		t.Error("op must not be called when not saving")
	}
}

func TestGenerateAgeKey_SavesToOnePassword(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantVault string
	}{
		{name: "default vault", args: nil, wantVault: "Personal"},
		{name: "vault flag", args: []string{"--vault", "Work"}, wantVault: "Work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.fake.On("op item create", runnertest.Response{})
			env.prompts.Confirms = []bool{true}
			env.prompts.Inputs = []string{"opsops age"}

			out, _, err := executeCommand(t, append([]string{"generate-age-key"}, tt.args...)...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			args := env.fake.Last().Args
			if len(args) != 10 {
				t.Fatalf("unexpected op args: %v", args)
			}
			if args[3] != tt.wantVault || args[5] != "opsops age" || args[7] != "password" {
				t.Errorf("unexpected op args: %v", args)
			}
			if !strings.HasPrefix(args[8], "Public Key[STRING]=age1") {
				t.Errorf("public key field = %q", args[8])
			}
			if !strings.HasPrefix(args[9], "Private Key[PASSWORD]=AGE-SECRET-KEY-") {
				t.Errorf("private key field = %q", args[9])
			}
			if !strings.Contains(out, "op://"+tt.wantVault+"/opsops age/Private Key") {
				t.Errorf("output should show the reference, got:\n%s", out)
			}
		})
	}
}

func TestGenerateAgeKey_CreateFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(t)
	env.fake.On("op item create", runnertest.Response{ExitCode: 1, Stderr: "vault not found"})
	env.prompts.Confirms = []bool{true}
	env.prompts.Inputs = []string{"opsops"}

	_, stderr, err := executeCommand(t, "generate-age-key")
	if err != nil {
		t.Fatalf("a failed save should not fail the command: %v", err)
	}
	if !strings.Contains(stderr, "[error] Failed to create item in 1Password: ") {
		t.Errorf("stderr should report the failure, got:\n%s", stderr)
	}
	if strings.Contains(stderr, "AGE-SECRET-KEY-") {
		t.Error("the private key must not leak into the error")
	}
}

func TestGenerateAgeKey_SettingsCategory(t *testing.T) {
	env := newTestEnv(t)
	env.app.settings.ItemCategory = "login"
	env.fake.On("op item create", runnertest.Response{})
	env.prompts.Confirms = []bool{true}
	env.prompts.Inputs = []string{"k"}

	if _, _, err := executeCommand(t, "generate-age-key"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := env.fake.Last().Args[7]; got != "login" {
		t.Errorf("category = %q, want login", got)
	}
}
