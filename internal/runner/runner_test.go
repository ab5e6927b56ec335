package runner

import (
	"bytes"
	"context"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojsef39/opsops/internal/errs"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := (&OS{}).LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestOS_RunCapturesOutput(t *testing.T) {
	skipWithoutShell(t)

	res, err := NewOS(os.Environ()).Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo out; echo err >&2"},
	})
	require.NoError(t, err)

	assert.True(t, res.Success())
	assert.Equal(t, "out\n", string(res.Stdout))
	assert.Equal(t, "err", res.StderrText())
}

func TestOS_RunExitCode(t *testing.T) {
	skipWithoutShell(t)

	tests := []struct {
		name string
		code string
		want int
	}{
		{name: "success", code: "0", want: 0},
		{name: "failure", code: "3", want: 3},
		{name: "unchanged sentinel", code: "200", want: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewOS(nil).Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exit " + tt.code}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.ExitCode)
		})
	}
}

func TestOS_RunPassesEnvironment(t *testing.T) {
	skipWithoutShell(t)

	r := NewOS([]string{"PATH=" + os.Getenv("PATH"), "BASE=1"})
	res, err := r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", `printf "%s-%s" "$BASE" "$SOPS_AGE_KEY"`},
		Env:  []string{"SOPS_AGE_KEY=secret"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1-secret", string(res.Stdout))
}

func TestOS_RunStreamsToWriters(t *testing.T) {
	skipWithoutShell(t)

	var out bytes.Buffer
	res, err := NewOS(os.Environ()).Run(context.Background(), Command{
		Name:   "sh",
		Args:   []string{"-c", "echo streamed"},
		Stdout: &out,
	})
	require.NoError(t, err)

	assert.Equal(t, "streamed\n", out.String())
	assert.Empty(t, res.Stdout)
}

func TestOS_RunDir(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/marker", nil, 0644))

	res, err := NewOS(os.Environ()).Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "ls"}, Dir: dir})
	require.NoError(t, err)
	assert.Contains(t, string(res.Stdout), "marker")
}

func TestOS_RunMissingBinary(t *testing.T) {
	_, err := NewOS(os.Environ()).Run(context.Background(), Command{Name: "opsops-definitely-not-a-binary"})
	assert.ErrorIs(t, err, errs.ErrSpawn)
}

func TestOS_StartAndWait(t *testing.T) {
	skipWithoutShell(t)

	p, err := NewOS(os.Environ()).Start(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo started"}})
	require.NoError(t, err)
	assert.NotZero(t, p.Pid())

	res, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, "started\n", string(res.Stdout))
}

func TestCommandLookup(t *testing.T) {
	c := Command{Env: []string{"A=1", "SOPS_AGE_KEY=first", "SOPS_AGE_KEY=second"}}

	v, ok := c.Lookup("SOPS_AGE_KEY")
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	_, ok = c.Lookup("MISSING")
	assert.False(t, ok)
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "sops", Args: []string{"--encrypt", "--output", "a.enc", "a"}, Env: []string{"SOPS_AGE_KEY=secret"}}
	assert.Equal(t, "sops --encrypt --output a.enc a", c.String())
}
