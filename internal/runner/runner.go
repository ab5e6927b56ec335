// Package runner executes external binaries. The Runner interface lets the
// sops and op wrappers be tested without the real tools installed.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"strings"

	"github.com/ojsef39/opsops/internal/errs"
)

// Command describes one invocation of an external binary.
type Command struct {
	Name string
	Args []string
	// Env holds KEY=VALUE entries added on top of the runner's base environment.
	Env []string
	Dir string

	// Nil Stdout/Stderr are captured into the Result; non-nil writers
	// receive the stream instead.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the command line without environment values.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Lookup returns the value of key in c.Env.
func (c Command) Lookup(key string) (string, bool) {
	prefix := key + "="
	for i := len(c.Env) - 1; i >= 0; i-- {
		if strings.HasPrefix(c.Env[i], prefix) {
			return strings.TrimPrefix(c.Env[i], prefix), true
		}
	}
	return "", false
}

// Result is the outcome of a finished command.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports a zero exit code.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// StderrText returns trimmed stderr for error messages.
func (r Result) StderrText() string {
	return strings.TrimSpace(string(r.Stderr))
}

// Process is a started command.
type Process interface {
	Pid() int
	Wait() (Result, error)
}

// Runner runs commands. Run and Wait return an error only when the binary
// could not be started or waited on; a non-zero exit is reported through
// Result.ExitCode.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
	Start(ctx context.Context, cmd Command) (Process, error)
	LookPath(name string) (string, error)
}

// OS runs commands with os/exec.
type OS struct {
	// BaseEnv is the environment every command starts from, normally
	// os.Environ() captured by the caller.
	BaseEnv []string
}

// NewOS returns a Runner whose children inherit environ plus Command.Env.
func NewOS(environ []string) *OS {
	return &OS{BaseEnv: environ}
}

func (o *OS) Run(ctx context.Context, cmd Command) (Result, error) {
	p, err := o.Start(ctx, cmd)
	if err != nil {
		return Result{}, err
	}
	return p.Wait()
}

func (o *OS) Start(ctx context.Context, cmd Command) (Process, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(slices.Clone(o.BaseEnv), cmd.Env...)
	c.Stdin = cmd.Stdin

	p := &osProcess{cmd: c}
	if cmd.Stdout != nil {
		c.Stdout = cmd.Stdout
	} else {
		c.Stdout = &p.stdout
	}
	if cmd.Stderr != nil {
		c.Stderr = cmd.Stderr
	} else {
		c.Stderr = &p.stderr
	}

	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("%w %q: %v", errs.ErrSpawn, cmd.Name, err)
	}
	return p, nil
}

func (o *OS) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

type osProcess struct {
	cmd    *exec.Cmd
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func (p *osProcess) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

func (p *osProcess) Wait() (Result, error) {
	err := p.cmd.Wait()
	res := Result{Stdout: p.stdout.Bytes(), Stderr: p.stderr.Bytes()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		if res.ExitCode < 0 {
			// terminated by a signal
			res.ExitCode = 1
		}
		return res, nil
	}
	return res, fmt.Errorf("%w %q: %v", errs.ErrSpawn, p.cmd.Path, err)
}
