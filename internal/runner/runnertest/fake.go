// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/ojsef39/opsops/internal/errs"
	"github.com/ojsef39/opsops/internal/runner"
)

// Response is what the fake returns for a matching command.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// Err simulates a spawn failure.
	Err error
}

// Fake answers commands whose command line starts with a registered prefix.
// The longest matching prefix wins.
type Fake struct {
	mu        sync.Mutex
	responses map[string]Response
	missing   map[string]bool
	calls     []runner.Command
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{responses: map[string]Response{}, missing: map[string]bool{}}
}

// On registers resp for commands starting with prefix, e.g. "op vault list".
func (f *Fake) On(prefix string, resp Response) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[prefix] = resp
	return f
}

// Missing makes LookPath fail for name.
func (f *Fake) Missing(name string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.missing[name] = true
	return f
}

// Calls returns every command run so far.
func (f *Fake) Calls() []runner.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]runner.Command(nil), f.calls...)
}

// Last returns the most recent command. It panics when nothing ran.
func (f *Fake) Last() runner.Command {
	calls := f.Calls()
	return calls[len(calls)-1]
}

func (f *Fake) Run(_ context.Context, cmd runner.Command) (runner.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	resp, ok := f.match(cmd.String())
	f.mu.Unlock()

	if !ok {
		return runner.Result{}, fmt.Errorf("%w: no fake response for %q", errs.ErrSpawn, cmd.String())
	}
	if resp.Err != nil {
		return runner.Result{}, resp.Err
	}

	res := runner.Result{ExitCode: resp.ExitCode}
	if cmd.Stdout != nil {
		fmt.Fprint(cmd.Stdout, resp.Stdout)
	} else {
		res.Stdout = []byte(resp.Stdout)
	}
	if cmd.Stderr != nil {
		fmt.Fprint(cmd.Stderr, resp.Stderr)
	} else {
		res.Stderr = []byte(resp.Stderr)
	}
	return res, nil
}

func (f *Fake) Start(ctx context.Context, cmd runner.Command) (runner.Process, error) {
	res, err := f.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return &process{res: res}, nil
}

func (f *Fake) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missing[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/usr/local/bin/" + name, nil
}

func (f *Fake) match(line string) (Response, bool) {
	best := -1
	var resp Response
	for prefix, r := range f.responses {
		if (line == prefix || strings.HasPrefix(line, prefix+" ")) && len(prefix) > best {
			best = len(prefix)
			resp = r
		}
	}
	return resp, best >= 0
}

type process struct {
	res runner.Result
}

func (p *process) Pid() int { return 4242 }

func (p *process) Wait() (runner.Result, error) { return p.res, nil }
