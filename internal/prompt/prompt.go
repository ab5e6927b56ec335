// Package prompt asks the user questions. The huh-backed implementation is
// used on a terminal; Scripted answers from a fixed list.
package prompt

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/ojsef39/opsops/internal/errs"
)

// Prompter is the capability the interactive commands depend on.
type Prompter interface {
	Confirm(title string, def bool) (bool, error)
	Select(title string, options []string) (int, error)
	Input(title, placeholder string) (string, error)
}

// ErrNoTerminal is returned when a prompt is needed but stdin is not a TTY.
var ErrNoTerminal = fmt.Errorf("%w: no terminal available to prompt", errs.ErrUserAborted)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Huh prompts with charmbracelet/huh forms.
type Huh struct {
	Interactive bool
}

// NewHuh returns a prompter that is interactive when stdin is a terminal.
func NewHuh() *Huh {
	return &Huh{Interactive: IsTerminal(os.Stdin)}
}

func (h *Huh) Confirm(title string, def bool) (bool, error) {
	if !h.Interactive {
		return false, ErrNoTerminal
	}
	value := def
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return false, formError(err)
	}
	return value, nil
}

func (h *Huh) Select(title string, options []string) (int, error) {
	if !h.Interactive {
		return 0, ErrNoTerminal
	}
	if len(options) == 0 {
		return 0, fmt.Errorf("nothing to select for %q", title)
	}

	opts := make([]huh.Option[int], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, i)
	}

	var selected int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(title).
				Options(opts...).
				Filtering(true).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return 0, formError(err)
	}
	return selected, nil
}

func (h *Huh) Input(title, placeholder string) (string, error) {
	if !h.Interactive {
		return "", ErrNoTerminal
	}
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(&value).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("a value is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", formError(err)
	}
	return value, nil
}

func formError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return fmt.Errorf("%w: %v", errs.ErrUserAborted, err)
	}
	return err
}
