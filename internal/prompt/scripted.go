package prompt

import (
	"fmt"

	"github.com/ojsef39/opsops/internal/errs"
)

// Scripted answers prompts from queued values and records every title asked.
type Scripted struct {
	Confirms []bool
	Selects  []int
	Inputs   []string

	Asked []string
}

func (s *Scripted) Confirm(title string, _ bool) (bool, error) {
	s.Asked = append(s.Asked, title)
	if len(s.Confirms) == 0 {
		return false, s.exhausted(title)
	}
	v := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return v, nil
}

func (s *Scripted) Select(title string, options []string) (int, error) {
	s.Asked = append(s.Asked, title)
	if len(s.Selects) == 0 {
		return 0, s.exhausted(title)
	}
	v := s.Selects[0]
	s.Selects = s.Selects[1:]
	if v < 0 || v >= len(options) {
		return 0, fmt.Errorf("scripted selection %d out of range for %q (%d options)", v, title, len(options))
	}
	return v, nil
}

func (s *Scripted) Input(title, _ string) (string, error) {
	s.Asked = append(s.Asked, title)
	if len(s.Inputs) == 0 {
		return "", s.exhausted(title)
	}
	v := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	return v, nil
}

func (s *Scripted) exhausted(title string) error {
	return fmt.Errorf("%w: no scripted answer for %q", errs.ErrUserAborted, title)
}
