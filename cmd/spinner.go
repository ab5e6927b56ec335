package cmd

import (
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
)

// startSpinner shows message with a spinner while a slow op query runs.
// When disabled it does nothing. The returned cleanup prints FinalMSG, if
// one was set, either way.
func startSpinner(w io.Writer, message string, enabled bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	_ = s.Color("cyan")

	if enabled {
		s.Start()
	}

	cleanup := func() {
		if s.FinalMSG != "" && !strings.HasSuffix(s.FinalMSG, "\n") {
			s.FinalMSG += "\n"
		}
		if enabled {
			s.Stop()
		} else if s.FinalMSG != "" {
			_, _ = io.WriteString(w, s.FinalMSG)
		}
	}
	return s, cleanup
}
