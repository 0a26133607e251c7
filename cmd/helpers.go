package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/utils"
	"github.com/keyfold/keyfold/internal/workflows"

	"github.com/briandowns/spinner"
)

// errCommandFailed signals that a command already printed its failure
// message and only a non-zero exit is still needed.
var errCommandFailed = errors.New("command failed")

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should
// be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The
// cleanup function calls ui.EnsureNewline() on the final message before
// printing it, so output formatting stays consistent across commands.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Discard stray log output while the spinner owns the line.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// confirmWith builds the confirmation callback for a destructive command.
// A --yes flag returns nil, meaning already confirmed. Otherwise the
// spinner is paused for the prompt and resumed afterwards.
func confirmWith(s *spinner.Spinner, yes bool) workflows.Confirm {
	if yes {
		return nil
	}
	return func(prompt string) bool {
		if !verbose && !debug {
			s.Stop()
		}
		ok := utils.Confirm(prompt)
		if !verbose && !debug {
			s.Restart()
		}
		return ok
	}
}

// fail records a formatted failure message as the spinner's final output
// and returns errCommandFailed for the exit code.
func fail(s *spinner.Spinner, msg string) error {
	s.FinalMSG = ui.Error.Sprint("✗") + " " + msg
	return errCommandFailed
}
