// Package guardrail holds the textual checks a candidate command must pass
// before it is handed to the shell.
//
// The checks reject commands that do not start with "ffmpeg" and commands
// chaining or piping into another program with ";" or "|". They are not a
// command-grammar validator: backticks, "$()", "&&", "&", redirection and
// newlines all pass Check. Inspect reports those constructs so callers can
// surface them, but it never rejects.
package guardrail

import (
	"errors"
	"fmt"
	"strings"

	"github.com/forPelevin/ffmpeg-english/internal/types"
)

const Prefix = "ffmpeg"

var ErrRejected = errors.New("rejected command")

type RejectedError struct {
	Rule    types.Rejection
	Command string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected command: %s: %s: %q", e.Rule, reason(e.Rule), e.Command)
}

func (e *RejectedError) Is(target error) bool { return target == ErrRejected }

func reason(r types.Rejection) string {
	switch r {
	case types.RejectPrefix:
		return `does not start with "` + Prefix + `"`
	case types.RejectSemicolon:
		return `contains ";"`
	case types.RejectPipe:
		return `contains "|"`
	default:
		return "unknown rule"
	}
}

// Check applies the rules in order and returns a *RejectedError for the
// first one the command fails.
func Check(command string) error {
	switch {
	case !strings.HasPrefix(command, Prefix):
		return &RejectedError{Rule: types.RejectPrefix, Command: command}
	case strings.Contains(command, ";"):
		return &RejectedError{Rule: types.RejectSemicolon, Command: command}
	case strings.Contains(command, "|"):
		return &RejectedError{Rule: types.RejectPipe, Command: command}
	}
	return nil
}
