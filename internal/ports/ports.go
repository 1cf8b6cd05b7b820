package ports

import (
	"context"

	"github.com/forPelevin/ffmpeg-english/internal/types"
)

// Synthesizer turns a prompt into the raw completion text of the first choice.
type Synthesizer interface {
	Complete(ctx context.Context, p types.Prompt) (string, error)
}

// Shell hands one literal command line to the OS command interpreter. The
// exit code is that of the interpreter; err is reserved for failures to start it.
type Shell interface {
	Run(ctx context.Context, command string) (exitCode int, err error)
}

type Prompter interface {
	Confirm(message string, defaultValue bool) (bool, error)
}
