package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/forPelevin/ffmpeg-english/internal/domain/guardrail"
)

const (
	usageLine = "Usage: ffmpeg-english <task_description>"

	exitFailure  = 1
	exitRejected = 2
)

var errUsage = errors.New("missing task description")

type options struct {
	configPath string
	dryRun     bool
	confirm    bool
	verbose    bool
	timeout    time.Duration
	shell      string
}

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present
	os.Exit(Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, usageLine)
		return exitFailure
	case errors.Is(err, guardrail.ErrRejected):
		fmt.Fprintln(stderr, err)
		return exitRejected
	default:
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "ffmpeg-english [flags] <task description>",
		Short: "Turn a plain-English media task into an ffmpeg command and run it",
		Long: `ffmpeg-english asks a language model for the ffmpeg command matching a task
description, checks it, prints it and runs it through the shell after 2 seconds.

The checks only require the command to start with "ffmpeg" and to contain
neither ";" nor "|". Other shell constructs (backticks, $(), &&, redirection,
newlines) are reported as warnings but still executed.

Flags go before the task. Everything from the first task word on is task
text. Use "--" to end flag parsing when the task itself starts with "-".

Examples:
  ffmpeg-english take all of the images ending with .jpg in this directory and make a 30fps timelapse
  ffmpeg-english --dry-run -- -vf scale=640:-1 on input.mp4`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errUsage
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	// Words after the task's first word are task text, not flags.
	root.Flags().SetInterspersed(false)

	root.Flags().StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/ffmpeg-english/config.yaml)")
	root.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the command instead of running it")
	root.Flags().BoolVar(&opts.confirm, "confirm", false, "Ask before running instead of waiting 2 seconds")
	root.Flags().DurationVar(&opts.timeout, "timeout", 0, "Limit for the API call (0 means none)")
	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")

	// Hidden override of the command interpreter
	root.Flags().StringVar(&opts.shell, "shell", "", "Shell that runs the command")
	_ = root.Flags().MarkHidden("shell")

	return root
}
