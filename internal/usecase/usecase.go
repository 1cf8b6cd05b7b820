package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/forPelevin/ffmpeg-english/internal/domain/guardrail"
	"github.com/forPelevin/ffmpeg-english/internal/domain/task"
	"github.com/forPelevin/ffmpeg-english/internal/ports"
	"github.com/forPelevin/ffmpeg-english/internal/types"
)

// ExecDelay is the pause between announcing a command and running it.
const ExecDelay = 2 * time.Second

// ConfirmPrompt precedes the command in the --confirm question.
const ConfirmPrompt = "Run this command?"

type Deps struct {
	Synth    ports.Synthesizer
	Shell    ports.Shell
	Prompter ports.Prompter

	// Pause defaults to Sleep.
	Pause func(ctx context.Context, d time.Duration) error
	Log   *slog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Pause == nil {
		d.Pause = Sleep
	}
	if d.Log == nil {
		d.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Usecase{d: d}
}

type Input struct {
	Words []string
	Out   io.Writer

	// DryRun prints the accepted command instead of running it.
	DryRun bool
	// Confirm asks before running instead of pausing.
	Confirm bool
}

type Result struct {
	Task       string
	Command    string
	Advisories []types.Advisory
	Dispatched bool
	ExitCode   int
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	desc, err := task.Description(in.Words)
	if err != nil {
		return Result{}, err
	}
	out := in.Out
	if out == nil {
		out = io.Discard
	}

	p := task.NewPrompt(desc)
	u.d.Log.Debug("requesting command", "model", p.Model, "max_tokens", p.MaxTokens, "temperature", p.Temperature, "task", desc)
	raw, err := u.d.Synth.Complete(ctx, p)
	if err != nil {
		return Result{Task: desc}, err
	}

	res := Result{Task: desc, Command: strings.TrimSpace(raw)}
	if err := guardrail.Check(res.Command); err != nil {
		return res, err
	}
	res.Advisories = guardrail.Inspect(res.Command)
	for _, a := range res.Advisories {
		u.d.Log.Warn("command contains a shell construct the guardrails do not block",
			"construct", a.Construct, "detail", a.Detail)
	}

	if in.DryRun {
		fmt.Fprintln(out, res.Command)
		return res, nil
	}

	if in.Confirm {
		ok, err := u.confirm(res.Command)
		if err != nil {
			return res, err
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled.")
			return res, nil
		}
	} else {
		fmt.Fprintf(out, "Executing command: %s in %d seconds (^C to cancel)\n", res.Command, int(ExecDelay/time.Second))
		if err := u.d.Pause(ctx, ExecDelay); err != nil {
			return res, err
		}
	}

	code, err := u.d.Shell.Run(ctx, res.Command)
	if err != nil {
		return res, err
	}
	res.Dispatched = true
	res.ExitCode = code
	u.d.Log.Debug("command finished", "exit_code", code)
	return res, nil
}

func (u Usecase) confirm(command string) (bool, error) {
	if u.d.Prompter == nil {
		return false, errors.New("confirm: no prompter configured")
	}
	ok, err := u.d.Prompter.Confirm(ConfirmPrompt+" "+command, false)
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
