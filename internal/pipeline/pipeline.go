package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/forPelevin/ffmpeg-english/internal/ports"
	"github.com/forPelevin/ffmpeg-english/internal/ports/adapters/openai"
	"github.com/forPelevin/ffmpeg-english/internal/ports/adapters/prompt"
	"github.com/forPelevin/ffmpeg-english/internal/ports/adapters/shell"
	"github.com/forPelevin/ffmpeg-english/internal/usecase"
)

type Config struct {
	Words   []string
	DryRun  bool
	Confirm bool
	Out     io.Writer
	Log     *slog.Logger

	// Shell is the interpreter given the command line. Empty means the
	// platform default.
	Shell string

	// Timeout bounds the API call. Zero means no program-side limit.
	Timeout time.Duration

	OpenAIAPIKey       string
	OpenAIBaseURL      string
	OpenAIAllowedHosts []string

	// Prompter overrides the terminal prompt used by Confirm.
	Prompter ports.Prompter
}

func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0")
	}
	if c.Shell != "" {
		if _, err := exec.LookPath(c.Shell); err != nil {
			return fmt.Errorf("shell %q: %w", c.Shell, err)
		}
	}
	return openai.ValidateBaseURL(c.OpenAIBaseURL, c.OpenAIAllowedHosts)
}

func Run(ctx context.Context, cfg Config) (usecase.Result, error) {
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	// adapters
	synth := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Timeout)
	sh := shell.New(cfg.Shell)
	var prompter ports.Prompter = prompt.NewSurvey()
	if cfg.Prompter != nil {
		prompter = cfg.Prompter
	}
	log.Debug("adapters ready", "shell", sh.Shell(), "timeout", cfg.Timeout)

	uc := usecase.New(usecase.Deps{
		Synth:    synth,
		Shell:    sh,
		Prompter: prompter,
		Log:      log,
	})
	return uc.Run(ctx, usecase.Input{
		Words:   cfg.Words,
		Out:     out,
		DryRun:  cfg.DryRun,
		Confirm: cfg.Confirm,
	})
}

// ensure adapters implement ports
var _ ports.Synthesizer = (*openai.Adapter)(nil)
var _ ports.Shell = (*shell.Adapter)(nil)
var _ ports.Prompter = (*prompt.Survey)(nil)
