package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forPelevin/ffmpeg-english/internal/config"
	"github.com/forPelevin/ffmpeg-english/internal/logging"
	"github.com/forPelevin/ffmpeg-english/internal/pipeline"
)

func run(cmd *cobra.Command, args []string, opts *options) error {
	flags := cmd.Flags()
	log := logging.New(cmd.ErrOrStderr(), opts.verbose, noColor(cmd.ErrOrStderr()))

	explicit := flags.Changed("config")
	path := opts.configPath
	if !explicit {
		path = config.DefaultPath()
	}
	file, err := config.LoadOptional(path, explicit)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	timeout, err := file.TimeoutDuration()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if flags.Changed("timeout") {
		timeout = opts.timeout
	}
	confirm := file.Confirm
	if flags.Changed("confirm") {
		confirm = opts.confirm
	}

	cfg := pipeline.Config{
		Words:   args,
		DryRun:  opts.dryRun,
		Confirm: confirm,
		Out:     cmd.OutOrStdout(),
		Log:     log,
		Shell:   firstNonEmpty(opts.shell, file.Shell),
		Timeout: timeout,

		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:      firstNonEmpty(os.Getenv("OPENAI_BASE_URL"), file.BaseURL),
		OpenAIAllowedHosts: file.AllowedHosts,
	}
	if v := os.Getenv("OPENAI_ALLOWED_HOSTS"); strings.TrimSpace(v) != "" {
		cfg.OpenAIAllowedHosts = strings.Split(v, ",")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log.Debug("config loaded", "config_file", path, "dry_run", cfg.DryRun, "confirm", cfg.Confirm)

	res, err := pipeline.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if res.Dispatched {
		log.Debug("dispatched", "command", res.Command, "exit_code", res.ExitCode)
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func noColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return logging.NoColor(f)
}
