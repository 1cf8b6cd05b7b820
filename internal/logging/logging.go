package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// New returns a stderr-style logger tagged with a short per-invocation run id.
func New(w io.Writer, verbose, noColor bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	})
	return slog.New(h).With("run", RunID())
}

func RunID() string {
	return uuid.NewString()[:8]
}

// NoColor reports whether output to f should be plain.
func NoColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	fd := f.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}
