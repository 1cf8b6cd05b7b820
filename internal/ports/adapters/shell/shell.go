package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// Adapter runs a command line through the OS command interpreter, the way
// system(3) does: one string, no quoting applied, stdio inherited.
type Adapter struct {
	shell  string
	flag   string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type Option func(*Adapter)

// WithStdio replaces the inherited standard streams.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(a *Adapter) {
		a.stdin = stdin
		a.stdout = stdout
		a.stderr = stderr
	}
}

// New uses shellPath as the interpreter. An empty path picks /bin/sh, or
// cmd.exe on Windows.
func New(shellPath string, opts ...Option) *Adapter {
	shell, flag := DefaultShell(), "-c"
	if runtime.GOOS == "windows" {
		flag = "/C"
	}
	if shellPath != "" {
		shell = shellPath
	}
	a := &Adapter{
		shell:  shell,
		flag:   flag,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func DefaultShell() string {
	if runtime.GOOS == "windows" {
		if c := os.Getenv("COMSPEC"); c != "" {
			return c
		}
		return "cmd.exe"
	}
	return "/bin/sh"
}

func (a *Adapter) Shell() string { return a.shell }

func (a *Adapter) Run(ctx context.Context, command string) (int, error) {
	cmd := exec.CommandContext(ctx, a.shell, a.flag, command)
	cmd.Stdin = a.stdin
	cmd.Stdout = a.stdout
	cmd.Stderr = a.stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("dispatch %s: %w", a.shell, err)
}
