//go:build !windows

package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCapture(t *testing.T, a *Adapter, command string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	WithStdio(strings.NewReader(""), &stdout, &stderr)(a)
	code, err := a.Run(context.Background(), command)
	if err != nil {
		t.Fatalf("run %q: %v", command, err)
	}
	return code, stdout.String(), stderr.String()
}

func TestRun_PassesCommandLineVerbatim(t *testing.T) {
	code, out, _ := runCapture(t, New(""), `printf '%s|' "a b" c`)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if out != "a b|c|" {
		t.Fatalf("unexpected stdout: %q", out)
	}
}

func TestRun_ReportsExitCodeWithoutError(t *testing.T) {
	code, _, errOut := runCapture(t, New(""), "echo boom >&2; exit 7")
	if code != 7 {
		t.Fatalf("exit code = %d, want 7", code)
	}
	if strings.TrimSpace(errOut) != "boom" {
		t.Fatalf("unexpected stderr: %q", errOut)
	}
}

func TestRun_InheritsStdin(t *testing.T) {
	var stdout bytes.Buffer
	a := New("", WithStdio(strings.NewReader("y\n"), &stdout, &bytes.Buffer{}))
	if _, err := a.Run(context.Background(), "read answer; echo got=$answer"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != "got=y" {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

func TestRun_MissingShell(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-shell")
	code, err := New(missing).Run(context.Background(), "ffmpeg -version")
	if err == nil {
		t.Fatalf("expected dispatch error")
	}
	if code != -1 {
		t.Fatalf("exit code = %d, want -1", code)
	}
	if !strings.Contains(err.Error(), "dispatch "+missing) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	if got := New("").Shell(); got != "/bin/sh" {
		t.Fatalf("default shell = %q", got)
	}
	if got := New("/bin/bash").Shell(); got != "/bin/bash" {
		t.Fatalf("custom shell = %q", got)
	}
	a := New("")
	if a.stdout != os.Stdout || a.stderr != os.Stderr || a.stdin != os.Stdin {
		t.Fatalf("expected inherited stdio by default")
	}
}
