//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/forPelevin/ffmpeg-english/internal/domain/guardrail"
	"github.com/forPelevin/ffmpeg-english/internal/domain/task"
	"github.com/forPelevin/ffmpeg-english/internal/types"
	"github.com/forPelevin/ffmpeg-english/internal/usecase"
)

// mockSynth records every prompt sent to the model
type mockSynth struct {
	reply   string
	err     error
	prompts []types.Prompt
}

func (m *mockSynth) Complete(_ context.Context, p types.Prompt) (string, error) {
	m.prompts = append(m.prompts, p)
	return m.reply, m.err
}

// mockShell records dispatched command lines instead of running them
type mockShell struct {
	commands []string
}

func (m *mockShell) Run(_ context.Context, command string) (int, error) {
	m.commands = append(m.commands, command)
	return 0, nil
}

type translateContext struct {
	synth  *mockSynth
	shell  *mockShell
	pauses []time.Duration
	output *bytes.Buffer
	logs   *bytes.Buffer
	result usecase.Result
	err    error
}

// SharedTranslateContext is reset before each scenario via Before hook
var SharedTranslateContext *translateContext

func getTranslateContext() *translateContext {
	return SharedTranslateContext
}

func InitializeTranslateScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedTranslateContext = &translateContext{
			synth:  &mockSynth{},
			shell:  &mockShell{},
			output: &bytes.Buffer{},
			logs:   &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.Step(`^the model replies with "([^"]*)"$`, theModelRepliesWith)
	ctx.Step(`^the model fails with "([^"]*)"$`, theModelFailsWith)
	ctx.Step(`^I run the translator with "([^"]*)"$`, iRunTheTranslatorWith)
	ctx.Step(`^I run the translator in dry-run mode with "([^"]*)"$`, iRunTheTranslatorInDryRunModeWith)
	ctx.Step(`^I run the translator with no words$`, iRunTheTranslatorWithNoWords)
	ctx.Step(`^the task sent to the model is "([^"]*)"$`, theTaskSentToTheModelIs)
	ctx.Step(`^the request uses the fixed system instruction and sampling parameters$`, theRequestUsesFixedParameters)
	ctx.Step(`^the output is "([^"]*)"$`, theOutputIs)
	ctx.Step(`^nothing is printed$`, nothingIsPrinted)
	ctx.Step(`^the program pauses for (\d+) seconds$`, theProgramPausesFor)
	ctx.Step(`^the program does not pause$`, theProgramDoesNotPause)
	ctx.Step(`^the shell runs "([^"]*)"$`, theShellRuns)
	ctx.Step(`^the shell runs nothing$`, theShellRunsNothing)
	ctx.Step(`^the command is rejected by the "([^"]*)" guardrail$`, theCommandIsRejectedBy)
	ctx.Step(`^a warning mentions "([^"]*)"$`, aWarningMentions)
	ctx.Step(`^the run fails because the task description is empty$`, theRunFailsBecauseEmpty)
	ctx.Step(`^the run fails with "([^"]*)"$`, theRunFailsWith)
	ctx.Step(`^the model is not called$`, theModelIsNotCalled)
	ctx.Step(`^the model is called (\d+) times?$`, theModelIsCalledTimes)
}

func theModelRepliesWith(reply string) error {
	getTranslateContext().synth.reply = reply
	return nil
}

func theModelFailsWith(msg string) error {
	getTranslateContext().synth.err = errors.New(msg)
	return nil
}

func run(words []string, dryRun bool) error {
	tc := getTranslateContext()
	uc := usecase.New(usecase.Deps{
		Synth: tc.synth,
		Shell: tc.shell,
		Pause: func(_ context.Context, d time.Duration) error {
			tc.pauses = append(tc.pauses, d)
			return nil
		},
		Log: slog.New(slog.NewTextHandler(tc.logs, nil)),
	})
	tc.result, tc.err = uc.Run(context.Background(), usecase.Input{
		Words:  words,
		Out:    tc.output,
		DryRun: dryRun,
	})
	return nil
}

func iRunTheTranslatorWith(text string) error {
	return run(strings.Fields(text), false)
}

func iRunTheTranslatorInDryRunModeWith(text string) error {
	return run(strings.Fields(text), true)
}

func iRunTheTranslatorWithNoWords() error {
	return run(nil, false)
}

func theTaskSentToTheModelIs(want string) error {
	prompts := getTranslateContext().synth.prompts
	if len(prompts) != 1 {
		return fmt.Errorf("expected 1 request, got %d", len(prompts))
	}
	if prompts[0].User != want {
		return fmt.Errorf("task = %q, want %q", prompts[0].User, want)
	}
	return nil
}

func theRequestUsesFixedParameters() error {
	for _, p := range getTranslateContext().synth.prompts {
		if p.System != task.SystemInstruction {
			return fmt.Errorf("system instruction = %q", p.System)
		}
		if p.Model != task.Model || p.MaxTokens != task.MaxTokens || p.Temperature != task.Temperature {
			return fmt.Errorf("unexpected parameters: %+v", p)
		}
	}
	return nil
}

func theOutputIs(want string) error {
	got := strings.TrimSuffix(getTranslateContext().output.String(), "\n")
	if got != want {
		return fmt.Errorf("output = %q, want %q", got, want)
	}
	return nil
}

func nothingIsPrinted() error {
	if out := getTranslateContext().output.String(); out != "" {
		return fmt.Errorf("expected no output, got %q", out)
	}
	return nil
}

func theProgramPausesFor(seconds int) error {
	pauses := getTranslateContext().pauses
	want := time.Duration(seconds) * time.Second
	if len(pauses) != 1 || pauses[0] != want {
		return fmt.Errorf("pauses = %v, want [%s]", pauses, want)
	}
	return nil
}

func theProgramDoesNotPause() error {
	if pauses := getTranslateContext().pauses; len(pauses) != 0 {
		return fmt.Errorf("expected no pause, got %v", pauses)
	}
	return nil
}

func theShellRuns(want string) error {
	cmds := getTranslateContext().shell.commands
	if len(cmds) != 1 || cmds[0] != want {
		return fmt.Errorf("shell ran %q, want [%q]", cmds, want)
	}
	return nil
}

func theShellRunsNothing() error {
	if cmds := getTranslateContext().shell.commands; len(cmds) != 0 {
		return fmt.Errorf("expected no dispatch, got %q", cmds)
	}
	return nil
}

func theCommandIsRejectedBy(rule string) error {
	var re *guardrail.RejectedError
	if !errors.As(getTranslateContext().err, &re) {
		return fmt.Errorf("expected a rejection, got %v", getTranslateContext().err)
	}
	if string(re.Rule) != rule {
		return fmt.Errorf("rejected by %s, want %s", re.Rule, rule)
	}
	return nil
}

func aWarningMentions(construct string) error {
	logs := getTranslateContext().logs.String()
	if !strings.Contains(logs, "level=WARN") || !strings.Contains(logs, "construct="+construct) {
		return fmt.Errorf("expected a warning about %q, logs:\n%s", construct, logs)
	}
	return nil
}

func theRunFailsBecauseEmpty() error {
	if !errors.Is(getTranslateContext().err, task.ErrEmpty) {
		return fmt.Errorf("expected empty task error, got %v", getTranslateContext().err)
	}
	return nil
}

func theRunFailsWith(msg string) error {
	err := getTranslateContext().err
	if err == nil || err.Error() != msg {
		return fmt.Errorf("error = %v, want %q", err, msg)
	}
	return nil
}

func theModelIsNotCalled() error {
	return theModelIsCalledTimes(0)
}

func theModelIsCalledTimes(n int) error {
	if got := len(getTranslateContext().synth.prompts); got != n {
		return fmt.Errorf("model called %d times, want %d", got, n)
	}
	return nil
}
