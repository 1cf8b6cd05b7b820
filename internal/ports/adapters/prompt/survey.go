package prompt

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

var ErrInterrupted = errors.New("prompt interrupted")

type askFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// Survey asks on the controlling terminal.
type Survey struct {
	ask  askFunc
	opts []survey.AskOpt
}

func NewSurvey(opts ...survey.AskOpt) *Survey {
	return &Survey{ask: survey.AskOne, opts: opts}
}

func (p *Survey) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	q := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := p.ask(q, &result, p.opts...); err != nil {
		return false, mapAskError(err)
	}
	return result, nil
}

func mapAskError(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrInterrupted
	}
	return err
}
