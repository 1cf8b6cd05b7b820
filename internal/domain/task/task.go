package task

import (
	"errors"
	"strings"

	"github.com/forPelevin/ffmpeg-english/internal/types"
)

const (
	Model       = "gpt-4"
	MaxTokens   = 150
	Temperature = 0.5

	SystemInstruction = "You are an expert in FFmpeg commands. Given the following English description of a task, " +
		"you respond with the correct FFmpeg command. Do not include any other information in your response " +
		"except for the command only."
)

var ErrEmpty = errors.New("task description is empty")

// Description joins CLI words with single spaces. Words are neither escaped nor normalized.
func Description(words []string) (string, error) {
	if len(words) == 0 {
		return "", ErrEmpty
	}
	return strings.Join(words, " "), nil
}

// NewPrompt wraps a task description in the fixed request parameters.
func NewPrompt(description string) types.Prompt {
	return types.Prompt{
		Model:       Model,
		System:      SystemInstruction,
		User:        description,
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	}
}
