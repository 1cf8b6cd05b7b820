package types

// Prompt is the logical request sent to the text-generation service.
type Prompt struct {
	Model       string
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Rejection names the guardrail a candidate command failed.
type Rejection string

const (
	RejectPrefix    Rejection = "prefix"
	RejectSemicolon Rejection = "semicolon"
	RejectPipe      Rejection = "pipe"
)

type Advisory struct {
	Construct string
	Detail    string
}
