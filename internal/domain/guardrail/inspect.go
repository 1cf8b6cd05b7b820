package guardrail

import (
	"fmt"
	"strings"

	"github.com/google/shlex"

	"github.com/forPelevin/ffmpeg-english/internal/types"
)

var unguarded = []struct {
	token  string
	detail string
}{
	{"`", "backtick command substitution"},
	{"$(", "command substitution"},
	{"&&", "conditional chaining"},
	{">", "output redirection"},
	{"<", "input redirection"},
	{"\n", "newline separates commands"},
}

// Inspect lists shell constructs that Check lets through. An empty result
// means nothing notable was found, not that the command is safe.
func Inspect(command string) []types.Advisory {
	var out []types.Advisory

	argv, err := shlex.Split(command)
	switch {
	case err != nil:
		out = append(out, types.Advisory{Construct: "quoting", Detail: err.Error()})
	case len(argv) > 0 && argv[0] != Prefix:
		out = append(out, types.Advisory{
			Construct: "program",
			Detail:    fmt.Sprintf("first word is %q, not %q", argv[0], Prefix),
		})
	}

	for _, u := range unguarded {
		if strings.Contains(command, u.token) {
			out = append(out, types.Advisory{Construct: u.token, Detail: u.detail})
		}
	}
	if strings.Contains(strings.ReplaceAll(command, "&&", ""), "&") {
		out = append(out, types.Advisory{Construct: "&", Detail: "background job or fd duplication"})
	}
	return out
}
