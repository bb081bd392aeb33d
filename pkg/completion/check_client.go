package completion

import (
	"strings"

	"github.com/querybench/querybench/pkg/token"
)

// clientChecker classifies cursor positions in client-side commands:
// "@file" includes, backslash meta commands and the Wb* command family.
type clientChecker struct{}

func (clientChecker) checkContext(a *Analyzer, req Request, toks []token.Token) Result {
	verb := toks[0]
	switch {
	case verb.Text == "@":
		return Result{
			Context: StatementParameter,
			Title:   "Include file",
		}
	case verb.Text == `\`:
		return Result{
			Context:    KeywordList,
			KeywordKey: "client.commands.txt",
			Title:      "Commands",
		}
	}

	// Wb* command: still typing the command name itself, or one of its
	// parameters after it.
	if req.Cursor <= verb.End {
		return Result{
			Context:    KeywordList,
			KeywordKey: "client.commands.txt",
			Title:      "Commands",
		}
	}
	return Result{
		Context:    StatementParameter,
		KeywordKey: strings.ToLower(verb.Text) + ".options.txt",
		Title:      "Parameters",
	}
}
