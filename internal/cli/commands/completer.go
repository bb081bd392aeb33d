package commands

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/querybench/querybench/pkg/completion"
	"github.com/querybench/querybench/pkg/splitter"
)

// completionTimeout bounds the metadata lookups behind one tab press.
const completionTimeout = 2 * time.Second

// replCompleter implements readline's AutoCompleter interface on top of
// the completion engine.
type replCompleter struct {
	cc       *CommandContext
	analyzer *completion.Analyzer
	resolver *completion.Resolver
}

func newREPLCompleter(cc *CommandContext) *replCompleter {
	analyzer, resolver := cc.Completer()
	return &replCompleter{cc: cc, analyzer: analyzer, resolver: resolver}
}

var dotCommands = []string{
	".help", ".tables", ".schema", ".format", ".refresh", ".clear", ".quit", ".exit",
}

// Do returns completion candidates for the current line and cursor
// position. newLine carries the suffixes to append beyond the typed
// prefix; length is the rune length of that prefix.
func (c *replCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	text := string(line)
	cursor := len(string(line[:pos]))

	if strings.HasPrefix(strings.TrimSpace(text), ".") {
		prefix := strings.TrimSpace(text[:cursor])
		return suffixes(dotCommands, prefix), utf8.RuneCountInString(prefix)
	}

	// Narrow the analysis to the sub-query branch under the cursor, so
	// completion inside "(select ...)" sees that query's own scope.
	branch := splitter.SubSelectAt(text, cursor)
	req := completion.Request{
		Text:   text[branch.Start:branch.End],
		Cursor: cursor - branch.Start,
	}

	res := c.analyzer.Analyze(req)
	if res.Context == completion.NoContext {
		return nil, 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()
	res = c.resolver.Resolve(ctx, res)

	var texts []string
	for _, cand := range res.Candidates {
		texts = append(texts, cand.Text)
	}
	return suffixes(texts, res.Prefix), utf8.RuneCountInString(res.Prefix)
}

// suffixes filters candidates by prefix (case-insensitively) and strips
// the prefix from each match, as readline expects.
func suffixes(candidates []string, prefix string) [][]rune {
	var out [][]rune
	for _, cand := range candidates {
		if len(cand) < len(prefix) {
			continue
		}
		if !strings.EqualFold(cand[:len(prefix)], prefix) {
			continue
		}
		out = append(out, []rune(cand[len(prefix):]+" "))
	}
	return out
}
