package delimiter

import (
	"testing"

	"github.com/querybench/querybench/pkg/lexer"
	"github.com/querybench/querybench/pkg/token"
)

// feed runs the lexer over input and feeds every non-trivia token to the
// policy, marking the first token of each line or statement.
func feed(pol Policy, input string) {
	lx := lexer.New(input)
	first := true
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return
		}
		if tok.IsTrivia() {
			if tok.Kind == token.Whitespace && tok.ContainsNewline() {
				pol.LineEnd()
				first = true
			}
			continue
		}
		pol.CurrentToken(tok, first)
		first = false
	}
}

func TestDefinitionKinds(t *testing.T) {
	tests := []struct {
		def         Definition
		standard    bool
		nonStandard bool
		empty       bool
	}{
		{Standard, true, false, false},
		{Definition{Text: "//"}, false, true, false},
		{Definition{Text: "GO"}, false, true, false},
		{CopyTerminator, false, true, false},
		{Definition{}, false, false, true},
	}

	for _, tt := range tests {
		if got := tt.def.IsStandard(); got != tt.standard {
			t.Errorf("%q IsStandard = %v, want %v", tt.def.Text, got, tt.standard)
		}
		if got := tt.def.IsNonStandard(); got != tt.nonStandard {
			t.Errorf("%q IsNonStandard = %v, want %v", tt.def.Text, got, tt.nonStandard)
		}
		if got := tt.def.IsEmpty(); got != tt.empty {
			t.Errorf("%q IsEmpty = %v, want %v", tt.def.Text, got, tt.empty)
		}
	}
}

func TestDynamicDefault(t *testing.T) {
	p := NewDynamicPolicy()
	if got := p.CurrentDelimiter(); !got.IsStandard() {
		t.Fatalf("fresh policy delimiter = %q, want ;", got.Text)
	}
	feed(p, "select 1 from t")
	if got := p.CurrentDelimiter(); !got.IsStandard() {
		t.Fatalf("delimiter after ordinary tokens = %q, want ;", got.Text)
	}
	if p.IsSingleLineStatement() {
		t.Fatal("ordinary statement must not be single-line")
	}
}

func TestDynamicDelimiterCommand(t *testing.T) {
	p := NewDynamicPolicy()
	feed(p, "DELIMITER //")
	if !p.IsSingleLineStatement() {
		t.Fatal("DELIMITER command must be a single-line statement")
	}

	// The change applies when the command's statement finishes.
	p.StatementFinished()
	if got := p.CurrentDelimiter().Text; got != "//" {
		t.Fatalf("delimiter after command = %q, want //", got)
	}
	if p.IsSingleLineStatement() {
		t.Fatal("single-line flag must reset per statement")
	}

	// And back.
	feed(p, "DELIMITER ;")
	p.StatementFinished()
	if got := p.CurrentDelimiter(); !got.IsStandard() {
		t.Fatalf("delimiter after reset = %q, want ;", got.Text)
	}
}

func TestDynamicDelimiterArgumentPieces(t *testing.T) {
	// The argument may lex as several tokens; only contiguous pieces
	// form the delimiter.
	p := NewDynamicPolicy()
	feed(p, "DELIMITER ;;")
	p.StatementFinished()
	if got := p.CurrentDelimiter().Text; got != ";;" {
		t.Fatalf("delimiter = %q, want ;;", got)
	}
}

func TestDynamicIncludeLine(t *testing.T) {
	p := NewDynamicPolicy()
	feed(p, "@setup.sql")
	if !p.IsSingleLineStatement() {
		t.Fatal("@file include must be a single-line statement")
	}
}

func TestDynamicAlternateDelimiter(t *testing.T) {
	p := NewDynamicPolicy()
	alt := Definition{Text: "/"}
	p.SetAlternateDelimiter(&alt)
	if got := p.CurrentDelimiter().Text; got != "/" {
		t.Fatalf("alternate delimiter = %q, want /", got)
	}

	// The alternate survives statement boundaries until cleared.
	p.StatementFinished()
	if got := p.CurrentDelimiter().Text; got != "/" {
		t.Fatalf("alternate after statement = %q, want /", got)
	}
	p.SetAlternateDelimiter(nil)
	if got := p.CurrentDelimiter(); !got.IsStandard() {
		t.Fatalf("delimiter after clearing alternate = %q, want ;", got.Text)
	}
}

func TestPostgresCopyPayload(t *testing.T) {
	p := NewPostgresPolicy()
	feed(p, "copy users from stdin ;")
	if got := p.CurrentDelimiter(); got != CopyTerminator {
		t.Fatalf("delimiter inside COPY payload = %+v, want CopyTerminator", got)
	}
	if !p.CurrentDelimiter().Inclusive {
		t.Fatal("COPY terminator must be inclusive")
	}

	p.StatementFinished()
	if got := p.CurrentDelimiter(); !got.IsStandard() {
		t.Fatalf("delimiter after COPY = %q, want ;", got.Text)
	}
}

func TestPostgresCopyWithoutStdin(t *testing.T) {
	p := NewPostgresPolicy()
	feed(p, "copy users from 'file.csv'")
	if got := p.CurrentDelimiter(); !got.IsStandard() {
		t.Fatalf("COPY FROM file delimiter = %q, want ;", got.Text)
	}
}

func TestPostgresBeginAtomic(t *testing.T) {
	p := NewPostgresPolicy()
	feed(p, "create procedure p() language sql begin atomic select 1")
	if got := p.CurrentDelimiter().Text; got != AtomicSentinel {
		t.Fatalf("delimiter inside atomic body = %q, want sentinel", got)
	}

	// A bare END does not close the body without a preceding terminator.
	feed(p, "end")
	if got := p.CurrentDelimiter().Text; got != AtomicSentinel {
		t.Fatal("bare END must not close the atomic body")
	}

	// "; END" does.
	feed(p, "; end")
	if got := p.CurrentDelimiter(); !got.IsStandard() {
		t.Fatalf("delimiter after '; end' = %q, want ;", got.Text)
	}
}

func TestPostgresPlainBegin(t *testing.T) {
	p := NewPostgresPolicy()
	feed(p, "begin ")
	feed(p, "; ")
	if got := p.CurrentDelimiter(); !got.IsStandard() {
		t.Fatalf("BEGIN transaction delimiter = %q, want ;", got.Text)
	}
}

func TestPostgresBackslashCommand(t *testing.T) {
	p := NewPostgresPolicy()
	feed(p, `\d users`)
	if !p.IsSingleLineStatement() {
		t.Fatal("backslash command must be a single-line statement")
	}
}
