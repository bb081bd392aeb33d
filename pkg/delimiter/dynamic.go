package delimiter

import "github.com/querybench/querybench/pkg/token"

// DynamicPolicy is the generic terminator policy used by dialects without
// special block constructs. It recognizes the DELIMITER command, which
// rebinds the default terminator for all following statements, and a
// session-wide alternate delimiter that overrides the default while set.
//
// DELIMITER commands and "@file" include lines are single-line statements:
// they end at the line break even if no terminator appears.
type DynamicPolicy struct {
	def       Definition
	alternate *Definition

	singleLine bool

	// DELIMITER argument collection: the new terminator is the contiguous
	// run of tokens following the command, up to the end of the line.
	pendingChange bool
	newText       string
	newEnd        int
}

// NewDynamicPolicy creates a policy starting with the standard ";" terminator.
func NewDynamicPolicy() *DynamicPolicy {
	return &DynamicPolicy{def: Standard}
}

// SetAlternateDelimiter sets or clears (nil) the overriding alternate
// terminator. The value is copied.
func (p *DynamicPolicy) SetAlternateDelimiter(d *Definition) {
	if d == nil {
		p.alternate = nil
		return
	}
	cp := *d
	p.alternate = &cp
}

// CurrentToken implements Policy.
func (p *DynamicPolicy) CurrentToken(tok token.Token, atStatementStart bool) {
	if tok.IsTrivia() {
		return
	}

	if p.pendingChange {
		if p.newText == "" {
			p.newText = tok.Text
			p.newEnd = tok.End
			return
		}
		if tok.Start == p.newEnd {
			// Contiguous with the previous piece: "//" lexes as two
			// slashes but forms one delimiter.
			p.newText += tok.Text
			p.newEnd = tok.End
			return
		}
		p.applyChange()
	}

	if atStatementStart {
		switch {
		case tok.Is("delimiter"):
			p.pendingChange = true
			p.singleLine = true
		case tok.Text == "@":
			p.singleLine = true
		}
	}
}

// CurrentDelimiter implements Policy.
func (p *DynamicPolicy) CurrentDelimiter() Definition {
	if p.alternate != nil {
		return *p.alternate
	}
	return p.def
}

// IsSingleLineStatement implements Policy.
func (p *DynamicPolicy) IsSingleLineStatement() bool {
	return p.singleLine
}

// StatementFinished implements Policy.
func (p *DynamicPolicy) StatementFinished() {
	p.applyChange()
	p.singleLine = false
}

// LineEnd implements Policy.
func (p *DynamicPolicy) LineEnd() {
	p.applyChange()
}

func (p *DynamicPolicy) applyChange() {
	if p.pendingChange && p.newText != "" {
		p.def = Definition{Text: p.newText}
	}
	p.pendingChange = false
	p.newText = ""
	p.newEnd = 0
}
