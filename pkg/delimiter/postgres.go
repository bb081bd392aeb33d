package delimiter

import "github.com/querybench/querybench/pkg/token"

// AtomicSentinel is the synthetic terminator reported while scanning a
// BEGIN ATOMIC body. It contains a NUL byte so it can never form a line of
// ordinary SQL; if user text somehow contains it, splitting is best effort.
const AtomicSentinel = "\x00;\x00"

// CopyTerminator ends a COPY ... FROM STDIN payload: a line consisting of
// a single ".". The payload belongs to the COPY statement, so the
// terminator is inclusive.
var CopyTerminator = Definition{Text: ".", Inclusive: true}

// pgState enumerates the Postgres policy states. Transitions are a pure
// function of (state, token, atStatementStart); see advance.
type pgState int

const (
	// stateNormal scans ordinary statements terminated by ";".
	stateNormal pgState = iota
	// stateCopySeen is active after a leading COPY verb.
	stateCopySeen
	// stateCopyFrom is active right after FROM inside a COPY statement.
	stateCopyFrom
	// stateCopyPayload scans the inline payload after COPY ... FROM STDIN.
	stateCopyPayload
	// stateBeginSeen is active right after a BEGIN token.
	stateBeginSeen
	// stateAtomicBody scans a BEGIN ATOMIC procedural body.
	stateAtomicBody
)

// PostgresPolicy tracks the two Postgres constructs whose bodies suspend
// the normal terminator: COPY ... FROM STDIN payloads and BEGIN ATOMIC
// procedure bodies. Leading backslash commands (psql meta commands) are
// single-line statements.
type PostgresPolicy struct {
	state      pgState
	singleLine bool

	// prevDelim is true when the previous meaningful token was the
	// statement terminator. A bare END inside nested control flow does
	// not close an atomic body; "...; END" does.
	prevDelim bool
}

// NewPostgresPolicy creates a policy in the normal state.
func NewPostgresPolicy() *PostgresPolicy {
	return &PostgresPolicy{state: stateNormal}
}

// CurrentToken implements Policy.
func (p *PostgresPolicy) CurrentToken(tok token.Token, atStatementStart bool) {
	if tok.IsTrivia() {
		return
	}
	if atStatementStart && tok.Text == `\` {
		p.singleLine = true
	}
	p.state = p.advance(p.state, tok, atStatementStart)
	p.prevDelim = tok.Kind == token.Operator && tok.Text == ";"
}

// advance is the transition function of the policy state machine.
func (p *PostgresPolicy) advance(s pgState, tok token.Token, atStart bool) pgState {
	switch s {
	case stateNormal:
		switch {
		case atStart && tok.Is("copy"):
			return stateCopySeen
		case tok.Is("begin"):
			return stateBeginSeen
		}
	case stateCopySeen:
		if tok.Is("from") {
			return stateCopyFrom
		}
	case stateCopyFrom:
		if tok.Is("stdin") {
			return stateCopyPayload
		}
		return stateCopySeen
	case stateCopyPayload:
		// Left only through StatementFinished, once the splitter matches
		// the lone "." payload terminator.
	case stateBeginSeen:
		if tok.Is("atomic") {
			return stateAtomicBody
		}
		return stateNormal
	case stateAtomicBody:
		if tok.Is("end") && p.prevDelim {
			return stateNormal
		}
	}
	return s
}

// CurrentDelimiter implements Policy.
func (p *PostgresPolicy) CurrentDelimiter() Definition {
	switch p.state {
	case stateCopyPayload:
		return CopyTerminator
	case stateAtomicBody:
		return Definition{Text: AtomicSentinel}
	default:
		return Standard
	}
}

// IsSingleLineStatement implements Policy.
func (p *PostgresPolicy) IsSingleLineStatement() bool {
	return p.singleLine
}

// StatementFinished implements Policy.
func (p *PostgresPolicy) StatementFinished() {
	p.state = stateNormal
	p.singleLine = false
	p.prevDelim = false
}

// LineEnd implements Policy.
func (p *PostgresPolicy) LineEnd() {}
