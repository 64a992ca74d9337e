// Package diag renders lexer/preprocessor diagnostics. It plays the role of
// spec.md section 2's "diagnostic reporter (external)": the lexer and
// preprocessor never format text themselves, they call Report/Note and get
// back a chainable builder, exactly like isaacev-Plaid_v1/feedback/message.go's
// Message/Warning/Error split — except colors are assigned the way
// assyrianic-sptools/sptools.go's COLOR_* constants do (red errors, yellow
// warnings, cyan notes).
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/assyrianic/spc/internal/source"
)

// Kind enumerates spec.md section 7's diagnostic catalogue.
type Kind uint8

const (
	ExpectedDigitForFloat Kind = iota
	IntLiteralOverflow
	UnknownEscapeCode
	InvalidCharLiteral
	BadCharTerminator
	UnterminatedString
	UnterminatedComment
	UnexpectedChar
	UnknownDirective
	BadDirectiveToken
	PPExtraCharacters
	ElseWithoutIf
	ElseDeclaredTwice
	EndifWithoutIf
	UnterminatedIf
	UnterminatedElse
	BadIncludeSyntax
	MacroFunctionsUnsupported
	PragmaMustHaveName
	BadPragmaNewdecls
	UnknownPragma
)

var templates = map[Kind]string{
	ExpectedDigitForFloat:     "expected a digit after '.' or 'e' in a float literal",
	IntLiteralOverflow:        "integer literal is too large to fit in 64 bits",
	UnknownEscapeCode:         "unrecognized escape code '\\%c'",
	InvalidCharLiteral:        "character literal may not be empty",
	BadCharTerminator:         "character literal must be terminated by '\\''",
	UnterminatedString:        "string literal is missing a closing quote",
	UnterminatedComment:       "block comment is missing a closing '*/'",
	UnexpectedChar:            "unexpected character '%c'",
	UnknownDirective:          "unknown preprocessor directive '#%s'",
	BadDirectiveToken:         "expected a name after '#%s'",
	PPExtraCharacters:         "extra characters after a preprocessor directive",
	ElseWithoutIf:             "#else without a matching #if",
	ElseDeclaredTwice:         "#else may only appear once in an #if block",
	EndifWithoutIf:            "#endif without a matching #if",
	UnterminatedIf:            "#if block is missing a matching #endif",
	UnterminatedElse:          "#else block is missing a matching #endif",
	BadIncludeSyntax:          "expected a filename delimited by \"...\" or <...>",
	MacroFunctionsUnsupported: "function-like macros with parameters are not supported",
	PragmaMustHaveName:        "#pragma requires a name",
	BadPragmaNewdecls:         "#pragma newdecls expects 'required' or 'optional'",
	UnknownPragma:             "unknown #pragma '%s'",
}

// Severity distinguishes fatal-looking diagnostics from advisory ones.
// Report issues SeverityError, Warn SeverityWarning, and Note SeverityNote;
// the lexer and preprocessor report through Report only.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

// Message is one fully-formed diagnostic, located and rendered.
type Message struct {
	Severity Severity
	Kind     Kind
	Loc      source.Location
	Text     string
	Notes    []Message
}

// Reporter collects and renders diagnostics. It is the concrete
// implementation the CompileContext hands to lexers as spec.md's
// "report(loc, id) -> MessageBuilder" contract.
type Reporter struct {
	locs     *source.Manager
	messages []Message
	NoColor  bool
}

// NewReporter returns a Reporter that resolves locations through locs.
func NewReporter(locs *source.Manager) *Reporter {
	return &Reporter{locs: locs}
}

// Builder is the chainable return value of Report/Note, matching spec.md
// section 6's "report(loc, id) -> MessageBuilder" and isaacev-Plaid_v1's
// fluent Message construction.
type Builder struct {
	r   *Reporter
	msg *Message
}

// Report starts a new error-severity diagnostic at loc with args applied to
// Kind's message template via fmt.Sprintf.
func (r *Reporter) Report(loc source.Location, kind Kind, args ...any) *Builder {
	return r.emit(SeverityError, loc, kind, args...)
}

// Warn starts a new warning-severity diagnostic.
func (r *Reporter) Warn(loc source.Location, kind Kind, args ...any) *Builder {
	return r.emit(SeverityWarning, loc, kind, args...)
}

// Note starts a new standalone note-severity diagnostic, for callers that
// want a note without chaining it off a prior Report (spec.md section 6's
// "note(loc, id)").
func (r *Reporter) Note(loc source.Location, kind Kind, args ...any) *Builder {
	return r.emit(SeverityNote, loc, kind, args...)
}

func (r *Reporter) emit(sev Severity, loc source.Location, kind Kind, args ...any) *Builder {
	m := Message{Severity: sev, Kind: kind, Loc: loc, Text: format(kind, args...)}
	r.messages = append(r.messages, m)
	return &Builder{r: r, msg: &r.messages[len(r.messages)-1]}
}

func format(kind Kind, args ...any) string {
	tmpl, ok := templates[kind]
	if !ok {
		return "unknown diagnostic"
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// WithNote attaches a note-severity child message to the diagnostic this
// Builder wraps, returning itself so notes can chain.
func (b *Builder) WithNote(loc source.Location, kind Kind, args ...any) *Builder {
	if b.msg == nil {
		// A suppressed-errors Builder (diag.Builder{}); chaining is a
		// no-op so callers don't need to special-case speculative scans.
		return b
	}
	b.msg.Notes = append(b.msg.Notes, Message{Severity: SeverityNote, Kind: kind, Loc: loc, Text: format(kind, args...)})
	return b
}

// Messages returns every diagnostic reported so far, in discovery order.
func (r *Reporter) Messages() []Message { return r.messages }

// HasErrors reports whether any error-severity diagnostic was reported.
func (r *Reporter) HasErrors() bool {
	for _, m := range r.messages {
		if m.Severity == SeverityError {
			return true
		}
	}
	return false
}

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	noteColor  = color.New(color.FgCyan)
)

// Render formats every collected message for terminal output, colored unless
// NoColor is set, in the spirit of sptools.go's writeMsg/makeMsg helpers.
func (r *Reporter) Render() string {
	var sb strings.Builder
	prevNoColor := color.NoColor
	color.NoColor = r.NoColor
	defer func() { color.NoColor = prevNoColor }()

	for _, m := range r.messages {
		r.renderOne(&sb, m, 0)
	}
	return sb.String()
}

func (r *Reporter) renderOne(sb *strings.Builder, m Message, depth int) {
	label, c := "error", errorColor
	switch m.Severity {
	case SeverityWarning:
		label, c = "warning", warnColor
	case SeverityNote:
		label, c = "note", noteColor
	}

	prefix := strings.Repeat("  ", depth)
	pos, ok := r.locs.ResolvePos(m.Loc)
	if ok {
		fmt.Fprintf(sb, "%s%s:%d:%d: %s: %s\n", prefix, pos.Path, pos.Line, pos.Col, c.Sprint(label), m.Text)
	} else {
		fmt.Fprintf(sb, "%s%s: %s\n", prefix, c.Sprint(label), m.Text)
	}
	for _, n := range m.Notes {
		r.renderOne(sb, n, depth+1)
	}
}
