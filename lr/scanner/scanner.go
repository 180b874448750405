/*
Package scanner defines an interface for scanners to be used with parsers of package lr.

Two default scanner implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) an adapter for lexmachine, living in sub-package `lexmach`.
Both produce tokens for the while-language: keywords, identifiers (type "id"),
numbers (type "num"), operators and delimiters (type = lexeme), terminated by
the end-of-input token '#'.
*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing"

	slr1 "github.com/Yuk1no000/slr1-project"
)

// tracer traces with key 'slr1.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("slr1.scanner")
}

// Token types for tokens which are not represented by their lexeme.
const (
	Ident   = "id"
	Number  = "num"
	Illegal = "illegal" // a character which may not appear in the input
)

// Keywords of the while-language. Keywords are tokens of their own type.
var Keywords = []string{"while", "if", "else", "int", "float", "return"}

// IsKeyword is a predicate.
func IsKeyword(s string) bool {
	for _, k := range Keywords {
		if s == k {
			return true
		}
	}
	return false
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() slr1.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken rune        // last token this scanner has produced
	Error     func(error) // error handler
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a scanner/tokenizer for the while-language, using the
// Go scanner for identifiers and numbers. Go-style comments are skipped.
// Signs are not part of numbers; see SignedNumbers.
func GoTokenizer(sourceID string, input io.Reader) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanComments | scanner.SkipComments
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() slr1.Token {
	t.lastToken = t.Scan()
	from := uint64(t.Position.Offset)
	var typ string
	lexeme := t.TokenText()
	switch t.lastToken {
	case scanner.EOF:
		tracer().Debugf("DefaultTokenizer reached end of input")
		pos := uint64(t.Pos().Offset)
		return MakeDefaultToken(slr1.EOF, slr1.EOF, slr1.Span{pos, pos})
	case scanner.Ident:
		typ = Ident
		if IsKeyword(lexeme) {
			typ = lexeme
		}
	case scanner.Int, scanner.Float:
		typ = Number
	case '>', '<', '=', '!':
		if t.Peek() == '=' {
			t.Next()
			lexeme += "="
		}
		typ = lexeme
	default:
		typ = lexeme
		if lexeme == slr1.EOF {
			t.Error(fmt.Errorf("%s: end-of-input marker %q in input", t.Position, lexeme))
			typ = Illegal
		}
	}
	return MakeDefaultToken(typ, lexeme, slr1.Span{from, uint64(t.Pos().Offset)})
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   string
	lexeme string
	span   slr1.Span
}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ string, lexeme string, span slr1.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType is part of the slr1.Token interface.
func (t DefaultToken) TokType() string {
	return t.kind
}

// Lexeme is part of the slr1.Token interface.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of the slr1.Token interface.
func (t DefaultToken) Span() slr1.Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.kind == t.lexeme {
		return fmt.Sprintf("'%s'", t.kind)
	}
	return fmt.Sprintf("%s'%s'", t.kind, t.lexeme)
}
