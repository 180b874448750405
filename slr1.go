package slr1

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// EOF is the token type of the end-of-input sentinel. Every token stream handed
// to a parser has to end with a token of this type.
const EOF = "#"

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for an identifier:
//
//    TokType = "id"        // terminal name of this kind of tokens
//    Lexeme  = "count"     // lexeme how it appeared in the input stream
//    Span    = 67…72       // occured from position 67 in the input stream
//
// The token type has to match a terminal name of the grammar in use; for
// keywords, operators and delimiters type and lexeme usually coincide.
type Token interface {
	TokType() string
	Lexeme() string
	Span() Span
}

// IsEOF is a predicate: is t the end-of-input sentinel?
func IsEOF(t Token) bool {
	return t != nil && t.TokType() == EOF
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// terminal and non-terminal, the parser tracks which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other. A null span is
// neutral.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
