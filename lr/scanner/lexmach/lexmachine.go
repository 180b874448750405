package lexmach

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	slr1 "github.com/Yuk1no000/slr1-project"
	"github.com/Yuk1no000/slr1-project/lr/scanner"
)

// lexmachine adapter

// tracer traces with key 'slr1.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("slr1.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives an init function
// for rules which have to take precedence, a list of literals ('[', ';', …) and
// a list of keywords ("if", "for", …). Literals and keywords are tokens
// of their own type. Rules added by init take precedence over literals
// and keywords for matches of equal length.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string,
	after func(*lexmachine.Lexer)) (*LMAdapter, error) {
	//
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	if init != nil {
		init(adapter.Lexer)
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name))
	}
	if after != nil {
		after(adapter.Lexer)
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, Error: logError, end: uint64(len(input))}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
	end     uint64 // length of input
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface. At the end of input, the
// end-of-input token '#' is returned. A '#' within the input is reported to
// the error handler and returned as a token of type scanner.Illegal.
func (lms *LMScanner) NextToken() slr1.Token {
	if lms.scanner == nil {
		return scanner.MakeDefaultToken(slr1.EOF, slr1.EOF, slr1.Span{})
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(slr1.EOF, slr1.EOF, slr1.Span{lms.end, lms.end})
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	t := tok.(scanner.DefaultToken)
	if t.TokType() == slr1.EOF { // '#' within the input
		lms.Error(fmt.Errorf("end-of-input marker %q in input at position %d", t.Lexeme(), t.Span().From()))
		return scanner.MakeDefaultToken(scanner.Illegal, t.Lexeme(), t.Span())
	}
	return t
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token
// of type typ. If typ is empty, the matched text is used as the token type.
func MakeToken(typ string) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		lexeme := string(m.Bytes)
		t := typ
		if t == "" {
			t = lexeme
		}
		span := slr1.Span{uint64(m.TC), uint64(m.TC + len(m.Bytes))}
		return scanner.MakeDefaultToken(t, lexeme, span), nil
	}
}

// ---------------------------------------------------------------------------

// Operators and delimiters of the while-language.
var whileLiterals = []string{
	">=", "<=", "==", "!=",
	"+", "-", "*", "/", "=", ">", "<",
	"(", ")", "{", "}", ";",
}

// NewWhileLanguage creates a lexmachine adapter for the while-language.
// Scanners created by it recognize keywords, identifiers (type "id"),
// numbers (type "num"), operators and delimiters. Any other character is a
// token of its own. White space is skipped. Signs are not part of numbers;
// wrap scanners with scanner.SignedNumbers for that.
func NewWhileLanguage() (*LMAdapter, error) {
	skip := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	rest := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), MakeToken(scanner.Ident))
		lexer.Add([]byte(`[0-9]+(\.[0-9]*)?`), MakeToken(scanner.Number))
		lexer.Add([]byte(`[^ \t\n\r]`), MakeToken(""))
	}
	return NewLMAdapter(skip, whileLiterals, scanner.Keywords, rest)
}

// SignedScanner is a shortcut for creating a tokenizer for the while-language,
// including signed numbers.
func (lm *LMAdapter) SignedScanner(input string) (scanner.Tokenizer, error) {
	sc, err := lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	return scanner.SignedNumbers(sc), nil
}
