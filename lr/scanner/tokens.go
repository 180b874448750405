package scanner

import (
	slr1 "github.com/Yuk1no000/slr1-project"
)

// --- Slice tokenizer -------------------------------------------------------

// SliceTokenizer is a tokenizer which replays a list of tokens.
type SliceTokenizer struct {
	tokens []slr1.Token
	pos    int
}

var _ Tokenizer = (*SliceTokenizer)(nil)

// NewSliceTokenizer creates a tokenizer for a list of tokens. If the list does
// not end with the end-of-input token, one is appended.
func NewSliceTokenizer(tokens []slr1.Token) *SliceTokenizer {
	if len(tokens) == 0 || !slr1.IsEOF(tokens[len(tokens)-1]) {
		var end uint64
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].Span().To()
		}
		eof := MakeDefaultToken(slr1.EOF, slr1.EOF, slr1.Span{end, end})
		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}
	return &SliceTokenizer{tokens: tokens}
}

// NextToken is part of the Tokenizer interface. After the end of the list, the
// end-of-input token is repeated.
func (st *SliceTokenizer) NextToken() slr1.Token {
	tok := st.tokens[st.pos]
	if st.pos < len(st.tokens)-1 {
		st.pos++
	}
	return tok
}

// SetErrorHandler is part of the Tokenizer interface. A slice tokenizer never
// reports errors.
func (st *SliceTokenizer) SetErrorHandler(func(error)) {}

// Tokens reads all tokens from a tokenizer, including the end-of-input token.
func Tokens(t Tokenizer) []slr1.Token {
	var tokens []slr1.Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok == nil || slr1.IsEOF(tok) {
			return tokens
		}
	}
}

// --- Signed numbers --------------------------------------------------------

// SignedNumbers wraps a tokenizer and merges a '+' or '-' with an immediately
// following number, if the sign cannot be a binary operator. This is the case
// at the start of input and after any token other than an identifier, a
// number, ')' or '}'. Thus
//
//    while(a>=-1)      yields  while ( id >= num(-1) )
//    x-1               yields  id - num(1)
//
func SignedNumbers(t Tokenizer) Tokenizer {
	return &signMerger{Tokenizer: t}
}

type signMerger struct {
	Tokenizer
	last  string     // type of previous token
	ahead slr1.Token // buffered lookahead
}

func (sm *signMerger) next() slr1.Token {
	if sm.ahead != nil {
		tok := sm.ahead
		sm.ahead = nil
		return tok
	}
	return sm.Tokenizer.NextToken()
}

func (sm *signMerger) NextToken() slr1.Token {
	tok := sm.next()
	if tok != nil && sm.isSign(tok) {
		num := sm.next()
		if num != nil && num.TokType() == Number && num.Span().From() == tok.Span().To() {
			tracer().Debugf("merging sign %s with number %s", tok.Lexeme(), num.Lexeme())
			tok = MakeDefaultToken(Number, tok.Lexeme()+num.Lexeme(),
				slr1.Span{tok.Span().From(), num.Span().To()})
		} else {
			sm.ahead = num
		}
	}
	if tok != nil {
		sm.last = tok.TokType()
	}
	return tok
}

func (sm *signMerger) isSign(tok slr1.Token) bool {
	if t := tok.TokType(); t != "+" && t != "-" {
		return false
	}
	switch sm.last {
	case Ident, Number, ")", "}":
		return false
	}
	return true
}
