package asm

import (
	"fmt"
	"unicode"
)

// keywords maps source text to its keyword TokenType. Words that resolve to
// nothing here produce no token at all.
var keywords = map[string]TokenType{
	"nil":     NIL,
	"true":    BOOLEAN,
	"false":   BOOLEAN,
	"push":    PUSH,
	"dup":     DUP,
	"swap":    SWAP,
	"iload":   ILOAD,
	"load":    LOAD,
	"drop":    DROP,
	"query":   QUERY,
	"info":    INFO,
	"each":    EACH,
	"reduce":  REDUCE,
	"reverse": REVERSE,
	"map":     MAP,
	"filter":  FILTER,
	"call":    CALL,
	"tostr":   TOSTR,
	"tonum":   TONUM,
	"+":       ADD,
	"-":       SUB,
	"*":       MUL,
	"/":       DIV,
	"%":       MOD,
	"=":       EQ,
	"!=":      NOT_EQ,
	">":       GREATER,
	">=":      GREATER_EQ,
	"<":       LESS,
	"<=":      LESS_EQ,
	"and":     AND,
	"or":      OR,
	"not":     NOT,
	"concat":  CONCAT,
	"match":   MATCH,
	"split":   SPLIT,
	"iota":    IOTA,
}

// brackets maps the four structural characters to their token types.
var brackets = map[rune]TokenType{
	'[': LBRACKET,
	']': RBRACKET,
	'{': LBRACE,
	'}': RBRACE,
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // 1-based line of the next rune
	col  int // 1-based column of the next rune
	file string
}

func newLexer(src, file string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1, file: file}
}

// loc returns the position of the next rune to consume.
func (l *Lexer) loc() Loc {
	return Loc{Line: l.line, Col: l.col, File: l.file}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one rune and returns it. CR, LF and CRLF each count as a
// single line break: a CRLF pair is consumed in one call. Every other rune
// moves the column by one, so locations follow one uniform rule.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	switch r {
	case '\r':
		if l.pos < len(l.src) && l.src[l.pos] == '\n' {
			l.pos++
		}
		l.line++
		l.col = 1
	case '\n':
		l.line++
		l.col = 1
	default:
		l.col++
	}
	return r
}

// skipShebang discards a leading "#!" line. The line terminator is left in
// place so the line counter still advances normally.
func (l *Lexer) skipShebang() {
	if len(l.src) >= 2 && l.src[0] == '#' && l.src[1] == '!' {
		for l.pos < len(l.src) && !isLineBreak(l.peek()) {
			l.advance()
		}
	}
}

// skipComment discards everything from the current ';' to end-of-line,
// leaving the terminator in place.
func (l *Lexer) skipComment() {
	for l.pos < len(l.src) && !isLineBreak(l.peek()) {
		l.advance()
	}
}

// scanNumber collects a numeric literal: an optional leading '-', digits, and
// at most one decimal point. The raw matched text is kept unparsed; the
// parser converts it at the point of use, so a lone "." still lexes as a
// NUMBER token and only fails later.
func (l *Lexer) scanNumber() Token {
	loc := l.loc()
	start := l.pos
	foundDot := false

	if l.peek() == '-' {
		l.advance()
	}
	if l.peek() == '.' {
		foundDot = true
		l.advance()
	}
	for l.pos < len(l.src) {
		r := l.peek()
		if isDigit(r) {
			l.advance()
		} else if r == '.' && !foundDot {
			foundDot = true
			l.advance()
		} else {
			break
		}
	}

	return Token{Type: NUMBER, Text: string(l.src[start:l.pos]), Loc: loc}
}

// scanString collects a string literal verbatim; there is no escape
// processing. Reaching end of input before the closing quote is the lexer's
// only hard error.
func (l *Lexer) scanString() (Token, error) {
	loc := l.loc()
	l.advance() // opening quote
	start := l.pos

	for l.pos < len(l.src) && l.peek() != '"' {
		l.advance()
	}
	if l.pos >= len(l.src) {
		return Token{}, fmt.Errorf("unterminated string starting on %s", loc)
	}

	text := string(l.src[start:l.pos])
	l.advance() // closing quote
	return Token{Type: STRING, Text: text, Loc: loc}, nil
}

// scanWord collects a run of characters up to whitespace, a quote or a
// bracket and resolves it against the keyword table. A word that matches no
// keyword yields no token and no error; the stream simply moves on.
func (l *Lexer) scanWord() (Token, bool) {
	loc := l.loc()
	start := l.pos

	for l.pos < len(l.src) {
		r := l.peek()
		if unicode.IsSpace(r) || r == '"' || isBracket(r) {
			break
		}
		l.advance()
	}

	word := string(l.src[start:l.pos])
	tt, ok := keywords[word]
	if !ok {
		return Token{}, false
	}
	return Token{Type: tt, Text: word, Loc: loc}, true
}

// Tokenize scans src left to right and returns the full token stream,
// terminated by exactly one EOF token. filename appears only in locations.
// The only failure is an unterminated string literal.
func Tokenize(src, filename string) ([]Token, error) {
	l := newLexer(src, filename)
	var tokens []Token

	l.skipShebang()

	for l.pos < len(l.src) {
		r := l.peek()
		switch {
		case r == ';':
			l.skipComment()
		case unicode.IsSpace(r):
			l.advance()
		case isBracket(r):
			loc := l.loc()
			l.advance()
			tokens = append(tokens, Token{Type: brackets[r], Text: string(r), Loc: loc})
		case isDigit(r) || r == '.':
			tokens = append(tokens, l.scanNumber())
		case r == '-' && (isDigit(l.peek2()) || l.peek2() == '.'):
			// A '-' glued to a digit or dot starts a negative number literal;
			// any other '-' falls through to the word scan and resolves to
			// the subtraction operator.
			tokens = append(tokens, l.scanNumber())
		case r == '"':
			tok, err := l.scanString()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		default:
			if tok, ok := l.scanWord(); ok {
				tokens = append(tokens, tok)
			}
		}
	}

	tokens = append(tokens, Token{Type: EOF, Loc: l.loc()})
	return tokens, nil
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isBracket(r rune) bool {
	_, ok := brackets[r]
	return ok
}

func isLineBreak(r rune) bool {
	return r == '\r' || r == '\n'
}
