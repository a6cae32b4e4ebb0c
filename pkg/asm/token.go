package asm

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	NUMBER  // raw numeric text; stays unparsed until the parser needs it
	STRING  // string literal "..." (verbatim, no escape processing)
	BOOLEAN // true / false
	NIL     // nil

	// Paired delimiters
	LBRACKET // [
	RBRACKET // ]
	LBRACE   // {
	RBRACE   // }

	// Opcode keywords
	PUSH
	DUP
	SWAP
	ILOAD
	LOAD
	DROP
	QUERY
	INFO
	EACH
	REDUCE
	REVERSE
	MAP
	FILTER
	CALL
	TOSTR
	TONUM
	ADD    // +
	SUB    // -
	MUL    // *
	DIV    // /
	MOD    // %
	EQ     // =
	NOT_EQ // !=
	GREATER
	GREATER_EQ
	LESS
	LESS_EQ
	AND
	OR
	NOT
	CONCAT
	MATCH
	SPLIT
	IOTA
)

// tokenNames holds the source-level spelling of each token type, used in
// diagnostics ("expected `push`, got `]`").
var tokenNames = [...]string{
	EOF:        "end-of-file",
	NUMBER:     "number",
	STRING:     "string",
	BOOLEAN:    "boolean",
	NIL:        "nil",
	LBRACKET:   "[",
	RBRACKET:   "]",
	LBRACE:     "{",
	RBRACE:     "}",
	PUSH:       "push",
	DUP:        "dup",
	SWAP:       "swap",
	ILOAD:      "iload",
	LOAD:       "load",
	DROP:       "drop",
	QUERY:      "query",
	INFO:       "info",
	EACH:       "each",
	REDUCE:     "reduce",
	REVERSE:    "reverse",
	MAP:        "map",
	FILTER:     "filter",
	CALL:       "call",
	TOSTR:      "tostr",
	TONUM:      "tonum",
	ADD:        "+",
	SUB:        "-",
	MUL:        "*",
	DIV:        "/",
	MOD:        "%",
	EQ:         "=",
	NOT_EQ:     "!=",
	GREATER:    ">",
	GREATER_EQ: ">=",
	LESS:       "<",
	LESS_EQ:    "<=",
	AND:        "and",
	OR:         "or",
	NOT:        "not",
	CONCAT:     "concat",
	MATCH:      "match",
	SPLIT:      "split",
	IOTA:       "iota",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Loc is a position in a source file, attached to every token so errors can
// point at the offending text.
type Loc struct {
	Line int // 1-based
	Col  int // 1-based
	File string
}

func (l Loc) String() string {
	return fmt.Sprintf("line %d, column %d in %s", l.Line, l.Col, l.File)
}

// Token is a single lexical unit produced by Tokenize.
type Token struct {
	Type TokenType
	Text string // payload for NUMBER, STRING and BOOLEAN tokens
	Loc  Loc
}

// text returns the display form of the token without its location.
func (t Token) text() string {
	switch t.Type {
	case NUMBER, BOOLEAN:
		return t.Text
	default:
		return t.Type.String()
	}
}

func (t Token) String() string {
	if t.Type == STRING {
		return fmt.Sprintf("\"%s\" at %s", t.Text, t.Loc)
	}
	return fmt.Sprintf("`%s` at %s", t.text(), t.Loc)
}
