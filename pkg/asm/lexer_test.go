package asm

import (
	"reflect"
	"strings"
	"testing"
)

// lexeme is a token stripped of its location, so table cases stay readable.
type lexeme struct {
	tt   TokenType
	text string
}

func lexemes(tokens []Token) []lexeme {
	out := make([]lexeme, len(tokens))
	for i, tok := range tokens {
		out[i] = lexeme{tok.Type, tok.Text}
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []lexeme
		wantErr  bool
	}{
		{
			name:     "Empty",
			input:    "",
			expected: []lexeme{{EOF, ""}},
		},
		{
			name:  "Brackets",
			input: "[]{}",
			expected: []lexeme{
				{LBRACKET, "["},
				{RBRACKET, "]"},
				{LBRACE, "{"},
				{RBRACE, "}"},
				{EOF, ""},
			},
		},
		{
			name:  "Opcode Keywords",
			input: "push dup swap iload load drop query info each reduce reverse map filter call tostr tonum",
			expected: []lexeme{
				{PUSH, "push"}, {DUP, "dup"}, {SWAP, "swap"}, {ILOAD, "iload"},
				{LOAD, "load"}, {DROP, "drop"}, {QUERY, "query"}, {INFO, "info"},
				{EACH, "each"}, {REDUCE, "reduce"}, {REVERSE, "reverse"}, {MAP, "map"},
				{FILTER, "filter"}, {CALL, "call"}, {TOSTR, "tostr"}, {TONUM, "tonum"},
				{EOF, ""},
			},
		},
		{
			name:  "Operator Symbols",
			input: "+ - * / % = != > >= < <= and or not concat match split iota",
			expected: []lexeme{
				{ADD, "+"}, {SUB, "-"}, {MUL, "*"}, {DIV, "/"}, {MOD, "%"},
				{EQ, "="}, {NOT_EQ, "!="}, {GREATER, ">"}, {GREATER_EQ, ">="},
				{LESS, "<"}, {LESS_EQ, "<="}, {AND, "and"}, {OR, "or"}, {NOT, "not"},
				{CONCAT, "concat"}, {MATCH, "match"}, {SPLIT, "split"}, {IOTA, "iota"},
				{EOF, ""},
			},
		},
		{
			name:  "Literals",
			input: `nil true false 42 4.2 "hi"`,
			expected: []lexeme{
				{NIL, "nil"},
				{BOOLEAN, "true"},
				{BOOLEAN, "false"},
				{NUMBER, "42"},
				{NUMBER, "4.2"},
				{STRING, "hi"},
				{EOF, ""},
			},
		},
		{
			name:  "Negative Number Glued",
			input: "-5",
			expected: []lexeme{
				{NUMBER, "-5"},
				{EOF, ""},
			},
		},
		{
			name:  "Minus Then Number",
			input: "- 5",
			expected: []lexeme{
				{SUB, "-"},
				{NUMBER, "5"},
				{EOF, ""},
			},
		},
		{
			name:  "Dot Literals",
			input: ". .5 1. 1.2.3 -.5",
			expected: []lexeme{
				{NUMBER, "."},
				{NUMBER, ".5"},
				{NUMBER, "1."},
				{NUMBER, "1.2"},
				{NUMBER, ".3"},
				{NUMBER, "-.5"},
				{EOF, ""},
			},
		},
		{
			name:  "Line Comment",
			input: "push 1 ; trailing words\npush 2",
			expected: []lexeme{
				{PUSH, "push"},
				{NUMBER, "1"},
				{PUSH, "push"},
				{NUMBER, "2"},
				{EOF, ""},
			},
		},
		{
			name:  "Shebang",
			input: "#!/usr/bin/env stackvm\npush 1",
			expected: []lexeme{
				{PUSH, "push"},
				{NUMBER, "1"},
				{EOF, ""},
			},
		},
		{
			name:  "CRLF Lines",
			input: "push\r\ndup",
			expected: []lexeme{
				{PUSH, "push"},
				{DUP, "dup"},
				{EOF, ""},
			},
		},
		{
			name:  "Unknown Words Dropped",
			input: "bogus push mystery 7",
			expected: []lexeme{
				{PUSH, "push"},
				{NUMBER, "7"},
				{EOF, ""},
			},
		},
		{
			name:  "Semicolon Inside Word",
			input: "dup;note",
			// ';' only opens a comment at a token boundary; glued to a word
			// it just makes the word unrecognizable.
			expected: []lexeme{{EOF, ""}},
		},
		{
			name:  "String With Whitespace",
			input: "\"a b\nc\"",
			expected: []lexeme{
				{STRING, "a b\nc"},
				{EOF, ""},
			},
		},
		{
			name:    "Unterminated String",
			input:   `push "abc`,
			wantErr: true,
		},
		{
			name:    "Quote At End",
			input:   `"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input, "test.sl")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Tokenize(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}
			if got := lexemes(tokens); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q)\n got  %v\n want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTokenizeLocations(t *testing.T) {
	const file = "loc.sl"
	input := "push 1\n dup \"ab\"\n"

	expected := []Token{
		{Type: PUSH, Text: "push", Loc: Loc{Line: 1, Col: 1, File: file}},
		{Type: NUMBER, Text: "1", Loc: Loc{Line: 1, Col: 6, File: file}},
		{Type: DUP, Text: "dup", Loc: Loc{Line: 2, Col: 2, File: file}},
		{Type: STRING, Text: "ab", Loc: Loc{Line: 2, Col: 6, File: file}},
		{Type: EOF, Loc: Loc{Line: 3, Col: 1, File: file}},
	}

	tokens, err := Tokenize(input, file)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Tokenize(%q)\n got  %v\n want %v", input, tokens, expected)
	}
}

func TestTokenizeCRLFCountsOneLine(t *testing.T) {
	tokens, err := Tokenize("dup\r\n\rdup\ndup", "crlf.sl")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	lines := []int{1, 3, 4, 4}
	if len(tokens) != len(lines) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(lines))
	}
	for i, want := range lines {
		if tokens[i].Loc.Line != want {
			t.Errorf("token %d (%v): line %d, want %d", i, tokens[i], tokens[i].Loc.Line, want)
		}
	}
}

func TestTokenizeUnterminatedStringLocation(t *testing.T) {
	_, err := Tokenize(`push "abc`, "test.sl")
	if err == nil {
		t.Fatal("want error for unterminated string")
	}
	if !strings.Contains(err.Error(), "line 1, column 6 in test.sl") {
		t.Errorf("error %q does not name the string's start location", err)
	}
}

func TestTokenizeAlwaysEndsInEOF(t *testing.T) {
	inputs := []string{"", "push 1", "; only a comment", "#!/bin/vm", "bogus words only"}
	for _, input := range inputs {
		tokens, err := Tokenize(input, "eof.sl")
		if err != nil {
			t.Errorf("Tokenize(%q) error: %v", input, err)
			continue
		}
		if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
			t.Errorf("Tokenize(%q) does not end in EOF: %v", input, tokens)
		}
		for _, tok := range tokens[:len(tokens)-1] {
			if tok.Type == EOF {
				t.Errorf("Tokenize(%q) has an interior EOF: %v", input, tokens)
			}
		}
	}
}
