package asm

import (
	"fmt"
	"math"
	"strconv"
)

// Parser consumes the flat token slice produced by Tokenize and builds the
// command sequence.
//
// Grammar:
//
//	program = command* EOF
//	command = <zero-arity opcode>
//	        | "push" value
//	        | "iload" NUMBER value     (register: exact integer in [0,16))
//	value   = NUMBER | STRING | BOOLEAN | "nil"
//	        | "[" value* "]"
//	        | "{" command* "}"
//
// The cursor only moves forward, except for the single-token lookahead in
// accept. The first error aborts the whole parse; there is no recovery.
type Parser struct {
	tokens []Token
	pos    int
}

// zeroArityOps maps an opcode keyword token directly to its instruction.
var zeroArityOps = map[TokenType]Opcode{
	DUP:        OpDup,
	SWAP:       OpSwap,
	LOAD:       OpLoad,
	DROP:       OpDrop,
	QUERY:      OpQuery,
	INFO:       OpInfo,
	EACH:       OpEach,
	REDUCE:     OpReduce,
	REVERSE:    OpReverse,
	MAP:        OpMap,
	FILTER:     OpFilter,
	CALL:       OpCall,
	TOSTR:      OpToStr,
	TONUM:      OpToNum,
	ADD:        OpAdd,
	SUB:        OpSub,
	MUL:        OpMul,
	DIV:        OpDiv,
	MOD:        OpMod,
	EQ:         OpEq,
	NOT_EQ:     OpNotEq,
	GREATER:    OpGreater,
	GREATER_EQ: OpGreaterEq,
	LESS:       OpLess,
	LESS_EQ:    OpLessEq,
	AND:        OpAnd,
	OR:         OpOr,
	NOT:        OpNot,
	CONCAT:     OpConcat,
	MATCH:      OpMatch,
	SPLIT:      OpSplit,
	IOTA:       OpIota,
}

// Parse consumes commands until the EOF sentinel and returns the program.
func Parse(tokens []Token) ([]Command, error) {
	p := &Parser{tokens: tokens}
	var commands []Command

	for !p.accept(EOF) {
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// accept consumes the current token when it matches tt; otherwise the cursor
// stays put.
func (p *Parser) accept(tt TokenType) bool {
	if p.peek().Type == tt {
		p.pos++
		return true
	}
	return false
}

// expect consumes the current token if it matches tt, otherwise returns an
// error naming the expected and actual tokens.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.advance()
	if tok.Type != tt {
		return tok, fmt.Errorf("unexpected token: expected `%s`, got %s", tt, tok)
	}
	return tok, nil
}

func (p *Parser) parseCommand() (Command, error) {
	tok := p.advance()

	if op, ok := zeroArityOps[tok.Type]; ok {
		return Command{Op: op}, nil
	}

	switch tok.Type {
	case PUSH:
		val, err := p.parseValue()
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpPush, Operand: val}, nil

	case ILOAD:
		reg, err := p.parseRegister()
		if err != nil {
			return Command{}, err
		}
		val, err := p.parseValue()
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpILoad, Register: reg, Operand: val}, nil

	default:
		return Command{}, fmt.Errorf("unexpected token %s", tok)
	}
}

// parseRegister reads the iload register operand: a numeric literal that
// must be an exact integer in [0,RegisterCount).
func (p *Parser) parseRegister() (uint8, error) {
	tok, err := p.expect(NUMBER)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse number %q at %s", tok.Text, tok.Loc)
	}
	if n != math.Trunc(n) || n < 0 || n >= RegisterCount {
		return 0, fmt.Errorf("register %s at %s must be an integer in [0,%d)", tok.Text, tok.Loc, RegisterCount)
	}
	return uint8(n), nil
}

func (p *Parser) parseValue() (Value, error) {
	tok := p.advance()

	switch tok.Type {
	case NUMBER:
		n, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse number %q at %s", tok.Text, tok.Loc)
		}
		return NumberLit{Value: n}, nil

	case STRING:
		return StringLit{Value: tok.Text}, nil

	case BOOLEAN:
		return BoolLit{Value: tok.Text == "true"}, nil

	case NIL:
		return NilLit{}, nil

	case LBRACKET:
		var elements []Value
		for !p.accept(RBRACKET) {
			el, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
		}
		return ArrayLit{Elements: elements}, nil

	case LBRACE:
		var commands []Command
		for !p.accept(RBRACE) {
			cmd, err := p.parseCommand()
			if err != nil {
				return nil, err
			}
			commands = append(commands, cmd)
		}
		return FunctionLit{Commands: commands}, nil

	default:
		return nil, fmt.Errorf("unexpected token %s", tok)
	}
}
