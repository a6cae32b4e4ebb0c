package asm

import (
	"fmt"
	"strconv"
	"strings"
)

// Value nodes

// Value is one operand in the command tree. It is a closed set of variants;
// the recursive cases (FunctionLit, ArrayLit) own their children outright,
// so a parsed program is a plain tree with no sharing.
type Value interface {
	valueNode()
	String() string
}

// NilLit is the nil literal.
type NilLit struct{}

func (NilLit) valueNode()     {}
func (NilLit) String() string { return "nil" }

// NumberLit is a numeric literal, always carried as a float64.
type NumberLit struct {
	Value float64
}

func (NumberLit) valueNode() {}
func (n NumberLit) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// StringLit is a string literal. The text is exactly the source text between
// the quotes; the lexer performs no escape processing.
type StringLit struct {
	Value string
}

func (StringLit) valueNode()       {}
func (s StringLit) String() string { return "\"" + s.Value + "\"" }

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
}

func (BoolLit) valueNode()       {}
func (b BoolLit) String() string { return strconv.FormatBool(b.Value) }

// FunctionLit is a quoted command sequence { ... }.
type FunctionLit struct {
	Commands []Command
}

func (FunctionLit) valueNode() {}
func (f FunctionLit) String() string {
	parts := make([]string, len(f.Commands))
	for i, cmd := range f.Commands {
		parts[i] = cmd.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// ArrayLit is an array literal [ ... ].
type ArrayLit struct {
	Elements []Value
}

func (ArrayLit) valueNode() {}
func (a ArrayLit) String() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Commands

// Opcode identifies a stack-language instruction. The numeric values double
// as the wire format's command tag bytes, so the declaration order must
// never change.
type Opcode uint8

const (
	OpPush Opcode = iota
	OpDup
	OpSwap
	OpILoad
	OpLoad
	OpDrop
	OpQuery
	OpInfo
	OpIf // no surface keyword; the ordinal stays reserved in the wire format
	OpEach
	OpReduce
	OpReverse
	OpMap
	OpFilter
	OpCall
	OpToStr
	OpToNum
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNotEq
	OpGreater
	OpGreaterEq
	OpLess
	OpLessEq
	OpAnd
	OpOr
	OpNot
	OpConcat
	OpMatch
	OpSplit
	OpIota
)

var opcodeNames = [...]string{
	OpPush:      "push",
	OpDup:       "dup",
	OpSwap:      "swap",
	OpILoad:     "iload",
	OpLoad:      "load",
	OpDrop:      "drop",
	OpQuery:     "query",
	OpInfo:      "info",
	OpIf:        "if",
	OpEach:      "each",
	OpReduce:    "reduce",
	OpReverse:   "reverse",
	OpMap:       "map",
	OpFilter:    "filter",
	OpCall:      "call",
	OpToStr:     "tostr",
	OpToNum:     "tonum",
	OpAdd:       "+",
	OpSub:       "-",
	OpMul:       "*",
	OpDiv:       "/",
	OpMod:       "%",
	OpEq:        "=",
	OpNotEq:     "!=",
	OpGreater:   ">",
	OpGreaterEq: ">=",
	OpLess:      "<",
	OpLessEq:    "<=",
	OpAnd:       "and",
	OpOr:        "or",
	OpNot:       "not",
	OpConcat:    "concat",
	OpMatch:     "match",
	OpSplit:     "split",
	OpIota:      "iota",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", int(op))
}

// RegisterCount is the number of addressable iload registers.
const RegisterCount = 16

// Command is one parsed instruction. Register is meaningful only for
// OpILoad, Operand only for OpPush and OpILoad; both are zero otherwise.
type Command struct {
	Op       Opcode
	Register uint8
	Operand  Value
}

func (c Command) String() string {
	switch c.Op {
	case OpPush:
		return fmt.Sprintf("push %s", c.Operand)
	case OpILoad:
		return fmt.Sprintf("iload %d %s", c.Register, c.Operand)
	default:
		return c.Op.String()
	}
}
