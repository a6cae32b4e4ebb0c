package asm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// valueTag is the wire discriminant for each Value variant. Tag bytes come
// from this table only, never from any in-memory representation, so the
// ordinals below are a compatibility contract with the VM's decoder.
type valueTag byte

const (
	tagNil valueTag = iota
	tagNumber
	tagString
	tagBoolean
	tagFunction
	tagArray
)

func tagOf(v Value) valueTag {
	switch v.(type) {
	case NilLit:
		return tagNil
	case NumberLit:
		return tagNumber
	case StringLit:
		return tagString
	case BoolLit:
		return tagBoolean
	case FunctionLit:
		return tagFunction
	case ArrayLit:
		return tagArray
	default:
		panic(fmt.Sprintf("asm: unknown value variant %T", v))
	}
}

// Encode serializes a parsed program into the byte stream the VM loads.
// The walk is depth-first in a single pass: every command and value becomes
// one tag byte followed by a variant-specific payload, with all multi-byte
// integers little-endian.
func Encode(commands []Command) []byte {
	var buf bytes.Buffer
	encodeCommands(&buf, commands)
	return buf.Bytes()
}

func encodeCommands(buf *bytes.Buffer, commands []Command) {
	for _, cmd := range commands {
		buf.WriteByte(byte(cmd.Op))
		switch cmd.Op {
		case OpPush:
			encodeValue(buf, cmd.Operand)
		case OpILoad:
			buf.WriteByte(cmd.Register)
			encodeValue(buf, cmd.Operand)
		}
	}
}

func encodeValue(buf *bytes.Buffer, v Value) {
	buf.WriteByte(byte(tagOf(v)))

	switch val := v.(type) {
	case NilLit:
		// tag byte only

	case NumberLit:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(val.Value))
		buf.Write(b[:])

	case StringLit:
		writeCount(buf, len(val.Value))
		buf.WriteString(val.Value)

	case BoolLit:
		if val.Value {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}

	case FunctionLit:
		// The count is in commands, not bytes: a decoder must decode exactly
		// this many commands to find the end of the function body.
		writeCount(buf, len(val.Commands))
		encodeCommands(buf, val.Commands)

	case ArrayLit:
		writeCount(buf, len(val.Elements))
		for _, el := range val.Elements {
			encodeValue(buf, el)
		}
	}
}

func writeCount(buf *bytes.Buffer, n int) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(n))
	buf.Write(b[:])
}
