// Package asm translates stack-language source text into the binary bytecode
// stream loaded by the stack VM. The pipeline is three pure stages in strict
// order: Tokenize (text to tokens), Parse (tokens to commands) and Encode
// (commands to bytes). Each stage owns its output and the first error aborts
// the whole call, so independent invocations need no coordination.
package asm

// Assemble runs the full pipeline over one source file. filename is used
// only in diagnostics.
func Assemble(src, filename string) ([]byte, error) {
	tokens, err := Tokenize(src, filename)
	if err != nil {
		return nil, err
	}
	commands, err := Parse(tokens)
	if err != nil {
		return nil, err
	}
	return Encode(commands), nil
}
