package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"stackasm/pkg/asm"
	"stackasm/pkg/config"
)

// Exit codes follow BSD sysexits so shell callers can tell bad usage from
// bad input apart.
const (
	exitUsage      = 64 // command line usage error
	exitData       = 65 // source failed to lex or parse
	exitNoInput    = 66 // input file unreadable
	exitCantCreate = 73 // output file not writable
)

var (
	cfgFile    string
	outPath    string
	dumpTokens bool
)

var rootCmd = &cobra.Command{
	Use:   "stackasm [flags] FILE",
	Short: "Assembler for the stack VM bytecode format",
	Long: `stackasm translates stack-language source into the binary bytecode
stream the stack VM loads. By default the bytecode is written next to the
input file; --tokens stops after lexing and prints the token stream instead.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runAssemble,
}

// exitError carries the process exit code alongside the message cobra prints.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return exitUsage
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./stackasm.{toml,yaml,yml})")
	rootCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default: input path with the bytecode extension)")
	rootCmd.Flags().BoolVar(&dumpTokens, "tokens", false, "print the token stream and exit without assembling")
}

func loadConfig() (config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.Discover(".")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return &exitError{code: exitNoInput, err: fmt.Errorf("file cannot be read: %s", path)}
	}

	tokens, err := asm.Tokenize(string(data), path)
	if err != nil {
		return &exitError{code: exitData, err: fmt.Errorf("tokenizer error: %v", err)}
	}

	if dumpTokens || cfg.DumpTokens {
		for _, tok := range tokens {
			fmt.Fprintln(cmd.OutOrStdout(), tok)
		}
		return nil
	}

	commands, err := asm.Parse(tokens)
	if err != nil {
		return &exitError{code: exitData, err: fmt.Errorf("parse error: %v", err)}
	}

	out := outPath
	if out == "" {
		out = cfg.Output
	}
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + cfg.Extension
	}
	if err := os.WriteFile(out, asm.Encode(commands), 0o644); err != nil {
		return &exitError{code: exitCantCreate, err: fmt.Errorf("cannot write %s: %v", out, err)}
	}
	return nil
}
