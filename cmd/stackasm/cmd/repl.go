package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"stackasm/pkg/asm"
)

const (
	historyFile = ".stackasm_history"
	prompt      = "==> "
	replSource  = "repl"
)

var banner = fmt.Sprintf("stackasm %s REPL\nCtrl+D exits. Type :quit to exit.", Version)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively lex, parse and encode stack-language lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		runRepl()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Println(banner)

	for {
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			fmt.Println()
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == ":quit" {
			break
		}
		line.AppendHistory(input)
		evalLine(input)
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
}

// evalLine runs one line through the full pipeline, printing what each stage
// produced. Stage errors are reported and the loop keeps going; the REPL is
// the one caller that survives a failed parse.
func evalLine(input string) {
	tokens, err := asm.Tokenize(input, replSource)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tokenizer error:", err)
		return
	}

	commands, err := asm.Parse(tokens)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		return
	}

	for _, cmd := range commands {
		fmt.Println(" ", cmd)
	}
	fmt.Printf("  %x\n", asm.Encode(commands))
}
