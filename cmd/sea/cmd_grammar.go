package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/romirk/sea/grammar"
)

func newGrammarCmd() *cobra.Command {
	var check bool
	var grammarFile string
	var tokensFile string

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print, verify, or apply the EBNF grammar of the accepted C subset",
		Long: `Print the EBNF grammar of the C subset sea accepts.

--check parses and verifies the grammar instead of printing it.
--tokens splits a C file with the grammar's lexical productions.
--grammar replaces the built-in grammar with one read from a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if !check && tokensFile == "" {
				if grammarFile == "" {
					_, err := out.Write(grammar.Source())
					return err
				}
				data, err := os.ReadFile(grammarFile)
				if err != nil {
					return fmt.Errorf("read grammar: %w", err)
				}
				_, err = out.Write(data)
				return err
			}

			g, err := loadGrammar(grammarFile)
			if err != nil {
				printErrors(cmd, err)
				return fmt.Errorf("invalid grammar")
			}

			if check {
				if err := grammar.Verify(g); err != nil {
					printErrors(cmd, err)
					return fmt.Errorf("invalid grammar")
				}
				fmt.Fprintf(out, "%d productions ok\n", len(g))
			}

			if tokensFile != "" {
				src, err := os.ReadFile(tokensFile)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				lexer, err := grammar.NewLexer(g, src, tokensFile)
				if err != nil {
					return err
				}
				tokens, err := lexer.Tokenize()
				if err != nil {
					return err
				}
				for _, tok := range tokens {
					if !tok.Trivia() {
						fmt.Fprintln(out, tok)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "verify the grammar")
	cmd.Flags().StringVar(&grammarFile, "grammar", "", "use the grammar in `file`")
	cmd.Flags().StringVar(&tokensFile, "tokens", "", "print the tokens of a C `file`")

	return cmd
}

func loadGrammar(filename string) (ebnf.Grammar, error) {
	if filename == "" {
		return grammar.Load()
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return grammar.Parse(filename, f)
}

func printErrors(cmd *cobra.Command, err error) {
	for _, e := range grammar.Errors(err) {
		cmd.PrintErrln(e)
	}
}
