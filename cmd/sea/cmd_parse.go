package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/romirk/sea/c/parser"
	"github.com/romirk/sea/format"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var outputFile string
	var writeAST bool
	var pf parseFlags

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a C file and dump the result",
		Long: `Parse a C file and write its syntax tree to stdout.

If no file is provided, reads C source from stdin.

Use --ast to also write the debug tree next to the source as <file>.ast.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, filename, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			if writeAST && filename == "" {
				return fmt.Errorf("--ast requires a file argument")
			}

			prog, err := parser.Parse(string(source), pf.options(filename)...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputFile != "" {
				f, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}

			encoder, err := format.NewEncoder(outputFormat, out)
			if err != nil {
				return err
			}
			if err := encoder.Encode(prog); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			if writeAST {
				f, err := os.Create(filename + ".ast")
				if err != nil {
					return fmt.Errorf("create ast file: %w", err)
				}
				defer f.Close()
				if err := format.NewDebugEncoder(f).Encode(prog); err != nil {
					return fmt.Errorf("encode ast: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", format.Names[0], "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write to `file` instead of stdout")
	cmd.Flags().BoolVar(&writeAST, "ast", false, "also write the debug tree to <file>.ast")
	pf.register(cmd)

	return cmd
}
