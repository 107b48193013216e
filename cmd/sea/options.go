package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/romirk/sea/c/parser"
)

// parseFlags are the parser settings shared by the commands that parse C.
type parseFlags struct {
	typedefs []string
	maxDepth int
}

func (f *parseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.typedefs, "typedef", nil, "treat `name` as a typedef name (repeatable)")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", parser.DefaultMaxDepth, "maximum rule nesting depth")
}

func (f *parseFlags) options(filename string) []parser.Option {
	var opts []parser.Option
	if filename != "" {
		opts = append(opts, parser.WithFile(filename))
	}
	if len(f.typedefs) > 0 {
		opts = append(opts, parser.WithTypeNames(f.typedefs...))
	}
	if f.maxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(f.maxDepth))
	}
	return opts
}

// readSource reads the file named by args, or standard input when there is
// none or it is "-". The returned name is empty for standard input.
func readSource(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		source, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return source, "", nil
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return source, args[0], nil
}
