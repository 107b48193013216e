package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/romirk/sea/c/codebase"
	"github.com/romirk/sea/format"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool
	var pf parseFlags

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Pretty-print a C file",
		Long: `Pretty-print a .c or .h file to stdout.

If no file is provided, reads C source from stdin.
Comments are not preserved.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fmtOverwrite && len(args) == 0 {
				return fmt.Errorf("-w requires a file argument")
			}
			if len(args) > 0 && args[0] != "-" && !codebase.IsSource(args[0]) {
				return fmt.Errorf("expected .c or .h file, got %s", args[0])
			}
			source, filename, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			output, err := format.PrettyPrintC(source, filename, pf.options("")...)
			if err != nil {
				return err
			}

			if fmtOverwrite {
				return os.WriteFile(filename, output, 0644)
			}
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")
	pf.register(cmd)

	return cmd
}
