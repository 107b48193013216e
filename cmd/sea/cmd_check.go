package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/romirk/sea/c/codebase"
	"github.com/romirk/sea/c/parser"
)

func newCheckCmd() *cobra.Command {
	var watch bool
	var interval time.Duration
	var pf parseFlags

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Report parse errors in C files and directories",
		Long: `Parse every .c and .h file under the given paths (default: the
current directory) and report each failure with the offending line.

Exits non-zero if any file fails to parse. With --watch, keeps polling a
single directory and reports files as they change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}
			out := termenv.NewOutput(cmd.OutOrStdout())

			if watch {
				if len(paths) != 1 {
					return fmt.Errorf("--watch takes a single directory")
				}
				return runWatch(cmd, out, paths[0], interval, pf.options(""))
			}
			return runCheck(out, paths, pf.options(""))
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep checking files as they change")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "polling interval for --watch")
	pf.register(cmd)

	return cmd
}

func runCheck(out *termenv.Output, paths []string, opts []parser.Option) error {
	var files []*codebase.FileInfo
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			cb := codebase.New(path, opts...)
			if err := cb.ScanAll(); err != nil {
				return fmt.Errorf("scan %s: %w", path, err)
			}
			files = append(files, cb.Files()...)
			continue
		}
		cb := codebase.New(".", opts...)
		if err := cb.ScanFile(path); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		files = append(files, cb.GetFile(path))
	}

	failed := 0
	for _, f := range files {
		if f.ParseErr != nil {
			failed++
			writeReport(out, f)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(files))
	}
	fmt.Fprintf(out, "%d files ok\n", len(files))
	return nil
}

func runWatch(cmd *cobra.Command, out *termenv.Output, root string, interval time.Duration, opts []parser.Option) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cb := codebase.New(root, opts...)
	w := codebase.NewFileWatcher(cb)
	w.SetPollInterval(interval)
	w.OnChange(func(path string, f *codebase.FileInfo) {
		switch {
		case f == nil:
			fmt.Fprintf(out, "%s removed\n", path)
		case f.ParseErr != nil:
			writeReport(out, f)
		default:
			fmt.Fprintf(out, "%s %s\n", path, out.String("ok").Foreground(termenv.ANSIGreen))
		}
	})
	w.Start()
	<-ctx.Done()
	w.Stop()
	return nil
}

// writeReport prints the parse failure of f with the offending source
// line and a caret under the error position.
func writeReport(w io.Writer, f *codebase.FileInfo) {
	out, ok := w.(*termenv.Output)
	if !ok {
		out = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}

	var pe *parser.Error
	if !errors.As(f.ParseErr, &pe) {
		fmt.Fprintf(out, "%s: %s %s\n", out.String(f.Path).Bold(), errorLabel(out), f.ParseErr)
		return
	}

	loc := fmt.Sprintf("%s:%d:%d", f.Path, pe.Pos.Line, pe.Pos.Column)
	fmt.Fprintf(out, "%s: %s %s\n", out.String(loc).Bold(), errorLabel(out), pe.Text())

	line := sourceLine(f.Content, pe.Pos.Line)
	gutter := fmt.Sprintf("%5d | ", pe.Pos.Line)
	fmt.Fprintf(out, "%s%s\n", gutter, line)

	var pad strings.Builder
	for i := 0; i < pe.Pos.Column-1 && i < len(line); i++ {
		if line[i] == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	caret := "^" + strings.Repeat("~", max(pe.Width()-1, 0))
	fmt.Fprintf(out, "%s| %s%s\n", strings.Repeat(" ", len(gutter)-2), pad.String(), out.String(caret).Foreground(termenv.ANSIGreen))
}

func errorLabel(out *termenv.Output) termenv.Style {
	return out.String("error:").Foreground(termenv.ANSIRed).Bold()
}

func sourceLine(content []byte, n int) string {
	lines := strings.Split(string(content), "\n")
	if n <= 0 || n > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[n-1], "\r")
}
