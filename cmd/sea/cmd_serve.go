package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/romirk/sea/c/codebase"
	"github.com/romirk/sea/web"
)

func newServeCmd() *cobra.Command {
	var addr string
	var root string
	var pf parseFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web playground",
		Long: `Serve a page that parses, formats and tokenizes pasted source.

With --root, the directory is scanned, kept current by polling, and its
files are listed under /files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := commonlog.GetLogger("sea.web")

			var cb *codebase.Codebase
			if root != "" {
				cb = codebase.New(root, pf.options("")...)
				watcher := codebase.NewFileWatcher(cb)
				watcher.Start()
				defer watcher.Stop()
			}

			server, err := web.NewServer(cb, pf.options("")...)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{Addr: addr, Handler: server}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
			}()

			log.Noticef("listening on %s", addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen `address`")
	cmd.Flags().StringVar(&root, "root", "", "scan and watch the C sources under `dir`")
	pf.register(cmd)

	return cmd
}
