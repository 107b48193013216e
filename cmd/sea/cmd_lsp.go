package main

import (
	"github.com/spf13/cobra"

	"github.com/romirk/sea/c/codebase"
)

func newLSPCmd() *cobra.Command {
	var tcpAddr string
	var wsAddr string
	var pf parseFlags

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start a language server that publishes parse diagnostics and offers
completion and hover for top-level declarations.

Serves stdio unless --tcp or --websocket is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version, pf.options("")...)
			switch {
			case tcpAddr != "":
				return server.RunTCP(tcpAddr)
			case wsAddr != "":
				return server.RunWebSocket(wsAddr)
			}
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&tcpAddr, "tcp", "", "listen on a TCP `address`")
	cmd.Flags().StringVar(&wsAddr, "websocket", "", "listen for WebSocket connections on `address`")
	cmd.MarkFlagsMutuallyExclusive("tcp", "websocket")
	pf.register(cmd)

	return cmd
}
