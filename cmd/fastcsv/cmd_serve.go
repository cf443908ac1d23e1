package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/shapestone/fastcsv/internal/server"
)

const defaultAddr = ":8080"

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Long: `Start an HTTP server exposing the parser.

Endpoints:
  POST /v1/parse           {"text": "...", "options": {...}} -> {"rows": [...]}
  POST /v1/parse/objects   {"text": "...", "options": {...}} -> {"records": [...]}
  POST /v1/headers         {"text": "...", "options": {...}} -> {"headers": [...], "rows": n}
  GET  /healthz

The listen address defaults to $FASTCSV_ADDR, then :8080.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := server.New(commonlog.GetLogger("fastcsv.server"))
			return s.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("FASTCSV_ADDR", defaultAddr), "listen address")

	return cmd
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
