package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"subflow/internal/server"
)

func newServeCommand(app *appContext) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve <workspace-run-dir>",
		Short: "Serve a processed run in a local web player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := listen
			if addr == "" {
				addr = app.cfg.Server.Listen
			}

			srv := server.New(app.log, app.cfg.Paths.Workspace, args[0])
			if err := srv.Check(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				_ = srv.Shutdown()
			}()

			return srv.Listen(addr)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (defaults to server.listen)")
	return cmd
}
