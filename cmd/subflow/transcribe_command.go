package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"subflow/internal/pipeline"
)

func newTranscribeCommand(app *appContext) *cobra.Command {
	var (
		noCleanup bool
		start     string
		duration  string
	)

	cmd := &cobra.Command{
		Use:   "transcribe <url-or-file>",
		Short: "Transcribe only, without translation or playback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			p := pipeline.New(app.cfg, app.log)
			dir, err := p.Run(ctx, pipeline.Options{
				Input:    args[0],
				Cleanup:  !noCleanup,
				Start:    start,
				Duration: duration,
				OnEvent:  logEvents(ctx, app),
			})
			if err != nil {
				return err
			}
			app.log.Info(ctx, "Workspace: %s", dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCleanup, "no-cleanup", false, "Skip LLM transcription cleanup")
	cmd.Flags().StringVar(&start, "start", "", "Clip start time (ffmpeg syntax)")
	cmd.Flags().StringVar(&duration, "duration", "", "Clip duration (ffmpeg syntax)")
	return cmd
}
