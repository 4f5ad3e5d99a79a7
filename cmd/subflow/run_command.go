package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"subflow/internal/language"
	"subflow/internal/pipeline"
)

func newRunCommand(app *appContext) *cobra.Command {
	var (
		translate string
		noCleanup bool
		noPlay    bool
		start     string
		duration  string
	)

	cmd := &cobra.Command{
		Use:   "run <url-or-file>",
		Short: "Run the full pipeline: download, transcribe, translate, play",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if translate != "" {
				if _, err := language.Validate(translate); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			p := pipeline.New(app.cfg, app.log)
			_, err := p.Run(ctx, pipeline.Options{
				Input:     args[0],
				Translate: translate,
				Cleanup:   !noCleanup,
				Play:      !noPlay,
				Start:     start,
				Duration:  duration,
				OnEvent:   logEvents(ctx, app),
			})
			return err
		},
	}

	cmd.Flags().StringVarP(&translate, "translate", "t", "", "Target language code (see 'subflow languages')")
	cmd.Flags().BoolVar(&noCleanup, "no-cleanup", false, "Skip LLM transcription cleanup")
	cmd.Flags().BoolVar(&noPlay, "no-play", false, "Do not open the player when done")
	cmd.Flags().StringVar(&start, "start", "", "Clip start time (ffmpeg syntax)")
	cmd.Flags().StringVar(&duration, "duration", "", "Clip duration (ffmpeg syntax)")
	return cmd
}

// logEvents surfaces stage transitions without flooding the log with every
// progress tick.
func logEvents(ctx context.Context, app *appContext) pipeline.EventFunc {
	return func(ev pipeline.Event) {
		if ev.Progress == 0 || ev.Progress == 1 {
			app.log.Info(ctx, "[%s] %s", ev.Stage, ev.Message)
		} else {
			app.log.Debug(ctx, "[%s] %s", ev.Stage, ev.Message)
		}
	}
}
