package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"subflow/internal/language"
	"subflow/internal/pipeline"
	"subflow/internal/watcher"
)

// newWatchCommand monitors a drop directory and runs the pipeline on every
// video that lands in it.
func newWatchCommand(app *appContext) *cobra.Command {
	var (
		translate     string
		noCleanup     bool
		maxConcurrent int
	)

	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Watch a directory and process every new video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if translate != "" {
				if _, err := language.Validate(translate); err != nil {
					return err
				}
			}
			dir := args[0]
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			p := pipeline.New(app.cfg, app.log)
			handler := func(ctx context.Context, filePath string) error {
				_, err := p.Run(ctx, pipeline.Options{
					Input:     filePath,
					Translate: translate,
					Cleanup:   !noCleanup,
					OnEvent:   logEvents(ctx, app),
				})
				return err
			}

			w, err := watcher.New(dir, handler, app.log, maxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			err = w.Start(ctx)
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&translate, "translate", "t", "", "Target language code for every video")
	cmd.Flags().BoolVar(&noCleanup, "no-cleanup", false, "Skip LLM transcription cleanup")
	cmd.Flags().IntVar(&maxConcurrent, "max-concurrent", 1, "Videos processed in parallel")
	return cmd
}
