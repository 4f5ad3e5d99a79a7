package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"subflow/internal/player"
	"subflow/internal/workspace"
	"subflow/pkg/executor"
)

func newPlayCommand(app *appContext) *cobra.Command {
	var (
		subs      string
		bilingual string
	)

	cmd := &cobra.Command{
		Use:   "play <workspace-run-dir>",
		Short: "Play a processed run with its subtitles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			video, ok := workspace.FindVideo(dir)
			if !ok {
				return fmt.Errorf("no video found in %s", dir)
			}

			if bilingual == "" {
				bilingual = firstGlob(dir, "bilingual.*.vtt")
			}
			if subs == "" {
				subs = firstGlob(dir, "transcription.*.vtt")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			p := player.New(executor.New(), app.log, app.cfg.Player)
			if !p.Available(ctx) {
				return fmt.Errorf("player %s not found", app.cfg.Player.BinaryPath)
			}
			return p.Play(ctx, video, subs, bilingual)
		},
	}

	cmd.Flags().StringVar(&subs, "subs", "", "Subtitle file (auto-detected)")
	cmd.Flags().StringVar(&bilingual, "bilingual", "", "Bilingual subtitle file (auto-detected)")
	return cmd
}

func firstGlob(dir, pattern string) string {
	matches, _ := filepath.Glob(filepath.Join(dir, pattern))
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[0]
}
