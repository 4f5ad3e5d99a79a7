// Package player launches mpv on a processed video with its subtitles.
package player

import (
	"context"
	"fmt"

	"subflow/internal/config"
	"subflow/internal/logger"
	"subflow/pkg/executor"
)

type Player struct {
	exec   executor.Executor
	logger logger.Logger
	cfg    config.PlayerConfig
}

func New(exec executor.Executor, log logger.Logger, cfg config.PlayerConfig) *Player {
	return &Player{exec: exec, logger: log, cfg: cfg}
}

// Available reports whether the configured player binary runs.
func (p *Player) Available(ctx context.Context) bool {
	_, err := p.exec.Execute(ctx, p.cfg.BinaryPath, "--version")
	return err == nil
}

// Play opens the video with subtitles. A bilingual track wins over the
// primary one; it carries two stacked lines per cue, so it gets the
// smaller font.
func (p *Player) Play(ctx context.Context, videoPath, primarySubs, bilingualSubs string) error {
	subs := primarySubs
	fontSize := p.cfg.SubFontSize
	if bilingualSubs != "" {
		subs = bilingualSubs
		fontSize = p.cfg.SecondarySubFontSize
	}

	args := []string{videoPath}
	if subs != "" {
		args = append(args,
			fmt.Sprintf("--sub-file=%s", subs),
			fmt.Sprintf("--sub-font-size=%d", fontSize),
		)
	}

	p.logger.Info(ctx, "Playing %s", videoPath)
	if _, err := p.exec.Execute(ctx, p.cfg.BinaryPath, args...); err != nil {
		return fmt.Errorf("play video: %w", err)
	}
	return nil
}
