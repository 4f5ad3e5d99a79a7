// Package media extracts Whisper-ready audio from video files with ffmpeg
// and keeps a cross-workspace cache of extractions, indexed in SQLite, so
// re-running a video never decodes it twice.
package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"subflow/internal/logger"
	"subflow/pkg/executor"
)

// whisperSampleRate is the input rate whisper.cpp expects.
const whisperSampleRate = 16000

// ExtractOptions clip the extraction window. Times use ffmpeg syntax
// ("90", "1:30", "00:01:30.500"); empty means the whole file.
type ExtractOptions struct {
	Start    string
	Duration string
}

type Extractor struct {
	exec   executor.Executor
	logger logger.Logger
}

func NewExtractor(exec executor.Executor, log logger.Logger) *Extractor {
	return &Extractor{exec: exec, logger: log}
}

// ExtractAudio decodes videoPath to 16 kHz mono 16-bit PCM WAV at
// outputPath.
func (e *Extractor) ExtractAudio(ctx context.Context, videoPath, outputPath string, opts ExtractOptions) error {
	if _, err := os.Stat(videoPath); err != nil {
		return fmt.Errorf("video file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create audio dir: %w", err)
	}

	var args []string
	if opts.Start != "" {
		args = append(args, "-ss", opts.Start)
	}
	args = append(args, "-i", videoPath)
	if opts.Duration != "" {
		args = append(args, "-t", opts.Duration)
	}
	args = append(args,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", whisperSampleRate),
		"-ac", "1",
		"-y",
		outputPath,
	)

	e.logger.Info(ctx, "Extracting audio: %s -> %s", videoPath, outputPath)
	if _, err := e.exec.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("ffmpeg extract: %w", err)
	}
	return nil
}
