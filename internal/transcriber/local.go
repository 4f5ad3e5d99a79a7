package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"subflow/internal/config"
	"subflow/internal/logger"
	"subflow/internal/model"
	"subflow/pkg/executor"
)

type localTranscriber struct {
	exec   executor.Executor
	logger logger.Logger
	cfg    config.WhisperConfig
}

// NewLocal creates a Transcriber running whisper.cpp on this machine.
func NewLocal(exec executor.Executor, log logger.Logger, cfg config.WhisperConfig) Transcriber {
	return &localTranscriber{exec: exec, logger: log, cfg: cfg}
}

// whisperJSON mirrors the whisper.cpp -oj output. With -ml 1 and -sow each
// transcription entry holds exactly one word; offsets are milliseconds.
type whisperJSON struct {
	Transcription []struct {
		Text    string `json:"text"`
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
	} `json:"transcription"`
}

func (t *localTranscriber) Transcribe(ctx context.Context, audioPath, language string) ([]model.Word, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	// -ml 1 caps segments at one token, -sow splits on word boundaries:
	// together they turn whisper.cpp's segment output into a word stream.
	args := []string{
		"-m", t.cfg.ModelPath,
		"-f", audioPath,
		"-l", language,
		"-t", strconv.Itoa(t.cfg.Threads),
		"-ml", "1",
		"-sow",
		"-oj",
		"-of", outputPrefix,
	}

	t.logger.Info(ctx, "Transcribing %s with %d threads", audioPath, t.cfg.Threads)
	if _, err := t.exec.Execute(ctx, t.cfg.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	jsonPath := outputPrefix + ".json"
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	var out whisperJSON
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	words := make([]model.Word, 0, len(out.Transcription))
	for _, entry := range out.Transcription {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		words = append(words, model.Word{
			Text:  text,
			Start: float64(entry.Offsets.From) / 1000.0,
			End:   float64(entry.Offsets.To) / 1000.0,
		})
	}

	t.logger.Info(ctx, "Transcription produced %d words", len(words))
	return words, nil
}
