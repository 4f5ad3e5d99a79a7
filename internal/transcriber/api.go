package transcriber

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"subflow/internal/config"
	"subflow/internal/logger"
	"subflow/internal/model"
)

// maxAPIFileBytes is the upload limit of the transcription endpoint.
const maxAPIFileBytes = 25 * 1024 * 1024

type apiTranscriber struct {
	client openai.Client
	model  string
	logger logger.Logger
}

// NewAPI creates a Transcriber backed by an OpenAI-compatible audio
// transcription endpoint.
func NewAPI(log logger.Logger, cfg config.WhisperConfig) (Transcriber, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("transcriber: environment variable %s is not set", cfg.APIKeyEnv)
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.APIBase != "" {
		opts = append(opts, option.WithBaseURL(cfg.APIBase))
	}
	return &apiTranscriber{
		client: openai.NewClient(opts...),
		model:  cfg.APIModel,
		logger: log,
	}, nil
}

func (t *apiTranscriber) Transcribe(ctx context.Context, audioPath, language string) ([]model.Word, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("stat audio: %w", err)
	}
	if info.Size() > maxAPIFileBytes {
		return nil, fmt.Errorf("audio file is %d MB, over the 25 MB API limit; use the local whisper backend or a shorter clip", info.Size()>>20)
	}

	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	t.logger.Info(ctx, "Uploading %s (%d KB) for transcription", audioPath, info.Size()>>10)
	resp, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:                   f,
		Model:                  openai.AudioModel(t.model),
		Language:               openai.String(language),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"word"},
	})
	if err != nil {
		return nil, fmt.Errorf("api transcribe: %w", err)
	}

	if len(resp.Words) == 0 {
		return nil, fmt.Errorf("api transcribe: response carries no word timestamps")
	}
	words := make([]model.Word, 0, len(resp.Words))
	for _, w := range resp.Words {
		words = append(words, model.Word{Text: w.Word, Start: w.Start, End: w.End})
	}

	t.logger.Info(ctx, "Transcription produced %d words", len(words))
	return words, nil
}
