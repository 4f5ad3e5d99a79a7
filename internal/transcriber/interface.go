package transcriber

import (
	"context"

	"subflow/internal/model"
)

// Transcriber converts an audio file into word-level timestamps. The word
// stream feeds the regrouper; no backend does its own segmentation.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) ([]model.Word, error)
}
