package llm

import (
	"context"

	"subflow/internal/logger"
	"subflow/internal/model"
)

// DefaultTranslationChunkSize is the number of segments sent per
// translation call. Smaller than cleanup: translations drift more, and a
// mismatched chunk costs a full retry.
const DefaultTranslationChunkSize = 15

// TranslationEngine translates segment sequences between languages. A
// rolling window of recent source/translation pairs is carried across
// chunks so terminology stays consistent over a long transcript.
type TranslationEngine struct {
	gen       Generator
	log       logger.Logger
	chunkSize int
}

func NewTranslationEngine(gen Generator, log logger.Logger, chunkSize int) *TranslationEngine {
	if chunkSize <= 0 {
		chunkSize = DefaultTranslationChunkSize
	}
	return &TranslationEngine{gen: gen, log: log, chunkSize: chunkSize}
}

// Translate pairs every input segment with a translated counterpart.
// Segments the model could not translate keep their original text, so the
// pairing invariant holds even under partial failure.
func (e *TranslationEngine) Translate(ctx context.Context, segments []model.Segment, sourceLang, targetLang string, onProgress ProgressFunc) (*model.TranslationResult, error) {
	proc := &chunkProcessor{
		gen:    e.gen,
		log:    e.log,
		system: translationSystem(sourceLang, targetLang),
		buildUser: func(count int, body string) string {
			return translationUser(count, sourceLang, targetLang, body)
		},
		chunkSize:  e.chunkSize,
		useHistory: true,
		onProgress: onProgress,
	}
	translated := proc.run(ctx, segments)
	return model.NewTranslationResult(segments, translated, sourceLang, targetLang)
}
