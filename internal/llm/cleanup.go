package llm

import (
	"context"

	"subflow/internal/logger"
	"subflow/internal/model"
)

// DefaultCleanupChunkSize is the number of segments sent per cleanup call.
const DefaultCleanupChunkSize = 20

// CleanupEngine fixes ASR artifacts (misspellings, fillers, punctuation)
// in the source language, one chunk at a time. Cleanup is stateless across
// chunks: neighboring lines give enough context and no history is carried.
type CleanupEngine struct {
	gen       Generator
	log       logger.Logger
	chunkSize int
}

func NewCleanupEngine(gen Generator, log logger.Logger, chunkSize int) *CleanupEngine {
	if chunkSize <= 0 {
		chunkSize = DefaultCleanupChunkSize
	}
	return &CleanupEngine{gen: gen, log: log, chunkSize: chunkSize}
}

// Cleanup returns a cleaned copy of the sequence. The result always has the
// same length, timestamps and speakers as the input; segments the model
// could not process keep their original text.
func (e *CleanupEngine) Cleanup(ctx context.Context, segments []model.Segment, language string, onProgress ProgressFunc) []model.Segment {
	proc := &chunkProcessor{
		gen:    e.gen,
		log:    e.log,
		system: cleanupSystem,
		buildUser: func(count int, body string) string {
			return cleanupUser(count, language, body)
		},
		chunkSize:  e.chunkSize,
		onProgress: onProgress,
	}
	return proc.run(ctx, segments)
}
