// Package llm turns segment sequences through a text-generation service in
// numbered batches. Chunks whose responses come back with the wrong line
// count are bisected and retried; a chunk that still cannot be reconciled
// keeps its original text, so the output always pairs one-to-one with the
// input and a model failure can never lose a segment.
package llm

import (
	"context"
	"strings"

	"subflow/internal/logger"
	"subflow/internal/model"
)

const (
	// historyLimit bounds the rolling source/output pairs carried between
	// chunks for terminology consistency.
	historyLimit = 5

	// neighborLimit bounds the context-only segments shown on each side of
	// a chunk, taken from the full sequence.
	neighborLimit = 2

	// maxBisectDepth caps retry recursion; depth 3 over a chunk of 20
	// already reaches sub-chunks of 2-3 lines.
	maxBisectDepth = 3
)

type historyPair struct {
	source string
	output string
}

// userPromptFunc builds the user prompt for a chunk. body already contains
// the context prefix and the numbered input lines.
type userPromptFunc func(count int, body string) string

// chunkProcessor runs one engine pass (cleanup or translation) over a
// segment sequence. It is single-use: history accumulates across chunks
// within one run.
type chunkProcessor struct {
	gen        Generator
	log        logger.Logger
	system     string
	buildUser  userPromptFunc
	chunkSize  int
	useHistory bool
	history    []historyPair
	onProgress ProgressFunc
}

// run processes the sequence chunk by chunk and returns a new slice of the
// same length. Timestamps and speakers are copied through untouched;
// whitespace-only segments bypass the model entirely.
func (p *chunkProcessor) run(ctx context.Context, segments []model.Segment) []model.Segment {
	out := make([]model.Segment, len(segments))
	copy(out, segments)
	if len(segments) == 0 {
		p.reportProgress(1)
		return out
	}

	totalChunks := (len(segments) + p.chunkSize - 1) / p.chunkSize
	for chunk := 0; chunk < totalChunks; chunk++ {
		start := chunk * p.chunkSize
		end := min(start+p.chunkSize, len(segments))

		var indices []int
		var texts []string
		for i := start; i < end; i++ {
			if strings.TrimSpace(segments[i].Text) == "" {
				continue
			}
			indices = append(indices, i)
			texts = append(texts, segments[i].Text)
		}

		if len(texts) > 0 {
			prefix := p.contextPrefix(segments, start, end)
			results := p.processTexts(ctx, texts, prefix, 0)
			for k, idx := range indices {
				if strings.TrimSpace(results[k]) == "" {
					// Blank result: keep the original rather than emit an
					// empty subtitle line.
					continue
				}
				out[idx].Text = results[k]
			}
			p.recordHistory(texts, results)
		}

		p.reportProgress(float64(chunk+1) / float64(totalChunks))
	}
	return out
}

// processTexts sends one numbered batch and reconciles the response. On a
// line-count mismatch the batch is split in half and each half retried;
// past maxBisectDepth, or on a transport error, the originals come back
// unchanged. The second half loses the context prefix: its own first half
// is now its nearest context.
func (p *chunkProcessor) processTexts(ctx context.Context, texts []string, contextPrefix string, depth int) []string {
	user := p.buildUser(len(texts), contextPrefix+formatNumbered(texts))
	resp, err := p.gen.Generate(ctx, p.system, user)
	if err != nil {
		p.log.Warn(ctx, "generation failed for %d lines, keeping originals: %v", len(texts), err)
		return texts
	}

	parsed, exact := parseNumberedResponse(resp, len(texts))
	if exact || len(texts) <= 2 {
		return parsed
	}
	if depth >= maxBisectDepth {
		p.log.Warn(ctx, "line count still off after %d retries for %d lines, keeping originals", depth, len(texts))
		return texts
	}

	p.log.Debug(ctx, "line count mismatch for %d lines, bisecting at depth %d", len(texts), depth)
	mid := len(texts) / 2
	first := p.processTexts(ctx, texts[:mid], contextPrefix, depth+1)
	second := p.processTexts(ctx, texts[mid:], "", depth+1)
	// The fallback paths above return sub-slices of texts; merging into a
	// fresh slice keeps the caller's originals intact.
	merged := make([]string, 0, len(texts))
	merged = append(merged, first...)
	return append(merged, second...)
}

// contextPrefix assembles the history block and the neighboring segments
// just outside [start, end) in the full sequence.
func (p *chunkProcessor) contextPrefix(segments []model.Segment, start, end int) string {
	var before, after []string
	for i := max(start-neighborLimit, 0); i < start; i++ {
		if t := strings.TrimSpace(segments[i].Text); t != "" {
			before = append(before, t)
		}
	}
	for i := end; i < min(end+neighborLimit, len(segments)); i++ {
		if t := strings.TrimSpace(segments[i].Text); t != "" {
			after = append(after, t)
		}
	}

	var b strings.Builder
	if p.useHistory {
		b.WriteString(formatHistory(p.history))
	}
	b.WriteString(formatNeighbors(before, after))
	return b.String()
}

func (p *chunkProcessor) recordHistory(sources, outputs []string) {
	if !p.useHistory {
		return
	}
	for i := range sources {
		// Blank results never entered the output; results identical to
		// their source are fallback lines, not model examples.
		if strings.TrimSpace(outputs[i]) == "" || outputs[i] == sources[i] {
			continue
		}
		p.history = append(p.history, historyPair{source: sources[i], output: outputs[i]})
	}
	if len(p.history) > historyLimit {
		p.history = p.history[len(p.history)-historyLimit:]
	}
}

func (p *chunkProcessor) reportProgress(fraction float64) {
	if p.onProgress != nil {
		p.onProgress(fraction)
	}
}
