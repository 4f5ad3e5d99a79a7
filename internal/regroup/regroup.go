// Package regroup rebuilds word-level ASR timestamps into subtitle-sized
// segments. Splitting follows punctuation, speech gaps, and length/duration
// bounds; short fragments are merged back when they are close enough.
package regroup

import (
	"strings"
	"unicode/utf8"

	"subflow/internal/model"
)

const (
	sentencePunct = ".?!。？！"
	clausePunct   = ",;，；"

	// Gap above which adjacent words never share a segment.
	gapSplitSeconds = 0.5
	// Minimum words accumulated before a clause split is allowed.
	clauseMinWords = 4
	// Merge-back thresholds for short fragments.
	mergeMaxGapSeconds = 0.15
	mergeMaxPrevWords  = 3
	mergeMaxTotalWords = 10
)

// Options bounds segment size during regrouping.
type Options struct {
	MaxChars    int     // max rune length of space-joined segment text
	MaxDuration float64 // max segment duration in seconds
}

// DefaultOptions returns the subtitle-display defaults.
func DefaultOptions() Options {
	return Options{MaxChars: 50, MaxDuration: 8.0}
}

// Words regroups a flat word sequence into subtitle segments. Whitespace-only
// words are dropped first; each output segment takes its start from its first
// word and its end from its last word.
func Words(words []model.Word, opts Options) []model.Segment {
	if opts.MaxChars <= 0 {
		opts.MaxChars = 50
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = 8.0
	}

	filtered := make([]model.Word, 0, len(words))
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		filtered = append(filtered, model.Word{Text: text, Start: w.Start, End: w.End})
	}
	if len(filtered) == 0 {
		return nil
	}

	groups := splitBySentence(filtered)
	groups = splitByGap(groups)
	groups = splitByClause(groups)
	groups = splitByBounds(groups, opts)
	groups = mergeShortFragments(groups, opts)

	segments := make([]model.Segment, 0, len(groups))
	for _, g := range groups {
		segments = append(segments, model.Segment{
			Text:  joinWords(g),
			Start: g[0].Start,
			End:   g[len(g)-1].End,
		})
	}
	return segments
}

// Phase 1: start a new group after every sentence-terminal word.
func splitBySentence(words []model.Word) [][]model.Word {
	groups := [][]model.Word{{words[0]}}
	for _, w := range words[1:] {
		last := groups[len(groups)-1]
		if endsWithAny(last[len(last)-1].Text, sentencePunct) {
			groups = append(groups, []model.Word{w})
		} else {
			groups[len(groups)-1] = append(last, w)
		}
	}
	return groups
}

// Phase 2: split within groups wherever the silence gap exceeds the bound.
func splitByGap(groups [][]model.Word) [][]model.Word {
	var out [][]model.Word
	for _, g := range groups {
		current := []model.Word{g[0]}
		for _, w := range g[1:] {
			gap := w.Start - current[len(current)-1].End
			if gap > gapSplitSeconds {
				out = append(out, current)
				current = []model.Word{w}
			} else {
				current = append(current, w)
			}
		}
		out = append(out, current)
	}
	return out
}

// Phase 3: split after clause punctuation, but only once the group already
// holds enough words, so short clauses stay intact.
func splitByClause(groups [][]model.Word) [][]model.Word {
	var out [][]model.Word
	for _, g := range groups {
		current := []model.Word{g[0]}
		for _, w := range g[1:] {
			if len(current) >= clauseMinWords && endsWithAny(current[len(current)-1].Text, clausePunct) {
				out = append(out, current)
				current = []model.Word{w}
			} else {
				current = append(current, w)
			}
		}
		out = append(out, current)
	}
	return out
}

// Phase 4: enforce the char and duration bounds. A word whose own text
// already exceeds MaxChars still becomes its own group, never split mid-word.
func splitByBounds(groups [][]model.Word, opts Options) [][]model.Word {
	var out [][]model.Word
	for _, g := range groups {
		current := []model.Word{g[0]}
		curLen := utf8.RuneCountInString(g[0].Text)
		for _, w := range g[1:] {
			newLen := curLen + 1 + utf8.RuneCountInString(w.Text)
			dur := w.End - current[0].Start
			if newLen > opts.MaxChars || dur > opts.MaxDuration {
				out = append(out, current)
				current = []model.Word{w}
				curLen = utf8.RuneCountInString(w.Text)
			} else {
				current = append(current, w)
				curLen = newLen
			}
		}
		out = append(out, current)
	}
	return out
}

// Phase 5: merge a group into the previous one when the previous is a short
// fragment and the silence gap is negligible. Merging is transitive within
// the single left-to-right pass.
func mergeShortFragments(groups [][]model.Word, opts Options) [][]model.Word {
	merged := [][]model.Word{groups[0]}
	for _, g := range groups[1:] {
		prev := merged[len(merged)-1]
		gap := g[0].Start - prev[len(prev)-1].End
		totalWords := len(prev) + len(g)
		totalLen := utf8.RuneCountInString(joinWords(prev)) + 1 + utf8.RuneCountInString(joinWords(g))
		if len(prev) < mergeMaxPrevWords &&
			gap < mergeMaxGapSeconds &&
			totalWords <= mergeMaxTotalWords &&
			totalLen <= opts.MaxChars {
			merged[len(merged)-1] = append(prev, g...)
		} else {
			merged = append(merged, g)
		}
	}
	return merged
}

func joinWords(words []model.Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

func endsWithAny(text, set string) bool {
	if text == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	return strings.ContainsRune(set, r)
}
