// Package boundary repairs linguistically dangling tokens at segment
// boundaries: a trailing clitic (l', d', qu') or function word (determiner,
// preposition) left at the end of a segment by time-based splitting is moved
// to the start of the following segment. Only segment text is rewritten;
// timestamps never change.
package boundary

import (
	"strings"

	"subflow/internal/model"
)

// Repairer applies boundary repair over segment sequences. Taggers are
// resolved lazily through the cache; a language without a tagger simply
// skips the part-of-speech rule.
type Repairer struct {
	taggers *Cache
}

// New creates a Repairer. A nil cache disables the POS rule entirely;
// the apostrophe rules are language-agnostic and always apply.
func New(taggers *Cache) *Repairer {
	return &Repairer{taggers: taggers}
}

// Repair runs a single left-to-right pass over the sequence and drops
// segments left empty by a donated token. Rules are not reapplied across
// chained dangles.
func (r *Repairer) Repair(segments []model.Segment, language string) []model.Segment {
	if len(segments) < 2 {
		return segments
	}
	return r.pass(segments, language)
}

// RepairText is the text-only variant: the same rules run for two
// left-to-right passes, which resolves three-way splits such as
// "de l" / "'" / "école" into "de" / "l'école".
func (r *Repairer) RepairText(segments []model.Segment, language string) []model.Segment {
	if len(segments) < 2 {
		return segments
	}
	out := r.pass(segments, language)
	if len(out) < 2 {
		return out
	}
	return r.pass(out, language)
}

func (r *Repairer) pass(segments []model.Segment, language string) []model.Segment {
	var tagger Tagger
	if r.taggers != nil {
		tagger = r.taggers.Get(language)
	}

	out := make([]model.Segment, len(segments))
	copy(out, segments)

	for i := 0; i < len(out)-1; i++ {
		cur := strings.TrimSpace(out[i].Text)
		next := strings.TrimSpace(out[i+1].Text)
		if cur == "" {
			continue
		}

		// Apostrophe rule: a trailing chunk ending in an apostrophe is a
		// clitic that belongs to the next segment's first word. Attached
		// with no separating space. May consume the entire text.
		if endsWithApostrophe(cur) {
			chunk, rest := splitTrailingWord(cur)
			out[i].Text = rest
			out[i+1].Text = chunk + next
			continue
		}

		// Mirror case: the next segment begins with an apostrophe, so the
		// apostrophe belongs to this segment's last word. Push the word
		// forward to rejoin it.
		if startsWithApostrophe(next) {
			word, rest := splitTrailingWord(cur)
			out[i].Text = rest
			out[i+1].Text = word + next
			continue
		}

		// POS rule: best-effort, needs a tagger and at least two tokens
		// (never empty a segment through tagging alone).
		if tagger == nil {
			continue
		}
		tokens := tagger.Tag(cur)
		if len(tokens) < 2 {
			continue
		}
		last := tokens[len(tokens)-1]
		if last.POS != POSDeterminer && last.POS != POSAdposition {
			continue
		}
		word, rest := splitTrailingWord(cur)
		if word != last.Text {
			continue
		}
		out[i].Text = rest
		out[i+1].Text = word + " " + next
	}

	return dropEmpty(out)
}

// splitTrailingWord separates the chunk after the last whitespace from the
// rest. Without whitespace the whole text is the chunk and the rest is empty.
func splitTrailingWord(text string) (word, rest string) {
	idx := strings.LastIndexFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
	if idx < 0 {
		return text, ""
	}
	return text[idx+1:], strings.TrimSpace(text[:idx])
}

func endsWithApostrophe(text string) bool {
	return strings.HasSuffix(text, "'") || strings.HasSuffix(text, "’")
}

func startsWithApostrophe(text string) bool {
	return strings.HasPrefix(text, "'") || strings.HasPrefix(text, "’")
}

func dropEmpty(segments []model.Segment) []model.Segment {
	out := segments[:0:0]
	for _, s := range segments {
		if strings.TrimSpace(s.Text) != "" {
			out = append(out, s)
		}
	}
	return out
}
