package model

import "fmt"

// Word is a single ASR word with its timestamps in seconds.
// Words are consumed entirely by the regrouper and never travel further
// down the pipeline.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is a timestamped unit of subtitle text. Start and End are set
// once by the regrouper (or a subtitle file loader) and are never changed
// by downstream stages; only Text is rewritten.
type Segment struct {
	Text    string  `json:"text"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker,omitempty"`
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// TranslationResult pairs the original segments with their translations.
// Both slices always have the same length, aligned by position.
type TranslationResult struct {
	Original       []Segment
	Translated     []Segment
	SourceLanguage string
	TargetLanguage string
}

// NewTranslationResult builds a TranslationResult, rejecting mismatched
// sequence lengths. A mismatch is a caller bug, not a recoverable state.
func NewTranslationResult(original, translated []Segment, sourceLang, targetLang string) (*TranslationResult, error) {
	if len(original) != len(translated) {
		return nil, fmt.Errorf("translation pairing: %d original segments vs %d translated", len(original), len(translated))
	}
	return &TranslationResult{
		Original:       original,
		Translated:     translated,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
	}, nil
}

// VideoSource is a resolved input: either a local file or a download.
type VideoSource struct {
	VideoPath string
	AudioPath string
	SourceURL string
	Title     string
	Duration  float64
}
