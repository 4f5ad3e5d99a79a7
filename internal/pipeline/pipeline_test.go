package pipeline

import (
	"path/filepath"
	"testing"

	"subflow/internal/config"
	"subflow/internal/logger"
	"subflow/internal/model"
)

func TestWordCacheRoundTrip(t *testing.T) {
	p := New(config.Default(), logger.NewNop())
	path := filepath.Join(t.TempDir(), "words.json")

	words := []model.Word{
		{Text: "bonjour", Start: 0.1, End: 0.5},
		{Text: "monde", Start: 0.6, End: 1.0},
	}
	if err := p.saveWords(path, words); err != nil {
		t.Fatalf("saveWords() error: %v", err)
	}

	got, err := p.loadWords(path)
	if err != nil {
		t.Fatalf("loadWords() error: %v", err)
	}
	if len(got) != 2 || got[0].Text != "bonjour" || got[1].End != 1.0 {
		t.Errorf("loadWords() = %+v", got)
	}
}

func TestLoadWordsRejectsEmpty(t *testing.T) {
	p := New(config.Default(), logger.NewNop())
	path := filepath.Join(t.TempDir(), "words.json")
	if err := p.saveWords(path, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := p.loadWords(path); err == nil {
		t.Error("loadWords() accepted an empty cache")
	}
}

func TestWhisperModelName(t *testing.T) {
	cfg := config.Default()
	cfg.Whisper.ModelPath = "/models/ggml-small.bin"
	p := New(cfg, logger.NewNop())
	if got := p.whisperModelName(); got != "ggml-small.bin" {
		t.Errorf("whisperModelName() = %q", got)
	}

	cfg.Whisper.Backend = "api"
	if got := p.whisperModelName(); got != "whisper-1" {
		t.Errorf("api whisperModelName() = %q", got)
	}
}
