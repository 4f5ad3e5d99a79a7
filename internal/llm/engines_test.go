package llm

import (
	"context"
	"strings"
	"testing"

	"subflow/internal/logger"
)

func TestCleanupEngine(t *testing.T) {
	gen := &fakeGen{fn: echoUpper}
	engine := NewCleanupEngine(gen, logger.NewNop(), 0)
	in := mkSegments("euh bonjour", "comment allez vous")

	got := engine.Cleanup(context.Background(), in, "fr", nil)
	if len(got) != 2 {
		t.Fatalf("got %d segments, want 2", len(got))
	}
	if got[0].Text != "EUH BONJOUR" {
		t.Errorf("segment 0 = %q", got[0].Text)
	}
	if !strings.Contains(gen.calls[0], "in fr") {
		t.Errorf("prompt missing language, got:\n%s", gen.calls[0])
	}
	if strings.Contains(gen.calls[0], "->") {
		t.Errorf("cleanup prompt carries history")
	}
}

func TestCleanupEngineDefaultChunkSize(t *testing.T) {
	engine := NewCleanupEngine(&fakeGen{fn: echoUpper}, logger.NewNop(), 0)
	if engine.chunkSize != DefaultCleanupChunkSize {
		t.Errorf("chunkSize = %d, want %d", engine.chunkSize, DefaultCleanupChunkSize)
	}
}

func TestTranslationEnginePairsSegments(t *testing.T) {
	gen := &fakeGen{fn: echoUpper}
	engine := NewTranslationEngine(gen, logger.NewNop(), 2)
	in := mkSegments("bonjour", "le monde", "au revoir")

	res, err := engine.Translate(context.Background(), in, "fr", "en", nil)
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if len(res.Original) != 3 || len(res.Translated) != 3 {
		t.Fatalf("pairing broken: %d vs %d", len(res.Original), len(res.Translated))
	}
	if res.SourceLanguage != "fr" || res.TargetLanguage != "en" {
		t.Errorf("languages = %q, %q", res.SourceLanguage, res.TargetLanguage)
	}
	for i := range res.Original {
		if res.Original[i].Text != in[i].Text {
			t.Errorf("original %d mutated: %q", i, res.Original[i].Text)
		}
		if res.Translated[i].Start != in[i].Start || res.Translated[i].End != in[i].End {
			t.Errorf("translated %d timestamps changed", i)
		}
	}
	// Second chunk carries translation history from the first.
	if len(gen.calls) != 2 || !strings.Contains(gen.calls[1], "bonjour -> BONJOUR") {
		t.Errorf("translation history not carried, prompts: %d", len(gen.calls))
	}
}

func TestTranslationEngineFailureKeepsPairing(t *testing.T) {
	gen := &fakeGen{fn: func(_, _ string) (string, error) {
		return "", context.DeadlineExceeded
	}}
	engine := NewTranslationEngine(gen, logger.NewNop(), 0)
	in := mkSegments("un", "deux")

	res, err := engine.Translate(context.Background(), in, "fr", "en", nil)
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	for i := range res.Translated {
		if res.Translated[i].Text != in[i].Text {
			t.Errorf("failed translation %d = %q, want original", i, res.Translated[i].Text)
		}
	}
}
