package boundary

import (
	"testing"

	"subflow/internal/model"
)

func segs(texts ...string) []model.Segment {
	out := make([]model.Segment, len(texts))
	for i, t := range texts {
		out[i] = model.Segment{Text: t, Start: float64(i), End: float64(i) + 0.9}
	}
	return out
}

func texts(segments []model.Segment) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = s.Text
	}
	return out
}

func TestCliticRoundTrip(t *testing.T) {
	r := New(NewCache(LexiconLoader))
	got := r.Repair(segs("C'est de l'", "école primaire"), "fr")
	want := []string{"C'est de", "l'école primaire"}
	if len(got) != 2 || got[0].Text != want[0] || got[1].Text != want[1] {
		t.Errorf("Repair() = %v, want %v", texts(got), want)
	}
}

func TestCurlyApostrophe(t *testing.T) {
	r := New(nil)
	got := r.Repair(segs("c'est l’", "histoire"), "fr")
	if len(got) != 2 || got[1].Text != "l’histoire" {
		t.Errorf("Repair() = %v", texts(got))
	}
}

func TestThreeWayCliticSplit(t *testing.T) {
	r := New(NewCache(LexiconLoader))
	got := r.RepairText(segs("de l", "'", "école"), "fr")
	want := []string{"de", "l'école"}
	if len(got) != 2 || got[0].Text != want[0] || got[1].Text != want[1] {
		t.Errorf("RepairText() = %v, want %v", texts(got), want)
	}
}

func TestEmptyAfterRemovalDrop(t *testing.T) {
	r := New(nil)
	got := r.Repair(segs("l'", "école"), "fr")
	if len(got) != 1 || got[0].Text != "l'école" {
		t.Errorf("Repair() = %v, want [l'école]", texts(got))
	}
	// The surviving segment keeps its own timestamps.
	if got[0].Start != 1.0 {
		t.Errorf("surviving segment start = %v, want 1.0", got[0].Start)
	}
}

func TestRepairTextIdempotent(t *testing.T) {
	r := New(NewCache(LexiconLoader))
	once := r.RepairText(segs("de l", "'", "école"), "fr")
	twice := r.RepairText(once, "fr")
	if len(once) != len(twice) {
		t.Fatalf("second RepairText changed length: %v vs %v", texts(once), texts(twice))
	}
	for i := range once {
		if once[i].Text != twice[i].Text {
			t.Errorf("second RepairText changed text: %v vs %v", texts(once), texts(twice))
		}
	}
}

func TestPOSRuleMovesDeterminer(t *testing.T) {
	r := New(NewCache(LexiconLoader))
	got := r.Repair(segs("il regarde la", "maison blanche"), "fr")
	want := []string{"il regarde", "la maison blanche"}
	if len(got) != 2 || got[0].Text != want[0] || got[1].Text != want[1] {
		t.Errorf("Repair() = %v, want %v", texts(got), want)
	}
}

func TestPOSRuleMovesPreposition(t *testing.T) {
	r := New(NewCache(LexiconLoader))
	got := r.Repair(segs("we were talking about", "the weather"), "en")
	want := []string{"we were talking", "about the weather"}
	if len(got) != 2 || got[0].Text != want[0] || got[1].Text != want[1] {
		t.Errorf("Repair() = %v, want %v", texts(got), want)
	}
}

func TestPOSRuleSkipsContentWord(t *testing.T) {
	r := New(NewCache(LexiconLoader))
	in := segs("ils mangent ensemble", "tous les soirs")
	got := r.Repair(in, "fr")
	if got[0].Text != in[0].Text || got[1].Text != in[1].Text {
		t.Errorf("Repair() changed segments without a dangling token: %v", texts(got))
	}
}

func TestMissingTaggerSkipsPOSRule(t *testing.T) {
	r := New(NewCache(LexiconLoader))
	// No lexicon for Japanese: POS rule silently skipped, input unchanged.
	in := segs("これは", "テストです")
	got := r.Repair(in, "ja")
	if len(got) != 2 || got[0].Text != in[0].Text || got[1].Text != in[1].Text {
		t.Errorf("Repair() = %v, want input unchanged", texts(got))
	}
}

func TestSingleTokenNeverEmptiedByPOSRule(t *testing.T) {
	r := New(NewCache(LexiconLoader))
	in := segs("la", "maison")
	got := r.Repair(in, "fr")
	// "la" is a determiner but the only token; the POS rule must not fire.
	if len(got) != 2 || got[0].Text != "la" {
		t.Errorf("Repair() = %v, want input unchanged", texts(got))
	}
}

func TestTimestampsUntouched(t *testing.T) {
	r := New(NewCache(LexiconLoader))
	in := segs("il regarde la", "maison blanche")
	got := r.Repair(in, "fr")
	for i := range got {
		if got[i].Start != in[i].Start || got[i].End != in[i].End {
			t.Errorf("segment %d timestamps changed: %+v", i, got[i])
		}
	}
}

func TestFewerThanTwoSegments(t *testing.T) {
	r := New(nil)
	if got := r.Repair(nil, "fr"); len(got) != 0 {
		t.Errorf("Repair(nil) = %v", got)
	}
	one := segs("l'")
	if got := r.Repair(one, "fr"); len(got) != 1 || got[0].Text != "l'" {
		t.Errorf("Repair(single) = %v", texts(got))
	}
}

func TestCacheProbesLoaderOnce(t *testing.T) {
	calls := 0
	cache := NewCache(func(language string) Tagger {
		calls++
		return nil
	})
	cache.Get("xx")
	cache.Get("xx")
	cache.Get("xx")
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}
}

func TestLexiconTag(t *testing.T) {
	tagger := LexiconLoader("fr")
	if tagger == nil {
		t.Fatal("no French lexicon")
	}
	tokens := tagger.Tag("il parle de")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens", len(tokens))
	}
	if tokens[2].POS != POSAdposition {
		t.Errorf("'de' tagged %v, want adposition", tokens[2].POS)
	}
	if tokens[0].POS != POSOther {
		t.Errorf("'il' tagged %v, want other", tokens[0].POS)
	}
}
