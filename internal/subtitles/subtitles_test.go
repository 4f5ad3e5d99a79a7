package subtitles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subflow/internal/model"
)

func sampleSegments() []model.Segment {
	return []model.Segment{
		{Text: "Bonjour tout le monde.", Start: 0.5, End: 2.25},
		{Text: "Comment allez-vous ?", Start: 2.5, End: 4.0},
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		sep     byte
		want    string
	}{
		{0, '.', "00:00:00.000"},
		{1.5, ',', "00:00:01,500"},
		{61.042, '.', "00:01:01.042"},
		{3661.999, ',', "01:01:01,999"},
		{-1, '.', "00:00:00.000"},
	}
	for _, tt := range tests {
		if got := formatTimestamp(tt.seconds, tt.sep); got != tt.want {
			t.Errorf("formatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"00:00:01.500", 1.5, false},
		{"00:00:01,500", 1.5, false},
		{"01:02.000", 62.0, false},
		{"01:01:01.042", 3661.042, false},
		{"nonsense", 0, true},
	}
	for _, tt := range tests {
		got, err := parseTimestamp(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTimestamp(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSRTRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")
	if err := Save(path, FormatSRT, sampleSegments()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "00:00:00,500 --> 00:00:02,250") {
		t.Errorf("SRT timing missing, got:\n%s", data)
	}
	if !strings.HasPrefix(string(data), "1\n") {
		t.Errorf("SRT must start with cue index 1")
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := sampleSegments()
	if len(got) != len(want) {
		t.Fatalf("got %d segments, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].Text != want[i].Text || got[i].Start != want[i].Start || got[i].End != want[i].End {
			t.Errorf("segment %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestVTTRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.vtt")
	segs := sampleSegments()
	segs[0].Speaker = "Alice"
	if err := Save(path, FormatVTT, segs); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "WEBVTT\n") {
		t.Errorf("missing WEBVTT header")
	}
	if !strings.Contains(string(data), "<v Alice>") {
		t.Errorf("missing voice tag, got:\n%s", data)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d segments", len(got))
	}
	if got[0].Speaker != "Alice" || got[0].Text != segs[0].Text {
		t.Errorf("segment 0 = %+v", got[0])
	}
}

func TestTXTRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	segs := append(sampleSegments(), model.Segment{Text: "   ", Start: 5, End: 6})
	if err := Save(path, FormatTXT, segs); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	// Blank segment dropped, timestamps not representable in TXT.
	if len(got) != 2 {
		t.Fatalf("got %d segments, want 2", len(got))
	}
	if got[0].Text != "Bonjour tout le monde." || got[0].Start != 0 {
		t.Errorf("segment 0 = %+v", got[0])
	}
}

func TestLoadSkipsHeadersAndNotes(t *testing.T) {
	content := "WEBVTT - with metadata\n\nNOTE internal comment\nspanning lines\n\ncue-1\n00:00:01.000 --> 00:00:02.000\nhello\n"
	path := filepath.Join(t.TempDir(), "meta.vtt")
	os.WriteFile(path, []byte(content), 0644)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(got) != 1 || got[0].Text != "hello" {
		t.Errorf("got %+v, want single hello cue", got)
	}
}

func TestSaveBilingualVTT(t *testing.T) {
	res, err := model.NewTranslationResult(
		sampleSegments(),
		[]model.Segment{
			{Text: "Hello everyone.", Start: 0.5, End: 2.25},
			{Text: "How are you?", Start: 2.5, End: 4.0},
		},
		"fr", "en",
	)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "bilingual.vtt")
	if err := SaveBilingualVTT(path, res); err != nil {
		t.Fatalf("SaveBilingualVTT() error: %v", err)
	}

	data, _ := os.ReadFile(path)
	content := string(data)
	if !strings.Contains(content, "Hello everyone.\n<i>Bonjour tout le monde.</i>") {
		t.Errorf("translation not stacked over original, got:\n%s", content)
	}
	if !strings.Contains(content, "00:00:00.500 --> 00:00:02.250") {
		t.Errorf("cue timing missing")
	}
}

func TestParseFormat(t *testing.T) {
	if _, err := ParseFormat("ass"); err == nil {
		t.Error("ParseFormat(ass) should fail")
	}
	if f, err := ParseFormat("SRT"); err != nil || f != FormatSRT {
		t.Errorf("ParseFormat(SRT) = %v, %v", f, err)
	}
}
