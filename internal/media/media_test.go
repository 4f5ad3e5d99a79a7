package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subflow/internal/logger"
)

// fakeFfmpeg records invocations and writes a marker file at the output
// path, which is always the final argument.
type fakeFfmpeg struct {
	calls [][]string
}

func (f *fakeFfmpeg) Execute(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	out := args[len(args)-1]
	return "", os.WriteFile(out, []byte("RIFF"), 0644)
}

func (f *fakeFfmpeg) ExecuteInDir(ctx context.Context, _ string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func writeVideo(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "video.mp4")
	if err := os.WriteFile(path, []byte("fake video"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractAudioArgs(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir)
	exec := &fakeFfmpeg{}
	ex := NewExtractor(exec, logger.NewNop())

	out := filepath.Join(dir, "audio.wav")
	err := ex.ExtractAudio(context.Background(), video, out, ExtractOptions{Start: "1:30", Duration: "60"})
	if err != nil {
		t.Fatalf("ExtractAudio() error: %v", err)
	}

	joined := strings.Join(exec.calls[0], " ")
	for _, want := range []string{"ffmpeg", "-ss 1:30", "-t 60", "-ar 16000", "-ac 1", "-acodec pcm_s16le", "-vn"} {
		if !strings.Contains(joined, want) {
			t.Errorf("invocation missing %q: %s", want, joined)
		}
	}
	// -ss must precede -i for fast seeking.
	if strings.Index(joined, "-ss") > strings.Index(joined, "-i") {
		t.Errorf("-ss placed after -i: %s", joined)
	}
}

func TestExtractAudioMissingVideo(t *testing.T) {
	ex := NewExtractor(&fakeFfmpeg{}, logger.NewNop())
	err := ex.ExtractAudio(context.Background(), "/nonexistent.mp4", "out.wav", ExtractOptions{})
	if err == nil {
		t.Error("expected error for missing video")
	}
}

func TestCacheKeyChangesWithOptions(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir)
	cache, err := OpenCache(dir)
	if err != nil {
		t.Fatalf("OpenCache() error: %v", err)
	}
	defer cache.Close()

	k1, err := cache.Key(video, ExtractOptions{})
	if err != nil {
		t.Fatal(err)
	}
	k2, err := cache.Key(video, ExtractOptions{Start: "10"})
	if err != nil {
		t.Fatal(err)
	}
	if k1 == k2 {
		t.Error("clipping options not part of the cache key")
	}
	if len(k1) != 16 {
		t.Errorf("key length = %d, want 16", len(k1))
	}

	k3, err := cache.Key(video, ExtractOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if k1 != k3 {
		t.Error("key not stable for unchanged input")
	}
}

func TestExtractAudioCached(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir)
	exec := &fakeFfmpeg{}
	ex := NewExtractor(exec, logger.NewNop())

	cache, err := OpenCache(filepath.Join(dir, "ws"))
	if err != nil {
		t.Fatalf("OpenCache() error: %v", err)
	}
	defer cache.Close()

	out1 := filepath.Join(dir, "run1", "audio.wav")
	hit, err := ExtractAudioCached(context.Background(), ex, cache, video, out1, ExtractOptions{})
	if err != nil {
		t.Fatalf("first extraction: %v", err)
	}
	if hit {
		t.Error("first extraction reported a cache hit")
	}
	if len(exec.calls) != 1 {
		t.Fatalf("ffmpeg ran %d times, want 1", len(exec.calls))
	}

	out2 := filepath.Join(dir, "run2", "audio.wav")
	hit, err = ExtractAudioCached(context.Background(), ex, cache, video, out2, ExtractOptions{})
	if err != nil {
		t.Fatalf("second extraction: %v", err)
	}
	if !hit {
		t.Error("second extraction missed the cache")
	}
	if len(exec.calls) != 1 {
		t.Errorf("ffmpeg ran %d times, want 1", len(exec.calls))
	}
	if _, err := os.Stat(out2); err != nil {
		t.Errorf("cached audio not linked into workspace: %v", err)
	}
}

func TestLookupDropsStaleEntry(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir)
	cache, err := OpenCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	src := filepath.Join(dir, "audio.wav")
	os.WriteFile(src, []byte("RIFF"), 0644)
	key, _ := cache.Key(video, ExtractOptions{})
	stored, err := cache.Store(key, src)
	if err != nil {
		t.Fatal(err)
	}

	os.Remove(stored)
	if _, ok, err := cache.Lookup(key); err != nil || ok {
		t.Errorf("Lookup() = %v, %v; want miss after file removal", ok, err)
	}
}
