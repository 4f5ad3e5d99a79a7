package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"subflow/internal/logger"
)

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/drop/video.mp4", true},
		{"/drop/video.MKV", true},
		{"/drop/video.webm", true},
		{"/drop/notes.txt", false},
		{"/drop/.video.mp4.part", false},
	}
	for _, tt := range tests {
		if got := isVideoFile(tt.path); got != tt.want {
			t.Errorf("isVideoFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherDispatchesNewVideo(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	handler := func(_ context.Context, path string) error {
		mu.Lock()
		handled = append(handled, path)
		mu.Unlock()
		return nil
	}

	w, err := New(dir, handler, logger.NewNop(), 2)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	time.Sleep(100 * time.Millisecond)
	video := filepath.Join(dir, "lecture.mp4")
	if err := os.WriteFile(video, []byte("fake video bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644)

	deadline := time.After(5 * time.Second)
	for {
		mu.Lock()
		n := len(handled)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("handler never invoked")
		case <-time.After(50 * time.Millisecond):
		}
	}

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0] != video {
		t.Errorf("handled = %v, want [%s]", handled, video)
	}
}

func TestNewRejectsMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.NewNop(), 1)
	if err == nil {
		t.Error("New() should fail on a missing directory")
	}
}
