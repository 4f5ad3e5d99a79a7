package server

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subflow/internal/logger"
	"subflow/internal/workspace"
)

func setupRun(t *testing.T) (base, run string) {
	t.Helper()
	base = t.TempDir()
	run = filepath.Join(base, "my-video", "20240101_120000")
	if err := os.MkdirAll(run, 0755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(run, "video.mp4"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(run, "transcription.fr.vtt"), []byte("WEBVTT\n"), 0644)
	os.WriteFile(filepath.Join(run, "bilingual.fr-en.vtt"), []byte("WEBVTT\n"), 0644)
	workspace.SaveMetadata(run, workspace.Metadata{Title: "My Video", Language: "fr"})
	return base, run
}

func TestIndexServesPlayer(t *testing.T) {
	base, run := setupRun(t)
	s := New(logger.NewNop(), base, run)

	resp, err := s.app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, "/files/video.mp4") {
		t.Errorf("video source missing:\n%s", page)
	}
	// Bilingual track listed first and marked default.
	biIdx := strings.Index(page, "bilingual.fr-en.vtt")
	trIdx := strings.Index(page, "transcription.fr.vtt")
	if biIdx < 0 || trIdx < 0 || biIdx > trIdx {
		t.Errorf("track ordering wrong (bilingual at %d, transcription at %d)", biIdx, trIdx)
	}
	if !strings.Contains(page, `label="Bilingual (fr-en)" default`) {
		t.Errorf("bilingual track not default:\n%s", page)
	}
}

func TestIndexWithoutVideo(t *testing.T) {
	base := t.TempDir()
	s := New(logger.NewNop(), base, base)

	resp, err := s.app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRunsListing(t *testing.T) {
	base, run := setupRun(t)
	s := New(logger.NewNop(), base, run)

	resp, err := s.app.Test(httptest.NewRequest("GET", "/api/runs", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"slug":"my-video"`) {
		t.Errorf("runs listing = %s", body)
	}
}

func TestStaticFiles(t *testing.T) {
	base, run := setupRun(t)
	s := New(logger.NewNop(), base, run)

	resp, err := s.app.Test(httptest.NewRequest("GET", "/files/transcription.fr.vtt", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "WEBVTT") {
		t.Errorf("body = %q", body)
	}
}

func TestDiscoverTracks(t *testing.T) {
	_, run := setupRun(t)
	tracks := discoverTracks(run)
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	if tracks[0].Lang != "fr-en" || tracks[1].Lang != "fr" {
		t.Errorf("tracks = %+v", tracks)
	}
}
