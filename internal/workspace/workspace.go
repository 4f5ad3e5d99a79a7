// Package workspace manages the per-video output directories: one slug
// directory per source, one timestamped subdirectory per run, with a fixed
// file layout inside.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// Slugify converts a title to a filesystem-safe slug, capped at 80 runes.
func Slugify(text string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(strings.ToLower(text)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '_' || r == '-':
			b.WriteByte('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	if runes := []rune(slug); len(runes) > 80 {
		slug = string(runes[:80])
	}
	return strings.Trim(slug, "-")
}

// Create makes a fresh run directory <baseDir>/<slug>/<YYYYMMDD_HHMMSS>.
func Create(baseDir, title string) (string, error) {
	slug := Slugify(title)
	if slug == "" {
		slug = "untitled"
	}
	dir := filepath.Join(baseDir, slug, time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create workspace: %w", err)
	}
	return dir, nil
}

// Paths is the standard file layout of one run directory. Translation
// paths are empty when no target language is set.
type Paths struct {
	Video            string
	Audio            string
	WordsJSON        string
	TranscriptionVTT string
	TranscriptionTXT string
	TranslationVTT   string
	TranslationTXT   string
	BilingualVTT     string
	Metadata         string
}

// PathsFor computes the layout for a run directory.
func PathsFor(dir, language, targetLang, videoExt string) Paths {
	if videoExt == "" {
		videoExt = ".mp4"
	}
	p := Paths{
		Video:            filepath.Join(dir, "video"+videoExt),
		Audio:            filepath.Join(dir, "audio.wav"),
		WordsJSON:        filepath.Join(dir, "words.json"),
		TranscriptionVTT: filepath.Join(dir, fmt.Sprintf("transcription.%s.vtt", language)),
		TranscriptionTXT: filepath.Join(dir, fmt.Sprintf("transcription.%s.txt", language)),
		Metadata:         filepath.Join(dir, "metadata.json"),
	}
	if targetLang != "" {
		p.TranslationVTT = filepath.Join(dir, fmt.Sprintf("translation.%s.vtt", targetLang))
		p.TranslationTXT = filepath.Join(dir, fmt.Sprintf("translation.%s.txt", targetLang))
		p.BilingualVTT = filepath.Join(dir, fmt.Sprintf("bilingual.%s-%s.vtt", language, targetLang))
	}
	return p
}

var videoExtensions = []string{".mp4", ".mkv", ".webm", ".avi", ".mov", ".ts", ".flv"}

// FindVideo locates the video file of a run directory.
func FindVideo(dir string) (string, bool) {
	for _, ext := range videoExtensions {
		path := filepath.Join(dir, "video"+ext)
		if _, err := os.Lstat(path); err == nil {
			return path, true
		}
	}
	return "", false
}
