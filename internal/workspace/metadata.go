package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Metadata records what one run did and which files it produced.
type Metadata struct {
	RunID          string              `json:"run_id"`
	CreatedAt      time.Time           `json:"created_at"`
	SourceURL      string              `json:"source_url,omitempty"`
	Title          string              `json:"title"`
	Language       string              `json:"language"`
	TargetLanguage string              `json:"target_language,omitempty"`
	Cleanup        bool                `json:"cleanup"`
	WhisperBackend string              `json:"whisper_backend,omitempty"`
	WhisperModel   string              `json:"whisper_model,omitempty"`
	LLMModel       string              `json:"llm_model,omitempty"`
	Start          string              `json:"start,omitempty"`
	Duration       string              `json:"duration,omitempty"`
	SourceDuration float64             `json:"source_duration,omitempty"`
	Files          map[string]FileInfo `json:"files"`
}

type FileInfo struct {
	SizeBytes int64  `json:"size_bytes"`
	Type      string `json:"type"`
}

// SaveMetadata writes metadata.json into dir, assigning a run ID and
// inventorying the directory's files.
func SaveMetadata(dir string, meta Metadata) error {
	if meta.RunID == "" {
		meta.RunID = uuid.NewString()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}

	meta.Files = map[string]FileInfo{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("inventory workspace: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "metadata.json" || strings.HasPrefix(name, ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		meta.Files[name] = FileInfo{SizeBytes: info.Size(), Type: classifyFile(name)}
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "metadata.json"), data, 0644)
}

// LoadMetadata reads a run's metadata.json.
func LoadMetadata(dir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &meta, nil
}

func classifyFile(name string) string {
	switch {
	case strings.HasPrefix(name, "video"):
		return "source_video"
	case strings.HasPrefix(name, "audio"):
		return "extracted_audio"
	case strings.HasPrefix(name, "words"):
		return "word_timestamps"
	case strings.HasPrefix(name, "bilingual") && strings.HasSuffix(name, ".vtt"):
		return "bilingual_subtitle"
	case strings.HasPrefix(name, "transcription") && (strings.HasSuffix(name, ".srt") || strings.HasSuffix(name, ".vtt")):
		return "transcription_subtitle"
	case strings.HasPrefix(name, "transcription") && strings.HasSuffix(name, ".txt"):
		return "transcription_text"
	case strings.HasPrefix(name, "translation") && (strings.HasSuffix(name, ".srt") || strings.HasSuffix(name, ".vtt")):
		return "translation_subtitle"
	case strings.HasPrefix(name, "translation") && strings.HasSuffix(name, ".txt"):
		return "translation_text"
	}
	return "other"
}

// Run is one processed video found under the workspace base directory.
type Run struct {
	Slug string    `json:"slug"`
	Dir  string    `json:"dir"`
	Meta *Metadata `json:"metadata,omitempty"`
}

// ListRuns enumerates run directories, newest first per slug.
func ListRuns(baseDir string) ([]Run, error) {
	slugs, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []Run
	for _, slugEntry := range slugs {
		if !slugEntry.IsDir() || strings.HasPrefix(slugEntry.Name(), ".") {
			continue
		}
		slugDir := filepath.Join(baseDir, slugEntry.Name())
		stamps, err := os.ReadDir(slugDir)
		if err != nil {
			continue
		}
		sort.Slice(stamps, func(i, j int) bool { return stamps[i].Name() > stamps[j].Name() })
		for _, stamp := range stamps {
			if !stamp.IsDir() {
				continue
			}
			run := Run{Slug: slugEntry.Name(), Dir: filepath.Join(slugDir, stamp.Name())}
			if meta, err := LoadMetadata(run.Dir); err == nil {
				run.Meta = meta
			}
			runs = append(runs, run)
		}
	}
	return runs, nil
}
