// Package pipeline runs the full processing chain for one input: resolve,
// extract audio, transcribe, regroup, repair, clean up, translate, save,
// play. Every stage is resumable: output files that already exist in the
// run's workspace are reused instead of recomputed.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"subflow/internal/boundary"
	"subflow/internal/config"
	"subflow/internal/downloader"
	"subflow/internal/llm"
	"subflow/internal/logger"
	"subflow/internal/media"
	"subflow/internal/model"
	"subflow/internal/player"
	"subflow/internal/regroup"
	"subflow/internal/subtitles"
	"subflow/internal/transcriber"
	"subflow/internal/workspace"
	"subflow/pkg/executor"
)

// Options select what one run does.
type Options struct {
	Input     string
	Translate string // target language code, empty to skip
	Cleanup   bool
	Play      bool
	Start     string // clip start, ffmpeg syntax
	Duration  string // clip duration, ffmpeg syntax
	OnEvent   EventFunc
}

type Pipeline struct {
	cfg        *config.Config
	logger     logger.Logger
	exec       executor.Executor
	downloader *downloader.Downloader
	extractor  *media.Extractor
	repairer   *boundary.Repairer
	player     *player.Player
}

func New(cfg *config.Config, log logger.Logger) *Pipeline {
	exec := executor.New()
	return &Pipeline{
		cfg:        cfg,
		logger:     log,
		exec:       exec,
		downloader: downloader.New(exec, log, cfg.Download.Format),
		extractor:  media.NewExtractor(exec, log),
		repairer:   boundary.New(boundary.NewCache(boundary.LexiconLoader)),
		player:     player.New(exec, log, cfg.Player),
	}
}

// Run processes one input and returns its workspace directory.
func (p *Pipeline) Run(ctx context.Context, opts Options) (string, error) {
	emit := func(stage string, progress float64, message string, data map[string]any) {
		if opts.OnEvent != nil {
			opts.OnEvent(Event{Stage: stage, Progress: progress, Message: message, Data: data})
		}
	}
	language := p.cfg.Whisper.Language

	// Resolve input.
	emit(StageDownload, 0, fmt.Sprintf("Resolving input: %s", opts.Input), nil)
	downloadDir := filepath.Join(p.cfg.Paths.Workspace, "downloads")
	source, err := p.downloader.Resolve(ctx, opts.Input, downloadDir)
	if err != nil {
		return "", err
	}
	emit(StageDownload, 1, "Input resolved", nil)

	// Workspace.
	title := source.Title
	if title == "" {
		base := filepath.Base(source.VideoPath)
		title = base[:len(base)-len(filepath.Ext(base))]
	}
	dir, err := workspace.Create(p.cfg.Paths.Workspace, title)
	if err != nil {
		return "", err
	}
	paths := workspace.PathsFor(dir, language, opts.Translate, filepath.Ext(source.VideoPath))
	p.logger.Info(ctx, "Workspace: %s", dir)

	if _, err := os.Lstat(paths.Video); err != nil {
		if err := media.LinkOrCopy(source.VideoPath, paths.Video); err != nil {
			return "", fmt.Errorf("link video: %w", err)
		}
	}

	// Audio.
	emit(StageAudio, 0, "Extracting audio...", nil)
	if _, err := os.Stat(paths.Audio); err != nil {
		extractOpts := media.ExtractOptions{Start: opts.Start, Duration: opts.Duration}
		cache, err := media.OpenCache(p.cfg.Paths.Workspace)
		if err != nil {
			p.logger.Warn(ctx, "Media cache unavailable: %v", err)
			cache = nil
		} else {
			defer cache.Close()
		}
		hit, err := media.ExtractAudioCached(ctx, p.extractor, cache, source.VideoPath, paths.Audio, extractOpts)
		if err != nil {
			return "", err
		}
		if hit {
			p.logger.Info(ctx, "Audio found in cache")
		}
	}
	emit(StageAudio, 1, "Audio ready", nil)

	// Transcription.
	emit(StageTranscribe, 0, "Transcribing...", nil)
	var segments []model.Segment
	if _, err := os.Stat(paths.TranscriptionVTT); err != nil {
		segments, err = p.transcribe(ctx, opts, paths, language, emit)
		if err != nil {
			return "", err
		}
	} else {
		p.logger.Info(ctx, "Transcription found, skipping")
		if opts.Translate != "" {
			segments, err = subtitles.Load(paths.TranscriptionVTT)
			if err != nil {
				return "", err
			}
			// Loaded subtitles carry no word data, so repair runs in
			// text mode.
			segments = p.repairer.RepairText(segments, language)
		}
	}
	emit(StageTranscribe, 1, "Transcription complete", nil)

	// Translation.
	if opts.Translate != "" {
		if _, err := os.Stat(paths.TranslationVTT); err != nil {
			if _, err := p.translate(ctx, segments, language, opts.Translate, paths, emit); err != nil {
				return "", err
			}
		} else {
			p.logger.Info(ctx, "Translation found, skipping")
		}
	}

	// Metadata.
	emit(StageSave, 0, "Saving metadata...", nil)
	meta := workspace.Metadata{
		SourceURL:      source.SourceURL,
		Title:          title,
		Language:       language,
		TargetLanguage: opts.Translate,
		Cleanup:        opts.Cleanup,
		WhisperBackend: p.cfg.Whisper.Backend,
		WhisperModel:   p.whisperModelName(),
		LLMModel:       p.cfg.LLM.Model,
		Start:          opts.Start,
		Duration:       opts.Duration,
		SourceDuration: source.Duration,
	}
	if err := workspace.SaveMetadata(dir, meta); err != nil {
		return "", err
	}

	// Playback.
	if opts.Play {
		if p.player.Available(ctx) {
			if err := p.player.Play(ctx, paths.Video, paths.TranscriptionVTT, existingOrEmpty(paths.BilingualVTT)); err != nil {
				p.logger.Warn(ctx, "Playback failed: %v", err)
			}
		} else {
			p.logger.Warn(ctx, "Player %s not found, skipping playback", p.cfg.Player.BinaryPath)
		}
	}

	emit(StageSave, 1, "Done", map[string]any{"workspace": dir})
	return dir, nil
}

// transcribe produces the transcription subtitle files and returns the
// segments. A words.json left by an interrupted run short-circuits the
// model call.
func (p *Pipeline) transcribe(ctx context.Context, opts Options, paths workspace.Paths, language string, emit func(string, float64, string, map[string]any)) ([]model.Segment, error) {
	words, err := p.loadWords(paths.WordsJSON)
	if err != nil {
		p.logger.Info(ctx, "No cached word timestamps (%v), running transcription", err)
		t, err := transcriber.New(p.exec, p.logger, p.cfg.Whisper)
		if err != nil {
			return nil, err
		}
		words, err = t.Transcribe(ctx, paths.Audio, language)
		if err != nil {
			return nil, err
		}
		if err := p.saveWords(paths.WordsJSON, words); err != nil {
			p.logger.Warn(ctx, "Could not save word timestamps: %v", err)
		}
	} else {
		p.logger.Info(ctx, "Word timestamps found, resuming")
	}

	segments := regroup.Words(words, regroup.Options{
		MaxChars:    p.cfg.Subtitles.MaxChars,
		MaxDuration: p.cfg.Subtitles.MaxDuration,
	})
	segments = p.repairer.Repair(segments, language)

	if opts.Cleanup && p.cfg.LLM.CleanupEnabled {
		emit(StageTranscribe, 0.5, "Cleaning up transcription...", nil)
		gen, err := llm.NewGenerator(p.cfg.LLM, p.logger)
		if err != nil {
			return nil, err
		}
		engine := llm.NewCleanupEngine(gen, p.logger, p.cfg.LLM.CleanupChunkSize)
		segments = engine.Cleanup(ctx, segments, language, func(frac float64) {
			emit(StageTranscribe, 0.5+frac*0.5, fmt.Sprintf("Cleaning (%.0f%%)...", frac*100), nil)
		})
	}

	if err := subtitles.Save(paths.TranscriptionVTT, subtitles.FormatVTT, segments); err != nil {
		return nil, err
	}
	if err := subtitles.Save(paths.TranscriptionTXT, subtitles.FormatTXT, segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// translate writes the translation, its plain-text export and the
// bilingual track.
func (p *Pipeline) translate(ctx context.Context, segments []model.Segment, sourceLang, targetLang string, paths workspace.Paths, emit func(string, float64, string, map[string]any)) (*model.TranslationResult, error) {
	emit(StageTranslate, 0, fmt.Sprintf("Translating to %s...", targetLang), nil)
	gen, err := llm.NewGenerator(p.cfg.LLM, p.logger)
	if err != nil {
		return nil, err
	}
	engine := llm.NewTranslationEngine(gen, p.logger, p.cfg.LLM.TranslationChunkSize)
	result, err := engine.Translate(ctx, segments, sourceLang, targetLang, func(frac float64) {
		emit(StageTranslate, frac, fmt.Sprintf("Translating (%.0f%%)...", frac*100), nil)
	})
	if err != nil {
		return nil, err
	}

	if err := subtitles.Save(paths.TranslationVTT, subtitles.FormatVTT, result.Translated); err != nil {
		return nil, err
	}
	if err := subtitles.Save(paths.TranslationTXT, subtitles.FormatTXT, result.Translated); err != nil {
		return nil, err
	}
	if err := subtitles.SaveBilingualVTT(paths.BilingualVTT, result); err != nil {
		return nil, err
	}
	emit(StageTranslate, 1, "Translation complete", nil)
	return result, nil
}

func (p *Pipeline) loadWords(path string) ([]model.Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var words []model.Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty word cache")
	}
	return words, nil
}

func (p *Pipeline) saveWords(path string, words []model.Word) error {
	data, err := json.Marshal(words)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (p *Pipeline) whisperModelName() string {
	if p.cfg.Whisper.Backend == "api" {
		return p.cfg.Whisper.APIModel
	}
	return filepath.Base(p.cfg.Whisper.ModelPath)
}

func existingOrEmpty(path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
