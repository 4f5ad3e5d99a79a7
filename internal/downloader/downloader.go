// Package downloader resolves pipeline input: local files pass through,
// http(s) URLs are fetched with yt-dlp.
package downloader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"subflow/internal/logger"
	"subflow/internal/model"
	"subflow/pkg/executor"
)

type Downloader struct {
	exec   executor.Executor
	logger logger.Logger
	format string
}

func New(exec executor.Executor, log logger.Logger, format string) *Downloader {
	return &Downloader{exec: exec, logger: log, format: format}
}

// IsURL reports whether input looks like a downloadable URL.
func IsURL(input string) bool {
	parsed, err := url.Parse(input)
	if err != nil {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

// Resolve turns a URL or local path into a VideoSource.
func (d *Downloader) Resolve(ctx context.Context, input, outputDir string) (*model.VideoSource, error) {
	if IsURL(input) {
		return d.Download(ctx, input, outputDir)
	}

	if _, err := os.Stat(input); err != nil {
		return nil, fmt.Errorf("input file: %w", err)
	}
	base := filepath.Base(input)
	return &model.VideoSource{
		VideoPath: input,
		Title:     strings.TrimSuffix(base, filepath.Ext(base)),
	}, nil
}

// ytdlpInfo is the subset of the yt-dlp info JSON we consume.
type ytdlpInfo struct {
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	Filename string  `json:"_filename"`
}

// Download fetches a video with yt-dlp into outputDir.
func (d *Downloader) Download(ctx context.Context, videoURL, outputDir string) (*model.VideoSource, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}

	d.logger.Info(ctx, "Downloading %s", videoURL)
	args := []string{
		"-f", d.format,
		"-o", "%(title)s.%(ext)s",
		"--no-warnings",
		"--no-progress",
		"--print-json",
		videoURL,
	}
	stdout, err := d.exec.ExecuteInDir(ctx, outputDir, "yt-dlp", args...)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp download: %w", err)
	}

	var info ytdlpInfo
	if err := json.Unmarshal([]byte(firstLine(stdout)), &info); err != nil {
		return nil, fmt.Errorf("parse yt-dlp output: %w", err)
	}

	videoPath := d.locateDownload(outputDir, info.Filename)
	if videoPath == "" {
		return nil, fmt.Errorf("download finished but no file found in %s", outputDir)
	}

	d.logger.Info(ctx, "Downloaded %s", videoPath)
	return &model.VideoSource{
		VideoPath: videoPath,
		SourceURL: videoURL,
		Title:     info.Title,
		Duration:  info.Duration,
	}, nil
}

// locateDownload prefers the filename yt-dlp reported; when format merging
// renamed the file, fall back to the newest entry in the directory.
func (d *Downloader) locateDownload(outputDir, reported string) string {
	if reported != "" {
		candidate := reported
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(outputDir, candidate)
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return ""
	}
	var files []os.FileInfo
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if info, err := e.Info(); err == nil {
			files = append(files, info)
		}
	}
	if len(files) == 0 {
		return ""
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime().After(files[j].ModTime())
	})
	return filepath.Join(outputDir, files[0].Name())
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
