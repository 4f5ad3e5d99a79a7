// Package server hosts a local web player for a processed run: the video,
// its subtitle tracks as toggleable captions, and a JSON inventory of all
// runs in the workspace.
package server

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"subflow/internal/logger"
	"subflow/internal/workspace"
)

type Server struct {
	app     *fiber.App
	logger  logger.Logger
	baseDir string
	runDir  string
}

// New creates the server for one run directory. baseDir is the workspace
// root used for the run listing.
func New(log logger.Logger, baseDir, runDir string) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{app: app, logger: log, baseDir: baseDir, runDir: runDir}
	app.Get("/", s.handleIndex)
	app.Get("/api/runs", s.handleRuns)
	app.Static("/files", runDir)
	return s
}

// Listen blocks serving on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info(context.Background(), "Serving %s on http://%s", s.runDir, addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleRuns(c *fiber.Ctx) error {
	runs, err := workspace.ListRuns(s.baseDir)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"runs": runs})
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	video, ok := workspace.FindVideo(s.runDir)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "no video in workspace")
	}

	title := filepath.Base(filepath.Dir(s.runDir))
	page := renderPlayer(title, filepath.Base(video), videoMIME(video), discoverTracks(s.runDir))
	c.Type("html", "utf-8")
	return c.SendString(page)
}

// track is one subtitle file offered to the web player.
type track struct {
	File  string
	Label string
	Lang  string
}

// discoverTracks inventories subtitle files, bilingual first so it becomes
// the default track.
func discoverTracks(dir string) []track {
	var tracks []track
	add := func(pattern, labelFormat string) {
		matches, _ := filepath.Glob(filepath.Join(dir, pattern))
		sort.Strings(matches)
		for _, m := range matches {
			name := filepath.Base(m)
			parts := strings.Split(strings.TrimSuffix(name, ".vtt"), ".")
			if len(parts) < 2 {
				continue
			}
			lang := parts[1]
			tracks = append(tracks, track{
				File:  name,
				Label: fmt.Sprintf(labelFormat, lang),
				Lang:  lang,
			})
		}
	}
	add("bilingual.*.vtt", "Bilingual (%s)")
	add("transcription.*.vtt", "Original (%s)")
	add("translation.*.vtt", "Translation (%s)")
	return tracks
}

var mimeByExt = map[string]string{
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".ts":   "video/mp2t",
	".flv":  "video/x-flv",
}

func videoMIME(path string) string {
	if mime, ok := mimeByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return mime
	}
	return "video/mp4"
}

func renderPlayer(title, videoFile, videoMime string, tracks []track) string {
	var trackTags strings.Builder
	for i, t := range tracks {
		def := ""
		if i == 0 {
			def = " default"
		}
		fmt.Fprintf(&trackTags,
			`    <track kind="subtitles" src="/files/%s" srclang="%s" label="%s"%s>`+"\n",
			html.EscapeString(t.File), html.EscapeString(t.Lang), html.EscapeString(t.Label), def,
		)
	}

	page := strings.NewReplacer(
		"{{title}}", html.EscapeString(title),
		"{{video}}", html.EscapeString(videoFile),
		"{{mime}}", videoMime,
		"{{tracks}}", trackTags.String(),
	).Replace(playerHTML)
	return page
}

// Ensure the run directory still exists before binding; a deleted
// workspace gives a confusing fiber static error otherwise.
func (s *Server) Check() error {
	if _, err := os.Stat(s.runDir); err != nil {
		return fmt.Errorf("workspace: %w", err)
	}
	return nil
}
