package subtitles

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"subflow/internal/model"
)

var (
	timingLine = regexp.MustCompile(`^([\d:.,]+)\s+-->\s+([\d:.,]+)`)
	voiceTag   = regexp.MustCompile(`^<v\s+([^>]+)>`)
)

// Load reads a subtitle file, picking the parser by extension. TXT files
// yield one zero-timed segment per non-blank line; SRT and VTT share a
// cue parser.
func Load(path string) ([]model.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitles: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return parseTXT(string(data)), nil
	case ".srt", ".vtt":
		return parseCues(string(data))
	}
	return nil, fmt.Errorf("unsupported subtitle file %q", path)
}

func parseTXT(content string) []model.Segment {
	var segments []model.Segment
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			segments = append(segments, model.Segment{Text: line})
		}
	}
	return segments
}

// parseCues handles both SRT and WebVTT: any line containing "-->" starts a
// cue, everything before the next blank line is its text. Headers, cue
// indices and NOTE blocks all fall through without special casing.
func parseCues(content string) ([]model.Segment, error) {
	content = strings.TrimPrefix(content, "\uFEFF")
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var segments []model.Segment
	for i := 0; i < len(lines); i++ {
		m := timingLine.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			continue
		}
		start, err := parseTimestamp(m[1])
		if err != nil {
			return nil, err
		}
		end, err := parseTimestamp(m[2])
		if err != nil {
			return nil, err
		}

		var textLines []string
		for i++; i < len(lines); i++ {
			line := strings.TrimSpace(lines[i])
			if line == "" {
				break
			}
			textLines = append(textLines, line)
		}

		text := strings.Join(textLines, "\n")
		seg := model.Segment{Start: start, End: end}
		if m := voiceTag.FindStringSubmatch(text); m != nil {
			seg.Speaker = strings.TrimSpace(m[1])
			text = strings.TrimSpace(text[len(m[0]):])
		}
		seg.Text = text
		if seg.Text == "" {
			continue
		}
		segments = append(segments, seg)
	}
	return segments, nil
}
