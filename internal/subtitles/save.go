package subtitles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"subflow/internal/model"
)

// Save writes segments to path in the given format, creating parent
// directories as needed.
func Save(path string, format Format, segments []model.Segment) error {
	var content string
	switch format {
	case FormatSRT:
		content = renderSRT(segments)
	case FormatVTT:
		content = renderVTT(segments)
	case FormatTXT:
		content = renderTXT(segments)
	default:
		return fmt.Errorf("unknown subtitle format %q", format)
	}
	return writeFile(path, content)
}

// SaveBilingualVTT writes one WebVTT file whose cues show the translation
// with the original underneath in italics. Cue timing comes from the
// original segments.
func SaveBilingualVTT(path string, result *model.TranslationResult) error {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for i := range result.Original {
		orig := strings.TrimSpace(result.Original[i].Text)
		trans := strings.TrimSpace(result.Translated[i].Text)
		if orig == "" && trans == "" {
			continue
		}

		writeCueTiming(&b, result.Original[i])
		if trans != "" {
			b.WriteString(trans)
			b.WriteByte('\n')
		}
		if orig != "" {
			b.WriteString("<i>" + orig + "</i>\n")
		}
		b.WriteByte('\n')
	}
	return writeFile(path, b.String())
}

func renderSRT(segments []model.Segment) string {
	var b strings.Builder
	index := 1
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			index,
			formatTimestamp(seg.Start, ','),
			formatTimestamp(seg.End, ','),
			text,
		)
		index++
	}
	return b.String()
}

func renderVTT(segments []model.Segment) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		writeCueTiming(&b, seg)
		if seg.Speaker != "" {
			fmt.Fprintf(&b, "<v %s>", seg.Speaker)
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return b.String()
}

func renderTXT(segments []model.Segment) string {
	var lines []string
	for _, seg := range segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func writeCueTiming(b *strings.Builder, seg model.Segment) {
	fmt.Fprintf(b, "%s --> %s\n",
		formatTimestamp(seg.Start, '.'),
		formatTimestamp(seg.End, '.'),
	)
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create subtitle dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write subtitles: %w", err)
	}
	return nil
}
