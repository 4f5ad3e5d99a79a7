// Package subtitles reads and writes subtitle files. SRT, WebVTT and plain
// text are supported, plus a bilingual WebVTT variant that stacks the
// translation over the original line in every cue.
package subtitles

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format identifies a subtitle output format.
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatTXT Format = "txt"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatSRT:
		return FormatSRT, nil
	case FormatVTT:
		return FormatVTT, nil
	case FormatTXT:
		return FormatTXT, nil
	}
	return "", fmt.Errorf("unknown subtitle format %q (want srt, vtt or txt)", s)
}

// formatTimestamp renders seconds as HH:MM:SS<sep>mmm. SRT separates
// milliseconds with a comma, WebVTT with a dot.
func formatTimestamp(seconds float64, sep byte) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int(math.Round(seconds * 1000))
	h := ms / 3600000
	m := ms / 60000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", h, m, s, sep, ms%1000)
}

// parseTimestamp accepts HH:MM:SS.mmm and MM:SS.mmm with either millisecond
// separator.
func parseTimestamp(ts string) (float64, error) {
	ts = strings.TrimSpace(ts)
	parts := strings.Split(ts, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("bad timestamp %q", ts)
	}

	last := strings.Replace(parts[len(parts)-1], ",", ".", 1)
	sec, err := strconv.ParseFloat(last, 64)
	if err != nil {
		return 0, fmt.Errorf("bad timestamp %q: %w", ts, err)
	}

	total := sec
	mult := 60.0
	for i := len(parts) - 2; i >= 0; i-- {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return 0, fmt.Errorf("bad timestamp %q: %w", ts, err)
		}
		total += float64(n) * mult
		mult *= 60
	}
	return total, nil
}
