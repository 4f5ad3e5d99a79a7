package llm

import (
	"strings"
)

// parseNumberedResponse extracts one result per input line from a numbered
// model response. Numbering prefixes of the forms "N. ", "N) " and "N: "
// are stripped; unnumbered lines are kept verbatim. The boolean reports
// whether the response carried exactly the expected number of lines before
// any truncation or padding.
func parseNumberedResponse(response string, expected int) ([]string, bool) {
	var parsed []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parsed = append(parsed, stripNumberPrefix(line))
	}

	exact := len(parsed) == expected
	if len(parsed) > expected {
		parsed = parsed[:expected]
	}
	for len(parsed) < expected {
		parsed = append(parsed, "")
	}
	return parsed, exact
}

// stripNumberPrefix removes a leading "12. ", "12) " or "12: " marker. The
// separator must be followed by a space, so lines like "12:30 sharp" or
// "1.Hello" stay intact, as do bare numbers with no separator at all.
func stripNumberPrefix(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return line
	}
	switch line[i] {
	case '.', ')', ':':
	default:
		return line
	}
	rest := line[i+1:]
	if rest != "" && rest[0] != ' ' {
		return line
	}
	return strings.TrimLeft(rest, " ")
}
