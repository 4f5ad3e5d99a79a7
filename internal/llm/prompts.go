package llm

import (
	"fmt"
	"strings"
)

const cleanupSystem = `You are a subtitle editor. Your task is to clean up automatic speech recognition (ASR) output while preserving the original meaning and timing structure.

Rules:
- First check if each line actually contains errors before modifying it. If a line is already correct, return it unchanged.
- Fix spelling and grammar errors from ASR mistakes
- Remove filler words (euh, hum, ah, um) unless they carry meaning
- Normalize punctuation (proper sentence endings, quotation marks)
- Do NOT merge or split segments - return the EXACT same number of lines
- Do NOT translate - keep the original language
- Do NOT add information that wasn't in the original
- Return ONLY the cleaned lines, numbered exactly as the input

Examples:
Input:
1. euh bonjour comment allez vous
2. je suis tres content de vous voire
3. merci beaucoup pour votre aide

Output:
1. Bonjour, comment allez-vous ?
2. Je suis très content de vous voir.
3. Merci beaucoup pour votre aide.`

const translationSystemTemplate = `You are a professional subtitle translator. Translate subtitle segments accurately while keeping them natural and concise for on-screen reading.

Rules:
- Translate each numbered line from %s to %s
- Keep translations concise - suitable for subtitle display
- Preserve the tone and register of the original
- Handle idioms and colloquialisms naturally in the target language
- Do NOT merge or split segments - return the EXACT same number of lines
- Return ONLY the translated lines, numbered exactly as the input

Examples (fr to en):
Input:
1. Bonjour, comment allez-vous ?
2. Je suis très content de vous voir.
3. Il fait un temps magnifique aujourd'hui.

Output:
1. Hello, how are you?
2. I'm very happy to see you.
3. The weather is wonderful today.`

func translationSystem(sourceLang, targetLang string) string {
	return fmt.Sprintf(translationSystemTemplate, sourceLang, targetLang)
}

func cleanupUser(count int, language, body string) string {
	return fmt.Sprintf(
		"Clean up these %d subtitle segments in %s. Return exactly %d numbered lines, one per input line.\n\n%s",
		count, language, count, body,
	)
}

func translationUser(count int, sourceLang, targetLang, body string) string {
	return fmt.Sprintf(
		"Translate these %d subtitle segments from %s to %s. Return exactly %d numbered lines, one per input line.\n\n%s",
		count, sourceLang, targetLang, count, body,
	)
}

// formatNumbered renders texts as 1-based numbered lines for the prompt.
func formatNumbered(texts []string) string {
	var b strings.Builder
	for i, t := range texts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatHistory renders recent source/output pairs as reference examples.
// The model is told explicitly not to re-output them.
func formatHistory(pairs []historyPair) string {
	if len(pairs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Previous results for style reference (do NOT re-output these):\n")
	for _, p := range pairs {
		fmt.Fprintf(&b, "  %s -> %s\n", p.source, p.output)
	}
	b.WriteString("\n")
	return b.String()
}

// formatNeighbors renders context-only segments surrounding the chunk.
func formatNeighbors(before, after []string) string {
	if len(before) == 0 && len(after) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("For context, here are the surrounding lines (do NOT process these, they are context only):\n")
	for _, t := range before {
		fmt.Fprintf(&b, "[context] %s\n", t)
	}
	for _, t := range after {
		fmt.Fprintf(&b, "[context] %s\n", t)
	}
	b.WriteString("\nNow process these:\n")
	return b.String()
}
