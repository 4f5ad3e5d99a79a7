package boundary

// POS is the coarse part-of-speech class a tagger assigns to a token.
// Only determiners and adpositions matter for boundary repair.
type POS int

const (
	POSOther POS = iota
	POSDeterminer
	POSAdposition
)

// Token is a tagged surface token.
type Token struct {
	Text string
	POS  POS
}

// Tagger tags a text string into an ordered token sequence.
type Tagger interface {
	Tag(text string) []Token
}

// LoaderFunc loads a tagger for a language code, returning nil when no
// tagger is available for that language. Absence is a valid answer, not
// an error.
type LoaderFunc func(language string) Tagger
