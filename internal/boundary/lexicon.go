package boundary

import "strings"

// lexiconTagger is a lookup-based tagger covering determiners and
// adpositions only. It stands in for a full POS model: boundary repair
// needs nothing beyond those two classes, and misclassifying an unknown
// word as POSOther just skips an optional fix.
type lexiconTagger struct {
	determiners map[string]struct{}
	adpositions map[string]struct{}
}

// LexiconLoader returns the built-in tagger for supported languages and
// nil for everything else.
func LexiconLoader(language string) Tagger {
	lex, ok := lexicons[language]
	if !ok {
		return nil
	}
	return lex
}

func (t *lexiconTagger) Tag(text string) []Token {
	fields := strings.Fields(text)
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		key := normalizeToken(f)
		pos := POSOther
		if _, ok := t.determiners[key]; ok {
			pos = POSDeterminer
		} else if _, ok := t.adpositions[key]; ok {
			pos = POSAdposition
		}
		tokens = append(tokens, Token{Text: f, POS: pos})
	}
	return tokens
}

// normalizeToken lowercases and strips surrounding punctuation, keeping
// apostrophes (they are part of clitic forms like l' and d').
func normalizeToken(tok string) string {
	return strings.ToLower(strings.Trim(tok, ".,;:!?\"()[]«»—…"))
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

var lexicons = map[string]*lexiconTagger{
	"fr": {
		determiners: wordSet(
			"le", "la", "les", "l'", "un", "une", "des", "du",
			"ce", "cet", "cette", "ces",
			"mon", "ma", "mes", "ton", "ta", "tes", "son", "sa", "ses",
			"notre", "nos", "votre", "vos", "leur", "leurs",
			"au", "aux", "quel", "quelle", "quels", "quelles",
		),
		adpositions: wordSet(
			"à", "de", "d'", "en", "dans", "sur", "sous", "avec", "sans",
			"pour", "par", "chez", "vers", "entre", "depuis", "pendant",
			"contre", "avant", "après", "derrière", "devant",
		),
	},
	"en": {
		determiners: wordSet(
			"the", "a", "an", "this", "that", "these", "those",
			"my", "your", "his", "her", "its", "our", "their",
			"some", "any", "each", "every", "no", "another",
		),
		adpositions: wordSet(
			"of", "in", "on", "at", "to", "for", "with", "from", "by",
			"about", "into", "onto", "over", "under", "between", "through",
			"during", "against", "without", "within", "toward", "towards",
		),
	},
	"es": {
		determiners: wordSet(
			"el", "la", "los", "las", "un", "una", "unos", "unas",
			"este", "esta", "estos", "estas", "ese", "esa", "esos", "esas",
			"mi", "mis", "tu", "tus", "su", "sus", "nuestro", "nuestra",
			"al", "del",
		),
		adpositions: wordSet(
			"a", "de", "en", "con", "sin", "por", "para", "sobre", "bajo",
			"entre", "desde", "hasta", "hacia", "contra", "durante", "según",
		),
	},
	"it": {
		determiners: wordSet(
			"il", "lo", "la", "i", "gli", "le", "un", "uno", "una",
			"l'", "un'", "dell'", "all'", "questo", "questa", "questi", "queste",
			"quel", "quello", "quella", "quei", "quelle",
			"del", "della", "dei", "delle", "al", "alla", "ai", "alle",
		),
		adpositions: wordSet(
			"a", "di", "da", "in", "con", "su", "per", "tra", "fra",
			"senza", "contro", "verso", "durante", "dopo", "prima",
		),
	},
	"pt": {
		determiners: wordSet(
			"o", "a", "os", "as", "um", "uma", "uns", "umas",
			"este", "esta", "estes", "estas", "esse", "essa", "esses", "essas",
			"meu", "minha", "teu", "tua", "seu", "sua", "nosso", "nossa",
			"ao", "aos", "do", "da", "dos", "das", "no", "na", "nos", "nas",
		),
		adpositions: wordSet(
			"a", "de", "em", "com", "sem", "por", "para", "sobre", "sob",
			"entre", "desde", "até", "contra", "durante", "após",
		),
	},
	"ca": {
		determiners: wordSet(
			"el", "la", "els", "les", "un", "una", "uns", "unes",
			"l'", "aquest", "aquesta", "aquests", "aquestes",
			"el seu", "al", "als", "del", "dels", "pel", "pels",
		),
		adpositions: wordSet(
			"a", "de", "d'", "en", "amb", "sense", "per", "sobre", "sota",
			"entre", "des", "fins", "cap", "contra", "durant",
		),
	},
	"de": {
		determiners: wordSet(
			"der", "die", "das", "den", "dem", "des", "ein", "eine", "einen",
			"einem", "einer", "eines", "dieser", "diese", "dieses", "diesen",
			"mein", "meine", "dein", "deine", "sein", "seine", "ihr", "ihre",
			"unser", "unsere", "euer", "eure", "kein", "keine",
		),
		adpositions: wordSet(
			"in", "an", "auf", "aus", "bei", "mit", "nach", "seit", "von",
			"zu", "für", "gegen", "ohne", "um", "durch", "über", "unter",
			"vor", "hinter", "neben", "zwischen", "während", "wegen",
		),
	},
	"nl": {
		determiners: wordSet(
			"de", "het", "een", "deze", "die", "dit", "dat",
			"mijn", "jouw", "zijn", "haar", "ons", "onze", "jullie", "hun",
			"elke", "iedere", "geen", "sommige",
		),
		adpositions: wordSet(
			"in", "op", "aan", "bij", "met", "naar", "van", "voor", "achter",
			"onder", "boven", "tussen", "door", "over", "zonder", "tijdens",
			"tegen", "uit", "tot",
		),
	},
}
