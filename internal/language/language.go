package language

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Whisper-supported languages, keyed by ISO 639-1 code.
// Codes and names follow OpenAI Whisper's tokenizer.
var whisperLanguages = map[string]string{
	"af": "afrikaans", "am": "amharic", "ar": "arabic",
	"as": "assamese", "az": "azerbaijani", "ba": "bashkir",
	"be": "belarusian", "bg": "bulgarian", "bn": "bengali",
	"bo": "tibetan", "br": "breton", "bs": "bosnian",
	"ca": "catalan", "cs": "czech", "cy": "welsh",
	"da": "danish", "de": "german", "el": "greek",
	"en": "english", "es": "spanish", "et": "estonian",
	"eu": "basque", "fa": "persian", "fi": "finnish",
	"fo": "faroese", "fr": "french", "gl": "galician",
	"gu": "gujarati", "ha": "hausa", "haw": "hawaiian",
	"he": "hebrew", "hi": "hindi", "hr": "croatian",
	"ht": "haitian creole", "hu": "hungarian", "hy": "armenian",
	"id": "indonesian", "is": "icelandic", "it": "italian",
	"ja": "japanese", "jw": "javanese", "ka": "georgian",
	"kk": "kazakh", "km": "khmer", "kn": "kannada",
	"ko": "korean", "la": "latin", "lb": "luxembourgish",
	"ln": "lingala", "lo": "lao", "lt": "lithuanian",
	"lv": "latvian", "mg": "malagasy", "mi": "maori",
	"mk": "macedonian", "ml": "malayalam", "mn": "mongolian",
	"mr": "marathi", "ms": "malay", "mt": "maltese",
	"my": "myanmar", "ne": "nepali", "nl": "dutch",
	"nn": "nynorsk", "no": "norwegian", "oc": "occitan",
	"pa": "punjabi", "pl": "polish", "ps": "pashto",
	"pt": "portuguese", "ro": "romanian", "ru": "russian",
	"sa": "sanskrit", "sd": "sindhi", "si": "sinhala",
	"sk": "slovak", "sl": "slovenian", "sn": "shona",
	"so": "somali", "sq": "albanian", "sr": "serbian",
	"su": "sundanese", "sv": "swedish", "sw": "swahili",
	"ta": "tamil", "te": "telugu", "tg": "tajik",
	"th": "thai", "tk": "turkmen", "tl": "tagalog",
	"tr": "turkish", "tt": "tatar", "uk": "ukrainian",
	"ur": "urdu", "uz": "uzbek", "vi": "vietnamese",
	"yi": "yiddish", "yo": "yoruba", "yue": "cantonese",
	"zh": "chinese",
}

var titleCaser = cases.Title(language.English)

// IsValid reports whether code is a supported language code.
func IsValid(code string) bool {
	_, ok := whisperLanguages[code]
	return ok
}

// Validate returns code unchanged, or an error if it is not supported.
func Validate(code string) (string, error) {
	if !IsValid(code) {
		return "", fmt.Errorf("unsupported language %q; run 'subflow languages' to list all %d supported codes", code, len(whisperLanguages))
	}
	return code, nil
}

// Name returns the display name for a language code, title-cased.
// Unknown codes are returned as-is.
func Name(code string) string {
	name, ok := whisperLanguages[code]
	if !ok {
		return code
	}
	return titleCaser.String(name)
}

// Codes returns all supported language codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(whisperLanguages))
	for code := range whisperLanguages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
