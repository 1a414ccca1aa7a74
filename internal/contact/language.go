package contact

import "unicode"

// DetectLanguage classifies text by counting Greek and Latin letters.
// A script wins when it has more than twice the letters of the other;
// anything else, including text without letters, is mixed.
func DetectLanguage(text string) Language {
	var greek, latin int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		switch {
		case unicode.Is(unicode.Greek, r):
			greek++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}
	switch {
	case greek > latin*2:
		return LanguageGreek
	case latin > greek*2:
		return LanguageEnglish
	default:
		return LanguageMixed
	}
}
