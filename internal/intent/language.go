package intent

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// ErrUndetectable is returned when a query carries no letters to detect from.
var ErrUndetectable = errors.New("language could not be detected")

// AutoLanguage asks the classifier to detect the language itself.
const AutoLanguage = "auto"

// LanguageDetector guesses the ISO-639-1 code of a query. Detection is best
// effort and callers fall back to English on error.
type LanguageDetector interface {
	Detect(text string) (string, error)
}

var scriptLanguages = []struct {
	table *unicode.RangeTable
	code  string
}{
	// Marathi shares Devanagari with Hindi; script alone cannot tell them apart.
	{unicode.Devanagari, "hi"},
	{unicode.Tamil, "ta"},
	{unicode.Telugu, "te"},
	{unicode.Gujarati, "gu"},
	{unicode.Bengali, "bn"},
	{unicode.Kannada, "kn"},
}

// ScriptDetector picks the language of the dominant non-Latin script, or
// English when the letters are Latin.
type ScriptDetector struct{}

func (ScriptDetector) Detect(text string) (string, error) {
	counts := make(map[string]int)
	latin := 0
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) && !unicode.Is(unicode.Mc, r) {
			continue
		}
		if unicode.Is(unicode.Latin, r) {
			latin++
			continue
		}
		for _, s := range scriptLanguages {
			if unicode.Is(s.table, r) {
				counts[s.code]++
				break
			}
		}
	}

	best, bestCount := "", 0
	for _, s := range scriptLanguages {
		if counts[s.code] > bestCount {
			best, bestCount = s.code, counts[s.code]
		}
	}
	if bestCount > 0 {
		return best, nil
	}
	if latin > 0 {
		return "en", nil
	}
	return "", ErrUndetectable
}

// NormalizeLanguage reduces a BCP 47 tag such as "hi-IN" or "EN_us" to its
// base language code. Unparseable input yields "".
func NormalizeLanguage(code string) string {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}
