package moderation

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"
)

const minLanguageConfidence = 0.5

// DetectLanguage returns the ISO 639-1 code of the text,
// or an empty string when the detector is not confident enough.
func DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	info := whatlanggo.Detect(text)
	if info.Confidence < minLanguageConfidence {
		return ""
	}
	return info.Lang.Iso6391()
}

// IsKnownLanguage reports whether code is an ISO 639-1 code DetectLanguage can return.
func IsKnownLanguage(code string) bool {
	if code == "" {
		return false
	}
	return lo.ContainsBy(lo.Keys(whatlanggo.Langs), func(lang whatlanggo.Lang) bool {
		return lang.Iso6391() == code
	})
}
