package greeting

import (
	"strings"

	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

// NormalizeLang collapses a free-text locale preference ("hi-IN", "Hindi",
// "हिन्दी", "en", "English (India)", ...) to one of the two canonical codes.
// Hindi markers are checked before English ones; anything unrecognized falls
// back to the caller's default.
func NormalizeLang(raw string, fallback domain.LanguageCode) domain.LanguageCode {
	if fallback == "" {
		fallback = domain.LangEnglish
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return fallback
	}
	if s == "hi" || strings.HasPrefix(s, "hi-") || s == "hin" ||
		strings.Contains(s, "hindi") ||
		strings.Contains(s, "हिंदी") || strings.Contains(s, "हिन्दी") {
		return domain.LangHindi
	}
	if s == "en" || strings.HasPrefix(s, "en-") || strings.Contains(s, "english") {
		return domain.LangEnglish
	}
	return fallback
}

// HasDevanagari reports whether text contains Devanagari script, used to
// pick the Hindi voice for read-aloud regardless of the UI language.
func HasDevanagari(text string) bool {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}
