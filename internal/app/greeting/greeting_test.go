package greeting_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agri-sahayak/sahayak-cli/internal/app/greeting"
	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

func TestNormalizeLang(t *testing.T) {
	cases := []struct {
		raw      string
		fallback domain.LanguageCode
		want     domain.LanguageCode
	}{
		{"hi", "en", "hi"},
		{"hi-IN", "en", "hi"},
		{"hin", "en", "hi"},
		{"Hindi", "en", "hi"},
		{"हिंदी", "en", "hi"},
		{"हिन्दी", "en", "hi"},
		{"en", "hi", "en"},
		{"en-IN", "hi", "en"},
		{"English (India)", "hi", "en"},
		{"", "hi", "hi"},
		{"", "", "en"},
		{"fr", "hi", "hi"},
		{"  HI-in  ", "en", "hi"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, greeting.NormalizeLang(tc.raw, tc.fallback), "raw=%q", tc.raw)
	}
}

func TestSuggestionsKnownCrops(t *testing.T) {
	tr := greeting.NewCatalog()
	crops := map[string]string{
		"Wheat":     "wheat",
		"rice":      "rice",
		"Paddy":     "rice",
		"cotton":    "cotton",
		"Sugarcane": "sugarcane",
	}
	for crop := range crops {
		profile := &domain.Profile{Name: "Ravi", State: "Punjab", Crop: crop}
		got := greeting.Suggestions(profile, domain.LangEnglish, tr)

		require.NotEmpty(t, got, "crop=%s", crop)
		assert.LessOrEqual(t, len(got), 4, "crop=%s", crop)

		seen := map[string]bool{}
		for _, s := range got {
			assert.False(t, seen[s], "duplicate suggestion %q for crop=%s", s, crop)
			seen[s] = true
		}

		// Crop-specific suggestions come before the generic ones.
		generic := greeting.TArgs(tr, "suggestions.general.marketPrices", domain.LangEnglish,
			map[string]string{"state": "Punjab", "crop": crop})
		assert.NotEqual(t, generic, got[0], "crop=%s", crop)
	}
}

func TestSuggestionsUnknownCropIsGenericOnly(t *testing.T) {
	tr := greeting.NewCatalog()
	got := greeting.Suggestions(&domain.Profile{Crop: "banana", State: "Kerala"}, domain.LangEnglish, tr)
	require.Len(t, got, 3)
	assert.Contains(t, got[0], "banana")
}

func TestSuggestionsNilProfile(t *testing.T) {
	assert.Nil(t, greeting.Suggestions(nil, domain.LangEnglish, greeting.NewCatalog()))
}

func TestBuildWelcomeEnglish(t *testing.T) {
	tr := greeting.NewCatalog()
	profile := &domain.Profile{Name: "Ravi", State: "Punjab", Crop: "wheat"}

	got := greeting.BuildWelcome(profile, domain.LangEnglish, tr)
	assert.True(t, strings.HasPrefix(got, "Hello, Ravi!"), "got %q", got)
	assert.Contains(t, got, "Punjab")
	assert.Contains(t, got, "wheat")
}

func TestBuildWelcomeHindiHardcoded(t *testing.T) {
	got := greeting.BuildWelcome(&domain.Profile{Name: "Ravi"}, domain.LangHindi, greeting.NewCatalog())
	assert.True(t, strings.HasPrefix(got, "नमस्ते, Ravi!"), "got %q", got)
	assert.Contains(t, got, "एग्री-सहायक")
}

func TestBuildWelcomeNoProfileFields(t *testing.T) {
	got := greeting.BuildWelcome(&domain.Profile{}, domain.LangEnglish, greeting.NewCatalog())
	assert.False(t, strings.HasPrefix(got, "Hello,"), "no name, no greeting line: %q", got)
	assert.NotContains(t, got, "tailor tips")
}

func TestBuildWelcomeFallsBackOnMissingKeys(t *testing.T) {
	got := greeting.BuildWelcome(&domain.Profile{Name: "Ravi"}, domain.LangEnglish, echoTranslator{})
	assert.Contains(t, got, "Hi! I'm your Agri-Sahayak assistant.")
	assert.Contains(t, got, "Hello, Ravi!")
}

// echoTranslator always misses, returning the key, the way an i18n lookup
// signals an untranslated message.
type echoTranslator struct{}

func (echoTranslator) T(key string, _ domain.LanguageCode) string { return key }

func TestCategoryIntro(t *testing.T) {
	profile := &domain.Profile{Name: "Ravi"}

	got := greeting.CategoryIntro("Weather", profile, domain.LangEnglish)
	assert.Contains(t, got, "Weather conversation")
	assert.True(t, strings.HasPrefix(got, "Hello, Ravi!"), "got %q", got)

	got = greeting.CategoryIntro("Market Prices", profile, domain.LangEnglish)
	assert.Contains(t, got, "Market Prices conversation")

	got = greeting.CategoryIntro("Loans & Finance", profile, domain.LangHindi)
	assert.Contains(t, got, "ऋण/वित्त")

	// Unmatched but non-empty labels get the generic topic intro.
	got = greeting.CategoryIntro("Horoscope", profile, domain.LangEnglish)
	assert.Contains(t, got, "selected topic")

	assert.Empty(t, greeting.CategoryIntro("", profile, domain.LangEnglish))
}

func TestCategoryFromMarker(t *testing.T) {
	q := domain.CategoryMarkerPrefix + " Weather"
	assert.Equal(t, "Weather", greeting.CategoryFromMarker(q))
	assert.Empty(t, greeting.CategoryFromMarker("What is the weather?"))
}

func TestHasDevanagari(t *testing.T) {
	assert.True(t, greeting.HasDevanagari("नमस्ते"))
	assert.False(t, greeting.HasDevanagari("hello"))
}
