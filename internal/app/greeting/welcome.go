package greeting

import (
	"strings"

	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

// BuildWelcome composes the localized greeting shown before a conversation
// has any visible turns. The Hindi rendition is fixed text rather than a
// catalog lookup so a thin catalog can never produce a half-translated
// greeting.
func BuildWelcome(profile *domain.Profile, lang domain.LanguageCode, tr Translator) string {
	var name, state, crop string
	if profile != nil {
		name = profile.DisplayName()
		state = profile.State
		crop = profile.Crop
	}

	if lang == domain.LangHindi {
		greet := "नमस्ते! "
		if name != "" {
			greet = "नमस्ते, " + name + "! "
		}
		base := "मैं आपका एग्री-सहायक AI हूँ।"
		ask := "आज आप खेती के बारे में क्या सीखना चाहते हैं?"
		var stateLine, cropLine string
		if state != "" {
			stateLine = " मैं " + state + " के लिए सुझाव दे सकता हूँ।"
		}
		if crop != "" {
			cropLine = " हम " + crop + " के बारे में बात कर सकते हैं।"
		}
		return strings.TrimSpace(greet + base + "\n" + ask + stateLine + cropLine)
	}

	base := TOr(tr, "welcomePrompt", lang, "Hi! I'm your Agri-Sahayak assistant.")
	ask := TOr(tr, "welcomeAsk", lang, "What would you like to learn about farming today?")
	var greet, stateLine, cropLine string
	if name != "" {
		greet = TOr(tr, "hello", lang, "Hello") + ", " + name + "! "
	}
	if state != "" {
		stateLine = " " + TOr(tr, "welcomeStateLine", lang, "I can tailor tips for") + " " + state + "."
	}
	if crop != "" {
		cropLine = " " + TOr(tr, "welcomeCropLine", lang, "We can talk about") + " " + crop + "."
	}
	return strings.TrimSpace(greet + base + "\n" + ask + stateLine + cropLine)
}

// CategoryIntro maps a free-text category label to one of the canned
// bilingual intros for category-seeded conversations. The first matching
// category wins; an empty label yields "" so the caller can fall back to the
// generic welcome.
func CategoryIntro(category string, profile *domain.Profile, lang domain.LanguageCode) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return ""
	}

	var name string
	if profile != nil {
		name = profile.DisplayName()
	}

	if lang == domain.LangHindi {
		greet := "नमस्ते! "
		if name != "" {
			greet = "नमस्ते, " + name + "! "
		}
		switch {
		case strings.Contains(c, "weather"):
			return greet + "यह मौसम वार्ता है। अपने क्षेत्र का तापमान, वर्षा संभावना और पवन गति के बारे में पूछें।"
		case strings.Contains(c, "market"):
			return greet + "यह बाज़ार भाव वार्ता है। फसल के ताज़ा दाम, आपके ज़िले के भाव और रुझान पूछें।"
		case strings.Contains(c, "loan"), strings.Contains(c, "finance"):
			return greet + "यह ऋण/वित्त वार्ता है। किसान क्रेडिट कार्ड, सब्सिडी और पात्रता पर प्रश्न पूछें।"
		case strings.Contains(c, "farming"):
			return greet + "यह खेती सलाह वार्ता है। बुवाई, पोषण, रोग/कीट प्रबंधन आदि पूछें।"
		case strings.Contains(c, "livestock"), strings.Contains(c, "dairy"):
			return greet + "यह पशुधन/डेयरी वार्ता है। चारा, दूध उत्पादन, पशु स्वास्थ्य और टीकाकरण पर प्रश्न पूछें।"
		default:
			return greet + "मैं आपका एग्री-सहायक AI हूँ। आप अपने विषय से जुड़े प्रश्न पूछ सकते हैं।"
		}
	}

	greet := "Hello! "
	if name != "" {
		greet = "Hello, " + name + "! "
	}
	switch {
	case strings.Contains(c, "weather"):
		return greet + "This is a Weather conversation. Ask about temperature, rain chance, and wind for your area."
	case strings.Contains(c, "market"):
		return greet + "This is a Market Prices conversation. Ask for latest crop prices, your district rates, and trends."
	case strings.Contains(c, "loan"), strings.Contains(c, "finance"):
		return greet + "This is a Loans/Finance conversation. Ask about KCC, subsidies, and eligibility."
	case strings.Contains(c, "farming"):
		return greet + "This is a Farming advisory conversation. Ask about sowing, nutrition, and pest/disease management."
	case strings.Contains(c, "livestock"), strings.Contains(c, "dairy"):
		return greet + "This is a Livestock/Dairy conversation. Ask about feed, milk yield, animal health, and vaccinations."
	default:
		return greet + "I'm your Agri-Sahayak AI. Ask anything related to your selected topic."
	}
}

// CategoryFromMarker extracts the category label from a marker turn question
// such as "Started conversation in category: Weather".
func CategoryFromMarker(question string) string {
	if !strings.HasPrefix(question, domain.CategoryMarkerPrefix) {
		return ""
	}
	_, rest, ok := strings.Cut(question, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(rest)
}
