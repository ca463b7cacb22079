package greeting

import (
	"strings"

	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

// Translator resolves a message key for a language. A missing translation
// resolves to the key itself; callers treat that as "use the literal
// fallback" rather than an error.
type Translator interface {
	T(key string, lang domain.LanguageCode) string
}

// Catalog is the built-in en/hi message catalog. Placeholders like {state}
// and {crop} are substituted by TArgs.
type Catalog struct {
	entries map[domain.LanguageCode]map[string]string
}

func NewCatalog() *Catalog {
	return &Catalog{entries: map[domain.LanguageCode]map[string]string{
		domain.LangEnglish: englishMessages,
		domain.LangHindi:   hindiMessages,
	}}
}

func (c *Catalog) T(key string, lang domain.LanguageCode) string {
	if m, ok := c.entries[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	// English is the catalog of last resort before the key echo.
	if lang != domain.LangEnglish {
		if v, ok := c.entries[domain.LangEnglish][key]; ok {
			return v
		}
	}
	return key
}

// TOr resolves key and substitutes fallback when the translation is missing
// (the lookup echoed the key) or empty.
func TOr(tr Translator, key string, lang domain.LanguageCode, fallback string) string {
	v := tr.T(key, lang)
	if v == "" || v == key {
		return fallback
	}
	return v
}

// TArgs resolves key and replaces {name} placeholders with the given values.
func TArgs(tr Translator, key string, lang domain.LanguageCode, args map[string]string) string {
	v := tr.T(key, lang)
	for name, val := range args {
		v = strings.ReplaceAll(v, "{"+name+"}", val)
	}
	return v
}

var englishMessages = map[string]string{
	"hello":            "Hello",
	"welcomePrompt":    "Hi! I'm your Agri-Sahayak assistant.",
	"welcomeAsk":       "What would you like to learn about farming today?",
	"welcomeStateLine": "I can tailor tips for",
	"welcomeCropLine":  "We can talk about",
	"welcomeDefault":   "Hi! What would you like to learn about farming today?",

	"selectState": "your state",
	"primaryCrop": "your crop",

	"suggestions.wheat.fertilizer":        "Best fertilizer schedule for wheat this season",
	"suggestions.wheat.marketPrices":      "Latest wheat market prices in {state}",
	"suggestions.wheat.diseases":          "Common wheat diseases and how to treat them",
	"suggestions.rice.nutrientSchedule":   "Nutrient schedule for rice after transplanting",
	"suggestions.rice.variety":            "Best rice variety for {state}",
	"suggestions.rice.waterManagement":    "Water management for paddy fields",
	"suggestions.cotton.bollworm":         "How to control pink bollworm in cotton",
	"suggestions.cotton.sowingWindow":     "Ideal cotton sowing window in {state}",
	"suggestions.cotton.ipmPlan":          "IPM plan for cotton pests",
	"suggestions.sugarcane.fertilizerSchedule": "Fertilizer schedule for sugarcane",
	"suggestions.sugarcane.ratoonYield":        "How to improve ratoon sugarcane yield",
	"suggestions.sugarcane.subsidySchemes":     "Sugarcane subsidy schemes in {state}",
	"suggestions.general.marketPrices":         "Latest {crop} market prices in {state}",
	"suggestions.general.soilHealth":           "How do I improve my soil health?",
	"suggestions.general.loanSubsidy":          "Which loans and subsidies am I eligible for?",

	"failedToGetAnswer":                 "Failed to get an answer. Please try again.",
	"failedToLoadConversationHistory":   "Failed to load conversation history.",
	"invalidCredentials":                "Please enter a valid email and password.",
	"nameRequired":                      "Name is required.",
	"phoneNumberRequired":               "Phone number is required.",
	"failedToCreateProfile":             "Failed to create profile. Please try again.",
	"imageAttached":                     "Image attached",
	"listening":                         "Listening...",
	"thinking":                          "AI is thinking...",
	"loadingConversation":               "Loading conversation...",
	"tryOneOfThese":                     "Try one of these",
	"callInitiated":                     "Call initiated. Your phone will ring shortly.",
	"callInitiatedShort":                "Call initiated.",
	"callFailed":                        "Failed to initiate call.",
}

var hindiMessages = map[string]string{
	"hello":            "नमस्ते",
	"welcomePrompt":    "नमस्ते! मैं आपका एग्री-सहायक हूँ।",
	"welcomeAsk":       "आज आप खेती के बारे में क्या सीखना चाहते हैं?",
	"welcomeStateLine": "मैं सुझाव दे सकता हूँ",
	"welcomeCropLine":  "हम बात कर सकते हैं",
	"welcomeDefault":   "नमस्ते! आज आप खेती के बारे में क्या सीखना चाहते हैं?",

	"selectState": "अपने राज्य",
	"primaryCrop": "अपनी फसल",

	"suggestions.wheat.fertilizer":        "इस मौसम में गेहूं के लिए सबसे अच्छा उर्वरक कार्यक्रम",
	"suggestions.wheat.marketPrices":      "{state} में गेहूं के ताज़ा बाज़ार भाव",
	"suggestions.wheat.diseases":          "गेहूं के आम रोग और उनका उपचार",
	"suggestions.rice.nutrientSchedule":   "रोपाई के बाद धान के लिए पोषक तत्व कार्यक्रम",
	"suggestions.rice.variety":            "{state} के लिए सबसे अच्छी धान की किस्म",
	"suggestions.rice.waterManagement":    "धान के खेतों के लिए जल प्रबंधन",
	"suggestions.cotton.bollworm":         "कपास में गुलाबी सुंडी का नियंत्रण कैसे करें",
	"suggestions.cotton.sowingWindow":     "{state} में कपास बुवाई का सही समय",
	"suggestions.cotton.ipmPlan":          "कपास के कीटों के लिए IPM योजना",
	"suggestions.sugarcane.fertilizerSchedule": "गन्ने के लिए उर्वरक कार्यक्रम",
	"suggestions.sugarcane.ratoonYield":        "पेड़ी गन्ने की उपज कैसे बढ़ाएं",
	"suggestions.sugarcane.subsidySchemes":     "{state} में गन्ना सब्सिडी योजनाएं",
	"suggestions.general.marketPrices":         "{state} में {crop} के ताज़ा बाज़ार भाव",
	"suggestions.general.soilHealth":           "मैं अपनी मिट्टी की सेहत कैसे सुधारूं?",
	"suggestions.general.loanSubsidy":          "मैं किन ऋणों और सब्सिडी के लिए पात्र हूँ?",

	"failedToGetAnswer":               "उत्तर प्राप्त नहीं हो सका। कृपया फिर से प्रयास करें।",
	"failedToLoadConversationHistory": "वार्ता इतिहास लोड नहीं हो सका।",
	"invalidCredentials":              "कृपया सही ईमेल और पासवर्ड दर्ज करें।",
	"nameRequired":                    "नाम आवश्यक है।",
	"phoneNumberRequired":             "फ़ोन नंबर आवश्यक है।",
	"failedToCreateProfile":           "प्रोफ़ाइल नहीं बन सकी। कृपया फिर से प्रयास करें।",
	"imageAttached":                   "छवि संलग्न",
	"listening":                       "सुन रहा हूँ...",
	"thinking":                        "AI सोच रहा है...",
	"loadingConversation":             "वार्ता लोड हो रही है...",
	"tryOneOfThese":                   "इनमें से कोई आज़माएं",
	"callInitiated":                   "कॉल शुरू हो गई है। आपका फोन जल्द ही बजेगा।",
	"callInitiatedShort":              "कॉल शुरू हो गई।",
	"callFailed":                      "कॉल शुरू नहीं हो सकी।",
}
