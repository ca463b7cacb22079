package greeting

import (
	"strings"

	"github.com/agri-sahayak/sahayak-cli/internal/domain"
)

const maxSuggestions = 4

// Suggestions builds the quick-pick prompts for a fresh chat: up to three
// crop-specific ones ahead of the three generic ones, deduplicated in
// first-seen order and capped at four.
func Suggestions(profile *domain.Profile, lang domain.LanguageCode, tr Translator) []string {
	if profile == nil {
		return nil
	}

	state := profile.State
	if state == "" {
		state = TOr(tr, "selectState", lang, "your state")
	}
	crop := profile.Crop
	if crop == "" {
		crop = TOr(tr, "primaryCrop", lang, "your crop")
	}
	args := map[string]string{"state": state, "crop": crop}

	var out []string
	lowerCrop := strings.ToLower(profile.Crop)
	switch {
	case strings.Contains(lowerCrop, "wheat"):
		out = append(out,
			TArgs(tr, "suggestions.wheat.fertilizer", lang, args),
			TArgs(tr, "suggestions.wheat.marketPrices", lang, args),
			TArgs(tr, "suggestions.wheat.diseases", lang, args),
		)
	case strings.Contains(lowerCrop, "rice"), strings.Contains(lowerCrop, "paddy"):
		out = append(out,
			TArgs(tr, "suggestions.rice.nutrientSchedule", lang, args),
			TArgs(tr, "suggestions.rice.variety", lang, args),
			TArgs(tr, "suggestions.rice.waterManagement", lang, args),
		)
	case strings.Contains(lowerCrop, "cotton"):
		out = append(out,
			TArgs(tr, "suggestions.cotton.bollworm", lang, args),
			TArgs(tr, "suggestions.cotton.sowingWindow", lang, args),
			TArgs(tr, "suggestions.cotton.ipmPlan", lang, args),
		)
	case strings.Contains(lowerCrop, "sugarcane"):
		out = append(out,
			TArgs(tr, "suggestions.sugarcane.fertilizerSchedule", lang, args),
			TArgs(tr, "suggestions.sugarcane.ratoonYield", lang, args),
			TArgs(tr, "suggestions.sugarcane.subsidySchemes", lang, args),
		)
	}

	out = append(out,
		TArgs(tr, "suggestions.general.marketPrices", lang, args),
		TArgs(tr, "suggestions.general.soilHealth", lang, args),
		TArgs(tr, "suggestions.general.loanSubsidy", lang, args),
	)

	seen := make(map[string]struct{}, len(out))
	unique := out[:0]
	for _, s := range out {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		unique = append(unique, s)
	}
	if len(unique) > maxSuggestions {
		unique = unique[:maxSuggestions]
	}
	return unique
}
