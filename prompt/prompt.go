package prompt

import (
	"fmt"
	"strings"

	"ecosort-service/models"
)

const systemPrompt = `You are an expert waste classification system for India. Analyze images and identify ALL waste items present. Use simple, everyday language that anyone can understand. For each item, provide:
1. Item name (use simple, common words - e.g., "Plastic Bottle" not "Polyethylene Terephthalate Container")
2. Waste category (Recyclable, Organic/Wet Waste, Hazardous, E-Waste, or Non-Recyclable)
3. Disposal instructions specific to India (in simple language): preparation steps, where to take it, what not to do, and a short note on environmental impact
4. Bin color according to Indian waste segregation (ONLY the color name - one of: Blue, Green, Red, Yellow, Black):
   - Blue: Recyclable waste (plastic, paper, metal, glass)
   - Green: Organic/wet waste (food scraps, garden waste)
   - Red: Hazardous waste (medical, chemicals, batteries)
   - Yellow: E-waste (electronics, batteries)
   - Black: Non-recyclable waste
5. Confidence level (0-100) indicating how certain you are about the classification

Respond in %s language. Return a JSON array with all items found. Be thorough and identify every visible waste item.`

const userPrompt = `Analyze this image and identify ALL waste items using simple language. Return a JSON array with format: [{"item": "simple item name", "category": "category", "disposal": "how to dispose", "binColor": "Blue/Green/Red/Yellow/Black (ONLY the color, no 'bin' word)", "confidence": 95}]. Respond in %s.`

// BuildSystemPrompt renders the fixed classification instruction for the
// requested language, appending a corrections block when any learned
// corrections exist. Corrections bias the model at prompt level only; there
// is no weight-level learning anywhere in the system.
func BuildSystemPrompt(language string, corrections []models.LearnedCorrection) string {
	base := fmt.Sprintf(systemPrompt, language)
	if len(corrections) == 0 {
		return base
	}

	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("\n\nIMPORTANT - Learned corrections from expert review. Prefer these classifications when they apply:\n")
	for _, c := range corrections {
		if c.CorrectedCategory != nil && *c.CorrectedCategory != "" {
			sb.WriteString(fmt.Sprintf("- The item \"%s\" should be classified as %s (not %s)",
				c.ItemName, *c.CorrectedCategory, c.OriginalCategory))
		} else {
			sb.WriteString(fmt.Sprintf("- The item \"%s\" was previously misclassified as %s",
				c.ItemName, c.OriginalCategory))
		}
		if c.CorrectionDetails != nil && *c.CorrectionDetails != "" {
			sb.WriteString(fmt.Sprintf(". Details: %s", *c.CorrectionDetails))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// BuildUserPrompt renders the fixed per-request instruction.
func BuildUserPrompt(language string) string {
	return fmt.Sprintf(userPrompt, language)
}
