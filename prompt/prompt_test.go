package prompt

import (
	"strings"
	"testing"

	"ecosort-service/models"
)

func strPtr(s string) *string { return &s }

func TestBuildSystemPrompt(t *testing.T) {
	base := BuildSystemPrompt("Hindi", nil)
	if !strings.Contains(base, "Respond in Hindi language") {
		t.Error("system prompt does not carry the requested language")
	}
	if strings.Contains(base, "Learned corrections") {
		t.Error("system prompt contains a corrections block without corrections")
	}

	corrections := []models.LearnedCorrection{
		{
			ItemName:          "Tetra Pak",
			OriginalCategory:  "Non-Recyclable",
			CorrectedCategory: strPtr("Recyclable"),
		},
		{
			ItemName:         "Thermocol Plate",
			OriginalCategory: "Recyclable",
		},
		{
			ItemName:          "CFL Bulb",
			OriginalCategory:  "Recyclable",
			CorrectedCategory: strPtr("Hazardous"),
			CorrectionDetails: strPtr("Contains mercury, must go to hazardous collection"),
		},
	}

	withCorrections := BuildSystemPrompt("English", corrections)
	if !strings.Contains(withCorrections, `The item "Tetra Pak" should be classified as Recyclable (not Non-Recyclable)`) {
		t.Error("corrected category line missing or malformed")
	}
	if !strings.Contains(withCorrections, `The item "Thermocol Plate" was previously misclassified as Recyclable`) {
		t.Error("misclassification-only line missing or malformed")
	}
	if !strings.Contains(withCorrections, "Contains mercury") {
		t.Error("correction details missing")
	}
}

func TestBuildUserPrompt(t *testing.T) {
	p := BuildUserPrompt("Tamil")
	if !strings.Contains(p, "Respond in Tamil.") {
		t.Error("user prompt does not carry the requested language")
	}
	if !strings.Contains(p, `"binColor"`) {
		t.Error("user prompt does not describe the expected JSON shape")
	}
}
