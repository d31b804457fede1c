package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ecosort-service/models"
)

// ErrNoArray is returned when the model reply contains no bracketed array.
var ErrNoArray = errors.New("no JSON array found in response")

// predictionFields mirrors models.PredictionItem with pointer fields so that
// missing keys can be told apart from zero values.
type predictionFields struct {
	Item       *string  `json:"item"`
	Category   *string  `json:"category"`
	Disposal   *string  `json:"disposal"`
	BinColor   *string  `json:"binColor"`
	Confidence *float64 `json:"confidence"`
}

// ExtractArray locates the first top-level bracketed array in the model's
// free-form text reply, matching greedily from the first '[' to the last ']'.
func ExtractArray(response string) (string, error) {
	startIdx := strings.Index(response, "[")
	if startIdx == -1 {
		return "", ErrNoArray
	}
	endIdx := strings.LastIndex(response, "]")
	if endIdx == -1 || endIdx < startIdx {
		return "", ErrNoArray
	}
	return strings.TrimSpace(response[startIdx : endIdx+1]), nil
}

// ParsePredictions parses the model reply and validates every element.
// Validation is all-or-nothing: a single malformed element fails the batch.
func ParsePredictions(response string) ([]models.PredictionItem, error) {
	jsonContent, err := ExtractArray(strings.TrimSpace(response))
	if err != nil {
		return nil, err
	}

	var raw []predictionFields
	if err := json.Unmarshal([]byte(jsonContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	predictions := make([]models.PredictionItem, 0, len(raw))
	for i, p := range raw {
		if p.Item == nil || p.Category == nil || p.Disposal == nil || p.BinColor == nil {
			return nil, fmt.Errorf("prediction %d is missing a required string field", i)
		}
		if p.Confidence == nil {
			return nil, fmt.Errorf("prediction %d is missing confidence", i)
		}
		if *p.Confidence < 0 || *p.Confidence > 100 {
			return nil, fmt.Errorf("prediction %d confidence must be between 0 and 100", i)
		}
		predictions = append(predictions, models.PredictionItem{
			Item:       *p.Item,
			Category:   *p.Category,
			Disposal:   *p.Disposal,
			BinColor:   *p.BinColor,
			Confidence: *p.Confidence,
		})
	}

	return predictions, nil
}
