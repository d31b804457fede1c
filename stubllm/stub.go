package stubllm

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Client is a deterministic, no-network LLM stub intended for CI and local
// end-to-end tests. It returns a schema-valid prediction array so downstream
// parsing and persistence exercise the full pipeline.
type Client struct{}

func NewClient() *Client { return &Client{} }

func (c *Client) SourceName() string { return "Stub" }

func (c *Client) ClassifyImage(imageDataURI, systemPrompt, userPrompt string) (string, error) {
	// Make output deterministic per-input so the pipeline is stable in CI.
	sum := sha256.Sum256([]byte(imageDataURI))
	short := hex.EncodeToString(sum[:4])

	out := []map[string]any{
		{
			"item":       fmt.Sprintf("Plastic Bottle (%s)", short),
			"category":   "Recyclable",
			"disposal":   "Rinse and place in the blue bin",
			"binColor":   "Blue",
			"confidence": 92,
		},
		{
			"item":       "Banana Peel",
			"category":   "Organic/Wet Waste",
			"disposal":   "Compost or place in the green bin",
			"binColor":   "Green",
			"confidence": 97,
		},
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Here are the items I found: %s", string(b)), nil
}
