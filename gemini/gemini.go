package gemini

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ecosort-service/llm"
)

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type geminiRequest struct {
	Contents []content `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text,omitempty"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client calls the Gemini generateContent API directly.
type Client struct {
	apiKey string
	model  string
	http   *http.Client
}

func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
		http:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) SourceName() string {
	return "Gemini"
}

// ClassifyImage sends both prompts and the inline image in a single user turn.
func (c *Client) ClassifyImage(imageDataURI, systemPrompt, userPrompt string) (string, error) {
	mimeType, data, err := splitDataURI(imageDataURI)
	if err != nil {
		return "", err
	}

	reqBody := geminiRequest{
		Contents: []content{
			{
				Role: "user",
				Parts: []part{
					{Text: systemPrompt},
					{Text: userPrompt},
					{InlineData: &inlineData{MimeType: mimeType, Data: data}},
				},
			},
		},
	}

	return c.generateContent(reqBody)
}

// splitDataURI separates a "data:<mime>;base64,<payload>" URI into its parts.
func splitDataURI(uri string) (string, string, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", "", errors.New("not a data URI")
	}
	comma := strings.Index(uri, ",")
	if comma == -1 {
		return "", "", errors.New("malformed data URI")
	}
	header := uri[len("data:"):comma]
	mimeType := strings.TrimSuffix(header, ";base64")
	if mimeType == "" || mimeType == header {
		return "", "", errors.New("data URI is not base64 encoded")
	}
	return mimeType, uri[comma+1:], nil
}

func (c *Client) generateContent(body geminiRequest) (string, error) {
	endpoint := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", c.model, c.apiKey)

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return "", llm.ErrRateLimited
	case http.StatusPaymentRequired:
		return "", llm.ErrUnavailable
	default:
		return "", fmt.Errorf("API error (status %d)", resp.StatusCode)
	}

	var gr geminiResponse
	if err := json.Unmarshal(bodyBytes, &gr); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(gr.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	for _, p := range gr.Candidates[0].Content.Parts {
		if p.Text != "" {
			return p.Text, nil
		}
	}
	return "", fmt.Errorf("no text part in response")
}
