package llm

import "errors"

// Upstream failure classes surfaced to the HTTP boundary. The caller maps
// these to status codes; raw provider responses never leave the server.
var (
	// ErrRateLimited means the upstream model returned HTTP 429.
	ErrRateLimited = errors.New("upstream model rate limited")
	// ErrUnavailable means the upstream model returned HTTP 402.
	ErrUnavailable = errors.New("upstream model unavailable")
)

// Client abstracts a vision-capable LLM provider used by the classifier.
// Implementations must be concurrency-safe if used across goroutines.
type Client interface {
	// ClassifyImage sends the system instruction, the user instruction and the
	// image (as a data URI) to the model, and returns its raw text reply.
	ClassifyImage(imageDataURI, systemPrompt, userPrompt string) (string, error)
	// SourceName returns a short provider label for logs and published events.
	SourceName() string
}
