package service

import (
	"errors"
	"fmt"
	"time"

	"ecosort-service/config"
	"ecosort-service/llm"
	"ecosort-service/metrics"
	"ecosort-service/models"
	"ecosort-service/parser"
	"ecosort-service/prompt"
	"ecosort-service/ratelimit"
	"ecosort-service/validation"

	"github.com/apex/log"
)

// Endpoint is the rate-limit bucket identifier for the classification route.
const Endpoint = "classify-waste"

var (
	// ErrRateLimited means this service's own fixed-window limiter rejected
	// the request, as opposed to llm.ErrRateLimited from the upstream model.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrMalformedReply means the model's reply did not yield a valid
	// prediction array. Not attributable to the client.
	ErrMalformedReply = errors.New("malformed model reply")
	// ErrUpstreamFailed covers all other model-call failures.
	ErrUpstreamFailed = errors.New("model call failed")
)

// CorrectionSource supplies recent learned corrections for prompt building.
// *database.Database satisfies it.
type CorrectionSource interface {
	RecentCorrections(limit int) ([]models.LearnedCorrection, error)
}

// Publisher sends events to the message broker. *rabbitmq.Publisher satisfies it.
type Publisher interface {
	Publish(message interface{}) error
}

// Service runs the classification pipeline: validate, rate-check, fetch
// corrections, call the model, parse the reply. Each request is handled
// independently; the rate-limit store is the only coordination point.
type Service struct {
	cfg         *config.Config
	corrections CorrectionSource
	limiter     *ratelimit.Limiter
	llmClient   llm.Client
	publisher   Publisher
}

// NewService creates the classification service. publisher may be nil;
// events are then skipped.
func NewService(cfg *config.Config, corrections CorrectionSource, limiter *ratelimit.Limiter, client llm.Client, publisher Publisher) *Service {
	return &Service{
		cfg:         cfg,
		corrections: corrections,
		limiter:     limiter,
		llmClient:   client,
		publisher:   publisher,
	}
}

// Classify runs one request through the pipeline and returns the prediction
// list or a typed failure. No terminal state is retried internally.
func (s *Service) Classify(imageData, language, clientAddress string) ([]models.PredictionItem, error) {
	start := time.Now()
	result := "success"
	defer func() {
		metrics.ClassificationsTotal.WithLabelValues(result).Inc()
		metrics.ClassificationDurationSeconds.WithLabelValues(result).Observe(time.Since(start).Seconds())
	}()

	// Validating: pure checks, no side effects before this point.
	if err := validation.ValidateImageData(imageData); err != nil {
		result = "invalid_image"
		return nil, err
	}
	if err := validation.ValidateLanguage(language); err != nil {
		result = "invalid_language"
		return nil, err
	}

	// RateChecking: the admitted attempt is recorded before the model call so
	// it counts against the budget even if classification fails downstream.
	if !s.limiter.Allow(clientAddress, Endpoint) {
		result = "rate_limited"
		metrics.RateLimitedTotal.Inc()
		return nil, ErrRateLimited
	}

	// FetchingCorrections: a lookup failure only loses the prompt bias, it
	// never fails the request.
	corrections, err := s.corrections.RecentCorrections(s.cfg.CorrectionsLimit)
	if err != nil {
		log.WithError(err).Warn("Failed to fetch learned corrections, proceeding without them")
		corrections = nil
	}

	// CallingModel
	systemPrompt := prompt.BuildSystemPrompt(language, corrections)
	userPrompt := prompt.BuildUserPrompt(language)

	reply, err := s.llmClient.ClassifyImage(imageData, systemPrompt, userPrompt)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrRateLimited):
			result = "upstream_rate_limited"
			metrics.UpstreamErrorsTotal.WithLabelValues("rate_limited").Inc()
			return nil, err
		case errors.Is(err, llm.ErrUnavailable):
			result = "upstream_unavailable"
			metrics.UpstreamErrorsTotal.WithLabelValues("unavailable").Inc()
			return nil, err
		default:
			result = "upstream_error"
			metrics.UpstreamErrorsTotal.WithLabelValues("other").Inc()
			log.WithError(err).Error("Model call failed")
			return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
		}
	}

	// ParsingReply: all-or-nothing; the raw reply is never surfaced to the
	// client and never logged verbatim.
	predictions, err := parser.ParsePredictions(reply)
	if err != nil {
		result = "parse_error"
		log.WithError(err).Error("Failed to parse model reply")
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	metrics.PredictionsPerRequest.Observe(float64(len(predictions)))
	log.WithFields(log.Fields{
		"language": language,
		"items":    len(predictions),
		"source":   s.llmClient.SourceName(),
	}).Info("Classification completed")

	s.publishClassification(language, predictions)

	return predictions, nil
}

// publishClassification emits a completed-classification event. Best effort;
// the broker being down never fails a request.
func (s *Service) publishClassification(language string, predictions []models.PredictionItem) {
	if s.publisher == nil {
		return
	}

	event := models.ClassificationEvent{
		Language:    language,
		ItemCount:   len(predictions),
		Predictions: predictions,
		Source:      s.llmClient.SourceName(),
		Timestamp:   time.Now(),
	}

	if err := s.publisher.Publish(event); err != nil {
		log.WithError(err).Warn("Failed to publish classification event")
	}
}
