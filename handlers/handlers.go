package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"ecosort-service/centers"
	"ecosort-service/database"
	"ecosort-service/llm"
	"ecosort-service/models"
	"ecosort-service/ratelimit"
	"ecosort-service/service"
	"ecosort-service/validation"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// EventPublisher sends events to the message broker with a per-event routing
// key. *rabbitmq.Publisher satisfies it.
type EventPublisher interface {
	PublishWithRoutingKey(routingKey string, message interface{}) error
}

// Handlers represents the HTTP handlers
type Handlers struct {
	svc                  *service.Service
	db                   *database.Database
	directory            *centers.Directory
	publisher            EventPublisher
	correctionRoutingKey string
}

// NewHandlers creates new HTTP handlers. publisher may be nil.
func NewHandlers(svc *service.Service, db *database.Database, directory *centers.Directory, publisher EventPublisher, correctionRoutingKey string) *Handlers {
	return &Handlers{
		svc:                  svc,
		db:                   db,
		directory:            directory,
		publisher:            publisher,
		correctionRoutingKey: correctionRoutingKey,
	}
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "ecosort-service",
	})
}

// ClassifyWaste runs the classification pipeline for one uploaded image.
func (h *Handlers) ClassifyWaste(c *gin.Context) {
	var req models.ClassifyRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body.",
		})
		return
	}

	if req.Language == "" {
		req.Language = "English"
	}

	clientAddress := ratelimit.ClientAddress(c.Request)

	predictions, err := h.svc.Classify(req.ImageBase64, req.Language, clientAddress)
	if err != nil {
		status, message := classifyErrorResponse(err)
		log.WithFields(log.Fields{
			"status": status,
			"client": clientAddress,
		}).Warnf("Classification rejected: %v", errClass(err))
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, models.ClassifyResponse{Predictions: predictions})
}

// classifyErrorResponse maps pipeline failures to status codes and user-safe
// messages. Internal detail never reaches the response body.
func classifyErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, validation.ErrInvalidImage):
		return http.StatusBadRequest, "Invalid image data. Please upload a valid image under 20MB."
	case errors.Is(err, validation.ErrInvalidLanguage):
		return http.StatusBadRequest, "Invalid language selection."
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a minute."
	case errors.Is(err, llm.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many requests. Please try again in a moment."
	case errors.Is(err, llm.ErrUnavailable):
		return http.StatusServiceUnavailable, "Service temporarily unavailable."
	case errors.Is(err, service.ErrMalformedReply):
		return http.StatusInternalServerError, "Unable to process AI response. Please try again."
	default:
		return http.StatusInternalServerError, "Unable to process image. Please try again."
	}
}

// errClass reduces a pipeline error to its sentinel for logging, so log lines
// never carry wrapped upstream text.
func errClass(err error) error {
	for _, sentinel := range []error{
		validation.ErrInvalidImage,
		validation.ErrInvalidLanguage,
		service.ErrRateLimited,
		llm.ErrRateLimited,
		llm.ErrUnavailable,
		service.ErrMalformedReply,
		service.ErrUpstreamFailed,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return errors.New("internal error")
}

// GetRecyclingCenters returns the static center directory, filterable by
// state and type, optionally distance-sorted when lat/lng are supplied.
func (h *Handlers) GetRecyclingCenters(c *gin.Context) {
	state := c.Query("state")
	centerType := c.Query("type")

	var result []centers.Center
	var lat, lng float64
	if parseCoordinate(c.Query("lat"), &lat) && parseCoordinate(c.Query("lng"), &lng) {
		result = h.directory.Nearest(state, centerType, lat, lng)
	} else {
		result = h.directory.Filter(state, centerType)
	}

	if result == nil {
		result = []centers.Center{}
	}

	c.JSON(http.StatusOK, gin.H{
		"centers": result,
		"states":  h.directory.States(),
	})
}

func parseCoordinate(s string, out *float64) bool {
	if s == "" {
		return false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	*out = v
	return true
}
