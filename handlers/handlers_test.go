package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"ecosort-service/centers"
	"ecosort-service/config"
	"ecosort-service/llm"
	"ecosort-service/middleware"
	"ecosort-service/models"
	"ecosort-service/ratelimit"
	"ecosort-service/service"

	"github.com/gin-gonic/gin"
)

type mockLLM struct {
	mu    sync.Mutex
	calls int
	reply string
	err   error
}

func (m *mockLLM) ClassifyImage(imageDataURI, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.reply, m.err
}

func (m *mockLLM) SourceName() string { return "Mock" }

func (m *mockLLM) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type storeRow struct {
	address  string
	endpoint string
	at       time.Time
}

type memoryStore struct {
	mu   sync.Mutex
	rows []storeRow
}

func (s *memoryStore) CountRecentRequests(clientAddress, endpoint string, windowStart time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, row := range s.rows {
		if row.address == clientAddress && row.endpoint == endpoint && !row.at.Before(windowStart) {
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) RecordRequest(clientAddress, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, storeRow{address: clientAddress, endpoint: endpoint, at: time.Now()})
	return nil
}

type noCorrections struct{}

func (noCorrections) RecentCorrections(limit int) ([]models.LearnedCorrection, error) {
	return nil, nil
}

func newClassifyRouter(client llm.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{CorrectionsLimit: 50}
	limiter := ratelimit.NewLimiter(&memoryStore{}, 5, time.Minute)
	svc := service.NewService(cfg, noCorrections{}, limiter, client, nil)
	h := NewHandlers(svc, nil, centers.NewDirectory(), nil, "")

	router := gin.New()
	router.Use(middleware.CORSMiddleware())
	router.GET("/api/v1/health", h.HealthCheck)
	router.POST("/api/v1/classify-waste", h.ClassifyWaste)
	router.GET("/api/v1/recycling-centers", h.GetRecyclingCenters)
	return router
}

func postClassify(router *gin.Engine, body map[string]interface{}, clientAddress string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/classify-waste", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", clientAddress)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("malformed error body: %v", err)
	}
	return body["error"]
}

func validImageData() string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0xFF, 0xD8, 0xFF, 0xE0}, 256))
}

const goodReply = `[{"item":"Plastic Bottle","category":"Recyclable","disposal":"Rinse and place in the dry waste bin.","binColor":"Blue","confidence":92}]`

func TestClassifyValidImage(t *testing.T) {
	validBinColors := map[string]bool{"Blue": true, "Green": true, "Red": true, "Yellow": true, "Black": true}

	client := &mockLLM{reply: goodReply}
	router := newClassifyRouter(client)

	w := postClassify(router, map[string]interface{}{
		"imageBase64": validImageData(),
		"language":    "Hindi",
	}, "203.0.113.7")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}

	var resp models.ClassifyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Predictions) == 0 {
		t.Fatal("expected at least one prediction")
	}
	for _, p := range resp.Predictions {
		if p.Item == "" || p.Category == "" || p.Disposal == "" {
			t.Errorf("prediction has empty fields: %+v", p)
		}
		if !validBinColors[p.BinColor] {
			t.Errorf("binColor %q is not one of the five bins", p.BinColor)
		}
		if p.Confidence < 0 || p.Confidence > 100 {
			t.Errorf("confidence %v out of range", p.Confidence)
		}
	}
	if client.callCount() != 1 {
		t.Errorf("model calls = %d, want 1", client.callCount())
	}
}

func TestClassifyDefaultsToEnglish(t *testing.T) {
	client := &mockLLM{reply: goodReply}
	router := newClassifyRouter(client)

	w := postClassify(router, map[string]interface{}{
		"imageBase64": validImageData(),
	}, "203.0.113.8")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
}

func TestClassifyUnknownLanguage(t *testing.T) {
	client := &mockLLM{reply: goodReply}
	router := newClassifyRouter(client)

	w := postClassify(router, map[string]interface{}{
		"imageBase64": validImageData(),
		"language":    "Klingon",
	}, "203.0.113.9")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := errorMessage(t, w); got != "Invalid language selection." {
		t.Errorf("error = %q", got)
	}
	if client.callCount() != 0 {
		t.Errorf("model calls = %d, want 0 for rejected language", client.callCount())
	}
}

func TestClassifyInvalidImage(t *testing.T) {
	client := &mockLLM{reply: goodReply}
	router := newClassifyRouter(client)

	for _, imageData := range []string{
		"data:image/svg+xml;base64,PHN2Zz48L3N2Zz4=",
		"not an image at all",
		"",
	} {
		w := postClassify(router, map[string]interface{}{
			"imageBase64": imageData,
			"language":    "English",
		}, "203.0.113.10")

		if w.Code != http.StatusBadRequest {
			t.Errorf("imageBase64 %.30q: status = %d, want 400", imageData, w.Code)
		}
	}
	if client.callCount() != 0 {
		t.Errorf("model calls = %d, want 0 for rejected images", client.callCount())
	}
}

func TestClassifyRateLimit(t *testing.T) {
	client := &mockLLM{reply: goodReply}
	router := newClassifyRouter(client)

	body := map[string]interface{}{
		"imageBase64": validImageData(),
		"language":    "English",
	}

	for i := 1; i <= 5; i++ {
		w := postClassify(router, body, "198.51.100.1")
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}

	w := postClassify(router, body, "198.51.100.1")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("request 6: status = %d, want 429", w.Code)
	}
	if got := errorMessage(t, w); got != "Rate limit exceeded. Please try again in a minute." {
		t.Errorf("error = %q", got)
	}
	if client.callCount() != 5 {
		t.Errorf("model calls = %d, want 5", client.callCount())
	}

	// A different address is not affected.
	w = postClassify(router, body, "198.51.100.2")
	if w.Code != http.StatusOK {
		t.Errorf("other client: status = %d, want 200", w.Code)
	}
}

func TestClassifyConversationalReply(t *testing.T) {
	reply := "Sure! I took a close look at your photo and here is what I found:\n" +
		`[{"item":"Banana Peel","category":"Organic/Wet Waste","disposal":"Compost or place in the wet waste bin.","binColor":"Green","confidence":97}]` +
		"\nLet me know if you need anything else."

	client := &mockLLM{reply: reply}
	router := newClassifyRouter(client)

	w := postClassify(router, map[string]interface{}{
		"imageBase64": validImageData(),
		"language":    "English",
	}, "203.0.113.11")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}

	var resp models.ClassifyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := models.PredictionItem{
		Item:       "Banana Peel",
		Category:   "Organic/Wet Waste",
		Disposal:   "Compost or place in the wet waste bin.",
		BinColor:   "Green",
		Confidence: 97,
	}
	if len(resp.Predictions) != 1 || resp.Predictions[0] != want {
		t.Errorf("predictions = %+v, want exactly %+v", resp.Predictions, want)
	}
}

func TestClassifyUpstreamErrors(t *testing.T) {
	testCases := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "model rate limited",
			err:         llm.ErrRateLimited,
			wantStatus:  http.StatusTooManyRequests,
			wantMessage: "Too many requests. Please try again in a moment.",
		},
		{
			name:        "model payment required",
			err:         llm.ErrUnavailable,
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: "Service temporarily unavailable.",
		},
		{
			name:        "model transport failure",
			err:         errors.New("connection reset by upstream-proxy-17"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Unable to process image. Please try again.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := &mockLLM{err: tc.err}
			router := newClassifyRouter(client)

			w := postClassify(router, map[string]interface{}{
				"imageBase64": validImageData(),
				"language":    "English",
			}, "203.0.113.12")

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			if got := errorMessage(t, w); got != tc.wantMessage {
				t.Errorf("error = %q, want %q", got, tc.wantMessage)
			}
			if strings.Contains(w.Body.String(), "upstream-proxy-17") {
				t.Error("response leaked upstream error detail")
			}
		})
	}
}

func TestClassifyMalformedReply(t *testing.T) {
	client := &mockLLM{reply: "I could not find any recognizable items in this photo."}
	router := newClassifyRouter(client)

	w := postClassify(router, map[string]interface{}{
		"imageBase64": validImageData(),
		"language":    "English",
	}, "203.0.113.13")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if got := errorMessage(t, w); got != "Unable to process AI response. Please try again." {
		t.Errorf("error = %q", got)
	}
}

func TestClassifyBadRequestBody(t *testing.T) {
	router := newClassifyRouter(&mockLLM{reply: goodReply})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/classify-waste", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := errorMessage(t, w); got != "Invalid request body." {
		t.Errorf("error = %q", got)
	}
}

func TestHealthCheck(t *testing.T) {
	router := newClassifyRouter(&mockLLM{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", body["status"])
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newClassifyRouter(&mockLLM{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/classify-waste", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "content-type") {
		t.Errorf("Access-Control-Allow-Headers = %q, missing content-type", got)
	}
}

func TestGetRecyclingCenters(t *testing.T) {
	router := newClassifyRouter(&mockLLM{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recycling-centers?state=Karnataka", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Centers []centers.Center `json:"centers"`
		States  []string         `json:"states"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Centers) == 0 {
		t.Fatal("expected Karnataka centers")
	}
	for _, center := range body.Centers {
		if center.State != "Karnataka" {
			t.Errorf("center %q has state %q", center.Name, center.State)
		}
	}
	if len(body.States) == 0 {
		t.Error("expected a non-empty state list")
	}
}

func TestPredictionRoundTrip(t *testing.T) {
	original := models.ClassifyResponse{
		Predictions: []models.PredictionItem{
			{Item: "CFL Bulb", Category: "Hazardous", Disposal: "Hand over at a hazardous waste collection point.", BinColor: "Red", Confidence: 88.5},
			{Item: "Newspaper", Category: "Recyclable", Disposal: "Bundle and place in the dry waste bin.", BinColor: "Blue", Confidence: 100},
		},
	}

	payload, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{`"item"`, `"category"`, `"disposal"`, `"binColor"`, `"confidence"`} {
		if !bytes.Contains(payload, []byte(field)) {
			t.Errorf("encoded payload missing %s field", field)
		}
	}

	var decoded models.ClassifyResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fmt.Sprintf("%+v", decoded) != fmt.Sprintf("%+v", original) {
		t.Errorf("round trip changed value: %+v != %+v", decoded, original)
	}
}
