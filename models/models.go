package models

import "time"

// PredictionItem is a single classified waste item returned to the client.
// Field names match the wire format consumed by the web client.
type PredictionItem struct {
	Item       string  `json:"item"`
	Category   string  `json:"category"`
	Disposal   string  `json:"disposal"`
	BinColor   string  `json:"binColor"`
	Confidence float64 `json:"confidence"`
}

// ClassifyRequest is the body of POST /api/v1/classify-waste.
// Language defaults to "English" when omitted.
type ClassifyRequest struct {
	ImageBase64 string `json:"imageBase64"`
	Language    string `json:"language"`
}

// ClassifyResponse wraps the prediction list on success.
type ClassifyResponse struct {
	Predictions []PredictionItem `json:"predictions"`
}

// LearnedCorrection is an admin-approved override that biases future
// classification prompts for a specific item name.
type LearnedCorrection struct {
	ID                int64     `json:"id"`
	FeedbackID        int64     `json:"feedback_id"`
	ItemName          string    `json:"item_name"`
	OriginalCategory  string    `json:"original_category"`
	CorrectedCategory *string   `json:"corrected_category"`
	CorrectedBinColor *string   `json:"corrected_bin_color"`
	CorrectionDetails *string   `json:"correction_details"`
	CreatedAt         time.Time `json:"created_at"`
}

// FeedbackSubmission is a user's verdict on a single prediction.
type FeedbackSubmission struct {
	ID                 int64      `json:"id"`
	UserID             *string    `json:"user_id"`
	UploadHistoryID    *int64     `json:"upload_history_id"`
	ItemName           string     `json:"item_name"`
	OriginalCategory   string     `json:"original_category"`
	OriginalBinColor   string     `json:"original_bin_color"`
	OriginalConfidence float64    `json:"original_confidence"`
	FeedbackType       string     `json:"feedback_type"`
	Description        *string    `json:"description"`
	Status             string     `json:"status"`
	AdminNotes         *string    `json:"admin_notes"`
	ReviewedAt         *time.Time `json:"reviewed_at"`
	CreatedAt          time.Time  `json:"created_at"`
}

// SubmitFeedbackRequest is the body of POST /api/v1/feedback.
type SubmitFeedbackRequest struct {
	Item            PredictionItem `json:"item" binding:"required"`
	FeedbackType    string         `json:"feedback_type" binding:"required,oneof=yes no not_sure"`
	Description     string         `json:"description"`
	UploadHistoryID *int64         `json:"upload_history_id"`
}

// ApproveFeedbackRequest carries the admin's correction when approving feedback.
type ApproveFeedbackRequest struct {
	CorrectedCategory string `json:"corrected_category" binding:"omitempty,oneof=Recyclable 'Organic/Wet Waste' Hazardous E-Waste Non-Recyclable"`
	CorrectedBinColor string `json:"corrected_bin_color" binding:"omitempty,oneof=Blue Green Red Yellow Black"`
	AdminNotes        string `json:"admin_notes"`
}

// ReviewFeedbackRequest carries optional admin notes when denying feedback.
type ReviewFeedbackRequest struct {
	AdminNotes string `json:"admin_notes"`
}

// UploadHistoryEntry is a persisted classification with its source image.
type UploadHistoryEntry struct {
	ID          int64            `json:"id"`
	UserID      string           `json:"user_id"`
	Image       []byte           `json:"image,omitempty"`
	Predictions []PredictionItem `json:"predictions"`
	CreatedAt   time.Time        `json:"created_at"`
}

// SaveHistoryRequest is the body of POST /api/v1/history.
type SaveHistoryRequest struct {
	ImageBase64 string           `json:"imageBase64" binding:"required"`
	Predictions []PredictionItem `json:"predictions" binding:"required"`
}

// ClassificationEvent is published to RabbitMQ after a successful classification.
// It deliberately omits the image payload and the client address.
type ClassificationEvent struct {
	Language    string           `json:"language"`
	ItemCount   int              `json:"item_count"`
	Predictions []PredictionItem `json:"predictions"`
	Source      string           `json:"source"`
	Timestamp   time.Time        `json:"timestamp"`
}

// CorrectionEvent is published when an admin approves feedback.
type CorrectionEvent struct {
	ItemName          string    `json:"item_name"`
	OriginalCategory  string    `json:"original_category"`
	CorrectedCategory *string   `json:"corrected_category"`
	Timestamp         time.Time `json:"timestamp"`
}
