package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"ecosort-service/database"
	"ecosort-service/metrics"
	"ecosort-service/models"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// SubmitFeedback records a user's verdict on a prediction. Anonymous
// submissions are allowed; the user id is attached when a valid token was sent.
func (h *Handlers) SubmitFeedback(c *gin.Context) {
	var req models.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback submission."})
		return
	}

	submission := models.FeedbackSubmission{
		ItemName:           req.Item.Item,
		OriginalCategory:   req.Item.Category,
		OriginalBinColor:   req.Item.BinColor,
		OriginalConfidence: req.Item.Confidence,
		FeedbackType:       req.FeedbackType,
		UploadHistoryID:    req.UploadHistoryID,
	}
	if req.Description != "" {
		submission.Description = &req.Description
	}
	if userID, ok := c.Get("user_id"); ok {
		id := userID.(string)
		submission.UserID = &id
	}

	id, err := h.db.InsertFeedback(submission)
	if err != nil {
		log.WithError(err).Error("Failed to store feedback")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback."})
		return
	}

	metrics.FeedbackTotal.WithLabelValues(req.FeedbackType).Inc()
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PendingFeedback lists unreviewed negative feedback for the admin screen.
func (h *Handlers) PendingFeedback(c *gin.Context) {
	submissions, err := h.db.PendingFeedback()
	if err != nil {
		log.WithError(err).Error("Failed to list pending feedback")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feedback."})
		return
	}
	if submissions == nil {
		submissions = []models.FeedbackSubmission{}
	}
	c.JSON(http.StatusOK, gin.H{"feedback": submissions})
}

// ApproveFeedback marks a submission approved and creates the learned
// correction that will bias future classification prompts.
func (h *Handlers) ApproveFeedback(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback id."})
		return
	}

	var req models.ApproveFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid approval request."})
		return
	}

	feedback, err := h.db.GetFeedback(id)
	if err != nil {
		if errors.Is(err, database.ErrFeedbackNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found."})
			return
		}
		log.WithError(err).Error("Failed to fetch feedback")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feedback."})
		return
	}

	var adminNotes *string
	if req.AdminNotes != "" {
		adminNotes = &req.AdminNotes
	}
	if err := h.db.ReviewFeedback(id, "approved", adminNotes); err != nil {
		if errors.Is(err, database.ErrFeedbackNotFound) {
			c.JSON(http.StatusConflict, gin.H{"error": "Feedback already reviewed."})
			return
		}
		log.WithError(err).Error("Failed to approve feedback")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve feedback."})
		return
	}

	correction := models.LearnedCorrection{
		FeedbackID:        id,
		ItemName:          feedback.ItemName,
		OriginalCategory:  feedback.OriginalCategory,
		CorrectionDetails: feedback.Description,
	}
	if req.CorrectedCategory != "" {
		correction.CorrectedCategory = &req.CorrectedCategory
	}
	if req.CorrectedBinColor != "" {
		correction.CorrectedBinColor = &req.CorrectedBinColor
	}

	correctionID, err := h.db.InsertCorrection(correction)
	if err != nil {
		log.WithError(err).Error("Failed to insert learned correction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save correction."})
		return
	}

	if h.publisher != nil {
		event := models.CorrectionEvent{
			ItemName:          correction.ItemName,
			OriginalCategory:  correction.OriginalCategory,
			CorrectedCategory: correction.CorrectedCategory,
			Timestamp:         time.Now(),
		}
		if err := h.publisher.PublishWithRoutingKey(h.correctionRoutingKey, event); err != nil {
			log.WithError(err).Warn("Failed to publish correction event")
		}
	}

	c.JSON(http.StatusOK, gin.H{"correction_id": correctionID})
}

// DenyFeedback marks a submission denied without creating a correction.
func (h *Handlers) DenyFeedback(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback id."})
		return
	}

	var req models.ReviewFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review request."})
		return
	}

	var adminNotes *string
	if req.AdminNotes != "" {
		adminNotes = &req.AdminNotes
	}
	if err := h.db.ReviewFeedback(id, "denied", adminNotes); err != nil {
		if errors.Is(err, database.ErrFeedbackNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found or already reviewed."})
			return
		}
		log.WithError(err).Error("Failed to deny feedback")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deny feedback."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "denied"})
}

// ListCorrections returns all learned corrections for the admin screen.
func (h *Handlers) ListCorrections(c *gin.Context) {
	corrections, err := h.db.ListCorrections()
	if err != nil {
		log.WithError(err).Error("Failed to list corrections")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load corrections."})
		return
	}
	if corrections == nil {
		corrections = []models.LearnedCorrection{}
	}
	c.JSON(http.StatusOK, gin.H{"corrections": corrections})
}
