package handlers

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"

	"ecosort-service/models"
	"ecosort-service/validation"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

const historyPageSize = 100

// SaveHistory persists a classification result with its source image for the
// authenticated user.
func (h *Handlers) SaveHistory(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
		return
	}

	var req models.SaveHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid history entry."})
		return
	}

	if err := validation.ValidateImageData(req.ImageBase64); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image data. Please upload a valid image under 20MB."})
		return
	}

	payload := req.ImageBase64[strings.Index(req.ImageBase64, ",")+1:]
	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image data. Please upload a valid image under 20MB."})
		return
	}

	id, err := h.db.SaveUploadHistory(userID, image, req.Predictions)
	if err != nil {
		log.WithError(err).Error("Failed to save upload history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save history."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetHistory lists the authenticated user's saved classifications, without
// image payloads.
func (h *Handlers) GetHistory(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
		return
	}

	entries, err := h.db.UploadHistory(userID, historyPageSize)
	if err != nil {
		log.WithError(err).Error("Failed to load upload history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history."})
		return
	}
	if entries == nil {
		entries = []models.UploadHistoryEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// GetHistoryImage streams the stored image for one of the user's entries.
func (h *Handlers) GetHistoryImage(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid history id."})
		return
	}

	image, err := h.db.UploadHistoryImage(userID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "History entry not found."})
		return
	}

	c.Data(http.StatusOK, "image/jpeg", image)
}
