package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jophkins/lastshoot/internal/models"
	"github.com/Jophkins/lastshoot/internal/services"
)

// CommitPhoto creates the durable photo record once the orchestrator has
// finished all three direct storage writes. The keys' existence in storage
// is the caller's precondition, not verified here. The response is a
// public-safe projection only, no keys, URLs, or credentials.
func CommitPhoto(c *gin.Context) {
	var req models.CommitPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	now := time.Now().UTC()
	photo := models.Photo{
		ID:          uuid.New().String(),
		OriginalKey: req.OriginalKey,
		PreviewKey:  req.PreviewKey,
		ThumbKey:    req.ThumbKey,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
		CameraMake:  req.CameraMake,
		CameraModel: req.CameraModel,
		LensModel:   req.LensModel,
		FocalLength: req.FocalLength,
		Aperture:    req.Aperture,
		Shutter:     req.Shutter,
		ISO:         req.ISO,
		TakenAt:     req.TakenAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if photo.Tags == nil {
		photo.Tags = []string{}
	}

	if err := services.SavePhoto(photo); err != nil {
		logger.Error("failed to save photo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
		return
	}

	if err := services.PublishEvent(services.SubjectPhotoCommitted, map[string]interface{}{
		"photo_id":     photo.ID,
		"is_published": photo.IsPublished,
		"committed_at": now.Format(time.RFC3339),
	}); err != nil {
		logger.Warn("failed to publish photos.committed event", zap.Error(err))
	}

	c.JSON(http.StatusCreated, models.CommitPhotoResponse{
		ID:          photo.ID,
		IsPublished: photo.IsPublished,
		CreatedAt:   photo.CreatedAt,
	})
}
