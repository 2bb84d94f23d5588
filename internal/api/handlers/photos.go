package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jophkins/lastshoot/internal/models"
	"github.com/Jophkins/lastshoot/internal/services"
)

// ListPhotos is the admin list: all photos including drafts and
// soft-deleted ones, keyset-paginated newest first.
func ListPhotos(c *gin.Context) {
	cursor := c.Query("cursor")
	filter := c.DefaultQuery("filter", "all")

	photos, err := services.ListPhotosPage(filter, cursor, adminPageSize+1)
	if err != nil {
		logger.Error("failed to list photos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list photos"})
		return
	}

	hasNext := len(photos) > adminPageSize
	if hasNext {
		photos = photos[:adminPageSize]
	}

	page := models.AdminPhotoPage{Photos: make([]models.AdminPhoto, 0, len(photos))}
	for _, p := range photos {
		page.Photos = append(page.Photos, models.AdminPhoto{
			ID:          p.ID,
			ThumbURL:    publicURL(p.ThumbKey),
			Title:       p.Title,
			IsPublished: p.IsPublished,
			DeletedAt:   p.DeletedAt,
			CreatedAt:   p.CreatedAt,
		})
	}
	if hasNext {
		last := page.Photos[len(page.Photos)-1].ID
		page.NextCursor = &last
	}

	c.JSON(http.StatusOK, page)
}

// UpdatePhoto applies a partial metadata edit, including the publish
// toggle.
func UpdatePhoto(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	photo, err := services.UpdatePhoto(id, req)
	if err != nil {
		if errors.Is(err, services.ErrPhotoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
			return
		}
		logger.Error("failed to update photo", zap.String("photo_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update photo"})
		return
	}

	if err := services.PublishEvent(services.SubjectPhotoUpdated, map[string]interface{}{
		"photo_id":     photo.ID,
		"is_published": photo.IsPublished,
		"updated_at":   photo.UpdatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		logger.Warn("failed to publish photos.updated event", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          photo.ID,
		"isPublished": photo.IsPublished,
		"updatedAt":   photo.UpdatedAt,
	})
}

// DeletePhoto soft-deletes: it stamps deleted_at and nothing else. The
// stored objects and the row survive for restore.
func DeletePhoto(c *gin.Context) {
	id := c.Param("id")

	if err := services.SoftDeletePhoto(id); err != nil {
		if errors.Is(err, services.ErrPhotoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
			return
		}
		logger.Error("failed to delete photo", zap.String("photo_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete photo"})
		return
	}

	if err := services.PublishEvent(services.SubjectPhotoDeleted, map[string]interface{}{"photo_id": id}); err != nil {
		logger.Warn("failed to publish photos.deleted event", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RestorePhoto clears deleted_at; the prior publish state decides whether
// the photo reappears as draft or published.
func RestorePhoto(c *gin.Context) {
	id := c.Param("id")

	if err := services.RestorePhoto(id); err != nil {
		if errors.Is(err, services.ErrPhotoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
			return
		}
		logger.Error("failed to restore photo", zap.String("photo_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore photo"})
		return
	}

	if err := services.PublishEvent(services.SubjectPhotoRestored, map[string]interface{}{"photo_id": id}); err != nil {
		logger.Warn("failed to publish photos.restored event", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
