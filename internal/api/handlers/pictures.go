package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jophkins/lastshoot/internal/models"
	"github.com/Jophkins/lastshoot/internal/services"
)

// ListPictures is the public gallery feed. Only published, non-deleted
// photos appear, and only through their public derivative URLs. Original
// keys never leave the server.
func ListPictures(c *gin.Context) {
	cursor := c.Query("cursor")

	photos, err := services.ListPublishedPage(cursor, galleryPageSize+1)
	if err != nil {
		logger.Error("failed to list pictures", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pictures"})
		return
	}

	hasNext := len(photos) > galleryPageSize
	if hasNext {
		photos = photos[:galleryPageSize]
	}

	page := models.PicturePage{Pictures: make([]models.Picture, 0, len(photos))}
	for _, p := range photos {
		page.Pictures = append(page.Pictures, models.Picture{
			ID:  p.ID,
			URL: publicURL(p.PreviewKey),
			Alt: p.Title,
		})
	}
	if hasNext {
		last := page.Pictures[len(page.Pictures)-1].ID
		page.NextCursor = &last
	}

	c.JSON(http.StatusOK, page)
}
