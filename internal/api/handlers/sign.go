package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jophkins/lastshoot/internal/keys"
	"github.com/Jophkins/lastshoot/internal/models"
	"github.com/Jophkins/lastshoot/internal/services"
)

// SignUploads issues presigned PUT URLs for a batch of variants. One uuid
// is minted per request and shared by every key it signs: the orchestrator
// sends the three variants of one source file per request, so that uuid is
// the file's batch identity and concurrent files never collide.
func SignUploads(c *gin.Context) {
	var req models.SignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	minioService := services.GetMinioService()
	if minioService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage service not available"})
		return
	}

	batchID := uuid.New().String()
	items := make([]models.SignedUploadItem, 0, len(req.Files))

	for _, file := range req.Files {
		key := keys.Build(file.Variant, batchID, keys.ExtFromFilename(file.Filename))

		url, err := minioService.PresignPut(c.Request.Context(), key, file.ContentType)
		if err != nil {
			logger.Error("failed to presign upload", zap.String("key", key), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign upload"})
			return
		}

		items = append(items, models.SignedUploadItem{
			Variant: file.Variant,
			Key:     key,
			URL:     url,
		})
	}

	c.JSON(http.StatusOK, models.SignUploadResponse{Items: items})
}
