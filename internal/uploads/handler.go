package uploads

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sharaspot/backend/pkg/storage"
)

// uploadTTL is how long a presigned upload URL stays valid.
const uploadTTL = 15 * time.Minute

// extensions maps accepted photo content types to object key extensions.
var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Handler issues presigned URLs for verification photos.
type Handler struct {
	store  storage.PhotoStore
	logger *zap.Logger
}

// NewHandler creates a new uploads handler.
func NewHandler(store storage.PhotoStore, logger *zap.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes registers upload routes; all require auth.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.POST("/uploads/photo", authMW, h.presignPhoto)
}

// PresignRequest is the presign endpoint payload.
type PresignRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// presignPhoto handles POST /api/uploads/photo. The client PUTs the image to
// upload_url and submits photo_url with its verification.
func (h *Handler) presignPhoto(c *gin.Context) {
	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	ext, ok := extensions[req.ContentType]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "content_type must be image/jpeg, image/png or image/webp"})
		return
	}

	key := fmt.Sprintf("verification-photos/%s.%s", uuid.New().String(), ext)
	uploadURL, err := h.store.PresignPut(c.Request.Context(), key, req.ContentType, uploadTTL)
	if err != nil {
		h.logger.Error("Failed to presign photo upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to prepare upload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": uploadURL,
		"photo_url":  h.store.ObjectURL(key),
		"expires_at": time.Now().Add(uploadTTL),
	})
}
