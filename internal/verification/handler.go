package verification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sharaspot/backend/internal/auth"
	"sharaspot/backend/internal/chargers"
)

// Handler handles HTTP requests for charger verification.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new verification handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers verification routes under the charger group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.POST("/chargers/:id/verify", authMW, h.verify)
	router.GET("/chargers/:id/verifications", h.recent)
	router.GET("/chargers/:id/verify/steps", h.steps)
	router.GET("/verifications/mine", authMW, h.mine)
}

// verify handles POST /api/chargers/:id/verify
func (h *Handler) verify(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
		return
	}

	chargerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid charger ID"})
		return
	}

	var sub Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	result, err := h.service.Submit(c.Request.Context(), userID, chargerID, &sub)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSubmission):
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		case errors.Is(err, chargers.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
		default:
			h.logger.Error("Failed to process verification",
				zap.Error(err),
				zap.String("charger_id", chargerID.String()))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to process verification"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// recent handles GET /api/chargers/:id/verifications
func (h *Handler) recent(c *gin.Context) {
	chargerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid charger ID"})
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	records, err := h.service.Recent(c.Request.Context(), chargerID, limit)
	if err != nil {
		h.logger.Error("Failed to list verifications", zap.Error(err), zap.String("charger_id", chargerID.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list verifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"verifications": records})
}

// mine handles GET /api/verifications/mine
func (h *Handler) mine(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
		return
	}

	count, err := h.service.ContributionCount(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to count verifications", zap.Error(err), zap.String("user_id", userID.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to count verifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// steps handles GET /api/chargers/:id/verify/steps. The client owns the
// wizard, but it asks the server for the canonical sequence so both sides
// agree on the branch rules.
func (h *Handler) steps(c *gin.Context) {
	action := Action(c.Query("action"))
	switch action {
	case ActionActive, ActionNotWorking, ActionPartial:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "action must be one of active, not_working, partial"})
		return
	}

	steps := StepsFor(action)
	c.JSON(http.StatusOK, gin.H{
		"action": action,
		"steps":  steps,
		"total":  len(steps),
	})
}
