package wallet

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sharaspot/backend/internal/auth"
)

// Handler handles HTTP requests for the wallet and leaderboard.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new wallet handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers wallet routes. The leaderboard is public; the
// wallet itself is per-user.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := router.Group("/wallet", authMW)
	{
		group.GET("", h.summary)
		group.GET("/transactions", h.transactions)
	}
	router.GET("/leaderboard", h.leaderboard)
}

// summary handles GET /api/wallet
func (h *Handler) summary(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load wallet summary", zap.Error(err), zap.String("user_id", userID.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to load wallet"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// transactions handles GET /api/wallet/transactions
func (h *Handler) transactions(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
		return
	}

	page := h.getIntParam(c, "page", 1)
	pageSize := h.getIntParam(c, "page_size", 20)

	txs, total, err := h.service.Transactions(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.logger.Error("Failed to list transactions", zap.Error(err), zap.String("user_id", userID.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": txs,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
	})
}

// leaderboard handles GET /api/leaderboard
func (h *Handler) leaderboard(c *gin.Context) {
	entries, err := h.service.Leaderboard(c.Request.Context(), h.getIntParam(c, "limit", 20))
	if err != nil {
		h.logger.Error("Failed to load leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to load leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// getIntParam gets an integer query parameter with a default value.
func (h *Handler) getIntParam(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
