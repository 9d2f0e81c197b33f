package chargers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sharaspot/backend/internal/auth"
)

// Handler handles HTTP requests for the charger registry.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new charger handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers charger routes. Reads are public; adding a
// charger requires an account because it earns coins.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := router.Group("/chargers")
	{
		group.GET("", h.listChargers)
		group.GET("/nearby", h.nearby)
		group.GET("/:id", h.getCharger)
		group.POST("", authMW, h.createCharger)
	}
}

// createCharger handles POST /api/chargers
func (h *Handler) createCharger(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
		return
	}

	var req CreateChargerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	charger, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.logger.Error("Failed to create charger", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to create charger"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"charger":      charger,
		"coins_earned": AddChargerReward,
	})
}

// getCharger handles GET /api/chargers/:id
func (h *Handler) getCharger(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid charger ID"})
		return
	}

	charger, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
			return
		}
		h.logger.Error("Failed to get charger", zap.Error(err), zap.String("charger_id", id.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to load charger"})
		return
	}

	c.JSON(http.StatusOK, charger)
}

// listChargers handles GET /api/chargers
func (h *Handler) listChargers(c *gin.Context) {
	filters := &Filters{
		Page:     h.getIntParam(c, "page", 1),
		PageSize: h.getIntParam(c, "page_size", 20),
	}
	if status := c.Query("status"); status != "" {
		st := Status(status)
		filters.Status = &st
	}

	chargers, total, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("Failed to list chargers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list chargers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chargers":  chargers,
		"total":     total,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// nearby handles GET /api/chargers/nearby
func (h *Handler) nearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "lat and lng are required"})
		return
	}

	radius := 5.0
	if v := c.Query("radius_km"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			radius = r
		}
	}
	if radius <= 0 || radius > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "radius_km must be between 0 and 100"})
		return
	}

	results, err := h.service.Nearby(c.Request.Context(), NearbyQuery{
		Latitude:  lat,
		Longitude: lng,
		RadiusKM:  radius,
		Limit:     h.getIntParam(c, "limit", 50),
	})
	if err != nil {
		h.logger.Error("Failed to query nearby chargers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to query nearby chargers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chargers": results})
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
