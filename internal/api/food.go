package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrifast/backend/internal/service"
	"github.com/nutrifast/backend/internal/types"
)

type FoodHandler struct {
	foodService   *service.FoodService
	searchService *service.FoodSearchService
}

func NewFoodHandler(foodService *service.FoodService, searchService *service.FoodSearchService) *FoodHandler {
	return &FoodHandler{
		foodService:   foodService,
		searchService: searchService,
	}
}

func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup, logLimiter, searchLimiter gin.HandlerFunc) {
	foods := router.Group("/foods")
	{
		foods.POST("", logLimiter, h.CreateEntry)
		foods.GET("", h.ListEntries)
		foods.PUT("/:id", h.UpdateEntry)
		foods.DELETE("/:id", h.DeleteEntry)
		foods.GET("/summary", h.DailySummary)
		foods.GET("/search", searchLimiter, h.Search)
		foods.GET("/barcode/:code", searchLimiter, h.Barcode)
	}
}

// dayParam parses the optional ?date=YYYY-MM-DD query, defaulting to today.
func dayParam(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", raw)
}

func (h *FoodHandler) CreateEntry(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.CreateFoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.foodService.CreateEntry(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log food"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *FoodHandler) ListEntries(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	day, err := dayParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	entries, err := h.foodService.ListEntries(c.Request.Context(), userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list food entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *FoodHandler) UpdateEntry(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	var req types.CreateFoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.foodService.UpdateEntry(c.Request.Context(), userID, entryID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update food entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (h *FoodHandler) DeleteEntry(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	if err := h.foodService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete food entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "food entry deleted"})
}

// DailySummary aggregates one day's diary against the computed targets.
func (h *FoodHandler) DailySummary(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	day, err := dayParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	summary, err := h.foodService.DailySummary(c.Request.Context(), userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build daily summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *FoodHandler) Search(c *gin.Context) {
	if _, ok := userIDFrom(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	products, err := h.searchService.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "food database unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *FoodHandler) Barcode(c *gin.Context) {
	if _, ok := userIDFrom(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	product, err := h.searchService.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "food database unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}
