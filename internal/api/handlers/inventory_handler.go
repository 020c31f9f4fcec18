package handlers

import (
	"net/http"
	"strconv"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/service"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

type createItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Unit         string  `json:"unit"`
	CurrentStock int     `json:"current_stock"`
	DailyUsage   float64 `json:"daily_usage"`
}

type updateItemRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Unit         *string  `json:"unit"`
	CurrentStock *int     `json:"current_stock"`
	DailyUsage   *float64 `json:"daily_usage"`
}

type stockUpdateRequest struct {
	Updates []domain.StockUpdate `json:"updates" binding:"required"`
}

// CreateItem handles catalog intake.
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), domain.Item{
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		DailyUsage:   req.DailyUsage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), id, service.UpdateItemInput{
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		DailyUsage:   req.DailyUsage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateStock records a batch of consumption entries from the daily usage
// form. An entry that would drive stock negative rejects the whole batch
// with 400 and applies nothing.
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	var req stockUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	items, err := h.service.RecordConsumption(c.Request.Context(), req.Updates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "stock levels updated",
		"items":   items,
	})
}

// LowStock returns items at or below the threshold_days query parameter.
func (h *InventoryHandler) LowStock(c *gin.Context) {
	threshold := service.DefaultLowStockThresholdDays
	if raw := c.Query("threshold_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "threshold_days must be a positive integer"})
			return
		}
		threshold = parsed
	}

	items, err := h.service.LowStock(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"threshold_days": threshold,
		"items":          items,
		"count":          len(items),
	})
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
