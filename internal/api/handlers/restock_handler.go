package handlers

import (
	"context"
	"net/http"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/service"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/sweep"
	"github.com/gin-gonic/gin"
)

type RestockHandler struct {
	service *service.RestockService
	sweep   *sweep.Sweep
}

func NewRestockHandler(service *service.RestockService, sw *sweep.Sweep) *RestockHandler {
	return &RestockHandler{service: service, sweep: sw}
}

type createRequestBody struct {
	ItemID   int64  `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	Priority string `json:"priority"`
}

type transitionBody struct {
	Comments string `json:"comments"`
}

// Create files a manual restock request. The duplicate-open-request guard
// applies the same as in the automatic path and surfaces as 409.
func (h *RestockHandler) Create(c *gin.Context) {
	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req, err := h.service.CreateManual(c.Request.Context(), body.ItemID, body.Quantity, body.Priority)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, req)
}

func (h *RestockHandler) Get(c *gin.Context) {
	req, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

func (h *RestockHandler) List(c *gin.Context) {
	requests, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests, "count": len(requests)})
}

func (h *RestockHandler) Approve(c *gin.Context) {
	h.transition(c, h.service.Approve)
}

func (h *RestockHandler) Decline(c *gin.Context) {
	h.transition(c, h.service.Decline)
}

func (h *RestockHandler) Fulfill(c *gin.Context) {
	req, err := h.service.Fulfill(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

// AutoRestockCheck runs a sweep over the whole catalog. dry_run=true
// previews what would be created without touching the ledger.
func (h *RestockHandler) AutoRestockCheck(c *gin.Context) {
	dryRun := c.Query("dry_run") == "true"

	result, err := h.sweep.Run(c.Request.Context(), !dryRun)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if dryRun || len(result.Created) == 0 {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"dry_run": dryRun,
		"created": result.Created,
		"skipped": result.Skipped,
	})
}

func (h *RestockHandler) transition(c *gin.Context, fn func(ctx context.Context, id, comment string) (*domain.RestockRequest, error)) {
	var body transitionBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	req, err := fn(c.Request.Context(), c.Param("id"), body.Comments)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}
