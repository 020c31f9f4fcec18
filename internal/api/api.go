package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/api/handlers"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/api/middleware"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/service"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/sweep"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/triage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Inventory *service.InventoryService
	Restock   *service.RestockService
	Sweep     *sweep.Sweep
	Triage    *triage.Client
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Inventory != nil {
			inventoryHandler := handlers.NewInventoryHandler(services.Inventory)
			inventoryGroup := apiGroup.Group("/inventory")
			{
				inventoryGroup.POST("/items", inventoryHandler.CreateItem)
				inventoryGroup.GET("/items", inventoryHandler.ListItems)
				inventoryGroup.GET("/items/:id", inventoryHandler.GetItem)
				inventoryGroup.PUT("/items/:id", inventoryHandler.UpdateItem)
				inventoryGroup.POST("/update-stock", inventoryHandler.UpdateStock)
				inventoryGroup.GET("/low-stock", inventoryHandler.LowStock)
			}

			if services.Restock != nil && services.Sweep != nil {
				restockHandler := handlers.NewRestockHandler(services.Restock, services.Sweep)
				inventoryGroup.POST("/auto-restock-check", restockHandler.AutoRestockCheck)
				requestsGroup := inventoryGroup.Group("/restock-requests")
				{
					requestsGroup.POST("", restockHandler.Create)
					requestsGroup.GET("", restockHandler.List)
					requestsGroup.GET("/:id", restockHandler.Get)
					requestsGroup.POST("/:id/approve", restockHandler.Approve)
					requestsGroup.POST("/:id/decline", restockHandler.Decline)
					requestsGroup.POST("/:id/fulfill", restockHandler.Fulfill)
				}
			}
		}

		if services.Triage != nil {
			triageHandler := handlers.NewTriageHandler(services.Triage)
			apiGroup.GET("/triage/:patient_id", triageHandler.Assess)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}

	return parsed, allowAll
}
