package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sarkop/opname/internal/api/handlers"
	"github.com/sarkop/opname/internal/api/middleware"
	"github.com/sarkop/opname/internal/service"
)

func NewRouter(stockService *service.StockService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalized, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalized) > 0 {
			corsConfig.AllowOrigins = normalized
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		stockHandler := handlers.NewStockHandler(stockService)
		stockGroup := v1.Group("/stock")
		{
			stockGroup.GET("/current", stockHandler.GetCurrentStock)
			stockGroup.GET("/current/pdf", stockHandler.GetCurrentStockPDF)
			stockGroup.GET("/current/xlsx", stockHandler.GetCurrentStockXLSX)
			stockGroup.GET("/vendors/messages", stockHandler.GetVendorMessages)
			stockGroup.GET("/suppliers", stockHandler.GetSuppliers)
		}
		v1.POST("/cache/refresh", stockHandler.RefreshCache)

		reportHandler := handlers.NewReportHandler(stockService)
		reportGroup := v1.Group("/report")
		{
			reportGroup.GET("", reportHandler.GetReport)
			reportGroup.GET("/rows", reportHandler.GetReportRows)
			reportGroup.GET("/pdf", reportHandler.GetReportPDF)
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
		for _, part := range strings.Split(origin, ",") {
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
