package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Показания устройств принимаются без ключа, устройство опознается по MAC
	api.POST("/devices/data", h.ingestDeviceData)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))

	// Маршруты для работы с тревогами
	alerts := protected.Group("/alerts")
	{
		alerts.POST("", h.createAlert)
		alerts.GET("", h.listAlerts)
		alerts.POST("/reconcile", h.reconcileAlerts)
		alerts.GET("/:id", h.getAlert)
		alerts.PATCH("/:id/status", h.updateAlertStatus)
	}

	// Маршруты для поиска станций
	stations := protected.Group("/stations")
	{
		stations.GET("/nearest", h.nearestStation)
		stations.GET("/nearby", h.nearbyStations)
		stations.GET("/:id/coverage", h.stationCoverage)
	}
}
