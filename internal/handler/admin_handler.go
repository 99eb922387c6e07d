package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/transmovil-cr/service-routes/internal/application"
	"github.com/transmovil-cr/service-routes/internal/middleware"
	"github.com/transmovil-cr/service-routes/internal/response"
)

// AdminHandler handles operational requests against the dashboard dataset.
type AdminHandler struct {
	service *application.DashboardService
	logger  *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *application.DashboardService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{service: service, logger: logger}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/api/v1/admin")
	{
		admin.POST("/cache/clear", h.ClearCache)
		admin.GET("/dataset", h.Dataset)
	}
}

// ClearCache handles POST /api/v1/admin/cache/clear.
func (h *AdminHandler) ClearCache(c *gin.Context) {
	h.service.ClearCache()
	h.logger.Info("routes cache cleared by request", zap.String("request_id", middleware.GetRequestID(c)))
	response.Success(c, gin.H{"cleared": true})
}

// Dataset handles GET /api/v1/admin/dataset.
func (h *AdminHandler) Dataset(c *gin.Context) {
	routes, err := h.service.Load(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"path": h.service.Path(),
		"rows": len(routes),
	})
}
