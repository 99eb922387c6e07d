package handler

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/transmovil-cr/service-routes/internal/application"
	"github.com/transmovil-cr/service-routes/internal/domain/transit"
	"github.com/transmovil-cr/service-routes/internal/response"
)

// Page chrome.
const (
	pageTitle    = "TransMovil CR - Rutas de transporte"
	pageCaption  = "Aplicación interactiva para visualizar rutas, velocidades y congestión."
	loadedStatus = "Los datos de rutas fueron cargados correctamente"
)

// DashboardHandler serves the dashboard pages and its JSON API.
type DashboardHandler struct {
	service *application.DashboardService
	logger  *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service *application.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, logger: logger}
}

// RegisterRoutes registers the dashboard pages and API routes.
func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Index)
	r.GET("/charts/speed", h.SpeedChart)
	r.GET("/map", h.Map)

	api := r.Group("/api/v1/routes")
	{
		api.GET("", h.GetView)
		api.GET("/options", h.GetOptions)
	}
}

type option struct {
	Value    string
	Selected bool
}

type indexPage struct {
	Title         string
	Caption       string
	Status        string
	View          transit.DashboardView
	TypeOptions   []option
	RegionOptions []option
	ChartURL      template.URL
	MapURL        template.URL
}

// Index handles GET /.
func (h *DashboardHandler) Index(c *gin.Context) {
	view, err := h.service.Render(c.Request.Context(), parseFilterState(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	query := encodeFilterState(view.Selection)
	c.HTML(http.StatusOK, "dashboard.html", indexPage{
		Title:         pageTitle,
		Caption:       pageCaption,
		Status:        loadedStatus,
		View:          view,
		TypeOptions:   options(view.Options.Types, view.Selection.Types),
		RegionOptions: options(view.Options.Regions, view.Selection.Regions),
		ChartURL:      template.URL("charts/speed?" + query),
		MapURL:        template.URL("map?" + query),
	})
}

// SpeedChart handles GET /charts/speed.
func (h *DashboardHandler) SpeedChart(c *gin.Context) {
	view, err := h.service.Render(c.Request.Context(), parseFilterState(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := newSpeedChart(view.SpeedByType).Render(c.Writer); err != nil {
		h.logger.Error("failed to render speed chart", zap.Error(err))
	}
}

type mapPage struct {
	Title   string
	Map     *transit.MapView
	Warning string
}

// Map handles GET /map.
func (h *DashboardHandler) Map(c *gin.Context) {
	view, err := h.service.Render(c.Request.Context(), parseFilterState(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "map.html", mapPage{
		Title:   "Mapa interactivo de rutas y puntos de congestión",
		Map:     view.Map,
		Warning: view.Warning,
	})
}

// GetView handles GET /api/v1/routes.
func (h *DashboardHandler) GetView(c *gin.Context) {
	view, err := h.service.Render(c.Request.Context(), parseFilterState(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// GetOptions handles GET /api/v1/routes/options.
func (h *DashboardHandler) GetOptions(c *gin.Context) {
	opts, err := h.service.Options(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, opts)
}

func (h *DashboardHandler) renderError(c *gin.Context, err error) {
	status, code := response.StatusFor(err)
	h.logger.Error("dashboard render failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("code", code),
		zap.Error(err),
	)
	c.HTML(status, "error.html", gin.H{
		"Title":   pageTitle,
		"Code":    code,
		"Message": err.Error(),
	})
}

func options(all, selected []string) []option {
	set := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		set[s] = struct{}{}
	}
	out := make([]option, 0, len(all))
	for _, v := range all {
		_, ok := set[v]
		out = append(out, option{Value: v, Selected: ok})
	}
	return out
}
