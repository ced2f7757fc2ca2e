package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	services Services
	logger   Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, logger Logger) *Handlers {
	return &Handlers{
		services: services,
		logger:   logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string            `json:"status"`
	Time       string            `json:"time"`
	Version    string            `json:"version"`
	Components map[string]string `json:"components,omitempty"`
}

// IDResponse is returned by create endpoints
type IDResponse struct {
	ID int64 `json:"id"`
}

// CreateMonthRequest is the body of POST /api/months
type CreateMonthRequest struct {
	MonthKey string `json:"month_key"`
	Label    string `json:"label"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().UTC().Format(time.RFC3339),
		Version: Version,
	}

	status := http.StatusOK
	if h.services.Health != nil {
		ok, components := h.services.Health(c.Request.Context())
		response.Components = components
		if !ok {
			response.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, response)
}

// ListMonths handles GET /api/months
func (h *Handlers) ListMonths(c *gin.Context) {
	months, err := h.services.Months.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, months)
}

// CreateMonth handles POST /api/months
func (h *Handlers) CreateMonth(c *gin.Context) {
	var req CreateMonthRequest
	if !bindJSON(c, &req) {
		return
	}

	month, err := h.services.Months.Create(c.Request.Context(), req.MonthKey, req.Label)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, IDResponse{ID: month.ID})
}

// ExportMonth handles GET /api/months/:id/export
func (h *Handlers) ExportMonth(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	// Render fully before writing so a failure can still become a JSON error
	var buf bytes.Buffer
	month, err := h.services.Export.ExportMonth(c.Request.Context(), id, &buf)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, h.services.Export.FileName(month)))
	c.Data(http.StatusOK, h.services.Export.ContentType(), buf.Bytes())
}

// Tree handles GET /api/tree
func (h *Handlers) Tree(c *gin.Context) {
	tree, err := h.services.POs.Tree(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

// QuickLinks handles GET /api/links
func (h *Handlers) QuickLinks(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Links.Quick())
}

// Alerts handles GET /api/alerts
func (h *Handlers) Alerts(c *gin.Context) {
	alerts, err := h.services.Alerts.Current(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// Page serves one embedded HTML page
func (h *Handlers) Page(assets fs.FS, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := fs.ReadFile(assets, name)
		if err != nil {
			h.respondError(c, fmt.Errorf("failed to read page %s: %w", name, err))
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
}

// parseID reads the :id path parameter, answering 400 when it is not a number
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body into req. An empty body leaves req untouched.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid request body")
		return false
	}
	return true
}
