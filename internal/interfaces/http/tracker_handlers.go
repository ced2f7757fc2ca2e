package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Jowenthebui/PO-Tracking/internal/application/service"
)

// CreateTrackedPORequest is the body of POST /api/tracker/pos
type CreateTrackedPORequest struct {
	PONumber   string `json:"po_number"`
	Title      string `json:"title"`
	Stage      string `json:"stage"`
	OwnerRole  string `json:"owner_role"`
	NextAction string `json:"next_action"`
	Actor      string `json:"actor"`
}

// UpdateTrackedPORequest is the body of PATCH /api/tracker/pos/:id.
// Absent fields are left unchanged.
type UpdateTrackedPORequest struct {
	Stage      *string `json:"stage"`
	OwnerRole  *string `json:"owner_role"`
	NextAction *string `json:"next_action"`
	Note       string  `json:"note"`
	Actor      string  `json:"actor"`
}

// AddDocumentRequest is the body of POST /api/tracker/pos/:id/documents
type AddDocumentRequest struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// ListStages handles GET /api/tracker/stages
func (h *Handlers) ListStages(c *gin.Context) {
	stages, err := h.services.Tracker.Stages(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stages)
}

// ListTrackedPOs handles GET /api/tracker/pos
func (h *Handlers) ListTrackedPOs(c *gin.Context) {
	stuck := strings.ToLower(c.Query("stuck"))
	filter := service.TrackerFilter{
		Stage:     c.Query("stage"),
		OwnerRole: c.Query("owner_role"),
		Query:     c.Query("q"),
		StuckOnly: stuck == "true" || stuck == "1",
	}

	pos, err := h.services.Tracker.ListPOs(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pos)
}

// CreateTrackedPO handles POST /api/tracker/pos
func (h *Handlers) CreateTrackedPO(c *gin.Context) {
	var req CreateTrackedPORequest
	if !bindJSON(c, &req) {
		return
	}

	po, err := h.services.Tracker.CreatePO(c.Request.Context(), service.CreateTrackedPOInput{
		PONumber:   req.PONumber,
		Title:      req.Title,
		Stage:      req.Stage,
		OwnerRole:  req.OwnerRole,
		NextAction: req.NextAction,
		Actor:      req.Actor,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, IDResponse{ID: po.ID})
}

// GetTrackedPO handles GET /api/tracker/pos/:id
func (h *Handlers) GetTrackedPO(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.services.Tracker.GetPO(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateTrackedPO handles PATCH /api/tracker/pos/:id
func (h *Handlers) UpdateTrackedPO(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTrackedPORequest
	if !bindJSON(c, &req) {
		return
	}

	po, err := h.services.Tracker.UpdatePO(c.Request.Context(), id, service.UpdateTrackedPOInput{
		Stage:      req.Stage,
		OwnerRole:  req.OwnerRole,
		NextAction: req.NextAction,
		Note:       req.Note,
		Actor:      req.Actor,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, po)
}

// AddTrackedPODocument handles POST /api/tracker/pos/:id/documents
func (h *Handlers) AddTrackedPODocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AddDocumentRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.services.Tracker.AddDocument(c.Request.Context(), id, req.Label, req.URL)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
