package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreatePORequest is the body of POST /api/po
type CreatePORequest struct {
	MonthID    int64  `json:"month_id"`
	FolderName string `json:"folder_name"`
}

// UpdateStepRequest is the body of PATCH /api/step/:id
type UpdateStepRequest struct {
	ActionDone *bool `json:"action_done"`
}

// createPOBody and updateStepBody decode their requests leniently: a field
// holding the wrong JSON type counts as missing rather than failing the body
type createPOBody struct {
	MonthID    json.RawMessage `json:"month_id"`
	FolderName json.RawMessage `json:"folder_name"`
}

type updateStepBody struct {
	ActionDone json.RawMessage `json:"action_done"`
}

// looseValue decodes raw into v and reports false when raw is absent, null
// or of another type
func looseValue(raw json.RawMessage, v interface{}) bool {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func (b createPOBody) request() CreatePORequest {
	var req CreatePORequest
	looseValue(b.MonthID, &req.MonthID)
	looseValue(b.FolderName, &req.FolderName)
	return req
}

func (b updateStepBody) request() UpdateStepRequest {
	var actionDone bool
	if !looseValue(b.ActionDone, &actionDone) {
		return UpdateStepRequest{}
	}
	return UpdateStepRequest{ActionDone: &actionDone}
}

// UpdateStepResponse reports the recomputed step flags
type UpdateStepResponse struct {
	OK         bool `json:"ok"`
	IsDone     bool `json:"is_done"`
	ActionDone bool `json:"action_done"`
}

// UploadResponse describes a stored attachment
type UploadResponse struct {
	OK       bool   `json:"ok"`
	ID       int64  `json:"id"`
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
}

// CreatePO handles POST /api/po
func (h *Handlers) CreatePO(c *gin.Context) {
	var body createPOBody
	if !bindJSON(c, &body) {
		return
	}
	req := body.request()

	po, err := h.services.POs.Create(c.Request.Context(), req.MonthID, req.FolderName)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, IDResponse{ID: po.ID})
}

// GetPO handles GET /api/po/:id
func (h *Handlers) GetPO(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.services.POs.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateStep handles PATCH /api/step/:id
func (h *Handlers) UpdateStep(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var body updateStepBody
	if !bindJSON(c, &body) {
		return
	}
	req := body.request()

	step, err := h.services.Steps.SetActionDone(c.Request.Context(), id, req.ActionDone)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UpdateStepResponse{
		OK:         true,
		IsDone:     step.IsDone,
		ActionDone: step.ActionDone,
	})
}

// UploadStepFile handles POST /api/step/:id/upload (multipart field "file")
func (h *Handlers) UploadStepFile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	// A missing file is reported by the service once the step is known to exist
	var (
		name    string
		content io.Reader
	)
	if header, err := c.FormFile("file"); err == nil {
		f, err := header.Open()
		if err != nil {
			h.respondError(c, err)
			return
		}
		defer func(f multipart.File) { _ = f.Close() }(f)
		name, content = header.Filename, f
	}

	file, err := h.services.Steps.Upload(c.Request.Context(), id, name, content)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		OK:       true,
		ID:       file.ID,
		FileName: file.FileName,
		FilePath: file.FilePath,
	})
}
