package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/intake"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/http/v1/dto"
)

// maxUploadSize caps CSV uploads at 10MB.
const maxUploadSize = 10 << 20

// IntakeHandler handles supplier order document intake: CSV uploads,
// extraction imports, matching and review.
type IntakeHandler struct {
	*BaseHandler
	service *intake.Service
}

// NewIntakeHandler creates a new intake handler.
func NewIntakeHandler(base *BaseHandler, service *intake.Service) *IntakeHandler {
	return &IntakeHandler{BaseHandler: base, service: service}
}

// ImportCSV handles POST /intake/uploads - multipart CSV upload.
func (h *IntakeHandler) ImportCSV(c *gin.Context) {
	ctx := c.Request.Context()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Error(c, apperror.NewValidation("file is required").WithDetail("error", err.Error()))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Error(c, apperror.NewValidation("cannot read uploaded file").WithDetail("error", err.Error()))
		return
	}
	defer file.Close()

	upload, err := h.service.ImportCSV(ctx, fileHeader.Filename, file)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUpload(upload))
}

// ImportExtraction handles POST /intake/extractions - persist an
// externally produced extraction as a pending upload.
func (h *IntakeHandler) ImportExtraction(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ImportExtractionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	upload, err := h.service.ImportExtraction(ctx, req.FileName, req.Extraction)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUpload(upload))
}

// Match handles POST /intake/match - run the matcher without persisting.
func (h *IntakeHandler) Match(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.MatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	matched, err := h.service.Match(ctx, req.Extraction)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, matched)
}

// Get handles GET /intake/uploads/:id.
func (h *IntakeHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	uploadID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	upload, err := h.service.GetByID(ctx, uploadID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromUpload(upload))
}

// List handles GET /intake/uploads - list with filtering and pagination.
func (h *IntakeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	f := intake.ListFilter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if v := c.Query("status"); v != "" {
		status := intake.Status(v)
		f.Status = &status
	}
	if v := c.Query("supplierId"); v != "" {
		parsed, err := id.Parse(v)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid supplierId format"))
			return
		}
		f.SupplierID = &parsed
	}

	items, total, err := h.service.List(ctx, f)
	if err != nil {
		h.Error(c, err)
		return
	}

	dtos := make([]any, len(items))
	for i, u := range items {
		dtos[i] = dto.FromUpload(u)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      dtos,
		TotalCount: total,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
}

// Confirm handles POST /intake/uploads/:id/confirm.
func (h *IntakeHandler) Confirm(c *gin.Context) {
	ctx := c.Request.Context()

	uploadID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Confirm(ctx, uploadID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "upload confirmed")
}

// Reject handles POST /intake/uploads/:id/reject.
func (h *IntakeHandler) Reject(c *gin.Context) {
	ctx := c.Request.Context()

	uploadID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Reject(ctx, uploadID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "upload rejected")
}
