package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/batch"
	domainFilter "github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/filter"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/http/v1/dto"
)

// BatchHandler handles batch lifecycle operations: creation, the event
// log, allocations, splitting and ledger reconstruction.
type BatchHandler struct {
	*BaseHandler
	service *batch.Service
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(base *BaseHandler, service *batch.Service) *BatchHandler {
	return &BatchHandler{BaseHandler: base, service: service}
}

// List handles GET /batches - list with filtering and pagination.
func (h *BatchHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	f := batch.ListFilter{
		Search:          c.Query("search"),
		IncludeArchived: c.Query("includeArchived") == "true",
		OrderBy:         c.Query("orderBy"),
		Limit:           h.ParseIntQuery(c, "limit", 50),
		Offset:          h.ParseIntQuery(c, "offset", 0),
	}

	if v := c.Query("varietyId"); v != "" {
		parsed, err := id.Parse(v)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid varietyId format"))
			return
		}
		f.VarietyID = &parsed
	}
	if v := c.Query("sizeId"); v != "" {
		parsed, err := id.Parse(v)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid sizeId format"))
			return
		}
		f.SizeID = &parsed
	}
	if v := c.Query("supplierId"); v != "" {
		parsed, err := id.Parse(v)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid supplierId format"))
			return
		}
		f.SupplierID = &parsed
	}
	if v := c.Query("status"); v != "" {
		status := batch.Status(v)
		f.Status = &status
	}
	if v := c.Query("location"); v != "" {
		f.Location = &v
	}
	if v := c.Query("plantedAfter"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid plantedAfter format (RFC3339 expected)"))
			return
		}
		f.PlantedAfter = &t
	}
	if v := c.Query("plantedBefore"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid plantedBefore format (RFC3339 expected)"))
			return
		}
		f.PlantedBefore = &t
	}
	if filterJSON := c.Query("filter"); filterJSON != "" {
		var advFilters []domainFilter.Item
		if err := json.Unmarshal([]byte(filterJSON), &advFilters); err != nil {
			h.Error(c, apperror.NewValidation("invalid filter format (json expected)"))
			return
		}
		f.AdvancedFilters = advFilters
	}

	items, total, err := h.service.List(ctx, f)
	if err != nil {
		h.Error(c, err)
		return
	}

	dtos := make([]any, len(items))
	for i, b := range items {
		dtos[i] = dto.FromBatch(b)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      dtos,
		TotalCount: total,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
}

// Create handles POST /batches.
func (h *BatchHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	varietyID, err := id.Parse(req.VarietyID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid varietyId format"))
		return
	}
	sizeID, err := id.Parse(req.SizeID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid sizeId format"))
		return
	}
	var supplierID *id.ID
	if req.SupplierID != nil {
		parsed, err := id.Parse(*req.SupplierID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid supplierId format"))
			return
		}
		supplierID = &parsed
	}

	b := req.ToEntity(varietyID, sizeID, supplierID)

	if err := h.service.Create(ctx, b); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromBatch(b))
}

// Get handles GET /batches/:id.
func (h *BatchHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	batchID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	b, err := h.service.GetByID(ctx, batchID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBatch(b))
}

// GetByNumber handles GET /batches/by-number/:number.
func (h *BatchHandler) GetByNumber(c *gin.Context) {
	ctx := c.Request.Context()

	b, err := h.service.GetByNumber(ctx, c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBatch(b))
}

// Update handles PUT /batches/:id.
func (h *BatchHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	batchID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	b, err := h.service.GetByID(ctx, batchID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(b)

	if err := h.service.Update(ctx, b); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBatch(b))
}

// Archive handles POST /batches/:id/archive.
func (h *BatchHandler) Archive(c *gin.Context) {
	ctx := c.Request.Context()

	batchID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Archive(ctx, batchID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "batch archived")
}

// RecordEvent handles POST /batches/:id/events - append to the event log.
func (h *BatchHandler) RecordEvent(c *gin.Context) {
	ctx := c.Request.Context()

	batchID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.RecordEventRequest
	if !h.BindJSON(c, &req) {
		return
	}

	event, err := h.service.RecordEvent(ctx, batchID, req.Type, req.Payload)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromEvent(event))
}

// ListEvents handles GET /batches/:id/events.
func (h *BatchHandler) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()

	batchID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	events, err := h.service.Events(ctx, batchID)
	if err != nil {
		h.Error(c, err)
		return
	}

	dtos := make([]any, len(events))
	for i, e := range events {
		dtos[i] = dto.FromEvent(e)
	}

	c.JSON(http.StatusOK, gin.H{"items": dtos})
}

// Allocate handles POST /batches/:id/allocations - reserve stock.
func (h *BatchHandler) Allocate(c *gin.Context) {
	ctx := c.Request.Context()

	batchID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.AllocateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	orderID, err := id.Parse(req.OrderID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid orderId format"))
		return
	}

	alloc, err := h.service.Allocate(ctx, batchID, orderID, req.OrderItemID, req.Quantity)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromAllocation(alloc))
}

// ListAllocations handles GET /batches/:id/allocations.
func (h *BatchHandler) ListAllocations(c *gin.Context) {
	ctx := c.Request.Context()

	batchID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	allocations, err := h.service.Allocations(ctx, batchID)
	if err != nil {
		h.Error(c, err)
		return
	}

	dtos := make([]any, len(allocations))
	for i, a := range allocations {
		dtos[i] = dto.FromAllocation(a)
	}

	c.JSON(http.StatusOK, gin.H{"items": dtos})
}

// PickAllocation handles POST /batches/:id/allocations/:allocId/pick.
func (h *BatchHandler) PickAllocation(c *gin.Context) {
	ctx := c.Request.Context()

	batchID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	allocID, ok := h.ParseID(c, "allocId")
	if !ok {
		return
	}

	if err := h.service.PickAllocation(ctx, batchID, allocID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "allocation picked")
}

// Split handles POST /batches/:id/split - move units into a child batch.
func (h *BatchHandler) Split(c *gin.Context) {
	ctx := c.Request.Context()

	batchID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.SplitRequest
	if !h.BindJSON(c, &req) {
		return
	}

	child, err := h.service.Split(ctx, batchID, req.Quantity)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromBatch(child))
}

// Ledger handles GET /batches/:id/ledger - rebuild the stock ledger.
// The service parses the raw id itself so a malformed id fails fast.
func (h *BatchHandler) Ledger(c *gin.Context) {
	ctx := c.Request.Context()

	led, err := h.service.Ledger(ctx, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, led)
}
