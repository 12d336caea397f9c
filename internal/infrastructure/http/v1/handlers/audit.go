package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes the audit trail for a single entity.
type AuditHandler struct {
	*BaseHandler
	audit *postgres.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, audit *postgres.AuditService) *AuditHandler {
	return &AuditHandler{BaseHandler: base, audit: audit}
}

// History handles GET /audit/:entityType/:id - entity change history,
// newest first.
func (h *AuditHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	limit := h.ParseIntQuery(c, "limit", 50)

	entries, err := h.audit.GetEntityHistory(ctx, c.Param("entityType"), entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": entries})
}
