// Package audit provides utilities for audit field enrichment in domain entities.
package audit

import (
	"context"

	appctx "github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/context"
)

// EnrichCreatedByDirect sets CreatedBy and UpdatedBy fields from the
// context user. Use in BeforeCreate hooks. If no user is in context,
// this is a no-op.
func EnrichCreatedByDirect(ctx context.Context, createdBy, updatedBy *string) {
	userID := appctx.GetUserID(ctx)
	if userID != "" && createdBy != nil && updatedBy != nil {
		*createdBy = userID
		*updatedBy = userID
	}
}

// EnrichUpdatedByDirect sets only the UpdatedBy field from the context
// user. Use in BeforeUpdate hooks.
func EnrichUpdatedByDirect(ctx context.Context, updatedBy *string) {
	userID := appctx.GetUserID(ctx)
	if userID != "" && updatedBy != nil {
		*updatedBy = userID
	}
}
