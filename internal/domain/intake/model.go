// Package intake handles supplier order documents entering the system:
// uploaded CSVs and PDF extractions are matched against the catalogs
// and held for review before committing.
package intake

import (
	"context"
	"strings"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/extraction"
)

// Source is where the upload came from.
type Source string

const (
	SourceCSV Source = "csv"
	SourcePDF Source = "pdf"
)

// Status is the review lifecycle of an upload.
type Status string

const (
	StatusPendingReview Status = "pending_review"
	StatusConfirmed     Status = "confirmed"
	StatusRejected      Status = "rejected"
)

// Upload is one supplier order document with its extraction and match
// result. Extraction and MatchResult are stored as JSONB.
type Upload struct {
	entity.BaseAudited

	// Number is the generated intake number
	Number string `db:"number" json:"number"`

	// FileName is the original uploaded file name
	FileName string `db:"file_name" json:"fileName"`

	// Source distinguishes CSV parses from PDF extractions
	Source Source `db:"source" json:"source"`

	// Status is the review state
	Status Status `db:"status" json:"status"`

	// SupplierID is set once the supplier match is accepted
	SupplierID *id.ID `db:"supplier_id" json:"supplierId,omitempty"`

	// Extraction is the parsed document
	Extraction *extraction.OrderExtraction `db:"extraction" json:"extraction,omitempty"`

	// MatchResult is the catalog match outcome
	MatchResult *extraction.MatchedExtraction `db:"match_result" json:"matchResult,omitempty"`
}

// NewUpload creates a pending upload.
func NewUpload(fileName string, source Source) *Upload {
	return &Upload{
		BaseAudited: entity.NewBaseAudited(),
		FileName:    fileName,
		Source:      source,
		Status:      StatusPendingReview,
	}
}

// Validate implements entity.Validatable interface.
func (u *Upload) Validate(ctx context.Context) error {
	if strings.TrimSpace(u.FileName) == "" {
		return apperror.NewValidation("file name is required").
			WithDetail("field", "fileName")
	}
	if u.Source != SourceCSV && u.Source != SourcePDF {
		return apperror.NewValidation("invalid upload source").
			WithDetail("field", "source").
			WithDetail("value", string(u.Source))
	}
	switch u.Status {
	case StatusPendingReview, StatusConfirmed, StatusRejected:
	default:
		return apperror.NewValidation("invalid upload status").
			WithDetail("field", "status").
			WithDetail("value", string(u.Status))
	}
	return nil
}

// IsPending reports whether the upload still awaits review.
func (u *Upload) IsPending() bool {
	return u.Status == StatusPendingReview
}
