package dto

import (
	"time"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/extraction"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/intake"
)

// --- Request DTOs ---

// MatchRequest carries an extraction to run through the matcher without
// persisting anything.
type MatchRequest struct {
	Extraction extraction.OrderExtraction `json:"extraction" binding:"required"`
}

// ImportExtractionRequest persists an externally produced extraction
// (e.g. from a PDF parsing pipeline) as a pending upload.
type ImportExtractionRequest struct {
	FileName   string                     `json:"fileName" binding:"required"`
	Extraction extraction.OrderExtraction `json:"extraction" binding:"required"`
}

// --- Response DTOs ---

// UploadResponse is the response body for an intake upload.
type UploadResponse struct {
	ID          string                         `json:"id"`
	Number      string                         `json:"number"`
	FileName    string                         `json:"fileName"`
	Source      string                         `json:"source"`
	Status      string                         `json:"status"`
	SupplierID  *string                        `json:"supplierId,omitempty"`
	Extraction  *extraction.OrderExtraction    `json:"extraction,omitempty"`
	MatchResult *extraction.MatchedExtraction  `json:"matchResult,omitempty"`
	Version     int                            `json:"version"`
	CreatedAt   time.Time                      `json:"createdAt"`
	UpdatedAt   time.Time                      `json:"updatedAt"`
}

// FromUpload creates response DTO from domain entity.
func FromUpload(u *intake.Upload) *UploadResponse {
	resp := &UploadResponse{
		ID:          u.ID.String(),
		Number:      u.Number,
		FileName:    u.FileName,
		Source:      string(u.Source),
		Status:      string(u.Status),
		Extraction:  u.Extraction,
		MatchResult: u.MatchResult,
		Version:     u.Version,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.SupplierID != nil {
		s := u.SupplierID.String()
		resp.SupplierID = &s
	}
	return resp
}
