package intake

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/tx"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/audit"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/size"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/supplier"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/variety"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/extraction"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/intake/csvimport"
	"github.com/Patrickdoranlearning/hortitrack-sub010/pkg/logger"
	"github.com/Patrickdoranlearning/hortitrack-sub010/pkg/numerator"
)

// Service runs the intake workflow: parse, match, hold for review.
type Service struct {
	repo      Repository
	txManager tx.Manager
	numerator *numerator.Service

	varieties variety.Repository
	sizes     size.Repository
	suppliers supplier.Repository
}

// NewService creates a new intake service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	num *numerator.Service,
	varieties variety.Repository,
	sizes size.Repository,
	suppliers supplier.Repository,
) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		numerator: num,
		varieties: varieties,
		sizes:     sizes,
		suppliers: suppliers,
	}
}

// referenceData loads the three catalogs and projects them to the
// matcher's reference shapes.
func (s *Service) referenceData(ctx context.Context) (extraction.ReferenceData, error) {
	var ref extraction.ReferenceData

	varieties, err := s.varieties.ListActive(ctx)
	if err != nil {
		return ref, fmt.Errorf("list varieties: %w", err)
	}
	for _, v := range varieties {
		family := ""
		if v.Family != nil {
			family = *v.Family
		}
		ref.Varieties = append(ref.Varieties, extraction.VarietyRef{
			ID:     v.ID.String(),
			Name:   v.Name,
			Genus:  v.Genus,
			Family: family,
		})
	}

	sizes, err := s.sizes.ListActive(ctx)
	if err != nil {
		return ref, fmt.Errorf("list sizes: %w", err)
	}
	for _, sz := range sizes {
		ref.Sizes = append(ref.Sizes, extraction.SizeRef{
			ID:            sz.ID.String(),
			Name:          sz.Name,
			CellMultiple:  sz.CellMultiple,
			ContainerType: string(sz.ContainerType),
		})
	}

	suppliers, err := s.suppliers.ListActive(ctx)
	if err != nil {
		return ref, fmt.Errorf("list suppliers: %w", err)
	}
	for _, sup := range suppliers {
		ref.Suppliers = append(ref.Suppliers, extraction.SupplierRef{
			ID:   sup.ID.String(),
			Name: sup.Name,
		})
	}

	return ref, nil
}

// Match runs the catalog matcher over an extraction without persisting
// anything. Used by the review UI for re-matching after edits.
func (s *Service) Match(ctx context.Context, ext extraction.OrderExtraction) (extraction.MatchedExtraction, error) {
	ref, err := s.referenceData(ctx)
	if err != nil {
		return extraction.MatchedExtraction{}, err
	}
	return extraction.MatchExtraction(ext, ref), nil
}

// ImportCSV parses a supplier CSV, matches it and stores the upload
// pending review.
func (s *Service) ImportCSV(ctx context.Context, fileName string, r io.Reader) (*Upload, error) {
	ext, err := csvimport.Parse(r)
	if err != nil {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("parse csv: %v", err)).
			WithDetail("file", fileName)
	}
	return s.importExtraction(ctx, fileName, SourceCSV, ext)
}

// ImportExtraction stores a PDF-extracted order, matched and pending
// review. The extraction itself comes from the external AI service.
func (s *Service) ImportExtraction(ctx context.Context, fileName string, ext extraction.OrderExtraction) (*Upload, error) {
	return s.importExtraction(ctx, fileName, SourcePDF, ext)
}

func (s *Service) importExtraction(ctx context.Context, fileName string, source Source, ext extraction.OrderExtraction) (*Upload, error) {
	matched, err := s.Match(ctx, ext)
	if err != nil {
		return nil, err
	}

	upload := NewUpload(fileName, source)
	upload.Extraction = &ext
	upload.MatchResult = &matched
	audit.EnrichCreatedByDirect(ctx, &upload.CreatedBy, &upload.UpdatedBy)

	if matched.MatchedSupplierID != nil {
		if supplierID, err := id.Parse(*matched.MatchedSupplierID); err == nil {
			upload.SupplierID = &supplierID
		}
	}

	number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("INT"), nil, time.Now())
	if err != nil {
		return nil, fmt.Errorf("generate intake number: %w", err)
	}
	upload.Number = number

	if err := upload.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, upload)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "intake upload stored",
		"number", upload.Number,
		"file", fileName,
		"total_items", matched.TotalItems,
		"needs_review", matched.NeedsReviewItems,
	)
	return upload, nil
}

// GetByID retrieves an upload.
func (s *Service) GetByID(ctx context.Context, uploadID id.ID) (*Upload, error) {
	u, err := s.repo.GetByID(ctx, uploadID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("intake upload", uploadID.String())
		}
		return nil, err
	}
	return u, nil
}

// List retrieves uploads with filtering.
func (s *Service) List(ctx context.Context, f ListFilter) ([]*Upload, int64, error) {
	return s.repo.List(ctx, f)
}

// Confirm accepts a reviewed upload.
func (s *Service) Confirm(ctx context.Context, uploadID id.ID) error {
	return s.transition(ctx, uploadID, StatusConfirmed)
}

// Reject discards a reviewed upload.
func (s *Service) Reject(ctx context.Context, uploadID id.ID) error {
	return s.transition(ctx, uploadID, StatusRejected)
}

func (s *Service) transition(ctx context.Context, uploadID id.ID, to Status) error {
	u, err := s.GetByID(ctx, uploadID)
	if err != nil {
		return err
	}
	if !u.IsPending() {
		return apperror.NewBusinessRule("UPLOAD_NOT_PENDING", "upload has already been reviewed").
			WithDetail("status", string(u.Status))
	}
	u.Status = to
	u.Touch()
	audit.EnrichUpdatedByDirect(ctx, &u.UpdatedBy)
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, u)
	})
}
