package variety

import (
	"context"
	"fmt"
	"time"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/tx"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain"
	"github.com/Patrickdoranlearning/hortitrack-sub010/pkg/numerator"
)

// Service provides business logic for the PlantVariety catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*PlantVariety]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new PlantVariety service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*PlantVariety]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "variety",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// prepareForCreate handles code generation.
func (s *Service) prepareForCreate(ctx context.Context, v *PlantVariety) error {
	if v.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("VAR"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		v.Code = code
	}
	return nil
}

// --- Entity-specific methods ---

// ListByGenus retrieves all active varieties of a genus.
func (s *Service) ListByGenus(ctx context.Context, genus string) ([]*PlantVariety, error) {
	return s.repo.ListByGenus(ctx, genus)
}

// ListActive retrieves all non-deleted varieties.
func (s *Service) ListActive(ctx context.Context) ([]*PlantVariety, error) {
	return s.repo.ListActive(ctx)
}
