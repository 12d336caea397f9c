package size

import (
	"context"
	"fmt"
	"time"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/tx"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain"
	"github.com/Patrickdoranlearning/hortitrack-sub010/pkg/numerator"
)

// Service provides business logic for the PlantSize catalog.
type Service struct {
	*domain.CatalogService[*PlantSize]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new PlantSize service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*PlantSize]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "size",
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
func (s *Service) prepareForCreate(ctx context.Context, ps *PlantSize) error {
	if ps.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("SZ"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		ps.Code = code
	}
	return nil
}

// --- Entity-specific methods ---

// FindByCellMultiple retrieves sizes with the given cells-per-tray count.
func (s *Service) FindByCellMultiple(ctx context.Context, cells int) ([]*PlantSize, error) {
	return s.repo.FindByCellMultiple(ctx, cells)
}

// ListActive retrieves all non-deleted sizes.
func (s *Service) ListActive(ctx context.Context) ([]*PlantSize, error) {
	return s.repo.ListActive(ctx)
}
