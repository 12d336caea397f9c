package supplier

import (
	"context"
	"fmt"
	"time"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/tx"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain"
	"github.com/Patrickdoranlearning/hortitrack-sub010/pkg/numerator"
)

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Supplier service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "supplier",
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
func (s *Service) prepareForCreate(ctx context.Context, sup *Supplier) error {
	if sup.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("SUP"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		sup.Code = code
	}
	return nil
}

// --- Entity-specific methods ---

// ListActive retrieves all non-deleted suppliers.
func (s *Service) ListActive(ctx context.Context) ([]*Supplier, error) {
	return s.repo.ListActive(ctx)
}
