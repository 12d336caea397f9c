package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/tx"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain"
	"github.com/Patrickdoranlearning/hortitrack-sub010/pkg/numerator"
)

// Service provides business logic for the Customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Customer service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// prepareForCreate handles code generation and store code uniqueness.
func (s *Service) prepareForCreate(ctx context.Context, c *Customer) error {
	if c.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("CUS"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}

	if c.StoreCode != nil && *c.StoreCode != "" {
		existing, err := s.repo.FindByStoreCode(ctx, *c.StoreCode)
		if err == nil && existing.ID != c.ID {
			return apperror.NewConflict("customer with this store code already exists").
				WithDetail("storeCode", *c.StoreCode)
		}
	}

	return nil
}

// --- Entity-specific methods ---

// FindByStoreCode retrieves a customer by its store identifier.
func (s *Service) FindByStoreCode(ctx context.Context, storeCode string) (*Customer, error) {
	return s.repo.FindByStoreCode(ctx, storeCode)
}
