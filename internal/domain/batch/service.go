package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	appctx "github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/context"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/tx"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/audit"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/ledger"
	"github.com/Patrickdoranlearning/hortitrack-sub010/pkg/logger"
	"github.com/Patrickdoranlearning/hortitrack-sub010/pkg/numerator"
)

// Service provides business operations for batches.
type Service struct {
	repo      Repository
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new batch service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		numerator: num,
	}
}

// Create validates and persists a new batch, generating its number.
func (s *Service) Create(ctx context.Context, b *Batch) error {
	if err := b.Validate(ctx); err != nil {
		return err
	}
	audit.EnrichCreatedByDirect(ctx, &b.CreatedBy, &b.UpdatedBy)

	if b.Number == "" {
		number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("B"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate batch number: %w", err)
		}
		b.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, b); err != nil {
			return fmt.Errorf("create batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "batch created",
		"batch_id", b.ID,
		"number", b.Number,
		"initial_quantity", b.InitialQuantity,
	)
	return nil
}

// GetByID retrieves a batch.
func (s *Service) GetByID(ctx context.Context, batchID id.ID) (*Batch, error) {
	b, err := s.repo.GetByID(ctx, batchID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("batch", batchID.String())
		}
		return nil, err
	}
	return b, nil
}

// GetByNumber retrieves a batch by its number. Batch numbers all come
// from the numerator, so a string that does not parse as one is
// rejected before touching storage.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Batch, error) {
	if numerator.ParseNumber(number) < 0 {
		return nil, apperror.NewInvalidInput("invalid batch number").
			WithDetail("number", number)
	}
	b, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("batch", number)
		}
		return nil, err
	}
	return b, nil
}

// List retrieves batches with filtering.
func (s *Service) List(ctx context.Context, f ListFilter) ([]*Batch, int64, error) {
	return s.repo.List(ctx, f)
}

// Update persists batch field changes (location, dates, notes).
func (s *Service) Update(ctx context.Context, b *Batch) error {
	if err := b.Validate(ctx); err != nil {
		return err
	}
	audit.EnrichUpdatedByDirect(ctx, &b.UpdatedBy)
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, b)
	})
}

// Archive closes a batch to further events.
func (s *Service) Archive(ctx context.Context, batchID id.ID) error {
	b, err := s.GetByID(ctx, batchID)
	if err != nil {
		return err
	}
	if b.IsArchived() {
		return nil
	}
	b.Status = StatusArchived
	b.Touch()
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, b)
	})
}

// RecordEvent appends an event to an active batch's log. The event is
// stamped with the acting user from context.
func (s *Service) RecordEvent(ctx context.Context, batchID id.ID, eventType string, payload entity.Attributes) (*BatchEvent, error) {
	b, err := s.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if b.IsArchived() {
		return nil, apperror.NewBatchArchived(b.Number)
	}

	event := NewBatchEvent(batchID, eventType, payload)
	if user := appctx.GetUser(ctx); user != nil {
		userID := user.UserID
		event.ByUserID = &userID
		event.UserName = user.Name
	}
	if err := event.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.CreateEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "batch event recorded",
		"batch_id", batchID,
		"type", event.Type,
	)
	return event, nil
}

// Allocate reserves quantity against an order line. The availability
// check and the insert run in one serializable transaction, so two
// concurrent allocations cannot both see the same units as free.
func (s *Service) Allocate(ctx context.Context, batchID, orderID id.ID, orderItemID string, quantity float64) (*Allocation, error) {
	alloc := NewAllocation(batchID, orderID, orderItemID, quantity)
	if err := alloc.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunSerializable(ctx, func(ctx context.Context) error {
		b, err := s.GetByID(ctx, batchID)
		if err != nil {
			return err
		}
		if b.IsArchived() {
			return apperror.NewBatchArchived(b.Number)
		}

		led, err := s.buildLedger(ctx, b)
		if err != nil {
			return err
		}
		available := led.Summary.CurrentBalance - led.Summary.Allocated
		if quantity > available {
			return apperror.NewInsufficientStock(b.Number, quantity, available)
		}

		return s.repo.CreateAllocation(ctx, alloc)
	})
	if err != nil {
		return nil, err
	}
	return alloc, nil
}

// PickAllocation marks a reservation as picked and records the matching
// PICKED event in the same transaction, carrying the order item id so
// the ledger dedup keeps exactly one movement.
func (s *Service) PickAllocation(ctx context.Context, batchID, allocationID id.ID) error {
	allocations, err := s.repo.ListAllocations(ctx, batchID)
	if err != nil {
		return err
	}

	var alloc *Allocation
	for _, a := range allocations {
		if a.ID == allocationID {
			alloc = a
			break
		}
	}
	if alloc == nil {
		return apperror.NewNotFound("allocation", allocationID.String())
	}
	if alloc.Status != AllocationAllocated {
		return apperror.NewBusinessRule("ALLOCATION_NOT_ALLOCATED", "allocation is not in allocated state").
			WithDetail("status", string(alloc.Status))
	}

	payload := entity.Attributes{"units_picked": alloc.Quantity}
	if alloc.OrderItemID != nil {
		payload["order_item_id"] = *alloc.OrderItemID
	}
	if alloc.OrderNumber != nil {
		payload["order_number"] = *alloc.OrderNumber
	}
	if alloc.CustomerName != nil {
		payload["customer_name"] = *alloc.CustomerName
	}

	event := NewBatchEvent(batchID, "PICKED", payload)
	if user := appctx.GetUser(ctx); user != nil {
		userID := user.UserID
		event.ByUserID = &userID
		event.UserName = user.Name
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.SetAllocationStatus(ctx, allocationID, AllocationPicked); err != nil {
			return err
		}
		return s.repo.CreateEvent(ctx, event)
	})
}

// Split moves part of a batch into a new child batch. The parent keeps
// a partial MOVE event referencing the child; the child starts with the
// split quantity.
func (s *Service) Split(ctx context.Context, batchID id.ID, quantity float64) (*Batch, error) {
	parent, err := s.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if parent.IsArchived() {
		return nil, apperror.NewBatchArchived(parent.Number)
	}

	led, err := s.buildLedger(ctx, parent)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 || quantity > led.Summary.CurrentBalance {
		return nil, apperror.NewInsufficientStock(parent.Number, quantity, led.Summary.CurrentBalance)
	}

	child := NewBatch(parent.VarietyID, parent.SizeID, quantity)
	child.SupplierID = parent.SupplierID
	child.ParentBatchID = &parent.ID
	child.Location = parent.Location
	child.PlantedAt = parent.PlantedAt

	number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("B"), nil, time.Now())
	if err != nil {
		return nil, fmt.Errorf("generate batch number: %w", err)
	}
	child.Number = number

	event := NewBatchEvent(parent.ID, "MOVE", entity.Attributes{
		"units_moved":    quantity,
		"partial":        true,
		"split_batch_id": child.ID.String(),
	})
	if user := appctx.GetUser(ctx); user != nil {
		userID := user.UserID
		event.ByUserID = &userID
		event.UserName = user.Name
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, child); err != nil {
			return fmt.Errorf("create child batch: %w", err)
		}
		return s.repo.CreateEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "batch split",
		"parent", parent.Number,
		"child", child.Number,
		"quantity", quantity,
	)
	return child, nil
}

// Events returns the event log for a batch, oldest first.
func (s *Service) Events(ctx context.Context, batchID id.ID) ([]*BatchEvent, error) {
	if _, err := s.GetByID(ctx, batchID); err != nil {
		return nil, err
	}
	return s.repo.ListEvents(ctx, batchID)
}

// Allocations returns a batch's allocations with order context joined in.
func (s *Service) Allocations(ctx context.Context, batchID id.ID) ([]*Allocation, error) {
	if _, err := s.GetByID(ctx, batchID); err != nil {
		return nil, err
	}
	return s.repo.ListAllocations(ctx, batchID)
}

// Ledger rebuilds the stock ledger for a batch given its raw id string.
// A malformed id fails fast before any data is touched.
func (s *Service) Ledger(ctx context.Context, rawBatchID string) (*ledger.Ledger, error) {
	batchID, err := id.Parse(rawBatchID)
	if err != nil {
		return nil, apperror.NewInvalidInput("invalid batch id").
			WithDetail("id", rawBatchID)
	}

	b, err := s.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	led, err := s.buildLedger(ctx, b)
	if err != nil {
		return nil, err
	}
	return led, nil
}

// buildLedger fetches the snapshot and replays it. The fetch happens
// outside any transaction; the ledger treats the snapshot as consistent.
func (s *Service) buildLedger(ctx context.Context, b *Batch) (*ledger.Ledger, error) {
	events, err := s.repo.ListEvents(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	allocations, err := s.repo.ListAllocations(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	children, err := s.repo.ListChildren(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}

	meta := ledger.BatchMeta{
		ID:              b.ID,
		Number:          b.Number,
		InitialQuantity: b.InitialQuantity,
		CreatedAt:       b.CreatedAt,
	}

	ledgerEvents := make([]ledger.Event, 0, len(events))
	for _, e := range events {
		ledgerEvents = append(ledgerEvents, ledger.Event{
			ID:       e.ID,
			Type:     e.Type,
			At:       e.At,
			ByUserID: e.ByUserID,
			UserName: e.UserName,
			Payload:  e.Payload,
		})
	}

	ledgerAllocations := make([]ledger.Allocation, 0, len(allocations))
	for _, a := range allocations {
		ledgerAllocations = append(ledgerAllocations, ledger.Allocation{
			ID:           a.ID,
			Quantity:     a.Quantity,
			Status:       string(a.Status),
			CreatedAt:    a.CreatedAt,
			OrderItemID:  a.OrderItemID,
			OrderID:      a.OrderID,
			OrderNumber:  a.OrderNumber,
			CustomerName: a.CustomerName,
		})
	}

	ledgerChildren := make([]ledger.ChildBatch, 0, len(children))
	for _, c := range children {
		ledgerChildren = append(ledgerChildren, ledger.ChildBatch{
			ID:     c.ID,
			Number: c.Number,
		})
	}

	result := ledger.BuildLedger(meta, ledgerEvents, ledgerAllocations, ledgerChildren)
	return &result, nil
}
