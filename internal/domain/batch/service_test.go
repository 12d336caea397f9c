package batch

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/ledger"
	"github.com/Patrickdoranlearning/hortitrack-sub010/pkg/numerator"
)

// --- fakes ---

type fakeRepo struct {
	batches     map[id.ID]*Batch
	events      map[id.ID][]*BatchEvent
	allocations map[id.ID][]*Allocation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		batches:     make(map[id.ID]*Batch),
		events:      make(map[id.ID][]*BatchEvent),
		allocations: make(map[id.ID][]*Allocation),
	}
}

func (r *fakeRepo) Create(ctx context.Context, b *Batch) error {
	r.batches[b.ID] = b
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, batchID id.ID) (*Batch, error) {
	b, ok := r.batches[batchID]
	if !ok {
		return nil, apperror.NewNotFound("batch", batchID.String())
	}
	return b, nil
}

func (r *fakeRepo) GetByNumber(ctx context.Context, number string) (*Batch, error) {
	for _, b := range r.batches {
		if b.Number == number {
			return b, nil
		}
	}
	return nil, apperror.NewNotFound("batch", number)
}

func (r *fakeRepo) Update(ctx context.Context, b *Batch) error {
	r.batches[b.ID] = b
	return nil
}

func (r *fakeRepo) List(ctx context.Context, f ListFilter) ([]*Batch, int64, error) {
	out := make([]*Batch, 0, len(r.batches))
	for _, b := range r.batches {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) ListChildren(ctx context.Context, batchID id.ID) ([]*Batch, error) {
	var out []*Batch
	for _, b := range r.batches {
		if b.ParentBatchID != nil && *b.ParentBatchID == batchID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateEvent(ctx context.Context, e *BatchEvent) error {
	r.events[e.BatchID] = append(r.events[e.BatchID], e)
	return nil
}

func (r *fakeRepo) ListEvents(ctx context.Context, batchID id.ID) ([]*BatchEvent, error) {
	return r.events[batchID], nil
}

func (r *fakeRepo) CreateAllocation(ctx context.Context, a *Allocation) error {
	r.allocations[a.BatchID] = append(r.allocations[a.BatchID], a)
	return nil
}

func (r *fakeRepo) ListAllocations(ctx context.Context, batchID id.ID) ([]*Allocation, error) {
	return r.allocations[batchID], nil
}

func (r *fakeRepo) SetAllocationStatus(ctx context.Context, allocationID id.ID, status AllocationStatus) error {
	for _, allocs := range r.allocations {
		for _, a := range allocs {
			if a.ID == allocationID {
				a.Status = status
				return nil
			}
		}
	}
	return apperror.NewNotFound("allocation", allocationID.String())
}

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type seqRow struct{ n *int64 }

func (r seqRow) Scan(dest ...any) error {
	*r.n++
	if ptr, ok := dest[0].(*int64); ok {
		*ptr = *r.n
	}
	return nil
}

type seqQuerier struct{ n int64 }

func (q *seqQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return seqRow{n: &q.n}
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewService(repo, passthroughTx{}, numerator.New(&seqQuerier{}))
	return svc, repo
}

// --- tests ---

func TestService_CreateGeneratesNumber(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	b := NewBatch(id.New(), id.New(), 100)
	require.NoError(t, svc.Create(ctx, b))
	assert.NotEmpty(t, b.Number)
	assert.Contains(t, b.Number, "B-")
}

func TestService_GetByNumberRejectsMalformed(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	b := NewBatch(id.New(), id.New(), 10)
	require.NoError(t, svc.Create(ctx, b))

	got, err := svc.GetByNumber(ctx, b.Number)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = svc.GetByNumber(ctx, "garbage")
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidInput(err))
}

func TestService_LedgerInvalidID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Ledger(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidInput(err))
}

func TestService_LedgerRoundTrip(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	b := NewBatch(id.New(), id.New(), 100)
	b.CreatedAt = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Create(ctx, b))

	event := NewBatchEvent(b.ID, "PICKED", entity.Attributes{"units_picked": float64(30)})
	event.At = time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateEvent(ctx, event))

	led, err := svc.Ledger(ctx, b.ID.String())
	require.NoError(t, err)
	require.Len(t, led.Movements, 2)
	assert.Equal(t, float64(70), led.Summary.CurrentBalance)
}

func TestService_AllocateChecksAvailability(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	b := NewBatch(id.New(), id.New(), 50)
	require.NoError(t, svc.Create(ctx, b))

	// First reservation fits.
	_, err := svc.Allocate(ctx, b.ID, id.New(), "item-1", 40)
	require.NoError(t, err)

	// Second one exceeds what is left (50 - 40 reserved).
	_, err = svc.Allocate(ctx, b.ID, id.New(), "item-2", 20)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
}

func TestService_RecordEventOnArchivedBatch(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	b := NewBatch(id.New(), id.New(), 10)
	require.NoError(t, svc.Create(ctx, b))
	require.NoError(t, svc.Archive(ctx, b.ID))

	_, err := svc.RecordEvent(ctx, b.ID, "DUMP", entity.Attributes{"units_dumped": float64(2)})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBatchArchived, appErr.Code)
}

func TestService_PickAllocationDedupsLedger(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	b := NewBatch(id.New(), id.New(), 100)
	require.NoError(t, svc.Create(ctx, b))

	alloc, err := svc.Allocate(ctx, b.ID, id.New(), "item-9", 25)
	require.NoError(t, err)
	require.NoError(t, svc.PickAllocation(ctx, b.ID, alloc.ID))

	led, err := svc.Ledger(ctx, b.ID.String())
	require.NoError(t, err)

	// One pick movement, not two: the picked allocation is suppressed
	// because the PICKED event carries the same order item id.
	picks := 0
	for _, m := range led.Movements {
		if m.Type == "picked" {
			picks++
		}
	}
	assert.Equal(t, 1, picks)
	assert.Equal(t, float64(75), led.Summary.CurrentBalance)
}

func TestService_Split(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	b := NewBatch(id.New(), id.New(), 60)
	require.NoError(t, svc.Create(ctx, b))

	child, err := svc.Split(ctx, b.ID, 20)
	require.NoError(t, err)
	require.NotNil(t, child.ParentBatchID)
	assert.Equal(t, b.ID, *child.ParentBatchID)
	assert.Equal(t, float64(20), child.InitialQuantity)

	led, err := svc.Ledger(ctx, b.ID.String())
	require.NoError(t, err)
	assert.Equal(t, float64(40), led.Summary.CurrentBalance)

	// The split movement resolves the child's number for its label.
	var splitDest *ledger.Destination
	for i := range led.Movements {
		if led.Movements[i].Type == "move" {
			splitDest = led.Movements[i].Destination
		}
	}
	require.NotNil(t, splitDest)
	assert.Equal(t, child.Number, splitDest.Name)

	// Splitting more than remains is rejected.
	_, err = svc.Split(ctx, b.ID, 100)
	require.Error(t, err)
}
