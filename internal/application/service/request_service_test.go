package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenithhr/procurement-workflow/internal/application/port"
	"github.com/zenithhr/procurement-workflow/internal/domain/entity"
	"github.com/zenithhr/procurement-workflow/internal/domain/policy"
	"github.com/zenithhr/procurement-workflow/internal/domain/stage"
)

const thresholdCents = 10000000

// Mock store with overridable functions
type mockStore struct {
	createFunc  func(ctx context.Context, req *entity.PurchaseRequest) error
	loadFunc    func(ctx context.Context, id string) (*entity.PurchaseRequest, error)
	historyFunc func(ctx context.Context, id string) ([]*entity.AuditEntry, error)
	listFunc    func(ctx context.Context, limit, offset int) ([]*entity.PurchaseRequest, error)
	listAllFunc func(ctx context.Context) ([]*entity.PurchaseRequest, error)

	created []*entity.PurchaseRequest
}

func (m *mockStore) Create(ctx context.Context, req *entity.PurchaseRequest) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	m.created = append(m.created, req)
	return nil
}

func (m *mockStore) Load(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, id)
	}
	return &entity.PurchaseRequest{ID: id, CurrentStage: stage.StageCreated.String()}, nil
}

func (m *mockStore) Commit(ctx context.Context, id string, expectedVersion int64, newStage string, audit *entity.AuditEntry) (*entity.PurchaseRequest, error) {
	return nil, errors.New("commit not expected in service tests")
}

func (m *mockStore) History(ctx context.Context, id string) ([]*entity.AuditEntry, error) {
	if m.historyFunc != nil {
		return m.historyFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStore) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseRequest, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockStore) ListAll(ctx context.Context) ([]*entity.PurchaseRequest, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return nil, nil
}

var _ port.RequestStore = (*mockStore)(nil)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}

func newTestService(store port.RequestStore) RequestService {
	return NewRequestService(store, policy.New(thresholdCents), nil, nopLogger{})
}

func validInput() CreateRequestInput {
	return CreateRequestInput{
		AmountCents: 5000000,
		Department:  "operations",
		RequesterID: "u-1",
		VendorName:  "Acme Supplies",
		Description: "replacement laptops",
	}
}

func TestCreate_Defaults(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	req, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, stage.StageCreated.String(), req.CurrentStage)
	assert.Equal(t, int64(0), req.Version)
	assert.Equal(t, entity.PriorityMedium, req.Priority)
	assert.False(t, req.RequiresTopApproval)
	require.Len(t, store.created, 1)
}

func TestCreate_ResolvesTopApprovalAtCreation(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(store)

	input := validInput()
	input.AmountCents = thresholdCents // boundary is inclusive

	req, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, req.RequiresTopApproval)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(&mockStore{})
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateRequestInput)
	}{
		{"zero amount", func(i *CreateRequestInput) { i.AmountCents = 0 }},
		{"negative amount", func(i *CreateRequestInput) { i.AmountCents = -100 }},
		{"missing department", func(i *CreateRequestInput) { i.Department = "" }},
		{"missing requester", func(i *CreateRequestInput) { i.RequesterID = "" }},
		{"missing vendor", func(i *CreateRequestInput) { i.VendorName = "" }},
		{"unknown priority", func(i *CreateRequestInput) { i.Priority = "WHENEVER" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			_, err := svc.Create(ctx, input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestHistory_UnknownRequest(t *testing.T) {
	store := &mockStore{
		loadFunc: func(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
			return nil, fmt.Errorf("%w: %s", port.ErrNotFound, id)
		},
	}
	svc := newTestService(store)

	_, err := svc.History(context.Background(), "missing")
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestBoard_ProjectsStoreSnapshot(t *testing.T) {
	store := &mockStore{
		listAllFunc: func(ctx context.Context) ([]*entity.PurchaseRequest, error) {
			return []*entity.PurchaseRequest{
				{ID: "a", CurrentStage: stage.StageCreated.String()},
				{ID: "b", CurrentStage: stage.StageMDApproval.String()},
			}, nil
		},
	}
	svc := newTestService(store)

	board, err := svc.Board(context.Background())
	require.NoError(t, err)

	assert.Len(t, board[stage.StageCreated], 1)
	assert.Len(t, board[stage.StageMDApproval], 1)
	assert.Empty(t, board[stage.StageCompleted])
}

func TestBoard_PropagatesStoreError(t *testing.T) {
	store := &mockStore{
		listAllFunc: func(ctx context.Context) ([]*entity.PurchaseRequest, error) {
			return nil, errors.New("db down")
		},
	}
	svc := newTestService(store)

	_, err := svc.Board(context.Background())
	assert.Error(t, err)
}
