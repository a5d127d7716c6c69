package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/order"
	"github.com/shop/storefront/internal/domain/shared"
)

// MockRemote is a mock implementation of order.Repository
type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) List(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockRemote) GetByID(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockRemote) Create(ctx context.Context, req order.CreateRequest) (*order.CreateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.CreateResult), args.Error(1)
}

func (m *MockRemote) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockRemote) Cancel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRemote) VerifyPayment(ctx context.Context, reference string) (*order.CreateResult, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.CreateResult), args.Error(1)
}

// MockCache is a mock implementation of order.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) List(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockCache) Get(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockCache) Put(ctx context.Context, o order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockCache) PendingSync(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

// MockPublisher is a mock implementation of shared.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func testOrder(id string, status order.Status) order.Order {
	return order.Order{
		ID:          id,
		OrderNumber: "ORD-" + id,
		Status:      status,
		Total:       decimal.NewFromInt(4000),
		CreatedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newService(remote *MockRemote, cache *MockCache, publisher *MockPublisher) *OrderService {
	return NewOrderService(remote, cache, publisher, zap.NewNop())
}

func TestOrderService_List_RefreshesCache(t *testing.T) {
	remote := new(MockRemote)
	cache := new(MockCache)
	publisher := new(MockPublisher)

	remote.On("List", mock.Anything).Return([]order.Order{
		testOrder("o-1", order.StatusPending),
		testOrder("o-2", order.StatusShipped),
	}, nil)
	cache.On("PendingSync", mock.Anything).Return([]order.Order{}, nil)
	cache.On("Put", mock.Anything, mock.Anything).Return(nil)

	views, err := newService(remote, cache, publisher).List(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Pending", views[0].Status.Label)
	cache.AssertNumberOfCalls(t, "Put", 2)
}

func TestOrderService_List_OverlaysPendingSync(t *testing.T) {
	remote := new(MockRemote)
	cache := new(MockCache)
	publisher := new(MockPublisher)

	local := testOrder("o-1", order.StatusCancelled)
	local.PendingSync = true

	remote.On("List", mock.Anything).Return([]order.Order{
		testOrder("o-1", order.StatusPending),
	}, nil)
	cache.On("PendingSync", mock.Anything).Return([]order.Order{local}, nil)

	views, err := newService(remote, cache, publisher).List(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Cancelled", views[0].Status.Label)
	assert.True(t, views[0].PendingSync)
	// The overlaid copy must not be overwritten by the server's stale view
	cache.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestOrderService_List_ServesCacheOffline(t *testing.T) {
	remote := new(MockRemote)
	cache := new(MockCache)
	publisher := new(MockPublisher)

	remote.On("List", mock.Anything).Return(nil, shared.ErrNetwork)
	cache.On("List", mock.Anything).Return([]order.Order{
		testOrder("o-1", order.StatusDelivered),
	}, nil)

	views, err := newService(remote, cache, publisher).List(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Delivered", views[0].Status.Label)
}

func TestOrderService_Cancel_ServerFirst(t *testing.T) {
	remote := new(MockRemote)
	cache := new(MockCache)
	publisher := new(MockPublisher)

	o := testOrder("o-1", order.StatusPending)
	cache.On("Get", mock.Anything, "o-1").Return(nil, shared.ErrKeyNotFound)
	remote.On("GetByID", mock.Anything, "o-1").Return(&o, nil)
	remote.On("Cancel", mock.Anything, "o-1").Return(nil)
	cache.On("Put", mock.Anything, mock.MatchedBy(func(saved order.Order) bool {
		return saved.Status == order.StatusCancelled && !saved.PendingSync
	})).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	view, err := newService(remote, cache, publisher).Cancel(context.Background(), "o-1")

	require.NoError(t, err)
	assert.Equal(t, "Cancelled", view.Status.Label)
	assert.False(t, view.PendingSync)
	require.NotEmpty(t, view.History)
	assert.Equal(t, "Order Cancelled", view.History[len(view.History)-1].StatusLabel)
}

func TestOrderService_Cancel_OfflineFallsBackToLocal(t *testing.T) {
	remote := new(MockRemote)
	cache := new(MockCache)
	publisher := new(MockPublisher)

	o := testOrder("o-1", order.StatusConfirmed)
	cache.On("Get", mock.Anything, "o-1").Return(nil, shared.ErrKeyNotFound)
	remote.On("GetByID", mock.Anything, "o-1").Return(&o, nil)
	remote.On("Cancel", mock.Anything, "o-1").Return(shared.ErrNetwork)
	cache.On("Put", mock.Anything, mock.MatchedBy(func(saved order.Order) bool {
		return saved.Status == order.StatusCancelled && saved.PendingSync
	})).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	view, err := newService(remote, cache, publisher).Cancel(context.Background(), "o-1")

	require.NoError(t, err)
	assert.True(t, view.PendingSync)
	assert.Equal(t, "Cancelled", view.Status.Label)
	cache.AssertExpectations(t)
}

func TestOrderService_Cancel_TerminalRejected(t *testing.T) {
	remote := new(MockRemote)
	cache := new(MockCache)
	publisher := new(MockPublisher)

	o := testOrder("o-1", order.StatusDelivered)
	cache.On("Get", mock.Anything, "o-1").Return(nil, shared.ErrKeyNotFound)
	remote.On("GetByID", mock.Anything, "o-1").Return(&o, nil)

	_, err := newService(remote, cache, publisher).Cancel(context.Background(), "o-1")

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_STATE", derr.Code)
	remote.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}

func TestOrderService_Get_NotFound(t *testing.T) {
	remote := new(MockRemote)
	cache := new(MockCache)
	publisher := new(MockPublisher)

	cache.On("Get", mock.Anything, "missing").Return(nil, shared.ErrKeyNotFound)
	remote.On("GetByID", mock.Anything, "missing").Return(nil, shared.ErrNotFound)

	_, err := newService(remote, cache, publisher).Get(context.Background(), "missing")

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ORDER_NOT_FOUND", derr.Code)
}

func TestOrderService_Get_PrefersUnreconciledLocalCopy(t *testing.T) {
	remote := new(MockRemote)
	cache := new(MockCache)
	publisher := new(MockPublisher)

	local := testOrder("o-1", order.StatusCancelled)
	local.PendingSync = true
	cache.On("Get", mock.Anything, "o-1").Return(&local, nil)

	view, err := newService(remote, cache, publisher).Get(context.Background(), "o-1")

	require.NoError(t, err)
	assert.True(t, view.PendingSync)
	remote.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus_RejectsIllegalTransition(t *testing.T) {
	remote := new(MockRemote)
	cache := new(MockCache)
	publisher := new(MockPublisher)

	o := testOrder("o-1", order.StatusPending)
	cache.On("Get", mock.Anything, "o-1").Return(nil, shared.ErrKeyNotFound)
	remote.On("GetByID", mock.Anything, "o-1").Return(&o, nil)

	_, err := newService(remote, cache, publisher).UpdateStatus(context.Background(), "o-1", order.StatusDelivered)

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_STATE", derr.Code)
	remote.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Reconcile(t *testing.T) {
	remote := new(MockRemote)
	cache := new(MockCache)
	publisher := new(MockPublisher)

	first := testOrder("o-1", order.StatusCancelled)
	first.PendingSync = true
	second := testOrder("o-2", order.StatusCancelled)
	second.PendingSync = true

	cache.On("PendingSync", mock.Anything).Return([]order.Order{first, second}, nil)
	remote.On("Cancel", mock.Anything, "o-1").Return(nil)
	remote.On("Cancel", mock.Anything, "o-2").Return(shared.ErrNetwork)
	cache.On("Put", mock.Anything, mock.MatchedBy(func(saved order.Order) bool {
		return saved.ID == "o-1" && !saved.PendingSync
	})).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	reconciled, err := newService(remote, cache, publisher).Reconcile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, reconciled, "only the accepted cancellation is reconciled")
	cache.AssertExpectations(t)
}

func TestToDetailView_Progress(t *testing.T) {
	o := testOrder("o-1", order.StatusShipped)
	view := ToDetailView(o)

	assert.Equal(t, []string{"Placed", "Processing", "Shipped", "Delivered"}, view.Progress.Steps)
	assert.Equal(t, []bool{true, true, true, false}, view.Progress.Reached)
}
