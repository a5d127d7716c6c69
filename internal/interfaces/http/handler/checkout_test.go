package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	checkoutapp "github.com/shop/storefront/internal/application/checkout"
	"github.com/shop/storefront/internal/domain/cart"
	"github.com/shop/storefront/internal/domain/checkout"
	"github.com/shop/storefront/internal/domain/order"
	"github.com/shop/storefront/internal/domain/shared"
	"github.com/shop/storefront/internal/infrastructure/event"
	"github.com/shop/storefront/internal/infrastructure/storage"
	"github.com/shop/storefront/internal/interfaces/http/dto"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) List(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, req order.CreateRequest) (*order.CreateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.CreateResult), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Cancel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) VerifyPayment(ctx context.Context, reference string) (*order.CreateResult, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.CreateResult), args.Error(1)
}

// MockGateway is a mock implementation of checkout.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Capture(ctx context.Context, req checkout.CaptureRequest) (*checkout.CaptureResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.CaptureResult), args.Error(1)
}

type checkoutFixture struct {
	orders  *MockOrderRepository
	gateway *MockGateway
}

func newCheckoutFixture(t *testing.T) (*checkoutFixture, *gin.Engine) {
	t.Helper()
	logger := zap.NewNop()
	store := storage.NewMemoryStore()
	carts := storage.NewKVCartRepository(store)
	drafts := storage.NewKVDraftRepository(store)

	// Seed a one-item cart
	c := cart.Empty().AddOrIncrement(cart.ProductSummary{
		ID: "p-1", Name: "Desk Lamp", Price: decimal.NewFromInt(2000),
	})
	require.NoError(t, carts.Save(context.Background(), c))

	orders := &MockOrderRepository{}
	gateway := &MockGateway{}
	bus := event.NewInMemoryEventBus(logger)

	service := checkoutapp.NewCheckoutService(drafts, carts, orders, gateway, bus, logger)
	engine := newRouter(t, NewCheckoutHandler(service))
	return &checkoutFixture{orders: orders, gateway: gateway}, engine
}

// decodeInto unmarshals a recorded response body into out
func decodeInto(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestCheckoutHandler_IncompleteDraftFailsValidation(t *testing.T) {
	_, engine := newCheckoutFixture(t)

	w := performJSON(engine, http.MethodPost, "/api/v1/checkout/submit", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Details, "each missing field is named")
}

func TestCheckoutHandler_SubmitBankTransferCompletes(t *testing.T) {
	f, engine := newCheckoutFixture(t)

	fillDraft(t, engine)
	w := performJSON(engine, http.MethodPut, "/api/v1/checkout/payment-method",
		SetPaymentMethodRequest{Method: checkout.PaymentBankTransfer.String()})
	require.Equal(t, http.StatusOK, w.Code)

	f.orders.On("Create", mock.Anything, mock.Anything).
		Return(&order.CreateResult{OrderID: "o-1", OrderNumber: "ORD-001"}, nil)

	w = performJSON(engine, http.MethodPost, "/api/v1/checkout/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data checkoutapp.SubmitResult `json:"data"`
	}
	decodeInto(t, w, &resp)
	assert.Equal(t, checkout.StateCompleted, resp.Data.State)
	assert.Equal(t, "ORD-001", resp.Data.OrderNumber)
	f.gateway.AssertNotCalled(t, "Capture")
}

func TestCheckoutHandler_DismissedCaptureReturnsToDrafting(t *testing.T) {
	f, engine := newCheckoutFixture(t)
	fillDraft(t, engine)

	f.orders.On("Create", mock.Anything, mock.Anything).
		Return(&order.CreateResult{OrderID: "o-1", OrderNumber: "ORD-001"}, nil)
	f.gateway.On("Capture", mock.Anything, mock.Anything).
		Return(&checkout.CaptureResult{Status: checkout.CaptureDismissed}, nil)

	w := performJSON(engine, http.MethodPost, "/api/v1/checkout/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data checkoutapp.SubmitResult `json:"data"`
	}
	decodeInto(t, w, &resp)
	assert.True(t, resp.Data.Dismissed)
	assert.Equal(t, checkout.StateDrafting, resp.Data.State)
	f.orders.AssertNotCalled(t, "VerifyPayment")
}

func TestCheckoutHandler_VerifyFailureIsConflict(t *testing.T) {
	f, engine := newCheckoutFixture(t)
	fillDraft(t, engine)

	f.orders.On("Create", mock.Anything, mock.Anything).
		Return(&order.CreateResult{OrderID: "o-1", OrderNumber: "ORD-001"}, nil)
	f.gateway.On("Capture", mock.Anything, mock.Anything).
		Return(&checkout.CaptureResult{Status: checkout.CaptureSucceeded, Reference: "SF-x"}, nil)
	f.orders.On("VerifyPayment", mock.Anything, mock.Anything).
		Return(nil, shared.ErrPaymentReconciliation)

	w := performJSON(engine, http.MethodPost, "/api/v1/checkout/submit", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodePaymentReconciliation, resp.Error.Code)
}

func TestCheckoutHandler_RejectsUnknownDeliveryMethod(t *testing.T) {
	_, engine := newCheckoutFixture(t)

	w := performJSON(engine, http.MethodPut, "/api/v1/checkout/delivery-method",
		SetDeliveryMethodRequest{Method: "teleport"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutHandler_DeliveryMethodReturnsRecomputedTotals(t *testing.T) {
	_, engine := newCheckoutFixture(t)

	w := performJSON(engine, http.MethodPut, "/api/v1/checkout/delivery-method",
		SetDeliveryMethodRequest{Method: cart.DeliveryExpress.String()})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			DeliveryFee string `json:"delivery_fee"`
			Total       string `json:"total"`
		} `json:"data"`
	}
	decodeInto(t, w, &resp)
	// 2000 + 7.5% VAT + 3500 express delivery
	assert.Equal(t, "3500.00", resp.Data.DeliveryFee)
	assert.Equal(t, "5650.00", resp.Data.Total)
}

func TestCheckoutHandler_Locations(t *testing.T) {
	_, engine := newCheckoutFixture(t)

	w := performJSON(engine, http.MethodGet, "/api/v1/checkout/locations", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data LocationsResponse `json:"data"`
	}
	decodeInto(t, w, &resp)
	assert.Contains(t, resp.Data.States, "Lagos")
	assert.Contains(t, resp.Data.Cities["Lagos"], "Ikeja")
}

// fillDraft completes the draft with valid shipping details
func fillDraft(t *testing.T, engine *gin.Engine) {
	t.Helper()
	name := "Ada Obi"
	email := "ada@example.com"
	state := "Lagos"
	city := "Ikeja"
	address := "1 Marina Road"
	phone := "+2348012345678"
	w := performJSON(engine, http.MethodPatch, "/api/v1/checkout/draft", checkoutapp.UpdateDraftRequest{
		Name: &name, Email: &email, State: &state, City: &city, Address: &address, Phone: &phone,
	})
	require.Equal(t, http.StatusOK, w.Code)
}
