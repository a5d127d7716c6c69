package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/order"
	"github.com/shop/storefront/internal/domain/shared"
)

type staticTokens string

func (s staticTokens) Token(ctx context.Context) (string, bool) {
	return string(s), s != ""
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(NewConfig(server.URL, "test-key"), tokens, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestClient_ListDropsInvalidRecords(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"p-1","name":"Desk Lamp","price":"1500"},
			{"id":"p-2","price":"900"},
			{"id":"p-3","name":"Mug","price":"not-a-number"}
		]`))
	}), nil)

	products, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1, "the nameless and the undecodable record are dropped")
	assert.Equal(t, "p-1", products[0].ID)
}

func TestClient_GetByIDNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no such product"}`))
	}), nil)

	_, err := client.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := NewClient(NewConfig(server.URL, ""), nil, zap.NewNop())
	require.NoError(t, err)
	server.Close()

	_, err = client.ListOrders(context.Background())
	assert.ErrorIs(t, err, shared.ErrNetwork)
}

func TestClient_SendsAuthHeaders(t *testing.T) {
	var gotKey, gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}), staticTokens("tok-123"))

	_, err := client.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_CreateOrder(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)

		var req order.CreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "SF-abc", req.PaymentReference)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"order_id":"o-1","order_number":"ORD-001"}`))
	}), nil)

	result, err := client.CreateOrder(context.Background(), order.CreateRequest{
		Total:            decimal.NewFromInt(4000),
		PaymentMethod:    "bank-transfer",
		PaymentReference: "SF-abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "o-1", result.OrderID)
	assert.Equal(t, "ORD-001", result.OrderNumber)
}

func TestClient_VerifyPaymentRejectionIsReconciliationError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verify-payment", r.URL.Path)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"gateway disagrees"}`))
	}), nil)

	_, err := client.VerifyPayment(context.Background(), "SF-abc")
	assert.ErrorIs(t, err, shared.ErrPaymentReconciliation)
}

func TestClient_VerifyPaymentSuccess(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req verifyPaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "SF-abc", req.Reference)
		_, _ = w.Write([]byte(`{"order_id":"o-1","order_number":"ORD-001"}`))
	}), nil)

	result, err := client.VerifyPayment(context.Background(), "SF-abc")
	require.NoError(t, err)
	assert.Equal(t, "o-1", result.OrderID)
}

func TestClient_UnauthorizedMapsToDomainError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), nil)

	_, err := client.FetchProfile(context.Background())
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestClient_ServerErrorMapsToNetworkError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}), nil)

	_, err := client.ListOrders(context.Background())
	assert.ErrorIs(t, err, shared.ErrNetwork)
}

func TestClient_CancelOrder(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/o-1/cancel", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}), nil)

	repo := NewOrderRepository(client)
	assert.NoError(t, repo.Cancel(context.Background(), "o-1"))
}
