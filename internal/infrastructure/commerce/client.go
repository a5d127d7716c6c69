package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/account"
	"github.com/shop/storefront/internal/domain/catalog"
	"github.com/shop/storefront/internal/domain/order"
	"github.com/shop/storefront/internal/domain/shared"
)

// maxResponseSize is the maximum allowed response size from the commerce API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client is the HTTP client for the remote commerce API. It implements the
// catalog, favorites, order and account remote ports, and converts transport
// and HTTP failures into domain error kinds before returning.
type Client struct {
	config     *Config
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
}

// NewClient creates a commerce API client with the given configuration.
// tokens may be nil for an anonymous client.
func NewClient(config *Config, tokens TokenSource, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		tokens: tokens,
		logger: logger,
	}, nil
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

// List returns all valid product records. Records that fail to decode or
// validate are logged and dropped so one bad row cannot blank the storefront.
func (c *Client) List(ctx context.Context) ([]catalog.Product, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/products", nil, &raw); err != nil {
		return nil, c.mapError(err)
	}
	return c.decodeProducts(raw), nil
}

// GetByID returns a single product
func (c *Client) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	var p catalog.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, c.mapError(err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListFavorites returns the current user's favorite products
func (c *Client) ListFavorites(ctx context.Context) ([]catalog.Product, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/favorites", nil, &raw); err != nil {
		return nil, c.mapError(err)
	}
	return c.decodeProducts(raw), nil
}

// AddFavorite marks a product as a favorite
func (c *Client) AddFavorite(ctx context.Context, productID string) error {
	err := c.do(ctx, http.MethodPost, "/favorites", favoriteRequest{ProductID: productID}, nil)
	return c.mapError(err)
}

// RemoveFavorite removes a product from the favorites
func (c *Client) RemoveFavorite(ctx context.Context, productID string) error {
	err := c.do(ctx, http.MethodDelete, "/favorites/"+url.PathEscape(productID), nil, nil)
	return c.mapError(err)
}

func (c *Client) decodeProducts(raw []json.RawMessage) []catalog.Product {
	products := make([]catalog.Product, 0, len(raw))
	for _, msg := range raw {
		var p catalog.Product
		if err := json.Unmarshal(msg, &p); err != nil {
			c.logger.Warn("dropping undecodable product record", zap.Error(err))
			continue
		}
		if err := p.Validate(); err != nil {
			c.logger.Warn("dropping invalid product record",
				zap.String("product_id", p.ID), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

// ListOrders returns all orders for the current user
func (c *Client) ListOrders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, c.mapError(err)
	}
	return orders, nil
}

// GetOrderByID returns a single order
func (c *Client) GetOrderByID(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &o); err != nil {
		return nil, c.mapError(err)
	}
	return &o, nil
}

// CreateOrder creates an order and returns its server identity
func (c *Client) CreateOrder(ctx context.Context, req order.CreateRequest) (*order.CreateResult, error) {
	var result order.CreateResult
	if err := c.do(ctx, http.MethodPost, "/orders", req, &result); err != nil {
		return nil, c.mapError(err)
	}
	return &result, nil
}

// UpdateOrderStatus requests a server-side status transition
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	var o order.Order
	path := "/orders/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPut, path, statusUpdateRequest{Status: status.String()}, &o); err != nil {
		return nil, c.mapError(err)
	}
	return &o, nil
}

// CancelOrder requests server-side cancellation
func (c *Client) CancelOrder(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(id)+"/cancel", nil, nil)
	return c.mapError(err)
}

// VerifyPayment confirms a gateway capture against the server. Any rejection
// is a reconciliation problem: the gateway believes it charged the customer,
// so the caller must not treat this as an ordinary failure.
func (c *Client) VerifyPayment(ctx context.Context, reference string) (*order.CreateResult, error) {
	var result order.CreateResult
	err := c.do(ctx, http.MethodPost, "/verify-payment", verifyPaymentRequest{Reference: reference}, &result)
	if err != nil {
		var remote *remoteError
		if errors.As(err, &remote) {
			return nil, fmt.Errorf("%w: %v", shared.ErrPaymentReconciliation, remote)
		}
		return nil, c.mapError(err)
	}
	return &result, nil
}

// ---------------------------------------------------------------------------
// Account
// ---------------------------------------------------------------------------

// FetchProfile returns the profile for the current credential
func (c *Client) FetchProfile(ctx context.Context) (*account.Profile, error) {
	var p account.Profile
	if err := c.do(ctx, http.MethodGet, "/account/profile", nil, &p); err != nil {
		return nil, c.mapError(err)
	}
	return &p, nil
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

// do performs one API request. A non-2xx response comes back as *remoteError;
// transport failures come back wrapped as shared.ErrNetwork.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := strings.TrimSuffix(c.config.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.APIKey != "" {
		req.Header.Set("X-API-Key", c.config.APIKey)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", shared.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remote := &remoteError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			remote.Code = eb.Code
			remote.Message = eb.Message
		}
		return remote
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// mapError translates a *remoteError into the domain error kinds the
// application layer branches on
func (c *Client) mapError(err error) error {
	if err == nil {
		return nil
	}
	var remote *remoteError
	if !errors.As(err, &remote) {
		return err
	}
	switch {
	case remote.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %v", shared.ErrNotFound, remote)
	case remote.StatusCode == http.StatusUnauthorized || remote.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %v", shared.ErrUnauthorized, remote)
	case remote.StatusCode == http.StatusBadRequest || remote.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, remote)
	case remote.StatusCode >= 500:
		// Upstream outages look the same as unreachability to the caller
		return fmt.Errorf("%w: %v", shared.ErrNetwork, remote)
	}
	return remote
}

var (
	_ catalog.Repository          = (*Client)(nil)
	_ catalog.FavoritesRepository = (*Client)(nil)
	_ account.Remote              = (*Client)(nil)
)

// OrderRepository adapts the client to the order repository port
type OrderRepository struct {
	client *Client
}

// NewOrderRepository creates the order repository backed by the commerce client
func NewOrderRepository(client *Client) *OrderRepository {
	return &OrderRepository{client: client}
}

func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	return r.client.ListOrders(ctx)
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	return r.client.GetOrderByID(ctx, id)
}

func (r *OrderRepository) Create(ctx context.Context, req order.CreateRequest) (*order.CreateResult, error) {
	return r.client.CreateOrder(ctx, req)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	return r.client.UpdateOrderStatus(ctx, id, status)
}

func (r *OrderRepository) Cancel(ctx context.Context, id string) error {
	return r.client.CancelOrder(ctx, id)
}

func (r *OrderRepository) VerifyPayment(ctx context.Context, reference string) (*order.CreateResult, error) {
	return r.client.VerifyPayment(ctx, reference)
}

var _ order.Repository = (*OrderRepository)(nil)
