// Package shopify implements the order-lookup collaborator against the
// Shopify Admin REST API.
package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
	"github.com/nautilus-labs/voxcart/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.OrderService = (*Client)(nil)

// apiVersion is the pinned Admin REST API version.
const apiVersion = "2024-01"

// bodyPreviewLimit caps error body previews to keep logs readable and
// avoid echoing large responses.
const bodyPreviewLimit = 400

// recentScanLimit is how many recent orders are scanned when resolving
// a human-facing order number. Order-number filtering differs across
// REST API versions, so a scan of the recent window is the stable path.
const recentScanLimit = 50

const (
	cacheTTL       = 30 * time.Second
	cacheSweep     = time.Minute
	requestsPerSec = 2 // Shopify standard plan leaky bucket
)

// Client talks to one store's Admin REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *gocache.Cache
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Used in tests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL overrides the derived store URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(cl *Client) {
		cl.baseURL = strings.TrimRight(u, "/")
	}
}

// NewClient creates a client for the given store. storeName accepts
// "my-store", "my-store.myshopify.com", or a full URL.
func NewClient(storeName, accessToken string, opts ...Option) *Client {
	store := normaliseStoreName(storeName)

	c := &Client{
		baseURL: fmt.Sprintf("https://%s.myshopify.com/admin/api/%s", store, apiVersion),
		token:   accessToken,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 90 * time.Second,
				}).DialContext,
				ResponseHeaderTimeout: 10 * time.Second,
				IdleConnTimeout:       90 * time.Second,
				MaxIdleConnsPerHost:   4,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), requestsPerSec),
		cache:   gocache.New(cacheTTL, cacheSweep),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// normaliseStoreName reduces any accepted store spelling to the bare
// subdomain.
func normaliseStoreName(storeName string) string {
	s := strings.TrimSpace(storeName)
	if s == "" {
		return s
	}
	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil && u.Host != "" {
			s = u.Host
		}
	}
	return strings.TrimSuffix(s, ".myshopify.com")
}

// GetOrderByID fetches a single order by its numeric Shopify ID.
func (c *Client) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}

	cacheKey := "order:" + orderID
	if cached, ok := c.cache.Get(cacheKey); ok {
		order := cached.(domain.Order)
		return &order, nil
	}

	var payload struct {
		Order *apiOrder `json:"order"`
	}
	err := c.requestJSON(ctx, http.MethodGet, "/orders/"+orderID+".json", nil, &payload)
	if err != nil {
		var apiErr *domain.OrderAPIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	if payload.Order == nil {
		return nil, domain.ErrOrderNotFound
	}

	order := payload.Order.toDomain()
	c.cache.SetDefault(cacheKey, order)
	return &order, nil
}

// GetOrderByNumber resolves a human-facing order number ("1001" or
// "#1001") by scanning the most recent orders and matching the name
// field, with a suffix match as fallback for stores that decorate
// order names.
func (c *Client) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	number := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(orderNumber), "#"))
	if number == "" {
		return nil, domain.ErrInvalidInput
	}

	params := url.Values{}
	params.Set("status", "any")
	params.Set("limit", strconv.Itoa(recentScanLimit))
	params.Set("order", "created_at desc")

	orders, err := c.listOrders(ctx, params)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		name := strings.TrimSpace(orders[i].Name)
		if name == "#"+number || name == number {
			order := orders[i].toDomain()
			return &order, nil
		}
	}
	for i := range orders {
		if strings.HasSuffix(strings.TrimSpace(orders[i].Name), number) {
			order := orders[i].toDomain()
			return &order, nil
		}
	}

	return nil, domain.ErrOrderNotFound
}

// SearchOrdersByEmail lists a customer's orders. An empty list is a
// valid result, not an error.
func (c *Client) SearchOrdersByEmail(ctx context.Context, email string, limit int) ([]domain.Order, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("email", email)
	params.Set("status", "any")
	params.Set("limit", strconv.Itoa(limit))

	orders, err := c.listOrders(ctx, params)
	if err != nil {
		return nil, err
	}
	return toDomainOrders(orders), nil
}

// RecentOrders lists the most recently created orders.
func (c *Client) RecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("status", "any")
	params.Set("limit", strconv.Itoa(limit))

	orders, err := c.listOrders(ctx, params)
	if err != nil {
		return nil, err
	}
	return toDomainOrders(orders), nil
}

// listOrders fetches /orders.json with the given filter params.
func (c *Client) listOrders(ctx context.Context, params url.Values) ([]apiOrder, error) {
	var payload struct {
		Orders []apiOrder `json:"orders"`
	}
	if err := c.requestJSON(ctx, http.MethodGet, "/orders.json", params, &payload); err != nil {
		return nil, err
	}
	return payload.Orders, nil
}

// requestJSON performs one rate-limited request and decodes the 200
// response. Any other outcome becomes an *domain.OrderAPIError carrying
// status, a truncated body preview, and the call-limit headers.
func (c *Client) requestJSON(ctx context.Context, method, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return &domain.OrderAPIError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.OrderAPIError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, bodyPreviewLimit+1))
		preview := strings.ReplaceAll(strings.TrimSpace(string(body)), "\n", " ")
		if len(preview) > bodyPreviewLimit {
			preview = preview[:bodyPreviewLimit] + "…"
		}
		return &domain.OrderAPIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			CallLimit:  resp.Header.Get("X-Shopify-Shop-Api-Call-Limit"),
			RetryAfter: resp.Header.Get("Retry-After"),
			Body:       preview,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.OrderAPIError{
			Method: method,
			Path:   path,
			Err:    fmt.Errorf("decoding response: %w", err),
		}
	}
	return nil
}
