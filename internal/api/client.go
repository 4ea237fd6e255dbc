package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/TarielTopuria/EcommerceAngular/internal/domain"
	"github.com/TarielTopuria/EcommerceAngular/pkg/httpclient"
	"github.com/TarielTopuria/EcommerceAngular/pkg/logger"
)

// Doer executes a single HTTP request. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy it.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to a fakestoreapi-compatible catalog and auth API.
type Client struct {
	baseURL string
	http    Doer
	logger  *slog.Logger
}

// NewClient creates a remote API client rooted at baseURL.
func NewClient(baseURL string, doer Doer, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    doer,
		logger:  log,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// ListProducts fetches the full remote product list.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &products, "products"); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories fetches the distinct category list.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.doJSON(ctx, http.MethodGet, "/products/categories", nil, &categories, "categories"); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), nil, &p, "product"); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// CreateProduct posts a new product. The response is Product-like: the
// remote may or may not return a usable id.
func (c *Client) CreateProduct(ctx context.Context, in domain.CreateProduct) (domain.Product, error) {
	var p domain.Product
	if err := c.doJSON(ctx, http.MethodPost, "/products", in, &p, "product"); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// UpdateProduct puts a product with its id embedded in path and payload.
func (c *Client) UpdateProduct(ctx context.Context, id int64, p domain.Product) (domain.Product, error) {
	p.ID = id
	var out domain.Product
	if err := c.doJSON(ctx, http.MethodPut, "/products/"+strconv.FormatInt(id, 10), p, &out, "product"); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

// DeleteProduct deletes a product remotely.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/products/"+strconv.FormatInt(id, 10), nil, nil, "product")
}

// Login exchanges credentials for an opaque token. An empty token in a 2xx
// response is returned as-is; classifying it is the session store's call.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &resp, "auth")
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register forwards a registration payload. The remote response shape is not
// relied upon, so the raw body is handed back.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/users", req, &out, "user"); err != nil {
		return nil, err
	}
	return out, nil
}

// doJSON executes one request against the API. Transport errors and non-2xx
// statuses propagate to the caller unchanged; there are no retries.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, resource string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", resource, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	correlationID := uuid.New().String()
	req.Header.Set("X-Correlation-ID", correlationID)
	ctx = logger.WithCorrelationID(ctx, correlationID)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// ParseResponseError consumes and closes the body.
		return httpclient.ParseResponseError(resp, resource)
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}

	c.logger.DebugContext(ctx, "api request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	return nil
}
