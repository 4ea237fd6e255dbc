package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TarielTopuria/EcommerceAngular/internal/domain"
	apperrors "github.com/TarielTopuria/EcommerceAngular/pkg/errors"
	"github.com/TarielTopuria/EcommerceAngular/pkg/httpclient"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewClient(srv.URL, httpclient.New(httpclient.DefaultConfig()), logger)
}

func TestListProducts(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Correlation-ID"))
		_ = json.NewEncoder(w).Encode([]domain.Product{
			{ID: 1, Title: "Backpack", Price: 109.95},
			{ID: 2, Title: "T-Shirt", Price: 22.3},
		})
	}))

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Backpack", products[0].Title)
}

func TestListCategories(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/categories", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]string{"electronics", "jewelery"})
	}))

	categories, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "jewelery"}, categories)
}

func TestGetProduct(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/5", r.URL.Path)
		_ = json.NewEncoder(w).Encode(domain.Product{ID: 5, Title: "Ring"})
	}))

	p, err := c.GetProduct(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
}

func TestGetProduct_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetProduct(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateProduct_SendsPayloadWithoutID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasID := body["id"]
		assert.False(t, hasID)

		_ = json.NewEncoder(w).Encode(domain.Product{ID: 21, Title: body["title"].(string)})
	}))

	p, err := c.CreateProduct(context.Background(), domain.CreateProduct{
		Title: "New", Price: 1, Description: "d", Image: "https://x/y.jpg", Category: "misc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(21), p.ID)
}

func TestUpdateProduct_EmbedsID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/7", r.URL.Path)

		var body domain.Product
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(7), body.ID)

		_ = json.NewEncoder(w).Encode(body)
	}))

	p, err := c.UpdateProduct(context.Background(), 7, domain.Product{Title: "Edited"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "Edited", p.Title)
}

func TestDeleteProduct(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/products/3", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, c.DeleteProduct(context.Background(), 3))
}

func TestLogin_ReturnsToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "mor_2314", body["username"])
		assert.Equal(t, "83r5^_", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]string{"token": "abc"})
	}))

	token, err := c.Login(context.Background(), "mor_2314", "83r5^_")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestLogin_EmptyResponseYieldsEmptyToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	token, err := c.Login(context.Background(), "u", "p")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestLogin_UnauthorizedPropagates(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "username or password is incorrect", http.StatusUnauthorized)
	}))

	_, err := c.Login(context.Background(), "u", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRegister_PassesBodyThrough(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]int{"id": 11})
	}))

	raw, err := c.Register(context.Background(), domain.RegisterRequest{
		Email: "a@b.com", Username: "u", Password: "p", Phone: "555",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":11}`, string(raw))
}
