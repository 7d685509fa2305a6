package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/mobile-zone/catalogdata"
	"github.com/xenking/mobile-zone/internal/badge"
	"github.com/xenking/mobile-zone/internal/domain/cart"
	"github.com/xenking/mobile-zone/internal/domain/catalog"
	"github.com/xenking/mobile-zone/internal/domain/deal"
	"github.com/xenking/mobile-zone/internal/handler"
	"github.com/xenking/mobile-zone/internal/storage/localstore"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	products, err := catalogdata.Seed()
	require.NoError(t, err)
	store, err := catalog.NewStore(products)
	require.NoError(t, err)

	kv := localstore.NewMem()
	cartSvc := cart.NewService(localstore.NewCartStorage(kv), nil, cart.DefaultConfig, nil)
	counter := badge.New(cartSvc)
	dealSvc := deal.NewService(localstore.NewDealStorage(kv))

	h := handler.New(handler.Config{}, store, cartSvc, counter, dealSvc)
	return h.Routes()
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestListProducts(t *testing.T) {
	h := newTestHandler(t)

	t.Run("default listing", func(t *testing.T) {
		w, body := doJSON(t, h, http.MethodGet, "/api/products", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(16), body["totalMatches"])
		assert.Equal(t, float64(1), body["page"])
		assert.Equal(t, float64(2), body["totalPages"])
		assert.Len(t, body["items"], 8)
		assert.NotContains(t, body, "heading")
	})

	t.Run("category navigation", func(t *testing.T) {
		w, body := doJSON(t, h, http.MethodGet, "/api/products?cat=chargers", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(4), body["totalMatches"])
		assert.Equal(t, "Chargers", body["heading"])
	})

	t.Run("search sort and page combine", func(t *testing.T) {
		w, body := doJSON(t, h, http.MethodGet, "/api/products?search=charger&sort=price-asc", "")

		assert.Equal(t, http.StatusOK, w.Code)
		items := body["items"].([]any)
		require.Len(t, items, 4)
		first := items[0].(map[string]any)
		assert.Equal(t, "Braided USB-C Cable", first["name"])
	})

	t.Run("zero matches is still ok", func(t *testing.T) {
		w, body := doJSON(t, h, http.MethodGet, "/api/products?search=nosuchthing", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(0), body["totalMatches"])
		assert.Empty(t, body["items"])
	})
}

func TestGetProduct(t *testing.T) {
	h := newTestHandler(t)

	t.Run("found", func(t *testing.T) {
		w, body := doJSON(t, h, http.MethodGet, "/api/products/9", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "XB900 Premium Headphones", body["name"])
		assert.Equal(t, float64(4499), body["price"])
		// 4500/8999 rounds to 50%.
		assert.Equal(t, float64(50), body["discountPercent"])
	})

	t.Run("not found", func(t *testing.T) {
		w, body := doJSON(t, h, http.MethodGet, "/api/products/999", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "product not found", body["message"])
	})

	t.Run("invalid id", func(t *testing.T) {
		w, _ := doJSON(t, h, http.MethodGet, "/api/products/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCartFlow(t *testing.T) {
	h := newTestHandler(t)

	// Add two chargers.
	w, body := doJSON(t, h, http.MethodPost, "/api/cart/items", `{"id":2,"qty":2}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "65W GaN Fast Charger", body["added"])
	assert.Equal(t, float64(2), body["count"])

	// Adding the same product merges the line.
	w, body = doJSON(t, h, http.MethodPost, "/api/cart/items", `{"id":2}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(3), body["count"])

	// Cart view: one line, qty 3, derived totals.
	w, body = doJSON(t, h, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	line := items[0].(map[string]any)
	assert.Equal(t, float64(3), line["qty"])

	totals := body["totals"].(map[string]any)
	assert.Equal(t, float64(3897), totals["subtotal"])
	assert.Equal(t, float64(2100), totals["savings"])
	assert.Equal(t, float64(0), totals["delivery"])
	assert.Equal(t, float64(3897), totals["grandTotal"])

	// Set an absolute quantity.
	w, body = doJSON(t, h, http.MethodPut, "/api/cart/items/2", `{"qty":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])

	// Badge endpoint agrees.
	w, body = doJSON(t, h, http.MethodGet, "/api/cart/count", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])

	// Setting quantity to zero removes the line.
	w, body = doJSON(t, h, http.MethodPut, "/api/cart/items/2", `{"qty":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["items"])
	assert.Equal(t, float64(0), body["count"])
}

func TestAddCartItemRejections(t *testing.T) {
	h := newTestHandler(t)

	t.Run("unknown product", func(t *testing.T) {
		w, body := doJSON(t, h, http.MethodPost, "/api/cart/items", `{"id":999}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "product not found", body["message"])
	})

	t.Run("malformed body", func(t *testing.T) {
		w, _ := doJSON(t, h, http.MethodPost, "/api/cart/items", `{broken`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRemoveCartItem(t *testing.T) {
	h := newTestHandler(t)

	w, _ := doJSON(t, h, http.MethodPost, "/api/cart/items", `{"id":3}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := doJSON(t, h, http.MethodDelete, "/api/cart/items/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["items"])

	// Removing an absent line stays a 200 no-op.
	w, _ = doJSON(t, h, http.MethodDelete, "/api/cart/items/3", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClearCart(t *testing.T) {
	h := newTestHandler(t)

	w, _ := doJSON(t, h, http.MethodPost, "/api/cart/items", `{"id":4,"qty":2}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, h, http.MethodDelete, "/api/cart", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, body := doJSON(t, h, http.MethodGet, "/api/cart/count", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["count"])
}

func TestGetDeal(t *testing.T) {
	h := newTestHandler(t)

	w, body := doJSON(t, h, http.MethodGet, "/api/deal", "")
	require.Equal(t, http.StatusOK, w.Code)

	deadline, err := time.Parse(time.RFC3339, body["deadline"].(string))
	require.NoError(t, err)
	assert.True(t, deadline.After(time.Now()))

	remaining := body["remaining"].(map[string]any)
	assert.Contains(t, remaining, "hours")
	assert.Contains(t, remaining, "minutes")
	assert.Contains(t, remaining, "seconds")
}
