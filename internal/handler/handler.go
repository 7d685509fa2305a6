// Package handler maps the storefront core onto the loopback JSON API the
// rendering layer consumes.
package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/jx"

	"github.com/xenking/mobile-zone/internal/badge"
	"github.com/xenking/mobile-zone/internal/domain/cart"
	"github.com/xenking/mobile-zone/internal/domain/catalog"
	"github.com/xenking/mobile-zone/internal/domain/deal"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// PageSize is the number of products per listing page.
	PageSize int
}

// Handler exposes the public operation surface of the storefront core:
// product queries, cart mutations, badge count, and the deal countdown.
type Handler struct {
	catalog  *catalog.Store
	cart     *cart.Service
	badge    *badge.Counter
	deal     *deal.Service
	pageSize int
	now      func() time.Time
}

// New constructs a Handler with the required core dependencies.
func New(cfg Config, cat *catalog.Store, cartSvc *cart.Service, counter *badge.Counter, dealSvc *deal.Service) *Handler {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &Handler{
		catalog:  cat,
		cart:     cartSvc,
		badge:    counter,
		deal:     dealSvc,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// Routes returns the API route table.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)
	mux.HandleFunc("GET /api/cart", h.getCart)
	mux.HandleFunc("GET /api/cart/count", h.getCartCount)
	mux.HandleFunc("POST /api/cart/items", h.addCartItem)
	mux.HandleFunc("PUT /api/cart/items/{id}", h.setCartItemQty)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.removeCartItem)
	mux.HandleFunc("DELETE /api/cart", h.clearCart)
	mux.HandleFunc("GET /api/deal", h.getDeal)
	return mux
}

// writeJSON sends a jx-encoded body with the given status.
func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError sends the API error shape: {"code": ..., "message": ...}.
func writeError(w http.ResponseWriter, status int, message string) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Int(status) })
		e.Field("message", func(e *jx.Encoder) { e.Str(message) })
	})
	writeJSON(w, status, &e)
}
