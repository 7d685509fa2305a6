package handler

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/mobile-zone/internal/domain/catalog"
	"github.com/xenking/mobile-zone/internal/session"
)

// listProducts reconstructs the filter state from the request parameters,
// runs one query, and returns the page of results. A zero-match result is a
// normal 200 with totalMatches 0 — "No products found" is the renderer's
// call, not an error.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	state, heading := session.StateFromQuery(r.URL.Query(), h.catalog)
	view := h.catalog.Query(state, h.pageSize)

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, p := range view.Items {
					encodeProduct(e, p)
				}
			})
		})
		e.Field("totalMatches", func(e *jx.Encoder) { e.Int(view.TotalMatches) })
		e.Field("page", func(e *jx.Encoder) { e.Int(view.Page) })
		e.Field("totalPages", func(e *jx.Encoder) { e.Int(view.TotalPages) })
		if heading != "" {
			e.Field("heading", func(e *jx.Encoder) { e.Str(heading) })
		}
	})
	writeJSON(w, http.StatusOK, &e)
}

// getProduct returns the detail view for one product.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.catalog.ByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "catalog lookup failed")
		return
	}

	var e jx.Encoder
	encodeProduct(&e, p)
	writeJSON(w, http.StatusOK, &e)
}

func encodeProduct(e *jx.Encoder, p catalog.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("cat", func(e *jx.Encoder) { e.Str(string(p.Category)) })
		e.Field("price", func(e *jx.Encoder) { e.Int64(p.Price) })
		e.Field("oldPrice", func(e *jx.Encoder) { e.Int64(p.OldPrice) })
		e.Field("img", func(e *jx.Encoder) { e.Str(p.Image) })
		e.Field("rating", func(e *jx.Encoder) { e.Int(p.Rating) })
		e.Field("reviews", func(e *jx.Encoder) { e.Int(p.Reviews) })
		e.Field("desc", func(e *jx.Encoder) { e.Str(p.Description) })
		e.Field("discountPercent", func(e *jx.Encoder) { e.Int(p.DiscountPercent()) })
	})
}
