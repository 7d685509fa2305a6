package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/mobile-zone/internal/domain/cart"
	"github.com/xenking/mobile-zone/internal/domain/catalog"
)

// addItemRequest is the POST /api/cart/items body.
type addItemRequest struct {
	ID  int
	Qty int
}

// addCartItem resolves the product, snapshots it into the cart, and returns
// the fresh badge count. Unknown products are rejected here — after this
// point the cart works off its own snapshot.
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAddItem(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	p, err := h.catalog.ByID(req.ID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusUnprocessableEntity, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "catalog lookup failed")
		return
	}

	h.cart.Add(cart.Snapshot{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		OldPrice: p.OldPrice,
		Img:      p.Image,
		Category: string(p.Category),
	}, req.Qty)

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("added", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("count", func(e *jx.Encoder) { e.Int(h.badge.Value()) })
	})
	writeJSON(w, http.StatusCreated, &e)
}

// setCartItemQty sets a line's quantity to an absolute value. Zero or
// negative removes the line; an unknown id is a silent no-op, matching the
// cart's total-function contract.
func (h *Handler) setCartItemQty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	qty, err := decodeQty(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	h.cart.SetQuantity(id, qty)
	h.writeCart(w)
}

// removeCartItem deletes a line. Absent ids are a no-op, not an error.
func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	h.cart.Remove(id)
	h.writeCart(w)
}

// clearCart removes the persisted cart state entirely.
func (h *Handler) clearCart(w http.ResponseWriter, _ *http.Request) {
	h.cart.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// getCart returns the cart lines and derived totals.
func (h *Handler) getCart(w http.ResponseWriter, _ *http.Request) {
	h.writeCart(w)
}

// getCartCount returns just the badge count.
func (h *Handler) getCartCount(w http.ResponseWriter, _ *http.Request) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("count", func(e *jx.Encoder) { e.Int(h.badge.Value()) })
	})
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) writeCart(w http.ResponseWriter) {
	items := h.cart.Items()
	totals := h.cart.Totals()

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, l := range items {
					encodeLine(e, l)
				}
			})
		})
		e.Field("totals", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("subtotal", func(e *jx.Encoder) { e.Int64(totals.Subtotal) })
				e.Field("savings", func(e *jx.Encoder) { e.Int64(totals.Savings) })
				e.Field("delivery", func(e *jx.Encoder) { e.Int64(totals.Delivery) })
				e.Field("grandTotal", func(e *jx.Encoder) { e.Int64(totals.GrandTotal) })
			})
		})
		e.Field("count", func(e *jx.Encoder) { e.Int(h.badge.Value()) })
	})
	writeJSON(w, http.StatusOK, &e)
}

func encodeLine(e *jx.Encoder, l cart.Line) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int(l.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(l.Name) })
		e.Field("price", func(e *jx.Encoder) { e.Int64(l.Price) })
		e.Field("oldPrice", func(e *jx.Encoder) { e.Int64(l.OldPrice) })
		e.Field("img", func(e *jx.Encoder) { e.Str(l.Img) })
		e.Field("category", func(e *jx.Encoder) { e.Str(l.Category) })
		e.Field("qty", func(e *jx.Encoder) { e.Int(l.Qty) })
	})
}

func decodeAddItem(body io.Reader) (addItemRequest, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return addItemRequest{}, err
	}
	var req addItemRequest
	d := jx.DecodeBytes(data)
	err = d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			req.ID, err = d.Int()
		case "qty":
			req.Qty, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
	return req, err
}

func decodeQty(body io.Reader) (int, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return 0, err
	}
	var qty int
	d := jx.DecodeBytes(data)
	err = d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "qty":
			qty, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
	return qty, err
}
