package localstore

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/mobile-zone/internal/domain/cart"
)

// CartKey is the storage key holding the cart payload.
const CartKey = "mz_cart"

var _ cart.Storage = (*CartStorage)(nil)

// CartStorage implements cart.Storage over a KV. The payload is a JSON array
// of line objects: {id, name, price, oldPrice, img, category, qty}.
type CartStorage struct {
	kv KV
}

// NewCartStorage returns a CartStorage over the given KV.
func NewCartStorage(kv KV) *CartStorage {
	return &CartStorage{kv: kv}
}

// Load reads and decodes the persisted cart. An absent key is an empty cart;
// a malformed payload is an error for the cart service to degrade on.
func (s *CartStorage) Load() ([]cart.Line, error) {
	data, err := s.kv.Get(CartKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "load cart")
	}
	lines, err := decodeLines(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode cart")
	}
	return lines, nil
}

// Save encodes and persists the cart lines.
func (s *CartStorage) Save(lines []cart.Line) error {
	return s.kv.Set(CartKey, encodeLines(lines))
}

// Clear removes the cart key entirely.
func (s *CartStorage) Clear() error {
	return s.kv.Delete(CartKey)
}

func encodeLines(lines []cart.Line) []byte {
	var e jx.Encoder
	e.Arr(func(e *jx.Encoder) {
		for _, l := range lines {
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
	})
	return e.Bytes()
}

func decodeLines(data []byte) ([]cart.Line, error) {
	var lines []cart.Line
	d := jx.DecodeBytes(data)
	err := d.Arr(func(d *jx.Decoder) error {
		var l cart.Line
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "id":
				l.ID, err = d.Int()
			case "name":
				l.Name, err = d.Str()
			case "price":
				l.Price, err = d.Int64()
			case "oldPrice":
				l.OldPrice, err = d.Int64()
			case "img":
				l.Img, err = d.Str()
			case "category":
				l.Category, err = d.Str()
			case "qty":
				l.Qty, err = d.Int()
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		// Quantity was optional in older payloads; missing means 1. A line
		// persisted with a non-positive quantity would violate the cart
		// invariant, so it is coerced the same way.
		if l.Qty <= 0 {
			l.Qty = 1
		}
		lines = append(lines, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}
