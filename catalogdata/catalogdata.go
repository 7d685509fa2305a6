// Package catalogdata provides the embedded seed catalog and loaders for
// external catalog files.
package catalogdata

import (
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"

	"github.com/xenking/mobile-zone/internal/domain/catalog"
)

// seedJSON is the reference catalog shipped with the storefront.
//
//go:embed products.json
var seedJSON []byte

// Seed decodes the embedded reference catalog.
func Seed() ([]catalog.Product, error) {
	products, err := Decode(seedJSON)
	if err != nil {
		return nil, errors.Wrap(err, "embedded catalog")
	}
	return products, nil
}

// LoadFile reads a catalog from path. Files ending in .gz are transparently
// decompressed.
func LoadFile(path string) ([]catalog.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	products, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return products, nil
}

// Decode parses a JSON catalog payload: an array of product objects keyed
// the way the storefront pages expect them (id, name, cat, price, oldPrice,
// img, rating, reviews, desc).
func Decode(data []byte) ([]catalog.Product, error) {
	var products []catalog.Product
	d := jx.DecodeBytes(data)
	err := d.Arr(func(d *jx.Decoder) error {
		var p catalog.Product
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "id":
				p.ID, err = d.Int()
			case "name":
				p.Name, err = d.Str()
			case "cat":
				var cat string
				cat, err = d.Str()
				p.Category = catalog.Category(cat)
			case "price":
				p.Price, err = d.Int64()
			case "oldPrice":
				p.OldPrice, err = d.Int64()
			case "img":
				p.Image, err = d.Str()
			case "rating":
				p.Rating, err = d.Int()
			case "reviews":
				p.Reviews, err = d.Int()
			case "desc":
				p.Description, err = d.Str()
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Encode renders products back to the JSON payload shape accepted by Decode.
func Encode(products []catalog.Product) []byte {
	var e jx.Encoder
	e.Arr(func(e *jx.Encoder) {
		for _, p := range products {
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
			})
		}
	})
	return e.Bytes()
}
