package catalog

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Category enumerates the fixed set of product categories.
type Category string

const (
	CategoryHeadphones Category = "headphones"
	CategoryChargers   Category = "chargers"
	CategoryCovers     Category = "covers"
	CategoryPowerbank  Category = "powerbank"
	CategoryDisplay    Category = "display"
	CategoryBattery    Category = "battery"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryHeadphones,
	CategoryChargers,
	CategoryCovers,
	CategoryPowerbank,
	CategoryDisplay,
	CategoryBattery,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Title returns the category name with its first letter capitalized,
// suitable for a listing page heading.
func (c Category) Title() string {
	s := string(c)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Product represents one catalog item. Prices are minor-unit-free currency
// amounts (whole rupees). OldPrice 0 means the product is not discounted.
type Product struct {
	ID          int
	Name        string
	Category    Category
	Price       int64
	OldPrice    int64
	Image       string
	Rating      int
	Reviews     int
	Description string
}

// Validate checks the product invariants. It is applied to every record at
// the load boundary so the rest of the system never sees malformed data.
func (p Product) Validate() error {
	switch {
	case p.ID <= 0:
		return errors.Errorf("product id %d: must be positive", p.ID)
	case p.Name == "":
		return errors.Errorf("product %d: name required", p.ID)
	case !p.Category.Valid():
		return errors.Errorf("product %d: unknown category %q", p.ID, p.Category)
	case p.Price < 0:
		return errors.Errorf("product %d: negative price %d", p.ID, p.Price)
	case p.OldPrice < 0:
		return errors.Errorf("product %d: negative old price %d", p.ID, p.OldPrice)
	case p.OldPrice > 0 && p.Price > p.OldPrice:
		return errors.Errorf("product %d: price %d exceeds old price %d", p.ID, p.Price, p.OldPrice)
	case p.Rating < 0 || p.Rating > 5:
		return errors.Errorf("product %d: rating %d outside 0-5", p.ID, p.Rating)
	case p.Reviews < 0:
		return errors.Errorf("product %d: negative review count %d", p.ID, p.Reviews)
	}
	return nil
}

// DiscountRatio is the fraction of OldPrice saved when buying at Price.
// Products without an old price have a zero ratio, never a division error.
func (p Product) DiscountRatio() decimal.Decimal {
	if p.OldPrice == 0 {
		return decimal.Zero
	}
	saved := decimal.NewFromInt(p.OldPrice - p.Price)
	return saved.Div(decimal.NewFromInt(p.OldPrice))
}

// DiscountPercent is DiscountRatio rounded to a whole percentage for badges.
func (p Product) DiscountPercent() int {
	return int(p.DiscountRatio().Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// Store holds the fixed, read-only product catalog. Construction validates
// every record; after that all reads are lock-free.
type Store struct {
	products []Product
	byID     map[int]int
	maxPrice int64

	// trigrams indexes every 3-byte window of the folded name and category
	// text across the whole catalog. A search string with a trigram absent
	// from the filter cannot be a substring of any product, which lets the
	// query engine skip the scan on definite misses.
	trigrams *bloom.BloomFilter
}

// NewStore builds a Store from the given products, preserving their order.
func NewStore(products []Product) (*Store, error) {
	s := &Store{
		products: make([]Product, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	copy(s.products, products)

	grams := make(map[string]struct{})
	for i, p := range s.products {
		if err := p.Validate(); err != nil {
			return nil, errors.Wrap(err, "validate product")
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, errors.Errorf("duplicate product id %d", p.ID)
		}
		s.byID[p.ID] = i
		if p.Price > s.maxPrice {
			s.maxPrice = p.Price
		}
		collectTrigrams(grams, strings.ToLower(p.Name))
		collectTrigrams(grams, strings.ToLower(string(p.Category)))
	}

	capacity := uint(len(grams))
	if capacity < 64 {
		capacity = 64
	}
	s.trigrams = bloom.NewWithEstimates(capacity, 0.01)
	for g := range grams {
		s.trigrams.AddString(g)
	}

	return s, nil
}

// All returns every product in catalog order. The slice is a copy; callers
// may not mutate the catalog through it.
func (s *Store) All() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// ByID looks up a product by its identifier.
func (s *Store) ByID(id int) (Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return s.products[i], nil
}

// Len reports the number of products in the catalog.
func (s *Store) Len() int {
	return len(s.products)
}

// MaxPrice returns the highest price in the catalog. It is the default
// ceiling for the price filter.
func (s *Store) MaxPrice() int64 {
	return s.maxPrice
}

// mayContain reports whether any product text could contain the folded
// search string. False positives are possible, false negatives are not.
// Strings shorter than one trigram are never rejected.
func (s *Store) mayContain(folded string) bool {
	if len(folded) < 3 {
		return true
	}
	for i := 0; i+3 <= len(folded); i++ {
		if !s.trigrams.TestString(folded[i : i+3]) {
			return false
		}
	}
	return true
}

func collectTrigrams(into map[string]struct{}, text string) {
	for i := 0; i+3 <= len(text); i++ {
		into[text[i:i+3]] = struct{}{}
	}
}
