package catalog_test

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/mobile-zone/catalogdata"
	"github.com/xenking/mobile-zone/internal/domain/catalog"
)

func seedStore(t *testing.T) *catalog.Store {
	t.Helper()
	products, err := catalogdata.Seed()
	require.NoError(t, err)
	store, err := catalog.NewStore(products)
	require.NoError(t, err)
	return store
}

func validProduct() catalog.Product {
	return catalog.Product{
		ID:       1,
		Name:     "Test Charger",
		Category: catalog.CategoryChargers,
		Price:    499,
		OldPrice: 999,
		Rating:   4,
		Reviews:  10,
	}
}

func TestCategory(t *testing.T) {
	assert.True(t, catalog.CategoryHeadphones.Valid())
	assert.False(t, catalog.Category("gadgets").Valid())
	assert.False(t, catalog.Category("").Valid())

	assert.Equal(t, "Chargers", catalog.CategoryChargers.Title())
	assert.Equal(t, "", catalog.Category("").Title())
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*catalog.Product)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*catalog.Product) {},
		},
		{
			name:   "no discount is valid",
			mutate: func(p *catalog.Product) { p.OldPrice = 0 },
		},
		{
			name:    "non-positive id",
			mutate:  func(p *catalog.Product) { p.ID = 0 },
			wantErr: "must be positive",
		},
		{
			name:    "empty name",
			mutate:  func(p *catalog.Product) { p.Name = "" },
			wantErr: "name required",
		},
		{
			name:    "unknown category",
			mutate:  func(p *catalog.Product) { p.Category = "gadgets" },
			wantErr: "unknown category",
		},
		{
			name:    "negative price",
			mutate:  func(p *catalog.Product) { p.Price = -1 },
			wantErr: "negative price",
		},
		{
			name:    "price above old price",
			mutate:  func(p *catalog.Product) { p.Price = 1500 },
			wantErr: "exceeds old price",
		},
		{
			name:    "rating out of range",
			mutate:  func(p *catalog.Product) { p.Rating = 6 },
			wantErr: "outside 0-5",
		},
		{
			name:    "negative reviews",
			mutate:  func(p *catalog.Product) { p.Reviews = -1 },
			wantErr: "negative review count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewStoreRejectsDuplicateID(t *testing.T) {
	a := validProduct()
	b := validProduct()
	b.Name = "Another Charger"

	_, err := catalog.NewStore([]catalog.Product{a, b})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate product id")
}

func TestStoreByID(t *testing.T) {
	store := seedStore(t)

	p, err := store.ByID(2)
	require.NoError(t, err)
	assert.Equal(t, "65W GaN Fast Charger", p.Name)
	assert.Equal(t, catalog.CategoryChargers, p.Category)

	_, err = store.ByID(999)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestStoreMaxPrice(t *testing.T) {
	store := seedStore(t)
	// The flagship headphones are the most expensive seed item.
	assert.Equal(t, int64(8999), store.MaxPrice())
}

func TestStoreAllIsACopy(t *testing.T) {
	store := seedStore(t)

	all := store.All()
	require.NotEmpty(t, all)
	all[0].Name = "mutated"

	p, err := store.ByID(all[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", p.Name)
}

func TestDiscountPercent(t *testing.T) {
	p := catalog.Product{Price: 8999, OldPrice: 12999}
	// 4000/12999 rounds to 31%.
	assert.Equal(t, 31, p.DiscountPercent())

	full := catalog.Product{Price: 999}
	assert.Equal(t, 0, full.DiscountPercent())
	assert.True(t, full.DiscountRatio().IsZero())
}
