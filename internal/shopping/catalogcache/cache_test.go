package catalogcache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
)

type fakeSource struct {
	products []catalog.Product
	err      error
}

func (f *fakeSource) ListProducts(context.Context) ([]catalog.Product, error) {
	return f.products, f.err
}

func defaults() []catalog.Product {
	return []catalog.Product{{ID: "p-default", Title: "Default", Price: 100}}
}

func TestProductsPrefersAPI(t *testing.T) {
	t.Parallel()

	source := &fakeSource{products: []catalog.Product{{ID: "p-live", Price: 200}}}
	cache := New(source, defaults(), nil)

	res := cache.Products(context.Background())
	require.Equal(t, OriginAPI, res.Origin)
	require.False(t, res.Degraded())
	require.Empty(t, res.Skipped)
	require.Equal(t, "p-live", res.Products[0].ID)
}

func TestProductsFallsBackToCachedCopy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := &fakeSource{products: []catalog.Product{{ID: "p-live"}}}
	cache := New(source, defaults(), nil)
	cache.Products(ctx) // primes the cache

	source.products = nil
	source.err = errors.New("api down")

	res := cache.Products(ctx)
	require.Equal(t, OriginCache, res.Origin)
	require.True(t, res.Degraded())
	require.Equal(t, "p-live", res.Products[0].ID)

	require.Len(t, res.Skipped, 1)
	require.Equal(t, OriginAPI, res.Skipped[0].Origin)
	require.ErrorContains(t, res.Skipped[0].Err, "api down")
}

func TestProductsFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	cache := New(&fakeSource{err: errors.New("api down")}, defaults(), nil)

	res := cache.Products(context.Background())
	require.Equal(t, OriginDefault, res.Origin)
	require.Equal(t, "p-default", res.Products[0].ID)

	require.Len(t, res.Skipped, 2)
	require.Equal(t, OriginAPI, res.Skipped[0].Origin)
	require.Equal(t, OriginCache, res.Skipped[1].Origin)
}

func TestProductsWithoutSourceUsesDefaults(t *testing.T) {
	t.Parallel()

	cache := New(nil, defaults(), nil)
	res := cache.Products(context.Background())
	require.Equal(t, OriginDefault, res.Origin)
}

func TestEmptyAPICatalogIsSkipped(t *testing.T) {
	t.Parallel()

	cache := New(&fakeSource{products: []catalog.Product{}}, defaults(), nil)
	res := cache.Products(context.Background())
	require.Equal(t, OriginDefault, res.Origin)
	require.ErrorContains(t, res.Skipped[0].Err, "empty catalog")
}

func TestProductByID(t *testing.T) {
	t.Parallel()

	cache := New(&fakeSource{products: []catalog.Product{{ID: "p-1"}, {ID: "p-2"}}}, nil, nil)

	got, ok := cache.Product(context.Background(), "p-2")
	require.True(t, ok)
	require.Equal(t, "p-2", got.ID)

	_, ok = cache.Product(context.Background(), "p-missing")
	require.False(t, ok)
}
