// Package catalogcache resolves the product catalog through an ordered
// fallback chain: the live API first, then the last successfully
// fetched copy, then the built-in defaults. Each skipped link records
// why it was passed over, so callers can tell a healthy read from a
// degraded one.
package catalogcache

import (
	"context"
	"sync"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
)

// Origin names one link of the fallback chain.
type Origin string

const (
	OriginAPI     Origin = "api"
	OriginCache   Origin = "cache"
	OriginDefault Origin = "default"
)

// SkipReason records why a link earlier in the chain was passed over.
type SkipReason struct {
	Origin Origin
	Err    error
}

// Resolution is a resolved catalog plus where it came from.
type Resolution struct {
	Products []catalog.Product
	Origin   Origin
	Skipped  []SkipReason
}

// Degraded reports whether the catalog came from anywhere but the API.
func (r Resolution) Degraded() bool {
	return r.Origin != OriginAPI
}

// Lister fetches the catalog from the API.
type Lister interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
}

// Cache is the fallback chain with its remembered middle link.
type Cache struct {
	source   Lister
	defaults []catalog.Product
	logg     *logger.Logger

	mu     sync.Mutex
	cached []catalog.Product
}

// New builds the chain. The source may be nil for offline use, in
// which case resolution goes straight to cache and defaults.
func New(source Lister, defaults []catalog.Product, logg *logger.Logger) *Cache {
	return &Cache{
		source:   source,
		defaults: catalog.CopyProducts(defaults),
		logg:     logg,
	}
}

// Products walks the chain and returns the first link that yields a
// catalog. The API result, when it arrives, refreshes the cached copy
// for later degraded reads.
func (c *Cache) Products(ctx context.Context) Resolution {
	var skipped []SkipReason

	if c.source != nil {
		products, err := c.source.ListProducts(ctx)
		if err == nil && len(products) > 0 {
			c.mu.Lock()
			c.cached = catalog.CopyProducts(products)
			c.mu.Unlock()
			return Resolution{Products: products, Origin: OriginAPI}
		}
		if err == nil {
			err = pkgerrors.New(pkgerrors.CodeDependency, "api returned an empty catalog")
		}
		skipped = append(skipped, SkipReason{Origin: OriginAPI, Err: err})
		if c.logg != nil {
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "catalog api unavailable, falling back")
		}
	} else {
		skipped = append(skipped, SkipReason{
			Origin: OriginAPI,
			Err:    pkgerrors.New(pkgerrors.CodeDependency, "no catalog source configured"),
		})
	}

	c.mu.Lock()
	cached := catalog.CopyProducts(c.cached)
	c.mu.Unlock()
	if len(cached) > 0 {
		return Resolution{Products: cached, Origin: OriginCache, Skipped: skipped}
	}
	skipped = append(skipped, SkipReason{
		Origin: OriginCache,
		Err:    pkgerrors.New(pkgerrors.CodeNotFound, "no cached catalog"),
	})

	return Resolution{
		Products: catalog.CopyProducts(c.defaults),
		Origin:   OriginDefault,
		Skipped:  skipped,
	}
}

// Product resolves one product by id through the same chain.
func (c *Cache) Product(ctx context.Context, id string) (catalog.Product, bool) {
	res := c.Products(ctx)
	for _, p := range res.Products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}
