// Package wishlist owns the session's saved-products set, independent
// of the cart.
package wishlist

import (
	"context"
	"encoding/json"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
	"github.com/swiftcart/swiftcart-backend/pkg/kvstore"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
)

// Store keeps the wishlist, deduplicated by product id, persisted the
// same way the cart is under its own namespace.
type Store struct {
	kv   kvstore.Store
	key  string
	logg *logger.Logger

	products []catalog.Product
}

// NewStore rehydrates the wishlist for the given session. Malformed
// persisted data loads as empty.
func NewStore(ctx context.Context, kv kvstore.Store, sessionID string, logg *logger.Logger) *Store {
	s := &Store{
		kv:   kv,
		key:  kvstore.Key(kvstore.NamespaceWishlist, sessionID),
		logg: logg,
	}
	if kv == nil {
		return s
	}
	raw, ok, err := kv.Get(ctx, s.key)
	if err != nil || !ok {
		return s
	}
	if err := json.Unmarshal(raw, &s.products); err != nil {
		if logg != nil {
			logg.Warn(logg.WithField(ctx, "key", s.key), "wishlist payload malformed, starting empty")
		}
		s.products = nil
	}
	return s
}

// Toggle adds the product when absent and removes it when present.
func (s *Store) Toggle(ctx context.Context, product catalog.Product) {
	for i, existing := range s.products {
		if existing.ID == product.ID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			s.persist(ctx)
			return
		}
	}
	s.products = append(s.products, product)
	s.persist(ctx)
}

// Contains reports whether the product id is wishlisted.
func (s *Store) Contains(productID string) bool {
	for _, existing := range s.products {
		if existing.ID == productID {
			return true
		}
	}
	return false
}

// Products returns a copy of the wishlist.
func (s *Store) Products() []catalog.Product {
	return append([]catalog.Product(nil), s.products...)
}

// Reset drops in-memory and durable state. Used on logout.
func (s *Store) Reset(ctx context.Context) {
	s.products = nil
	if s.kv != nil {
		if err := s.kv.Delete(ctx, s.key); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "key", s.key), "wishlist reset delete failed")
		}
	}
}

func (s *Store) persist(ctx context.Context) {
	if s.kv == nil {
		return
	}
	raw, err := json.Marshal(s.products)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "wishlist marshal failed", err)
		}
		return
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "key", s.key), "wishlist persist failed")
	}
}
