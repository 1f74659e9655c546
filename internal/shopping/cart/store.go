// Package cart owns the persistent list of cart line-items for one
// shopping session.
package cart

import (
	"context"
	"encoding/json"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
	"github.com/swiftcart/swiftcart-backend/pkg/kvstore"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
)

// Store holds the session's cart lines and mirrors every mutation to
// the durable key-value store. Persistence is write-after-update and
// fire-and-forget: a failed write is logged, never surfaced to the
// shopper action that triggered it.
type Store struct {
	kv   kvstore.Store
	key  string
	logg *logger.Logger

	lines []catalog.CartLine
}

// NewStore builds a cart store for the given session and rehydrates
// any previously persisted lines. Malformed persisted data loads as an
// empty cart.
func NewStore(ctx context.Context, kv kvstore.Store, sessionID string, logg *logger.Logger) *Store {
	s := &Store{
		kv:   kv,
		key:  kvstore.Key(kvstore.NamespaceCart, sessionID),
		logg: logg,
	}
	s.lines = loadLines(ctx, kv, s.key, logg)
	return s
}

func loadLines(ctx context.Context, kv kvstore.Store, key string, logg *logger.Logger) []catalog.CartLine {
	if kv == nil {
		return nil
	}
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		if logg != nil {
			logg.Warn(logg.WithField(ctx, "key", key), "cart load failed, starting empty")
		}
		return nil
	}
	if !ok {
		return nil
	}
	var lines []catalog.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		if logg != nil {
			logg.Warn(logg.WithField(ctx, "key", key), "cart payload malformed, starting empty")
		}
		return nil
	}
	return lines
}

// Add puts one unit of the product in the cart. The effective variant
// is the explicit argument, else the product's first declared option.
// Adding an already-present identity key increments its quantity.
func (s *Store) Add(ctx context.Context, product catalog.Product, color, size string) {
	if color == "" && len(product.Colors) > 0 {
		color = product.Colors[0]
	}
	if size == "" && len(product.Sizes) > 0 {
		size = product.Sizes[0]
	}

	key := catalog.LineKey{ProductID: product.ID, Color: color, Size: size}
	for i := range s.lines {
		if s.lines[i].Key() == key {
			s.lines[i].Quantity++
			s.persist(ctx)
			return
		}
	}

	s.lines = append(s.lines, catalog.CartLine{
		Product:       product,
		Quantity:      1,
		SelectedColor: color,
		SelectedSize:  size,
	})
	s.persist(ctx)
}

// Remove drops lines for the product. With a color or size given, only
// lines matching the given fields are removed; with neither, every
// line for the product goes regardless of variant.
func (s *Store) Remove(ctx context.Context, productID, color, size string) {
	kept := s.lines[:0]
	for _, line := range s.lines {
		if !matchesRemoval(line, productID, color, size) {
			kept = append(kept, line)
		}
	}
	s.lines = kept
	s.persist(ctx)
}

func matchesRemoval(line catalog.CartLine, productID, color, size string) bool {
	if line.Product.ID != productID {
		return false
	}
	if color == "" && size == "" {
		return true
	}
	if color != "" && line.SelectedColor != color {
		return false
	}
	if size != "" && line.SelectedSize != size {
		return false
	}
	return true
}

// SetQuantity overwrites the quantity on lines matching the supplied
// constraints. Unconstrained variant fields match anything. A quantity
// below 1 is a no-op.
func (s *Store) SetQuantity(ctx context.Context, productID string, qty int, color, size string) {
	if qty < 1 {
		return
	}
	changed := false
	for i := range s.lines {
		line := &s.lines[i]
		if line.Product.ID != productID {
			continue
		}
		if color != "" && line.SelectedColor != color {
			continue
		}
		if size != "" && line.SelectedSize != size {
			continue
		}
		line.Quantity = qty
		changed = true
	}
	if changed {
		s.persist(ctx)
	}
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.lines = nil
	s.persist(ctx)
}

// RemoveKeys drops every line whose identity key is in keys. Used by
// snapshot consumption to reconcile the cart after an order.
func (s *Store) RemoveKeys(ctx context.Context, keys map[catalog.LineKey]struct{}) {
	kept := s.lines[:0]
	for _, line := range s.lines {
		if _, purchased := keys[line.Key()]; !purchased {
			kept = append(kept, line)
		}
	}
	s.lines = kept
	s.persist(ctx)
}

// Lines returns a defensive copy of the cart contents.
func (s *Store) Lines() []catalog.CartLine {
	return catalog.CopyLines(s.lines)
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	return len(s.lines)
}

// Reset drops in-memory and durable state. Used on logout.
func (s *Store) Reset(ctx context.Context) {
	s.lines = nil
	if s.kv != nil {
		if err := s.kv.Delete(ctx, s.key); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "key", s.key), "cart reset delete failed")
		}
	}
}

func (s *Store) persist(ctx context.Context) {
	if s.kv == nil {
		return
	}
	raw, err := json.Marshal(s.lines)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "cart marshal failed", err)
		}
		return
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "key", s.key), "cart persist failed")
	}
}
