// Package ordercache keeps a session-side copy of a user's order
// history so the orders page renders without waiting on the API after
// every placement.
package ordercache

import (
	"context"
	"sync"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/checkout"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
)

// Lister fetches a user's orders from the API.
type Lister interface {
	ListOrders(ctx context.Context, userID string) ([]checkout.Order, error)
}

// Cache holds the last fetched order list per user.
type Cache struct {
	lister Lister
	logg   *logger.Logger

	mu     sync.Mutex
	byUser map[string][]checkout.Order
}

// New builds an empty cache over the given lister.
func New(lister Lister, logg *logger.Logger) *Cache {
	return &Cache{
		lister: lister,
		logg:   logg,
		byUser: make(map[string][]checkout.Order),
	}
}

// RefreshOrders re-pulls the user's orders and replaces the cached
// copy. On failure the previous copy is kept.
func (c *Cache) RefreshOrders(ctx context.Context, userID string) error {
	orders, err := c.lister.ListOrders(ctx, userID)
	if err != nil {
		if c.logg != nil {
			c.logg.Warn(c.logg.WithField(ctx, "user_id", userID), "order list refresh failed, keeping stale copy")
		}
		return err
	}

	c.mu.Lock()
	c.byUser[userID] = orders
	c.mu.Unlock()
	return nil
}

// Orders returns the cached list for the user, or nil when nothing has
// been fetched yet.
func (c *Cache) Orders(userID string) []checkout.Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, ok := c.byUser[userID]
	if !ok {
		return nil
	}
	out := make([]checkout.Order, len(cached))
	copy(out, cached)
	return out
}

// Forget drops the cached list for the user. Called on logout.
func (c *Cache) Forget(userID string) {
	c.mu.Lock()
	delete(c.byUser, userID)
	c.mu.Unlock()
}
