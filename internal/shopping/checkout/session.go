// Package checkout sequences the cart -> address -> summary -> payment
// -> order flow for one shopping session.
package checkout

import (
	"context"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/cart"
	"github.com/swiftcart/swiftcart-backend/internal/shopping/snapshot"
	"github.com/swiftcart/swiftcart-backend/internal/shopping/wishlist"
	"github.com/swiftcart/swiftcart-backend/pkg/kvstore"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
	"github.com/swiftcart/swiftcart-backend/pkg/types"
)

// UserInfo is the slice of the signed-in user checkout needs.
type UserInfo struct {
	ID     string
	Name   string
	Email  string
	Mobile string
}

// Session is the explicit per-user context that owns all mutable
// shopping state: cart, wishlist, checkout snapshot and the shipping
// address for the in-progress checkout. Persistence is an injected
// capability; nothing here is ambient or global. All access happens on
// the session's own event flow, one action at a time.
type Session struct {
	ID       string
	User     *UserInfo
	Cart     *cart.Store
	Wishlist *wishlist.Store
	Snapshot *snapshot.Snapshot

	address *types.Address
	logg    *logger.Logger
}

// NewSession rehydrates a session's durable state from the store.
func NewSession(ctx context.Context, kv kvstore.Store, sessionID string, logg *logger.Logger) *Session {
	return &Session{
		ID:       sessionID,
		Cart:     cart.NewStore(ctx, kv, sessionID, logg),
		Wishlist: wishlist.NewStore(ctx, kv, sessionID, logg),
		Snapshot: snapshot.New(ctx, kv, sessionID, logg),
		logg:     logg,
	}
}

// SaveAddress validates and stores the shipping address, overwriting
// any previous one. The address is held until an order is placed so
// the shopper can go back, edit and resubmit.
func (s *Session) SaveAddress(addr types.Address) error {
	if err := addr.Validate(); err != nil {
		return err
	}
	s.address = &addr
	return nil
}

// Address returns the saved shipping address, if any.
func (s *Session) Address() (types.Address, bool) {
	if s.address == nil {
		return types.Address{}, false
	}
	return *s.address, true
}

// Login attaches the signed-in user to the session.
func (s *Session) Login(user UserInfo) {
	s.User = &user
}

// Reset clears every piece of session-owned state, in memory and in
// the durable store. Called on logout.
func (s *Session) Reset(ctx context.Context) {
	s.User = nil
	s.address = nil
	s.Cart.Reset(ctx)
	s.Wishlist.Reset(ctx)
	s.Snapshot.Reset(ctx)
}
