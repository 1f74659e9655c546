package kvstore

import "context"

// Store is a durable key-value store for session-scoped shopping
// state. Values are opaque JSON blobs owned by the caller. A missing
// key is not an error: Get reports presence separately so callers can
// fall back to an empty value on first run.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Namespaces for the three durable shopping blobs. Versioned so a
// format change can roll over without migrating stale payloads.
const (
	NamespaceCart     = "swiftcart_cart_v1"
	NamespaceWishlist = "swiftcart_wishlist_v1"
	NamespaceCheckout = "swiftcart_checkout_v1"
)

// Key scopes a namespace to one shopping session.
func Key(namespace, sessionID string) string {
	if sessionID == "" {
		return namespace
	}
	return namespace + ":" + sessionID
}
