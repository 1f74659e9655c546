// Package snapshot captures the subset of cart lines a shopper
// committed to buying. The snapshot is a point-in-time copy, not a
// live view: cart mutations after capture never change it.
package snapshot

import (
	"context"
	"encoding/json"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/kvstore"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
)

// cartReconciler is the slice of the cart store consumption needs.
type cartReconciler interface {
	RemoveKeys(ctx context.Context, keys map[catalog.LineKey]struct{})
}

// Snapshot holds the captured lines in memory and durably, so a reload
// mid-checkout does not lose the selection.
type Snapshot struct {
	kv   kvstore.Store
	key  string
	logg *logger.Logger

	lines []catalog.CartLine
}

// New rehydrates any previously captured snapshot for the session.
func New(ctx context.Context, kv kvstore.Store, sessionID string, logg *logger.Logger) *Snapshot {
	s := &Snapshot{
		kv:   kv,
		key:  kvstore.Key(kvstore.NamespaceCheckout, sessionID),
		logg: logg,
	}
	s.lines = s.loadDurable(ctx)
	return s
}

func (s *Snapshot) loadDurable(ctx context.Context) []catalog.CartLine {
	if s.kv == nil {
		return nil
	}
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil || !ok {
		return nil
	}
	var lines []catalog.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "key", s.key), "snapshot payload malformed, treating as empty")
		}
		return nil
	}
	return lines
}

// Capture copies the given lines into the snapshot, replacing any
// previous capture. Unlike cart persistence this write is synchronous:
// losing it would strand the checkout, so a failed write is an error.
func (s *Snapshot) Capture(ctx context.Context, lines []catalog.CartLine) error {
	if len(lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "select at least one item to checkout")
	}
	copied := catalog.CopyLines(lines)

	if s.kv != nil {
		raw, err := json.Marshal(copied)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode checkout snapshot")
		}
		if err := s.kv.Set(ctx, s.key, raw); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist checkout snapshot")
		}
	}

	s.lines = copied
	return nil
}

// Lines returns a copy of the captured lines.
func (s *Snapshot) Lines() []catalog.CartLine {
	return catalog.CopyLines(s.lines)
}

// Empty reports whether nothing is captured in memory.
func (s *Snapshot) Empty() bool {
	return len(s.lines) == 0
}

// Rehydrate re-reads durable state when memory is empty. This covers
// the reload race where the durable copy exists before the in-memory
// state has been rebuilt. It reports whether a snapshot is present.
func (s *Snapshot) Rehydrate(ctx context.Context) bool {
	if len(s.lines) > 0 {
		return true
	}
	s.lines = s.loadDurable(ctx)
	return len(s.lines) > 0
}

// Consume completes the snapshot's life after an order persisted:
// cart lines matching a captured identity key are removed (whole-line
// removal; quantity-level reconciliation is intentionally not
// tracked), then durable and in-memory snapshot state is cleared. The
// cart write happens first so a crash in between leaves a re-runnable
// state rather than a lost reconciliation.
func (s *Snapshot) Consume(ctx context.Context, cart cartReconciler) {
	if len(s.lines) == 0 {
		return
	}

	purchased := make(map[catalog.LineKey]struct{}, len(s.lines))
	for _, line := range s.lines {
		purchased[line.Key()] = struct{}{}
	}
	if cart != nil {
		cart.RemoveKeys(ctx, purchased)
	}

	s.lines = nil
	if s.kv != nil {
		if err := s.kv.Delete(ctx, s.key); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "key", s.key), "snapshot clear failed")
		}
	}
}

// Reset clears memory and durable state without touching the cart.
// Used on logout.
func (s *Snapshot) Reset(ctx context.Context) {
	s.lines = nil
	if s.kv != nil {
		if err := s.kv.Delete(ctx, s.key); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "key", s.key), "snapshot reset delete failed")
		}
	}
}
