package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/cart"
	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
	"github.com/swiftcart/swiftcart-backend/pkg/kvstore"
)

func itemA() catalog.Product {
	return catalog.Product{ID: "p-a", Title: "Item A", Price: 500, OriginalPrice: 700}
}

func itemB() catalog.Product {
	return catalog.Product{ID: "p-b", Title: "Item B", Price: 1500, OriginalPrice: 1500}
}

func TestCaptureIsACopyNotAView(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := kvstore.NewMemory()

	cartStore := cart.NewStore(ctx, kv, "s", nil)
	cartStore.Add(ctx, itemA(), "", "")
	cartStore.Add(ctx, itemA(), "", "")

	snap := New(ctx, kv, "s", nil)
	require.NoError(t, snap.Capture(ctx, cartStore.Lines()))

	// Mutate the cart after capture.
	cartStore.SetQuantity(ctx, "p-a", 9, "", "")

	lines := snap.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 2, lines[0].Quantity, "captured quantity must not follow later cart mutations")
}

func TestCaptureRejectsEmptySelection(t *testing.T) {
	t.Parallel()

	snap := New(context.Background(), kvstore.NewMemory(), "s", nil)
	require.Error(t, snap.Capture(context.Background(), nil))
}

func TestSnapshotSurvivesReload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := kvstore.NewMemory()

	snap := New(ctx, kv, "s", nil)
	require.NoError(t, snap.Capture(ctx, []catalog.CartLine{{Product: itemA(), Quantity: 2}}))

	// A fresh snapshot (new process/page) sees the captured lines.
	reloaded := New(ctx, kv, "s", nil)
	require.False(t, reloaded.Empty())
	require.Equal(t, 2, reloaded.Lines()[0].Quantity)
}

func TestRehydrateCoversReloadRace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := kvstore.NewMemory()

	captured := New(ctx, kv, "s", nil)
	require.NoError(t, captured.Capture(ctx, []catalog.CartLine{{Product: itemA(), Quantity: 1}}))

	// Simulate in-memory state not yet rebuilt: fresh value, durable
	// copy already present.
	racing := &Snapshot{kv: kv, key: kvstore.Key(kvstore.NamespaceCheckout, "s")}
	require.True(t, racing.Empty())
	require.True(t, racing.Rehydrate(ctx))
	require.False(t, racing.Empty())
}

func TestConsumeRemovesOnlySnapshottedKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := kvstore.NewMemory()

	cartStore := cart.NewStore(ctx, kv, "s", nil)
	cartStore.Add(ctx, itemA(), "", "")
	cartStore.Add(ctx, itemA(), "", "")
	cartStore.Add(ctx, itemB(), "", "")

	snap := New(ctx, kv, "s", nil)
	// Select only item A for checkout.
	selected := []catalog.CartLine{}
	for _, line := range cartStore.Lines() {
		if line.Product.ID == "p-a" {
			selected = append(selected, line)
		}
	}
	require.NoError(t, snap.Capture(ctx, selected))

	// Item added to the cart after capture must survive consumption.
	cartStore.Add(ctx, catalog.Product{ID: "p-c", Title: "Item C", Price: 100}, "", "")

	snap.Consume(ctx, cartStore)

	remaining := cartStore.Lines()
	require.Len(t, remaining, 2)
	ids := []string{remaining[0].Product.ID, remaining[1].Product.ID}
	require.ElementsMatch(t, []string{"p-b", "p-c"}, ids)

	require.True(t, snap.Empty())
	_, ok, err := kv.Get(ctx, kvstore.Key(kvstore.NamespaceCheckout, "s"))
	require.NoError(t, err)
	require.False(t, ok, "durable snapshot must be cleared after consume")
}

func TestConsumeOnEmptySnapshotIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := kvstore.NewMemory()

	cartStore := cart.NewStore(ctx, kv, "s", nil)
	cartStore.Add(ctx, itemA(), "", "")

	snap := New(ctx, kv, "s", nil)
	snap.Consume(ctx, cartStore)

	require.Equal(t, 1, cartStore.Len())
}

func TestMalformedSnapshotLoadsEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set(ctx, kvstore.Key(kvstore.NamespaceCheckout, "s"), []byte("][")))

	snap := New(ctx, kv, "s", nil)
	require.True(t, snap.Empty())
}
