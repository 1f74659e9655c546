package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
	"github.com/swiftcart/swiftcart-backend/pkg/kvstore"
)

func phone() catalog.Product {
	return catalog.Product{
		ID:            "p-iphone15",
		Title:         "Apple iPhone 15 (Black, 128 GB)",
		Price:         72999,
		OriginalPrice: 79900,
		Category:      "Mobiles",
		Colors:        []string{"Black", "Blue"},
	}
}

func sneaker() catalog.Product {
	return catalog.Product{
		ID:            "p-airmax270",
		Title:         "Nike Air Max 270",
		Price:         11495,
		OriginalPrice: 14995,
		Category:      "Fashion",
		Colors:        []string{"Red", "Black"},
		Sizes:         []string{"UK 8", "UK 9"},
	}
}

func newStore(t *testing.T) (*Store, *kvstore.Memory) {
	t.Helper()
	kv := kvstore.NewMemory()
	return NewStore(context.Background(), kv, "sess-1", nil), kv
}

func TestAddDeduplicatesByIdentityKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newStore(t)

	for i := 0; i < 3; i++ {
		store.Add(ctx, phone(), "", "")
	}

	lines := store.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 3, lines[0].Quantity)
	require.Equal(t, "Black", lines[0].SelectedColor, "first declared color is the default variant")
}

func TestAddDistinctVariantsAreDistinctLines(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newStore(t)

	store.Add(ctx, phone(), "Black", "")
	store.Add(ctx, phone(), "Blue", "")

	require.Equal(t, 2, store.Len())
}

func TestRemoveWithoutVariantRemovesAllVariants(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newStore(t)

	store.Add(ctx, sneaker(), "Red", "UK 8")
	store.Add(ctx, sneaker(), "Black", "UK 9")
	store.Add(ctx, phone(), "", "")

	store.Remove(ctx, "p-airmax270", "", "")

	lines := store.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, "p-iphone15", lines[0].Product.ID)
}

func TestRemoveWithColorOnlyMatchesThatColor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newStore(t)

	store.Add(ctx, sneaker(), "Red", "UK 8")
	store.Add(ctx, sneaker(), "Black", "UK 9")

	store.Remove(ctx, "p-airmax270", "Red", "")

	lines := store.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, "Black", lines[0].SelectedColor)
}

func TestSetQuantityBelowOneIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newStore(t)

	store.Add(ctx, phone(), "", "")
	store.Add(ctx, phone(), "", "")

	store.SetQuantity(ctx, "p-iphone15", 0, "", "")
	require.Equal(t, 2, store.Lines()[0].Quantity)

	store.SetQuantity(ctx, "p-iphone15", -5, "", "")
	require.Equal(t, 2, store.Lines()[0].Quantity)
}

func TestSetQuantityUnconstrainedVariantMatchesAnything(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newStore(t)

	store.Add(ctx, sneaker(), "Red", "UK 8")
	store.Add(ctx, sneaker(), "Black", "UK 9")

	store.SetQuantity(ctx, "p-airmax270", 4, "", "")
	for _, line := range store.Lines() {
		require.Equal(t, 4, line.Quantity)
	}

	store.SetQuantity(ctx, "p-airmax270", 7, "Red", "")
	lines := store.Lines()
	for _, line := range lines {
		if line.SelectedColor == "Red" {
			require.Equal(t, 7, line.Quantity)
		} else {
			require.Equal(t, 4, line.Quantity)
		}
	}
}

func TestMutationsPersistAndRehydrate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := kvstore.NewMemory()

	store := NewStore(ctx, kv, "sess-1", nil)
	store.Add(ctx, phone(), "", "")
	store.Add(ctx, sneaker(), "Red", "UK 8")

	// A fresh store sees the earlier session's lines.
	reloaded := NewStore(ctx, kv, "sess-1", nil)
	require.Equal(t, 2, reloaded.Len())

	// Another session shares nothing.
	other := NewStore(ctx, kv, "sess-2", nil)
	require.Equal(t, 0, other.Len())
}

func TestMalformedPersistedCartLoadsEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set(ctx, kvstore.Key(kvstore.NamespaceCart, "sess-1"), []byte("{corrupt")))

	store := NewStore(ctx, kv, "sess-1", nil)
	require.Equal(t, 0, store.Len())
}

func TestClearEmptiesDurableState(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := kvstore.NewMemory()
	store := NewStore(ctx, kv, "sess-1", nil)
	store.Add(ctx, phone(), "", "")

	store.Clear(ctx)

	raw, ok, err := kv.Get(ctx, kvstore.Key(kvstore.NamespaceCart, "sess-1"))
	require.NoError(t, err)
	require.True(t, ok)

	var lines []catalog.CartLine
	require.NoError(t, json.Unmarshal(raw, &lines))
	require.Empty(t, lines)
}
