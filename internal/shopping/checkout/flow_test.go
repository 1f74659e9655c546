package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
	"github.com/swiftcart/swiftcart-backend/pkg/enums"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/kvstore"
	"github.com/swiftcart/swiftcart-backend/pkg/types"
)

func testAddress() types.Address {
	return types.Address{
		Name:     "Asha Rao",
		Mobile:   "9876543210",
		Pincode:  "560001",
		Locality: "Shivajinagar",
		Street:   "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
	}
}

func TestGuardStepRequiresSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewSession(ctx, kvstore.NewMemory(), "sess-1", nil)

	for _, step := range []enums.CheckoutStep{
		enums.CheckoutStepAddress,
		enums.CheckoutStepSummary,
		enums.CheckoutStepPayment,
	} {
		redirect, ok := s.GuardStep(ctx, step)
		require.False(t, ok, "step %s must not open without a snapshot", step)
		require.Equal(t, enums.CheckoutStepCart, redirect)
	}

	_, ok := s.GuardStep(ctx, enums.CheckoutStepCart)
	require.True(t, ok)
	_, ok = s.GuardStep(ctx, enums.CheckoutStepSuccess)
	require.True(t, ok)
}

func TestGuardStepRequiresAddressBeyondAddressStep(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewSession(ctx, kvstore.NewMemory(), "sess-1", nil)
	require.NoError(t, s.Snapshot.Capture(ctx, []catalog.CartLine{line("p-a", 100, 100, 1)}))

	_, ok := s.GuardStep(ctx, enums.CheckoutStepAddress)
	require.True(t, ok)

	// With a snapshot but no saved address the shopper is sent to the
	// address form, not all the way back to the cart.
	redirect, ok := s.GuardStep(ctx, enums.CheckoutStepPayment)
	require.False(t, ok)
	require.Equal(t, enums.CheckoutStepAddress, redirect)

	require.NoError(t, s.SaveAddress(testAddress()))

	_, ok = s.GuardStep(ctx, enums.CheckoutStepSummary)
	require.True(t, ok)
	_, ok = s.GuardStep(ctx, enums.CheckoutStepPayment)
	require.True(t, ok)
}

func TestGuardStepSurvivesReload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := kvstore.NewMemory()

	first := NewSession(ctx, kv, "sess-1", nil)
	require.NoError(t, first.Snapshot.Capture(ctx, []catalog.CartLine{line("p-a", 100, 100, 1)}))

	// A reload builds a fresh session over the same durable store. The
	// address is not durable, so only the address step reopens.
	reloaded := NewSession(ctx, kv, "sess-1", nil)
	_, ok := reloaded.GuardStep(ctx, enums.CheckoutStepAddress)
	require.True(t, ok)

	redirect, ok := reloaded.GuardStep(ctx, enums.CheckoutStepPayment)
	require.False(t, ok)
	require.Equal(t, enums.CheckoutStepAddress, redirect)
}

func TestSaveAddressValidatesAndOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewSession(ctx, kvstore.NewMemory(), "sess-1", nil)

	bad := testAddress()
	bad.Mobile = "12345"
	err := s.SaveAddress(bad)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	_, saved := s.Address()
	require.False(t, saved, "a rejected address must not stick")

	require.NoError(t, s.SaveAddress(testAddress()))

	edited := testAddress()
	edited.City = "Mysuru"
	require.NoError(t, s.SaveAddress(edited))

	got, saved := s.Address()
	require.True(t, saved)
	require.Equal(t, "Mysuru", got.City)
}

func TestSessionResetClearsEverything(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := kvstore.NewMemory()
	s := NewSession(ctx, kv, "sess-1", nil)

	s.Login(UserInfo{ID: "u-1", Name: "Asha"})
	s.Cart.Add(ctx, line("p-a", 100, 100, 1).Product, "", "")
	require.NoError(t, s.Snapshot.Capture(ctx, s.Cart.Lines()))
	require.NoError(t, s.SaveAddress(testAddress()))

	s.Reset(ctx)

	require.Nil(t, s.User)
	require.Zero(t, s.Cart.Len())
	require.True(t, s.Snapshot.Empty())
	_, saved := s.Address()
	require.False(t, saved)

	// Durable state is gone too: a fresh session starts empty.
	fresh := NewSession(ctx, kv, "sess-1", nil)
	require.Zero(t, fresh.Cart.Len())
	require.False(t, fresh.Snapshot.Rehydrate(ctx))
}
