package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swiftcart/swiftcart-backend/pkg/config"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
)

func testConfig() config.OTPConfig {
	return config.OTPConfig{
		TTL:          5 * time.Minute,
		DemoCode:     "1234",
		LiveDelivery: false,
	}
}

// brokenStore fails every operation, standing in for unreachable Redis.
type brokenStore struct{}

func (brokenStore) Save(context.Context, string, string, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenStore) Load(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func (brokenStore) Remove(context.Context, string) error {
	return errors.New("connection refused")
}

func newTestService(t *testing.T, primary codeStore) *Service {
	t.Helper()
	svc, err := NewService(testConfig(), primary, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSendReturnsDevCodeWithoutLiveDelivery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t, nil)
	svc.newCode = func() string { return "4821" }

	res, err := svc.Send(ctx, "asha@example.com")
	require.NoError(t, err)
	require.Equal(t, "4821", res.DevCode)
	require.False(t, res.Resent)
	require.Equal(t, OriginMemory, res.Origin)
}

func TestResendWhilePendingIsNoOp(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t, nil)

	codes := []string{"1111", "2222"}
	svc.newCode = func() string {
		code := codes[0]
		codes = codes[1:]
		return code
	}

	first, err := svc.Send(ctx, "asha@example.com")
	require.NoError(t, err)
	require.Equal(t, "1111", first.DevCode)

	second, err := svc.Send(ctx, "asha@example.com")
	require.NoError(t, err)
	require.True(t, second.Resent)
	require.Equal(t, "1111", second.DevCode, "pending code stays valid, no new code generated")
}

func TestVerifyConsumesOnSuccessOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t, nil)
	svc.newCode = func() string { return "4821" }

	_, err := svc.Send(ctx, "asha@example.com")
	require.NoError(t, err)

	// A wrong code fails and must not consume the pending one.
	err = svc.Verify(ctx, "asha@example.com", "9999")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	require.NoError(t, svc.Verify(ctx, "asha@example.com", "4821"))

	// The right code is single-use.
	err = svc.Verify(ctx, "asha@example.com", "4821")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestVerifyAcceptsDemoCode(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	require.NoError(t, svc.Verify(context.Background(), "asha@example.com", "1234"))
}

func TestVerifyExpiredCode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t, nil)
	svc.newCode = func() string { return "4821" }

	clock := time.Now()
	mem := svc.fallback.(*MemoryStore)
	mem.now = func() time.Time { return clock }

	_, err := svc.Send(ctx, "asha@example.com")
	require.NoError(t, err)

	clock = clock.Add(6 * time.Minute)
	err = svc.Verify(ctx, "asha@example.com", "4821")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestSendFallsBackWhenPrimaryIsDown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t, brokenStore{})
	svc.newCode = func() string { return "4821" }

	res, err := svc.Send(ctx, "asha@example.com")
	require.NoError(t, err, "a dead primary store must not block sign-in")
	require.Equal(t, OriginMemory, res.Origin)
	require.True(t, pkgerrors.IsCode(res.FallbackReason, pkgerrors.CodeDependency))

	// Verification reads through the same chain.
	require.NoError(t, svc.Verify(ctx, "asha@example.com", "4821"))
}

func TestSendRequiresIdentifier(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	_, err := svc.Send(context.Background(), "   ")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
