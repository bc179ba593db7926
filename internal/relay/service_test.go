package relay_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bouzuya/pushrelay/internal/admin"
	"github.com/bouzuya/pushrelay/internal/notification"
	"github.com/bouzuya/pushrelay/internal/push"
	"github.com/bouzuya/pushrelay/internal/relay"
	"github.com/bouzuya/pushrelay/internal/token"
)

const testSecret = "admin-secret-for-tests"

// countingGateway counts deliveries per device token.
type countingGateway struct {
	mu   sync.Mutex
	sent []string
}

func (g *countingGateway) Send(_ context.Context, deviceToken string, _ push.Notification) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, deviceToken)
	return nil
}

func newTestService(t *testing.T) (*relay.Service, *countingGateway) {
	t.Helper()

	gateway := &countingGateway{}
	tokens := token.NewService(token.NewInMemoryRepository())
	dispatcher := notification.NewDispatcher(notification.DispatcherConfig{
		Registry: tokens,
		Gateway:  gateway,
		Logger:   zerolog.Nop(),
	})

	service := relay.NewService(relay.ServiceConfig{
		Tokens:     tokens,
		Gate:       admin.NewGate(testSecret),
		Dispatcher: dispatcher,
		Logger:     zerolog.Nop(),
	})
	return service, gateway
}

func TestService_CreateAndDeleteToken(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	id, err := service.CreateToken(ctx, "device-token-1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, service.DeleteToken(ctx, id))
	require.NoError(t, service.DeleteToken(ctx, id), "delete must be idempotent")
}

func TestService_ListTokensRequiresSecret(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.CreateToken(ctx, "device-token-1")
	require.NoError(t, err)

	_, err = service.ListTokens(ctx, "wrong-secret")
	assert.True(t, errors.Is(err, relay.ErrForbidden))
}

func TestService_ListTokensNeverExposesRawToken(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	id1, err := service.CreateToken(ctx, "device-token-1")
	require.NoError(t, err)
	id2, err := service.CreateToken(ctx, "device-token-2")
	require.NoError(t, err)

	summaries, err := service.ListTokens(ctx, testSecret)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	ids := map[string]bool{}
	for _, s := range summaries {
		ids[s.ID] = true
		assert.NotZero(t, s.CreatedAt)
	}
	assert.True(t, ids[id1])
	assert.True(t, ids[id2])
}

func TestService_CreateNotificationRequiresSecret(t *testing.T) {
	service, gateway := newTestService(t)
	ctx := context.Background()

	id, err := service.CreateToken(ctx, "device-token-1")
	require.NoError(t, err)

	err = service.CreateNotification(ctx, "wrong-secret", []string{id}, "hello", "https://bouzuya.net/")
	assert.True(t, errors.Is(err, relay.ErrForbidden))
	assert.Empty(t, gateway.sent, "denied caller must trigger no deliveries")
}

func TestService_CreateNotification(t *testing.T) {
	service, gateway := newTestService(t)
	ctx := context.Background()

	id, err := service.CreateToken(ctx, "device-token-1")
	require.NoError(t, err)

	err = service.CreateNotification(ctx, testSecret, []string{id, "unknown"}, "hello", "https://bouzuya.net/x")
	require.NoError(t, err)
	assert.Equal(t, []string{"device-token-1"}, gateway.sent)
}

func TestService_CreateNotificationValidation(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	err := service.CreateNotification(ctx, testSecret, nil, "", "https://bouzuya.net/")
	assert.True(t, errors.Is(err, notification.ErrInvalidMessage))

	err = service.CreateNotification(ctx, testSecret, nil, "hello", "https://evil.example/")
	assert.True(t, errors.Is(err, notification.ErrInvalidURL))
}

func TestService_CreateTestNotification(t *testing.T) {
	service, gateway := newTestService(t)
	ctx := context.Background()

	id, err := service.CreateToken(ctx, "device-token-1")
	require.NoError(t, err)

	// No secret required for the self-test.
	require.NoError(t, service.CreateTestNotification(ctx, id))
	assert.Equal(t, []string{"device-token-1"}, gateway.sent)

	// Unknown IDs are dropped silently.
	require.NoError(t, service.CreateTestNotification(ctx, "unknown-id"))
	assert.Len(t, gateway.sent, 1)
}
