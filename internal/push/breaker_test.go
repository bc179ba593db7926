package push_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bouzuya/pushrelay/internal/push"
)

// fakeGateway is a test gateway with a scriptable error.
type fakeGateway struct {
	err   error
	calls int
}

func (g *fakeGateway) Send(_ context.Context, _ string, _ push.Notification) error {
	g.calls++
	return g.err
}

func TestBreakerGateway_PassesThrough(t *testing.T) {
	inner := &fakeGateway{}
	gw := push.NewBreakerGateway(inner, push.DefaultBreakerConfig("test"))

	err := gw.Send(context.Background(), "token-1", push.Notification{Body: "hello"})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestBreakerGateway_PropagatesSendError(t *testing.T) {
	sendErr := errors.New("gateway rejected token")
	inner := &fakeGateway{err: sendErr}
	gw := push.NewBreakerGateway(inner, push.DefaultBreakerConfig("test"))

	err := gw.Send(context.Background(), "token-1", push.Notification{Body: "hello"})
	assert.True(t, errors.Is(err, sendErr))
}

func TestBreakerGateway_OpensAfterRepeatedFailures(t *testing.T) {
	inner := &fakeGateway{err: errors.New("unreachable")}
	gw := push.NewBreakerGateway(inner, push.DefaultBreakerConfig("test"))

	// Default trip threshold: 5+ requests at >= 50% failure rate.
	for i := 0; i < 5; i++ {
		_ = gw.Send(context.Background(), "token-1", push.Notification{})
	}

	callsBefore := inner.calls
	err := gw.Send(context.Background(), "token-1", push.Notification{})
	assert.True(t, errors.Is(err, push.ErrCircuitOpen))
	assert.Equal(t, callsBefore, inner.calls, "open breaker must not reach the gateway")
}
