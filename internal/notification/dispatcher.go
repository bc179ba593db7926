// Package notification validates and fans out notifications to registered tokens.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bouzuya/pushrelay/internal/push"
	"github.com/bouzuya/pushrelay/internal/token"
)

// Validation errors.
var (
	ErrInvalidMessage = errors.New("invalid message")
	ErrInvalidURL     = errors.New("invalid url")
)

// Fixed notification shape.
const (
	notificationTitle = "bouzuya.net からのお知らせ"
	notificationIcon  = "https://bouzuya.net/images/favicon.png"

	testMessage = "テスト通知です"
	testURL     = "https://bouzuya.net/"
)

// allowedURLPrefixes is the allow-list of notification target origins.
var allowedURLPrefixes = []string{
	"https://bouzuya.net",
	"https://blog.bouzuya.net",
}

// Failure records a single per-token delivery failure within a batch.
type Failure struct {
	TokenID string
	Err     error
}

// Result summarizes a fan-out batch. A batch that completes is considered
// successful even when individual deliveries failed.
type Result struct {
	Attempted int
	Delivered int
	Failures  []Failure
}

// Dispatcher validates notifications and fans them out via the push gateway.
type Dispatcher struct {
	registry *token.Service
	gateway  push.Gateway
	logger   zerolog.Logger
	metrics  *Metrics
}

// DispatcherConfig holds configuration for the dispatcher.
type DispatcherConfig struct {
	Registry *token.Service
	Gateway  push.Gateway
	Logger   zerolog.Logger
	// Metrics is optional; when nil no instruments are recorded.
	Metrics *Metrics
}

// NewDispatcher creates a new dispatcher.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	return &Dispatcher{
		registry: cfg.Registry,
		gateway:  cfg.Gateway,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}
}

// Dispatch validates the notification, resolves the target IDs against the
// registry and delivers to every resolved token concurrently. Unresolved IDs
// are silently dropped; dispatching to zero tokens is not an error. Per-token
// delivery failures are recorded in the result and logged but never abort
// sibling deliveries.
func (d *Dispatcher) Dispatch(ctx context.Context, targetIDs []string, message, url string) (*Result, error) {
	if message == "" {
		return nil, ErrInvalidMessage
	}
	if !urlAllowed(url) {
		return nil, ErrInvalidURL
	}

	targets, err := d.registry.Resolve(ctx, targetIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve targets: %w", err)
	}

	n := push.Notification{
		Title:              notificationTitle,
		Body:               message,
		Icon:               notificationIcon,
		Data:               map[string]string{"url": url},
		RequireInteraction: true,
	}

	result := &Result{Attempted: len(targets)}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, target := range targets {
		wg.Add(1)
		go func(target *token.RegisteredToken) {
			defer wg.Done()

			start := time.Now()
			sendErr := d.gateway.Send(ctx, target.Token, n)
			if d.metrics != nil {
				d.metrics.RecordSend(time.Since(start), sendErr)
			}

			mu.Lock()
			defer mu.Unlock()
			if sendErr != nil {
				result.Failures = append(result.Failures, Failure{TokenID: target.ID, Err: sendErr})
				d.logger.Warn().
					Err(sendErr).
					Str("token_id", target.ID).
					Msg("push delivery failed")
				return
			}
			result.Delivered++
		}(target)
	}
	wg.Wait()

	d.logger.Info().
		Int("attempted", result.Attempted).
		Int("delivered", result.Delivered).
		Int("failed", len(result.Failures)).
		Msg("notification dispatched")

	return result, nil
}

// DispatchTest sends the fixed self-test notification to a single
// registration ID.
func (d *Dispatcher) DispatchTest(ctx context.Context, tokenID string) (*Result, error) {
	return d.Dispatch(ctx, []string{tokenID}, testMessage, testURL)
}

// urlAllowed reports whether the url starts with an allow-listed origin.
func urlAllowed(url string) bool {
	for _, prefix := range allowedURLPrefixes {
		if strings.HasPrefix(url, prefix) {
			return true
		}
	}
	return false
}
