// Package fcm implements the push gateway on Firebase Cloud Messaging.
package fcm

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/bouzuya/pushrelay/internal/push"
)

// DefaultSendTimeout bounds a single FCM send call.
const DefaultSendTimeout = 10 * time.Second

// ClientConfig holds configuration for the FCM client.
type ClientConfig struct {
	// ProjectID is the Firebase project ID (optional; derived from
	// credentials when empty).
	ProjectID string

	// CredentialsFile is the path to a service account key file (optional;
	// application default credentials are used when empty).
	CredentialsFile string

	// SendTimeout bounds individual send calls (optional).
	SendTimeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an FCM push gateway.
type Client struct {
	messaging   *messaging.Client
	sendTimeout time.Duration
	logger      zerolog.Logger
}

// NewClient creates a new FCM client.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	mc, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("create messaging client: %w", err)
	}

	sendTimeout := cfg.SendTimeout
	if sendTimeout == 0 {
		sendTimeout = DefaultSendTimeout
	}

	return &Client{
		messaging:   mc,
		sendTimeout: sendTimeout,
		logger:      cfg.Logger,
	}, nil
}

// Send delivers one notification to one device token.
func (c *Client) Send(ctx context.Context, deviceToken string, n push.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, c.sendTimeout)
	defer cancel()

	id, err := c.messaging.Send(ctx, buildMessage(deviceToken, n))
	if err != nil {
		return fmt.Errorf("send fcm message: %w", err)
	}

	c.logger.Debug().
		Str("message_id", id).
		Msg("fcm message sent")
	return nil
}

// buildMessage maps a notification onto the FCM webpush message shape.
func buildMessage(deviceToken string, n push.Notification) *messaging.Message {
	return &messaging.Message{
		Token: deviceToken,
		Data:  n.Data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title:              n.Title,
				Body:               n.Body,
				Icon:               n.Icon,
				Data:               n.Data,
				RequireInteraction: n.RequireInteraction,
			},
		},
	}
}

// Ensure Client implements the gateway interface.
var _ push.Gateway = (*Client)(nil)
