// Package push defines the boundary to the external push-delivery service.
package push

import "context"

// Notification is the payload delivered to a single device.
type Notification struct {
	// Title is the notification title.
	Title string
	// Body is the notification body text.
	Body string
	// Icon is the URL of the notification icon.
	Icon string
	// Data is an auxiliary string-to-string payload (e.g. a target URL).
	Data map[string]string
	// RequireInteraction marks the notification as requiring an explicit
	// user action to dismiss.
	RequireInteraction bool
}

// Gateway attempts delivery of one notification to one device token.
// Implementations report per-call success or failure; they do not retry.
type Gateway interface {
	Send(ctx context.Context, deviceToken string, n Notification) error
}
