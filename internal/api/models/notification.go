package models

// CreateNotificationRequest is the body of POST /admin/notifications.
type CreateNotificationRequest struct {
	Message  string   `json:"message"`
	TokenIDs []string `json:"token_ids"`
	URL      string   `json:"url"`
}

// CreateNotificationResponse is the body of a successful
// POST /admin/notifications. Intentionally empty.
type CreateNotificationResponse struct{}
