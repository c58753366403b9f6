package model

// NotificationRequest is the ephemeral payload handed to the notifier
// after a status transition commits. It is never persisted.
type NotificationRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}
