package email

import (
	"context"
)

// Message is a plain-text email to be delivered.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a message over one transport. Implementations must
// honour ctx cancellation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
