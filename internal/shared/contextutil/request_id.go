package contextutil

import "github.com/google/uuid"

// NewRequestID issues the id attached to every inbound request and every
// outbox event produced while handling it.
func NewRequestID() string {
	return uuid.NewString()
}
