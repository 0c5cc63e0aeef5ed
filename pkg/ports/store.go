package ports

import (
	"context"

	"github.com/aretw0/carebot/pkg/domain"
)

// ContextStore persists the conversation flow for each user.
type ContextStore interface {
	// Get returns the stored flow for a user.
	// Returns domain.ErrContextNotFound if nothing has been stored.
	Get(ctx context.Context, userID string) (domain.FlowState, error)

	// Set stores the flow for a user, replacing any previous value.
	Set(ctx context.Context, userID string, flow domain.FlowState) error

	// Delete removes the stored flow. Deleting a missing user is not an error.
	Delete(ctx context.Context, userID string) error
}

// Pinger is implemented by stores that can report backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}
