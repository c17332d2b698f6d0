package audit

import (
	"context"
)

// Store persists journal events. Append must not reorder events for the same
// voter.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByVoter(ctx context.Context, epicID string) ([]Event, error)
}
