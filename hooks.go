package expect

import (
	"context"
	"time"

	"github.com/aretw0/expect/pkg/schema"
)

// Event describes one completed validation.
type Event struct {
	Timestamp time.Time     `json:"timestamp"`
	Schema    string        `json:"schema,omitempty"` // Stored schema name; empty for inline schemas
	Result    schema.Result `json:"result"`
	Duration  time.Duration `json:"duration"`
}

// Hooks defines callbacks for Validator observability.
type Hooks struct {
	OnValidate func(context.Context, *Event)
}

// Chain returns Hooks that call each of hooks in order.
func Chain(hooks ...Hooks) Hooks {
	return Hooks{
		OnValidate: func(ctx context.Context, e *Event) {
			for _, h := range hooks {
				if h.OnValidate != nil {
					h.OnValidate(ctx, e)
				}
			}
		},
	}
}
