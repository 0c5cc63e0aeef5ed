package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventIntentDetected EventType = "intent_detected"
	EventFlowChange     EventType = "flow_change"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// IntentEvent is emitted once per classified message.
type IntentEvent struct {
	EventBase
	Intent Intent    `json:"intent"`
	Flow   FlowState `json:"flow"`
}

// FlowEvent is emitted when the conversation flow changes value.
type FlowEvent struct {
	EventBase
	From FlowState `json:"from"`
	To   FlowState `json:"to"`
}

// LifecycleHooks defines callbacks for handler observability.
// Nil fields are skipped.
type LifecycleHooks struct {
	OnIntentDetected func(context.Context, *IntentEvent)
	OnFlowChange     func(context.Context, *FlowEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnIntentDetected: chain(h.OnIntentDetected, other.OnIntentDetected),
		OnFlowChange:     chain(h.OnFlowChange, other.OnFlowChange),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
