package intent

import (
	"context"
	"time"

	"github.com/aretw0/carebot/pkg/catalog"
	"github.com/aretw0/carebot/pkg/domain"
)

// Handler routes messages for a single conversation turn and tracks its flow.
// It is scoped to one request and is not safe for concurrent use.
type Handler struct {
	catalog *catalog.Catalog
	flow    domain.FlowState
	hooks   domain.LifecycleHooks
	ctx     context.Context

	lastIntent *domain.Intent
}

// Option configures a Handler.
type Option func(*Handler)

// WithCatalog replaces the built-in reply catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(h *Handler) {
		if c != nil {
			h.catalog = c
		}
	}
}

// WithFlow seeds the handler with a previously persisted flow state.
// Invalid values are ignored and the handler starts in Normal.
func WithFlow(f domain.FlowState) Option {
	return func(h *Handler) {
		h.flow = f.OrDefault()
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(h *Handler) {
		h.hooks = hooks
	}
}

// WithContext sets the context handed to lifecycle hooks.
func WithContext(ctx context.Context) Option {
	return func(h *Handler) {
		h.ctx = ctx
	}
}

// NewHandler creates a Handler in the Normal flow.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		catalog: catalog.Default(),
		flow:    domain.FlowNormal,
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Flow returns the current conversation flow.
func (h *Handler) Flow() domain.FlowState {
	return h.flow
}

// LastIntent returns the intent of the most recent HandleMessage call, if any.
func (h *Handler) LastIntent() (domain.Intent, bool) {
	if h.lastIntent == nil {
		return 0, false
	}
	return *h.lastIntent, true
}

// HandleMessage classifies message and returns the matching reply.
// A suicide-risk message moves the flow to SuicideRisk. FAQ and Normal
// messages leave the flow untouched, so an earlier CheckIn or SuicideRisk
// persists. The reply depends only on the current message.
func (h *Handler) HandleMessage(message string) string {
	in := Detect(message)
	h.lastIntent = &in

	if in == domain.IntentSuicideRisk {
		h.setFlow(domain.FlowSuicideRisk)
	}

	if h.hooks.OnIntentDetected != nil {
		h.hooks.OnIntentDetected(h.ctx, &domain.IntentEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventIntentDetected},
			Intent:    in,
			Flow:      h.flow,
		})
	}

	respond, ok := responders[in]
	if !ok {
		return h.catalog.Normal.Default
	}
	return respond(h.catalog, message)
}

// CheckInFlow opens a check-in regardless of the current flow and returns
// the check-in prompt. No classification takes place.
func (h *Handler) CheckInFlow() string {
	h.setFlow(domain.FlowCheckIn)
	return respondCheckIn(h.catalog)
}

func (h *Handler) setFlow(to domain.FlowState) {
	from := h.flow
	h.flow = to
	if from == to || h.hooks.OnFlowChange == nil {
		return
	}
	h.hooks.OnFlowChange(h.ctx, &domain.FlowEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFlowChange},
		From:      from,
		To:        to,
	})
}
