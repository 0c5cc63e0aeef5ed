package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/carebot/pkg/domain"
)

// Hooks returns lifecycle hooks that record metrics and log events.
// Either argument may be nil.
func Hooks(m *Metrics, logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnIntentDetected: func(ctx context.Context, e *domain.IntentEvent) {
			if m != nil {
				m.Intents.WithLabelValues(e.Intent.String()).Inc()
			}
			if logger != nil {
				logger.DebugContext(ctx, "intent_detected", "intent", e.Intent.String(), "flow", e.Flow)
			}
		},
		OnFlowChange: func(ctx context.Context, e *domain.FlowEvent) {
			if m != nil {
				m.FlowTransitions.WithLabelValues(string(e.From), string(e.To)).Inc()
			}
			if logger == nil {
				return
			}
			// Risk transitions are what operators audit.
			level := slog.LevelInfo
			if e.To == domain.FlowSuicideRisk {
				level = slog.LevelWarn
			}
			logger.Log(ctx, level, "flow_change", "from", e.From, "to", e.To)
		},
	}
}
