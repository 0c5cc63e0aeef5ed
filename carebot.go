package carebot

import (
	"log/slog"

	"github.com/aretw0/carebot/pkg/adapters/memory"
	"github.com/aretw0/carebot/pkg/catalog"
	"github.com/aretw0/carebot/pkg/domain"
	"github.com/aretw0/carebot/pkg/ports"
	"github.com/aretw0/carebot/pkg/session"
)

// Bot answers messages and keeps one flow per user.
type Bot struct {
	*session.Manager
}

type options struct {
	store   ports.ContextStore
	session []session.Option
}

// Option configures a Bot.
type Option func(*options)

// WithStore sets where flows are kept. The default is in memory.
func WithStore(s ports.ContextStore) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithCatalog replaces the built-in replies.
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *options) {
		o.session = append(o.session, session.WithCatalog(c))
	}
}

// WithLifecycleHooks registers observers for intents and flow changes.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(o *options) {
		o.session = append(o.session, session.WithHooks(h))
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.session = append(o.session, session.WithLogger(l))
	}
}

// WithLocker serializes turns across processes.
func WithLocker(l ports.DistributedLocker) Option {
	return func(o *options) {
		o.session = append(o.session, session.WithLocker(l))
	}
}

// New creates a Bot.
func New(opts ...Option) *Bot {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.store == nil {
		o.store = memory.NewStore()
	}
	return &Bot{Manager: session.NewManager(o.store, o.session...)}
}
