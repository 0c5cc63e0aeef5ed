package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/carebot/internal/logging"
	"github.com/aretw0/carebot/pkg/catalog"
	"github.com/aretw0/carebot/pkg/domain"
	"github.com/aretw0/carebot/pkg/intent"
	"github.com/aretw0/carebot/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed replica can hold a user's lock.
const DefaultLockTTL = 30 * time.Second

// Reply is the outcome of one turn.
type Reply struct {
	Message string
	Flow    domain.FlowState
	// Intent is nil for check-ins, which skip classification.
	Intent *domain.Intent
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates turns for all users, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.ContextStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	catalog *catalog.Catalog
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithCatalog sets the replies handed to every intent.Handler.
func WithCatalog(c *catalog.Catalog) Option {
	return func(m *Manager) {
		m.catalog = c
	}
}

// WithHooks registers lifecycle hooks on every intent.Handler.
// Repeated calls add to the hooks already registered.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = m.hooks.Merge(hooks)
	}
}

// NewManager creates a new Manager with the given context store.
func NewManager(store ports.ContextStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		catalog: catalog.Default(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the underlying context store.
func (m *Manager) Store() ports.ContextStore {
	return m.store
}

// SendMessage answers message for userID and persists the resulting flow.
func (m *Manager) SendMessage(ctx context.Context, userID, message string) (*Reply, error) {
	var reply *Reply
	err := m.WithLock(ctx, userID, func(ctx context.Context) error {
		current, err := m.load(ctx, userID)
		if err != nil {
			return err
		}

		h := m.newHandler(ctx, current)
		text := h.HandleMessage(message)
		in, _ := h.LastIntent()

		if err := m.store.Set(ctx, userID, h.Flow()); err != nil {
			return fmt.Errorf("failed to save context: %w", err)
		}

		m.logger.Debug("Message handled",
			"user_id", userID,
			"intent", in.String(),
			"from", current,
			"to", h.Flow(),
		)
		reply = &Reply{Message: text, Flow: h.Flow(), Intent: &in}
		return nil
	})
	return reply, err
}

// InitiateCheckIn opens a check-in for userID. The stored flow is not read,
// since a check-in always overrides it.
func (m *Manager) InitiateCheckIn(ctx context.Context, userID string) (*Reply, error) {
	var reply *Reply
	err := m.WithLock(ctx, userID, func(ctx context.Context) error {
		h := m.newHandler(ctx, domain.FlowNormal)
		text := h.CheckInFlow()

		if err := m.store.Set(ctx, userID, h.Flow()); err != nil {
			return fmt.Errorf("failed to save context: %w", err)
		}

		m.logger.Debug("Check-in initiated", "user_id", userID)
		reply = &Reply{Message: text, Flow: h.Flow()}
		return nil
	})
	return reply, err
}

// RetrieveContext returns the stored flow, or nil when none exists.
func (m *Manager) RetrieveContext(ctx context.Context, userID string) (*domain.FlowState, error) {
	flow, err := m.store.Get(ctx, userID)
	if errors.Is(err, domain.ErrContextNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve context: %w", err)
	}
	return &flow, nil
}

// UpdateContext overwrites the stored flow.
func (m *Manager) UpdateContext(ctx context.Context, userID string, flow domain.FlowState) error {
	if !flow.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidFlowState, flow)
	}
	return m.WithLock(ctx, userID, func(ctx context.Context) error {
		if err := m.store.Set(ctx, userID, flow); err != nil {
			return fmt.Errorf("failed to save context: %w", err)
		}
		return nil
	})
}

func (m *Manager) load(ctx context.Context, userID string) (domain.FlowState, error) {
	flow, err := m.store.Get(ctx, userID)
	if errors.Is(err, domain.ErrContextNotFound) {
		return domain.FlowNormal, nil
	}
	// An unknown stored value must not block a reply. The next Set overwrites it.
	if errors.Is(err, domain.ErrInvalidFlowState) {
		m.logger.Warn("Ignoring invalid stored context", "user_id", userID, "error", err)
		return domain.FlowNormal, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load context: %w", err)
	}
	return flow, nil
}

func (m *Manager) newHandler(ctx context.Context, flow domain.FlowState) *intent.Handler {
	return intent.NewHandler(
		intent.WithCatalog(m.catalog),
		intent.WithFlow(flow),
		intent.WithHooks(m.hooks),
		intent.WithContext(ctx),
	)
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(userID) after unlocking.
func (m *Manager) acquire(userID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[userID]
	if !exists {
		entry = &lockEntry{}
		m.locks[userID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[userID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, userID)
	}
}

// WithLock executes fn while holding the lock for the user.
func (m *Manager) WithLock(ctx context.Context, userID string, fn func(context.Context) error) error {
	entry := m.acquire(userID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(userID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, userID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"user_id", userID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
