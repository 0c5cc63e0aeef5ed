package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/carebot/pkg/adapters/memory"
	"github.com/aretw0/carebot/pkg/adapters/redis"
	"github.com/aretw0/carebot/pkg/catalog"
	"github.com/aretw0/carebot/pkg/domain"
	"github.com/aretw0/carebot/pkg/ports"
	"github.com/aretw0/carebot/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scripts = catalog.Default()

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]domain.FlowState
	mu   sync.Mutex
}

func (s *SlowStore) Set(ctx context.Context, userID string, flow domain.FlowState) error {
	time.Sleep(5 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]domain.FlowState)
	}
	s.data[userID] = flow
	return nil
}

func (s *SlowStore) Get(ctx context.Context, userID string) (domain.FlowState, error) {
	time.Sleep(5 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()

	if flow, ok := s.data[userID]; ok {
		return flow, nil
	}
	return "", domain.ErrContextNotFound
}

func (s *SlowStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}

// FailingStore returns err from every call.
type FailingStore struct{ err error }

func (s FailingStore) Set(context.Context, string, domain.FlowState) error { return s.err }
func (s FailingStore) Get(context.Context, string) (domain.FlowState, error) {
	return "", s.err
}
func (s FailingStore) Delete(context.Context, string) error { return s.err }

func TestManager_SendMessage_PersistsFlow(t *testing.T) {
	store := memory.NewStore()
	mgr := session.NewManager(store)
	ctx := context.Background()

	reply, err := mgr.SendMessage(ctx, "u1", "I feel like I might hurt myself.")
	require.NoError(t, err)
	assert.Equal(t, scripts.SuicideRisk, reply.Message)
	assert.Equal(t, domain.FlowSuicideRisk, reply.Flow)
	require.NotNil(t, reply.Intent)
	assert.Equal(t, domain.IntentSuicideRisk, *reply.Intent)

	stored, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.FlowSuicideRisk, stored)

	// The next turn starts from the stored flow, so a normal message keeps it.
	reply, err = mgr.SendMessage(ctx, "u1", "I am feeling good.")
	require.NoError(t, err)
	assert.Equal(t, scripts.Normal.Good, reply.Message)
	assert.Equal(t, domain.FlowSuicideRisk, reply.Flow)
}

func TestManager_SendMessage_NewUserStartsNormal(t *testing.T) {
	store := memory.NewStore()
	mgr := session.NewManager(store)
	ctx := context.Background()

	reply, err := mgr.SendMessage(ctx, "fresh", "What are your office hours?")
	require.NoError(t, err)
	assert.Equal(t, scripts.FAQ.OfficeHours, reply.Message)
	assert.Equal(t, domain.FlowNormal, reply.Flow)

	stored, err := store.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, domain.FlowNormal, stored)
}

func TestManager_CheckInThenMessage(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	reply, err := mgr.InitiateCheckIn(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "How are you doing today?", reply.Message)
	assert.Equal(t, domain.FlowCheckIn, reply.Flow)
	assert.Nil(t, reply.Intent)

	reply, err = mgr.SendMessage(ctx, "u2", "I’m feeling good today.")
	require.NoError(t, err)
	assert.Equal(t, scripts.Normal.Good, reply.Message)
	assert.Equal(t, domain.FlowCheckIn, reply.Flow)
}

func TestManager_RetrieveAndUpdateContext(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	got, err := mgr.RetrieveContext(ctx, "u3")
	require.NoError(t, err)
	assert.Nil(t, got, "no context stored yet")

	require.NoError(t, mgr.UpdateContext(ctx, "u3", domain.FlowCheckIn))

	got, err = mgr.RetrieveContext(ctx, "u3")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.FlowCheckIn, *got)

	err = mgr.UpdateContext(ctx, "u3", "InvalidContext")
	assert.ErrorIs(t, err, domain.ErrInvalidFlowState)
}

func TestManager_StoreErrors(t *testing.T) {
	boom := errors.New("redis error")
	mgr := session.NewManager(FailingStore{err: boom})
	ctx := context.Background()

	_, err := mgr.SendMessage(ctx, "u", "hello")
	assert.ErrorIs(t, err, boom)

	_, err = mgr.InitiateCheckIn(ctx, "u")
	assert.ErrorIs(t, err, boom)

	_, err = mgr.RetrieveContext(ctx, "u")
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, mgr.UpdateContext(ctx, "u", domain.FlowNormal), boom)
}

func TestManager_Locking(t *testing.T) {
	store := &SlowStore{}
	mgr := session.NewManager(store)
	ctx := context.Background()
	id := "race-test"

	require.NoError(t, mgr.UpdateContext(ctx, id, domain.FlowNormal))

	// One risk message among many normal ones. Without serialization a normal
	// turn could read Normal before the risk turn writes and then overwrite it.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := "I am feeling good"
			if i == 0 {
				msg = "I want to die"
			}
			_, err := mgr.SendMessage(ctx, id, msg)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.FlowSuicideRisk, got)
}

// recordingLocker counts Lock calls.
type recordingLocker struct {
	mu    sync.Mutex
	locks int
	ttl   time.Duration
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locks++
	l.ttl = ttl
	return func(context.Context) error { return nil }, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &recordingLocker{}
	mgr := session.NewManager(memory.NewStore(), session.WithLocker(locker), session.WithLockTTL(time.Second))
	ctx := context.Background()

	_, err := mgr.SendMessage(ctx, "u", "hi")
	require.NoError(t, err)
	_, err = mgr.InitiateCheckIn(ctx, "u")
	require.NoError(t, err)

	assert.Equal(t, 2, locker.locks)
	assert.Equal(t, time.Second, locker.ttl)
}

func TestManager_Hooks(t *testing.T) {
	var changes []domain.FlowEvent
	hooks := domain.LifecycleHooks{
		OnFlowChange: func(_ context.Context, e *domain.FlowEvent) { changes = append(changes, *e) },
	}
	mgr := session.NewManager(memory.NewStore(), session.WithHooks(hooks))
	ctx := context.Background()

	_, err := mgr.InitiateCheckIn(ctx, "u")
	require.NoError(t, err)
	_, err = mgr.SendMessage(ctx, "u", "end my life")
	require.NoError(t, err)

	require.Len(t, changes, 2)
	assert.Equal(t, domain.FlowCheckIn, changes[1].From)
	assert.Equal(t, domain.FlowSuicideRisk, changes[1].To)
}

func TestManager_HooksAccumulate(t *testing.T) {
	var first, second int
	mgr := session.NewManager(memory.NewStore(),
		session.WithHooks(domain.LifecycleHooks{
			OnIntentDetected: func(context.Context, *domain.IntentEvent) { first++ },
		}),
		session.WithHooks(domain.LifecycleHooks{
			OnIntentDetected: func(context.Context, *domain.IntentEvent) { second++ },
		}),
	)

	_, err := mgr.SendMessage(context.Background(), "u", "hello")
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestManager_SendMessage_RecoversFromInvalidStoredContext(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := redis.NewFromURL("redis://" + mr.Addr())
	require.NoError(t, err)
	defer store.Close()

	// Written by another client of the same key.
	require.NoError(t, mr.Set("context:u1", "normal"))
	mgr := session.NewManager(store)

	reply, err := mgr.SendMessage(context.Background(), "u1", "I want to die")
	require.NoError(t, err)
	assert.Equal(t, scripts.SuicideRisk, reply.Message)
	assert.Equal(t, domain.FlowSuicideRisk, reply.Flow)

	v, err := mr.Get("context:u1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.FlowSuicideRisk), v, "the invalid value is overwritten")
}
