package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/carebot/pkg/adapters/memory"
	"github.com/aretw0/carebot/pkg/domain"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		uid := fmt.Sprintf("user-%d", i)
		_ = mgr.UpdateContext(ctx, uid, domain.FlowNormal)
		_, _ = mgr.SendMessage(ctx, uid, "hello")
	}

	lockCount := len(mgr.locks)
	t.Logf("Users: %d, Locks Leaked: %d", count, lockCount)

	if lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory", lockCount)
	}
}
