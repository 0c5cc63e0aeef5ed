// Package tests holds reusable contract suites for the carebot ports.
package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/carebot/pkg/domain"
	"github.com/aretw0/carebot/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunContextStoreContract runs a suite of tests to verify that a ContextStore
// implementation adheres to the interface contract.
func RunContextStoreContract(t *testing.T, store ports.ContextStore) {
	ctx := context.Background()
	userID := "contract-test-user-" + time.Now().Format("20060102150405")

	t.Run("Set and Get", func(t *testing.T) {
		for _, flow := range domain.FlowStates {
			err := store.Set(ctx, userID, flow)
			require.NoError(t, err, "Set should not return error")

			got, err := store.Get(ctx, userID)
			require.NoError(t, err, "Get should not return error")
			assert.Equal(t, flow, got)
		}
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+userID)
		assert.ErrorIs(t, err, domain.ErrContextNotFound)
	})

	t.Run("Users Are Isolated", func(t *testing.T) {
		other := userID + "-other"
		require.NoError(t, store.Set(ctx, userID, domain.FlowCheckIn))
		require.NoError(t, store.Set(ctx, other, domain.FlowSuicideRisk))
		defer func() { _ = store.Delete(ctx, other) }()

		got, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.FlowCheckIn, got)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, userID, domain.FlowNormal))

		err := store.Delete(ctx, userID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Get(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrContextNotFound, "Get after Delete should return ErrContextNotFound")

		assert.NoError(t, store.Delete(ctx, userID), "Deleting twice should not fail")
	})
}
