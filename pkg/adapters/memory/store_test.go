package memory_test

import (
	"testing"

	"github.com/aretw0/carebot/pkg/adapters/memory"
	"github.com/aretw0/carebot/pkg/ports/tests"
)

func TestMemoryStore_Contract(t *testing.T) {
	tests.RunContextStoreContract(t, memory.NewStore())
}
