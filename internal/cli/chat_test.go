package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/carebot/pkg/adapters/memory"
	"github.com/aretw0/carebot/pkg/catalog"
	"github.com/aretw0/carebot/pkg/domain"
	"github.com/aretw0/carebot/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogReply(path string) string {
	v, _ := catalog.Default().Get(path)
	return v
}

func TestRunChat_Text(t *testing.T) {
	store := memory.NewStore()
	m := session.NewManager(store)
	in := strings.NewReader("I feel good\n\nwhat about office hours\nquit\nnever read\n")
	var out bytes.Buffer

	err := RunChat(context.Background(), m, in, &out, ChatOptions{UserID: "u1", CheckIn: true})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, catalogReply(catalog.PathCheckIn))
	assert.Contains(t, got, catalogReply(catalog.PathNormalGood))
	assert.Contains(t, got, catalogReply(catalog.PathFAQOfficeHours))
	assert.NotContains(t, got, catalogReply(catalog.PathNormalDefault))
}

func TestRunChat_JSON(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	in := strings.NewReader(`{"message":"I might hurt myself"}` + "\n")
	var out bytes.Buffer

	require.NoError(t, RunChat(context.Background(), m, in, &out, ChatOptions{JSON: true}))

	var r chatReply
	require.NoError(t, json.Unmarshal(out.Bytes(), &r))
	assert.Equal(t, domain.FlowSuicideRisk, r.Context)
	require.NotNil(t, r.Intent)
	assert.Equal(t, domain.IntentSuicideRisk, *r.Intent)
}

func TestRunChat_JSONInvalidLine(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	err := RunChat(context.Background(), m, strings.NewReader("not json\n"), &bytes.Buffer{}, ChatOptions{JSON: true})
	assert.Error(t, err)
}
