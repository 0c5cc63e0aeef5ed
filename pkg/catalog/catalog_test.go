package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/carebot/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_AllPathsResolve(t *testing.T) {
	c := catalog.Default()
	for _, p := range c.Paths() {
		v, ok := c.Get(p)
		assert.True(t, ok, "path %s should resolve", p)
		assert.NotEmpty(t, v, "path %s should not be empty", p)
	}
	assert.Len(t, c.Paths(), 11)
}

func TestDefault_Values(t *testing.T) {
	c := catalog.Default()
	assert.Equal(t, "How are you doing today?", c.CheckIn)
	assert.Equal(t, "I'm here for you. Tell me more.", c.Normal.Default)

	v, ok := c.Get(catalog.PathFAQOfficeHours)
	require.True(t, ok)
	assert.Equal(t, "Our hours are 9 AM to 5 PM, Monday through Friday. Check the 'Contact Us' section on our FAQ page.", v)

	_, ok = c.Get("faq.unknown")
	assert.False(t, ok)
}

func TestParse_PartialOverride(t *testing.T) {
	c, err := catalog.Parse([]byte("checkIn: \"Hi! How is your week going?\"\nnormal:\n  good: \"Lovely.\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "Hi! How is your week going?", c.CheckIn)
	assert.Equal(t, "Lovely.", c.Normal.Good)
	// Untouched keys keep the built-in reply.
	assert.Equal(t, catalog.Default().Normal.Bad, c.Normal.Bad)
	// The built-in catalog is not modified.
	assert.Equal(t, "How are you doing today?", catalog.Default().CheckIn)
}

func TestParse_EmptyValueRejected(t *testing.T) {
	_, err := catalog.Parse([]byte("faq:\n  officeHours: \"\"\n"))
	require.ErrorIs(t, err, catalog.ErrIncompleteCatalog)
	assert.Contains(t, err.Error(), catalog.PathFAQOfficeHours)
}

func TestParse_UnknownKeyRejected(t *testing.T) {
	_, err := catalog.Parse([]byte("greeting: \"hello\"\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("suicideRisk: \"Please call 988 now.\"\n"), 0o644))

	c, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Please call 988 now.", c.SuicideRisk)

	_, err = catalog.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
