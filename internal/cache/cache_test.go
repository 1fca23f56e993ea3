package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRoundTrip(t *testing.T) {
	c, err := OpenAt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer c.Close()

	got, err := c.GetSetting(KeyLastProjectID)
	require.NoError(t, err)
	assert.Empty(t, got, "missing key reads as empty")

	require.NoError(t, c.SetSetting(KeyLastProjectID, "42"))
	got, err = c.GetSetting(KeyLastProjectID)
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	// Upsert overwrites
	require.NoError(t, c.SetSetting(KeyLastProjectID, "7"))
	got, err = c.GetSetting(KeyLastProjectID)
	require.NoError(t, err)
	assert.Equal(t, "7", got)
}
