package localstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agri-sahayak/sahayak-cli/internal/adapters/localstore"
)

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := localstore.Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(localstore.KeyUserID, "u1"))
	require.NoError(t, s.Set(localstore.KeyTheme, "dark"))

	// Reopen to prove the values survived.
	s2, err := localstore.Open(dir)
	require.NoError(t, err)

	v, ok := s2.Get(localstore.KeyUserID)
	assert.True(t, ok)
	assert.Equal(t, "u1", v)

	v, ok = s2.Get(localstore.KeyTheme)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestDeleteAndMissing(t *testing.T) {
	s, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	_, ok := s.Get("absent")
	assert.False(t, ok)

	require.NoError(t, s.Set(localstore.KeyUserName, "Ravi"))
	require.NoError(t, s.Delete(localstore.KeyUserName))
	_, ok = s.Get(localstore.KeyUserName)
	assert.False(t, ok)

	// Deleting a missing key is a no-op.
	require.NoError(t, s.Delete(localstore.KeyUserName))
}
