package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Pavithra-p25/ecommerce-catalog/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestStore(t *testing.T) {

	t.Run("FreshStoreIsUnauthenticated", func(t *testing.T) {
		s := session.NewStore(sessionPath(t))
		assert.False(t, s.IsAuthenticated())
		assert.Empty(t, s.CurrentToken())
	})

	t.Run("LoginStoresTokenAndIdentityTogether", func(t *testing.T) {
		s := session.NewStore(sessionPath(t))

		err := s.Login("abc", session.Identity{Username: "admin"})
		require.NoError(t, err)

		assert.True(t, s.IsAuthenticated())
		assert.Equal(t, "abc", s.CurrentToken())
		assert.Equal(t, "admin", s.CurrentIdentity().Username)
	})

	t.Run("SessionSurvivesRestart", func(t *testing.T) {
		path := sessionPath(t)

		s := session.NewStore(path)
		require.NoError(t, s.Login("abc", session.Identity{Username: "admin"}))

		restored := session.NewStore(path)
		assert.True(t, restored.IsAuthenticated())
		assert.Equal(t, "abc", restored.CurrentToken())
		assert.Equal(t, "admin", restored.CurrentIdentity().Username)
	})

	t.Run("LogoutClearsMemoryAndFile", func(t *testing.T) {
		path := sessionPath(t)

		s := session.NewStore(path)
		require.NoError(t, s.Login("abc", session.Identity{Username: "admin"}))
		require.NoError(t, s.Logout())

		assert.False(t, s.IsAuthenticated())
		assert.Empty(t, s.CurrentToken())
		assert.Empty(t, s.CurrentIdentity().Username)

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))

		restored := session.NewStore(path)
		assert.False(t, restored.IsAuthenticated())
	})

	t.Run("LogoutIsIdempotent", func(t *testing.T) {
		s := session.NewStore(sessionPath(t))
		require.NoError(t, s.Logout())
		require.NoError(t, s.Logout())
	})

	t.Run("CorruptSessionFileMeansUnauthenticated", func(t *testing.T) {
		path := sessionPath(t)
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

		s := session.NewStore(path)
		assert.False(t, s.IsAuthenticated())
	})
}
