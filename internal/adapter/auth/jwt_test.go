package auth_test

import (
	"testing"
	"time"

	"github.com/Pavithra-p25/ecommerce-catalog/internal/adapter/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager(t *testing.T) {

	t.Run("IssueVerifyRoundtrip", func(t *testing.T) {
		m := auth.NewJWTManager("s3cret", time.Hour)

		token, expiresIn, err := m.Issue("admin")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(3600000), expiresIn)

		username, err := m.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", username)
	})

	t.Run("RejectsGarbage", func(t *testing.T) {
		m := auth.NewJWTManager("s3cret", time.Hour)

		_, err := m.Verify("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("RejectsForeignSecret", func(t *testing.T) {
		issuer := auth.NewJWTManager("s3cret", time.Hour)
		verifier := auth.NewJWTManager("another", time.Hour)

		token, _, err := issuer.Issue("admin")
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("RejectsExpiredToken", func(t *testing.T) {
		m := auth.NewJWTManager("s3cret", -time.Minute)

		token, _, err := m.Issue("admin")
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
