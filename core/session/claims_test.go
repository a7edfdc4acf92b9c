package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftkerja/shiftclient/core/session"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return tok
}

func TestParseClaims(t *testing.T) {
	t.Parallel()

	t.Run("decodes backend claims without the key", func(t *testing.T) {
		t.Parallel()

		exp := time.Now().Add(24 * time.Hour).Truncate(time.Second)
		tok := signToken(t, jwt.MapClaims{
			"user_id": 42,
			"role":    "worker",
			"exp":     exp.Unix(),
		})

		c, err := session.ParseClaims(tok)
		require.NoError(t, err)
		assert.Equal(t, int64(42), c.UserID)
		assert.Equal(t, session.RoleWorker, c.Role)
		assert.True(t, c.Expiry().Equal(exp))
		assert.False(t, c.ExpiredAt(time.Now()))
		assert.True(t, c.ExpiredAt(exp.Add(time.Second)))
	})

	t.Run("expired tokens still decode", func(t *testing.T) {
		t.Parallel()

		tok := signToken(t, jwt.MapClaims{
			"user_id": 7,
			"role":    "business",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})

		c, err := session.ParseClaims(tok)
		require.NoError(t, err)
		assert.True(t, c.ExpiredAt(time.Now()))
	})

	t.Run("no exp claim never expires", func(t *testing.T) {
		t.Parallel()

		c, err := session.ParseClaims(signToken(t, jwt.MapClaims{"user_id": 1, "role": "admin"}))
		require.NoError(t, err)
		assert.True(t, c.Expiry().IsZero())
		assert.False(t, c.ExpiredAt(time.Now()))
	})

	t.Run("opaque tokens are rejected", func(t *testing.T) {
		t.Parallel()

		_, err := session.ParseClaims("abc123")
		assert.ErrorIs(t, err, session.ErrInvalidToken)

		_, err = session.ParseClaims("")
		assert.ErrorIs(t, err, session.ErrInvalidToken)
	})
}
