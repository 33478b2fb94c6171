package helper

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth_GenerateToken_RequiresInputs(t *testing.T) {
	auth := SetupAuth("test-secret")

	_, err := auth.GenerateToken(uuid.Nil, "amina@ehealth.or.ke")
	require.Error(t, err)

	_, err = auth.GenerateToken(uuid.New(), "")
	require.Error(t, err)
}

func TestAuth_TokenRoundTrip(t *testing.T) {
	auth := SetupAuth("test-secret")
	userID := uuid.New()

	token, err := auth.GenerateToken(userID, "amina@ehealth.or.ke")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("bare token", func(t *testing.T) {
		claims, err := auth.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "amina@ehealth.or.ke", claims.Email)
	})

	t.Run("bearer prefix", func(t *testing.T) {
		claims, err := auth.VerifyToken("Bearer " + token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := SetupAuth("another-secret")
		_, err := other.VerifyToken(token)
		require.Error(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := auth.VerifyToken("")
		require.Error(t, err)
	})

	t.Run("bearer without a token", func(t *testing.T) {
		_, err := auth.VerifyToken("Bearer ")
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := auth.VerifyToken("not.a.jwt")
		require.Error(t, err)
	})
}

func TestAuth_VerifyPassword(t *testing.T) {
	auth := SetupAuth("test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, auth.VerifyPassword("s3cret-pass", string(hash)))
	require.EqualError(t, auth.VerifyPassword("wrong", string(hash)), "invalid email or password")
}
