package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefall/casefall/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("unit-test-secret")
	user := &domain.User{
		ID:       uuid.New(),
		Username: "gambler",
		Email:    "gambler@example.com",
	}

	token, err := issuer.Issue(user, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, "gambler", session.Username)
	assert.Equal(t, "gambler@example.com", session.Email)
}

func TestTokenVerifyFailures(t *testing.T) {
	issuer := NewTokenIssuer("unit-test-secret")
	user := &domain.User{ID: uuid.New(), Username: "gambler"}

	t.Run("wrong secret", func(t *testing.T) {
		token, err := issuer.Issue(user, time.Now())
		require.NoError(t, err)

		_, err = NewTokenIssuer("other-secret").Verify(token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := issuer.Issue(user, time.Now().Add(-2*TokenTTL))
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := issuer.Verify("not.a.token")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}

func TestSessionContext(t *testing.T) {
	t.Run("round trips through context", func(t *testing.T) {
		want := Session{UserID: uuid.New(), Username: "gambler"}
		ctx := WithSession(context.Background(), want)

		got, err := SessionFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("absent session is unauthenticated", func(t *testing.T) {
		_, err := SessionFromContext(context.Background())
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}
