package userapp

import (
	"context"
	"testing"
	"time"

	"agora/internal/adapters/memory"
	"agora/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var secret = []byte("test-secret")

func newTestService(t *testing.T, st *memory.Store, hostname string) *UserService {
	t.Helper()
	return NewUserService(st.Users(), secret, hostname, "https://"+hostname, zaptest.NewLogger(t))
}

func TestRegisterAndLogin(t *testing.T) {
	st := memory.NewStore()
	svc := newTestService(t, st, "example.org")
	ctx := context.Background()

	person, err := svc.RegisterUser(ctx, "alice", "Alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice", person.Name)
	assert.Equal(t, "https://example.org/u/alice", person.ActorID)
	assert.True(t, person.Local)

	login, err := svc.LoginUser(ctx, "alice", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, login.JWT)
	assert.Greater(t, login.ExpiresAt, time.Now().Unix())

	view, err := svc.LocalUserViewFromJWT(ctx, login.JWT)
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Person.Name)
	assert.Equal(t, person.ID, view.Person.ID.String())
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	st := memory.NewStore()
	svc := newTestService(t, st, "example.org")

	_, err := svc.RegisterUser(context.Background(), "alice", "", "pw")
	require.NoError(t, err)
	_, err = svc.RegisterUser(context.Background(), "alice", "", "pw")
	assert.Equal(t, apperr.CodeUsernameTaken, apperr.CodeOf(err))
}

func TestLoginFailures(t *testing.T) {
	st := memory.NewStore()
	svc := newTestService(t, st, "example.org")
	_, err := svc.RegisterUser(context.Background(), "alice", "", "right")
	require.NoError(t, err)

	_, err = svc.LoginUser(context.Background(), "alice", "wrong")
	assert.Equal(t, apperr.CodeIncorrectCredentials, apperr.CodeOf(err))

	_, err = svc.LoginUser(context.Background(), "nobody", "right")
	assert.Equal(t, apperr.CodeIncorrectCredentials, apperr.CodeOf(err))
}

func TestLocalUserViewFromJWTRejects(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	svc := newTestService(t, st, "example.org")
	_, err := svc.RegisterUser(ctx, "alice", "", "pw")
	require.NoError(t, err)
	login, err := svc.LoginUser(ctx, "alice", "pw")
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := svc.LocalUserViewFromJWT(ctx, "")
		assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.LocalUserViewFromJWT(ctx, "not.a.jwt")
		assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	})

	t.Run("foreign issuer", func(t *testing.T) {
		other := newTestService(t, st, "elsewhere.net")
		_, err := other.LocalUserViewFromJWT(ctx, login.JWT)
		assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	})

	t.Run("wrong key", func(t *testing.T) {
		other := NewUserService(st.Users(), []byte("other-secret"), "example.org", "https://example.org", nil)
		_, err := other.LocalUserViewFromJWT(ctx, login.JWT)
		assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	})

	t.Run("expired", func(t *testing.T) {
		past := newTestService(t, st, "example.org")
		past.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
		old, err := past.LoginUser(ctx, "alice", "pw")
		require.NoError(t, err)

		_, err = svc.LocalUserViewFromJWT(ctx, old.JWT)
		assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	})

	t.Run("site ban", func(t *testing.T) {
		view, err := svc.LocalUserViewFromJWT(ctx, login.JWT)
		require.NoError(t, err)
		banned := view.Person
		banned.Banned = true
		st.UpdatePerson(banned)

		_, err = svc.LocalUserViewFromJWT(ctx, login.JWT)
		assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	})
}
