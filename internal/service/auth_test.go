package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	servermocks "github.com/hanulsoft/board-server/internal/mocks"
	"github.com/hanulsoft/board-server/internal/model"
	"github.com/hanulsoft/board-server/internal/testutil"
)

func TestAuth_Register_Success(t *testing.T) {
	ctx := context.Background()
	userStore := servermocks.NewUserStore(t)
	tokens := servermocks.NewTokenManager(t)

	var stored model.User
	userStore.On("Register", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		stored = u
		return u.Email == "a@x.com" && u.Nickname == "n1" && u.Role == model.RoleUser && u.IsOpen
	})).Return(model.User{ID: 1, Email: "a@x.com", Nickname: "n1", Role: model.RoleUser}, nil)

	a := NewAuth(userStore, tokens, bcrypt.MinCost, testutil.MakeNoopLogger())

	saved, err := a.Register(ctx, model.RegisterParams{
		Email:    "a@x.com",
		Password: "p1",
		Nickname: "n1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	// The plaintext never reaches the store.
	assert.NotEqual(t, "p1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p1")))
}

func TestAuth_Register_Conflict(t *testing.T) {
	ctx := context.Background()
	userStore := servermocks.NewUserStore(t)
	tokens := servermocks.NewTokenManager(t)

	userStore.On("Register", mock.Anything, mock.Anything).Return(model.User{}, model.ErrEmailTaken)

	a := NewAuth(userStore, tokens, bcrypt.MinCost, testutil.MakeNoopLogger())

	_, err := a.Register(ctx, model.RegisterParams{Email: "a@x.com", Password: "p2", Nickname: "n2"})
	require.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestAuth_Login_Success(t *testing.T) {
	ctx := context.Background()
	userStore := servermocks.NewUserStore(t)
	tokens := servermocks.NewTokenManager(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("p1"), bcrypt.MinCost)
	require.NoError(t, err)

	userStore.On("GetByEmail", mock.Anything, "a@x.com").
		Return(model.User{ID: 1, Email: "a@x.com", PasswordHash: string(hash)}, nil)
	tokens.On("Issue", int64(1)).Return("signed-token", nil)

	a := NewAuth(userStore, tokens, bcrypt.MinCost, testutil.MakeNoopLogger())

	user, token, err := a.Login(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "signed-token", token)
}

func TestAuth_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	userStore := servermocks.NewUserStore(t)
	tokens := servermocks.NewTokenManager(t)

	userStore.On("GetByEmail", mock.Anything, "nobody@x.com").Return(model.User{}, model.ErrNotFound)

	a := NewAuth(userStore, tokens, bcrypt.MinCost, testutil.MakeNoopLogger())

	_, _, err := a.Login(ctx, "nobody@x.com", "p1")
	require.ErrorIs(t, err, model.ErrNotFound)
	require.NotErrorIs(t, err, model.ErrWrongPassword)
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	userStore := servermocks.NewUserStore(t)
	tokens := servermocks.NewTokenManager(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("p1"), bcrypt.MinCost)
	require.NoError(t, err)

	userStore.On("GetByEmail", mock.Anything, "a@x.com").
		Return(model.User{ID: 1, Email: "a@x.com", PasswordHash: string(hash)}, nil)

	a := NewAuth(userStore, tokens, bcrypt.MinCost, testutil.MakeNoopLogger())

	_, _, err = a.Login(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, model.ErrWrongPassword)
	require.NotErrorIs(t, err, model.ErrNotFound)
}
