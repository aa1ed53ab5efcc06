package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/hanulsoft/board-server/internal/logger"
	"github.com/hanulsoft/board-server/internal/model"
)

type Auth struct {
	users      model.UserStore
	tokens     model.TokenManager
	bcryptCost int
	logger     *logger.Logger
}

func NewAuth(users model.UserStore, tokens model.TokenManager, bcryptCost int, logger *logger.Logger) *Auth {
	return &Auth{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a new account with the default role. The user row
// and its role row land atomically or not at all.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	a.logger.Debug("Auth service: registering user",
		"email", params.Email,
		"nickname", params.Nickname)

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), a.bcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	saved, err := a.users.Register(ctx, model.User{
		Email:        params.Email,
		PasswordHash: string(hash),
		Nickname:     params.Nickname,
		Image:        params.Image,
		Role:         model.RoleUser,
		IsOpen:       true,
	})
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) || errors.Is(err, model.ErrNicknameTaken) {
			a.logger.Info("Auth service: registration conflict",
				"email", params.Email,
				"error", err.Error())
			return model.User{}, err
		}
		a.logger.Error("Auth service: failed to register user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to register user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"email", params.Email,
		"user_id", saved.ID)

	return saved, nil
}

// Login verifies credentials and issues a session token. An unknown
// email fails with ErrNotFound; a known email with the wrong password
// fails with ErrWrongPassword so callers can tell the two apart.
func (a *Auth) Login(ctx context.Context, email, password string) (model.User, string, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, "", model.ErrNotFound
	}
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return model.User{}, "", model.ErrWrongPassword
		}
		return model.User{}, "", fmt.Errorf("failed to compare password: %w", err)
	}

	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in", "user_id", user.ID)

	return user, token, nil
}
