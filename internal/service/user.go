package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hanulsoft/board-server/internal/logger"
	"github.com/hanulsoft/board-server/internal/model"
)

type User struct {
	users      model.UserStore
	storage    model.Storage
	mailer     model.Mailer
	bcryptCost int
	logger     *logger.Logger
}

func NewUser(users model.UserStore, storage model.Storage, mailer model.Mailer, bcryptCost int, logger *logger.Logger) *User {
	return &User{
		users:      users,
		storage:    storage,
		mailer:     mailer,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (u *User) List(ctx context.Context) ([]model.User, error) {
	return u.users.List(ctx)
}

func (u *User) Get(ctx context.Context, id int64) (model.User, error) {
	return u.users.GetByID(ctx, id)
}

// Update applies a partial profile update. The plaintext password, when
// present, is hashed here; everything else passes through so omitted
// fields keep their stored values.
func (u *User) Update(ctx context.Context, id int64, params model.UpdateProfileParams) (model.User, error) {
	storeParams := model.UpdateUserParams{
		Nickname: params.Nickname,
		IsOpen:   params.IsOpen,
		Image:    params.Image,
	}

	if params.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), u.bcryptCost)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		storeParams.PasswordHash = &hashed
	}

	updated, err := u.users.Update(ctx, id, storeParams)
	if err != nil {
		return model.User{}, err
	}

	u.logger.Info("User service: profile updated", "user_id", id)

	return updated, nil
}

func (u *User) Delete(ctx context.Context, id int64) error {
	if err := u.users.SoftDelete(ctx, id); err != nil {
		return err
	}

	u.logger.Info("User service: account deleted", "user_id", id)

	return nil
}

// UploadAvatar stores the image in object storage and points the user
// row at the new object key.
func (u *User) UploadAvatar(ctx context.Context, userID int64, reader io.Reader, size int64, contentType string) (model.User, error) {
	key := fmt.Sprintf("avatars/%d/%s", userID, uuid.NewString())

	if err := u.storage.Put(ctx, key, reader, size, contentType); err != nil {
		return model.User{}, fmt.Errorf("failed to store avatar: %w", err)
	}

	updated, err := u.users.Update(ctx, userID, model.UpdateUserParams{Image: &key})
	if err != nil {
		// The row keeps its old key; drop the orphaned object.
		if delErr := u.storage.Delete(ctx, key); delErr != nil {
			u.logger.Error("User service: failed to clean up orphaned avatar",
				"key", key,
				"error", delErr.Error())
		}
		return model.User{}, err
	}

	return updated, nil
}

func (u *User) DownloadAvatar(ctx context.Context, userID int64) (io.ReadCloser, error) {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Image == "" {
		return nil, model.ErrNotFound
	}

	reader, err := u.storage.Get(ctx, user.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to get avatar: %w", err)
	}

	return reader, nil
}

// RequestRecovery mails an account-recovery request to the operator.
// It takes identity from the request body because the account in
// question is soft-deleted and cannot authenticate.
func (u *User) RequestRecovery(ctx context.Context, email, nickname, title, content string) error {
	err := u.mailer.SendRecoveryRequest(ctx, model.RecoveryRequest{
		Subject:  fmt.Sprintf("account recovery request: %s", email),
		Email:    email,
		Nickname: nickname,
		Title:    title,
		Content:  content,
	})
	if err != nil {
		return fmt.Errorf("failed to send recovery request: %w", err)
	}

	return nil
}
