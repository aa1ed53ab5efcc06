package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hanulsoft/board-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `u.id, u.email, u.password, r.role, u.nickname, u.is_open, u.image, u.created_at, u.updated_at, u.deleted_at`

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.Nickname,
		&user.IsOpen, &user.Image, &user.CreatedAt, &user.UpdatedAt, &user.DeletedAt,
	)
	return user, err
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users u JOIN user_roles r ON r.user_id = u.id
			  WHERE u.id = $1 AND u.deleted_at IS NULL`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users u JOIN user_roles r ON r.user_id = u.id
			  WHERE u.email = $1 AND u.deleted_at IS NULL`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetRole re-derives the role on every call. There is deliberately no
// caching: a role change takes effect on the very next request.
func (r *UserRepository) GetRole(ctx context.Context, id int64) (model.Role, error) {
	query := `SELECT r.role FROM user_roles r
			  JOIN users u ON u.id = r.user_id
			  WHERE r.user_id = $1 AND u.deleted_at IS NULL`

	var role model.Role
	err := r.db.QueryRow(ctx, query, id).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to get user role: %w", err)
	}

	return role, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users u JOIN user_roles r ON r.user_id = u.id
			  WHERE u.deleted_at IS NULL
			  ORDER BY u.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

// Register creates the user row and its linked role row in one
// transaction. A duplicate email or nickname found by the probe aborts
// the unit before any write executes; when both collide the email
// conflict is reported.
func (r *UserRepository) Register(ctx context.Context, user model.User) (model.User, error) {
	saved := user

	err := runTx(ctx, r.db, func(tx pgx.Tx) error {
		probe := `SELECT email, nickname FROM users
				  WHERE (email = $1 OR nickname = $2) AND deleted_at IS NULL`

		rows, err := tx.Query(ctx, probe, user.Email, user.Nickname)
		if err != nil {
			return fmt.Errorf("failed to probe for duplicates: %w", err)
		}
		var emailTaken, nicknameTaken bool
		for rows.Next() {
			var email, nickname string
			if err := rows.Scan(&email, &nickname); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan duplicate probe: %w", err)
			}
			if email == user.Email {
				emailTaken = true
			}
			if nickname == user.Nickname {
				nicknameTaken = true
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to read duplicate probe: %w", err)
		}
		if emailTaken {
			return model.ErrEmailTaken
		}
		if nicknameTaken {
			return model.ErrNicknameTaken
		}

		insert := `INSERT INTO users (email, password, nickname, is_open, image)
				   VALUES ($1, $2, $3, $4, $5)
				   RETURNING id, created_at, updated_at`

		err = tx.QueryRow(ctx, insert,
			user.Email, user.PasswordHash, user.Nickname, user.IsOpen, user.Image,
		).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
		if err != nil {
			if conflict := uniqueViolation(err); conflict != nil {
				return conflict
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		if _, err := tx.Exec(ctx, `INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`,
			saved.ID, user.Role); err != nil {
			return fmt.Errorf("failed to create user role: %w", err)
		}

		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	return saved, nil
}

// Update applies a partial update. Fields omitted by the caller resolve
// to the values read during the probe, never to zero values. A nickname
// change re-probes for conflicts inside the same transaction.
func (r *UserRepository) Update(ctx context.Context, id int64, params model.UpdateUserParams) (model.User, error) {
	var updated model.User

	err := runTx(ctx, r.db, func(tx pgx.Tx) error {
		var current struct {
			password string
			nickname string
			isOpen   bool
			image    string
		}
		probe := `SELECT password, nickname, is_open, image FROM users
				  WHERE id = $1 AND deleted_at IS NULL
				  FOR UPDATE`
		err := tx.QueryRow(ctx, probe, id).Scan(
			&current.password, &current.nickname, &current.isOpen, &current.image,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrNotFound
			}
			return fmt.Errorf("failed to load user for update: %w", err)
		}

		if params.Nickname != nil && *params.Nickname != current.nickname {
			var taken bool
			err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM users WHERE nickname = $1 AND id <> $2 AND deleted_at IS NULL)`,
				*params.Nickname, id,
			).Scan(&taken)
			if err != nil {
				return fmt.Errorf("failed to probe nickname: %w", err)
			}
			if taken {
				return model.ErrNicknameTaken
			}
		}

		password := current.password
		if params.PasswordHash != nil {
			password = *params.PasswordHash
		}
		nickname := current.nickname
		if params.Nickname != nil {
			nickname = *params.Nickname
		}
		isOpen := current.isOpen
		if params.IsOpen != nil {
			isOpen = *params.IsOpen
		}
		image := current.image
		if params.Image != nil {
			image = *params.Image
		}

		update := `UPDATE users
				   SET password = $1, nickname = $2, is_open = $3, image = $4, updated_at = now()
				   WHERE id = $5 AND deleted_at IS NULL
				   RETURNING id, email, password, nickname, is_open, image, created_at, updated_at, deleted_at`
		err = tx.QueryRow(ctx, update, password, nickname, isOpen, image, id).Scan(
			&updated.ID, &updated.Email, &updated.PasswordHash, &updated.Nickname,
			&updated.IsOpen, &updated.Image, &updated.CreatedAt, &updated.UpdatedAt, &updated.DeletedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrNotFound
			}
			if conflict := uniqueViolation(err); conflict != nil {
				return conflict
			}
			return fmt.Errorf("failed to update user: %w", err)
		}

		if err := tx.QueryRow(ctx, `SELECT role FROM user_roles WHERE user_id = $1`, id).Scan(&updated.Role); err != nil {
			return fmt.Errorf("failed to load user role: %w", err)
		}

		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	return updated, nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE users SET deleted_at = now(), updated_at = now()
			  WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
