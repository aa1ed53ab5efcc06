package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hanulsoft/board-server/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

type PostRepository struct {
	db DB
}

func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

const postColumns = `id, title, content, category, owner_id, is_open, created_at, updated_at, deleted_at`

func scanPost(row pgx.Row) (model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.Category, &post.OwnerID,
		&post.IsOpen, &post.CreatedAt, &post.UpdatedAt, &post.DeletedAt,
	)
	return post, err
}

func (r *PostRepository) List(ctx context.Context) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
			  WHERE deleted_at IS NULL
			  ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
			  WHERE id = $1 AND deleted_at IS NULL`

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	query := `INSERT INTO posts (title, content, category, owner_id, is_open)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + postColumns

	saved, err := scanPost(r.db.QueryRow(ctx, query,
		post.Title, post.Content, post.Category, post.OwnerID, post.IsOpen,
	))
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	return saved, nil
}

// Update applies a partial update on top of the row state read during
// the probe. Omitted fields keep their stored values.
func (r *PostRepository) Update(ctx context.Context, id int64, params model.UpdatePostParams) (model.Post, error) {
	var updated model.Post

	err := runTx(ctx, r.db, func(tx pgx.Tx) error {
		probe := `SELECT title, content, category, is_open FROM posts
				  WHERE id = $1 AND deleted_at IS NULL
				  FOR UPDATE`

		var title, content, category string
		var isOpen bool
		err := tx.QueryRow(ctx, probe, id).Scan(&title, &content, &category, &isOpen)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrNotFound
			}
			return fmt.Errorf("failed to load post for update: %w", err)
		}

		if params.Title != nil {
			title = *params.Title
		}
		if params.Content != nil {
			content = *params.Content
		}
		if params.Category != nil {
			category = *params.Category
		}
		if params.IsOpen != nil {
			isOpen = *params.IsOpen
		}

		update := `UPDATE posts
				   SET title = $1, content = $2, category = $3, is_open = $4, updated_at = now()
				   WHERE id = $5 AND deleted_at IS NULL
				   RETURNING ` + postColumns
		updated, err = scanPost(tx.QueryRow(ctx, update, title, content, category, isOpen, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrNotFound
			}
			return fmt.Errorf("failed to update post: %w", err)
		}

		return nil
	})
	if err != nil {
		return model.Post{}, err
	}

	return updated, nil
}

func (r *PostRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE posts SET deleted_at = now(), updated_at = now()
			  WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
