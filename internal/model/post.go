package model

import (
	"context"
	"time"
)

// PostStore defines persistence operations for posts.
type PostStore interface {
	List(ctx context.Context) ([]Post, error)
	GetByID(ctx context.Context, id int64) (Post, error)
	Create(ctx context.Context, post Post) (Post, error)
	Update(ctx context.Context, id int64, params UpdatePostParams) (Post, error)
	SoftDelete(ctx context.Context, id int64) error
}

// Post represents a stored post entity owned by exactly one user.
type Post struct {
	ID        int64
	Title     string
	Content   string
	Category  string
	OwnerID   int64
	IsOpen    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// CreatePostParams contains parameters to create a post.
type CreatePostParams struct {
	Title    string
	Content  string
	Category string
}

// UpdatePostParams contains a partial post update. Nil fields keep the
// value currently stored on the row.
type UpdatePostParams struct {
	Title    *string
	Content  *string
	Category *string
	IsOpen   *bool
}
