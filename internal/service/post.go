package service

import (
	"context"
	"fmt"

	"github.com/hanulsoft/board-server/internal/logger"
	"github.com/hanulsoft/board-server/internal/model"
)

type Post struct {
	posts  model.PostStore
	mailer model.Mailer
	logger *logger.Logger
}

func NewPost(posts model.PostStore, mailer model.Mailer, logger *logger.Logger) *Post {
	return &Post{
		posts:  posts,
		mailer: mailer,
		logger: logger,
	}
}

func (p *Post) List(ctx context.Context) ([]model.Post, error) {
	return p.posts.List(ctx)
}

func (p *Post) Get(ctx context.Context, id int64) (model.Post, error) {
	return p.posts.GetByID(ctx, id)
}

func (p *Post) Create(ctx context.Context, owner model.User, params model.CreatePostParams) (model.Post, error) {
	saved, err := p.posts.Create(ctx, model.Post{
		Title:    params.Title,
		Content:  params.Content,
		Category: params.Category,
		OwnerID:  owner.ID,
		IsOpen:   true,
	})
	if err != nil {
		return model.Post{}, err
	}

	p.logger.Info("Post service: post created", "post_id", saved.ID, "owner_id", owner.ID)

	return saved, nil
}

// Update applies a partial update after an owner-or-admin check. The
// merge over the stored row happens inside the store transaction.
func (p *Post) Update(ctx context.Context, actor model.User, id int64, params model.UpdatePostParams) (model.Post, error) {
	post, err := p.posts.GetByID(ctx, id)
	if err != nil {
		return model.Post{}, err
	}
	if post.OwnerID != actor.ID && actor.Role != model.RoleAdmin {
		return model.Post{}, model.ErrForbidden
	}

	return p.posts.Update(ctx, id, params)
}

func (p *Post) Delete(ctx context.Context, actor model.User, id int64) error {
	post, err := p.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.OwnerID != actor.ID && actor.Role != model.RoleAdmin {
		return model.ErrForbidden
	}

	if err := p.posts.SoftDelete(ctx, id); err != nil {
		return err
	}

	p.logger.Info("Post service: post deleted", "post_id", id, "actor_id", actor.ID)

	return nil
}

// RequestRecovery mails a post-recovery request to the operator on
// behalf of the authenticated caller.
func (p *Post) RequestRecovery(ctx context.Context, actor model.User, postID int64, title, content string) error {
	err := p.mailer.SendRecoveryRequest(ctx, model.RecoveryRequest{
		Subject:  fmt.Sprintf("post recovery request: %d", postID),
		Email:    actor.Email,
		Nickname: actor.Nickname,
		Title:    title,
		Content:  content,
	})
	if err != nil {
		return fmt.Errorf("failed to send recovery request: %w", err)
	}

	return nil
}
