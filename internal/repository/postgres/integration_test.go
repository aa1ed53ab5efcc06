//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/hanulsoft/board-server/internal/model"
	repo "github.com/hanulsoft/board-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "board_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/board_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := repo.NewUserRepository(conn)
	posts := repo.NewPostRepository(conn)

	saved, err := users.Register(ctx, model.User{
		Email:        "a@x.com",
		PasswordHash: "p1-hash",
		Nickname:     "n1",
		Role:         model.RoleUser,
		IsOpen:       true,
	})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	t.Run("registration conflict leaves tables unchanged", func(t *testing.T) {
		_, err := users.Register(ctx, model.User{
			Email: "a@x.com", PasswordHash: "p2-hash", Nickname: "n2", Role: model.RoleUser, IsOpen: true,
		})
		require.ErrorIs(t, err, model.ErrEmailTaken)

		all, err := users.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		// The same retry reproduces the same conflict.
		_, err = users.Register(ctx, model.User{
			Email: "a@x.com", PasswordHash: "p2-hash", Nickname: "n2", Role: model.RoleUser, IsOpen: true,
		})
		require.ErrorIs(t, err, model.ErrEmailTaken)
	})

	t.Run("role is attached on load", func(t *testing.T) {
		got, err := users.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, got.Role)

		role, err := users.GetRole(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, role)
	})

	t.Run("partial user update preserves untouched fields", func(t *testing.T) {
		newHash := "p3-hash"
		updated, err := users.Update(ctx, saved.ID, model.UpdateUserParams{PasswordHash: &newHash})
		require.NoError(t, err)
		assert.Equal(t, "n1", updated.Nickname)
		assert.True(t, updated.IsOpen)
		assert.Equal(t, saved.Image, updated.Image)
		assert.Equal(t, "p3-hash", updated.PasswordHash)
	})

	t.Run("post update merges over stored row", func(t *testing.T) {
		post, err := posts.Create(ctx, model.Post{
			Title: "T1", Content: "C1", Category: "music", OwnerID: saved.ID, IsOpen: true,
		})
		require.NoError(t, err)

		title := "T2"
		updated, err := posts.Update(ctx, post.ID, model.UpdatePostParams{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "T2", updated.Title)
		assert.Equal(t, "C1", updated.Content)
		assert.Equal(t, "music", updated.Category)
		assert.True(t, updated.IsOpen)
	})

	t.Run("soft delete hides the row", func(t *testing.T) {
		victim, err := users.Register(ctx, model.User{
			Email: "b@x.com", PasswordHash: "hash", Nickname: "n9", Role: model.RoleUser, IsOpen: true,
		})
		require.NoError(t, err)

		require.NoError(t, users.SoftDelete(ctx, victim.ID))
		_, err = users.GetByID(ctx, victim.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
		require.ErrorIs(t, users.SoftDelete(ctx, victim.ID), model.ErrNotFound)
	})
}
