//go:build integration
// +build integration

package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/Luismorlan/socialmux/app_config"
	"github.com/Luismorlan/socialmux/model"
	"github.com/Luismorlan/socialmux/server/auth"
	"github.com/Luismorlan/socialmux/utils"
	"github.com/Luismorlan/socialmux/utils/file_store"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// preparePostgresResolver starts a throw-away PostgreSQL container and returns
// a resolver on top of it.
func preparePostgresResolver(t *testing.T) *Resolver {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("socialmux"),
		postgres.WithUsername("socialmux"),
		postgres.WithPassword("socialmux"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("fail to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := utils.OpenPostgres(connStr)
	require.NoError(t, err)
	require.NoError(t, utils.DatabaseSetupAndMigration(db))

	issuer, err := auth.NewIssuer("integration-secret", time.Hour, auth.NewDBTokenStore(db))
	require.NoError(t, err)
	return NewResolver(db, app_config.DefaultAppConfig(), issuer, file_store.NewFakeFileStore(), nil)
}

func TestPostgresFeedScenario(t *testing.T) {
	ctx := context.Background()
	r := preparePostgresResolver(t)

	a := utils.TestCreateUser(t, r.DB, "alice")
	b := utils.TestCreateUser(t, r.DB, "bob")
	c := utils.TestCreateUser(t, r.DB, "carol")
	bPost := utils.TestCreatePost(t, r.DB, b.Id, "from bob")
	cPost := utils.TestCreatePost(t, r.DB, c.Id, "from carol")

	_, err := r.Follow(ctx, a.Id, b.Id)
	require.NoError(t, err)
	_, err = r.Follow(ctx, a.Id, b.Id)
	require.True(t, errors.Is(err, ErrConflict))

	feed, err := r.Feed(ctx, a.Id, model.PageRequest{Page: 1})
	require.NoError(t, err)
	require.Equal(t, []uint{bPost.Id}, postIds(feed.Posts))

	all, err := r.ListAllPosts(ctx, model.PageRequest{Page: 1})
	require.NoError(t, err)
	require.Equal(t, []uint{cPost.Id, bPost.Id}, postIds(all.Posts))

	utils.TestCreateComment(t, r.DB, a.Id, bPost.Id, "hi bob")
	feed, err = r.Feed(ctx, a.Id, model.PageRequest{Page: 1})
	require.NoError(t, err)
	require.Equal(t, int64(1), feed.Posts[0].CommentsCount)

	users, err := r.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	require.NoError(t, r.DeleteUser(ctx, b.Id, b.Id))
	feed, err = r.Feed(ctx, a.Id, model.PageRequest{Page: 1})
	require.NoError(t, err)
	require.Empty(t, feed.Posts)
}
