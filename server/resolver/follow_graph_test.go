package resolver

import (
	"context"
	"testing"

	"github.com/Luismorlan/socialmux/model"
	"github.com/Luismorlan/socialmux/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestFollowAndUnfollow(t *testing.T) {
	ctx := context.Background()
	r := PrepareTestResolver(t)
	a := utils.TestCreateUser(t, r.DB, "alice")
	b := utils.TestCreateUser(t, r.DB, "bob")

	edge, err := r.Follow(ctx, a.Id, b.Id)
	require.NoError(t, err)
	require.Equal(t, b.Id, edge.UserID)
	require.Equal(t, a.Id, edge.FollowerID)

	following, err := r.ListFollowing(ctx, a.Id)
	require.NoError(t, err)
	require.Equal(t, []uint{b.Id}, summaryIds(following))
	require.Equal(t, "bob", following[0].FirstName)

	followers, err := r.ListFollowers(ctx, b.Id)
	require.NoError(t, err)
	require.Equal(t, []uint{a.Id}, summaryIds(followers))

	// Directed: b doesn't follow a.
	following, err = r.ListFollowing(ctx, b.Id)
	require.NoError(t, err)
	require.Empty(t, following)

	require.NoError(t, r.Unfollow(ctx, a.Id, b.Id))

	following, err = r.ListFollowing(ctx, a.Id)
	require.NoError(t, err)
	require.Empty(t, following)
	followers, err = r.ListFollowers(ctx, b.Id)
	require.NoError(t, err)
	require.Empty(t, followers)
}

func TestFollowTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	r := PrepareTestResolver(t)
	a := utils.TestCreateUser(t, r.DB, "alice")
	b := utils.TestCreateUser(t, r.DB, "bob")

	_, err := r.Follow(ctx, a.Id, b.Id)
	require.NoError(t, err)
	_, err = r.Follow(ctx, a.Id, b.Id)
	require.True(t, errors.Is(err, ErrConflict))

	var count int64
	r.DB.Model(&model.Follow{}).Count(&count)
	require.Equal(t, int64(1), count)

	following, err := r.ListFollowing(ctx, a.Id)
	require.NoError(t, err)
	require.Equal(t, []uint{b.Id}, summaryIds(following))
}

func TestFollowRejections(t *testing.T) {
	ctx := context.Background()
	r := PrepareTestResolver(t)
	a := utils.TestCreateUser(t, r.DB, "alice")

	_, err := r.Follow(ctx, a.Id, a.Id)
	require.True(t, errors.Is(err, ErrInvalidOperation))

	_, err = r.Follow(ctx, a.Id, a.Id+100)
	require.True(t, errors.Is(err, ErrNotFound))

	err = r.Unfollow(ctx, a.Id, a.Id+100)
	require.True(t, errors.Is(err, ErrNotFound))

	_, err = r.ListFollowers(ctx, a.Id+100)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestListFollowersKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	r := PrepareTestResolver(t)
	target := utils.TestCreateUser(t, r.DB, "target")
	c := utils.TestCreateUser(t, r.DB, "carol")
	a := utils.TestCreateUser(t, r.DB, "alice")
	b := utils.TestCreateUser(t, r.DB, "bob")

	for _, u := range []*model.User{b, c, a} {
		_, err := r.Follow(ctx, u.Id, target.Id)
		require.NoError(t, err)
	}

	followers, err := r.ListFollowers(ctx, target.Id)
	require.NoError(t, err)
	require.Equal(t, []uint{b.Id, c.Id, a.Id}, summaryIds(followers))

	ids, err := r.FollowingIds(ctx, c.Id)
	require.NoError(t, err)
	require.Equal(t, []uint{target.Id}, ids)
}
