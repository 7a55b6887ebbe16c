package resolver

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/Luismorlan/socialmux/model"
	"github.com/Luismorlan/socialmux/utils"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestVisibleAuthorSet(t *testing.T) {
	require.Equal(t, []uint{3}, visibleAuthorSet(3, nil))
	require.Equal(t, []uint{3, 1, 2}, visibleAuthorSet(3, []uint{1, 2}))
	// A self edge doesn't duplicate the viewer.
	require.Equal(t, []uint{3, 1}, visibleAuthorSet(3, []uint{1, 3}))
}

func TestFeedScenario(t *testing.T) {
	ctx := context.Background()
	r := PrepareTestResolver(t)
	a := utils.TestCreateUser(t, r.DB, "alice")
	b := utils.TestCreateUser(t, r.DB, "bob")
	c := utils.TestCreateUser(t, r.DB, "carol")

	p1, err := r.CreatePost(ctx, a.Id, "first")
	require.NoError(t, err)
	p2, err := r.CreatePost(ctx, a.Id, "second")
	require.NoError(t, err)
	_, err = r.Follow(ctx, b.Id, a.Id)
	require.NoError(t, err)

	feed, err := r.Feed(ctx, b.Id, model.PageRequest{})
	require.NoError(t, err)
	if diff := cmp.Diff([]uint{p2.Id, p1.Id}, postIds(feed.Posts)); diff != "" {
		t.Errorf("feed of follower mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, a.Id, feed.Posts[0].Author.Id)
	require.Equal(t, "alice", feed.Posts[0].Author.FirstName)
	require.Equal(t, 5, feed.Limit)

	feed, err = r.Feed(ctx, c.Id, model.PageRequest{})
	require.NoError(t, err)
	require.Empty(t, feed.Posts)
	require.Equal(t, int64(0), feed.Total)

	all, err := r.ListAllPosts(ctx, model.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 10, all.Limit)
	if diff := cmp.Diff([]uint{p2.Id, p1.Id}, postIds(all.Posts)); diff != "" {
		t.Errorf("all posts mismatch (-want +got):\n%s", diff)
	}
}

func TestFeedOnlyContainsVisibleAuthors(t *testing.T) {
	ctx := context.Background()
	r := PrepareTestResolver(t)
	viewer := utils.TestCreateUser(t, r.DB, "viewer")
	followed := utils.TestCreateUser(t, r.DB, "followed")
	stranger := utils.TestCreateUser(t, r.DB, "stranger")
	utils.TestFollow(t, r.DB, viewer.Id, followed.Id)
	// The stranger following the viewer must not leak their posts.
	utils.TestFollow(t, r.DB, stranger.Id, viewer.Id)

	for i := 0; i < 4; i++ {
		for _, u := range []*model.User{viewer, followed, stranger} {
			utils.TestCreatePost(t, r.DB, u.Id, fmt.Sprintf("%s %d", u.FirstName, i))
		}
	}

	feed, err := r.Feed(ctx, viewer.Id, model.PageRequest{Page: 1, Limit: 50})
	require.NoError(t, err)
	require.Len(t, feed.Posts, 8)
	require.Equal(t, int64(8), feed.Total)
	for _, p := range feed.Posts {
		require.Contains(t, []uint{viewer.Id, followed.Id}, p.UserID)
	}
	for i := 1; i < len(feed.Posts); i++ {
		require.False(t, feed.Posts[i].CreatedAt.After(feed.Posts[i-1].CreatedAt))
	}
}

func TestFeedWithoutFollowingShowsOwnPostsOnly(t *testing.T) {
	ctx := context.Background()
	r := PrepareTestResolver(t)
	viewer := utils.TestCreateUser(t, r.DB, "viewer")
	other := utils.TestCreateUser(t, r.DB, "other")
	own := utils.TestCreatePost(t, r.DB, viewer.Id, "mine")
	utils.TestCreatePost(t, r.DB, other.Id, "not mine")

	feed, err := r.Feed(ctx, viewer.Id, model.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, []uint{own.Id}, postIds(feed.Posts))
	require.Equal(t, int64(1), feed.Total)
}

func TestFeedPagination(t *testing.T) {
	ctx := context.Background()
	r := PrepareTestResolver(t)
	viewer := utils.TestCreateUser(t, r.DB, "viewer")
	author := utils.TestCreateUser(t, r.DB, "author")
	utils.TestFollow(t, r.DB, viewer.Id, author.Id)
	for i := 0; i < 12; i++ {
		utils.TestCreatePost(t, r.DB, author.Id, fmt.Sprintf("post %d", i))
	}
	// Posts outside of the visible set don't count towards the total.
	utils.TestCreatePost(t, r.DB, utils.TestCreateUser(t, r.DB, "x").Id, "hidden")

	seen := map[uint]bool{}
	for page, size := range []int{5, 5, 2} {
		res, err := r.Feed(ctx, viewer.Id, model.PageRequest{Page: page + 1, Limit: 5})
		require.NoError(t, err)
		require.Len(t, res.Posts, size)
		require.Equal(t, int64(12), res.Total)
		require.Equal(t, 3, res.TotalPages)
		require.Equal(t, page+1, res.Page)
		require.Equal(t, page < 2, res.HasMore)
		for _, p := range res.Posts {
			require.False(t, seen[p.Id], "post %d on two pages", p.Id)
			seen[p.Id] = true
		}
	}

	res, err := r.Feed(ctx, viewer.Id, model.PageRequest{Page: 4, Limit: 5})
	require.NoError(t, err)
	require.Empty(t, res.Posts)
	require.NotNil(t, res.Posts)
	require.Equal(t, 3, res.TotalPages)
	require.False(t, res.HasMore)
}

func TestFeedPageRequestSanitizing(t *testing.T) {
	ctx := context.Background()
	r := PrepareTestResolver(t)
	viewer := utils.TestCreateUser(t, r.DB, "viewer")

	res, err := r.Feed(ctx, viewer.Id, model.PageRequest{Page: -3, Limit: 1000})
	require.NoError(t, err)
	require.Equal(t, 1, res.Page)
	require.Equal(t, r.Config.MAX_PAGE_LIMIT, res.Limit)

	res, err = r.ListAllPosts(ctx, model.PageRequest{Page: 0, Limit: 0})
	require.NoError(t, err)
	require.Equal(t, 1, res.Page)
	require.Equal(t, r.Config.DEFAULT_ALL_POSTS_LIMIT, res.Limit)

	for i := 0; i < 3; i++ {
		utils.TestCreatePost(t, r.DB, viewer.Id, fmt.Sprintf("post %d", i))
	}
	// (page-1)*limit would overflow int without the page cap.
	res, err = r.Feed(ctx, viewer.Id, model.PageRequest{Page: math.MaxInt/2 + 1, Limit: 5})
	require.NoError(t, err)
	require.Empty(t, res.Posts)
	require.Equal(t, 1, res.TotalPages)
	require.Equal(t, int64(3), res.Total)
	require.False(t, res.HasMore)
	require.True(t, res.Page > 1)

	res, err = r.ListAllPosts(ctx, model.PageRequest{Page: math.MaxInt, Limit: 1})
	require.NoError(t, err)
	require.Empty(t, res.Posts)
	require.Equal(t, 3, res.TotalPages)
}

func TestFeedCommentCountsAreFresh(t *testing.T) {
	ctx := context.Background()
	r := PrepareTestResolver(t)
	viewer := utils.TestCreateUser(t, r.DB, "viewer")
	post := utils.TestCreatePost(t, r.DB, viewer.Id, "hello")
	quiet := utils.TestCreatePost(t, r.DB, viewer.Id, "nobody answers")

	countOf := func(postId uint) int64 {
		feed, err := r.Feed(ctx, viewer.Id, model.PageRequest{})
		require.NoError(t, err)
		for _, p := range feed.Posts {
			if p.Id == postId {
				return p.CommentsCount
			}
		}
		t.Fatalf("post %d not in feed", postId)
		return 0
	}

	require.Equal(t, int64(0), countOf(post.Id))
	c1, err := r.CreateComment(ctx, viewer.Id, post.Id, "one")
	require.NoError(t, err)
	_, err = r.CreateComment(ctx, viewer.Id, post.Id, "two")
	require.NoError(t, err)
	require.Equal(t, int64(2), countOf(post.Id))
	require.Equal(t, int64(0), countOf(quiet.Id))

	require.NoError(t, r.DeleteComment(ctx, c1.Id, viewer.Id))
	require.Equal(t, int64(1), countOf(post.Id))

	var rows int64
	r.DB.Model(&model.Comment{}).Where("post_id = ?", post.Id).Count(&rows)
	require.Equal(t, rows, countOf(post.Id))
}
