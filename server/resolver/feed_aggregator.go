package resolver

import (
	"context"

	"github.com/Luismorlan/socialmux/model"
	"github.com/Luismorlan/socialmux/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// visibleAuthorSet is the set of authors whose posts viewerId sees in their
// feed: everyone they follow, plus themselves whether or not they follow
// themselves. The result is never empty.
func visibleAuthorSet(viewerId uint, followingIds []uint) []uint {
	return utils.UniqueUints(append([]uint{viewerId}, followingIds...))
}

// Feed returns a page of the posts visible to viewerId, newest first.
func (r *Resolver) Feed(ctx context.Context, viewerId uint, req model.PageRequest) (*model.FeedPage, error) {
	req = r.sanitizePageRequest(req, r.Config.DEFAULT_FEED_LIMIT)

	followingIds, err := r.FollowingIds(ctx, viewerId)
	if err != nil {
		return nil, err
	}
	return r.pagePosts(ctx, visibleAuthorSet(viewerId, followingIds), req)
}

// ListAllPosts returns a page of every post regardless of the follow graph,
// newest first. It backs the explore page.
func (r *Resolver) ListAllPosts(ctx context.Context, req model.PageRequest) (*model.FeedPage, error) {
	req = r.sanitizePageRequest(req, r.Config.DEFAULT_ALL_POSTS_LIMIT)
	return r.pagePosts(ctx, nil, req)
}

// pagePosts pages posts authored by authorIds, or all posts when authorIds is
// nil. The total is counted with the same filter as the page.
func (r *Resolver) pagePosts(ctx context.Context, authorIds []uint, req model.PageRequest) (*model.FeedPage, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if authorIds == nil {
			return db
		}
		return db.Where("user_id IN ?", authorIds)
	}

	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.Post{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count posts")
	}

	info := model.NewPageInfo(req, total)
	posts := []*model.Post{}
	if req.Page > info.TotalPages {
		return &model.FeedPage{Posts: []*model.PostView{}, PageInfo: info}, nil
	}
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Scopes(scope).
		Order("created_at desc, id desc").
		Offset(req.Offset()).
		Limit(req.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "list posts")
	}

	views, err := toPostViews(ctx, r.DB, posts)
	if err != nil {
		return nil, err
	}
	return &model.FeedPage{
		Posts:    views,
		PageInfo: info,
	}, nil
}
