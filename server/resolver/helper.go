package resolver

import (
	"context"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/Luismorlan/socialmux/model"
	"github.com/Luismorlan/socialmux/utils"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const maxPageOffset = math.MaxInt32

// sanitizePageRequest coerces a client page request: page < 1 becomes 1, a
// missing or non-positive limit becomes defaultLimit and any limit above
// MAX_PAGE_LIMIT is capped. Page is capped so that the row offset never
// exceeds maxPageOffset.
func (r *Resolver) sanitizePageRequest(req model.PageRequest, defaultLimit int) model.PageRequest {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = defaultLimit
	}
	req.Limit = utils.Min(req.Limit, r.Config.MAX_PAGE_LIMIT)
	req.Page = utils.Min(req.Page, maxPageOffset/req.Limit+1)
	return req
}

// sanitizeContent trims content and checks it is non empty and within
// MAX_CONTENT_LENGTH characters.
func (r *Resolver) sanitizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", validationError("content is required")
	}
	if n := utf8.RuneCountInString(content); n > r.Config.MAX_CONTENT_LENGTH {
		return "", validationError("content should be at most %d characters, got %d", r.Config.MAX_CONTENT_LENGTH, n)
	}
	return content, nil
}

// userSummaries loads the summary projection of every user in ids, keyed by
// id. Unknown ids are absent from the result.
func userSummaries(ctx context.Context, db *gorm.DB, ids []uint) (map[uint]model.UserSummary, error) {
	res := make(map[uint]model.UserSummary, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	var users []model.User
	err := db.WithContext(ctx).
		Select(model.UserSummaryColumns).
		Where("id IN ?", ids).
		Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "load user summaries")
	}
	summaries, err := toUserSummaries(users)
	if err != nil {
		return nil, err
	}
	for _, s := range summaries {
		res[s.Id] = *s
	}
	return res, nil
}

// toUserSummaries projects users onto the public UserSummary fields, so
// private columns never leave the identity store even if they were loaded.
func toUserSummaries(users []model.User) ([]*model.UserSummary, error) {
	summaries := make([]*model.UserSummary, 0, len(users))
	if len(users) == 0 {
		return summaries, nil
	}
	if err := copier.Copy(&summaries, &users); err != nil {
		return nil, errors.Wrap(err, "project user summaries")
	}
	return summaries, nil
}

// commentCounts counts the comment rows of each post in postIds at read time.
// Posts without comments are absent from the result.
func commentCounts(ctx context.Context, db *gorm.DB, postIds []uint) (map[uint]int64, error) {
	res := make(map[uint]int64, len(postIds))
	if len(postIds) == 0 {
		return res, nil
	}
	type row struct {
		PostID uint
		Count  int64
	}
	var rows []row
	err := db.WithContext(ctx).Model(&model.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIds).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "count comments")
	}
	for _, r := range rows {
		res[r.PostID] = r.Count
	}
	return res, nil
}

// toPostViews attaches author summaries and comment counts to posts, keeping
// their order.
func toPostViews(ctx context.Context, db *gorm.DB, posts []*model.Post) ([]*model.PostView, error) {
	postIds := make([]uint, 0, len(posts))
	authorIds := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIds = append(postIds, p.Id)
		authorIds = append(authorIds, p.UserID)
	}

	authors, err := userSummaries(ctx, db, authorIds)
	if err != nil {
		return nil, err
	}
	counts, err := commentCounts(ctx, db, postIds)
	if err != nil {
		return nil, err
	}

	views := make([]*model.PostView, 0, len(posts))
	for _, p := range posts {
		author, ok := authors[p.UserID]
		if !ok {
			author = model.UserSummary{Id: p.UserID}
		}
		views = append(views, &model.PostView{
			Post:          *p,
			Author:        author,
			CommentsCount: counts[p.Id],
		})
	}
	return views, nil
}

// toCommentViews attaches author summaries to comments, keeping their order.
func toCommentViews(ctx context.Context, db *gorm.DB, comments []*model.Comment) ([]*model.CommentView, error) {
	authorIds := make([]uint, 0, len(comments))
	for _, c := range comments {
		authorIds = append(authorIds, c.UserID)
	}
	authors, err := userSummaries(ctx, db, authorIds)
	if err != nil {
		return nil, err
	}

	views := make([]*model.CommentView, 0, len(comments))
	for _, c := range comments {
		author, ok := authors[c.UserID]
		if !ok {
			author = model.UserSummary{Id: c.UserID}
		}
		views = append(views, &model.CommentView{Comment: *c, Author: author})
	}
	return views, nil
}

// isRecordNotFound reports whether a First/Take query found no row.
func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
