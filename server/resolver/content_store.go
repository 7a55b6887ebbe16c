package resolver

import (
	"context"

	"github.com/Luismorlan/socialmux/model"
	"github.com/Luismorlan/socialmux/utils"
	. "github.com/Luismorlan/socialmux/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreatePost publishes content as authorId.
func (r *Resolver) CreatePost(ctx context.Context, authorId uint, content string) (*model.Post, error) {
	content, err := r.sanitizeContent(content)
	if err != nil {
		return nil, err
	}
	if err := r.requireUser(ctx, authorId); err != nil {
		return nil, err
	}

	post := model.Post{UserID: authorId, Content: content}
	if err := r.DB.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, errors.Wrap(err, "create post")
	}
	r.Statsd.Incr(utils.MetricPostCreated, nil, 1)
	Log.WithField("post_id", post.Id).WithField("user_id", authorId).Info("post created")
	return &post, nil
}

// GetPost returns a post with its author, comment count and every comment,
// oldest comment first.
func (r *Resolver) GetPost(ctx context.Context, postId uint) (*model.PostDetail, error) {
	post, err := r.getPost(ctx, postId)
	if err != nil {
		return nil, err
	}
	views, err := toPostViews(ctx, r.DB, []*model.Post{post})
	if err != nil {
		return nil, err
	}

	comments := []*model.Comment{}
	err = r.DB.WithContext(ctx).
		Where("post_id = ?", postId).
		Order("created_at asc, id asc").
		Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "list comments")
	}
	commentViews, err := toCommentViews(ctx, r.DB, comments)
	if err != nil {
		return nil, err
	}
	return &model.PostDetail{PostView: *views[0], Comments: commentViews}, nil
}

// UpdatePost replaces the content of a post. Only its author may do so.
func (r *Resolver) UpdatePost(ctx context.Context, postId, viewerId uint, content string) (*model.Post, error) {
	post, err := r.getPost(ctx, postId)
	if err != nil {
		return nil, err
	}
	if post.UserID != viewerId {
		return nil, forbidden("you are not allowed to update this post")
	}
	if post.Content, err = r.sanitizeContent(content); err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(post).Update("content", post.Content).Error; err != nil {
		return nil, errors.Wrap(err, "update post")
	}
	return post, nil
}

// DeletePost removes a post and its comments. Only its author may do so.
func (r *Resolver) DeletePost(ctx context.Context, postId, viewerId uint) error {
	post, err := r.getPost(ctx, postId)
	if err != nil {
		return err
	}
	if post.UserID != viewerId {
		return forbidden("you are not allowed to delete this post")
	}
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postId).Delete(&model.Comment{}).Error; err != nil {
			return errors.Wrap(err, "delete post comments")
		}
		return errors.Wrap(tx.Delete(post).Error, "delete post")
	})
	if err != nil {
		return err
	}
	Log.WithField("post_id", postId).Info("post deleted")
	return nil
}

// CreateComment comments content on postId as authorId.
func (r *Resolver) CreateComment(ctx context.Context, authorId, postId uint, content string) (*model.CommentView, error) {
	if _, err := r.getPost(ctx, postId); err != nil {
		return nil, err
	}
	content, err := r.sanitizeContent(content)
	if err != nil {
		return nil, err
	}

	comment := model.Comment{PostID: postId, UserID: authorId, Content: content}
	if err := r.DB.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, errors.Wrap(err, "create comment")
	}
	r.Statsd.Incr(utils.MetricCommentCreated, nil, 1)

	views, err := toCommentViews(ctx, r.DB, []*model.Comment{&comment})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// canModerateComment holds when viewerId wrote the comment or owns the post it
// was written on.
func canModerateComment(viewerId uint, comment *model.Comment, post *model.Post) bool {
	isAuthor := viewerId == comment.UserID
	isPostOwner := viewerId == post.UserID
	return isAuthor || isPostOwner
}

// UpdateComment replaces the content of a comment.
func (r *Resolver) UpdateComment(ctx context.Context, commentId, viewerId uint, content string) (*model.Comment, error) {
	comment, post, err := r.getCommentWithPost(ctx, commentId)
	if err != nil {
		return nil, err
	}
	if !canModerateComment(viewerId, comment, post) {
		return nil, forbidden("you are not allowed to update this comment")
	}
	if comment.Content, err = r.sanitizeContent(content); err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(comment).Update("content", comment.Content).Error; err != nil {
		return nil, errors.Wrap(err, "update comment")
	}
	return comment, nil
}

// DeleteComment removes a comment.
func (r *Resolver) DeleteComment(ctx context.Context, commentId, viewerId uint) error {
	comment, post, err := r.getCommentWithPost(ctx, commentId)
	if err != nil {
		return err
	}
	if !canModerateComment(viewerId, comment, post) {
		return forbidden("you are not allowed to delete this comment")
	}
	if err := r.DB.WithContext(ctx).Delete(comment).Error; err != nil {
		return errors.Wrap(err, "delete comment")
	}
	return nil
}

// ListCommentsForPost returns a page of the comments of postId, oldest first.
func (r *Resolver) ListCommentsForPost(ctx context.Context, postId uint, req model.PageRequest) (*model.CommentPage, error) {
	if _, err := r.getPost(ctx, postId); err != nil {
		return nil, err
	}
	req = r.sanitizePageRequest(req, r.Config.DEFAULT_COMMENT_LIMIT)

	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.Comment{}).Where("post_id = ?", postId).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count comments")
	}
	info := model.NewPageInfo(req, total)
	if req.Page > info.TotalPages {
		return &model.CommentPage{Comments: []*model.CommentView{}, PageInfo: info}, nil
	}
	comments := []*model.Comment{}
	err := r.DB.WithContext(ctx).
		Where("post_id = ?", postId).
		Order("created_at asc, id asc").
		Offset(req.Offset()).
		Limit(req.Limit).
		Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "list comments")
	}
	views, err := toCommentViews(ctx, r.DB, comments)
	if err != nil {
		return nil, err
	}
	return &model.CommentPage{Comments: views, PageInfo: info}, nil
}

func (r *Resolver) getPost(ctx context.Context, postId uint) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, "id = ?", postId).Error
	if isRecordNotFound(err) {
		return nil, notFound("post %d not found", postId)
	}
	if err != nil {
		return nil, errors.Wrap(err, "get post")
	}
	return &post, nil
}

func (r *Resolver) getCommentWithPost(ctx context.Context, commentId uint) (*model.Comment, *model.Post, error) {
	var comment model.Comment
	err := r.DB.WithContext(ctx).First(&comment, "id = ?", commentId).Error
	if isRecordNotFound(err) {
		return nil, nil, notFound("comment %d not found", commentId)
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "get comment")
	}
	post, err := r.getPost(ctx, comment.PostID)
	if err != nil {
		return nil, nil, err
	}
	return &comment, post, nil
}
