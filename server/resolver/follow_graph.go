package resolver

import (
	"context"

	"github.com/Luismorlan/socialmux/model"
	"github.com/Luismorlan/socialmux/utils"
	. "github.com/Luismorlan/socialmux/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Follow makes followerId follow targetId.
func (r *Resolver) Follow(ctx context.Context, followerId, targetId uint) (*model.Follow, error) {
	if followerId == targetId {
		return nil, invalidOperation("user %d cannot follow themselves", followerId)
	}
	if err := r.requireUser(ctx, targetId); err != nil {
		return nil, err
	}

	edge := model.Follow{UserID: targetId, FollowerID: followerId}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Follow{}).
			Where("user_id = ? AND follower_id = ?", targetId, followerId).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "check follow edge")
		}
		if count > 0 {
			return conflict("user %d already follows user %d", followerId, targetId)
		}
		return tx.Create(&edge).Error
	})
	// The unique index still guards against two concurrent follows.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, conflict("user %d already follows user %d", followerId, targetId)
	}
	if err != nil {
		if _, ok := KindOf(err); ok {
			return nil, err
		}
		return nil, errors.Wrap(err, "create follow edge")
	}

	r.Statsd.Incr(utils.MetricFollowCreated, nil, 1)
	Log.WithField("follower_id", followerId).WithField("user_id", targetId).Info("user followed")
	return &edge, nil
}

// Unfollow removes the edge followerId -> targetId.
func (r *Resolver) Unfollow(ctx context.Context, followerId, targetId uint) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND follower_id = ?", targetId, followerId).
		Delete(&model.Follow{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete follow edge")
	}
	if res.RowsAffected == 0 {
		return notFound("user %d does not follow user %d", followerId, targetId)
	}
	Log.WithField("follower_id", followerId).WithField("user_id", targetId).Info("user unfollowed")
	return nil
}

// ListFollowers returns the users following userId, in edge creation order.
func (r *Resolver) ListFollowers(ctx context.Context, userId uint) ([]*model.UserSummary, error) {
	if err := r.requireUser(ctx, userId); err != nil {
		return nil, err
	}
	return r.followSummaries(ctx, "follows.follower_id", "follows.user_id = ?", userId)
}

// ListFollowing returns the users followerId follows, in edge creation order.
func (r *Resolver) ListFollowing(ctx context.Context, followerId uint) ([]*model.UserSummary, error) {
	if err := r.requireUser(ctx, followerId); err != nil {
		return nil, err
	}
	return r.followSummaries(ctx, "follows.user_id", "follows.follower_id = ?", followerId)
}

// FollowingIds returns the ids of the users followerId follows.
func (r *Resolver) FollowingIds(ctx context.Context, followerId uint) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", followerId).
		Order("id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "list following ids")
	}
	return ids, nil
}

func (r *Resolver) followSummaries(ctx context.Context, joinColumn, where string, id uint) ([]*model.UserSummary, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).
		Select("users.id, users.first_name, users.last_name, users.profile_picture").
		Joins("JOIN follows ON "+joinColumn+" = users.id").
		Where(where, id).
		Order("follows.id").
		Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "list follow edges")
	}
	return toUserSummaries(users)
}
