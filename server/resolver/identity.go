package resolver

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/Luismorlan/socialmux/model"
	"github.com/Luismorlan/socialmux/server/auth"
	. "github.com/Luismorlan/socialmux/utils/log"
	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NewUserInput holds the registration attributes of a user.
type NewUserInput struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	BirthDate      string `json:"birthDate"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	ProfilePicture string `json:"profilePicture"`
}

// UpdateUserInput holds the profile attributes a user may change. Nil fields
// are left untouched.
type UpdateUserInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	BirthDate *string `json:"birthDate"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", validationError("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", validationError("invalid email %q", email)
	}
	return email, nil
}

func parseBirthDate(s string) (datatypes.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return datatypes.Date{}, nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return datatypes.Date{}, validationError("invalid birth date %q", s)
	}
	return datatypes.Date(t), nil
}

// validatePassword checks the length bounds of a new password. The upper bound
// is in bytes.
func validatePassword(password string) error {
	if len(password) < auth.MinPasswordLength {
		return validationError("password should have at least %d characters", auth.MinPasswordLength)
	}
	if len(password) > auth.MaxPasswordLength {
		return validationError("password should have at most %d bytes", auth.MaxPasswordLength)
	}
	return nil
}

// CreateUser registers a new user.
func (r *Resolver) CreateUser(ctx context.Context, input NewUserInput) (*model.User, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, validationError("first name and last name are required")
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}
	birthDate, err := parseBirthDate(input.BirthDate)
	if err != nil {
		return nil, err
	}
	if err := r.requireEmailAvailable(ctx, email, 0); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := model.User{
		FirstName:    firstName,
		LastName:     lastName,
		BirthDate:    birthDate,
		Phone:        strings.TrimSpace(input.Phone),
		Email:        email,
		PasswordHash: hash,
	}
	if picture := strings.TrimSpace(input.ProfilePicture); picture != "" {
		user.ProfilePicture = &picture
	}
	if err := r.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationError("email %s is already registered", email)
		}
		return nil, errors.Wrap(err, "create user")
	}
	Log.WithField("user_id", user.Id).Info("user created")
	return &user, nil
}

// GetUser returns the user with the given id.
func (r *Resolver) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if isRecordNotFound(err) {
		return nil, notFound("user %d not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	return &user, nil
}

// UpdateUser changes the profile attributes of user id. Only the user
// themselves may do so.
func (r *Resolver) UpdateUser(ctx context.Context, id, viewerId uint, input UpdateUserInput) (*model.User, error) {
	user, err := r.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewerId != user.Id {
		return nil, forbidden("you are not allowed to update this user")
	}

	if input.FirstName != nil {
		if user.FirstName = strings.TrimSpace(*input.FirstName); user.FirstName == "" {
			return nil, validationError("first name is required")
		}
	}
	if input.LastName != nil {
		if user.LastName = strings.TrimSpace(*input.LastName); user.LastName == "" {
			return nil, validationError("last name is required")
		}
	}
	if input.BirthDate != nil {
		if user.BirthDate, err = parseBirthDate(*input.BirthDate); err != nil {
			return nil, err
		}
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Email != nil {
		email, err := normalizeEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		if err := r.requireEmailAvailable(ctx, email, user.Id); err != nil {
			return nil, err
		}
		user.Email = email
	}

	err = r.DB.WithContext(ctx).Model(user).
		Select("first_name", "last_name", "birth_date", "phone", "email", "updated_at").
		Updates(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, validationError("email %s is already registered", user.Email)
	}
	if err != nil {
		return nil, errors.Wrap(err, "update user")
	}
	return user, nil
}

// DeleteUser removes user id with everything they own: their posts and the
// comments on them, their comments, their follow edges and their tokens.
func (r *Resolver) DeleteUser(ctx context.Context, id, viewerId uint) error {
	user, err := r.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if viewerId != user.Id {
		return forbidden("you are not allowed to delete this user")
	}

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownPosts := tx.Model(&model.Post{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("post_id IN (?)", ownPosts).Delete(&model.Comment{}).Error; err != nil {
			return errors.Wrap(err, "delete comments on user posts")
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return errors.Wrap(err, "delete user comments")
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Post{}).Error; err != nil {
			return errors.Wrap(err, "delete user posts")
		}
		if err := tx.Where("user_id = ? OR follower_id = ?", id, id).Delete(&model.Follow{}).Error; err != nil {
			return errors.Wrap(err, "delete follow edges")
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.AccessToken{}).Error; err != nil {
			return errors.Wrap(err, "delete access tokens")
		}
		return errors.Wrap(tx.Delete(user).Error, "delete user")
	})
	if err != nil {
		return err
	}
	// Tokens kept outside of the database (redis) are revoked separately.
	if r.Tokens != nil {
		if err := r.Tokens.RevokeAll(ctx, id); err != nil {
			Log.WithError(err).WithField("user_id", id).Warn("fail to revoke tokens of deleted user")
		}
	}
	Log.WithField("user_id", id).Info("user deleted")
	return nil
}

// ListUsers returns every user with their post and follow counts, for the
// user explorer.
func (r *Resolver) ListUsers(ctx context.Context) ([]*model.UserListItem, error) {
	var users []*model.UserSummary
	err := r.DB.WithContext(ctx).Model(&model.User{}).
		Select(model.UserSummaryColumns).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}

	postCounts, err := r.groupCount(ctx, &model.Post{}, "user_id")
	if err != nil {
		return nil, err
	}
	followerCounts, err := r.groupCount(ctx, &model.Follow{}, "user_id")
	if err != nil {
		return nil, err
	}
	followingCounts, err := r.groupCount(ctx, &model.Follow{}, "follower_id")
	if err != nil {
		return nil, err
	}

	items := make([]*model.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, &model.UserListItem{
			UserSummary:    *u,
			PostsCount:     postCounts[u.Id],
			FollowersCount: followerCounts[u.Id],
			FollowingCount: followingCounts[u.Id],
		})
	}
	return items, nil
}

// GetProfile returns user id with their followers and followings.
func (r *Resolver) GetProfile(ctx context.Context, id uint) (*model.UserProfile, error) {
	user, err := r.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	followers, err := r.ListFollowers(ctx, id)
	if err != nil {
		return nil, err
	}
	following, err := r.ListFollowing(ctx, id)
	if err != nil {
		return nil, err
	}
	var postsCount int64
	if err := r.DB.WithContext(ctx).Model(&model.Post{}).Where("user_id = ?", id).Count(&postsCount).Error; err != nil {
		return nil, errors.Wrap(err, "count user posts")
	}

	profile := model.UserProfile{
		User:           user,
		Followers:      followers,
		Following:      following,
		PostsCount:     postsCount,
		FollowersCount: int64(len(followers)),
		FollowingCount: int64(len(following)),
	}
	return &profile, nil
}

// ListUserPosts returns a page of the posts of a single user, newest first.
func (r *Resolver) ListUserPosts(ctx context.Context, userId uint, req model.PageRequest) (*model.FeedPage, error) {
	if err := r.requireUser(ctx, userId); err != nil {
		return nil, err
	}
	req = r.sanitizePageRequest(req, r.Config.DEFAULT_USER_POSTS_LIMIT)
	return r.pagePosts(ctx, []uint{userId}, req)
}

func (r *Resolver) requireUser(ctx context.Context, id uint) error {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.Wrap(err, "check user")
	}
	if count == 0 {
		return notFound("user %d not found", id)
	}
	return nil
}

// requireEmailAvailable fails when another user than exceptId owns email.
func (r *Resolver) requireEmailAvailable(ctx context.Context, email string, exceptId uint) error {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id <> ?", email, exceptId).
		Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "check email")
	}
	if count > 0 {
		return validationError("email %s is already registered", email)
	}
	return nil
}

func (r *Resolver) groupCount(ctx context.Context, table interface{}, column string) (map[uint]int64, error) {
	type row struct {
		GroupKey uint
		Count    int64
	}
	var rows []row
	err := r.DB.WithContext(ctx).Model(table).
		Select(column + " AS group_key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "group count on "+column)
	}
	res := make(map[uint]int64, len(rows))
	for _, r := range rows {
		res[r.GroupKey] = r.Count
	}
	return res, nil
}
