package resolver

import (
	"context"
	"io"
	"strings"

	"github.com/Luismorlan/socialmux/model"
	"github.com/Luismorlan/socialmux/server/auth"
	"github.com/Luismorlan/socialmux/utils"
	"github.com/Luismorlan/socialmux/utils/file_store"
	. "github.com/Luismorlan/socialmux/utils/log"
	"github.com/pkg/errors"
)

var allowedPictureExts = []string{".jpg", ".jpeg", ".png"}

// Session is a user with a freshly issued bearer token.
type Session struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates a user and logs them in.
func (r *Resolver) Register(ctx context.Context, input NewUserInput) (*Session, error) {
	user, err := r.CreateUser(ctx, input)
	if err != nil {
		return nil, err
	}
	token, err := r.Tokens.Issue(ctx, user.Id)
	if err != nil {
		return nil, err
	}
	r.Statsd.Incr(utils.MetricUserRegistered, nil, 1)
	return &Session{User: user, Token: token}, nil
}

// Login checks the credentials and issues a new token.
func (r *Resolver) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, "email = ?", email).Error
	if isRecordNotFound(err) {
		return nil, unauthenticated("invalid email or password")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user by email")
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, unauthenticated("invalid email or password")
	}
	token, err := r.Tokens.Issue(ctx, user.Id)
	if err != nil {
		return nil, err
	}
	return &Session{User: &user, Token: token}, nil
}

// Logout revokes the token the viewer authenticated with.
func (r *Resolver) Logout(ctx context.Context, identity auth.Identity) error {
	return r.Tokens.Revoke(ctx, identity)
}

// Me returns the viewer.
func (r *Resolver) Me(ctx context.Context, viewerId uint) (*model.User, error) {
	return r.GetUser(ctx, viewerId)
}

// UpdatePassword checks the current password, revokes every token the viewer
// holds, stores the new password and issues a new token.
func (r *Resolver) UpdatePassword(ctx context.Context, viewerId uint, currentPassword, newPassword string) (string, error) {
	user, err := r.GetUser(ctx, viewerId)
	if err != nil {
		return "", err
	}
	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return "", validationError("current password is incorrect")
	}
	if err := validatePassword(newPassword); err != nil {
		return "", err
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return "", err
	}
	// Revoke first: a failure leaves the old password in place instead of a
	// new password with live old tokens.
	if err := r.Tokens.RevokeAll(ctx, viewerId); err != nil {
		return "", err
	}
	if err := r.DB.WithContext(ctx).Model(user).Update("password_hash", hash).Error; err != nil {
		return "", errors.Wrap(err, "update password")
	}
	Log.WithField("user_id", viewerId).Info("password updated, tokens revoked")
	return r.Tokens.Issue(ctx, viewerId)
}

// UpdateProfilePicture stores an uploaded jpg or png picture and sets it as
// the viewer's profile picture.
func (r *Resolver) UpdateProfilePicture(ctx context.Context, viewerId uint, fileName string, size int64, body io.Reader) (*model.User, error) {
	user, err := r.GetUser(ctx, viewerId)
	if err != nil {
		return nil, err
	}
	ext := file_store.GetExtNameWithDot(fileName)
	allowed := false
	for _, e := range allowedPictureExts {
		allowed = allowed || e == ext
	}
	if !allowed {
		return nil, validationError("profile picture should be a jpg, jpeg or png file")
	}
	if size <= 0 || size > r.Config.MAX_PROFILE_PICTURE_BYTES {
		return nil, validationError("profile picture should be at most %d bytes", r.Config.MAX_PROFILE_PICTURE_BYTES)
	}

	key, err := r.FileStore.Store(ctx, fileName, io.LimitReader(body, r.Config.MAX_PROFILE_PICTURE_BYTES))
	if err != nil {
		return nil, err
	}
	url := r.FileStore.GetUrlFromKey(key)
	if err := r.DB.WithContext(ctx).Model(user).Update("profile_picture", url).Error; err != nil {
		return nil, errors.Wrap(err, "update profile picture")
	}
	user.ProfilePicture = &url
	return user, nil
}
