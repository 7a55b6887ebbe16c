package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/Luismorlan/socialmux/model"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the password of every user created by TestCreateUser.
const TestPassword = "password123"

var testPasswordHash string

func hashedTestPassword(t *testing.T) string {
	if testPasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
		require.NoError(t, err)
		testPasswordHash = string(hash)
	}
	return testPasswordHash
}

// create user with name, do sanity checks and returns it
func TestCreateUser(t *testing.T, db *gorm.DB, firstName string) *model.User {
	t.Helper()
	user := model.User{
		FirstName:    firstName,
		LastName:     "Tester",
		Email:        fmt.Sprintf("%s_%s@example.com", firstName, RandomAlphabetString(6)),
		PasswordHash: hashedTestPassword(t),
	}
	require.NoError(t, db.Create(&user).Error)
	require.NotZero(t, user.Id)
	return &user
}

// create post for user, do sanity checks and returns it. Each post is created
// one millisecond after the previous one so that recency order is strict.
func TestCreatePost(t *testing.T, db *gorm.DB, userId uint, content string) *model.Post {
	t.Helper()
	post := model.Post{UserID: userId, Content: content, CreatedAt: nextTestTime()}
	require.NoError(t, db.Create(&post).Error)
	require.NotZero(t, post.Id)
	return &post
}

// create comment on post, do sanity checks and returns it
func TestCreateComment(t *testing.T, db *gorm.DB, userId, postId uint, content string) *model.Comment {
	t.Helper()
	comment := model.Comment{UserID: userId, PostID: postId, Content: content, CreatedAt: nextTestTime()}
	require.NoError(t, db.Create(&comment).Error)
	require.NotZero(t, comment.Id)
	return &comment
}

// create follow edge followerId -> userId
func TestFollow(t *testing.T, db *gorm.DB, followerId, userId uint) {
	t.Helper()
	require.NoError(t, db.Create(&model.Follow{UserID: userId, FollowerID: followerId}).Error)
}

var lastTestTime time.Time

func nextTestTime() time.Time {
	now := time.Now()
	if !now.After(lastTestTime) {
		now = lastTestTime.Add(time.Millisecond)
	}
	lastTestTime = now
	return now
}
