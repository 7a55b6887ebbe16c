package model

import (
	"time"

	"gorm.io/datatypes"
)

/*

User is a registered member of the network

Id: primary key, auto-increment
CreatedAt: time when entity is created
UpdatedAt: time when entity is last updated

FirstName, LastName: display name
BirthDate: calendar date, no time component
Phone: free-form phone number
Email: login identifier, unique, stored lower cased
PasswordHash: bcrypt hash, never serialized
ProfilePicture: public url of the uploaded picture, nil when not set

*/

type User struct {
	Id             uint           `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	FirstName      string         `json:"firstName" gorm:"size:100;not null"`
	LastName       string         `json:"lastName" gorm:"size:100;not null"`
	BirthDate      datatypes.Date `json:"birthDate"`
	Phone          string         `json:"phone" gorm:"size:40"`
	Email          string         `json:"email" gorm:"size:254;not null;uniqueIndex"`
	PasswordHash   string         `json:"-" gorm:"size:255;not null"`
	ProfilePicture *string        `json:"profilePicture"`
}

// UserSummary is the minimal projection of a User attached to posts, comments
// and follow listings.
type UserSummary struct {
	Id             uint    `json:"id"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	ProfilePicture *string `json:"profilePicture"`
}

// UserSummaryColumns are the columns to select when scanning users into a
// UserSummary.
var UserSummaryColumns = []string{"id", "first_name", "last_name", "profile_picture"}

// UserListItem is one row of the user explorer.
type UserListItem struct {
	UserSummary
	PostsCount     int64 `json:"postsCount"`
	FollowersCount int64 `json:"followersCount"`
	FollowingCount int64 `json:"followingCount"`
}

// UserProfile is the profile page of a single user.
type UserProfile struct {
	User           *User          `json:"user"`
	Followers      []*UserSummary `json:"followers"`
	Following      []*UserSummary `json:"following"`
	PostsCount     int64          `json:"postsCount"`
	FollowersCount int64          `json:"followersCount"`
	FollowingCount int64          `json:"followingCount"`
}
