package model

import (
	"time"
)

/*

Post is a short text published by a user

Id: primary key
UserID: author
Content: post's content in plain text
CreatedAt: time when entity is created, feeds are ordered by it
UpdatedAt: time when content was last edited

*/

type Post struct {
	Id        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostView is a post as rendered in feeds: with its author and the number of
// comments at read time.
type PostView struct {
	Post
	Author        UserSummary `json:"author"`
	CommentsCount int64       `json:"commentsCount"`
}

// PostDetail is a single post with every comment on it.
type PostDetail struct {
	PostView
	Comments []*CommentView `json:"comments"`
}
