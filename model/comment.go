package model

import "time"

/*

Comment is a reply of a user on a post

Id: primary key
PostID: the post commented on
UserID: author of the comment
Content: plain text

*/

type Comment struct {
	Id        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"postId" gorm:"not null;index"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentView is a comment with its author.
type CommentView struct {
	Comment
	Author UserSummary `json:"author"`
}
