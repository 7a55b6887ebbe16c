package model

import "time"

/*

Follow is a directed edge of the social graph: FollowerID follows UserID

Id: primary key
UserID: the user being followed
FollowerID: the user following
CreatedAt: time when the edge is created

There is at most one edge per (UserID, FollowerID) pair.

*/

type Follow struct {
	Id         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"not null;uniqueIndex:idx_follow_edge;index"`
	FollowerID uint      `json:"followerId" gorm:"not null;uniqueIndex:idx_follow_edge;index"`
	CreatedAt  time.Time `json:"createdAt"`
}
