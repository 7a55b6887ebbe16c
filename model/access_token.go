package model

import "time"

// AccessToken records an issued, not yet revoked, bearer token. Id is the
// token's jti claim.
type AccessToken struct {
	Id        string    `gorm:"primaryKey;size:36"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}
