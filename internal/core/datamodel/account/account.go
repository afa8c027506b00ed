// Package account holds the persistence models for users and their
// public profile attachments.
package account

import "time"

type User struct {
	ID            string     `gorm:"primaryKey"`
	Name          *string    `gorm:"column:name"`
	Email         *string    `gorm:"column:email;uniqueIndex"`
	EmailVerified *time.Time `gorm:"column:email_verified"`
	Image         *string    `gorm:"column:image"`
	Username      *string    `gorm:"column:username;uniqueIndex"`
	Bio           *string    `gorm:"column:bio"`
	Role          string     `gorm:"column:role;not null;default:member"`
	LastLoginAt   *time.Time `gorm:"column:last_login_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

type SocialMedia struct {
	UserID   string `gorm:"column:user_id;not null;uniqueIndex:social_media_unique"`
	Name     string `gorm:"column:name;not null;uniqueIndex:social_media_unique"`
	Username string `gorm:"column:username;not null;uniqueIndex:social_media_unique"`
	URL      string `gorm:"column:url;not null"`
}

func (SocialMedia) TableName() string {
	return "social_medias"
}
