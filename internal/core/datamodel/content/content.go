// Package content holds the persistence models for posts and post tags.
package content

import "time"

type Post struct {
	ID          string     `gorm:"primaryKey"`
	AuthorID    string     `gorm:"column:author_id;not null;uniqueIndex:posts_author_slug_unique"`
	Title       string     `gorm:"column:title;not null"`
	MetaTitle   string     `gorm:"column:meta_title;not null"`
	Slug        string     `gorm:"column:slug;not null;uniqueIndex:posts_author_slug_unique"`
	Content     string     `gorm:"column:content;not null"`
	RawHTML     string     `gorm:"column:raw_html;not null"`
	Image       *string    `gorm:"column:image"`
	PublishedAt *time.Time `gorm:"column:published_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Post) TableName() string {
	return "posts"
}

// IsPublished reports whether the post is visible to the public feed.
// A non-null publish time is the sole criterion.
func (p *Post) IsPublished() bool {
	return p.PublishedAt != nil
}

// PostTag.ParentID references another tag, forming a tag hierarchy.
type PostTag struct {
	ID        string    `gorm:"primaryKey"`
	Title     string    `gorm:"column:title;uniqueIndex;not null"`
	Slug      string    `gorm:"column:slug;uniqueIndex;not null"`
	ParentID  *string   `gorm:"column:parent_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PostTag) TableName() string {
	return "post_tags"
}

type PostToPostTag struct {
	PostID    string `gorm:"column:post_id;not null;uniqueIndex:post_tag_unique"`
	PostTagID string `gorm:"column:post_tag_id;not null;uniqueIndex:post_tag_unique"`
}

func (PostToPostTag) TableName() string {
	return "_PostToPostTag"
}
