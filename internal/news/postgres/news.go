package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ormawadev/orgapi/internal/aggregate"
	"github.com/ormawadev/orgapi/internal/news"
	"gorm.io/gorm"
)

// NewsRepository implements news.Repository using GORM.
//
// The page window is selected over post ids first, then the child join runs
// against that id set only, so a post with several tag rows can never push
// another post off the page.
type NewsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) news.Repository {
	return &NewsRepository{db: db}
}

type joinRow struct {
	ID          string
	Title       string
	MetaTitle   string
	Slug        string
	Content     string
	Image       *string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	AuthorID       string
	AuthorName     *string
	AuthorUsername *string
	AuthorImage    *string

	TagTitle *string
	TagSlug  *string
}

func (r *NewsRepository) List(ctx context.Context, q news.ListQuery) ([]*news.Post, error) {
	var ids []string
	err := r.filtered(r.db.WithContext(ctx).Table("posts"), q).
		Order(orderExpr(q.Order)).
		Limit(q.Page.Limit).
		Offset(q.Page.Offset()).
		Pluck("posts.id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*news.Post{}, nil
	}

	var rows []joinRow
	err = r.db.WithContext(ctx).
		Table("posts").
		Select(`posts.id, posts.title, posts.meta_title, posts.slug, posts.content, posts.image,
			posts.published_at, posts.created_at, posts.updated_at,
			posts.author_id, users.name AS author_name, users.username AS author_username,
			users.image AS author_image,
			post_tags.title AS tag_title, post_tags.slug AS tag_slug`).
		Joins("LEFT JOIN users ON users.id = posts.author_id").
		Joins(`LEFT JOIN "_PostToPostTag" ptt ON ptt.post_id = posts.id`).
		Joins("LEFT JOIN post_tags ON post_tags.id = ptt.post_tag_id").
		Where("posts.id IN ?", ids).
		Where("post_tags.title = ?", news.NewsTag).
		Order(orderExpr(q.Order) + ", post_tags.slug ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return aggregate.Fold(rows,
		func(row joinRow) string { return row.ID },
		newPost,
		appendTag,
	), nil
}

func (r *NewsRepository) Count(ctx context.Context, q news.ListQuery) (int64, error) {
	var total int64
	err := r.filtered(r.db.WithContext(ctx).Table("posts"), q).
		Distinct("posts.id").
		Count(&total).Error
	return total, err
}

// filtered applies the fixed news predicate (tagged "berita", published) and
// the optional title search. The tag join is required by the predicate, so
// it lives here rather than in the child-fetch query alone.
func (r *NewsRepository) filtered(tx *gorm.DB, q news.ListQuery) *gorm.DB {
	tx = tx.
		Joins(`JOIN "_PostToPostTag" ptt ON ptt.post_id = posts.id`).
		Joins("JOIN post_tags ON post_tags.id = ptt.post_tag_id").
		Where("post_tags.title = ?", news.NewsTag).
		Where("posts.published_at IS NOT NULL")
	if q.Search != "" {
		tx = tx.Where("LOWER(posts.title) LIKE ?", "%"+q.Search+"%")
	}
	return tx
}

func orderExpr(order string) string {
	dir := "DESC"
	if order == "asc" {
		dir = "ASC"
	}
	return fmt.Sprintf("posts.published_at %s, posts.id ASC", dir)
}

func newPost(row joinRow) *news.Post {
	return &news.Post{
		ID:          row.ID,
		Title:       row.Title,
		MetaTitle:   row.MetaTitle,
		Slug:        row.Slug,
		Content:     row.Content,
		Image:       row.Image,
		PublishedAt: row.PublishedAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		Author: news.Author{
			ID:       row.AuthorID,
			Name:     row.AuthorName,
			Username: row.AuthorUsername,
			Image:    row.AuthorImage,
		},
		PostTags: []news.TagSummary{},
	}
}

func appendTag(p *news.Post, row joinRow) {
	if row.TagTitle == nil || row.TagSlug == nil {
		return
	}
	p.PostTags = append(p.PostTags, news.TagSummary{
		Title: *row.TagTitle,
		Slug:  *row.TagSlug,
	})
}
