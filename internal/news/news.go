package news

import (
	"context"
	"time"

	"github.com/ormawadev/orgapi/internal/pagination"
)

// NewsTag is the tag title that marks a post as news.
const NewsTag = "berita"

// Post is one news entry: the published post plus its author summary and the
// tag rows the listing filter admitted.
type Post struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	MetaTitle   string       `json:"metaTitle"`
	Slug        string       `json:"slug"`
	Content     string       `json:"content"`
	Image       *string      `json:"image"`
	PublishedAt *time.Time   `json:"publishedAt"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Author      Author       `json:"author"`
	PostTags    []TagSummary `json:"postTags"`
}

type Author struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Image    *string `json:"image"`
}

type TagSummary struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// ListQuery carries the validated news listing parameters. The tag and
// published-only predicates are fixed; Search narrows by title.
type ListQuery struct {
	Page   pagination.Params
	Order  string // "asc" or "desc" on publish time
	Search string // lowercased substring match on title
}

type Repository interface {
	List(ctx context.Context, q ListQuery) ([]*Post, error)
	Count(ctx context.Context, q ListQuery) (int64, error)
}
