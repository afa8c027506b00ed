package news

import (
	"net/url"
	"strings"

	"github.com/ormawadev/orgapi/internal/pagination"
)

// ParseListQuery reads the news query string. Nothing here is rejected:
// an invalid order silently falls back to newest-first.
func ParseListQuery(query url.Values) ListQuery {
	return ListQuery{
		Page:   pagination.ParseParams(query),
		Order:  pagination.ParseOrder(query.Get("order"), pagination.OrderDesc),
		Search: strings.ToLower(strings.TrimSpace(query.Get("search"))),
	}
}
