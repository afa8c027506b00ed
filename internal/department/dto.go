package department

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ormawadev/orgapi/internal"
	"github.com/ormawadev/orgapi/internal/core/datamodel/org"
	"github.com/ormawadev/orgapi/internal/pagination"
)

var allowedTypes = []string{"be", "dp"}

// ParseListQuery validates the departments query string. An unknown type is
// the only rejection; a non-numeric year is treated as absent.
func ParseListQuery(query url.Values) (ListQuery, error) {
	q := ListQuery{Page: pagination.ParseParams(query)}

	if raw := query.Get("type"); raw != "" {
		switch strings.ToLower(raw) {
		case "be":
			q.Type = org.DepartmentTypeBE
		case "dp":
			q.Type = org.DepartmentTypeDP
		default:
			return ListQuery{}, internal.NewBadRequestError("Invalid type value", map[string]any{
				"allowedTypes": allowedTypes,
			})
		}
	}

	if raw := query.Get("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			q.Year = &year
		}
	}

	q.Acronym = strings.ToLower(strings.TrimSpace(query.Get("acronym")))

	return q, nil
}
