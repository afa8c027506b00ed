package user

import (
	"net/url"

	"github.com/ormawadev/orgapi/internal/pagination"
)

var allowedOrderBy = []string{"name", "username"}

// ParseListQuery reads the users query string. Sort field and direction fall
// back silently; list filters drop blank and non-numeric tokens.
func ParseListQuery(query url.Values) ListQuery {
	return ListQuery{
		Page:          pagination.ParseParams(query),
		OrderBy:       pagination.ParseOrderBy(query.Get("orderBy"), "name", allowedOrderBy),
		Order:         pagination.ParseOrder(query.Get("order"), pagination.OrderAsc),
		PeriodYears:   pagination.SplitIntList(query.Get("periodYears")),
		DepartmentIDs: pagination.SplitList(query.Get("departmentIds")),
		PositionNames: pagination.SplitList(query.Get("positionNames")),
	}
}
