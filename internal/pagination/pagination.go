// Package pagination parses and bounds the paging, ordering and list-valued
// query parameters shared by every listing endpoint.
package pagination

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Params is a validated page window. Page is at least 1; Limit is clamped
// to [1, MaxLimit].
type Params struct {
	Page  int
	Limit int
}

// ParseParams reads page and limit from the query string. Missing or
// non-numeric values fall back to defaults rather than erroring.
func ParseParams(query url.Values) Params {
	page := DefaultPage
	if raw := query.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > page {
			page = n
		}
	}

	limit := DefaultLimit
	if raw := query.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParseOrder returns "asc" or "desc", falling back to def for anything else.
func ParseOrder(raw, def string) string {
	switch strings.ToLower(raw) {
	case OrderAsc:
		return OrderAsc
	case OrderDesc:
		return OrderDesc
	default:
		return def
	}
}

// ParseOrderBy restricts the sort field to an allow-list. Out-of-list values
// are not rejected, they silently default.
func ParseOrderBy(raw, def string, allowed []string) string {
	field := strings.ToLower(strings.TrimSpace(raw))
	for _, a := range allowed {
		if field == a {
			return field
		}
	}
	return def
}

// SplitList splits a comma-separated parameter, dropping blank tokens.
func SplitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// SplitIntList splits a comma-separated parameter and parses each token as an
// integer. Non-numeric tokens are dropped.
func SplitIntList(raw string) []int {
	var out []int
	for _, tok := range SplitList(raw) {
		if n, err := strconv.Atoi(tok); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// Metadata is the pagination block of the success envelope.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

func NewMetadata(total int64, p Params) Metadata {
	return Metadata{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: int64(math.Ceil(float64(total) / float64(p.Limit))),
	}
}
