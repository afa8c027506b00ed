package user

import (
	"context"

	"github.com/ormawadev/orgapi/internal/pagination"
)

// User is one listing entry: the member's public profile plus the
// departments, periods and positions they are associated with.
type User struct {
	ID          string              `json:"id"`
	Name        *string             `json:"name"`
	Username    *string             `json:"username"`
	Image       *string             `json:"image"`
	Bio         *string             `json:"bio"`
	Departments []DepartmentSummary `json:"departments"`
	Periods     []PeriodSummary     `json:"periods"`
	Positions   []PositionSummary   `json:"positions"`
}

type DepartmentSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Acronym    string  `json:"acronym"`
	PeriodYear int     `json:"periodYear"`
	Image      *string `json:"image"`
}

type PeriodSummary struct {
	ID   string `json:"id"`
	Year int    `json:"year"`
	Name string `json:"name"`
}

// PositionSummary.DepartmentID is null for organization-wide positions.
type PositionSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	DepartmentID *string `json:"departmentId"`
}

// ListQuery carries the validated user listing parameters. Empty lists mean
// "no constraint"; supplied filters combine with AND.
type ListQuery struct {
	Page          pagination.Params
	OrderBy       string // "name" or "username"
	Order         string // "asc" or "desc"
	PeriodYears   []int
	DepartmentIDs []string
	PositionNames []string
}

type Repository interface {
	List(ctx context.Context, q ListQuery) ([]*User, error)
	Count(ctx context.Context, q ListQuery) (int64, error)
}
