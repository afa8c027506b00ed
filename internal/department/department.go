package department

import (
	"context"

	"github.com/ormawadev/orgapi/internal/pagination"
)

// Department is one listing entry: the department's own fields plus its
// nested period (nullable, one-to-one via period_year) and programs.
type Department struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Acronym     string           `json:"acronym"`
	Image       *string          `json:"image"`
	Description *string          `json:"description"`
	Type        string           `json:"type"`
	PeriodYear  int              `json:"periodYear"`
	Period      *PeriodSummary   `json:"period"`
	Programs    []ProgramSummary `json:"programs"`
}

type PeriodSummary struct {
	ID   string `json:"id"`
	Year int    `json:"year"`
	Name string `json:"name"`
}

type ProgramSummary struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// ListQuery carries the validated filters for a department listing. Zero
// values mean "no constraint"; supplied filters combine with AND.
type ListQuery struct {
	Page    pagination.Params
	Type    string // normalized to "BE" / "DP", empty when absent
	Year    *int
	Acronym string // lowercased substring match
}

// Repository pages over distinct departments, never over raw joined rows.
type Repository interface {
	List(ctx context.Context, q ListQuery) ([]*Department, error)
	Count(ctx context.Context, q ListQuery) (int64, error)
}
