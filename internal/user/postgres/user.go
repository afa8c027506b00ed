package postgres

import (
	"context"
	"fmt"

	"github.com/ormawadev/orgapi/internal/aggregate"
	"github.com/ormawadev/orgapi/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository using GORM.
//
// The three many-to-many joins multiply rows per user (departments x
// periods x positions), so the page window is selected over distinct user
// ids first and the wide join runs only for that id set. The fold dedupes
// child entries that the join cross-product repeats.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

type joinRow struct {
	ID       string
	Name     *string
	Username *string
	Image    *string
	Bio      *string

	DepartmentID         *string
	DepartmentName       *string
	DepartmentAcronym    *string
	DepartmentPeriodYear *int
	DepartmentImage      *string

	PeriodID        *string
	PeriodYearValue *int
	PeriodName      *string

	PositionID           *string
	PositionName         *string
	PositionDepartmentID *string
}

// accum tracks which child ids were already appended for one user.
type accum struct {
	user user.User

	seenDepartments map[string]struct{}
	seenPeriods     map[string]struct{}
	seenPositions   map[string]struct{}
}

func (r *UserRepository) List(ctx context.Context, q user.ListQuery) ([]*user.User, error) {
	type pageKey struct {
		ID string
	}

	var keys []pageKey
	err := r.joined(r.db.WithContext(ctx).Table("users"), q).
		Select("DISTINCT users.id, users.name, users.username").
		Order(orderExpr(q)).
		Limit(q.Page.Limit).
		Offset(q.Page.Offset()).
		Scan(&keys).Error
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []*user.User{}, nil
	}

	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = k.ID
	}

	var rows []joinRow
	err = r.joined(r.db.WithContext(ctx).Table("users"), q).
		Select(`users.id, users.name, users.username, users.image, users.bio,
			departments.id AS department_id, departments.name AS department_name,
			departments.acronym AS department_acronym, departments.period_year AS department_period_year,
			departments.image AS department_image,
			periods.id AS period_id, periods.year AS period_year_value, periods.name AS period_name,
			positions.id AS position_id, positions.name AS position_name,
			positions.department_id AS position_department_id`).
		Where("users.id IN ?", ids).
		Order(orderExpr(q)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grouped := aggregate.Fold(rows,
		func(row joinRow) string { return row.ID },
		newAccum,
		appendChildren,
	)

	users := make([]*user.User, len(grouped))
	for i, a := range grouped {
		users[i] = &a.user
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context, q user.ListQuery) (int64, error) {
	var total int64
	err := r.joined(r.db.WithContext(ctx).Table("users"), q).
		Distinct("users.id").
		Count(&total).Error
	return total, err
}

// joined attaches the association joins and the optional filters. All joins
// are LEFT so a user with no associations still lists; each filter narrows
// the joined rows, which also scopes that association's child array to the
// matched rows.
func (r *UserRepository) joined(tx *gorm.DB, q user.ListQuery) *gorm.DB {
	tx = tx.
		Joins(`LEFT JOIN "_DepartmentToUser" dtu ON dtu.user_id = users.id`).
		Joins("LEFT JOIN departments ON departments.id = dtu.department_id").
		Joins(`LEFT JOIN "_PositionToUser" ptu ON ptu.user_id = users.id`).
		Joins("LEFT JOIN positions ON positions.id = ptu.position_id").
		Joins(`LEFT JOIN "_PeriodToUser" peu ON peu.user_id = users.id`).
		Joins("LEFT JOIN periods ON periods.id = peu.period_id")

	if len(q.PeriodYears) > 0 {
		tx = tx.Where("periods.year IN ?", q.PeriodYears)
	}
	if len(q.DepartmentIDs) > 0 {
		tx = tx.Where("departments.id IN ?", q.DepartmentIDs)
	}
	if len(q.PositionNames) > 0 {
		tx = tx.Where("positions.name IN ?", q.PositionNames)
	}
	return tx
}

func orderExpr(q user.ListQuery) string {
	field := "name"
	if q.OrderBy == "username" {
		field = "username"
	}
	dir := "ASC"
	if q.Order == "desc" {
		dir = "DESC"
	}
	return fmt.Sprintf("users.%s %s, users.id ASC", field, dir)
}

func newAccum(row joinRow) *accum {
	return &accum{
		user: user.User{
			ID:          row.ID,
			Name:        row.Name,
			Username:    row.Username,
			Image:       row.Image,
			Bio:         row.Bio,
			Departments: []user.DepartmentSummary{},
			Periods:     []user.PeriodSummary{},
			Positions:   []user.PositionSummary{},
		},
		seenDepartments: make(map[string]struct{}),
		seenPeriods:     make(map[string]struct{}),
		seenPositions:   make(map[string]struct{}),
	}
}

func appendChildren(a *accum, row joinRow) {
	if row.DepartmentID != nil {
		if _, seen := a.seenDepartments[*row.DepartmentID]; !seen {
			a.seenDepartments[*row.DepartmentID] = struct{}{}
			a.user.Departments = append(a.user.Departments, user.DepartmentSummary{
				ID:         *row.DepartmentID,
				Name:       derefString(row.DepartmentName),
				Acronym:    derefString(row.DepartmentAcronym),
				PeriodYear: derefInt(row.DepartmentPeriodYear),
				Image:      row.DepartmentImage,
			})
		}
	}

	if row.PeriodID != nil {
		if _, seen := a.seenPeriods[*row.PeriodID]; !seen {
			a.seenPeriods[*row.PeriodID] = struct{}{}
			a.user.Periods = append(a.user.Periods, user.PeriodSummary{
				ID:   *row.PeriodID,
				Year: derefInt(row.PeriodYearValue),
				Name: derefString(row.PeriodName),
			})
		}
	}

	if row.PositionID != nil {
		if _, seen := a.seenPositions[*row.PositionID]; !seen {
			a.seenPositions[*row.PositionID] = struct{}{}
			a.user.Positions = append(a.user.Positions, user.PositionSummary{
				ID:           *row.PositionID,
				Name:         derefString(row.PositionName),
				DepartmentID: row.PositionDepartmentID,
			})
		}
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
