package postgres

import (
	"context"

	"github.com/ormawadev/orgapi/internal/aggregate"
	"github.com/ormawadev/orgapi/internal/core/datamodel/org"
	"github.com/ormawadev/orgapi/internal/department"
	"gorm.io/gorm"
)

// DepartmentRepository implements department.Repository using GORM.
//
// Listing is two-step: first a plain query selects the page of department
// ids at parent granularity, then a second query left-joins period and
// programs for exactly that id set. Paginating the joined rows directly
// would under-return departments whenever one has several programs on a
// page boundary.
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.Repository {
	return &DepartmentRepository{db: db}
}

// joinRow is one department x program pairing from the child-join query.
// Program columns are null when the department has no programs.
type joinRow struct {
	ID          string
	Name        string
	Acronym     string
	Image       *string
	Description *string
	Type        string
	PeriodYear  int

	PeriodID        *string
	PeriodYearValue *int
	PeriodName      *string

	ProgramID      *string
	ProgramContent *string
}

func (r *DepartmentRepository) List(ctx context.Context, q department.ListQuery) ([]*department.Department, error) {
	var ids []string
	err := applyFilters(r.db.WithContext(ctx).Model(&org.Department{}), q).
		Order("acronym ASC, id ASC").
		Limit(q.Page.Limit).
		Offset(q.Page.Offset()).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*department.Department{}, nil
	}

	var rows []joinRow
	err = r.db.WithContext(ctx).
		Table("departments").
		Select(`departments.id, departments.name, departments.acronym, departments.image,
			departments.description, departments.type, departments.period_year,
			periods.id AS period_id, periods.year AS period_year_value, periods.name AS period_name,
			programs.id AS program_id, programs.content AS program_content`).
		Joins("LEFT JOIN periods ON periods.year = departments.period_year").
		Joins("LEFT JOIN programs ON programs.department_id = departments.id").
		Where("departments.id IN ?", ids).
		Order("departments.acronym ASC, departments.id ASC, programs.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return aggregate.Fold(rows,
		func(row joinRow) string { return row.ID },
		newDepartment,
		appendProgram,
	), nil
}

func (r *DepartmentRepository) Count(ctx context.Context, q department.ListQuery) (int64, error) {
	var total int64
	err := applyFilters(r.db.WithContext(ctx).Model(&org.Department{}), q).
		Count(&total).Error
	return total, err
}

// applyFilters appends one predicate per supplied parameter; absent
// parameters impose no constraint.
func applyFilters(tx *gorm.DB, q department.ListQuery) *gorm.DB {
	if q.Type != "" {
		tx = tx.Where("departments.type = ?", q.Type)
	}
	if q.Year != nil {
		tx = tx.Where("departments.period_year = ?", *q.Year)
	}
	if q.Acronym != "" {
		tx = tx.Where("LOWER(departments.acronym) LIKE ?", "%"+q.Acronym+"%")
	}
	return tx
}

func newDepartment(row joinRow) *department.Department {
	d := &department.Department{
		ID:          row.ID,
		Name:        row.Name,
		Acronym:     row.Acronym,
		Image:       row.Image,
		Description: row.Description,
		Type:        row.Type,
		PeriodYear:  row.PeriodYear,
		Programs:    []department.ProgramSummary{},
	}
	if row.PeriodID != nil && row.PeriodYearValue != nil && row.PeriodName != nil {
		d.Period = &department.PeriodSummary{
			ID:   *row.PeriodID,
			Year: *row.PeriodYearValue,
			Name: *row.PeriodName,
		}
	}
	return d
}

func appendProgram(d *department.Department, row joinRow) {
	if row.ProgramID == nil || row.ProgramContent == nil {
		return
	}
	d.Programs = append(d.Programs, department.ProgramSummary{
		ID:      *row.ProgramID,
		Content: *row.ProgramContent,
	})
}
