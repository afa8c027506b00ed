// Package org holds the persistence models for the organization schema:
// periods, departments, programs, positions and their user associations.
package org

import "time"

type Period struct {
	ID          string    `gorm:"primaryKey"`
	Logo        string    `gorm:"column:logo;not null"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description *string   `gorm:"column:description"`
	Year        int       `gorm:"column:year;uniqueIndex;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Period) TableName() string {
	return "periods"
}

// Department types: BE = Badan Eksekutif, DP = Dewan Perwakilan.
const (
	DepartmentTypeBE = "BE"
	DepartmentTypeDP = "DP"
)

type Department struct {
	ID          string    `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Acronym     string    `gorm:"column:acronym;not null"`
	Image       *string   `gorm:"column:image"`
	Description *string   `gorm:"column:description"`
	Type        string    `gorm:"column:type;not null;default:BE"`
	PeriodYear  int       `gorm:"column:period_year;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Department) TableName() string {
	return "departments"
}

type Program struct {
	ID           string `gorm:"primaryKey"`
	Content      string `gorm:"column:content;not null"`
	DepartmentID string `gorm:"column:department_id;not null"`
}

func (Program) TableName() string {
	return "programs"
}

// Position.DepartmentID is nullable: organization-wide roles such as
// "administrator" belong to no department.
type Position struct {
	ID           string    `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	DepartmentID *string   `gorm:"column:department_id"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Position) TableName() string {
	return "positions"
}

type DepartmentToUser struct {
	DepartmentID string `gorm:"column:department_id;not null;uniqueIndex:dept_user_unique"`
	UserID       string `gorm:"column:user_id;not null;uniqueIndex:dept_user_unique"`
}

func (DepartmentToUser) TableName() string {
	return "_DepartmentToUser"
}

type PeriodToUser struct {
	PeriodID string `gorm:"column:period_id;not null;uniqueIndex:period_user_unique"`
	UserID   string `gorm:"column:user_id;not null;uniqueIndex:period_user_unique"`
}

func (PeriodToUser) TableName() string {
	return "_PeriodToUser"
}

type PositionToUser struct {
	PositionID string `gorm:"column:position_id;not null;uniqueIndex:position_user_unique"`
	UserID     string `gorm:"column:user_id;not null;uniqueIndex:position_user_unique"`
}

func (PositionToUser) TableName() string {
	return "_PositionToUser"
}
