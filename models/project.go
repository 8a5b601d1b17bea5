package models

import (
	"time"

	"gorm.io/gorm"
)

// Project statuses. Transitions between them are validated by the repository.
const (
	ProjectDraft     = "draft"
	ProjectActive    = "active"
	ProjectPaused    = "paused"
	ProjectCompleted = "completed"
	ProjectArchived  = "archived"
)

// Project is a client-owned unit of work with a status and a date range.
type Project struct {
	gorm.Model
	Code        string     `json:"code" gorm:"uniqueIndex;not null"`
	Name        string     `json:"name" gorm:"not null"`
	ClientID    uint       `json:"clientId" gorm:"not null;index"`
	Status      string     `json:"status" gorm:"default:draft"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Description string     `json:"description"`

	Client      *Client             `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Assignments []ProjectAssignment `json:"assignments,omitempty" gorm:"foreignKey:ProjectID"`
}

// ProjectAssignment links an employee to a project with a role and an
// allocation percentage.
type ProjectAssignment struct {
	gorm.Model
	ProjectID  uint   `json:"projectId" gorm:"not null;index:idx_project_employee,unique"`
	EmployeeID uint   `json:"employeeId" gorm:"not null;index:idx_project_employee,unique"`
	Role       string `json:"role"`
	Allocation int    `json:"allocation" gorm:"default:100"`

	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

// ProjectInput carries the validated request body for create/update.
type ProjectInput struct {
	Code        string     `json:"code" binding:"required,max=32"`
	Name        string     `json:"name" binding:"required,max=255"`
	ClientID    uint       `json:"clientId" binding:"required"`
	Status      string     `json:"status" binding:"omitempty,oneof=draft active paused completed archived"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Description string     `json:"description"`
}

// AssignmentInput carries the body for assigning an employee to a project.
type AssignmentInput struct {
	EmployeeID uint   `json:"employeeId" binding:"required"`
	Role       string `json:"role"`
	Allocation int    `json:"allocation" binding:"omitempty,min=1,max=100"`
}

// ProjectStats aggregates hours and headcount for one project.
type ProjectStats struct {
	ProjectID     uint    `json:"projectId"`
	PlannedHours  float64 `json:"plannedHours"`
	ActualHours   float64 `json:"actualHours"`
	Headcount     int64   `json:"headcount"`
	ScheduleCount int64   `json:"scheduleCount"`
}
