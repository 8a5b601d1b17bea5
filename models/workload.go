package models

import (
	"time"

	"gorm.io/gorm"
)

// Workload is the planned vs actual hours of one employee on one project for
// one ISO week, keyed by the Monday of that week.
type Workload struct {
	gorm.Model
	EmployeeID   uint      `json:"employeeId" gorm:"not null;index:idx_workload_key,unique"`
	ProjectID    uint      `json:"projectId" gorm:"not null;index:idx_workload_key,unique"`
	WeekStart    time.Time `json:"weekStart" gorm:"not null;index:idx_workload_key,unique"`
	PlannedHours float64   `json:"plannedHours"`
	ActualHours  float64   `json:"actualHours"`
	Notes        string    `json:"notes"`

	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	Project  *Project  `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

// WorkloadInput carries the validated request body for upsert.
type WorkloadInput struct {
	EmployeeID   uint      `json:"employeeId" binding:"required"`
	ProjectID    uint      `json:"projectId" binding:"required"`
	WeekStart    time.Time `json:"weekStart" binding:"required"`
	PlannedHours float64   `json:"plannedHours" binding:"min=0,max=168"`
	ActualHours  float64   `json:"actualHours" binding:"min=0,max=168"`
	Notes        string    `json:"notes"`
}

// WeeklyTotal is the summed planned/actual hours of one employee for one week
// across all projects.
type WeeklyTotal struct {
	EmployeeID   uint      `json:"employeeId"`
	WeekStart    time.Time `json:"weekStart"`
	PlannedHours float64   `json:"plannedHours"`
	ActualHours  float64   `json:"actualHours"`
}

// Overallocation is a week where an employee's planned hours exceed capacity.
type Overallocation struct {
	EmployeeID   uint      `json:"employeeId"`
	WeekStart    time.Time `json:"weekStart"`
	PlannedHours float64   `json:"plannedHours"`
	Capacity     int       `json:"capacity"`
}
