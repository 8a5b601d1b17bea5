package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee is a person that can be scheduled, assigned and granted vacations.
type Employee struct {
	gorm.Model
	Code       string     `json:"code" gorm:"uniqueIndex;not null"`
	FirstName  string     `json:"firstName" gorm:"not null"`
	LastName   string     `json:"lastName" gorm:"not null"`
	Email      string     `json:"email" gorm:"uniqueIndex;not null"`
	Position   string     `json:"position"`
	Skills     string     `json:"skills"`
	HireDate   *time.Time `json:"hireDate"`
	IsActive   *bool      `json:"isActive" gorm:"default:true"`

	// WeeklyCapacity is the plannable hours per week, bounds enforced by the
	// repository layer.
	WeeklyCapacity int `json:"weeklyCapacity" gorm:"default:40"`
}

// FullName returns the display name.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeInput carries the validated request body for create/update.
type EmployeeInput struct {
	Code           string     `json:"code" binding:"required,max=32"`
	FirstName      string     `json:"firstName" binding:"required,max=100"`
	LastName       string     `json:"lastName" binding:"required,max=100"`
	Email          string     `json:"email" binding:"required,email"`
	Position       string     `json:"position"`
	Skills         string     `json:"skills"`
	HireDate       *time.Time `json:"hireDate"`
	WeeklyCapacity int        `json:"weeklyCapacity"`
	IsActive       *bool      `json:"isActive"`
}

// EmployeeUtilization reports planned hours against capacity for a week span.
type EmployeeUtilization struct {
	EmployeeID   uint    `json:"employeeId"`
	Weeks        int     `json:"weeks"`
	PlannedHours float64 `json:"plannedHours"`
	Capacity     float64 `json:"capacity"`
	Utilization  float64 `json:"utilization"`
}
