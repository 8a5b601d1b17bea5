package models

import (
	"time"

	"gorm.io/gorm"
)

// Vacation kinds and states.
const (
	VacationAnnual = "annual"
	VacationSick   = "sick"
	VacationUnpaid = "unpaid"
	VacationOther  = "other"

	VacationPending   = "pending"
	VacationApproved  = "approved"
	VacationRejected  = "rejected"
	VacationCancelled = "cancelled"
)

// Vacation is an absence range for one employee. Dates are inclusive.
type Vacation struct {
	gorm.Model
	EmployeeID uint       `json:"employeeId" gorm:"not null;index"`
	StartDate  time.Time  `json:"startDate" gorm:"not null"`
	EndDate    time.Time  `json:"endDate" gorm:"not null"`
	Kind       string     `json:"kind" gorm:"default:annual"`
	Status     string     `json:"status" gorm:"default:pending;index"`
	Reason     string     `json:"reason"`
	DecidedBy  *uint      `json:"decidedBy"`
	DecidedAt  *time.Time `json:"decidedAt"`

	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

// Days returns the inclusive length of the vacation in days.
func (v *Vacation) Days() int {
	return int(v.EndDate.Sub(v.StartDate).Hours()/24) + 1
}

// VacationInput carries the validated request body for create/update.
type VacationInput struct {
	EmployeeID uint      `json:"employeeId" binding:"required"`
	StartDate  time.Time `json:"startDate" binding:"required"`
	EndDate    time.Time `json:"endDate" binding:"required"`
	Kind       string    `json:"kind" binding:"omitempty,oneof=annual sick unpaid other"`
	Reason     string    `json:"reason"`
}

// VacationDecisionInput carries an approve/reject decision.
type VacationDecisionInput struct {
	Status string `json:"status" binding:"required,oneof=approved rejected cancelled"`
}

// VacationDaysTaken reports approved vacation days per employee for a year.
type VacationDaysTaken struct {
	EmployeeID uint `json:"employeeId"`
	Year       int  `json:"year"`
	Days       int  `json:"days"`
}
