package models

import (
	"time"

	"gorm.io/gorm"
)

// Schedule statuses.
const (
	ScheduleTentative = "tentative"
	ScheduleConfirmed = "confirmed"
	ScheduleDone      = "done"
)

// Schedule is a planned block of work for one employee on one date.
// StartTime and EndTime are wall-clock times in "HH:MM"; zero-padded so they
// compare lexically.
type Schedule struct {
	gorm.Model
	EmployeeID uint      `json:"employeeId" gorm:"not null;index"`
	ProjectID  *uint     `json:"projectId" gorm:"index"`
	Date       time.Time `json:"date" gorm:"not null;index"`
	StartTime  string    `json:"startTime" gorm:"not null"`
	EndTime    string    `json:"endTime" gorm:"not null"`
	Status     string    `json:"status" gorm:"default:tentative"`
	Notes      string    `json:"notes"`

	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	Project  *Project  `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

// Hours returns the block length in hours, 0 if the times do not parse.
func (s *Schedule) Hours() float64 {
	start, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse("15:04", s.EndTime)
	if err != nil {
		return 0
	}
	return end.Sub(start).Hours()
}

// ScheduleInput carries the validated request body for create/update.
type ScheduleInput struct {
	EmployeeID uint      `json:"employeeId" binding:"required"`
	ProjectID  *uint     `json:"projectId"`
	Date       time.Time `json:"date" binding:"required"`
	StartTime  string    `json:"startTime" binding:"required"`
	EndTime    string    `json:"endTime" binding:"required"`
	Status     string    `json:"status" binding:"omitempty,oneof=tentative confirmed done"`
	Notes      string    `json:"notes"`
}

// WeekScheduleInput carries a whole week of entries, created atomically.
type WeekScheduleInput struct {
	Entries []ScheduleInput `json:"entries" binding:"required,min=1,dive"`
}

// DailyHours reports scheduled hours for one employee on one date.
type DailyHours struct {
	EmployeeID uint      `json:"employeeId"`
	Date       time.Time `json:"date"`
	Hours      float64   `json:"hours"`
}
