package models

import (
	"time"

	"gorm.io/gorm"
)

// Alert kinds produced by the scan.
const (
	AlertOverallocation   = "overallocation"
	AlertVacationConflict = "vacation_conflict"
	AlertProjectOverrun   = "project_overrun"
)

// Alert is a system-generated finding. Alerts are written idempotently: the
// fingerprint identifies the subject and period, and a rescan refreshes
// LastSeenAt instead of inserting a duplicate.
type Alert struct {
	gorm.Model
	Kind        string     `json:"kind" gorm:"not null;index"`
	Fingerprint string     `json:"fingerprint" gorm:"uniqueIndex;not null"`
	Message     string     `json:"message" gorm:"not null"`
	EmployeeID  *uint      `json:"employeeId" gorm:"index"`
	ProjectID   *uint      `json:"projectId" gorm:"index"`
	LastSeenAt  time.Time  `json:"lastSeenAt"`
	AckedAt     *time.Time `json:"ackedAt"`
	AckedBy     *uint      `json:"ackedBy"`

	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	Project  *Project  `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

// Acknowledged reports whether the alert has been acknowledged.
func (a *Alert) Acknowledged() bool {
	return a.AckedAt != nil
}

// ScanResult summarizes one alert scan run.
type ScanResult struct {
	Created   int `json:"created"`
	Refreshed int `json:"refreshed"`
}
