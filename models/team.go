package models

import "gorm.io/gorm"

// Team is a named group of employees with an optional lead.
type Team struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	LeadID      *uint  `json:"leadId"`

	Members []TeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID"`
}

// TeamMember links an employee to a team.
type TeamMember struct {
	gorm.Model
	TeamID     uint   `json:"teamId" gorm:"not null;index:idx_team_employee,unique"`
	EmployeeID uint   `json:"employeeId" gorm:"not null;index:idx_team_employee,unique"`
	Role       string `json:"role"`

	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

// TeamInput carries the validated request body for create/update.
type TeamInput struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	LeadID      *uint  `json:"leadId"`
}

// TeamMemberInput carries the body for adding a member.
type TeamMemberInput struct {
	EmployeeID uint   `json:"employeeId" binding:"required"`
	Role       string `json:"role"`
}

// TeamCapacity is the summed weekly capacity of a team's members.
type TeamCapacity struct {
	TeamID        uint  `json:"teamId"`
	MemberCount   int64 `json:"memberCount"`
	WeeklyCapacity int64 `json:"weeklyCapacity"`
}
