package models

import "gorm.io/gorm"

// User roles. Role checks are done by the auth middleware; admin passes every
// check.
const (
	RoleAdmin   = "admin"
	RolePlanner = "planner"
	RoleViewer  = "viewer"
)

// User is an API account. Not to be confused with Employee: a user logs in,
// an employee is planned.
type User struct {
	gorm.Model
	Login        string `json:"login" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	FullName     string `json:"fullName"`
	Role         string `json:"role" gorm:"default:viewer"`
	IsActive     *bool  `json:"isActive" gorm:"default:true"`
}

// LoginInput carries the credentials for POST /auth/login.
type LoginInput struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserInput carries the validated request body for create/update.
type UserInput struct {
	Login    string `json:"login" binding:"required,max=64"`
	Password string `json:"password" binding:"omitempty,min=8"`
	FullName string `json:"fullName"`
	Role     string `json:"role" binding:"omitempty,oneof=admin planner viewer"`
	IsActive *bool  `json:"isActive"`
}
