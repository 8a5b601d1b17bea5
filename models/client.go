package models

import "gorm.io/gorm"

// Client is an organization that projects are planned for.
type Client struct {
	gorm.Model
	Code         string `json:"code" gorm:"uniqueIndex;not null"`
	Name         string `json:"name" gorm:"not null"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	Phone        string `json:"phone"`
	Notes        string `json:"notes"`
	IsActive     *bool  `json:"isActive" gorm:"default:true"`

	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:ClientID"`
}

// ClientInput carries the validated request body for create/update.
type ClientInput struct {
	Code         string `json:"code" binding:"required,max=32"`
	Name         string `json:"name" binding:"required,max=255"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email"`
	Phone        string `json:"phone"`
	Notes        string `json:"notes"`
	IsActive     *bool  `json:"isActive"`
}

// ClientProjectStats aggregates a client's projects by status.
type ClientProjectStats struct {
	ClientID  uint           `json:"clientId"`
	Total     int64          `json:"total"`
	ByStatus  map[string]int `json:"byStatus"`
}
