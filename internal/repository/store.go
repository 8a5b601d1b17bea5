// Package repository implements the data access layer behind a single
// facade. Each entity gets its own file holding the CRUD, query, validation,
// statistics and relationship methods for that entity; the Repository struct
// is the one receiver for all of them.
package repository

import (
	"time"

	"gorm.io/gorm"

	"planline/models"
)

// Store is the unified interface for all data operations. It is composed of
// smaller, entity-specific interfaces so consumers can depend on just the
// slice they need.
type Store interface {
	ClientStore
	EmployeeStore
	ProjectStore
	TeamStore
	ScheduleStore
	WorkloadStore
	VacationStore
	AlertStore
	UserStore
	StatsStore
}

// ClientStore covers client CRUD, queries and per-client statistics.
type ClientStore interface {
	CreateClient(in models.ClientInput) (*models.Client, error)
	GetClient(id uint) (*models.Client, error)
	GetClientByCode(code string) (*models.Client, error)
	ListClients(p Page, activeOnly bool) ([]models.Client, int64, error)
	UpdateClient(id uint, in models.ClientInput) (*models.Client, error)
	DeleteClient(id uint) error
	ClientProjects(id uint) ([]models.Project, error)
	ClientProjectStats(id uint) (*models.ClientProjectStats, error)
}

// EmployeeFilter narrows employee listings.
type EmployeeFilter struct {
	ActiveOnly bool
	TeamID     uint
	Skill      string
}

// EmployeeStore covers employee CRUD, queries, relationships and statistics.
type EmployeeStore interface {
	CreateEmployee(in models.EmployeeInput) (*models.Employee, error)
	GetEmployee(id uint) (*models.Employee, error)
	GetEmployeeByCode(code string) (*models.Employee, error)
	ListEmployees(p Page, f EmployeeFilter) ([]models.Employee, int64, error)
	UpdateEmployee(id uint, in models.EmployeeInput) (*models.Employee, error)
	DeleteEmployee(id uint) error
	EmployeeTeams(id uint) ([]models.Team, error)
	EmployeeAssignments(id uint) ([]models.ProjectAssignment, error)
	EmployeeUtilization(id uint, from, to time.Time) (*models.EmployeeUtilization, error)
}

// ProjectFilter narrows project listings. From/To select projects whose date
// range overlaps the given range.
type ProjectFilter struct {
	ClientID uint
	Status   string
	From     *time.Time
	To       *time.Time
}

// ProjectStore covers project CRUD, status transitions, assignments and
// statistics.
type ProjectStore interface {
	CreateProject(in models.ProjectInput) (*models.Project, error)
	GetProject(id uint) (*models.Project, error)
	ListProjects(p Page, f ProjectFilter) ([]models.Project, int64, error)
	UpdateProject(id uint, in models.ProjectInput) (*models.Project, error)
	DeleteProject(id uint) error
	AssignEmployee(projectID uint, in models.AssignmentInput) (*models.ProjectAssignment, error)
	UnassignEmployee(projectID, employeeID uint) error
	ProjectAssignments(projectID uint) ([]models.ProjectAssignment, error)
	ProjectStats(projectID uint) (*models.ProjectStats, error)
}

// TeamStore covers team CRUD, membership and capacity.
type TeamStore interface {
	CreateTeam(in models.TeamInput) (*models.Team, error)
	GetTeam(id uint) (*models.Team, error)
	ListTeams(p Page) ([]models.Team, int64, error)
	UpdateTeam(id uint, in models.TeamInput) (*models.Team, error)
	DeleteTeam(id uint) error
	AddTeamMember(teamID uint, in models.TeamMemberInput) (*models.TeamMember, error)
	RemoveTeamMember(teamID, employeeID uint) error
	TeamMembers(teamID uint) ([]models.TeamMember, error)
	TeamCapacity(teamID uint) (*models.TeamCapacity, error)
}

// ScheduleFilter narrows schedule listings.
type ScheduleFilter struct {
	EmployeeID uint
	ProjectID  uint
	From       *time.Time
	To         *time.Time
}

// ScheduleStore covers schedule CRUD, conflict validation and per-day hours.
type ScheduleStore interface {
	CreateSchedule(in models.ScheduleInput) (*models.Schedule, error)
	GetSchedule(id uint) (*models.Schedule, error)
	ListSchedules(p Page, f ScheduleFilter) ([]models.Schedule, int64, error)
	UpdateSchedule(id uint, in models.ScheduleInput) (*models.Schedule, error)
	DeleteSchedule(id uint) error
	CreateWeekSchedules(in models.WeekScheduleInput) ([]models.Schedule, error)
	ScheduledHours(employeeID uint, from, to time.Time) ([]models.DailyHours, error)
}

// WorkloadFilter narrows workload listings by employee, project and week
// range.
type WorkloadFilter struct {
	EmployeeID uint
	ProjectID  uint
	From       *time.Time
	To         *time.Time
}

// WorkloadStore covers workload upserts, queries and overallocation checks.
type WorkloadStore interface {
	UpsertWorkload(in models.WorkloadInput) (*models.Workload, error)
	GetWorkload(id uint) (*models.Workload, error)
	ListWorkloads(p Page, f WorkloadFilter) ([]models.Workload, int64, error)
	DeleteWorkload(id uint) error
	WeeklyTotals(employeeID uint, from, to time.Time) ([]models.WeeklyTotal, error)
	Overallocations(from, to time.Time) ([]models.Overallocation, error)
}

// VacationFilter narrows vacation listings.
type VacationFilter struct {
	EmployeeID uint
	Status     string
	From       *time.Time
	To         *time.Time
}

// VacationStore covers vacation CRUD, overlap validation, decisions and
// statistics.
type VacationStore interface {
	CreateVacation(in models.VacationInput) (*models.Vacation, error)
	GetVacation(id uint) (*models.Vacation, error)
	ListVacations(p Page, f VacationFilter) ([]models.Vacation, int64, error)
	UpdateVacation(id uint, in models.VacationInput) (*models.Vacation, error)
	DecideVacation(id uint, status string, deciderID uint) (*models.Vacation, error)
	DeleteVacation(id uint) error
	VacationDaysTaken(employeeID uint, year int) (*models.VacationDaysTaken, error)
	UpcomingVacations(limit int) ([]models.Vacation, error)
}

// AlertFilter narrows alert listings. Acked nil means both.
type AlertFilter struct {
	Kind       string
	EmployeeID uint
	Acked      *bool
}

// AlertStore covers alert listing, acknowledgement and the scan.
type AlertStore interface {
	ListAlerts(p Page, f AlertFilter) ([]models.Alert, int64, error)
	AcknowledgeAlert(id, userID uint) (*models.Alert, error)
	ScanAlerts(now time.Time) (*models.ScanResult, error)
}

// UserStore covers API account CRUD.
type UserStore interface {
	CreateUser(in models.UserInput) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	GetUserByLogin(login string) (*models.User, error)
	ListUsers(p Page) ([]models.User, int64, error)
	UpdateUser(id uint, in models.UserInput) (*models.User, error)
	DeleteUser(id uint) error
}

// StatsStore covers the cross-entity dashboard aggregates.
type StatsStore interface {
	DashboardStats(now time.Time) (*models.DashboardStats, error)
}

// Repository is the facade implementing Store on top of a gorm connection.
type Repository struct {
	db *gorm.DB
}

var _ Store = (*Repository)(nil)

// New wraps an open gorm connection in the repository facade.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Page is offset pagination, normalized to the same bounds the HTTP layer
// advertises.
type Page struct {
	Number int
	Size   int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize clamps the page number and size into valid bounds.
func (p Page) Normalize() Page {
	if p.Number <= 0 {
		p.Number = 1
	}
	switch {
	case p.Size > MaxPageSize:
		p.Size = MaxPageSize
	case p.Size <= 0:
		p.Size = DefaultPageSize
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Page) Offset() int {
	p = p.Normalize()
	return (p.Number - 1) * p.Size
}

// paginate is a gorm scope applying the normalized page.
func paginate(p Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		n := p.Normalize()
		return db.Offset(p.Offset()).Limit(n.Size)
	}
}

// day strips the time-of-day component, keeping dates comparable across
// drivers.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
