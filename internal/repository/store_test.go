package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"planline/models"
)

// setupTestStore opens an in-memory SQLite database with the full schema.
func setupTestStore(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Employee{},
		&models.Project{},
		&models.ProjectAssignment{},
		&models.Team{},
		&models.TeamMember{},
		&models.Schedule{},
		&models.Workload{},
		&models.Vacation{},
		&models.Alert{},
	)
	require.NoError(t, err)

	return New(db)
}

var fixtureSeq int

// testClient inserts a client with a unique code.
func testClient(t *testing.T, r *Repository) *models.Client {
	t.Helper()
	fixtureSeq++
	client, err := r.CreateClient(models.ClientInput{
		Code: fmt.Sprintf("CL-%03d", fixtureSeq),
		Name: fmt.Sprintf("Client %d", fixtureSeq),
	})
	require.NoError(t, err)
	return client
}

// testEmployee inserts an active employee with default capacity.
func testEmployee(t *testing.T, r *Repository) *models.Employee {
	t.Helper()
	fixtureSeq++
	employee, err := r.CreateEmployee(models.EmployeeInput{
		Code:      fmt.Sprintf("EMP-%03d", fixtureSeq),
		FirstName: "Test",
		LastName:  fmt.Sprintf("Employee%d", fixtureSeq),
		Email:     fmt.Sprintf("employee%d@example.com", fixtureSeq),
	})
	require.NoError(t, err)
	return employee
}

// testProject inserts an active project for the given client.
func testProject(t *testing.T, r *Repository, clientID uint) *models.Project {
	t.Helper()
	fixtureSeq++
	project, err := r.CreateProject(models.ProjectInput{
		Code:     fmt.Sprintf("PRJ-%03d", fixtureSeq),
		Name:     fmt.Sprintf("Project %d", fixtureSeq),
		ClientID: clientID,
		Status:   models.ProjectActive,
	})
	require.NoError(t, err)
	return project
}

// testTeam inserts a team without a lead.
func testTeam(t *testing.T, r *Repository) *models.Team {
	t.Helper()
	fixtureSeq++
	team, err := r.CreateTeam(models.TeamInput{
		Name: fmt.Sprintf("Team %d", fixtureSeq),
	})
	require.NoError(t, err)
	return team
}

// testUser inserts a user with the given role.
func testUser(t *testing.T, r *Repository, role string) *models.User {
	t.Helper()
	fixtureSeq++
	user, err := r.CreateUser(models.UserInput{
		Login:    fmt.Sprintf("user%d", fixtureSeq),
		Password: "test-password",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

// monday returns the Monday of the week containing the given date.
func monday(t time.Time) time.Time {
	t = day(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// date is shorthand for a UTC midnight timestamp.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPageNormalize(t *testing.T) {
	p := Page{Number: 0, Size: 0}.Normalize()
	require.Equal(t, 1, p.Number)
	require.Equal(t, DefaultPageSize, p.Size)

	p = Page{Number: 3, Size: 1000}.Normalize()
	require.Equal(t, MaxPageSize, p.Size)
	require.Equal(t, 2*MaxPageSize, p.Offset())
}

func TestWeekStart(t *testing.T) {
	// 2026-08-26 is a Wednesday.
	require.Equal(t, date(2026, time.August, 24), weekStart(date(2026, time.August, 26)))
	// A Monday maps to itself.
	require.Equal(t, date(2026, time.August, 24), weekStart(date(2026, time.August, 24)))
}
