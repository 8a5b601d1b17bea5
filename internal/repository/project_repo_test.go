package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"planline/models"
)

func TestCreateProjectValidation(t *testing.T) {
	r := setupTestStore(t)

	client := testClient(t, r)

	created, err := r.CreateProject(models.ProjectInput{
		Code:     "NEW",
		Name:     "New project",
		ClientID: client.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.ProjectDraft, created.Status)

	_, err = r.CreateProject(models.ProjectInput{
		Code:     "NEW",
		Name:     "Duplicate code",
		ClientID: client.ID,
	})
	require.ErrorIs(t, err, ErrDuplicate)

	_, err = r.CreateProject(models.ProjectInput{
		Code:     "MISSING",
		Name:     "No such client",
		ClientID: 9999,
	})
	require.ErrorIs(t, err, ErrNotFound)

	start := date(2026, time.June, 10)
	end := date(2026, time.June, 1)
	_, err = r.CreateProject(models.ProjectInput{
		Code:      "DATES",
		Name:      "Backwards dates",
		ClientID:  client.ID,
		StartDate: &start,
		EndDate:   &end,
	})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestCreateProjectInitialStatus(t *testing.T) {
	r := setupTestStore(t)

	client := testClient(t, r)

	active, err := r.CreateProject(models.ProjectInput{
		Code:     "HOT",
		Name:     "Starts active",
		ClientID: client.ID,
		Status:   models.ProjectActive,
	})
	require.NoError(t, err)
	require.Equal(t, models.ProjectActive, active.Status)

	// A project cannot be born past the lifecycle's entry states.
	for _, status := range []string{models.ProjectPaused, models.ProjectCompleted, models.ProjectArchived} {
		_, err := r.CreateProject(models.ProjectInput{
			Code:     "BORN-" + status,
			Name:     "Wrong entry state",
			ClientID: client.ID,
			Status:   status,
		})
		require.ErrorIs(t, err, ErrInvalid, "status %s", status)
	}
}

func TestCreateProjectInactiveClient(t *testing.T) {
	r := setupTestStore(t)

	inactive := false
	client, err := r.CreateClient(models.ClientInput{
		Code:     "DORMANT",
		Name:     "Dormant client",
		IsActive: &inactive,
	})
	require.NoError(t, err)

	_, err = r.CreateProject(models.ProjectInput{
		Code:     "STALLED",
		Name:     "Should not start",
		ClientID: client.ID,
	})
	require.ErrorIs(t, err, ErrConflict)
}

func TestProjectStatusTransitions(t *testing.T) {
	r := setupTestStore(t)

	client := testClient(t, r)
	project, err := r.CreateProject(models.ProjectInput{
		Code:     "FLOW",
		Name:     "Lifecycle",
		ClientID: client.ID,
	})
	require.NoError(t, err)

	set := func(status string) (*models.Project, error) {
		return r.UpdateProject(project.ID, models.ProjectInput{
			Code:     project.Code,
			Name:     project.Name,
			ClientID: client.ID,
			Status:   status,
		})
	}

	// draft -> completed skips activation.
	_, err = set(models.ProjectCompleted)
	require.ErrorIs(t, err, ErrConflict)

	updated, err := set(models.ProjectActive)
	require.NoError(t, err)
	require.Equal(t, models.ProjectActive, updated.Status)

	updated, err = set(models.ProjectPaused)
	require.NoError(t, err)
	require.Equal(t, models.ProjectPaused, updated.Status)

	// paused -> completed must go through active.
	_, err = set(models.ProjectCompleted)
	require.ErrorIs(t, err, ErrConflict)

	// Archiving is allowed from any status.
	updated, err = set(models.ProjectArchived)
	require.NoError(t, err)
	require.Equal(t, models.ProjectArchived, updated.Status)

	// Archived is terminal.
	_, err = set(models.ProjectActive)
	require.ErrorIs(t, err, ErrConflict)
}

func TestUpdateProjectInactiveClient(t *testing.T) {
	r := setupTestStore(t)

	client := testClient(t, r)
	project := testProject(t, r, client.ID)

	inactive := false
	dormant, err := r.CreateClient(models.ClientInput{
		Code:     "SLEEPER",
		Name:     "Dormant client",
		IsActive: &inactive,
	})
	require.NoError(t, err)

	// Reassigning to an inactive client is rejected like creation is.
	_, err = r.UpdateProject(project.ID, models.ProjectInput{
		Code:     project.Code,
		Name:     project.Name,
		ClientID: dormant.ID,
		Status:   project.Status,
	})
	require.ErrorIs(t, err, ErrConflict)

	got, err := r.GetProject(project.ID)
	require.NoError(t, err)
	require.Equal(t, client.ID, got.ClientID)
}

func TestListProjectsFilters(t *testing.T) {
	r := setupTestStore(t)

	client := testClient(t, r)
	other := testClient(t, r)
	testProject(t, r, client.ID)
	testProject(t, r, client.ID)
	testProject(t, r, other.ID)

	byClient, total, err := r.ListProjects(Page{}, ProjectFilter{ClientID: client.ID})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, byClient, 2)

	start := date(2026, time.January, 1)
	end := date(2026, time.March, 31)
	_, err = r.CreateProject(models.ProjectInput{
		Code:      "Q1",
		Name:      "First quarter",
		ClientID:  client.ID,
		Status:    models.ProjectActive,
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)

	from := date(2026, time.February, 1)
	to := date(2026, time.February, 28)
	inWindow, _, err := r.ListProjects(Page{}, ProjectFilter{From: &from, To: &to})
	require.NoError(t, err)
	// Open-ended projects overlap every window, so all four match.
	require.Len(t, inWindow, 4)

	from = date(2027, time.January, 1)
	to = date(2027, time.December, 31)
	nextYear, _, err := r.ListProjects(Page{}, ProjectFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, nextYear, 3)
}

func TestAssignAndUnassignEmployee(t *testing.T) {
	r := setupTestStore(t)

	client := testClient(t, r)
	project := testProject(t, r, client.ID)
	employee := testEmployee(t, r)

	assignment, err := r.AssignEmployee(project.ID, models.AssignmentInput{
		EmployeeID: employee.ID,
		Role:       "developer",
	})
	require.NoError(t, err)
	require.Equal(t, 100, assignment.Allocation)

	_, err = r.AssignEmployee(project.ID, models.AssignmentInput{EmployeeID: employee.ID})
	require.ErrorIs(t, err, ErrDuplicate)

	assignments, err := r.ProjectAssignments(project.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.NotNil(t, assignments[0].Employee)

	require.NoError(t, r.UnassignEmployee(project.ID, employee.ID))
	err = r.UnassignEmployee(project.ID, employee.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAssignInactiveEmployee(t *testing.T) {
	r := setupTestStore(t)

	client := testClient(t, r)
	project := testProject(t, r, client.ID)

	inactive := false
	employee, err := r.CreateEmployee(models.EmployeeInput{
		Code:      "E-GONE",
		FirstName: "Left",
		LastName:  "Company",
		Email:     "left@example.com",
		IsActive:  &inactive,
	})
	require.NoError(t, err)

	_, err = r.AssignEmployee(project.ID, models.AssignmentInput{EmployeeID: employee.ID})
	require.ErrorIs(t, err, ErrConflict)
}

func TestProjectStats(t *testing.T) {
	r := setupTestStore(t)

	client := testClient(t, r)
	project := testProject(t, r, client.ID)
	employee := testEmployee(t, r)

	_, err := r.AssignEmployee(project.ID, models.AssignmentInput{EmployeeID: employee.ID})
	require.NoError(t, err)

	week := monday(date(2026, time.April, 6))
	_, err = r.UpsertWorkload(models.WorkloadInput{
		EmployeeID:   employee.ID,
		ProjectID:    project.ID,
		WeekStart:    week,
		PlannedHours: 32,
		ActualHours:  28,
	})
	require.NoError(t, err)

	_, err = r.CreateSchedule(models.ScheduleInput{
		EmployeeID: employee.ID,
		ProjectID:  &project.ID,
		Date:       week,
		StartTime:  "09:00",
		EndTime:    "17:00",
	})
	require.NoError(t, err)

	stats, err := r.ProjectStats(project.ID)
	require.NoError(t, err)
	require.InDelta(t, 32, stats.PlannedHours, 0.01)
	require.InDelta(t, 28, stats.ActualHours, 0.01)
	require.EqualValues(t, 1, stats.Headcount)
	require.EqualValues(t, 1, stats.ScheduleCount)
}
