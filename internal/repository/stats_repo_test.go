package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"planline/models"
)

func TestDashboardStats(t *testing.T) {
	r := setupTestStore(t)

	now := date(2026, time.June, 17)
	week := monday(now)

	client := testClient(t, r)
	project := testProject(t, r, client.ID)
	employee := testEmployee(t, r)

	inactive := false
	_, err := r.CreateEmployee(models.EmployeeInput{
		Code:      "E-OFF",
		FirstName: "Not",
		LastName:  "Counted",
		Email:     "off@example.com",
		IsActive:  &inactive,
	})
	require.NoError(t, err)

	_, err = r.UpsertWorkload(models.WorkloadInput{
		EmployeeID:   employee.ID,
		ProjectID:    project.ID,
		WeekStart:    week,
		PlannedHours: 32,
	})
	require.NoError(t, err)

	// A workload in another week stays out of the weekly sum.
	_, err = r.UpsertWorkload(models.WorkloadInput{
		EmployeeID:   employee.ID,
		ProjectID:    project.ID,
		WeekStart:    week.AddDate(0, 0, 7),
		PlannedHours: 40,
	})
	require.NoError(t, err)

	_, err = r.CreateVacation(models.VacationInput{
		EmployeeID: employee.ID,
		StartDate:  now.AddDate(0, 1, 0),
		EndDate:    now.AddDate(0, 1, 4),
	})
	require.NoError(t, err)

	stats, err := r.DashboardStats(now)
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.ActiveClients)
	require.EqualValues(t, 1, stats.ActiveEmployees)
	require.EqualValues(t, 1, stats.ActiveProjects)
	require.EqualValues(t, 0, stats.OpenAlerts)
	require.EqualValues(t, 1, stats.PendingVacations)
	require.InDelta(t, 32, stats.WeekPlannedHours, 0.01)
}

func TestDashboardStatsEmpty(t *testing.T) {
	r := setupTestStore(t)

	stats, err := r.DashboardStats(time.Now())
	require.NoError(t, err)
	require.EqualValues(t, 0, stats.ActiveClients)
	require.InDelta(t, 0, stats.WeekPlannedHours, 0.01)
}
