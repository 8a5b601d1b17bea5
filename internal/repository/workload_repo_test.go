package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"planline/models"
)

func TestUpsertWorkload(t *testing.T) {
	r := setupTestStore(t)

	employee := testEmployee(t, r)
	client := testClient(t, r)
	project := testProject(t, r, client.ID)
	week := monday(date(2026, time.February, 2))

	created, err := r.UpsertWorkload(models.WorkloadInput{
		EmployeeID:   employee.ID,
		ProjectID:    project.ID,
		WeekStart:    week,
		PlannedHours: 24,
	})
	require.NoError(t, err)
	require.True(t, created.WeekStart.Equal(week))

	// Same key replaces instead of duplicating.
	updated, err := r.UpsertWorkload(models.WorkloadInput{
		EmployeeID:   employee.ID,
		ProjectID:    project.ID,
		WeekStart:    week,
		PlannedHours: 16,
		ActualHours:  12,
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.InDelta(t, 16, updated.PlannedHours, 0.01)

	_, total, err := r.ListWorkloads(Page{}, WorkloadFilter{EmployeeID: employee.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
}

func TestUpsertWorkloadRejectsNonMonday(t *testing.T) {
	r := setupTestStore(t)

	employee := testEmployee(t, r)
	client := testClient(t, r)
	project := testProject(t, r, client.ID)

	// 2026-02-04 is a Wednesday.
	_, err := r.UpsertWorkload(models.WorkloadInput{
		EmployeeID:   employee.ID,
		ProjectID:    project.ID,
		WeekStart:    date(2026, time.February, 4),
		PlannedHours: 8,
	})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestUpsertWorkloadHoursBounds(t *testing.T) {
	r := setupTestStore(t)

	employee := testEmployee(t, r)
	client := testClient(t, r)
	project := testProject(t, r, client.ID)
	week := monday(date(2026, time.February, 9))

	_, err := r.UpsertWorkload(models.WorkloadInput{
		EmployeeID:   employee.ID,
		ProjectID:    project.ID,
		WeekStart:    week,
		PlannedHours: 169,
	})
	require.ErrorIs(t, err, ErrInvalid)

	_, err = r.UpsertWorkload(models.WorkloadInput{
		EmployeeID:   employee.ID,
		ProjectID:    project.ID,
		WeekStart:    week,
		PlannedHours: -1,
	})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestWeeklyTotals(t *testing.T) {
	r := setupTestStore(t)

	employee := testEmployee(t, r)
	client := testClient(t, r)
	first := testProject(t, r, client.ID)
	second := testProject(t, r, client.ID)
	week := monday(date(2026, time.February, 16))

	_, err := r.UpsertWorkload(models.WorkloadInput{
		EmployeeID:   employee.ID,
		ProjectID:    first.ID,
		WeekStart:    week,
		PlannedHours: 20,
		ActualHours:  18,
	})
	require.NoError(t, err)
	_, err = r.UpsertWorkload(models.WorkloadInput{
		EmployeeID:   employee.ID,
		ProjectID:    second.ID,
		WeekStart:    week,
		PlannedHours: 15,
		ActualHours:  17,
	})
	require.NoError(t, err)

	totals, err := r.WeeklyTotals(employee.ID, week, week)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	require.InDelta(t, 35, totals[0].PlannedHours, 0.01)
	require.InDelta(t, 35, totals[0].ActualHours, 0.01)
}

func TestOverallocations(t *testing.T) {
	r := setupTestStore(t)

	client := testClient(t, r)
	first := testProject(t, r, client.ID)
	second := testProject(t, r, client.ID)
	week := monday(date(2026, time.February, 23))

	overbooked := testEmployee(t, r)
	fine := testEmployee(t, r)

	// 25 + 25 = 50 against a capacity of 40.
	for _, project := range []*models.Project{first, second} {
		_, err := r.UpsertWorkload(models.WorkloadInput{
			EmployeeID:   overbooked.ID,
			ProjectID:    project.ID,
			WeekStart:    week,
			PlannedHours: 25,
		})
		require.NoError(t, err)
	}
	_, err := r.UpsertWorkload(models.WorkloadInput{
		EmployeeID:   fine.ID,
		ProjectID:    first.ID,
		WeekStart:    week,
		PlannedHours: 40,
	})
	require.NoError(t, err)

	rows, err := r.Overallocations(week, week)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, overbooked.ID, rows[0].EmployeeID)
	require.InDelta(t, 50, rows[0].PlannedHours, 0.01)
	require.Equal(t, 40, rows[0].Capacity)
}

func TestDeleteWorkload(t *testing.T) {
	r := setupTestStore(t)

	employee := testEmployee(t, r)
	client := testClient(t, r)
	project := testProject(t, r, client.ID)

	workload, err := r.UpsertWorkload(models.WorkloadInput{
		EmployeeID:   employee.ID,
		ProjectID:    project.ID,
		WeekStart:    monday(date(2026, time.March, 16)),
		PlannedHours: 8,
	})
	require.NoError(t, err)

	require.NoError(t, r.DeleteWorkload(workload.ID))
	require.ErrorIs(t, r.DeleteWorkload(workload.ID), ErrNotFound)
}
