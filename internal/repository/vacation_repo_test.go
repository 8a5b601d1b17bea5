package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"planline/models"
)

func TestCreateVacationValidation(t *testing.T) {
	r := setupTestStore(t)

	employee := testEmployee(t, r)

	created, err := r.CreateVacation(models.VacationInput{
		EmployeeID: employee.ID,
		StartDate:  date(2026, time.August, 3),
		EndDate:    date(2026, time.August, 7),
	})
	require.NoError(t, err)
	require.Equal(t, models.VacationPending, created.Status)
	require.Equal(t, models.VacationAnnual, created.Kind)
	require.Equal(t, 5, created.Days())

	_, err = r.CreateVacation(models.VacationInput{
		EmployeeID: employee.ID,
		StartDate:  date(2026, time.September, 10),
		EndDate:    date(2026, time.September, 1),
	})
	require.ErrorIs(t, err, ErrInvalid)

	_, err = r.CreateVacation(models.VacationInput{
		EmployeeID: 9999,
		StartDate:  date(2026, time.August, 3),
		EndDate:    date(2026, time.August, 7),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVacationOverlap(t *testing.T) {
	r := setupTestStore(t)

	employee := testEmployee(t, r)

	first, err := r.CreateVacation(models.VacationInput{
		EmployeeID: employee.ID,
		StartDate:  date(2026, time.August, 10),
		EndDate:    date(2026, time.August, 14),
	})
	require.NoError(t, err)

	// A pending vacation already blocks the range.
	_, err = r.CreateVacation(models.VacationInput{
		EmployeeID: employee.ID,
		StartDate:  date(2026, time.August, 13),
		EndDate:    date(2026, time.August, 20),
	})
	require.ErrorIs(t, err, ErrConflict)

	// A rejected vacation frees the range.
	admin := testUser(t, r, models.RoleAdmin)
	_, err = r.DecideVacation(first.ID, models.VacationRejected, admin.ID)
	require.NoError(t, err)

	_, err = r.CreateVacation(models.VacationInput{
		EmployeeID: employee.ID,
		StartDate:  date(2026, time.August, 13),
		EndDate:    date(2026, time.August, 20),
	})
	require.NoError(t, err)

	// Another employee is not affected.
	other := testEmployee(t, r)
	_, err = r.CreateVacation(models.VacationInput{
		EmployeeID: other.ID,
		StartDate:  date(2026, time.August, 10),
		EndDate:    date(2026, time.August, 14),
	})
	require.NoError(t, err)
}

func TestVacationDecisionFlow(t *testing.T) {
	r := setupTestStore(t)

	employee := testEmployee(t, r)
	admin := testUser(t, r, models.RoleAdmin)

	vacation, err := r.CreateVacation(models.VacationInput{
		EmployeeID: employee.ID,
		StartDate:  date(2026, time.October, 5),
		EndDate:    date(2026, time.October, 9),
	})
	require.NoError(t, err)

	approved, err := r.DecideVacation(vacation.ID, models.VacationApproved, admin.ID)
	require.NoError(t, err)
	require.Equal(t, models.VacationApproved, approved.Status)
	require.NotNil(t, approved.DecidedBy)
	require.Equal(t, admin.ID, *approved.DecidedBy)
	require.NotNil(t, approved.DecidedAt)

	// Approve twice is a conflict.
	_, err = r.DecideVacation(vacation.ID, models.VacationApproved, admin.ID)
	require.ErrorIs(t, err, ErrConflict)

	// Approved vacations cannot be edited or deleted.
	_, err = r.UpdateVacation(vacation.ID, models.VacationInput{
		EmployeeID: employee.ID,
		StartDate:  date(2026, time.October, 5),
		EndDate:    date(2026, time.October, 12),
	})
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, r.DeleteVacation(vacation.ID), ErrConflict)

	// Cancel works on an approved vacation.
	cancelled, err := r.DecideVacation(vacation.ID, models.VacationCancelled, admin.ID)
	require.NoError(t, err)
	require.Equal(t, models.VacationCancelled, cancelled.Status)

	// Cancelled is terminal.
	_, err = r.DecideVacation(vacation.ID, models.VacationApproved, admin.ID)
	require.ErrorIs(t, err, ErrConflict)
}

func TestUpdateVacationValidatesEmployee(t *testing.T) {
	r := setupTestStore(t)

	employee := testEmployee(t, r)
	vacation, err := r.CreateVacation(models.VacationInput{
		EmployeeID: employee.ID,
		StartDate:  date(2026, time.September, 7),
		EndDate:    date(2026, time.September, 11),
	})
	require.NoError(t, err)

	// Re-pointing a pending request at a missing employee is rejected.
	_, err = r.UpdateVacation(vacation.ID, models.VacationInput{
		EmployeeID: 9999,
		StartDate:  vacation.StartDate,
		EndDate:    vacation.EndDate,
	})
	require.ErrorIs(t, err, ErrNotFound)

	got, err := r.GetVacation(vacation.ID)
	require.NoError(t, err)
	require.Equal(t, employee.ID, got.EmployeeID)

	// Moving it to another existing employee works.
	other := testEmployee(t, r)
	moved, err := r.UpdateVacation(vacation.ID, models.VacationInput{
		EmployeeID: other.ID,
		StartDate:  vacation.StartDate,
		EndDate:    vacation.EndDate,
	})
	require.NoError(t, err)
	require.Equal(t, other.ID, moved.EmployeeID)
}

func TestDeletePendingVacation(t *testing.T) {
	r := setupTestStore(t)

	employee := testEmployee(t, r)
	vacation, err := r.CreateVacation(models.VacationInput{
		EmployeeID: employee.ID,
		StartDate:  date(2026, time.November, 2),
		EndDate:    date(2026, time.November, 6),
	})
	require.NoError(t, err)

	require.NoError(t, r.DeleteVacation(vacation.ID))
	_, err = r.GetVacation(vacation.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVacationDaysTakenClipsYear(t *testing.T) {
	r := setupTestStore(t)

	employee := testEmployee(t, r)
	admin := testUser(t, r, models.RoleAdmin)

	// Five days fully inside the year.
	inside, err := r.CreateVacation(models.VacationInput{
		EmployeeID: employee.ID,
		StartDate:  date(2026, time.June, 1),
		EndDate:    date(2026, time.June, 5),
	})
	require.NoError(t, err)
	_, err = r.DecideVacation(inside.ID, models.VacationApproved, admin.ID)
	require.NoError(t, err)

	// Crosses into 2027: only Dec 28..31 count for 2026.
	crossing, err := r.CreateVacation(models.VacationInput{
		EmployeeID: employee.ID,
		StartDate:  date(2026, time.December, 28),
		EndDate:    date(2027, time.January, 4),
	})
	require.NoError(t, err)
	_, err = r.DecideVacation(crossing.ID, models.VacationApproved, admin.ID)
	require.NoError(t, err)

	// Pending requests do not count.
	_, err = r.CreateVacation(models.VacationInput{
		EmployeeID: employee.ID,
		StartDate:  date(2026, time.July, 6),
		EndDate:    date(2026, time.July, 10),
	})
	require.NoError(t, err)

	taken, err := r.VacationDaysTaken(employee.ID, 2026)
	require.NoError(t, err)
	require.Equal(t, 9, taken.Days)

	next, err := r.VacationDaysTaken(employee.ID, 2027)
	require.NoError(t, err)
	require.Equal(t, 4, next.Days)
}

func TestListVacationsFilters(t *testing.T) {
	r := setupTestStore(t)

	employee := testEmployee(t, r)
	other := testEmployee(t, r)
	admin := testUser(t, r, models.RoleAdmin)

	v1, err := r.CreateVacation(models.VacationInput{
		EmployeeID: employee.ID,
		StartDate:  date(2026, time.March, 2),
		EndDate:    date(2026, time.March, 6),
	})
	require.NoError(t, err)
	_, err = r.DecideVacation(v1.ID, models.VacationApproved, admin.ID)
	require.NoError(t, err)

	_, err = r.CreateVacation(models.VacationInput{
		EmployeeID: other.ID,
		StartDate:  date(2026, time.March, 9),
		EndDate:    date(2026, time.March, 13),
	})
	require.NoError(t, err)

	approved, total, err := r.ListVacations(Page{}, VacationFilter{Status: models.VacationApproved})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, v1.ID, approved[0].ID)

	byEmployee, total, err := r.ListVacations(Page{}, VacationFilter{EmployeeID: other.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, other.ID, byEmployee[0].EmployeeID)
}
