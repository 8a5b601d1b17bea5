package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"planline/models"
)

// UpsertWorkload creates or replaces the workload for the (employee, project,
// week) key. The week key must be a Monday; a wrong weekday is rejected
// rather than shifted so the caller learns about the bug.
func (r *Repository) UpsertWorkload(in models.WorkloadInput) (*models.Workload, error) {
	week := day(in.WeekStart)
	if week.Weekday() != time.Monday {
		return nil, fmt.Errorf("week start %s is a %s, not a Monday: %w",
			week.Format("2006-01-02"), week.Weekday(), ErrInvalid)
	}
	if in.PlannedHours < 0 || in.PlannedHours > 168 || in.ActualHours < 0 || in.ActualHours > 168 {
		return nil, fmt.Errorf("hours outside 0..168: %w", ErrInvalid)
	}
	if _, err := r.GetEmployee(in.EmployeeID); err != nil {
		return nil, err
	}
	if _, err := r.GetProject(in.ProjectID); err != nil {
		return nil, err
	}

	var workload models.Workload
	err := r.db.
		Where("employee_id = ? AND project_id = ? AND week_start = ?",
			in.EmployeeID, in.ProjectID, week).
		First(&workload).Error
	switch {
	case err == nil:
		workload.PlannedHours = in.PlannedHours
		workload.ActualHours = in.ActualHours
		workload.Notes = in.Notes
		if err := r.db.Save(&workload).Error; err != nil {
			return nil, fmt.Errorf("updating workload %d: %w", workload.ID, err)
		}
		return &workload, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		workload = models.Workload{
			EmployeeID:   in.EmployeeID,
			ProjectID:    in.ProjectID,
			WeekStart:    week,
			PlannedHours: in.PlannedHours,
			ActualHours:  in.ActualHours,
			Notes:        in.Notes,
		}
		if err := r.db.Create(&workload).Error; err != nil {
			return nil, fmt.Errorf("creating workload: %w", err)
		}
		return &workload, nil
	default:
		return nil, fmt.Errorf("looking up workload: %w", err)
	}
}

func (r *Repository) GetWorkload(id uint) (*models.Workload, error) {
	var workload models.Workload
	if err := r.db.First(&workload, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("workload %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting workload %d: %w", id, err)
	}
	return &workload, nil
}

func (r *Repository) ListWorkloads(p Page, f WorkloadFilter) ([]models.Workload, int64, error) {
	query := r.db.Model(&models.Workload{})
	if f.EmployeeID != 0 {
		query = query.Where("employee_id = ?", f.EmployeeID)
	}
	if f.ProjectID != 0 {
		query = query.Where("project_id = ?", f.ProjectID)
	}
	if f.From != nil {
		query = query.Where("week_start >= ?", day(*f.From))
	}
	if f.To != nil {
		query = query.Where("week_start <= ?", day(*f.To))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting workloads: %w", err)
	}

	workloads := make([]models.Workload, 0)
	if err := query.Scopes(paginate(p)).Order("week_start, employee_id").Find(&workloads).Error; err != nil {
		return nil, 0, fmt.Errorf("listing workloads: %w", err)
	}
	return workloads, total, nil
}

func (r *Repository) DeleteWorkload(id uint) error {
	if _, err := r.GetWorkload(id); err != nil {
		return err
	}
	if err := r.db.Delete(&models.Workload{}, id).Error; err != nil {
		return fmt.Errorf("deleting workload %d: %w", id, err)
	}
	return nil
}

// WeeklyTotals sums one employee's planned/actual hours per week across all
// projects.
func (r *Repository) WeeklyTotals(employeeID uint, from, to time.Time) ([]models.WeeklyTotal, error) {
	if _, err := r.GetEmployee(employeeID); err != nil {
		return nil, err
	}

	totals := make([]models.WeeklyTotal, 0)
	err := r.db.Model(&models.Workload{}).
		Select("employee_id, week_start, SUM(planned_hours) as planned_hours, SUM(actual_hours) as actual_hours").
		Where("employee_id = ? AND week_start >= ? AND week_start <= ?", employeeID, day(from), day(to)).
		Group("employee_id, week_start").
		Order("week_start").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("summing weekly totals for employee %d: %w", employeeID, err)
	}
	return totals, nil
}

// Overallocations finds (employee, week) pairs whose summed planned hours
// exceed the employee's weekly capacity. Feeds the alert scan.
func (r *Repository) Overallocations(from, to time.Time) ([]models.Overallocation, error) {
	rows := make([]models.Overallocation, 0)
	err := r.db.Model(&models.Workload{}).
		Select("workloads.employee_id, workloads.week_start, SUM(workloads.planned_hours) as planned_hours, employees.weekly_capacity as capacity").
		Joins("JOIN employees ON employees.id = workloads.employee_id").
		Where("workloads.week_start >= ? AND workloads.week_start <= ?", day(from), day(to)).
		Group("workloads.employee_id, workloads.week_start, employees.weekly_capacity").
		Having("SUM(workloads.planned_hours) > employees.weekly_capacity").
		Order("workloads.week_start, workloads.employee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("finding overallocations: %w", err)
	}
	return rows, nil
}
