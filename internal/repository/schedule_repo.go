package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"planline/models"
)

func (r *Repository) CreateSchedule(in models.ScheduleInput) (*models.Schedule, error) {
	var created *models.Schedule
	err := r.db.Transaction(func(tx *gorm.DB) error {
		schedule, err := createScheduleTx(tx, in, 0)
		if err != nil {
			return err
		}
		created = schedule
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Repository) GetSchedule(id uint) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := r.db.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("schedule %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting schedule %d: %w", id, err)
	}
	return &schedule, nil
}

func (r *Repository) ListSchedules(p Page, f ScheduleFilter) ([]models.Schedule, int64, error) {
	query := r.db.Model(&models.Schedule{})
	if f.EmployeeID != 0 {
		query = query.Where("employee_id = ?", f.EmployeeID)
	}
	if f.ProjectID != 0 {
		query = query.Where("project_id = ?", f.ProjectID)
	}
	if f.From != nil {
		query = query.Where("date >= ?", day(*f.From))
	}
	if f.To != nil {
		query = query.Where("date <= ?", day(*f.To))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting schedules: %w", err)
	}

	schedules := make([]models.Schedule, 0)
	if err := query.Scopes(paginate(p)).Order("date, start_time").Find(&schedules).Error; err != nil {
		return nil, 0, fmt.Errorf("listing schedules: %w", err)
	}
	return schedules, total, nil
}

func (r *Repository) UpdateSchedule(id uint, in models.ScheduleInput) (*models.Schedule, error) {
	schedule, err := r.GetSchedule(id)
	if err != nil {
		return nil, err
	}

	var updated *models.Schedule
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := validateScheduleInput(tx, in, id); err != nil {
			return err
		}
		schedule.EmployeeID = in.EmployeeID
		schedule.ProjectID = in.ProjectID
		schedule.Date = day(in.Date)
		schedule.StartTime = in.StartTime
		schedule.EndTime = in.EndTime
		if in.Status != "" {
			schedule.Status = in.Status
		}
		schedule.Notes = in.Notes
		if err := tx.Save(schedule).Error; err != nil {
			return fmt.Errorf("updating schedule %d: %w", id, err)
		}
		updated = schedule
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository) DeleteSchedule(id uint) error {
	if _, err := r.GetSchedule(id); err != nil {
		return err
	}
	if err := r.db.Delete(&models.Schedule{}, id).Error; err != nil {
		return fmt.Errorf("deleting schedule %d: %w", id, err)
	}
	return nil
}

// CreateWeekSchedules creates a batch of entries atomically. If any entry
// fails validation the whole batch is rolled back.
func (r *Repository) CreateWeekSchedules(in models.WeekScheduleInput) ([]models.Schedule, error) {
	created := make([]models.Schedule, 0, len(in.Entries))
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i, entry := range in.Entries {
			schedule, err := createScheduleTx(tx, entry, 0)
			if err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
			created = append(created, *schedule)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ScheduledHours sums scheduled hours per employee per day over [from, to].
func (r *Repository) ScheduledHours(employeeID uint, from, to time.Time) ([]models.DailyHours, error) {
	if _, err := r.GetEmployee(employeeID); err != nil {
		return nil, err
	}

	schedules := make([]models.Schedule, 0)
	err := r.db.
		Where("employee_id = ? AND date >= ? AND date <= ?", employeeID, day(from), day(to)).
		Order("date").
		Find(&schedules).Error
	if err != nil {
		return nil, fmt.Errorf("listing schedules for employee %d: %w", employeeID, err)
	}

	// Hour math happens in Go; the block length is derived from HH:MM pairs
	// which SQL cannot subtract portably across the drivers in use.
	byDay := make(map[time.Time]float64)
	order := make([]time.Time, 0)
	for _, s := range schedules {
		d := day(s.Date)
		if _, seen := byDay[d]; !seen {
			order = append(order, d)
		}
		byDay[d] += s.Hours()
	}

	result := make([]models.DailyHours, 0, len(order))
	for _, d := range order {
		result = append(result, models.DailyHours{EmployeeID: employeeID, Date: d, Hours: byDay[d]})
	}
	return result, nil
}

// createScheduleTx validates and inserts one schedule entry inside tx.
func createScheduleTx(tx *gorm.DB, in models.ScheduleInput, selfID uint) (*models.Schedule, error) {
	if err := validateScheduleInput(tx, in, selfID); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.ScheduleTentative
	}
	schedule := models.Schedule{
		EmployeeID: in.EmployeeID,
		ProjectID:  in.ProjectID,
		Date:       day(in.Date),
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Status:     status,
		Notes:      in.Notes,
	}
	if err := tx.Create(&schedule).Error; err != nil {
		return nil, fmt.Errorf("creating schedule: %w", err)
	}
	return &schedule, nil
}

// validateScheduleInput enforces the schedule business rules: parseable
// times, end after start, active employee, no overlap with another block of
// the same employee on the same date, and no block on an approved vacation
// day.
func validateScheduleInput(tx *gorm.DB, in models.ScheduleInput, selfID uint) error {
	start, err := time.Parse("15:04", in.StartTime)
	if err != nil {
		return fmt.Errorf("start time %q: %w", in.StartTime, ErrInvalid)
	}
	end, err := time.Parse("15:04", in.EndTime)
	if err != nil {
		return fmt.Errorf("end time %q: %w", in.EndTime, ErrInvalid)
	}
	if !end.After(start) {
		return fmt.Errorf("schedule ends at or before start: %w", ErrInvalid)
	}

	var employee models.Employee
	if err := tx.First(&employee, in.EmployeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("employee %d: %w", in.EmployeeID, ErrNotFound)
		}
		return fmt.Errorf("getting employee %d: %w", in.EmployeeID, err)
	}
	if employee.IsActive != nil && !*employee.IsActive {
		return fmt.Errorf("employee %d is inactive: %w", in.EmployeeID, ErrConflict)
	}

	if in.ProjectID != nil {
		var count int64
		if err := tx.Model(&models.Project{}).Where("id = ?", *in.ProjectID).Count(&count).Error; err != nil {
			return fmt.Errorf("checking project %d: %w", *in.ProjectID, err)
		}
		if count == 0 {
			return fmt.Errorf("project %d: %w", *in.ProjectID, ErrNotFound)
		}
	}

	date := day(in.Date)

	// Overlap against other blocks of the same employee on the same date.
	// HH:MM strings are zero-padded so the comparison is safe in SQL.
	var overlapping int64
	err = tx.Model(&models.Schedule{}).
		Where("employee_id = ? AND date = ? AND id <> ?", in.EmployeeID, date, selfID).
		Where("start_time < ? AND end_time > ?", in.EndTime, in.StartTime).
		Count(&overlapping).Error
	if err != nil {
		return fmt.Errorf("checking schedule overlap: %w", err)
	}
	if overlapping > 0 {
		return fmt.Errorf("employee %d already scheduled on %s: %w",
			in.EmployeeID, date.Format("2006-01-02"), ErrConflict)
	}

	var onVacation int64
	err = tx.Model(&models.Vacation{}).
		Where("employee_id = ? AND status = ?", in.EmployeeID, models.VacationApproved).
		Where("start_date <= ? AND end_date >= ?", date, date).
		Count(&onVacation).Error
	if err != nil {
		return fmt.Errorf("checking vacations: %w", err)
	}
	if onVacation > 0 {
		return fmt.Errorf("employee %d is on vacation on %s: %w",
			in.EmployeeID, date.Format("2006-01-02"), ErrConflict)
	}
	return nil
}
