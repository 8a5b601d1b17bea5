package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"planline/models"
)

// Scan window relative to "now": one week back catches freshly entered
// history, eight weeks ahead covers the planning horizon.
const (
	scanBack  = 7 * 24 * time.Hour
	scanAhead = 8 * 7 * 24 * time.Hour
)

func (r *Repository) ListAlerts(p Page, f AlertFilter) ([]models.Alert, int64, error) {
	query := r.db.Model(&models.Alert{})
	if f.Kind != "" {
		query = query.Where("kind = ?", f.Kind)
	}
	if f.EmployeeID != 0 {
		query = query.Where("employee_id = ?", f.EmployeeID)
	}
	if f.Acked != nil {
		if *f.Acked {
			query = query.Where("acked_at IS NOT NULL")
		} else {
			query = query.Where("acked_at IS NULL")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting alerts: %w", err)
	}

	alerts := make([]models.Alert, 0)
	if err := query.Scopes(paginate(p)).Order("last_seen_at DESC").Find(&alerts).Error; err != nil {
		return nil, 0, fmt.Errorf("listing alerts: %w", err)
	}
	return alerts, total, nil
}

// AcknowledgeAlert marks an alert as handled. Acknowledging twice is a
// conflict so clients notice racing acks.
func (r *Repository) AcknowledgeAlert(id, userID uint) (*models.Alert, error) {
	var alert models.Alert
	if err := r.db.First(&alert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("alert %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting alert %d: %w", id, err)
	}
	if alert.AckedAt != nil {
		return nil, fmt.Errorf("alert %d already acknowledged: %w", id, ErrConflict)
	}

	now := time.Now()
	alert.AckedAt = &now
	alert.AckedBy = &userID
	if err := r.db.Save(&alert).Error; err != nil {
		return nil, fmt.Errorf("acknowledging alert %d: %w", id, err)
	}
	return &alert, nil
}

// ScanAlerts inspects workloads, schedules, vacations and projects and
// writes alerts idempotently: an existing alert with the same fingerprint is
// refreshed instead of duplicated.
func (r *Repository) ScanAlerts(now time.Time) (*models.ScanResult, error) {
	from := now.Add(-scanBack)
	to := now.Add(scanAhead)

	result := models.ScanResult{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &Repository{db: tx}

		over, err := txRepo.Overallocations(from, to)
		if err != nil {
			return err
		}
		for _, o := range over {
			o := o
			fingerprint := fmt.Sprintf("%s:e%d:%s",
				models.AlertOverallocation, o.EmployeeID, o.WeekStart.Format("2006-01-02"))
			message := fmt.Sprintf("employee %d planned %.1fh in week of %s, capacity %dh",
				o.EmployeeID, o.PlannedHours, o.WeekStart.Format("2006-01-02"), o.Capacity)
			created, err := upsertAlert(tx, models.AlertOverallocation, fingerprint, message,
				&o.EmployeeID, nil, now)
			if err != nil {
				return err
			}
			tally(&result, created)
		}

		conflicts, err := vacationConflicts(tx, from, to)
		if err != nil {
			return err
		}
		for _, c := range conflicts {
			c := c
			fingerprint := fmt.Sprintf("%s:s%d", models.AlertVacationConflict, c.ID)
			message := fmt.Sprintf("schedule %d for employee %d on %s falls on an approved vacation",
				c.ID, c.EmployeeID, c.Date.Format("2006-01-02"))
			created, err := upsertAlert(tx, models.AlertVacationConflict, fingerprint, message,
				&c.EmployeeID, c.ProjectID, now)
			if err != nil {
				return err
			}
			tally(&result, created)
		}

		overdue := make([]models.Project, 0)
		err = tx.Where("status = ? AND end_date IS NOT NULL AND end_date < ?",
			models.ProjectActive, day(now)).Find(&overdue).Error
		if err != nil {
			return fmt.Errorf("finding overrun projects: %w", err)
		}
		for _, p := range overdue {
			p := p
			fingerprint := fmt.Sprintf("%s:p%d", models.AlertProjectOverrun, p.ID)
			message := fmt.Sprintf("project %s past its end date %s and still active",
				p.Code, p.EndDate.Format("2006-01-02"))
			created, err := upsertAlert(tx, models.AlertProjectOverrun, fingerprint, message,
				nil, &p.ID, now)
			if err != nil {
				return err
			}
			tally(&result, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// vacationConflicts finds schedule entries overlapping an approved vacation
// of the same employee.
func vacationConflicts(tx *gorm.DB, from, to time.Time) ([]models.Schedule, error) {
	schedules := make([]models.Schedule, 0)
	err := tx.Model(&models.Schedule{}).
		Joins("JOIN vacations ON vacations.employee_id = schedules.employee_id").
		Where("vacations.status = ?", models.VacationApproved).
		Where("vacations.deleted_at IS NULL").
		Where("schedules.date >= ? AND schedules.date <= ?", day(from), day(to)).
		Where("vacations.start_date <= schedules.date AND vacations.end_date >= schedules.date").
		Find(&schedules).Error
	if err != nil {
		return nil, fmt.Errorf("finding vacation conflicts: %w", err)
	}
	return schedules, nil
}

// upsertAlert inserts by fingerprint or refreshes the existing row. Returns
// true if a new alert was created.
func upsertAlert(tx *gorm.DB, kind, fingerprint, message string, employeeID, projectID *uint, now time.Time) (bool, error) {
	var existing models.Alert
	err := tx.Where("fingerprint = ?", fingerprint).First(&existing).Error
	switch {
	case err == nil:
		existing.Message = message
		existing.LastSeenAt = now
		if err := tx.Save(&existing).Error; err != nil {
			return false, fmt.Errorf("refreshing alert %s: %w", fingerprint, err)
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		alert := models.Alert{
			Kind:        kind,
			Fingerprint: fingerprint,
			Message:     message,
			EmployeeID:  employeeID,
			ProjectID:   projectID,
			LastSeenAt:  now,
		}
		if err := tx.Create(&alert).Error; err != nil {
			return false, fmt.Errorf("creating alert %s: %w", fingerprint, err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("looking up alert %s: %w", fingerprint, err)
	}
}

func tally(result *models.ScanResult, created bool) {
	if created {
		result.Created++
	} else {
		result.Refreshed++
	}
}
