package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"planline/models"
)

func (r *Repository) CreateVacation(in models.VacationInput) (*models.Vacation, error) {
	if _, err := r.GetEmployee(in.EmployeeID); err != nil {
		return nil, err
	}
	if err := r.checkVacationRange(in, 0); err != nil {
		return nil, err
	}

	kind := in.Kind
	if kind == "" {
		kind = models.VacationAnnual
	}
	vacation := models.Vacation{
		EmployeeID: in.EmployeeID,
		StartDate:  day(in.StartDate),
		EndDate:    day(in.EndDate),
		Kind:       kind,
		Status:     models.VacationPending,
		Reason:     in.Reason,
	}
	if err := r.db.Create(&vacation).Error; err != nil {
		return nil, fmt.Errorf("creating vacation: %w", err)
	}
	return &vacation, nil
}

func (r *Repository) GetVacation(id uint) (*models.Vacation, error) {
	var vacation models.Vacation
	if err := r.db.First(&vacation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vacation %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting vacation %d: %w", id, err)
	}
	return &vacation, nil
}

func (r *Repository) ListVacations(p Page, f VacationFilter) ([]models.Vacation, int64, error) {
	query := r.db.Model(&models.Vacation{})
	if f.EmployeeID != 0 {
		query = query.Where("employee_id = ?", f.EmployeeID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.From != nil && f.To != nil {
		query = query.Where("start_date <= ? AND end_date >= ?", day(*f.To), day(*f.From))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting vacations: %w", err)
	}

	vacations := make([]models.Vacation, 0)
	if err := query.Scopes(paginate(p)).Order("start_date").Find(&vacations).Error; err != nil {
		return nil, 0, fmt.Errorf("listing vacations: %w", err)
	}
	return vacations, total, nil
}

// UpdateVacation edits a request. Only pending vacations can be edited.
func (r *Repository) UpdateVacation(id uint, in models.VacationInput) (*models.Vacation, error) {
	vacation, err := r.GetVacation(id)
	if err != nil {
		return nil, err
	}
	if vacation.Status != models.VacationPending {
		return nil, fmt.Errorf("vacation %d is %s, only pending is editable: %w",
			id, vacation.Status, ErrConflict)
	}
	if in.EmployeeID != vacation.EmployeeID {
		if _, err := r.GetEmployee(in.EmployeeID); err != nil {
			return nil, err
		}
	}
	if err := r.checkVacationRange(in, id); err != nil {
		return nil, err
	}

	vacation.EmployeeID = in.EmployeeID
	vacation.StartDate = day(in.StartDate)
	vacation.EndDate = day(in.EndDate)
	if in.Kind != "" {
		vacation.Kind = in.Kind
	}
	vacation.Reason = in.Reason
	if err := r.db.Save(vacation).Error; err != nil {
		return nil, fmt.Errorf("updating vacation %d: %w", id, err)
	}
	return vacation, nil
}

// DecideVacation approves, rejects or cancels a request. Approve/reject are
// valid from pending only; cancel also works on an approved vacation.
func (r *Repository) DecideVacation(id uint, status string, deciderID uint) (*models.Vacation, error) {
	vacation, err := r.GetVacation(id)
	if err != nil {
		return nil, err
	}

	valid := false
	switch status {
	case models.VacationApproved, models.VacationRejected:
		valid = vacation.Status == models.VacationPending
	case models.VacationCancelled:
		valid = vacation.Status == models.VacationPending || vacation.Status == models.VacationApproved
	}
	if !valid {
		return nil, fmt.Errorf("vacation %d: %s -> %s: %w", id, vacation.Status, status, ErrConflict)
	}

	now := time.Now()
	vacation.Status = status
	vacation.DecidedBy = &deciderID
	vacation.DecidedAt = &now
	if err := r.db.Save(vacation).Error; err != nil {
		return nil, fmt.Errorf("deciding vacation %d: %w", id, err)
	}
	return vacation, nil
}

// DeleteVacation removes a request. Only pending vacations can be deleted;
// anything decided stays on record.
func (r *Repository) DeleteVacation(id uint) error {
	vacation, err := r.GetVacation(id)
	if err != nil {
		return err
	}
	if vacation.Status != models.VacationPending {
		return fmt.Errorf("vacation %d is %s, only pending is deletable: %w",
			id, vacation.Status, ErrConflict)
	}
	if err := r.db.Delete(&models.Vacation{}, id).Error; err != nil {
		return fmt.Errorf("deleting vacation %d: %w", id, err)
	}
	return nil
}

// VacationDaysTaken counts approved vacation days falling inside one
// calendar year, clipping ranges that cross the year boundary.
func (r *Repository) VacationDaysTaken(employeeID uint, year int) (*models.VacationDaysTaken, error) {
	if _, err := r.GetEmployee(employeeID); err != nil {
		return nil, err
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	vacations := make([]models.Vacation, 0)
	err := r.db.
		Where("employee_id = ? AND status = ?", employeeID, models.VacationApproved).
		Where("start_date <= ? AND end_date >= ?", yearEnd, yearStart).
		Find(&vacations).Error
	if err != nil {
		return nil, fmt.Errorf("listing vacations for employee %d: %w", employeeID, err)
	}

	days := 0
	for _, v := range vacations {
		start, end := v.StartDate, v.EndDate
		if start.Before(yearStart) {
			start = yearStart
		}
		if end.After(yearEnd) {
			end = yearEnd
		}
		days += int(end.Sub(start).Hours()/24) + 1
	}
	return &models.VacationDaysTaken{EmployeeID: employeeID, Year: year, Days: days}, nil
}

// UpcomingVacations lists approved vacations that have not ended yet.
func (r *Repository) UpcomingVacations(limit int) ([]models.Vacation, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	vacations := make([]models.Vacation, 0)
	err := r.db.Preload("Employee").
		Where("status = ? AND end_date >= ?", models.VacationApproved, day(time.Now())).
		Order("start_date").
		Limit(limit).
		Find(&vacations).Error
	if err != nil {
		return nil, fmt.Errorf("listing upcoming vacations: %w", err)
	}
	return vacations, nil
}

// checkVacationRange enforces date order and rejects overlap with the
// employee's other pending or approved vacations.
func (r *Repository) checkVacationRange(in models.VacationInput, selfID uint) error {
	start, end := day(in.StartDate), day(in.EndDate)
	if end.Before(start) {
		return fmt.Errorf("vacation ends before it starts: %w", ErrInvalid)
	}

	var overlapping int64
	err := r.db.Model(&models.Vacation{}).
		Where("employee_id = ? AND id <> ?", in.EmployeeID, selfID).
		Where("status IN ?", []string{models.VacationPending, models.VacationApproved}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&overlapping).Error
	if err != nil {
		return fmt.Errorf("checking vacation overlap: %w", err)
	}
	if overlapping > 0 {
		return fmt.Errorf("employee %d already has a vacation in %s..%s: %w",
			in.EmployeeID, start.Format("2006-01-02"), end.Format("2006-01-02"), ErrConflict)
	}
	return nil
}
