package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"planline/models"
)

// Weekly capacity bounds. The upper bound mirrors what the workload layer
// will accept for a single week.
const (
	minWeeklyCapacity = 1
	maxWeeklyCapacity = 80
)

func (r *Repository) CreateEmployee(in models.EmployeeInput) (*models.Employee, error) {
	if err := r.checkEmployeeUniqueness(in.Code, in.Email, 0); err != nil {
		return nil, err
	}
	capacity, err := normalizeCapacity(in.WeeklyCapacity)
	if err != nil {
		return nil, err
	}

	employee := models.Employee{
		Code:           in.Code,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Position:       in.Position,
		Skills:         in.Skills,
		HireDate:       in.HireDate,
		WeeklyCapacity: capacity,
		IsActive:       in.IsActive,
	}
	if err := r.db.Create(&employee).Error; err != nil {
		return nil, fmt.Errorf("creating employee: %w", err)
	}
	return &employee, nil
}

func (r *Repository) GetEmployee(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("employee %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting employee %d: %w", id, err)
	}
	return &employee, nil
}

func (r *Repository) GetEmployeeByCode(code string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("code = ?", code).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("employee %q: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("getting employee %q: %w", code, err)
	}
	return &employee, nil
}

func (r *Repository) ListEmployees(p Page, f EmployeeFilter) ([]models.Employee, int64, error) {
	query := r.db.Model(&models.Employee{})
	if f.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if f.Skill != "" {
		query = query.Where("skills LIKE ?", "%"+f.Skill+"%")
	}
	if f.TeamID != 0 {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&models.TeamMember{}).Select("employee_id").Where("team_id = ?", f.TeamID),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting employees: %w", err)
	}

	employees := make([]models.Employee, 0)
	if err := query.Scopes(paginate(p)).Order("last_name, first_name").Find(&employees).Error; err != nil {
		return nil, 0, fmt.Errorf("listing employees: %w", err)
	}
	return employees, total, nil
}

func (r *Repository) UpdateEmployee(id uint, in models.EmployeeInput) (*models.Employee, error) {
	employee, err := r.GetEmployee(id)
	if err != nil {
		return nil, err
	}
	if err := r.checkEmployeeUniqueness(in.Code, in.Email, id); err != nil {
		return nil, err
	}
	capacity, err := normalizeCapacity(in.WeeklyCapacity)
	if err != nil {
		return nil, err
	}

	employee.Code = in.Code
	employee.FirstName = in.FirstName
	employee.LastName = in.LastName
	employee.Email = in.Email
	employee.Position = in.Position
	employee.Skills = in.Skills
	employee.HireDate = in.HireDate
	employee.WeeklyCapacity = capacity
	if in.IsActive != nil {
		employee.IsActive = in.IsActive
	}
	if err := r.db.Save(employee).Error; err != nil {
		return nil, fmt.Errorf("updating employee %d: %w", id, err)
	}
	return employee, nil
}

func (r *Repository) DeleteEmployee(id uint) error {
	if _, err := r.GetEmployee(id); err != nil {
		return err
	}
	if err := r.db.Delete(&models.Employee{}, id).Error; err != nil {
		return fmt.Errorf("deleting employee %d: %w", id, err)
	}
	return nil
}

// EmployeeTeams lists the teams the employee is a member of.
func (r *Repository) EmployeeTeams(id uint) ([]models.Team, error) {
	if _, err := r.GetEmployee(id); err != nil {
		return nil, err
	}
	teams := make([]models.Team, 0)
	err := r.db.
		Where("id IN (?)", r.db.Model(&models.TeamMember{}).Select("team_id").Where("employee_id = ?", id)).
		Order("name").
		Find(&teams).Error
	if err != nil {
		return nil, fmt.Errorf("listing teams for employee %d: %w", id, err)
	}
	return teams, nil
}

// EmployeeAssignments lists the employee's current project assignments.
func (r *Repository) EmployeeAssignments(id uint) ([]models.ProjectAssignment, error) {
	if _, err := r.GetEmployee(id); err != nil {
		return nil, err
	}
	assignments := make([]models.ProjectAssignment, 0)
	if err := r.db.Where("employee_id = ?", id).Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("listing assignments for employee %d: %w", id, err)
	}
	return assignments, nil
}

// EmployeeUtilization reports planned workload hours against capacity over
// whole weeks in [from, to].
func (r *Repository) EmployeeUtilization(id uint, from, to time.Time) (*models.EmployeeUtilization, error) {
	employee, err := r.GetEmployee(id)
	if err != nil {
		return nil, err
	}
	from, to = day(from), day(to)
	if to.Before(from) {
		return nil, fmt.Errorf("utilization range ends before it starts: %w", ErrInvalid)
	}

	var planned float64
	err = r.db.Model(&models.Workload{}).
		Where("employee_id = ? AND week_start >= ? AND week_start <= ?", id, from, to).
		Select("COALESCE(SUM(planned_hours), 0)").
		Scan(&planned).Error
	if err != nil {
		return nil, fmt.Errorf("summing workloads for employee %d: %w", id, err)
	}

	weeks := int(to.Sub(from).Hours()/(24*7)) + 1
	capacity := float64(weeks * employee.WeeklyCapacity)
	util := models.EmployeeUtilization{
		EmployeeID:   id,
		Weeks:        weeks,
		PlannedHours: planned,
		Capacity:     capacity,
	}
	if capacity > 0 {
		util.Utilization = planned / capacity
	}
	return &util, nil
}

func (r *Repository) checkEmployeeUniqueness(code, email string, selfID uint) error {
	var count int64
	err := r.db.Model(&models.Employee{}).
		Where("(code = ? OR email = ?) AND id <> ?", code, email, selfID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("checking employee uniqueness: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("employee code %q or email %q: %w", code, email, ErrDuplicate)
	}
	return nil
}

// normalizeCapacity applies the default and enforces the bounds.
func normalizeCapacity(capacity int) (int, error) {
	if capacity == 0 {
		return 40, nil
	}
	if capacity < minWeeklyCapacity || capacity > maxWeeklyCapacity {
		return 0, fmt.Errorf("weekly capacity %d outside %d..%d: %w",
			capacity, minWeeklyCapacity, maxWeeklyCapacity, ErrInvalid)
	}
	return capacity, nil
}
