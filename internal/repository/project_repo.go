package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"planline/models"
)

// projectTransitions is the allowed status graph. Archiving is allowed from
// any status, so it is checked separately.
var projectTransitions = map[string][]string{
	models.ProjectDraft:     {models.ProjectActive},
	models.ProjectActive:    {models.ProjectPaused, models.ProjectCompleted},
	models.ProjectPaused:    {models.ProjectActive},
	models.ProjectCompleted: {},
	models.ProjectArchived:  {},
}

func validProjectTransition(from, to string) bool {
	if from == to || to == models.ProjectArchived {
		return true
	}
	for _, next := range projectTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (r *Repository) CreateProject(in models.ProjectInput) (*models.Project, error) {
	if err := r.checkProjectCode(in.Code, 0); err != nil {
		return nil, err
	}
	if err := r.checkProjectDates(in); err != nil {
		return nil, err
	}

	client, err := r.GetClient(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client.IsActive != nil && !*client.IsActive {
		return nil, fmt.Errorf("client %d is inactive: %w", in.ClientID, ErrConflict)
	}

	status := in.Status
	if status == "" {
		status = models.ProjectDraft
	}
	// New projects enter the lifecycle at the front, not mid-graph.
	if status != models.ProjectDraft && status != models.ProjectActive {
		return nil, fmt.Errorf("project cannot be created as %s: %w", status, ErrInvalid)
	}
	project := models.Project{
		Code:        in.Code,
		Name:        in.Name,
		ClientID:    in.ClientID,
		Status:      status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Description: in.Description,
	}
	if err := r.db.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return &project, nil
}

func (r *Repository) GetProject(id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting project %d: %w", id, err)
	}
	return &project, nil
}

func (r *Repository) ListProjects(p Page, f ProjectFilter) ([]models.Project, int64, error) {
	query := r.db.Model(&models.Project{})
	if f.ClientID != 0 {
		query = query.Where("client_id = ?", f.ClientID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.From != nil && f.To != nil {
		// Overlap: a project with open-ended dates always matches.
		query = query.Where(
			"(start_date IS NULL OR start_date <= ?) AND (end_date IS NULL OR end_date >= ?)",
			day(*f.To), day(*f.From),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting projects: %w", err)
	}

	projects := make([]models.Project, 0)
	if err := query.Scopes(paginate(p)).Order("code").Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("listing projects: %w", err)
	}
	return projects, total, nil
}

func (r *Repository) UpdateProject(id uint, in models.ProjectInput) (*models.Project, error) {
	project, err := r.GetProject(id)
	if err != nil {
		return nil, err
	}
	if err := r.checkProjectCode(in.Code, id); err != nil {
		return nil, err
	}
	if err := r.checkProjectDates(in); err != nil {
		return nil, err
	}
	if in.Status != "" && !validProjectTransition(project.Status, in.Status) {
		return nil, fmt.Errorf("project status %s -> %s: %w", project.Status, in.Status, ErrConflict)
	}
	if in.ClientID != project.ClientID {
		client, err := r.GetClient(in.ClientID)
		if err != nil {
			return nil, err
		}
		if client.IsActive != nil && !*client.IsActive {
			return nil, fmt.Errorf("client %d is inactive: %w", in.ClientID, ErrConflict)
		}
	}

	project.Code = in.Code
	project.Name = in.Name
	project.ClientID = in.ClientID
	if in.Status != "" {
		project.Status = in.Status
	}
	project.StartDate = in.StartDate
	project.EndDate = in.EndDate
	project.Description = in.Description
	if err := r.db.Save(project).Error; err != nil {
		return nil, fmt.Errorf("updating project %d: %w", id, err)
	}
	return project, nil
}

func (r *Repository) DeleteProject(id uint) error {
	if _, err := r.GetProject(id); err != nil {
		return err
	}
	if err := r.db.Delete(&models.Project{}, id).Error; err != nil {
		return fmt.Errorf("deleting project %d: %w", id, err)
	}
	return nil
}

// AssignEmployee adds an employee to a project. Assigning the same employee
// twice is a conflict.
func (r *Repository) AssignEmployee(projectID uint, in models.AssignmentInput) (*models.ProjectAssignment, error) {
	if _, err := r.GetProject(projectID); err != nil {
		return nil, err
	}
	employee, err := r.GetEmployee(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee.IsActive != nil && !*employee.IsActive {
		return nil, fmt.Errorf("employee %d is inactive: %w", in.EmployeeID, ErrConflict)
	}

	var count int64
	err = r.db.Model(&models.ProjectAssignment{}).
		Where("project_id = ? AND employee_id = ?", projectID, in.EmployeeID).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("checking assignment: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("employee %d already assigned to project %d: %w",
			in.EmployeeID, projectID, ErrDuplicate)
	}

	allocation := in.Allocation
	if allocation == 0 {
		allocation = 100
	}
	assignment := models.ProjectAssignment{
		ProjectID:  projectID,
		EmployeeID: in.EmployeeID,
		Role:       in.Role,
		Allocation: allocation,
	}
	if err := r.db.Create(&assignment).Error; err != nil {
		return nil, fmt.Errorf("creating assignment: %w", err)
	}
	return &assignment, nil
}

func (r *Repository) UnassignEmployee(projectID, employeeID uint) error {
	result := r.db.Where("project_id = ? AND employee_id = ?", projectID, employeeID).
		Delete(&models.ProjectAssignment{})
	if result.Error != nil {
		return fmt.Errorf("removing assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("employee %d not assigned to project %d: %w",
			employeeID, projectID, ErrNotFound)
	}
	return nil
}

func (r *Repository) ProjectAssignments(projectID uint) ([]models.ProjectAssignment, error) {
	if _, err := r.GetProject(projectID); err != nil {
		return nil, err
	}
	assignments := make([]models.ProjectAssignment, 0)
	err := r.db.Preload("Employee").
		Where("project_id = ?", projectID).
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("listing assignments for project %d: %w", projectID, err)
	}
	return assignments, nil
}

// ProjectStats aggregates workload hours, headcount and schedule count for
// one project.
func (r *Repository) ProjectStats(projectID uint) (*models.ProjectStats, error) {
	if _, err := r.GetProject(projectID); err != nil {
		return nil, err
	}

	stats := models.ProjectStats{ProjectID: projectID}

	type sums struct {
		Planned float64
		Actual  float64
	}
	var s sums
	err := r.db.Model(&models.Workload{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(SUM(planned_hours), 0) as planned, COALESCE(SUM(actual_hours), 0) as actual").
		Scan(&s).Error
	if err != nil {
		return nil, fmt.Errorf("summing workloads for project %d: %w", projectID, err)
	}
	stats.PlannedHours = s.Planned
	stats.ActualHours = s.Actual

	err = r.db.Model(&models.ProjectAssignment{}).
		Where("project_id = ?", projectID).
		Count(&stats.Headcount).Error
	if err != nil {
		return nil, fmt.Errorf("counting assignments for project %d: %w", projectID, err)
	}

	err = r.db.Model(&models.Schedule{}).
		Where("project_id = ?", projectID).
		Count(&stats.ScheduleCount).Error
	if err != nil {
		return nil, fmt.Errorf("counting schedules for project %d: %w", projectID, err)
	}
	return &stats, nil
}

func (r *Repository) checkProjectCode(code string, selfID uint) error {
	var count int64
	err := r.db.Model(&models.Project{}).
		Where("code = ? AND id <> ?", code, selfID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("checking project code %q: %w", code, err)
	}
	if count > 0 {
		return fmt.Errorf("project code %q: %w", code, ErrDuplicate)
	}
	return nil
}

func (r *Repository) checkProjectDates(in models.ProjectInput) error {
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return fmt.Errorf("project ends before it starts: %w", ErrInvalid)
	}
	return nil
}
