package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"planline/models"
)

func (r *Repository) CreateClient(in models.ClientInput) (*models.Client, error) {
	if err := r.checkClientCode(in.Code, 0); err != nil {
		return nil, err
	}

	client := models.Client{
		Code:         in.Code,
		Name:         in.Name,
		ContactName:  in.ContactName,
		ContactEmail: in.ContactEmail,
		Phone:        in.Phone,
		Notes:        in.Notes,
		IsActive:     in.IsActive,
	}
	if err := r.db.Create(&client).Error; err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	return &client, nil
}

func (r *Repository) GetClient(id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting client %d: %w", id, err)
	}
	return &client, nil
}

func (r *Repository) GetClientByCode(code string) (*models.Client, error) {
	var client models.Client
	if err := r.db.Where("code = ?", code).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client %q: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("getting client %q: %w", code, err)
	}
	return &client, nil
}

func (r *Repository) ListClients(p Page, activeOnly bool) ([]models.Client, int64, error) {
	query := r.db.Model(&models.Client{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting clients: %w", err)
	}

	clients := make([]models.Client, 0)
	if err := query.Scopes(paginate(p)).Order("code").Find(&clients).Error; err != nil {
		return nil, 0, fmt.Errorf("listing clients: %w", err)
	}
	return clients, total, nil
}

func (r *Repository) UpdateClient(id uint, in models.ClientInput) (*models.Client, error) {
	client, err := r.GetClient(id)
	if err != nil {
		return nil, err
	}
	if err := r.checkClientCode(in.Code, id); err != nil {
		return nil, err
	}

	client.Code = in.Code
	client.Name = in.Name
	client.ContactName = in.ContactName
	client.ContactEmail = in.ContactEmail
	client.Phone = in.Phone
	client.Notes = in.Notes
	if in.IsActive != nil {
		client.IsActive = in.IsActive
	}
	if err := r.db.Save(client).Error; err != nil {
		return nil, fmt.Errorf("updating client %d: %w", id, err)
	}
	return client, nil
}

// DeleteClient soft-deletes a client. A client that still has non-archived
// projects cannot be deleted.
func (r *Repository) DeleteClient(id uint) error {
	if _, err := r.GetClient(id); err != nil {
		return err
	}

	var open int64
	err := r.db.Model(&models.Project{}).
		Where("client_id = ? AND status <> ?", id, models.ProjectArchived).
		Count(&open).Error
	if err != nil {
		return fmt.Errorf("counting open projects for client %d: %w", id, err)
	}
	if open > 0 {
		return fmt.Errorf("client %d has %d non-archived projects: %w", id, open, ErrConflict)
	}

	if err := r.db.Delete(&models.Client{}, id).Error; err != nil {
		return fmt.Errorf("deleting client %d: %w", id, err)
	}
	return nil
}

// ClientProjects lists all projects belonging to one client.
func (r *Repository) ClientProjects(id uint) ([]models.Project, error) {
	if _, err := r.GetClient(id); err != nil {
		return nil, err
	}
	projects := make([]models.Project, 0)
	if err := r.db.Where("client_id = ?", id).Order("code").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("listing projects for client %d: %w", id, err)
	}
	return projects, nil
}

// ClientProjectStats counts a client's projects grouped by status.
func (r *Repository) ClientProjectStats(id uint) (*models.ClientProjectStats, error) {
	if _, err := r.GetClient(id); err != nil {
		return nil, err
	}

	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.db.Model(&models.Project{}).
		Select("status, COUNT(*) as n").
		Where("client_id = ?", id).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregating projects for client %d: %w", id, err)
	}

	stats := models.ClientProjectStats{ClientID: id, ByStatus: make(map[string]int)}
	for _, row := range rows {
		stats.ByStatus[row.Status] = int(row.N)
		stats.Total += row.N
	}
	return &stats, nil
}

// checkClientCode rejects a code already used by a different client.
func (r *Repository) checkClientCode(code string, selfID uint) error {
	var count int64
	err := r.db.Model(&models.Client{}).
		Where("code = ? AND id <> ?", code, selfID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("checking client code %q: %w", code, err)
	}
	if count > 0 {
		return fmt.Errorf("client code %q: %w", code, ErrDuplicate)
	}
	return nil
}
