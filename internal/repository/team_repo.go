package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"planline/models"
)

func (r *Repository) CreateTeam(in models.TeamInput) (*models.Team, error) {
	if err := r.checkTeamName(in.Name, 0); err != nil {
		return nil, err
	}
	if in.LeadID != nil {
		if _, err := r.GetEmployee(*in.LeadID); err != nil {
			return nil, err
		}
	}

	team := models.Team{
		Name:        in.Name,
		Description: in.Description,
		LeadID:      in.LeadID,
	}
	if err := r.db.Create(&team).Error; err != nil {
		return nil, fmt.Errorf("creating team: %w", err)
	}

	// The lead is always a member.
	if in.LeadID != nil {
		member := models.TeamMember{TeamID: team.ID, EmployeeID: *in.LeadID, Role: "lead"}
		if err := r.db.Create(&member).Error; err != nil {
			return nil, fmt.Errorf("adding lead to team %d: %w", team.ID, err)
		}
	}
	return &team, nil
}

func (r *Repository) GetTeam(id uint) (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("team %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting team %d: %w", id, err)
	}
	return &team, nil
}

func (r *Repository) ListTeams(p Page) ([]models.Team, int64, error) {
	var total int64
	if err := r.db.Model(&models.Team{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting teams: %w", err)
	}

	teams := make([]models.Team, 0)
	if err := r.db.Scopes(paginate(p)).Order("name").Find(&teams).Error; err != nil {
		return nil, 0, fmt.Errorf("listing teams: %w", err)
	}
	return teams, total, nil
}

func (r *Repository) UpdateTeam(id uint, in models.TeamInput) (*models.Team, error) {
	team, err := r.GetTeam(id)
	if err != nil {
		return nil, err
	}
	if err := r.checkTeamName(in.Name, id); err != nil {
		return nil, err
	}
	if in.LeadID != nil {
		// The new lead must already be a member.
		var count int64
		err := r.db.Model(&models.TeamMember{}).
			Where("team_id = ? AND employee_id = ?", id, *in.LeadID).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("checking lead membership: %w", err)
		}
		if count == 0 {
			return nil, fmt.Errorf("lead %d is not a member of team %d: %w", *in.LeadID, id, ErrConflict)
		}
	}

	team.Name = in.Name
	team.Description = in.Description
	team.LeadID = in.LeadID
	if err := r.db.Save(team).Error; err != nil {
		return nil, fmt.Errorf("updating team %d: %w", id, err)
	}
	return team, nil
}

// DeleteTeam soft-deletes the team and removes its memberships in one
// transaction.
func (r *Repository) DeleteTeam(id uint) error {
	if _, err := r.GetTeam(id); err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return fmt.Errorf("removing members of team %d: %w", id, err)
		}
		if err := tx.Delete(&models.Team{}, id).Error; err != nil {
			return fmt.Errorf("deleting team %d: %w", id, err)
		}
		return nil
	})
}

func (r *Repository) AddTeamMember(teamID uint, in models.TeamMemberInput) (*models.TeamMember, error) {
	if _, err := r.GetTeam(teamID); err != nil {
		return nil, err
	}
	if _, err := r.GetEmployee(in.EmployeeID); err != nil {
		return nil, err
	}

	var count int64
	err := r.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND employee_id = ?", teamID, in.EmployeeID).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("checking membership: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("employee %d already in team %d: %w", in.EmployeeID, teamID, ErrDuplicate)
	}

	member := models.TeamMember{TeamID: teamID, EmployeeID: in.EmployeeID, Role: in.Role}
	if err := r.db.Create(&member).Error; err != nil {
		return nil, fmt.Errorf("adding member: %w", err)
	}
	return &member, nil
}

// RemoveTeamMember drops an employee from a team. Removing the current lead
// clears the team's lead reference.
func (r *Repository) RemoveTeamMember(teamID, employeeID uint) error {
	team, err := r.GetTeam(teamID)
	if err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("team_id = ? AND employee_id = ?", teamID, employeeID).
			Delete(&models.TeamMember{})
		if result.Error != nil {
			return fmt.Errorf("removing member: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("employee %d not in team %d: %w", employeeID, teamID, ErrNotFound)
		}
		if team.LeadID != nil && *team.LeadID == employeeID {
			if err := tx.Model(&models.Team{}).Where("id = ?", teamID).
				Update("lead_id", nil).Error; err != nil {
				return fmt.Errorf("clearing lead of team %d: %w", teamID, err)
			}
		}
		return nil
	})
}

func (r *Repository) TeamMembers(teamID uint) ([]models.TeamMember, error) {
	if _, err := r.GetTeam(teamID); err != nil {
		return nil, err
	}
	members := make([]models.TeamMember, 0)
	err := r.db.Preload("Employee").
		Where("team_id = ?", teamID).
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("listing members of team %d: %w", teamID, err)
	}
	return members, nil
}

// TeamCapacity sums the weekly capacity of the team's members.
func (r *Repository) TeamCapacity(teamID uint) (*models.TeamCapacity, error) {
	if _, err := r.GetTeam(teamID); err != nil {
		return nil, err
	}

	capacity := models.TeamCapacity{TeamID: teamID}
	err := r.db.Model(&models.TeamMember{}).
		Where("team_id = ?", teamID).
		Count(&capacity.MemberCount).Error
	if err != nil {
		return nil, fmt.Errorf("counting members of team %d: %w", teamID, err)
	}

	err = r.db.Model(&models.Employee{}).
		Where("id IN (?)", r.db.Model(&models.TeamMember{}).Select("employee_id").Where("team_id = ?", teamID)).
		Select("COALESCE(SUM(weekly_capacity), 0)").
		Scan(&capacity.WeeklyCapacity).Error
	if err != nil {
		return nil, fmt.Errorf("summing capacity of team %d: %w", teamID, err)
	}
	return &capacity, nil
}

func (r *Repository) checkTeamName(name string, selfID uint) error {
	var count int64
	err := r.db.Model(&models.Team{}).
		Where("name = ? AND id <> ?", name, selfID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("checking team name %q: %w", name, err)
	}
	if count > 0 {
		return fmt.Errorf("team name %q: %w", name, ErrDuplicate)
	}
	return nil
}
