package repository

import (
	"fmt"
	"time"

	"planline/models"
)

// DashboardStats collects the headline counts plus this week's planned
// hours. Callers cache the result; the queries themselves are cheap counts.
func (r *Repository) DashboardStats(now time.Time) (*models.DashboardStats, error) {
	stats := models.DashboardStats{}

	counts := []struct {
		dest  *int64
		model interface{}
		cond  string
		args  []interface{}
	}{
		{&stats.ActiveClients, &models.Client{}, "is_active = ?", []interface{}{true}},
		{&stats.ActiveEmployees, &models.Employee{}, "is_active = ?", []interface{}{true}},
		{&stats.ActiveProjects, &models.Project{}, "status = ?", []interface{}{models.ProjectActive}},
		{&stats.OpenAlerts, &models.Alert{}, "acked_at IS NULL", nil},
		{&stats.PendingVacations, &models.Vacation{}, "status = ?", []interface{}{models.VacationPending}},
	}
	for _, c := range counts {
		if err := r.db.Model(c.model).Where(c.cond, c.args...).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("dashboard count: %w", err)
		}
	}

	week := weekStart(now)
	err := r.db.Model(&models.Workload{}).
		Where("week_start = ?", week).
		Select("COALESCE(SUM(planned_hours), 0)").
		Scan(&stats.WeekPlannedHours).Error
	if err != nil {
		return nil, fmt.Errorf("dashboard week hours: %w", err)
	}
	return &stats, nil
}

// weekStart returns the Monday of the week containing t.
func weekStart(t time.Time) time.Time {
	t = day(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
