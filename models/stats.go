package models

// DashboardStats is the cached headline view served by /api/stats/dashboard.
type DashboardStats struct {
	ActiveClients    int64   `json:"activeClients"`
	ActiveEmployees  int64   `json:"activeEmployees"`
	ActiveProjects   int64   `json:"activeProjects"`
	OpenAlerts       int64   `json:"openAlerts"`
	PendingVacations int64   `json:"pendingVacations"`
	WeekPlannedHours float64 `json:"weekPlannedHours"`
}
