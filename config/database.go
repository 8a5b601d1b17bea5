package config

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"planline/models"
)

// ConnectDB opens the PostgreSQL connection.
func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Info("connected to database")
	return db, nil
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Employee{},
		&models.Project{},
		&models.ProjectAssignment{},
		&models.Team{},
		&models.TeamMember{},
		&models.Schedule{},
		&models.Workload{},
		&models.Vacation{},
		&models.Alert{},
	)
	if err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	slog.Info("schema migrated")
	return nil
}
