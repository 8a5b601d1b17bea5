// planline is the workforce and project planning backend.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"planline/config"
	"planline/internal/repository"
	"planline/internal/routes"
	"planline/models"
)

func main() {
	root := &cobra.Command{
		Use:           "planline",
		Short:         "Workforce and project planning backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), createAdminCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := config.ConnectDB(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if err := config.Migrate(db); err != nil {
				return err
			}
			rdb := config.ConnectRedis(cfg.RedisAddr)

			store := repository.New(db)
			router := routes.New(cfg, store, rdb)

			slog.Info("listening", "addr", cfg.HTTPAddr)
			return router.Run(cfg.HTTPAddr)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := config.ConnectDB(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			return config.Migrate(db)
		},
	}
}

func createAdminCmd() *cobra.Command {
	var login, password, name string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if login == "" || password == "" {
				return fmt.Errorf("--login and --password are required")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := config.ConnectDB(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if err := config.Migrate(db); err != nil {
				return err
			}

			store := repository.New(db)
			user, err := store.CreateUser(models.UserInput{
				Login:    login,
				Password: password,
				FullName: name,
				Role:     models.RoleAdmin,
			})
			if err != nil {
				return err
			}
			slog.Info("admin created", "login", user.Login, "id", user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&login, "login", "", "login for the new account")
	cmd.Flags().StringVar(&password, "password", "", "password for the new account")
	cmd.Flags().StringVar(&name, "name", "", "full name")
	return cmd
}
