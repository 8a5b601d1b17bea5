// Package routes wires handlers onto the gin engine.
package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"planline/config"
	"planline/internal/handlers"
	"planline/internal/middleware"
	"planline/internal/repository"
)

// New builds the engine with all routes registered. rdb may be nil.
func New(cfg *config.Config, store repository.Store, rdb *redis.Client) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	secret := []byte(cfg.JWTSecret)
	cache := handlers.NewDashboardCache(rdb, cfg.CacheTTL)

	auth := handlers.NewAuthHandler(store, secret, cfg.TokenTTL)
	router.POST("/auth/login", auth.Login)
	router.POST("/auth/logout", auth.Logout)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	api := router.Group("/api")
	api.Use(middleware.Auth(store, rdb, secret))
	registerAPIRoutes(api, store, rdb, cache, auth)
	return router
}

// registerAPIRoutes registers every authenticated route. Reads are open to
// any authenticated user; writes need the planner role; account management
// needs admin.
func registerAPIRoutes(api *gin.RouterGroup, store repository.Store, rdb *redis.Client, cache *handlers.DashboardCache, auth *handlers.AuthHandler) {
	planner := middleware.RequireRole("planner")
	admin := middleware.RequireRole("admin")

	api.GET("/me", auth.Me)

	clients := api.Group("/clients")
	{
		h := handlers.NewClientHandler(store, cache)
		clients.GET("", h.List)
		clients.POST("", planner, h.Create)
		clients.GET("/:id", h.Get)
		clients.GET("/by-code/:code", h.GetByCode)
		clients.PUT("/:id", planner, h.Update)
		clients.DELETE("/:id", planner, h.Delete)
		clients.GET("/:id/projects", h.Projects)
		clients.GET("/:id/project-stats", h.ProjectStats)
	}

	employees := api.Group("/employees")
	{
		h := handlers.NewEmployeeHandler(store, cache)
		employees.GET("", h.List)
		employees.POST("", planner, h.Create)
		employees.GET("/:id", h.Get)
		employees.GET("/by-code/:code", h.GetByCode)
		employees.PUT("/:id", planner, h.Update)
		employees.DELETE("/:id", planner, h.Delete)
		employees.GET("/:id/teams", h.Teams)
		employees.GET("/:id/assignments", h.Assignments)
		employees.GET("/:id/utilization", h.Utilization)
	}

	projects := api.Group("/projects")
	{
		h := handlers.NewProjectHandler(store, cache)
		projects.GET("", h.List)
		projects.POST("", planner, h.Create)
		projects.GET("/:id", h.Get)
		projects.PUT("/:id", planner, h.Update)
		projects.DELETE("/:id", planner, h.Delete)
		projects.GET("/:id/assignments", h.Assignments)
		projects.POST("/:id/assignments", planner, h.Assign)
		projects.DELETE("/:id/assignments/:employeeId", planner, h.Unassign)
		projects.GET("/:id/stats", h.Stats)
	}

	teams := api.Group("/teams")
	{
		h := handlers.NewTeamHandler(store)
		teams.GET("", h.List)
		teams.POST("", planner, h.Create)
		teams.GET("/:id", h.Get)
		teams.PUT("/:id", planner, h.Update)
		teams.DELETE("/:id", planner, h.Delete)
		teams.GET("/:id/members", h.Members)
		teams.POST("/:id/members", planner, h.AddMember)
		teams.DELETE("/:id/members/:employeeId", planner, h.RemoveMember)
		teams.GET("/:id/capacity", h.Capacity)
	}

	schedules := api.Group("/schedules")
	{
		h := handlers.NewScheduleHandler(store)
		schedules.GET("", h.List)
		schedules.POST("", planner, h.Create)
		schedules.POST("/week", planner, h.CreateWeek)
		schedules.GET("/:id", h.Get)
		schedules.PUT("/:id", planner, h.Update)
		schedules.DELETE("/:id", planner, h.Delete)
		schedules.GET("/employee/:id/hours", h.Hours)
	}

	workloads := api.Group("/workloads")
	{
		h := handlers.NewWorkloadHandler(store, cache)
		workloads.GET("", h.List)
		workloads.PUT("", planner, h.Upsert)
		workloads.GET("/:id", h.Get)
		workloads.DELETE("/:id", planner, h.Delete)
		workloads.GET("/employee/:id/weekly", h.WeeklyTotals)
		workloads.GET("/overallocations", h.Overallocations)
	}

	vacations := api.Group("/vacations")
	{
		h := handlers.NewVacationHandler(store, cache)
		vacations.GET("", h.List)
		vacations.POST("", h.Create)
		vacations.GET("/upcoming", h.Upcoming)
		vacations.GET("/:id", h.Get)
		vacations.PUT("/:id", h.Update)
		vacations.POST("/:id/decision", planner, h.Decide)
		vacations.DELETE("/:id", h.Delete)
		vacations.GET("/employee/:id/days-taken", h.DaysTaken)
	}

	alerts := api.Group("/alerts")
	{
		h := handlers.NewAlertHandler(store, cache)
		alerts.GET("", h.List)
		alerts.POST("/:id/ack", planner, h.Acknowledge)
		alerts.POST("/scan", planner, h.Scan)
	}

	stats := api.Group("/stats")
	{
		h := handlers.NewStatsHandler(store, cache)
		stats.GET("/dashboard", h.Dashboard)
	}

	users := api.Group("/users")
	users.Use(admin)
	{
		h := handlers.NewUserHandler(store, rdb)
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}
}
