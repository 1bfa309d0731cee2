package main

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/teamboard/internal/handlers"
	"github.com/huangang/teamboard/internal/middleware"
	"github.com/huangang/teamboard/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	healthHandler := handlers.NewHealthHandler(svc.db, svc.hub, svc.session)
	r.GET("/health", healthHandler.CheckHealth)
	r.GET("/metrics", handlers.Metrics())

	authHandler := handlers.NewAuthHandler(svc.session, svc.cfg.Session.ExpireHour)

	api := r.Group("/api")
	api.Use(middleware.AuditLog(svc.systemLogs))
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", svc.rateLimiter.Middleware())
		{
			auth.POST("/login", authHandler.Login)
		}

		protected := api.Group("")
		protected.Use(middleware.SessionRequired(svc.session))
		{
			// Session
			protected.GET("/auth/me", authHandler.Me)
			protected.POST("/auth/logout", authHandler.Logout)
			protected.POST("/auth/stop-impersonation", authHandler.StopImpersonation)

			// Projects
			projectHandler := handlers.NewProjectHandler(svc.session)
			protected.GET("/projects", projectHandler.List)
			protected.POST("/projects", projectHandler.Create)
			protected.PUT("/projects/:id", projectHandler.Update)
			protected.DELETE("/projects/:id", projectHandler.Delete)
			protected.PUT("/projects/:id/members", projectHandler.AssignMembers)

			// Tasks
			taskHandler := handlers.NewTaskHandler(svc.session)
			protected.GET("/tasks", taskHandler.List)
			protected.GET("/tasks/board", taskHandler.Board)
			protected.POST("/tasks", taskHandler.Create)
			protected.PUT("/tasks/:id", taskHandler.Update)
			protected.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)
			protected.DELETE("/tasks/:id", taskHandler.Delete)

			// Teams
			teamHandler := handlers.NewTeamHandler(svc.session)
			protected.GET("/teams", teamHandler.List)
			protected.GET("/teams/:projectId", teamHandler.Get)

			// Reports and search
			protected.GET("/reports", handlers.NewReportHandler(svc.session).Get)
			protected.GET("/search", handlers.NewSearchHandler(svc.session).Search)

			// UI preferences and notifications
			uiHandler := handlers.NewUIHandler(svc.session)
			protected.GET("/ui", uiHandler.Get)
			protected.PUT("/ui/theme", uiHandler.SetTheme)
			protected.POST("/ui/sidebar/toggle", uiHandler.ToggleSidebar)
			protected.PUT("/ui/search", uiHandler.SetSearch)
			protected.PUT("/ui/filters/projects", uiHandler.SetProjectFilter)
			protected.PUT("/ui/filters/tasks", uiHandler.SetTaskFilter)
			protected.POST("/ui/notifications", uiHandler.PushNotification)
			protected.DELETE("/ui/notifications/:id", uiHandler.DismissNotification)
			protected.DELETE("/ui/notifications", uiHandler.ClearNotifications)

			// Change stream
			protected.GET("/events", handlers.NewEventsHandler(svc.hub).Stream)
		}

		// Admin only routes
		admin := protected.Group("")
		admin.Use(middleware.AdminRequired())
		{
			userHandler := handlers.NewUserHandler(svc.session)
			admin.GET("/users", userHandler.List)
			admin.PUT("/users/:id/role", userHandler.UpdateRole)

			admin.POST("/auth/impersonate/:id", authHandler.Impersonate)

			admin.GET("/audit-logs", handlers.NewSystemLogHandler(svc.systemLogs).List)
		}
	}
}
