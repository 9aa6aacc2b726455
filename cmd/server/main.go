package main

import (
	"log"

	"github.com/ergo-app/ergo-server/internal/config"
	"github.com/ergo-app/ergo-server/internal/constants"
	"github.com/ergo-app/ergo-server/internal/database"
	"github.com/ergo-app/ergo-server/internal/handlers"
	"github.com/ergo-app/ergo-server/internal/middleware"
	"github.com/ergo-app/ergo-server/internal/repository"
	"github.com/ergo-app/ergo-server/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	depRepo := repository.NewDependencyRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	depService := services.NewDependencyService(depRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, depService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService, depService)
	guard := middleware.NewAccessGuard(projectRepo, taskRepo)

	r := gin.Default()

	// Session store backed by Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public except /me)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// User directory (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("/search", userHandler.SearchUsers)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", guard.RequireProjectAccess(), projectHandler.GetProject)
			projects.PATCH("/:id", guard.RequireProjectAccess(), guard.RequireProjectOwner(), projectHandler.UpdateProject)
			projects.DELETE("/:id", guard.RequireProjectAccess(), guard.RequireProjectOwner(), projectHandler.DeleteProject)
			projects.GET("/:id/members", guard.RequireProjectAccess(), projectHandler.ListMembers)
			projects.POST("/:id/members", guard.RequireProjectAccess(), guard.RequireProjectOwner(), projectHandler.AddMember)
			projects.DELETE("/:id/members/:user_id", guard.RequireProjectAccess(), guard.RequireProjectOwner(), projectHandler.RemoveMember)
			projects.POST("/:id/tasks", guard.RequireProjectAccess(), taskHandler.CreateTask)
			projects.GET("/:id/tasks", guard.RequireProjectAccess(), taskHandler.ListTasks)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("/:id", guard.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PATCH("/:id", guard.RequireTaskAccess(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", guard.RequireTaskAccess(), taskHandler.DeleteTask)
			tasks.GET("/:id/assignees", guard.RequireTaskAccess(), taskHandler.ListAssignees)
			tasks.POST("/:id/assignees", guard.RequireTaskAccess(), taskHandler.AssignUser)
			tasks.DELETE("/:id/assignees/:user_id", guard.RequireTaskAccess(), taskHandler.UnassignUser)
			tasks.POST("/:id/dependencies", guard.RequireTaskAccess(), taskHandler.AddDependency)
			tasks.DELETE("/:id/dependencies/:dep_id", guard.RequireTaskAccess(), taskHandler.RemoveDependency)
		}
	}

	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
