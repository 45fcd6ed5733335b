package http

import (
	"context"
	"fmt"
	"net/http"

	"cups-server/internal/adapter/chat"
	handlers "cups-server/internal/adapter/handler/http"
	"cups-server/internal/config"
	"cups-server/internal/domain/provider"
	"cups-server/internal/infrastructure/database"
	"cups-server/internal/middleware/auth"
	"cups-server/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// requestValidator adapts go-playground/validator to echo's Validator interface.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

type Server struct {
	config  *config.Config
	logger  *zap.Logger
	echo    *echo.Echo
	db      *gorm.DB
	repos   *database.Repositories
	storage provider.BlobStorage
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *gorm.DB, repos *database.Repositories, storage provider.BlobStorage) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.HTTP.AllowOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config:  cfg,
		logger:  logger,
		echo:    e,
		db:      db,
		repos:   repos,
		storage: storage,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check probing the database
	s.echo.GET("/health", func(c echo.Context) error {
		sqlDB, err := s.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
			})
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Initialize services
	chats := chat.NewGormProvisioner(s.db, s.logger)
	subtaskSvc := usecase.NewSubtaskService(s.repos.Task, s.repos.Subtask, s.repos.Transactor, s.logger)
	rewardSvc := usecase.NewRewardService(s.repos.User, s.repos.Transactor, s.logger)
	taskSvc := usecase.NewTaskService(
		s.repos.Task, s.repos.Subtask, s.repos.Performer, s.repos.User,
		s.repos.Transactor, subtaskSvc, rewardSvc, s.storage, chats, s.logger,
	)
	orgSvc := usecase.NewOrganizationService(
		s.repos.Organization, s.repos.Request, s.repos.User,
		s.repos.Transactor, taskSvc, s.storage, s.logger,
	)
	authSvc := usecase.NewAuthService(s.repos.User, s.config.JWT, s.logger)
	userSvc := usecase.NewUserService(s.repos.User, s.storage, s.logger)
	searchSvc := usecase.NewSearchService(s.repos.User, s.repos.Organization, s.logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authSvc, s.logger)
	userHandler := handlers.NewUserHandler(userSvc, rewardSvc, s.logger)
	orgHandler := handlers.NewOrganizationHandler(orgSvc, s.logger)
	taskHandler := handlers.NewTaskHandler(taskSvc, subtaskSvc, s.logger)
	searchHandler := handlers.NewSearchHandler(searchSvc, s.logger)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.JWT.Secret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
			"/api/auth",
		},
	}
	s.echo.Use(auth.JWTMiddleware(jwtConfig))

	api := s.echo.Group("/api")

	// Public routes (skipped by the JWT middleware)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Users
	api.GET("/users/:id", userHandler.GetUser)
	api.PUT("/users/:id", userHandler.UpdateProfile)
	api.PUT("/users/:id/profile-image", userHandler.UpdateProfileImage)
	api.PUT("/users/:id/goal", userHandler.SetGoal)
	api.GET("/users/:id/level", userHandler.GetLevel)

	// Organizations and membership
	api.POST("/organizations", orgHandler.CreateOrganization)
	api.GET("/organizations/:id", orgHandler.GetOrganization)
	api.PUT("/organizations/:id", orgHandler.UpdateOrganization)
	api.PUT("/organizations/:id/image", orgHandler.UpdateImage)
	api.DELETE("/organizations/:id", orgHandler.DeleteOrganization)
	api.GET("/organizations/:id/participants", orgHandler.ListParticipants)
	api.GET("/organizations/:id/requests", orgHandler.ListRequests)
	api.GET("/organizations/:id/check-request/:userId", orgHandler.CheckRequest)
	api.GET("/organizations/:id/members/search", orgHandler.SearchMembers)
	api.POST("/organizations/:id/join", orgHandler.RequestJoin)
	api.POST("/organizations/:id/leave", orgHandler.Leave)
	api.PUT("/organizations/:id/members/:userId/toggle-manager", orgHandler.ToggleManager)
	api.DELETE("/organizations/:id/members/:userId", orgHandler.RemoveUser)
	api.POST("/organizations/requests/:requestId/accept", orgHandler.AcceptRequest)
	api.POST("/organizations/requests/:requestId/reject", orgHandler.RejectRequest)

	// Tasks and subtasks
	api.POST("/tasks", taskHandler.CreateTask)
	api.GET("/tasks", taskHandler.ListTasks)
	api.GET("/tasks/all", taskHandler.ListAllTasks)
	api.GET("/tasks/:id", taskHandler.GetTask)
	api.POST("/tasks/:id/start", taskHandler.StartTask)
	api.POST("/tasks/:id/complete", taskHandler.CompleteTask)
	api.DELETE("/tasks/:id", taskHandler.DeleteTask)
	api.PUT("/tasks/:id/subtasks/:subtaskId", taskHandler.ToggleSubtask)
	api.POST("/tasks/:id/subtasks/:subtaskId/complete", taskHandler.CompleteSubtask)

	// Search
	api.GET("/search", searchHandler.Search)
}
