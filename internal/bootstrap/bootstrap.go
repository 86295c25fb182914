// Package bootstrap wires configuration, database, repositories, services,
// controllers and the HTTP router together at startup.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aegisplatform/aegis/internal/app/controllers"
	"github.com/aegisplatform/aegis/internal/app/migrations"
	"github.com/aegisplatform/aegis/internal/app/repositories"
	"github.com/aegisplatform/aegis/internal/app/routes"
	"github.com/aegisplatform/aegis/internal/app/services"
	"github.com/aegisplatform/aegis/internal/config"
	"github.com/aegisplatform/aegis/internal/db"
	"github.com/aegisplatform/aegis/internal/middleware"
	"github.com/aegisplatform/aegis/internal/pkg/auth"
	"github.com/aegisplatform/aegis/internal/pkg/filestorage"
	"github.com/aegisplatform/aegis/internal/pkg/helpers"
	"github.com/aegisplatform/aegis/internal/pkg/logger"
	"github.com/aegisplatform/aegis/internal/pkg/validation"
	"github.com/aegisplatform/aegis/internal/seed"
)

// Dependencies holds the constructed application components.
type Dependencies struct {
	Repositories *repositories.Repositories
	JWTService   *auth.JWTService
	FileStorage  filestorage.FileStorage

	AuthService        *services.AuthService
	UserService        *services.UserService
	GrievanceService   *services.GrievanceService
	CourseService      *services.CourseService
	OpportunityService *services.OpportunityService
	TaskService        *services.TaskService

	AuthController        *controllers.AuthController
	UserController        *controllers.UserController
	GrievanceController   *controllers.GrievanceController
	CourseController      *controllers.CourseController
	OpportunityController *controllers.OpportunityController
	TaskController        *controllers.TaskController
	FileController        *controllers.FileController

	AuthMiddleware *middleware.AuthMiddleware
}

// LoadConfigAndSetupLogger loads the configuration file and configures the
// global and returned loggers from it.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", "configs/config.yaml")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	pretty := cfg.Logging.Format == "console" || cfg.Server.Mode == "development"
	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: pretty,
	})

	var lgr zerolog.Logger
	if pretty {
		lgr = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	} else {
		lgr = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	lgr.Info().Str("config", configPath).Str("mode", cfg.Server.Mode).Msg("Configuration loaded")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, runs pending migrations and seeds
// the default accounts.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), database, lgr); err != nil {
		// Seeding failures are not fatal: the schema is in place and the
		// admin can create accounts manually.
		lgr.Warn().Err(err).Msg("Failed to seed default data")
	}

	return database, nil
}

// BuildDependencies constructs every repository, service, controller and
// middleware the router needs.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	fileStorage, err := filestorage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.MaxFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 15*time.Minute),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 168*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	domains := validation.Domains{
		Institute: cfg.App.InstituteDomain,
		Student:   cfg.App.StudentDomain,
	}

	repos := repositories.NewRepositories(database)

	authService := services.NewAuthService(repos.UserRepository, jwtService, domains, lgr)
	userService := services.NewUserService(repos.UserRepository, domains, lgr)
	grievanceService := services.NewGrievanceService(repos.GrievanceRepository, lgr)
	courseService := services.NewCourseService(repos.CourseRepository, lgr)
	opportunityService := services.NewOpportunityService(repos.OpportunityRepository, lgr)
	taskService := services.NewTaskService(repos.TaskRepository, lgr)

	deps := &Dependencies{
		Repositories: repos,
		JWTService:   jwtService,
		FileStorage:  fileStorage,

		AuthService:        authService,
		UserService:        userService,
		GrievanceService:   grievanceService,
		CourseService:      courseService,
		OpportunityService: opportunityService,
		TaskService:        taskService,

		AuthController:        controllers.NewAuthController(authService),
		UserController:        controllers.NewUserController(userService),
		GrievanceController:   controllers.NewGrievanceController(grievanceService, fileStorage),
		CourseController:      controllers.NewCourseController(courseService, fileStorage),
		OpportunityController: controllers.NewOpportunityController(opportunityService, fileStorage),
		TaskController:        controllers.NewTaskController(taskService),
		FileController:        controllers.NewFileController(fileStorage),

		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),
	}

	return deps, nil
}

// SetupRouter builds the gin engine with middleware, swagger and all
// application routes registered.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch cfg.Server.Mode {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(lgr))
	router.Use(gin.Recovery())

	routes.SetupSwagger(router)
	routes.SetupRouter(
		router,
		deps.AuthController,
		deps.UserController,
		deps.GrievanceController,
		deps.CourseController,
		deps.OpportunityController,
		deps.TaskController,
		deps.FileController,
		deps.AuthMiddleware,
	)

	return router
}
