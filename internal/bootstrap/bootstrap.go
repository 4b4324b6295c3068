package bootstrap

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jiripapousek/classwall/docs" // Import generated swagger docs
	appAuth "github.com/jiripapousek/classwall/internal/app/auth"
	appControllers "github.com/jiripapousek/classwall/internal/app/controllers"
	"github.com/jiripapousek/classwall/internal/app/models"
	appRepos "github.com/jiripapousek/classwall/internal/app/repositories"
	appRoutes "github.com/jiripapousek/classwall/internal/app/routes"
	appServices "github.com/jiripapousek/classwall/internal/app/services"
	"github.com/jiripapousek/classwall/internal/config"
	"github.com/jiripapousek/classwall/internal/db"
	appMiddleware "github.com/jiripapousek/classwall/internal/middleware"
	pkgAuth "github.com/jiripapousek/classwall/internal/pkg/auth"
	"github.com/jiripapousek/classwall/internal/pkg/keylock"
	"github.com/jiripapousek/classwall/internal/pkg/logger"
	"github.com/jiripapousek/classwall/internal/pkg/notify"
	"github.com/jiripapousek/classwall/internal/seed"
)

// likeLockStripes bounds the memory of the per-pair like serialization
const likeLockStripes = 256

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	MembershipService appServices.MembershipService
	WallService       appServices.WallService
	EngagementService appServices.EngagementService
	AuthController    *appControllers.AuthController
	UserController    *appControllers.UserController
	ClassController   *appControllers.ContainerController
	CourseController  *appControllers.ContainerController
	PostController    *appControllers.PostController
	CommentController *appControllers.CommentController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Evaluator         *appAuth.Evaluator
	Notifier          notify.Notifier
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the MongoDB connection, creates indexes and
// optionally seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.MongoDB, error) {
	lgr.Info().Str("database", cfg.Database.Name).Msg("Establishing database connection...")
	database, err := db.NewMongoDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to create indexes")
		_ = database.Close(context.Background())
		return nil, err
	}
	lgr.Info().Msg("Indexes ensured.")

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(context.Background(), database, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.MongoDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.Evaluator = appAuth.NewEvaluator()

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: config.ParseDuration(cfg.JWT.AccessTokenExpiration, 30*time.Minute),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Notifier = notify.NewWebhookNotifier(notify.WebhookConfig{
		Endpoint: cfg.Notify.FailedLoginWebhook,
		Timeout:  config.ParseDuration(cfg.Notify.Timeout, 5*time.Second),
	}, lgr)

	likeLocks := keylock.New(likeLockStripes)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.JWTService,
		deps.Notifier,
		lgr,
	)
	deps.MembershipService = appServices.NewMembershipService(
		deps.Repos.UserRepository,
		deps.Repos.ContainerRepository,
		lgr,
	)
	deps.WallService = appServices.NewWallService(
		deps.Repos.UserRepository,
		deps.Repos.ContainerRepository,
		deps.Repos.PostRepository,
		deps.Repos.CommentRepository,
		deps.Evaluator,
		lgr,
	)
	deps.EngagementService = appServices.NewEngagementService(
		deps.Repos.UserRepository,
		deps.Repos.PostRepository,
		deps.Repos.CommentRepository,
		deps.Evaluator,
		likeLocks,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.UserController = appControllers.NewUserController(deps.AuthService)
	deps.ClassController = appControllers.NewContainerController(models.KindClass, deps.MembershipService, deps.WallService)
	deps.CourseController = appControllers.NewContainerController(models.KindCourse, deps.MembershipService, deps.WallService)
	deps.PostController = appControllers.NewPostController(deps.WallService, deps.EngagementService)
	deps.CommentController = appControllers.NewCommentController(deps.WallService, deps.EngagementService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.ClassController,
		deps.CourseController,
		deps.PostController,
		deps.CommentController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
