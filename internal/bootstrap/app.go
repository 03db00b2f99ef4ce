package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "jobmatch-backend/internal/auth"
	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/matching"
	"jobmatch-backend/internal/parser"
	"jobmatch-backend/internal/profiles"
	"jobmatch-backend/internal/recommendations"
	"jobmatch-backend/internal/shared/config"
	"jobmatch-backend/internal/shared/server"
	"jobmatch-backend/internal/shared/storage/db"
	"jobmatch-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	ProfilesRepo        profiles.Repo
	JobsRepo            jobs.Repo
	HistoryRepo         matching.HistoryRepo
	RecommendationsRepo recommendations.Repo
	UsersRepo           users.Repo

	ProfilesService        *profiles.Service
	JobsService            *jobs.Service
	MatchingService        *matching.Service
	RecommendationsService *recommendations.Service
	UsersService           *users.Service

	ProfileHandler        *profiles.Handler
	JobHandler            *jobs.Handler
	MatchHandler          *matching.Handler
	RecommendationHandler *recommendations.Handler
	UserHandler           *users.Handler
	GoogleAuth            *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                app.Config,
		ProfileHandler:        app.ProfileHandler,
		JobHandler:            app.JobHandler,
		MatchHandler:          app.MatchHandler,
		RecommendationHandler: app.RecommendationHandler,
		UserHandler:           app.UserHandler,
		GoogleAuth:            app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.ProfilesRepo = &profiles.PGRepo{DB: app.DB}
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.HistoryRepo = &matching.PGHistoryRepo{DB: app.DB}
		app.RecommendationsRepo = &recommendations.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.ProfilesRepo = profiles.NewMemoryRepo()
		app.JobsRepo = jobs.NewMemoryRepo()
		app.HistoryRepo = matching.NewMemoryHistoryRepo()
		app.RecommendationsRepo = recommendations.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.ProfilesService = &profiles.Service{
		Repo:   app.ProfilesRepo,
		Parser: parser.NewResume(),
	}
	app.JobsService = &jobs.Service{
		Repo:     app.JobsRepo,
		Parser:   parser.NewJobPosting(),
		Classify: matching.ClassifyRequirement,
	}
	app.MatchingService = &matching.Service{
		Profiles: app.ProfilesRepo,
		Jobs:     app.JobsRepo,
		History:  app.HistoryRepo,
	}
	app.RecommendationsService = &recommendations.Service{
		Repo:    app.RecommendationsRepo,
		Matcher: app.MatchingService,
	}
	app.UsersService = users.NewService(app.UsersRepo)

	app.ProfileHandler = profiles.NewHandler(app.ProfilesService)
	app.JobHandler = jobs.NewHandler(app.JobsService)
	app.MatchHandler = matching.NewHandler(app.MatchingService, app.ProfilesService, app.JobsService)
	app.RecommendationHandler = recommendations.NewHandler(app.RecommendationsService, app.ProfilesService, app.JobsService)
	app.UserHandler = users.NewHandler(app.UsersService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)
}
