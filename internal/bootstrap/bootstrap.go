package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"content-backend/internal/analysis"
	"content-backend/internal/contents"
	"content-backend/internal/queue"
	"content-backend/internal/shared/config"
	"content-backend/internal/shared/server"
	"content-backend/internal/shared/storage/db"
	"content-backend/internal/users"
)

// App holds shared dependencies for the API and worker binaries.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Queue            queue.Client
	UsersRepo        users.Repo
	ContentsRepo     contents.Repo
	UsersService     *users.Service
	ContentsService  *contents.Service
	UsersHandler     *users.Handler
	ContentsHandler  *contents.Handler
	ContentProcessor ContentProcessor
}

// ContentProcessor allows callers to override content processing for tests.
type ContentProcessor interface {
	ProcessContent(ctx context.Context, contentID string) error
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

	queueClient, err := buildQueue(ctx)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Queue:  queueClient,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		UsersHandler:    app.UsersHandler,
		ContentsHandler: app.ContentsHandler,
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

func buildQueue(ctx context.Context) (queue.Client, error) {
	if strings.TrimSpace(os.Getenv("CA_SQS_QUEUE_URL")) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func buildServices(app *App) error {
	var userRepo users.Repo
	var contentRepo contents.Repo

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		contentRepo = &contents.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		contentRepo = contents.NewMemoryRepo()
	}

	remote, err := buildRemote(app.Config)
	if err != nil {
		return err
	}

	usersSvc := users.NewService(userRepo)
	contentsSvc := contents.NewService(contentRepo, analysis.NewOrchestrator(remote))
	contentsSvc.Queue = app.Queue

	app.UsersRepo = userRepo
	app.ContentsRepo = contentRepo
	app.UsersService = usersSvc
	app.ContentsService = contentsSvc
	app.UsersHandler = users.NewHandler(usersSvc)
	app.ContentsHandler = contents.NewHandler(contentsSvc)
	app.ContentProcessor = contentsSvc
	return nil
}

// buildRemote returns nil when no API key is configured; the analyzer
// then serves every field from the local heuristics.
func buildRemote(cfg config.Config) (analysis.RemoteClient, error) {
	if strings.TrimSpace(cfg.InferenceAPIKey) == "" {
		log.Printf("bootstrap: INFERENCE_API_KEY empty; analysis runs on local heuristics only")
		return nil, nil
	}
	client, err := analysis.NewInferenceClient(
		cfg.InferenceBaseURL,
		cfg.InferenceAPIKey,
		cfg.InferenceSummaryModel,
		cfg.InferenceSentimentModel,
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
