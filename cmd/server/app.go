package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/todo-api/internal/api"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/generation"
	"github.com/phrazzld/todo-api/internal/platform/gemini"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/platform/openai"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/platform/remote"
	"github.com/phrazzld/todo-api/internal/platform/sqlite"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/store"
)

// application holds the wired dependencies and owns their cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	repo      store.TodoRepository
	suggester generation.TitleSuggester
	usecases  *service.Usecases
}

// newApplication picks the repository and suggester adapters named by cfg
// and builds the use cases on top of them. SQLite schemas are migrated on
// startup; Postgres expects the migrate command to have been run.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{config: cfg, logger: logger}

	repo, err := app.newRepository(ctx)
	if err != nil {
		app.cleanup()
		return nil, err
	}
	app.repo = repo

	suggester, err := app.newSuggester(ctx)
	if err != nil {
		app.cleanup()
		return nil, err
	}
	app.suggester = suggester

	app.usecases = service.NewUsecases(app.repo, app.suggester, logger)
	return app, nil
}

func (app *application) newRepository(ctx context.Context) (store.TodoRepository, error) {
	cfg := app.config
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return memory.NewTodoStore(app.logger), nil

	case config.DriverRemote:
		repo, err := remote.NewTodoStore(remote.Config{
			BaseURL:    cfg.Remote.BaseURL,
			Collection: cfg.Remote.Collection,
			Timeout:    seconds(cfg.Remote.TimeoutSeconds),
		}, nil, app.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize remote store: %w", err)
		}
		return repo, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		app.db = db
		return postgres.NewPostgresTodoStore(db, app.logger), nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		app.db = db
		if err := sqlite.Migrate(ctx, db, app.logger); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite: %w", err)
		}
		return sqlite.NewSQLiteTodoStore(db, app.logger), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func (app *application) newSuggester(ctx context.Context) (generation.TitleSuggester, error) {
	cfg := app.config.LLM
	switch cfg.Provider {
	case config.ProviderNone, "":
		return generation.Static{}, nil

	case config.ProviderOpenAI:
		s, err := openai.NewTitleSuggester(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: seconds(cfg.TimeoutSeconds),
		}, nil, app.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize openai suggester: %w", err)
		}
		return s, nil

	case config.ProviderGemini:
		g, err := gemini.NewTitleGenerator(ctx, gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: seconds(cfg.TimeoutSeconds),
		}, app.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini suggester: %w", err)
		}
		return g, nil

	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func (app *application) router() http.Handler {
	return api.NewRouter(api.RouterConfig{BodyLimitBytes: app.config.Server.BodyLimitBytes}, app.usecases, app.logger)
}

// cleanup releases resources held by the application. Safe to call twice.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", redact.ErrorAttr(err))
	}
	app.db = nil
}

// runMigrate applies the embedded migrations of the configured SQL driver.
func runMigrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if !cfg.Store.IsSQL() {
		return errors.New("migrate requires store.driver to be postgres or sqlite")
	}

	var (
		db      *sql.DB
		err     error
		migrate func(context.Context, *sql.DB, *slog.Logger) error
	)

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err = postgres.Open(ctx, cfg.Database.URL)
		migrate = postgres.Migrate
	case config.DriverSQLite:
		db, err = sqlite.Open(ctx, cfg.SQLite.Path)
		migrate = sqlite.Migrate
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("failed to close database", redact.ErrorAttr(cerr))
		}
	}()

	if err := migrate(ctx, db, logger); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("migrations applied", "driver", cfg.Store.Driver)
	return nil
}

// seconds converts a config value to a duration; zero means no timeout.
func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
