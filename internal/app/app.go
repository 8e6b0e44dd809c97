package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"news-agent/internal/agent"
	"news-agent/internal/api"
	"news-agent/internal/config"
	"news-agent/internal/database"
	"news-agent/internal/llm"
	"news-agent/internal/repository"
	"news-agent/internal/search"
	"news-agent/internal/service"
)

// App holds the long-lived resources of the server.
type App struct {
	DB     *sql.DB
	Redis  *redis.Client
	Server *http.Server
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	SetupLogger(os.Stdout, cfg.LogLevel)

	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort)
		errCh <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}

// NewApp wires the configured store, providers, services and router.
func NewApp(cfg *config.Config) (*App, error) {
	components, err := BuildComponents(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{}
	repo, err := app.openStore(cfg)
	if err != nil {
		return nil, err
	}

	conversationService := service.NewConversationService(repo, components.Catalog, func(m llm.ModelInfo) *agent.Agent {
		return components.NewAgent(cfg, m)
	})
	modelService := service.NewModelService(components.Catalog)
	searchService := service.NewSearchService(components.Searcher)
	statusService := components.StatusService()

	router := api.NewRouter(
		api.NewConversationHandler(conversationService),
		api.NewModelHandler(modelService),
		api.NewSearchHandler(searchService, statusService),
		api.NewToolHandler(service.NewToolService(searchService)),
	)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}
	return app, nil
}

func (a *App) openStore(cfg *config.Config) (repository.Repository, error) {
	switch strings.ToLower(cfg.SessionStore) {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		a.Redis = rdb
		slog.Info("Successfully connected to Redis.", "addr", cfg.RedisAddr, "session_ttl", cfg.SessionTTL)
		return repository.NewRedisRepository(rdb, cfg.SessionTTL), nil
	case "", "sqlite":
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = db
		slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)
		return repository.NewSQLiteRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q, expected sqlite or redis", cfg.SessionStore)
	}
}

// Close releases the conversation store.
func (a *App) Close() {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}
}

// Components are the provider clients and catalog shared by the server and
// the CLI. Searcher and Provider stay nil when their credential is missing.
type Components struct {
	Catalog  *llm.StaticCatalog
	Searcher search.Searcher
	Provider llm.Provider

	serper   *search.SerperClient
	clarifai *llm.ClarifaiProvider
}

func BuildComponents(cfg *config.Config) (*Components, error) {
	c := &Components{}

	var err error
	if cfg.ModelCatalogPath != "" {
		c.Catalog, err = llm.LoadCatalog(cfg.ModelCatalogPath, cfg.DefaultModel)
	} else {
		c.Catalog, err = llm.NewStaticCatalog(llm.DefaultModels, cfg.DefaultModel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load model catalog: %w", err)
	}

	if cfg.SerperConfigured() {
		c.serper = search.NewSerperClient(cfg.SerperAPIKey,
			search.WithBaseURL(cfg.SerperBaseURL),
			search.WithTimeout(cfg.SearchTimeout),
			search.WithRateLimit(cfg.SearchRateLimit),
		)
		c.Searcher = c.serper
	} else {
		slog.Warn("SERPER_API_KEY not set, news search will use placeholder results")
	}

	if cfg.ClarifaiConfigured() {
		c.clarifai = llm.NewClarifaiProvider(cfg.ClarifaiAPIBase, cfg.ClarifaiPAT)
		c.Provider = c.clarifai
	} else {
		slog.Warn("CLARIFAI_PAT not set, answers will list raw search results without AI analysis")
	}

	return c, nil
}

// NewAgent builds an agent for model m with the configured generation settings.
func (c *Components) NewAgent(cfg *config.Config, m llm.ModelInfo) *agent.Agent {
	return agent.New(c.Searcher, c.Provider, agent.Config{
		Model:       m,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		NumResults:  cfg.NewsResults,
	})
}

// StatusService builds the setup report service. Missing clients are passed
// as untyped nils so the service sees them as not configured.
func (c *Components) StatusService() *service.StatusService {
	var searchProbe service.SearchProbe
	if c.serper != nil {
		searchProbe = c.serper
	}
	var completionProbe service.CompletionProbe
	if c.clarifai != nil {
		completionProbe = c.clarifai
	}
	return service.NewStatusService(searchProbe, completionProbe, c.Catalog)
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

// SetupLogger installs a JSON slog handler writing to w at the given level.
func SetupLogger(w io.Writer, logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
