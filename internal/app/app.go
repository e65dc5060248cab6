package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"golf-caddy/internal/config"
	"golf-caddy/internal/db"
	apihttp "golf-caddy/internal/http"
	"golf-caddy/internal/llm"
	"golf-caddy/internal/repository"
	"golf-caddy/internal/service"
)

// App agrupa los servicios cableados según la configuración.
type App struct {
	Logger   *zap.Logger
	Accounts *service.AccountService
	Caddy    *service.CaddyService

	closers []func()
}

// New abre el store elegido, construye el cliente generativo y restaura la sesión.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Logger: logger}

	store, err := a.openStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	tokens, err := service.NewSessionTokenService(cfg.SessionSecret, 0)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("session tokens: %w", err)
	}
	if cfg.SessionSecret == "" {
		logger.Info("SESSION_SECRET not set; session tokens are reissued on every start")
	}

	a.Accounts = service.NewAccountService(ctx, logger, store, tokens)
	a.Caddy = service.NewCaddyService(logger, newLLMClient(cfg, logger), a.Accounts)
	return a, nil
}

// Router arma el API HTTP local sobre los servicios de la app.
func (a *App) Router() *gin.Engine {
	return apihttp.NewRouter(a.Logger, a.Accounts,
		apihttp.NewAccountHandler(a.Logger, a.Accounts),
		apihttp.NewCaddyHandler(a.Logger, a.Caddy, a.Accounts),
	)
}

// Close libera el store en orden inverso de apertura.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (repository.KVStore, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		a.Logger.Warn("STORE_DRIVER=memory: accounts and session are lost on exit")
		return repository.NewMemoryKVStore(), nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, func() { _ = client.Close() })
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(ctxPing).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return repository.NewRedisKVStore(client), nil

	case config.StorePostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := db.Ping(ctx, pool); err != nil {
			return nil, fmt.Errorf("db ping: %w", err)
		}
		store := repository.NewPgKVStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure kv schema: %w", err)
		}
		return store, nil

	default:
		store, err := repository.OpenSQLiteKVStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		a.closers = append(a.closers, func() { _ = store.Close() })
		return store, nil
	}
}

func newLLMClient(cfg *config.Config, logger *zap.Logger) llm.LLMClient {
	if cfg.LLMProvider == config.ProviderOpenAI {
		return llm.NewHTTPClient(cfg.LLMBaseURL, cfg.APIKey, cfg.LLMModel, logger)
	}
	return llm.NewGeminiClient(cfg.APIKey, cfg.LLMModel, logger)
}
