package app

import (
	"context"

	adminAPI "judol_backend/internal/api/admin"
	eventsAPI "judol_backend/internal/api/events"
	gameAPI "judol_backend/internal/api/game"
	"judol_backend/internal/broker"
	"judol_backend/internal/broker/memory_broker"
	"judol_backend/internal/broker/redis_broker"
	"judol_backend/internal/config"
	"judol_backend/internal/config/env"
	"judol_backend/internal/middleware"
	"judol_backend/internal/repository"
	"judol_backend/internal/repository/settings_memory_repo"
	"judol_backend/internal/repository/settings_pg_repo"
	"judol_backend/internal/repository/settings_redis_repo"
	"judol_backend/internal/service"
	gameServ "judol_backend/internal/service/game"
	settingsServ "judol_backend/internal/service/settings"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"log"
)

type ServiceProvider struct {
	// Выбор бэкенда хранилища настроек
	backendCfg config.SettingsBackendConfig

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Redis
	redisConfig config.RedisConfig
	redisClient *redis.Client

	// Settings bits
	settingsRepo repository.SettingsRepository
	eventBroker  broker.EventBroker
	settingsSrv  service.SettingsService
	watcher      *settingsServ.Watcher

	// Game bits
	gameCfg config.GameConfig
	gameSrv service.GameService
	gameHnd *gameAPI.Handler

	// Admin bits
	jwtCfg   config.JWTConfig
	adminCfg config.AdminConfig
	adminHnd *adminAPI.Handler

	// Events bits
	eventsHnd *eventsAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) SettingsBackendCfg() config.SettingsBackendConfig {
	if sp.backendCfg == nil {
		cfg, err := env.NewSettingsBackendConfig()
		if err != nil {
			panic("failed to get settings backend config: " + err.Error())
		}
		sp.backendCfg = cfg
	}
	return sp.backendCfg
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) RedisConfig() config.RedisConfig {
	if sp.redisConfig == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisConfig = cfg
	}
	return sp.redisConfig
}

func (sp *ServiceProvider) RedisClient(ctx context.Context) *redis.Client {
	if sp.redisClient == nil {
		client := redis.NewClient(&redis.Options{
			Addr:     sp.RedisConfig().Addr(),
			Password: sp.RedisConfig().Password(),
			DB:       sp.RedisConfig().DB(),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			panic("failed to ping redis: " + err.Error())
		}
		sp.redisClient = client
	}
	return sp.redisClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) SettingsRepo(ctx context.Context) repository.SettingsRepository {
	if sp.settingsRepo == nil {
		switch sp.SettingsBackendCfg().Backend() {
		case env.BackendPostgres:
			sp.settingsRepo = settings_pg_repo.NewSettingsRepository(sp.DBClient(ctx))
		case env.BackendMemory:
			sp.settingsRepo = settings_memory_repo.NewSettingsRepository()
		default:
			sp.settingsRepo = settings_redis_repo.NewSettingsRepository(sp.RedisClient(ctx))
		}

		// Запись по умолчанию; отсутствие записи не фатально
		if err := sp.settingsRepo.Init(ctx); err != nil {
			log.Printf("failed to init settings record: %v", err)
		}
	}
	return sp.settingsRepo
}

func (sp *ServiceProvider) EventBroker(ctx context.Context) broker.EventBroker {
	if sp.eventBroker == nil {
		// Pub/sub есть только у Redis; остальные бэкенды работают
		// с внутрипроцессным брокером
		if sp.SettingsBackendCfg().Backend() == env.BackendRedis {
			sp.eventBroker = redis_broker.NewBroker(sp.RedisClient(ctx))
		} else {
			sp.eventBroker = memory_broker.NewBroker()
		}
	}
	return sp.eventBroker
}

func (sp *ServiceProvider) SettingsService(ctx context.Context) service.SettingsService {
	if sp.settingsSrv == nil {
		var txManager trm.Manager
		if sp.SettingsBackendCfg().Backend() == env.BackendPostgres {
			txManager = sp.TXManager(ctx)
		}
		sp.settingsSrv = settingsServ.NewSettingsService(sp.SettingsRepo(ctx), sp.EventBroker(ctx), txManager)
	}
	return sp.settingsSrv
}

func (sp *ServiceProvider) Watcher(ctx context.Context) *settingsServ.Watcher {
	if sp.watcher == nil {
		sp.watcher = settingsServ.NewWatcher(sp.SettingsService(ctx))
		sp.watcher.Start(ctx)
	}
	return sp.watcher
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) GameService(ctx context.Context) service.GameService {
	if sp.gameSrv == nil {
		sp.gameSrv = gameServ.NewGameService(sp.GameCfg(), sp.SettingsService(ctx), sp.Watcher(ctx))
	}
	return sp.gameSrv
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHnd == nil {
		sp.gameHnd = gameAPI.NewHandler(gameAPI.HandlerDeps{
			GameServ:     sp.GameService(ctx),
			SettingsServ: sp.SettingsService(ctx),
		})
	}
	return sp.gameHnd
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) AdminCfg() config.AdminConfig {
	if sp.adminCfg == nil {
		cfg, err := env.NewAdminConfig()
		if err != nil {
			panic("failed to get admin config: " + err.Error())
		}
		sp.adminCfg = cfg
	}
	return sp.adminCfg
}

func (sp *ServiceProvider) AdminHandler(ctx context.Context) *adminAPI.Handler {
	if sp.adminHnd == nil {
		sp.adminHnd = adminAPI.NewHandler(adminAPI.HandlerDeps{
			SettingsServ: sp.SettingsService(ctx),
			AdminCfg:     sp.AdminCfg(),
			JWTCfg:       sp.JWTCfg(),
		})
	}
	return sp.adminHnd
}

func (sp *ServiceProvider) EventsHandler(ctx context.Context) *eventsAPI.Handler {
	if sp.eventsHnd == nil {
		sp.eventsHnd = eventsAPI.NewHandler(eventsAPI.HandlerDeps{
			SettingsServ: sp.SettingsService(ctx),
		})
	}
	return sp.eventsHnd
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Cache-Control"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		gameHandler := sp.GameHandler(ctx)
		eventsHandler := sp.EventsHandler(ctx)
		adminHandler := sp.AdminHandler(ctx)

		// Публичные endpoints
		r.Get("/game-settings", gameHandler.GetSettings)
		r.Get("/game-events", eventsHandler.Stream)

		// Операторские endpoints
		r.Post("/admin-login", adminHandler.Login)
		r.With(middleware.AdminAuth(sp.JWTCfg().AccessTokenSecretKey())).
			Post("/admin-settings", adminHandler.UpdateSettings)

		// Игровые endpoints
		r.Route("/game", func(rr chi.Router) {
			rr.Post("/session", gameHandler.NewSession)
			rr.Post("/spin", gameHandler.Spin)
			rr.Get("/state", gameHandler.State)
			rr.Post("/reset", gameHandler.Reset)
		})

		sp.router = r
	}

	return sp.router
}
