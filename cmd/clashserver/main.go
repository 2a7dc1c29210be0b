// Package main provides the clash server binary: the combat HTTP API plus a
// gRPC health endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/clash/internal/arena"
	"github.com/cory-johannsen/clash/internal/config"
	"github.com/cory-johannsen/clash/internal/game/ability"
	"github.com/cory-johannsen/clash/internal/game/combat"
	"github.com/cory-johannsen/clash/internal/game/dice"
	"github.com/cory-johannsen/clash/internal/gameserver"
	"github.com/cory-johannsen/clash/internal/observability"
	"github.com/cory-johannsen/clash/internal/server"
	"github.com/cory-johannsen/clash/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty uses defaults and CLASH_* env only")
	envFile := flag.String("env-file", ".env", "optional dotenv file loaded before configuration")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && *envFile != ".env" {
		log.Fatalf("loading env file %s: %v", *envFile, err)
	}

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "clashserver")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	catalog, err := loadCatalog(cfg.Combat)
	if err != nil {
		logger.Fatal("loading ability catalog", zap.Error(err))
	}
	logger.Info("ability catalog loaded",
		zap.Int("abilities", len(catalog.All())),
		zap.Int("ex_moves", len(catalog.EXMoves())),
		zap.String("source", catalogSource(cfg.Combat)),
	)

	src := dice.NewCryptoSource()
	if cfg.Combat.Seed != 0 {
		src = dice.NewSeededSource(cfg.Combat.Seed)
		logger.Warn("using seeded dice", zap.Uint64("seed", cfg.Combat.Seed))
	}
	roller := dice.NewLoggedRoller(src, logger)

	engine := combat.NewEngine(catalog, roller,
		combat.WithLogger(logger),
		combat.WithHPSummary(cfg.Combat.HPSummary),
	)

	lifecycle := server.NewLifecycle(logger, cfg.Server.ShutdownTimeout)

	var (
		store  arena.Store
		health gameserver.HealthChecker
	)
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := postgres.Open(ctx, cfg.Database, postgres.Options{
			AutoMigrate: cfg.Storage.AutoMigrate,
			Logger:      logger,
		})
		if err != nil {
			logger.Fatal("opening database", zap.Error(err))
		}
		store, health = pool.Combatants(), pool

		done := make(chan struct{})
		lifecycle.Add("postgres", &server.FuncService{
			StartFn: func() error {
				ticker := time.NewTicker(30 * time.Second)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return nil
					case <-ticker.C:
						if err := pool.Health(ctx, 5*time.Second); err != nil {
							logger.Warn("database health check failed", zap.Error(err))
						}
					}
				}
			},
			StopFn: func(context.Context) error {
				close(done)
				pool.Close()
				return nil
			},
		})
	default:
		store = arena.NewMemoryStore()
	}

	rounds := arena.NewService(engine, store, roller, logger)
	e := gameserver.NewEcho(gameserver.NewHandler(engine, store, rounds, health, logger), logger)
	grpcServer, healthServer := gameserver.NewGRPCServer()

	lifecycle.Add("http", &server.FuncService{
		StartFn: func() error {
			logger.Info("HTTP server listening", zap.String("addr", cfg.Server.Addr()))
			if err := e.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
		StopFn: e.Shutdown,
	})

	lifecycle.Add("grpc", &server.FuncService{
		StartFn: func() error {
			lis, err := net.Listen("tcp", cfg.Server.GRPCAddr())
			if err != nil {
				return fmt.Errorf("listening on %s: %w", cfg.Server.GRPCAddr(), err)
			}
			logger.Info("gRPC health server listening",
				zap.String("addr", lis.Addr().String()),
			)
			return grpcServer.Serve(lis)
		},
		StopFn: func(context.Context) error {
			healthServer.Shutdown()
			grpcServer.GracefulStop()
			return nil
		},
	})

	logger.Info("clash server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("http_addr", cfg.Server.Addr()),
		zap.String("grpc_addr", cfg.Server.GRPCAddr()),
		zap.String("storage", cfg.Storage.Driver),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func loadCatalog(cfg config.CombatConfig) (*ability.Registry, error) {
	if cfg.AbilitiesFile == "" {
		return ability.Default()
	}
	return ability.Load(cfg.AbilitiesFile)
}

func catalogSource(cfg config.CombatConfig) string {
	if cfg.AbilitiesFile == "" {
		return "builtin"
	}
	return cfg.AbilitiesFile
}
