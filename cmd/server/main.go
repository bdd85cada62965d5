package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"employee_directory/internal/app/di"
	"employee_directory/internal/app/router"
	employeehandler "employee_directory/internal/feature/employee/transport/handler"
	"employee_directory/internal/feature/employee/usecase"
	"employee_directory/internal/feature/employee/validation"
	"employee_directory/internal/platform/cache"
	"employee_directory/internal/platform/config"
	"employee_directory/internal/platform/db"
	"employee_directory/internal/platform/http/handler"
	"employee_directory/internal/platform/logger"
	infraredis "employee_directory/internal/platform/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ./config.yaml or ./config/config.yaml)")
	flag.Parse()

	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			zl.Error("failed to close database", zap.Error(err))
		}
	}()
	zl.Info("database ready", zap.String("driver", cfg.DB.Driver))

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis, zl); err != nil {
			zl.Warn("Redis unavailable. Running without cache.", zap.Error(err))
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					zl.Error("failed to close Redis client", zap.Error(err))
				}
			}()
		}
	}

	// Repository
	repo := di.NewEmployeeRepository(rdb, gdb, cfg.Redis.TTL)
	if cached, ok := repo.(*cache.CachingEmployeeRepository); ok {
		if err := cached.Purge(ctx); err != nil {
			zl.Warn("failed to purge employee cache", zap.Error(err))
		}
	}

	// Usecase
	employeeUC := usecase.NewEmployeeUsecase(repo, validation.New())

	// Handler
	employeeH := employeehandler.NewEmployeeHandler(employeeUC, zl)

	// ルータ生成
	checks := []handler.Check{func(ctx context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}}
	r := router.NewRouter(employeeH, zl, router.Options{
		CORSOrigins:  cfg.Server.CORSOrigins,
		HealthChecks: checks,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
