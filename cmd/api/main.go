package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"construction-pm/internal/core/auth"
	"construction-pm/internal/core/cache"
	"construction-pm/internal/core/config"
	"construction-pm/internal/core/database"
	"construction-pm/internal/core/logger"
	"construction-pm/internal/core/server"
	"construction-pm/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	undo := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer undo()
	server.SetMode(cfg.App.Env)

	db, err := database.NewGorm(database.OptsFromConfig(cfg.DB), log)
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	opt := router.Options{HTTP: cfg.HTTP}
	if cfg.Redis.Addr != "" {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer c.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := c.Ping(pingCtx); err != nil {
			// reads fall through to the database while redis is down
			log.Warn("redis unreachable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		cancel()
		opt.ProjectCache = c
		opt.CacheTTL = time.Duration(cfg.Redis.TTLSec) * time.Second
		log.Info("project cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	r := router.NewAPIEngine(log, db, jwter, opt)

	addr := server.Addr(cfg.HTTP.Host, cfg.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.HTTP.IdleTimeoutSec)*time.Second,
	)

	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start failed", zap.Error(err))
		}
	}()
	log.Info("api started", zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("api stopped gracefully")
}
