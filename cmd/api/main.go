package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-task-manager/backend/internal/config"
	"go-task-manager/backend/internal/database"
	"go-task-manager/backend/internal/repositories"
	"go-task-manager/backend/internal/routes"
	"go-task-manager/backend/internal/seed"
	"go-task-manager/backend/pkg/translator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Fatal: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Fatal: failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	translator.InitTranslator(translator.Config{
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	db, err := database.Connect(cfg.DB)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	if err := database.Migrate(startupCtx, db); err != nil {
		cancel()
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	if cfg.SeedData {
		opts := seed.Options{AdminEmail: cfg.AdminEmail, AdminPassword: cfg.AdminPassword}
		if err := seed.Run(startupCtx, repositories.NewUnitOfWork(db), opts, logger.Named("seed")); err != nil {
			cancel()
			logger.Fatal("failed to seed database", zap.Error(err))
		}
	}
	cancel()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           routes.SetupRouter(cfg, db, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()

	// HTTPサーバーを止めてからDBを閉じる
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				logger.Info("shutting down http server")
				if err := server.Shutdown(ctx); err != nil {
					return err
				}
				return db.Close()
			},
		},
	)

	exitCode := <-wait
	logger.Info("application exited", zap.Int("code", exitCode))
	_ = logger.Sync()
	os.Exit(exitCode)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
