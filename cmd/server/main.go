package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/api"
	"github.com/yourname/habitquest/internal/config"
	"github.com/yourname/habitquest/internal/oracle"
	"github.com/yourname/habitquest/internal/recommend"
	"github.com/yourname/habitquest/internal/storage"
)

type app struct {
	logger internal.Logger
	store  storage.Store
	engine *recommend.Engine
}

func (a *app) Logger() internal.Logger         { return a.logger }
func (a *app) Habits() storage.HabitRepository { return a.store }
func (a *app) Goals() storage.GoalRepository   { return a.store }
func (a *app) Users() storage.UserRepository   { return a.store }
func (a *app) Engine() *recommend.Engine       { return a.engine }

var _ api.App = (*app)(nil)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.DBType == "file" {
		ensureDataDir(cfg.FileHabits, cfg.FileGoals, cfg.FileUsers)
	}

	store, err := storage.New(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	client := oracle.NewOpenAIClient(cfg.OracleAPIKey, cfg.OracleModel)
	engine := recommend.NewEngine(client, store, cfg.OracleTimeout, logger)

	a := &app{logger: logger, store: store, engine: engine}
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewRouter(a),
	}

	go func() {
		logger.Infof("server running on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := store.Close(); err != nil {
		logger.Errorf("storage flush: %v", err)
	}
}

func ensureDataDir(files ...string) {
	for _, f := range files {
		dir := filepath.Dir(f)
		if dir == "." || dir == "" {
			continue
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			_ = os.MkdirAll(dir, 0755)
		}
	}
}
