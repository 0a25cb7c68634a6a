package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/focodev/site/backend/internal/config"
	"github.com/focodev/site/backend/internal/database"
	"github.com/focodev/site/backend/internal/logger"
	"github.com/focodev/site/backend/internal/metrics"
	"github.com/focodev/site/backend/internal/models"
	"github.com/focodev/site/backend/internal/server"
	"github.com/focodev/site/backend/internal/version"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Log().WithError(err).Fatal("load config")
	}

	setupLogging(cfg)
	log := logger.Component("main")

	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}

	// Handle CLI commands
	if len(os.Args) > 1 && os.Args[1] == "reset-password" {
		if len(os.Args) != 4 {
			log.Fatalf("Usage: %s reset-password <email> <new-password>", os.Args[0])
		}
		if err := resetPassword(db, os.Args[2], os.Args[3]); err != nil {
			log.WithError(err).Fatal("reset password")
		}
		log.WithField("email", models.NormalizeEmail(os.Args[2])).Info("Password updated")
		return
	}

	log.WithField("version", version.Full()).Infof("starting %s backend", version.Name)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Register(registry)

	srv, err := server.New(db, cfg, registry)
	if err != nil {
		log.WithError(err).Fatal("build server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.WithError(err).Fatal("server error")
	}
	log.Info("server stopped")
}

// setupLogging sends logs to stdout and a rotated file under cfg.LogDir.
func setupLogging(cfg config.Config) {
	var out io.Writer = os.Stdout
	if err := os.MkdirAll(cfg.LogDir, 0o755); err == nil {
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, "focodev.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotator)
	}
	logger.Init(cfg.Debug, out)
}

func resetPassword(db *gorm.DB, email, password string) error {
	if err := database.Migrate(db); err != nil {
		return err
	}
	var user models.User
	if err := db.Where("email = ?", models.NormalizeEmail(email)).First(&user).Error; err != nil {
		return err
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	return db.Model(&user).Update("password_hash", user.PasswordHash).Error
}
