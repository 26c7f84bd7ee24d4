package main

import (
	"poultry-backend/internal/config"
	"poultry-backend/internal/database"
	"poultry-backend/internal/scheduler"
	"poultry-backend/internal/server"
	"poultry-backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.Must(logger.New())
	defer log.Sync()

	if err := database.Init(cfg); err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	log.Info("database connected, migrations applied")

	sched := scheduler.New(logger.Named(log, "scheduler"))
	if err := sched.Start(cfg.AlertCron); err != nil {
		log.Fatal("could not start alert scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := server.New(cfg, logger.Named(log, "http"))

	log.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
