package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"seo-ai/internal/config"
	"seo-ai/internal/handler"
	"seo-ai/internal/service"
	"seo-ai/pkg/logger"
	"seo-ai/pkg/monitor"
)

// Application holds the command-line options of the server.
type Application struct {
	configPath string
	debug      bool
}

func main() {
	app := &Application{}

	flag.StringVar(&app.configPath, "config", "config/dev.yaml", "Configuration file path")
	flag.BoolVar(&app.debug, "debug", false, "Enable debug mode")
	flag.Parse()

	if err := app.Run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func (app *Application) Run() error {
	mgr := config.NewManager()
	cfg, err := mgr.Load(app.configPath)
	if err != nil {
		return err
	}
	if app.debug {
		cfg.Logger.Level = "debug"
	}
	logger.SetLogger(logger.New(cfg.Logger))
	log := logger.GetLogger().WithField("component", "server")

	container, err := service.NewContainer(cfg)
	if err != nil {
		return err
	}

	var scheduler *monitor.Scheduler
	if cfg.Monitor.Enabled {
		scheduler = monitor.NewScheduler(container.Monitor, cfg.Monitor.Interval)
		if err := scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start monitor scheduler: %w", err)
		}
	}

	ctl := handler.NewController(handler.Services{
		Analyzer:   container.SEO,
		Generator:  container.Generator,
		Competitor: container.Competitor,
		Predictor:  container.Models,
		Schedule:   container.Planner,
		Monitor:    container.Monitor,
	})
	server := handler.NewServer(handler.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, ctl)

	log.WithFields(map[string]interface{}{
		"config":   app.configPath,
		"provider": container.LLM.Name(),
		"monitor":  cfg.Monitor.Enabled,
	}).Info("Starting seo-ai server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

wait:
	for {
		select {
		case sig := <-sigChan:
			if sig == syscall.SIGHUP {
				if err := container.Reload(mgr); err != nil {
					log.WithError(err).Error("Config reload failed")
				} else {
					log = logger.GetLogger().WithField("component", "server")
					log.WithField("level", mgr.GetConfig().Logger.Level).Info("Config reloaded")
				}
				continue
			}
			log.WithField("signal", sig.String()).Info("Shutdown signal received")
			break wait
		case err := <-errCh:
			if scheduler != nil {
				scheduler.Stop()
			}
			return fmt.Errorf("http server stopped: %w", err)
		}
	}

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
