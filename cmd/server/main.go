package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"vicecity-server/internal/agent"
	"vicecity-server/internal/config"
	"vicecity-server/internal/engine"
	"vicecity-server/internal/infrastructure/storage"
	"vicecity-server/internal/server"
	"vicecity-server/internal/version"
	"vicecity-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг флагов
	var (
		configPath string
		seed       int64
		replayPath string
		withBot    bool
	)
	flag.StringVar(&configPath, "config", "", "Path to JSON/YAML config file")
	// 0 - оставить сид из конфига (по умолчанию случайный)
	flag.Int64Var(&seed, "seed", 0, "World seed (0 keeps config/random seed)")
	flag.StringVar(&replayPath, "replay", "", "Path to .vcrp replay file to re-simulate")
	flag.BoolVar(&withBot, "bot", false, "Let the headless bot drive the agent")
	flag.Parse()

	settings, err := config.Load(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	logger.Configure(settings.Log.Level, settings.Log.Format, os.Stdout)

	logger.Log.Info("Starting Vice City...")
	logger.Log.Info(version.String())

	// РЕЖИМ РЕПЛЕЯ: пересчитываем запись и выходим
	if replayPath != "" {
		runReplay(settings.Engine, replayPath)
		return
	}

	cfg := settings.Engine
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using Master Seed: %d", cfg.Seed)
	}

	// 2. Инициализация ядра
	gameService, err := engine.NewService(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build world")
	}

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(gameService, settings.Server.Addr)
	srv.Debug = settings.Server.Debug
	srv.ReadHeaderTimeout = settings.Server.ReadHeaderTimeout

	// 3. Симуляция, сервер и (опционально) бот живут до сигнала
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return gameService.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx) })
	if withBot {
		g.Go(func() error {
			agent.NewBot("bot", gameService).Run(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.WithError(err).Error("Shutdown with error")
	}
	logger.Log.Info("Shutting down...")

	if settings.Replay.Enabled {
		saveReplay(gameService, settings.Replay.Dir)
	}
	logger.Log.Info("Done.")
}

func saveReplay(svc *engine.GameService, dir string) {
	rs, err := storage.NewReplayService(dir)
	if err != nil {
		logger.Log.WithError(err).Error("Replay dir unavailable")
		return
	}
	session := svc.Replay()
	if _, err := rs.Save(&session); err != nil {
		logger.Log.WithError(err).Error("Failed to save replay")
	}
}

func runReplay(cfg engine.Config, path string) {
	logger.Log.Info("💿 Mode: Replay Simulation")

	session, err := storage.LoadFile(path)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load replay")
	}

	sim, err := engine.Playback(cfg, *session)
	if err != nil {
		logger.Log.WithError(err).Fatal("Replay playback failed")
	}

	status := sim.AgentStatus()
	logger.Log.WithFields(logrus.Fields{
		"frame":   sim.Frame,
		"x":       status.X,
		"y":       status.Y,
		"driving": status.VehicleID,
	}).Info("Final agent state")
}
