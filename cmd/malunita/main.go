// cmd/malunita/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"malunita/internal/ai"
	"malunita/internal/cluster"
	"malunita/internal/config"
	"malunita/internal/logging"
	"malunita/internal/mind"
	"malunita/internal/server"
	"malunita/internal/storage"
	"malunita/internal/task"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		logging.Setup("info", "")
		l := logging.Component("main")
		l.Fatal().Err(err).Msg("config load failed")
	}

	logging.Setup(cfg.LogLevel, cfg.LogFile)
	log := logging.Component("main")
	log.Info().Msg("starting malunita core")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(ctx, cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("storage open failed")
	}
	defer store.Close()

	var clusterer task.Clusterer
	if cfg.ClusterURL != "" {
		clusterer = cluster.New(cfg.ClusterURL, cfg.ClusterTimeout)
	}
	pipeline := task.NewPipeline(clusterer)

	provider, err := ai.NewProvider(cfg.AIProvider)
	if err != nil {
		log.Warn().Err(err).Msg("ai provider unavailable, clarifications use the local bank")
	}

	runner := mind.NewRunner(cfg.UserID, store, nil)
	if streak, err := store.Streak(cfg.UserID); err == nil {
		runner.Orb.SetStreak(streak)
	}
	if err := runner.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("mind runner start failed")
	}

	srv := server.New(cfg.ListenAddr, cfg.UserID, pipeline, runner, store, provider)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("api server error")
		}
		cancel()
	}

	log.Info().Msg("goodbye")
}
