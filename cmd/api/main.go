package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campuscare/internal/config"
	"campuscare/internal/database"
	"campuscare/internal/notify"
	"campuscare/internal/repository/postgres"
	"campuscare/internal/router"
	"campuscare/internal/service"
	"campuscare/internal/upload"
	"campuscare/pkg/logger"
)

func main() {
	// config + logger
	cfg := config.Load()
	l := logger.New(cfg.Env)

	// db
	pool, err := database.Open(context.Background(), cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("db connect failed")
	}
	defer pool.Close()

	if err := database.Migrate(context.Background(), pool); err != nil {
		l.Fatal().Err(err).Msg("db migration failed")
	}

	// evidence uploads
	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		l.Fatal().Err(err).Msg("upload dir setup failed")
	}

	// http
	r := router.New(l, pool, cfg, uploads)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// pending-request sweep
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	dispatcher := notify.NewDispatcher(notify.NewSMTPMailer(cfg, l), postgres.NewNotificationRepo(pool), l)
	sweep := service.NewSweep(postgres.NewRequestRepo(pool), postgres.NewUserRepo(pool), dispatcher, cfg.SweepInterval, l)
	go sweep.Run(sweepCtx)

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
}
