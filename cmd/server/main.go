// Command server runs the nova-arena game server: it accepts websocket
// connections, matches and runs rooms, and exposes Prometheus metrics.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nova-arena/internal/app"
	"nova-arena/internal/auth"
	"nova-arena/internal/config"
	"nova-arena/internal/logging"
	"nova-arena/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		println("config: " + err.Error())
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	accounts, err := auth.OpenStore(cfg.AccountStorePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open account store")
	}
	sessions := auth.NewSessionManager([]byte(cfg.SessionSecret), time.Duration(cfg.SessionTTLHours)*time.Hour)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	srv := app.New(cfg, log, m, accounts, sessions)

	mux := http.NewServeMux()
	mux.Handle("/ws", srv.Host())
	gameServer := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}

	go srv.Run()

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("game server listening")
		if err := gameServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("game server failed")
		}
	}()

	go func() {
		log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics server listening")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	srv.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = gameServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)
}
