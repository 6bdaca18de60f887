package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"todo-server/internal/config"
	"todo-server/internal/infrastructure/logger"
	"todo-server/internal/interfaces/httpserver"
)

type Application struct {
	Config     *config.Config
	HTTPServer *httpserver.HTTPServer
}

func (application *Application) Start() error {
	var eg errgroup.Group
	eg.Go(func() error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		return http.ListenAndServe(fmt.Sprintf(":%d", application.Config.MetricsPort), mux)
	})
	eg.Go(func() error {
		return application.HTTPServer.Run()
	})
	return eg.Wait()
}

func main() {
	log := logger.GetLogger()

	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}

	log.Info().
		Int("http_port", application.Config.HTTPPort).
		Int("metrics_port", application.Config.MetricsPort).
		Str("completion_provider", application.Config.CompletionProvider).
		Str("version", config.Version).
		Msg("starting server")

	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
