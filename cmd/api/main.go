package main

import (
	"context"
	"log"

	"github.com/WiLayd/serverless-transport-task/internal/core/config"
	"github.com/WiLayd/serverless-transport-task/internal/core/httpclient"
	"github.com/WiLayd/serverless-transport-task/internal/core/logger"
	"github.com/WiLayd/serverless-transport-task/internal/core/server"
	"github.com/WiLayd/serverless-transport-task/internal/core/store"
	ratesadapter "github.com/WiLayd/serverless-transport-task/internal/features/rates/adapters"
	ratesservice "github.com/WiLayd/serverless-transport-task/internal/features/rates/service"
	routeadapter "github.com/WiLayd/serverless-transport-task/internal/features/routes/adapters"
	routehandler "github.com/WiLayd/serverless-transport-task/internal/features/routes/handler"
	routeservice "github.com/WiLayd/serverless-transport-task/internal/features/routes/service"
	transportadapter "github.com/WiLayd/serverless-transport-task/internal/features/transports/adapters"
	transporthandler "github.com/WiLayd/serverless-transport-task/internal/features/transports/handler"
	transportservice "github.com/WiLayd/serverless-transport-task/internal/features/transports/service"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize the document store and verify connectivity.
	documentStore, err := store.NewRedisStore(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to create document store", zap.Error(err))
	}
	defer documentStore.Close()

	if err := documentStore.Ping(context.Background()); err != nil {
		l.Fatal("Document store health check failed", zap.Error(err))
	}
	l.Info("Document store connection verified")

	// Initialize the currency conversion stack.
	fixerAdapter := ratesadapter.NewFixerAdapter(cfg.Fixer, httpclient.NewClient(cfg.HTTPClientTimeout))
	rateCache := ratesservice.NewCache(fixerAdapter, cfg.Fixer.CacheTTL)
	converter := ratesservice.NewConverter(rateCache)

	// Initialize Transport Service & Handler.
	transportRepo := transportadapter.NewRedisTransportRepository(documentStore)
	transportSvc := transportservice.NewTransportService(transportRepo)
	transportHdl := transporthandler.NewTransportHandler(transportSvc)

	// Initialize Route Service & Handler.
	routeRepo := routeadapter.NewRedisRouteRepository(documentStore)
	routeSvc := routeservice.NewRouteService(routeRepo, transportRepo, routeRepo, converter)
	routeHdl := routehandler.NewRouteHandler(routeSvc)

	srv := server.New(cfg)

	// Register Routes.
	srv.App.Post("/transports", transportHdl.Create)
	srv.App.Get("/transports", transportHdl.List)
	srv.App.Patch("/transports/:id", transportHdl.Update)
	srv.App.Delete("/transports/:id", transportHdl.Delete)

	srv.App.Post("/routes", routeHdl.Create)
	srv.App.Get("/routes", routeHdl.List)
	srv.App.Patch("/routes/:id", routeHdl.Update)
	srv.App.Delete("/routes/:id", routeHdl.Delete)
	srv.App.Post("/routes/:id/assign", routeHdl.AssignTransport)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
