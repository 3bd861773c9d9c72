package main

import (
	"context"
	"log"
	"time"

	"github.com/WiLayd/serverless-transport-task/internal/core/config"
	"github.com/WiLayd/serverless-transport-task/internal/core/logger"
	"github.com/WiLayd/serverless-transport-task/internal/core/store"
	routeadapter "github.com/WiLayd/serverless-transport-task/internal/features/routes/adapters"
	routedomain "github.com/WiLayd/serverless-transport-task/internal/features/routes/domain"
	transportadapter "github.com/WiLayd/serverless-transport-task/internal/features/transports/adapters"
	transportdomain "github.com/WiLayd/serverless-transport-task/internal/features/transports/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeds the document store with a handful of transports and routes so the
// API has data to play with locally.
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

	documentStore, err := store.NewRedisStore(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to create document store", zap.Error(err))
	}
	defer documentStore.Close()

	ctx := context.Background()
	if err := documentStore.Ping(ctx); err != nil {
		l.Fatal("Document store health check failed", zap.Error(err))
	}

	busyTruckID := uuid.NewString()
	busyCarID := uuid.NewString()
	now := time.Now().UTC()

	transports := []transportdomain.Transport{
		{ID: uuid.NewString(), LicensePlate: "AA 1234 BC", Model: "Volvo FH16", Type: transportdomain.TypeTruck, Capacity: 24000, PricePerKmEUR: 1.8, Status: transportdomain.StatusFree, CreatedAt: now},
		{ID: uuid.NewString(), LicensePlate: "BH 5678 AI", Model: "Mercedes-Benz Actros", Type: transportdomain.TypeTruck, Capacity: 25000, PricePerKmEUR: 1.9, Status: transportdomain.StatusFree, CreatedAt: now},
		{ID: busyTruckID, LicensePlate: "CE 9012 EH", Model: "Scania R-series", Type: transportdomain.TypeTruck, Capacity: 24000, PricePerKmEUR: 1.7, Status: transportdomain.StatusBusy, CreatedAt: now},
		{ID: uuid.NewString(), LicensePlate: "AB 1122 IK", Model: "MAN TGX", Type: transportdomain.TypeTruck, Capacity: 23000, PricePerKmEUR: 1.6, Status: transportdomain.StatusFree, CreatedAt: now},
		{ID: uuid.NewString(), LicensePlate: "BI 3344 KM", Model: "DAF XF", Type: transportdomain.TypeTruck, Capacity: 24500, PricePerKmEUR: 1.75, Status: transportdomain.StatusFree, CreatedAt: now},
		{ID: uuid.NewString(), LicensePlate: "AX 5566 OI", Model: "Ford Transit", Type: transportdomain.TypeCar, Capacity: 1500, PricePerKmEUR: 0.8, Status: transportdomain.StatusFree, CreatedAt: now},
		{ID: busyCarID, LicensePlate: "BC 7788 AP", Model: "Mercedes-Benz Sprinter", Type: transportdomain.TypeCar, Capacity: 1800, PricePerKmEUR: 0.9, Status: transportdomain.StatusBusy, CreatedAt: now},
		{ID: uuid.NewString(), LicensePlate: "AE 9900 AT", Model: "Volkswagen Crafter", Type: transportdomain.TypeCar, Capacity: 1600, PricePerKmEUR: 0.85, Status: transportdomain.StatusFree, CreatedAt: now},
	}

	routes := []routedomain.Route{
		{ID: uuid.NewString(), StartCity: "Kyiv", EndCity: "Lviv", DistanceKm: 540, DispatchDate: "2025-10-22T00:00:00Z", RequiredTransportType: transportdomain.TypeCar, ExpectedRevenueUSD: 700, Status: routedomain.StatusPending, CreatedAt: now},
		{ID: uuid.NewString(), StartCity: "Odesa", EndCity: "Krakow", DistanceKm: 1150, DispatchDate: "2025-10-18T00:00:00Z", RequiredTransportType: transportdomain.TypeTruck, ExpectedRevenueUSD: 2500, TransportID: &busyTruckID, Status: routedomain.StatusInProgress, CreatedAt: now},
		{ID: uuid.NewString(), StartCity: "Vinnytsia", EndCity: "Prague", DistanceKm: 1200, DispatchDate: "2025-11-05T00:00:00Z", RequiredTransportType: transportdomain.TypeTruck, ExpectedRevenueUSD: 2800, Status: routedomain.StatusPending, CreatedAt: now},
		{ID: uuid.NewString(), StartCity: "Kharkiv", EndCity: "Warsaw", DistanceKm: 1300, DispatchDate: "2025-11-12T00:00:00Z", RequiredTransportType: transportdomain.TypeTruck, ExpectedRevenueUSD: 3000, Status: routedomain.StatusPending, CreatedAt: now},
		{ID: uuid.NewString(), StartCity: "Dnipro", EndCity: "Berlin", DistanceKm: 1900, DispatchDate: "2025-12-01T00:00:00Z", RequiredTransportType: transportdomain.TypeCar, ExpectedRevenueUSD: 1200, TransportID: &busyCarID, Status: routedomain.StatusInProgress, CreatedAt: now},
	}

	transportRepo := transportadapter.NewRedisTransportRepository(documentStore)
	for i := range transports {
		if err := transportRepo.Save(ctx, &transports[i]); err != nil {
			l.Fatal("Failed to seed transport", zap.Error(err))
		}
	}

	routeRepo := routeadapter.NewRedisRouteRepository(documentStore)
	for i := range routes {
		if err := routeRepo.Save(ctx, &routes[i]); err != nil {
			l.Fatal("Failed to seed route", zap.Error(err))
		}
	}

	l.Info("Seed completed",
		zap.Int("transports", len(transports)),
		zap.Int("routes", len(routes)),
	)
}
