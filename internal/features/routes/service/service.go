package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/WiLayd/serverless-transport-task/internal/core/apperrors"
	"github.com/WiLayd/serverless-transport-task/internal/core/logger"
	"github.com/WiLayd/serverless-transport-task/internal/core/store"
	ratesports "github.com/WiLayd/serverless-transport-task/internal/features/rates/ports"
	"github.com/WiLayd/serverless-transport-task/internal/features/routes/domain"
	"github.com/WiLayd/serverless-transport-task/internal/features/routes/ports"
	transportdomain "github.com/WiLayd/serverless-transport-task/internal/features/transports/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RouteServiceImpl implements ports.RouteService.
type RouteServiceImpl struct {
	repo       ports.RouteRepository
	transports ports.TransportReader
	writer     ports.AssignmentWriter
	converter  ratesports.CurrencyConverter
}

// NewRouteService creates a new RouteServiceImpl.
func NewRouteService(
	repo ports.RouteRepository,
	transports ports.TransportReader,
	writer ports.AssignmentWriter,
	converter ratesports.CurrencyConverter,
) *RouteServiceImpl {
	return &RouteServiceImpl{
		repo:       repo,
		transports: transports,
		writer:     writer,
		converter:  converter,
	}
}

// Create validates the input and stores a new PENDING route.
func (s *RouteServiceImpl) Create(ctx context.Context, params ports.CreateRouteParams) (*domain.Route, error) {
	route, err := domain.NewRoute(
		uuid.NewString(),
		params.StartCity,
		params.EndCity,
		params.DistanceKm,
		params.DispatchDate,
		params.RequiredTransportType,
		params.ExpectedRevenueUSD,
	)
	if err != nil {
		return nil, apperrors.Validation("Invalid input parameters: %v.", err)
	}

	if err := s.repo.Save(ctx, route); err != nil {
		return nil, fmt.Errorf("service: failed to save route: %w", err)
	}

	return route, nil
}

// List returns one page of routes.
func (s *RouteServiceImpl) List(ctx context.Context, limit int64, cursor string) ([]domain.Route, string, error) {
	routes, next, err := s.repo.List(ctx, limit, cursor)
	if errors.Is(err, store.ErrInvalidCursor) {
		return nil, "", apperrors.Validation("Invalid lastEvaluatedKey parameter.")
	}
	if err != nil {
		return nil, "", fmt.Errorf("service: failed to list routes: %w", err)
	}

	return routes, next, nil
}

// Update applies a partial update to an existing route. Only enum membership
// is validated for status here; the assignment workflow owns the
// PENDING -> IN_PROGRESS transition.
func (s *RouteServiceImpl) Update(ctx context.Context, id string, params ports.UpdateRouteParams) (*domain.Route, error) {
	if params.Empty() {
		return nil, apperrors.Validation("At least one field must be provided for update")
	}

	fields, err := updateFields(params)
	if err != nil {
		return nil, apperrors.Validation("Invalid input parameters: %v.", err)
	}

	route, err := s.repo.Update(ctx, id, fields)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperrors.NotFound("Route not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to update route: %w", err)
	}

	return route, nil
}

// Delete removes a route. Deleting an unknown id is a no-op.
func (s *RouteServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete route: %w", err)
	}
	return nil
}

// AssignTransport atomically binds a transport to a route and records the
// computed cost in EUR, USD and UAH.
//
// The in-memory precondition checks give fast, readable errors; the
// conditional transaction behind the AssignmentWriter is the authoritative
// guard against concurrent assignments. Any failure before the commit leaves
// both records untouched, since the commit is the only mutating step.
func (s *RouteServiceImpl) AssignTransport(ctx context.Context, routeID, transportID string) (*domain.Route, error) {
	var (
		route        *domain.Route
		transport    *transportdomain.Transport
		routeErr     error
		transportErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		route, routeErr = s.repo.Get(gctx, routeID)
		if routeErr != nil && !errors.Is(routeErr, domain.ErrNotFound) {
			return routeErr
		}
		return nil
	})
	g.Go(func() error {
		transport, transportErr = s.transports.Get(gctx, transportID)
		if transportErr != nil && !errors.Is(transportErr, transportdomain.ErrNotFound) {
			return transportErr
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service: failed to fetch assignment records: %w", err)
	}

	if routeErr != nil {
		return nil, apperrors.NotFound("Route not found.")
	}
	if transportErr != nil {
		return nil, apperrors.NotFound("Transport not found.")
	}

	if route.Status != domain.StatusPending {
		return nil, apperrors.InvalidState("Route is not in PENDING state. Current state: %s", route.Status)
	}
	if transport.Status != transportdomain.StatusFree {
		return nil, apperrors.InvalidState("Transport is not AVAILABLE. Current state: %s", transport.Status)
	}
	if route.RequiredTransportType != transport.Type {
		return nil, apperrors.InvalidState(
			"Transport type mismatch. Route requires %s, but transport is %s.",
			route.RequiredTransportType, transport.Type,
		)
	}

	costEUR := decimal.NewFromFloat(route.DistanceKm).Mul(decimal.NewFromFloat(transport.PricePerKmEUR))
	costUSD, costUAH, err := s.converter.Convert(ctx, costEUR)
	if err != nil {
		return nil, err
	}

	cost := ports.AssignmentCost{
		EUR: costEUR.InexactFloat64(),
		USD: costUSD.InexactFloat64(),
		UAH: costUAH.InexactFloat64(),
	}

	logger.Get().Info("Calculated trip cost",
		zap.String("route_id", routeID),
		zap.String("transport_id", transportID),
		zap.Float64("cost_eur", cost.EUR),
		zap.Float64("cost_usd", cost.USD),
		zap.Float64("cost_uah", cost.UAH),
	)

	if err := s.writer.CommitAssignment(ctx, routeID, transportID, cost); err != nil {
		if errors.Is(err, domain.ErrAssignmentConflict) {
			return nil, apperrors.Conflict("Assignment failed. The state of the route or transport has changed. Please try again.")
		}
		return nil, fmt.Errorf("service: failed to commit assignment: %w", err)
	}

	updated, err := s.repo.Get(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to reload route after assignment: %w", err)
	}
	return updated, nil
}

// updateFields validates the provided fields and turns them into a document
// merge set.
func updateFields(params ports.UpdateRouteParams) (map[string]any, error) {
	fields := make(map[string]any)

	if params.StartCity != nil {
		if *params.StartCity == "" {
			return nil, domain.ErrEmptyStartCity
		}
		fields["startCity"] = *params.StartCity
	}
	if params.EndCity != nil {
		if *params.EndCity == "" {
			return nil, domain.ErrEmptyEndCity
		}
		fields["endCity"] = *params.EndCity
	}
	if params.DistanceKm != nil {
		if *params.DistanceKm <= 0 {
			return nil, domain.ErrInvalidDistance
		}
		fields["distanceKm"] = *params.DistanceKm
	}
	if params.DispatchDate != nil {
		if !domain.ValidISO8601(*params.DispatchDate) {
			return nil, domain.ErrInvalidDispatchDate
		}
		fields["dispatchDate"] = *params.DispatchDate
	}
	if params.CompletionDate != nil {
		if !domain.ValidISO8601(*params.CompletionDate) {
			return nil, domain.ErrInvalidCompletionDate
		}
		fields["completionDate"] = *params.CompletionDate
	}
	if params.RequiredTransportType != nil {
		if !transportdomain.ValidType(*params.RequiredTransportType) {
			return nil, transportdomain.ErrInvalidType
		}
		fields["requiredTransportType"] = string(*params.RequiredTransportType)
	}
	if params.ExpectedRevenueUSD != nil {
		fields["expectedRevenueUSD"] = *params.ExpectedRevenueUSD
	}
	if params.Status != nil {
		if !domain.ValidStatus(*params.Status) {
			return nil, domain.ErrInvalidStatus
		}
		fields["status"] = string(*params.Status)
	}

	return fields, nil
}
