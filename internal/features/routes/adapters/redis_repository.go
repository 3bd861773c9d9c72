package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/WiLayd/serverless-transport-task/internal/core/store"
	"github.com/WiLayd/serverless-transport-task/internal/features/routes/domain"
	"github.com/WiLayd/serverless-transport-task/internal/features/routes/ports"
	transportadapters "github.com/WiLayd/serverless-transport-task/internal/features/transports/adapters"
	transportdomain "github.com/WiLayd/serverless-transport-task/internal/features/transports/domain"
)

const keyPrefix = "route:"

// Key returns the document-store key for a route id.
func Key(id string) string {
	return keyPrefix + id
}

// RedisRouteRepository implements ports.RouteRepository and
// ports.AssignmentWriter on the document store.
type RedisRouteRepository struct {
	store store.DocumentStore
}

// NewRedisRouteRepository creates a new RedisRouteRepository.
func NewRedisRouteRepository(s store.DocumentStore) *RedisRouteRepository {
	return &RedisRouteRepository{store: s}
}

// Save stores the route document.
func (r *RedisRouteRepository) Save(ctx context.Context, route *domain.Route) error {
	if err := r.store.Put(ctx, Key(route.ID), route); err != nil {
		return fmt.Errorf("failed to save route: %w", err)
	}
	return nil
}

// Get retrieves a route by id.
func (r *RedisRouteRepository) Get(ctx context.Context, id string) (*domain.Route, error) {
	raw, err := r.store.Get(ctx, Key(id))
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	return unmarshalRoute(raw)
}

// Update merges fields into the stored route document.
func (r *RedisRouteRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Route, error) {
	raw, err := r.store.Update(ctx, Key(id), fields)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update route: %w", err)
	}

	return unmarshalRoute(raw)
}

// Delete removes the route document.
func (r *RedisRouteRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, Key(id)); err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	return nil
}

// List returns one page of routes and the cursor for the next page.
func (r *RedisRouteRepository) List(ctx context.Context, limit int64, cursor string) ([]domain.Route, string, error) {
	docs, next, err := r.store.Scan(ctx, keyPrefix, limit, cursor)
	if err != nil {
		return nil, "", err
	}

	routes := make([]domain.Route, 0, len(docs))
	for _, raw := range docs {
		var route domain.Route
		if err := json.Unmarshal(raw, &route); err != nil {
			return nil, "", fmt.Errorf("failed to unmarshal route: %w", err)
		}
		routes = append(routes, route)
	}

	return routes, next, nil
}

// CommitAssignment executes the assignment transaction: both updates commit
// together or not at all, each conditioned on the status the workflow
// observed. A condition that no longer holds at commit time reports
// domain.ErrAssignmentConflict.
func (r *RedisRouteRepository) CommitAssignment(ctx context.Context, routeID, transportID string, cost ports.AssignmentCost) error {
	err := r.store.CommitTx(ctx, []store.ConditionalWrite{
		{
			Key: Key(routeID),
			Set: map[string]any{
				"status":      string(domain.StatusInProgress),
				"transportId": transportID,
				"costEUR":     cost.EUR,
				"costUSD":     cost.USD,
				"costUAH":     cost.UAH,
			},
			Condition: &store.FieldCondition{Field: "status", Equals: string(domain.StatusPending)},
		},
		{
			Key: transportadapters.Key(transportID),
			Set: map[string]any{
				"status": string(transportdomain.StatusBusy),
			},
			Condition: &store.FieldCondition{Field: "status", Equals: string(transportdomain.StatusFree)},
		},
	})
	if errors.Is(err, store.ErrConditionFailed) {
		return domain.ErrAssignmentConflict
	}
	if err != nil {
		return fmt.Errorf("failed to commit assignment: %w", err)
	}
	return nil
}

func unmarshalRoute(raw []byte) (*domain.Route, error) {
	var route domain.Route
	if err := json.Unmarshal(raw, &route); err != nil {
		return nil, fmt.Errorf("failed to unmarshal route: %w", err)
	}
	return &route, nil
}
