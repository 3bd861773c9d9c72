package ports

import (
	"context"

	"github.com/WiLayd/serverless-transport-task/internal/features/routes/domain"
	transportdomain "github.com/WiLayd/serverless-transport-task/internal/features/transports/domain"
)

// CreateRouteParams carries the validated input for creating a route.
type CreateRouteParams struct {
	StartCity             string
	EndCity               string
	DistanceKm            float64
	DispatchDate          string
	RequiredTransportType transportdomain.Type
	ExpectedRevenueUSD    float64
}

// UpdateRouteParams carries a partial update; nil fields are untouched.
type UpdateRouteParams struct {
	StartCity             *string
	EndCity               *string
	DistanceKm            *float64
	DispatchDate          *string
	CompletionDate        *string
	RequiredTransportType *transportdomain.Type
	ExpectedRevenueUSD    *float64
	Status                *domain.Status
}

// Empty reports whether no field is set.
func (p UpdateRouteParams) Empty() bool {
	return p.StartCity == nil && p.EndCity == nil && p.DistanceKm == nil &&
		p.DispatchDate == nil && p.CompletionDate == nil &&
		p.RequiredTransportType == nil && p.ExpectedRevenueUSD == nil && p.Status == nil
}

// AssignmentCost is the computed cost of a route in the three currencies.
type AssignmentCost struct {
	EUR float64
	USD float64
	UAH float64
}

// RouteService defines the primary port for route operations.
type RouteService interface {
	Create(ctx context.Context, params CreateRouteParams) (*domain.Route, error)
	List(ctx context.Context, limit int64, cursor string) ([]domain.Route, string, error)
	Update(ctx context.Context, id string, params UpdateRouteParams) (*domain.Route, error)
	Delete(ctx context.Context, id string) error
	AssignTransport(ctx context.Context, routeID, transportID string) (*domain.Route, error)
}

// RouteRepository defines the secondary port for route storage.
type RouteRepository interface {
	Save(ctx context.Context, route *domain.Route) error
	// Get returns domain.ErrNotFound when no route exists with the id.
	Get(ctx context.Context, id string) (*domain.Route, error)
	// Update merges the given fields into the stored document and returns
	// the updated route; domain.ErrNotFound when absent.
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Route, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit int64, cursor string) ([]domain.Route, string, error)
}

// TransportReader is the slice of the transports feature the assignment
// workflow needs: fetching one transport by id.
type TransportReader interface {
	// Get returns transportdomain.ErrNotFound when the id is unknown.
	Get(ctx context.Context, id string) (*transportdomain.Transport, error)
}

// AssignmentWriter commits the two-record assignment transaction: the route
// moves PENDING -> IN_PROGRESS with the transport id and costs, the
// transport moves FREE -> BUSY, both conditioned on the status each record
// held when the workflow validated it. Returns domain.ErrAssignmentConflict
// when either condition fails at commit time.
type AssignmentWriter interface {
	CommitAssignment(ctx context.Context, routeID, transportID string, cost AssignmentCost) error
}
