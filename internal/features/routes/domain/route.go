package domain

import (
	"errors"
	"time"

	transportdomain "github.com/WiLayd/serverless-transport-task/internal/features/transports/domain"
)

// Status represents the lifecycle state of a route.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

var (
	ErrInvalidStatus         = errors.New("invalid route status")
	ErrEmptyStartCity        = errors.New("start city must not be empty")
	ErrEmptyEndCity          = errors.New("end city must not be empty")
	ErrInvalidDistance       = errors.New("distance must be positive")
	ErrInvalidDispatchDate   = errors.New("dispatch date must be a valid ISO-8601 timestamp")
	ErrInvalidCompletionDate = errors.New("completion date must be a valid ISO-8601 timestamp")
	ErrNotFound              = errors.New("route not found")
	ErrAssignmentConflict    = errors.New("assignment conflicted with a concurrent update")
)

// ValidStatus reports whether s is a known route status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Route represents a transport job between two cities.
type Route struct {
	ID                    string               `json:"id"`
	StartCity             string               `json:"startCity"`
	EndCity               string               `json:"endCity"`
	DistanceKm            float64              `json:"distanceKm"`
	DispatchDate          string               `json:"dispatchDate"`
	CompletionDate        *string              `json:"completionDate"`
	RequiredTransportType transportdomain.Type `json:"requiredTransportType"`
	ExpectedRevenueUSD    float64              `json:"expectedRevenueUSD"`
	TransportID           *string              `json:"transportId"`
	Status                Status               `json:"status"`
	CostEUR               *float64             `json:"costEUR,omitempty"`
	CostUSD               *float64             `json:"costUSD,omitempty"`
	CostUAH               *float64             `json:"costUAH,omitempty"`
	CreatedAt             time.Time            `json:"createdAt"`
}

// NewRoute creates a new Route in the PENDING state and validates it.
func NewRoute(id, startCity, endCity string, distanceKm float64, dispatchDate string, requiredType transportdomain.Type, expectedRevenueUSD float64) (*Route, error) {
	r := &Route{
		ID:                    id,
		StartCity:             startCity,
		EndCity:               endCity,
		DistanceKm:            distanceKm,
		DispatchDate:          dispatchDate,
		RequiredTransportType: requiredType,
		ExpectedRevenueUSD:    expectedRevenueUSD,
		Status:                StatusPending,
		CreatedAt:             time.Now().UTC(),
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the route invariants.
func (r *Route) Validate() error {
	if r.StartCity == "" {
		return ErrEmptyStartCity
	}
	if r.EndCity == "" {
		return ErrEmptyEndCity
	}
	if r.DistanceKm <= 0 {
		return ErrInvalidDistance
	}
	if !ValidISO8601(r.DispatchDate) {
		return ErrInvalidDispatchDate
	}
	if !transportdomain.ValidType(r.RequiredTransportType) {
		return transportdomain.ErrInvalidType
	}
	if !ValidStatus(r.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// ValidISO8601 reports whether value parses as an ISO-8601 timestamp or date.
func ValidISO8601(value string) bool {
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return true
	}
	if _, err := time.Parse("2006-01-02", value); err == nil {
		return true
	}
	return false
}
