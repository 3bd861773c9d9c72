package ports

import (
	"context"

	"github.com/WiLayd/serverless-transport-task/internal/features/transports/domain"
)

// CreateTransportParams carries the validated input for creating a transport.
type CreateTransportParams struct {
	LicensePlate  string
	Model         string
	Type          domain.Type
	Capacity      float64
	PricePerKmEUR float64
}

// UpdateTransportParams carries a partial update; nil fields are untouched.
type UpdateTransportParams struct {
	LicensePlate  *string
	Model         *string
	Type          *domain.Type
	Capacity      *float64
	PricePerKmEUR *float64
	Status        *domain.Status
}

// Empty reports whether no field is set.
func (p UpdateTransportParams) Empty() bool {
	return p.LicensePlate == nil && p.Model == nil && p.Type == nil &&
		p.Capacity == nil && p.PricePerKmEUR == nil && p.Status == nil
}

// TransportService defines the primary port for transport operations.
type TransportService interface {
	Create(ctx context.Context, params CreateTransportParams) (*domain.Transport, error)
	List(ctx context.Context, limit int64, cursor string) ([]domain.Transport, string, error)
	Update(ctx context.Context, id string, params UpdateTransportParams) (*domain.Transport, error)
	Delete(ctx context.Context, id string) error
}

// TransportRepository defines the secondary port for transport storage.
type TransportRepository interface {
	Save(ctx context.Context, transport *domain.Transport) error
	// Get returns domain.ErrNotFound when no transport exists with the id.
	Get(ctx context.Context, id string) (*domain.Transport, error)
	// Update merges the given fields into the stored document and returns
	// the updated transport; domain.ErrNotFound when absent.
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Transport, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit int64, cursor string) ([]domain.Transport, string, error)
}
