package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/WiLayd/serverless-transport-task/internal/core/apperrors"
	"github.com/WiLayd/serverless-transport-task/internal/core/store"
	"github.com/WiLayd/serverless-transport-task/internal/features/transports/domain"
	"github.com/WiLayd/serverless-transport-task/internal/features/transports/ports"

	"github.com/google/uuid"
)

// TransportServiceImpl implements ports.TransportService.
type TransportServiceImpl struct {
	repo ports.TransportRepository
}

// NewTransportService creates a new TransportServiceImpl.
func NewTransportService(repo ports.TransportRepository) *TransportServiceImpl {
	return &TransportServiceImpl{repo: repo}
}

// Create validates the input and stores a new FREE transport.
func (s *TransportServiceImpl) Create(ctx context.Context, params ports.CreateTransportParams) (*domain.Transport, error) {
	transport, err := domain.NewTransport(
		uuid.NewString(),
		params.LicensePlate,
		params.Model,
		params.Type,
		params.Capacity,
		params.PricePerKmEUR,
	)
	if err != nil {
		return nil, apperrors.Validation("Invalid input parameters: %v.", err)
	}

	if err := s.repo.Save(ctx, transport); err != nil {
		return nil, fmt.Errorf("service: failed to save transport: %w", err)
	}

	return transport, nil
}

// List returns one page of transports.
func (s *TransportServiceImpl) List(ctx context.Context, limit int64, cursor string) ([]domain.Transport, string, error) {
	transports, next, err := s.repo.List(ctx, limit, cursor)
	if errors.Is(err, store.ErrInvalidCursor) {
		return nil, "", apperrors.Validation("Invalid lastEvaluatedKey parameter.")
	}
	if err != nil {
		return nil, "", fmt.Errorf("service: failed to list transports: %w", err)
	}

	return transports, next, nil
}

// Update applies a partial update to an existing transport.
func (s *TransportServiceImpl) Update(ctx context.Context, id string, params ports.UpdateTransportParams) (*domain.Transport, error) {
	if params.Empty() {
		return nil, apperrors.Validation("At least one field must be provided for update")
	}

	fields, err := updateFields(params)
	if err != nil {
		return nil, apperrors.Validation("Invalid input parameters: %v.", err)
	}

	transport, err := s.repo.Update(ctx, id, fields)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperrors.NotFound("Transport not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to update transport: %w", err)
	}

	return transport, nil
}

// Delete removes a transport. Deleting an unknown id is a no-op.
func (s *TransportServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete transport: %w", err)
	}
	return nil
}

// updateFields validates the provided fields and turns them into a document
// merge set.
func updateFields(params ports.UpdateTransportParams) (map[string]any, error) {
	fields := make(map[string]any)

	if params.LicensePlate != nil {
		if *params.LicensePlate == "" {
			return nil, domain.ErrEmptyLicensePlate
		}
		fields["licensePlate"] = *params.LicensePlate
	}
	if params.Model != nil {
		fields["model"] = *params.Model
	}
	if params.Type != nil {
		if !domain.ValidType(*params.Type) {
			return nil, domain.ErrInvalidType
		}
		fields["type"] = string(*params.Type)
	}
	if params.Capacity != nil {
		if *params.Capacity <= 0 {
			return nil, domain.ErrInvalidCapacity
		}
		fields["capacity"] = *params.Capacity
	}
	if params.PricePerKmEUR != nil {
		if *params.PricePerKmEUR <= 0 {
			return nil, domain.ErrInvalidPrice
		}
		fields["pricePerKmEUR"] = *params.PricePerKmEUR
	}
	if params.Status != nil {
		if !domain.ValidStatus(*params.Status) {
			return nil, domain.ErrInvalidStatus
		}
		fields["status"] = string(*params.Status)
	}

	return fields, nil
}
