package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/WiLayd/serverless-transport-task/internal/core/store"
	"github.com/WiLayd/serverless-transport-task/internal/features/transports/domain"
)

const keyPrefix = "transport:"

// Key returns the document-store key for a transport id. Exported so the
// assignment transaction in the routes feature can address transport
// documents directly.
func Key(id string) string {
	return keyPrefix + id
}

// RedisTransportRepository implements ports.TransportRepository on the
// document store.
type RedisTransportRepository struct {
	store store.DocumentStore
}

// NewRedisTransportRepository creates a new RedisTransportRepository.
func NewRedisTransportRepository(s store.DocumentStore) *RedisTransportRepository {
	return &RedisTransportRepository{store: s}
}

// Save stores the transport document.
func (r *RedisTransportRepository) Save(ctx context.Context, transport *domain.Transport) error {
	if err := r.store.Put(ctx, Key(transport.ID), transport); err != nil {
		return fmt.Errorf("failed to save transport: %w", err)
	}
	return nil
}

// Get retrieves a transport by id.
func (r *RedisTransportRepository) Get(ctx context.Context, id string) (*domain.Transport, error) {
	raw, err := r.store.Get(ctx, Key(id))
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transport: %w", err)
	}

	return unmarshalTransport(raw)
}

// Update merges fields into the stored transport document.
func (r *RedisTransportRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Transport, error) {
	raw, err := r.store.Update(ctx, Key(id), fields)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transport: %w", err)
	}

	return unmarshalTransport(raw)
}

// Delete removes the transport document.
func (r *RedisTransportRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, Key(id)); err != nil {
		return fmt.Errorf("failed to delete transport: %w", err)
	}
	return nil
}

// List returns one page of transports and the cursor for the next page.
func (r *RedisTransportRepository) List(ctx context.Context, limit int64, cursor string) ([]domain.Transport, string, error) {
	docs, next, err := r.store.Scan(ctx, keyPrefix, limit, cursor)
	if err != nil {
		return nil, "", err
	}

	transports := make([]domain.Transport, 0, len(docs))
	for _, raw := range docs {
		var t domain.Transport
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, "", fmt.Errorf("failed to unmarshal transport: %w", err)
		}
		transports = append(transports, t)
	}

	return transports, next, nil
}

func unmarshalTransport(raw []byte) (*domain.Transport, error) {
	var t domain.Transport
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transport: %w", err)
	}
	return &t, nil
}
