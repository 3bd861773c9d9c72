package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no document exists at the requested key.
	ErrNotFound = errors.New("document not found")
	// ErrConditionFailed is returned when a conditional write is rejected,
	// either because a condition did not hold at commit time or because a
	// watched document changed under a concurrent writer.
	ErrConditionFailed = errors.New("write condition failed")
	// ErrInvalidCursor is returned when a scan cursor cannot be decoded.
	ErrInvalidCursor = errors.New("invalid cursor parameter")
)

// FieldCondition is a compare-and-set guard on a single document field.
type FieldCondition struct {
	// Field is the document field to compare.
	Field string
	// Equals is the value the field must still hold at commit time.
	Equals any
}

// ConditionalWrite describes one document mutation inside an atomic commit.
type ConditionalWrite struct {
	// Key identifies the document.
	Key string
	// Set holds the fields to merge into the document.
	Set map[string]any
	// Condition, if non-nil, must hold for the whole commit to proceed.
	Condition *FieldCondition
}

// DocumentStore is the port for the key-value document store. Documents are
// JSON objects addressed by an opaque key.
type DocumentStore interface {
	// Get returns the raw document at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put marshals doc as JSON and stores it at key, replacing any
	// existing document.
	Put(ctx context.Context, key string, doc any) error

	// Update merges the given fields into the document at key and returns
	// the updated document. Returns ErrNotFound if the document is absent.
	Update(ctx context.Context, key string, set map[string]any) ([]byte, error)

	// Delete removes the document at key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error

	// Scan returns up to roughly limit documents whose keys start with
	// prefix, plus an opaque cursor for the next page. An empty cursor
	// starts a new scan; an empty returned cursor means the scan is done.
	Scan(ctx context.Context, prefix string, limit int64, cursor string) ([][]byte, string, error)

	// CommitTx applies all writes atomically. Every condition is
	// re-evaluated against the stored documents at commit time; if any
	// fails, or a watched document is modified concurrently, nothing is
	// written and ErrConditionFailed is returned.
	CommitTx(ctx context.Context, writes []ConditionalWrite) error

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
