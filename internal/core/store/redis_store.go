package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements the DocumentStore interface on top of Redis.
// Documents are stored as JSON strings; conditional transactions use
// WATCH/MULTI/EXEC for compare-and-set semantics across multiple keys.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed document store.
// The redisURL should be in the format: redis://[:password@]host[:port][/database]
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	return &RedisStore{client: client}, nil
}

// Get returns the raw document at key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

// Put marshals doc as JSON and stores it at key.
func (s *RedisStore) Put(ctx context.Context, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", key, err)
	}

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Update merges fields into the document at key under a WATCH, so a
// concurrent writer aborts the merge instead of being overwritten.
func (s *RedisStore) Update(ctx context.Context, key string, set map[string]any) ([]byte, error) {
	var updated []byte

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		doc, err := decodeDocument(raw, key)
		if err != nil {
			return err
		}
		for field, value := range set {
			doc[field] = value
		}

		updated, err = json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal document %s: %w", key, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return nil, ErrConditionFailed
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the document at key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Scan returns one page of documents whose keys match prefix. The returned
// cursor is an opaque base64 token; an empty token means the scan finished.
// Page sizes follow redis SCAN semantics: limit is a hint, and the only
// guarantee is that walking every cursor yields each document exactly once.
func (s *RedisStore) Scan(ctx context.Context, prefix string, limit int64, cursor string) ([][]byte, string, error) {
	redisCursor, err := decodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	keys, next, err := s.client.Scan(ctx, redisCursor, prefix+"*", limit).Result()
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan prefix %s: %w", prefix, err)
	}

	docs := make([][]byte, 0, len(keys))
	if len(keys) > 0 {
		values, err := s.client.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, "", fmt.Errorf("failed to fetch scanned keys: %w", err)
		}
		for _, v := range values {
			// A key may expire between SCAN and MGET.
			if raw, ok := v.(string); ok {
				docs = append(docs, []byte(raw))
			}
		}
	}

	return docs, encodeCursor(next), nil
}

// CommitTx applies every write atomically. All keys are WATCHed, conditions
// are checked against the freshly read documents, and the new documents are
// written in a single MULTI/EXEC. Any concurrent modification of a watched
// key between the read and EXEC fails the transaction.
func (s *RedisStore) CommitTx(ctx context.Context, writes []ConditionalWrite) error {
	if len(writes) == 0 {
		return nil
	}

	keys := make([]string, len(writes))
	for i, w := range writes {
		keys[i] = w.Key
	}

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		updated := make([][]byte, len(writes))

		for i, w := range writes {
			raw, err := tx.Get(ctx, w.Key).Bytes()
			if errors.Is(err, redis.Nil) {
				return ErrConditionFailed
			}
			if err != nil {
				return err
			}

			doc, err := decodeDocument(raw, w.Key)
			if err != nil {
				return err
			}

			if w.Condition != nil && doc[w.Condition.Field] != w.Condition.Equals {
				return ErrConditionFailed
			}

			for field, value := range w.Set {
				doc[field] = value
			}

			updated[i], err = json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("failed to marshal document %s: %w", w.Key, err)
			}
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for i, w := range writes {
				pipe.Set(ctx, w.Key, updated[i], 0)
			}
			return nil
		})
		return err
	}, keys...)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrConditionFailed
	}
	return err
}

// Ping checks if Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func decodeDocument(raw []byte, key string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document %s: %w", key, err)
	}
	return doc, nil
}

func encodeCursor(cursor uint64) string {
	if cursor == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatUint(cursor, 10)))
}

func decodeCursor(cursor string) (uint64, error) {
	if cursor == "" {
		return 0, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, ErrInvalidCursor
	}
	parsed, err := strconv.ParseUint(string(decoded), 10, 64)
	if err != nil {
		return 0, ErrInvalidCursor
	}
	return parsed, nil
}
