package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "plangrid:state:" // plangrid:state:{storage key}

// RedisStateRepo implements StateRepo with one Redis hash per record.
type RedisStateRepo struct {
	client *redis.Client
}

// NewRedisStateRepo creates a new RedisStateRepo.
func NewRedisStateRepo(client *redis.Client) *RedisStateRepo {
	return &RedisStateRepo{client: client}
}

func (r *RedisStateRepo) stateKey(key string) string {
	return stateKeyPrefix + key
}

func (r *RedisStateRepo) Load(ctx context.Context, key string) (*StateRecord, error) {
	fields, err := r.client.HGetAll(ctx, r.stateKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("loading state %q: %w", key, err)
	}
	payload, ok := fields["payload"]
	if !ok {
		return nil, ErrStateNotFound
	}

	version, err := strconv.Atoi(fields["schema_version"])
	if err != nil {
		version = 1
	}
	return &StateRecord{
		Key:           key,
		SchemaVersion: version,
		Payload:       []byte(payload),
		UpdatedAt:     parseTimestamp(fields["updated_at"]),
	}, nil
}

func (r *RedisStateRepo) Save(ctx context.Context, rec *StateRecord) error {
	err := r.client.HSet(ctx, r.stateKey(rec.Key),
		"payload", rec.Payload,
		"schema_version", rec.SchemaVersion,
		"updated_at", formatTimestamp(rec.UpdatedAt),
	).Err()
	if err != nil {
		return fmt.Errorf("saving state %q: %w", rec.Key, err)
	}
	return nil
}

func (r *RedisStateRepo) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.stateKey(key)).Err(); err != nil {
		return fmt.Errorf("deleting state %q: %w", key, err)
	}
	return nil
}
