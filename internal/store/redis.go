package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/leranyappi/training-diary/internal/workout"
)

// RedisStore keeps the collection under a single redis key, for setups where
// the diary should survive reinstalling the binary.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, workouts []workout.Workout) error {
	buf, err := json.Marshal(workouts)
	if err != nil {
		return fmt.Errorf("failed to marshal workouts: %w", err)
	}
	return s.client.Set(ctx, storageKey, buf, 0).Err()
}

func (s *RedisStore) Load(ctx context.Context) ([]workout.Workout, error) {
	val, err := s.client.Get(ctx, storageKey).Bytes()
	if err != nil {
		return nil, nil
	}

	var workouts []workout.Workout
	if err := json.Unmarshal(val, &workouts); err != nil {
		return nil, nil
	}
	return rehydrateAll(workouts), nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, storageKey).Err()
}
