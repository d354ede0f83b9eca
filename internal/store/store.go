package store

import (
	"context"

	"github.com/leranyappi/training-diary/internal/workout"
)

// storageKey is the single fixed key the whole collection lives under.
const storageKey = "workouts"

// Store persists the ordered workout collection as one value under one key.
// Save overwrites the whole collection; Load returns an empty slice when the
// key is absent or the stored value does not parse.
type Store interface {
	Save(ctx context.Context, workouts []workout.Workout) error
	Load(ctx context.Context) ([]workout.Workout, error)
	Clear(ctx context.Context) error
}

func rehydrateAll(workouts []workout.Workout) []workout.Workout {
	for i, w := range workouts {
		workouts[i] = workout.Rehydrate(w)
	}
	return workouts
}
