package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"

	"github.com/leranyappi/training-diary/internal/workout"
)

// BadgerStore keeps the collection in an embedded badger database, so the
// data stays on the device that recorded it.
type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func (s *BadgerStore) Save(_ context.Context, workouts []workout.Workout) error {
	buf, err := json.Marshal(workouts)
	if err != nil {
		return fmt.Errorf("failed to marshal workouts: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(storageKey), buf)
	})
}

func (s *BadgerStore) Load(_ context.Context) ([]workout.Workout, error) {
	var workouts []workout.Workout
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(storageKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &workouts)
		})
	})
	if err != nil {
		// absent or malformed value means no prior data
		return nil, nil
	}
	return rehydrateAll(workouts), nil
}

func (s *BadgerStore) Clear(_ context.Context) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(storageKey))
	})
}
