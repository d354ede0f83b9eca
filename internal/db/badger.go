package db

import (
	"github.com/dgraph-io/badger/v3"

	"github.com/leranyappi/training-diary/internal/config"
)

// OpenBadger opens the embedded database at the configured path. An empty
// path opens an in-memory instance, which the tests use.
func OpenBadger(cfg config.Config) (*badger.DB, error) {
	opts := badger.DefaultOptions(cfg.BadgerPath).WithLoggingLevel(badger.ERROR)
	if cfg.BadgerPath == "" {
		opts = opts.WithInMemory(true)
	}
	return badger.Open(opts)
}
