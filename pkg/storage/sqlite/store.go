package sqlite

import (
	"github.com/syncscope/syncscope/pkg/storage"
)

type store struct {
	db *Database
}

// NewStore wraps an open database in the append-only sample store.
func NewStore(db *Database) storage.Store {
	return &store{db: db}
}

func (s *store) Close() error {
	return s.db.Close()
}
