package storage

import "errors"

var (
	ErrDBConnection = errors.New("database connection error")
	ErrDBQuery      = errors.New("database query error")
	ErrDBScan       = errors.New("database scan error")
	ErrMigration    = errors.New("database migration error")
	ErrAppend       = errors.New("append error")
)
