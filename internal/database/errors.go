package database

import "errors"

// ErrNotFound indicates the requested record does not exist. Repositories
// map sql.ErrNoRows (and zero-row writes) to this so callers never depend
// on database/sql directly.
var ErrNotFound = errors.New("record not found")
