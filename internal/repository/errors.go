// Package repository defines the storage contracts for the back office
// and their MySQL implementation.  The sentinel values below are shared
// by every backend (MySQL, Mongo, memory) so that higher layers such as
// handlers can distinguish failure kinds with errors.Is regardless of
// which store is configured.
package repository

import "errors"

// ErrNotFound is returned when a lookup, update or delete targets an id
// that does not exist.  Services wrap it with the entity name, e.g.
// fmt.Errorf("contractor %w", ErrNotFound).  Handlers translate it into
// an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update would violate a
// unique constraint (tenant, contractor and user emails).  Handlers
// translate it into an HTTP 409 response.
var ErrDuplicate = errors.New("already exists")
