// Package memory provides an in-process implementation of the repository
// interfaces.  It is selected with STORE_DRIVER=memory for local runs and
// backs the service and handler tests.  Records are copied on the way in
// and out so callers never share state with the store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/property-backoffice/internal/repository"
)

// table is a mutex-guarded map keyed by id that remembers insertion order
// so listings are stable.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]*T
	order map[string]uint64
	seq   uint64
	clone func(*T) *T
}

func newTable[T any](clone func(*T) *T) *table[T] {
	return &table[T]{rows: map[string]*T{}, order: map[string]uint64{}, clone: clone}
}

// insert stores v under id unless a row satisfies conflict.
func (t *table[T]) insert(id string, v *T, conflict func(*T) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.clashes("", conflict) {
		return repository.ErrDuplicate
	}
	t.seq++
	t.rows[id] = t.clone(v)
	t.order[id] = t.seq
	return nil
}

func (t *table[T]) get(id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t.clone(v), nil
}

func (t *table[T]) replace(id string, v *T, conflict func(*T) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	if t.clashes(id, conflict) {
		return repository.ErrDuplicate
	}
	t.rows[id] = t.clone(v)
	return nil
}

// mutate applies fn to the stored row under the write lock.
func (t *table[T]) mutate(id string, fn func(*T)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(v)
	return nil
}

func (t *table[T]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.rows, id)
	delete(t.order, id)
	return nil
}

// find returns copies of the rows matching keep in insertion order.
func (t *table[T]) find(keep func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.rows))
	for id, v := range t.rows {
		if keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return t.order[ids[i]] < t.order[ids[j]] })
	out := make([]*T, len(ids))
	for i, id := range ids {
		out[i] = t.clone(t.rows[id])
	}
	return out
}

// clashes reports whether a row other than skipID satisfies conflict.
// Callers hold the lock.
func (t *table[T]) clashes(skipID string, conflict func(*T) bool) bool {
	if conflict == nil {
		return false
	}
	for id, v := range t.rows {
		if id != skipID && conflict(v) {
			return true
		}
	}
	return false
}

func (t *table[T]) list(keep func(*T) bool, pg repository.Page) ([]*T, int64) {
	all := t.find(keep)
	pg = pg.Normalize()
	total := int64(len(all))
	start := pg.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + pg.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total
}

func (t *table[T]) count(keep func(*T) bool) int64 { return int64(len(t.find(keep))) }

func newID() string { return uuid.NewString() }

func now() time.Time { return time.Now().UTC() }

func copyTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// NewStore returns a repository.Store over fresh in-memory tables.
func NewStore() *repository.Store {
	return &repository.Store{
		Properties:  NewPropertyRepo(),
		Tenants:     NewTenantRepo(),
		Contractors: NewContractorRepo(),
		Maintenance: NewMaintenanceRepo(),
		Users:       NewUserRepo(),
		Tokens:      NewTokenRepo(),
		Close:       func(context.Context) error { return nil },
	}
}
