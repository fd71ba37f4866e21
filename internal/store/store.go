// Package store holds the employee collection as last confirmed by the
// gateway. Nothing is changed locally before the gateway has accepted it.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/go-faster/errors"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/ports"
)

var (
	// ErrMissingFile is returned by Add when no ID-card image is attached.
	ErrMissingFile = errors.New("please upload an ID card image")
	// ErrNotFound aliases domain.ErrNotFound for callers of Find.
	ErrNotFound = domain.ErrNotFound
)

type Store struct {
	gw ports.EmployeeGateway

	mu        sync.RWMutex
	records   []domain.Employee
	version   uint64
	listeners []func(uint64)
}

func New(gw ports.EmployeeGateway) *Store {
	return &Store{gw: gw}
}

// Subscribe registers fn to be called with the new version after every
// change. fn runs on the mutating goroutine without the store lock held.
func (s *Store) Subscribe(fn func(version uint64)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Load replaces the contents with the gateway's list. On failure the store
// is emptied; stale rows are never kept.
func (s *Store) Load(ctx context.Context) error {
	list, err := s.gw.ListEmployees(ctx)
	if err != nil {
		s.commit(func() { s.records = nil })
		return errors.Wrap(err, "load employees")
	}
	s.commit(func() { s.records = slices.Clone(list) })
	return nil
}

// Add uploads an ID-card image and stores the record the gateway created.
// Without a file the gateway is not contacted.
func (s *Store) Add(ctx context.Context, u *domain.Upload) (domain.Employee, error) {
	if u.Empty() {
		return domain.Employee{}, ErrMissingFile
	}
	rec, err := s.gw.AddEmployee(ctx, u)
	if err != nil {
		return domain.Employee{}, errors.Wrap(err, "add employee")
	}
	if rec.ID.IsZero() {
		// Some backend versions omit the generated id; refetch so rows stay
		// addressable.
		if err := s.Load(ctx); err != nil {
			return rec, err
		}
		return rec, nil
	}
	s.commit(func() {
		if i := s.index(rec.ID); i >= 0 {
			s.records[i] = rec
			return
		}
		s.records = append(s.records, rec)
	})
	return rec, nil
}

// Update sends p and replaces the stored record with the gateway's answer.
func (s *Store) Update(ctx context.Context, id domain.EmployeeID, p domain.EmployeePatch) (domain.Employee, error) {
	rec, err := s.gw.EditEmployee(ctx, id, p)
	if err != nil {
		return domain.Employee{}, errors.Wrapf(err, "edit employee %s", id)
	}
	if rec.ID.IsZero() {
		rec.ID = id
	}
	s.commit(func() {
		if i := s.index(id); i >= 0 {
			s.records[i] = rec
		}
	})
	return rec, nil
}

// Remove deletes the record on the gateway, then locally.
func (s *Store) Remove(ctx context.Context, id domain.EmployeeID) error {
	if err := s.gw.DeleteEmployee(ctx, id); err != nil {
		return errors.Wrapf(err, "delete employee %s", id)
	}
	s.commit(func() {
		if i := s.index(id); i >= 0 {
			s.records = slices.Delete(s.records, i, i+1)
		}
	})
	return nil
}

// Find reloads the list and returns the record with the given id.
func (s *Store) Find(ctx context.Context, id domain.EmployeeID) (domain.Employee, error) {
	if err := s.Load(ctx); err != nil {
		return domain.Employee{}, err
	}
	rec, ok := s.Get(id)
	if !ok {
		return domain.Employee{}, ErrNotFound
	}
	return rec, nil
}

// Get returns the cached record with the given id.
func (s *Store) Get(id domain.EmployeeID) (domain.Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.records[i], true
	}
	return domain.Employee{}, false
}

// Snapshot returns a copy of the records in insertion order.
func (s *Store) Snapshot() []domain.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Version increases by one on every change.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// index must be called with mu held.
func (s *Store) index(id domain.EmployeeID) int {
	return slices.IndexFunc(s.records, func(e domain.Employee) bool { return e.ID == id })
}

func (s *Store) commit(mutate func()) {
	s.mu.Lock()
	mutate()
	s.version++
	v := s.version
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}
