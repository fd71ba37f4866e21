package store_test

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
)

// fakeGateway is an in-memory gateway that records every call.
type fakeGateway struct {
	mu      sync.Mutex
	records []domain.Employee
	nextID  int
	calls   []string
	err     error
	// omitID makes AddEmployee answer without an identifier.
	omitID bool
}

func newFakeGateway(records ...domain.Employee) *fakeGateway {
	return &fakeGateway{records: records, nextID: len(records) + 1}
}

func (f *fakeGateway) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeGateway) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeGateway) ListEmployees(context.Context) ([]domain.Employee, error) {
	if err := f.record("list"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.records), nil
}

func (f *fakeGateway) AddEmployee(_ context.Context, u *domain.Upload) (domain.Employee, error) {
	if err := f.record("add"); err != nil {
		return domain.Employee{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e := domain.Employee{ID: domain.EmployeeID(strconv.Itoa(f.nextID)), Name: "Scanned", Surname: u.Filename}
	f.nextID++
	f.records = append(f.records, e)
	if f.omitID {
		e.ID = ""
	}
	return e, nil
}

func (f *fakeGateway) EditEmployee(_ context.Context, id domain.EmployeeID, p domain.EmployeePatch) (domain.Employee, error) {
	if err := f.record("edit " + id.String()); err != nil {
		return domain.Employee{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.records {
		if e.ID == id {
			f.records[i] = p.Apply(e)
			// the backend normalises nationality codes
			f.records[i].Nationality = strings.ToUpper(f.records[i].Nationality)
			return f.records[i], nil
		}
	}
	return domain.Employee{}, domain.ErrNotFound
}

func (f *fakeGateway) DeleteEmployee(_ context.Context, id domain.EmployeeID) error {
	if err := f.record("delete " + id.String()); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.records {
		if e.ID == id {
			f.records = slices.Delete(f.records, i, i+1)
			return nil
		}
	}
	return domain.ErrNotFound
}
