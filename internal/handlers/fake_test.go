package handlers_test

import (
	"context"
	"slices"
	"strconv"
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
}

func newFakeGateway(n int) *fakeGateway {
	f := &fakeGateway{nextID: n + 1}
	for i := 1; i <= n; i++ {
		id := strconv.Itoa(i)
		f.records = append(f.records, domain.Employee{
			ID:             domain.EmployeeID(id),
			Name:           "Name" + id,
			Surname:        "Surname" + id,
			PersonalNumber: "P-" + id,
		})
	}
	return f
}

func (f *fakeGateway) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
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
	if err := f.record("add " + u.ContentType); err != nil {
		return domain.Employee{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e := domain.Employee{ID: domain.EmployeeID(strconv.Itoa(f.nextID)), Name: "Scanned", Surname: "Card"}
	f.nextID++
	f.records = append(f.records, e)
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

// put replaces or appends e as if another client had changed the backend.
func (f *fakeGateway) put(e domain.Employee) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := slices.IndexFunc(f.records, func(r domain.Employee) bool { return r.ID == e.ID }); i >= 0 {
		f.records[i] = e
		return
	}
	f.records = append(f.records, e)
}

// remove deletes id behind the dashboard's back.
func (f *fakeGateway) remove(id domain.EmployeeID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = slices.DeleteFunc(f.records, func(r domain.Employee) bool { return r.ID == id })
}
