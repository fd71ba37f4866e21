package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/adapters/sqlite"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
)

func newRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "employees.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAddAndList(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	list, err := repo.ListEmployees(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	a := &domain.Employee{Name: "John", Surname: "Doe", Sex: "M"}
	b := &domain.Employee{Name: "Jane", Surname: "Roe", Nationality: "DEU"}
	require.NoError(t, repo.AddEmployee(ctx, a))
	require.NoError(t, repo.AddEmployee(ctx, b))
	assert.Equal(t, domain.EmployeeID("1"), a.ID)
	assert.Equal(t, domain.EmployeeID("2"), b.ID)

	list, err = repo.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Employee{*a, *b}, list)
}

func TestGetEmployee(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	e := &domain.Employee{Name: "John", PersonalNumber: "P-1"}
	require.NoError(t, repo.AddEmployee(ctx, e))

	got, err := repo.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, *e, *got)

	_, err = repo.GetEmployee(ctx, "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetEmployee(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateEmployeeAppliesSetFieldsOnly(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	e := &domain.Employee{Name: "John", Surname: "Doe", Sex: "M"}
	require.NoError(t, repo.AddEmployee(ctx, e))

	surname := "Smith"
	got, err := repo.UpdateEmployee(ctx, e.ID, domain.EmployeePatch{Surname: &surname})
	require.NoError(t, err)
	assert.Equal(t, domain.Employee{ID: e.ID, Name: "John", Surname: "Smith", Sex: "M"}, *got)

	stored, err := repo.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, *got, *stored)

	_, err = repo.UpdateEmployee(ctx, "42", domain.EmployeePatch{Surname: &surname})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteEmployee(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	e := &domain.Employee{Name: "John"}
	require.NoError(t, repo.AddEmployee(ctx, e))

	require.NoError(t, repo.DeleteEmployee(ctx, e.ID))
	_, err := repo.GetEmployee(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// deleting a missing row is not an error
	require.NoError(t, repo.DeleteEmployee(ctx, e.ID))
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "employees.db")
	repo, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, repo.AddEmployee(ctx, &domain.Employee{Name: "John"}))
	require.NoError(t, repo.Close())

	repo, err = sqlite.New(path)
	require.NoError(t, err)
	defer repo.Close()
	list, err := repo.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
