package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	_ "github.com/mattn/go-sqlite3"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	name            TEXT NOT NULL DEFAULT '',
	surname         TEXT NOT NULL DEFAULT '',
	id_number       TEXT NOT NULL DEFAULT '',
	birth_date      TEXT NOT NULL DEFAULT '',
	sex             TEXT NOT NULL DEFAULT '',
	nationality     TEXT NOT NULL DEFAULT '',
	personal_number TEXT NOT NULL DEFAULT '',
	created_at      DATETIME NOT NULL,
	updated_at      DATETIME NOT NULL
)`

type Repository struct {
	db *sql.DB
}

// New opens the SQLite database and creates the employees table when it is
// missing.
func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, surname, id_number, birth_date, sex, nationality, personal_number
		FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []domain.Employee{}
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

func (r *Repository) AddEmployee(ctx context.Context, e *domain.Employee) error {
	now := time.Now()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO employees (
			name, surname, id_number, birth_date, sex, nationality, personal_number,
			created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?)`,
		e.Name, e.Surname, e.IDNumber, e.BirthDate, e.Sex, e.Nationality, e.PersonalNumber,
		now, now,
	)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	e.ID = domain.EmployeeID(strconv.FormatInt(id, 10))
	return nil
}

// GetEmployee returns domain.ErrNotFound for unknown or malformed ids.
func (r *Repository) GetEmployee(ctx context.Context, id domain.EmployeeID) (*domain.Employee, error) {
	n, err := rowID(id)
	if err != nil {
		return nil, err
	}
	e, err := scan(r.db.QueryRowContext(ctx, `
		SELECT id, name, surname, id_number, birth_date, sex, nationality, personal_number
		FROM employees WHERE id=?`, n))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return e, err
}

// UpdateEmployee applies the set fields of p and returns the stored row.
func (r *Repository) UpdateEmployee(ctx context.Context, id domain.EmployeeID, p domain.EmployeePatch) (*domain.Employee, error) {
	cur, err := r.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	e := p.Apply(*cur)
	n, _ := rowID(id)
	_, err = r.db.ExecContext(ctx, `
		UPDATE employees
		SET name=?, surname=?, id_number=?, birth_date=?, sex=?, nationality=?, personal_number=?,
		    updated_at=?
		WHERE id=?`,
		e.Name, e.Surname, e.IDNumber, e.BirthDate, e.Sex, e.Nationality, e.PersonalNumber,
		time.Now(), n,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) DeleteEmployee(ctx context.Context, id domain.EmployeeID) error {
	n, err := rowID(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM employees WHERE id=?`, n)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*domain.Employee, error) {
	var (
		id int64
		e  domain.Employee
	)
	if err := s.Scan(&id, &e.Name, &e.Surname, &e.IDNumber, &e.BirthDate, &e.Sex, &e.Nationality, &e.PersonalNumber); err != nil {
		return nil, err
	}
	e.ID = domain.EmployeeID(strconv.FormatInt(id, 10))
	return &e, nil
}

func rowID(id domain.EmployeeID) (int64, error) {
	n, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil {
		return 0, domain.ErrNotFound
	}
	return n, nil
}
