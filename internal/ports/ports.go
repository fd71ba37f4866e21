package ports

import (
	"context"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
)

// EmployeeGateway is the external backend that owns persistence and OCR.
// Every method reports the server-confirmed state; nothing is cached here.
type EmployeeGateway interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	// AddEmployee uploads an ID-card image; the gateway extracts the fields
	// and returns the record it stored.
	AddEmployee(ctx context.Context, u *domain.Upload) (domain.Employee, error)
	EditEmployee(ctx context.Context, id domain.EmployeeID, p domain.EmployeePatch) (domain.Employee, error)
	DeleteEmployee(ctx context.Context, id domain.EmployeeID) error
}

// EmployeeRepository defines persistence for the development gateway.
type EmployeeRepository interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	AddEmployee(ctx context.Context, e *domain.Employee) error
	GetEmployee(ctx context.Context, id domain.EmployeeID) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, id domain.EmployeeID, p domain.EmployeePatch) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, id domain.EmployeeID) error
}
