package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

const employeeColumns = `
	id, company_id, outlet_id, department_id, position_id, employee_code,
	full_name, gender, phone_number, address, bank_name, bank_account,
	employee_role, employment_type, employment_status, join_date, last_working_day,
	ess_enabled, clock_in_required, is_schedule_manager, position,
	created_at, updated_at, deleted_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.OutletID, &emp.DepartmentID, &emp.PositionID,
		&emp.EmployeeCode, &emp.FullName, &emp.Gender, &emp.PhoneNumber, &emp.Address,
		&emp.BankName, &emp.BankAccount, &emp.EmployeeRole, &emp.EmploymentType,
		&emp.EmploymentStatus, &emp.JoinDate, &emp.LastWorkingDay, &emp.ESSEnabled,
		&emp.ClockInRequired, &emp.IsScheduleManager, &emp.Position,
		&emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// GetByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByCode(ctx context.Context, companyID, employeeCode string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND employee_code = $2 AND deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, companyID, employeeCode))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

func (e *employeeRepositoryImpl) queryEmployees(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// GetByCompanyID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY full_name
	`
	return e.queryEmployees(ctx, query, companyID)
}

// GetByOutletIDs implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByOutletIDs(ctx context.Context, outletIDs []string) ([]employee.Employee, error) {
	if len(outletIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE outlet_id = ANY($1) AND deleted_at IS NULL
		ORDER BY full_name
	`
	return e.queryEmployees(ctx, query, outletIDs)
}

// GetByDepartmentIDs implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByDepartmentIDs(ctx context.Context, departmentIDs []string) ([]employee.Employee, error) {
	if len(departmentIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE department_id = ANY($1) AND deleted_at IS NULL
		ORDER BY full_name
	`
	return e.queryEmployees(ctx, query, departmentIDs)
}

// UpdateProfile implements employee.EmployeeRepository. Only self-service
// editable fields are touched; nil means keep the current value.
func (e *employeeRepositoryImpl) UpdateProfile(ctx context.Context, req employee.UpdateProfileRequest) error {
	q := GetQuerier(ctx, e.db)
	query := `
		UPDATE employees
		SET full_name    = COALESCE($1, full_name),
			phone_number = COALESCE($2, phone_number),
			address      = COALESCE($3, address),
			bank_name    = COALESCE($4, bank_name),
			bank_account = COALESCE($5, bank_account),
			updated_at   = NOW()
		WHERE id = $6 AND deleted_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		req.FullName, req.PhoneNumber, req.Address, req.BankName, req.BankAccount,
		req.EmployeeID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return err
	}
	return nil
}

type employeeOutletRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeOutletRepository(db *database.DB) employee.EmployeeOutletRepository {
	return &employeeOutletRepositoryImpl{db: db}
}

// GetOutletIDsByEmployee implements employee.EmployeeOutletRepository.
func (e *employeeOutletRepositoryImpl) GetOutletIDsByEmployee(ctx context.Context, employeeID string) ([]string, error) {
	q := GetQuerier(ctx, e.db)
	query := `
		SELECT outlet_id
		FROM employee_outlets
		WHERE employee_id = $1
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outletIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		outletIDs = append(outletIDs, id)
	}

	return outletIDs, rows.Err()
}

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) employee.PositionRepository {
	return &positionRepositoryImpl{db: db}
}

// GetByID implements employee.PositionRepository.
func (p *positionRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Position, error) {
	q := GetQuerier(ctx, p.db)
	query := `
		SELECT id, company_id, name, role
		FROM positions
		WHERE id = $1
	`

	var pos employee.Position
	err := q.QueryRow(ctx, query, id).Scan(&pos.ID, &pos.CompanyID, &pos.Name, &pos.Role)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Position{}, employee.ErrPositionNotFound
		}
		return employee.Position{}, err
	}
	return pos, nil
}
