package postgresql

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)
	query := `
		SELECT id, name, grouping_type, settings, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var comp company.Company
	var settingsJSON []byte

	err := q.QueryRow(ctx, query, id).Scan(
		&comp.ID, &comp.Name, &comp.GroupingType, &settingsJSON,
		&comp.CreatedAt, &comp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, err
	}

	if settingsJSON != nil {
		json.Unmarshal(settingsJSON, &comp.Settings)
	}

	return comp, nil
}

type outletRepositoryImpl struct {
	db *database.DB
}

func NewOutletRepository(db *database.DB) company.OutletRepository {
	return &outletRepositoryImpl{db: db}
}

// GetByID implements company.OutletRepository.
func (o *outletRepositoryImpl) GetByID(ctx context.Context, id string) (company.Outlet, error) {
	q := GetQuerier(ctx, o.db)
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM outlets
		WHERE id = $1
	`

	var outlet company.Outlet
	err := q.QueryRow(ctx, query, id).Scan(
		&outlet.ID, &outlet.CompanyID, &outlet.Name, &outlet.CreatedAt, &outlet.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Outlet{}, company.ErrOutletNotFound
		}
		return company.Outlet{}, err
	}

	return outlet, nil
}

// GetByCompanyID implements company.OutletRepository.
func (o *outletRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]company.Outlet, error) {
	q := GetQuerier(ctx, o.db)
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM outlets
		WHERE company_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outlets []company.Outlet
	for rows.Next() {
		var outlet company.Outlet
		if err := rows.Scan(&outlet.ID, &outlet.CompanyID, &outlet.Name, &outlet.CreatedAt, &outlet.UpdatedAt); err != nil {
			return nil, err
		}
		outlets = append(outlets, outlet)
	}

	return outlets, rows.Err()
}

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) company.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// GetByID implements company.DepartmentRepository.
func (d *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (company.Department, error) {
	q := GetQuerier(ctx, d.db)
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	var dept company.Department
	err := q.QueryRow(ctx, query, id).Scan(
		&dept.ID, &dept.CompanyID, &dept.Name, &dept.CreatedAt, &dept.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Department{}, company.ErrDepartmentNotFound
		}
		return company.Department{}, err
	}

	return dept, nil
}

// GetByCompanyID implements company.DepartmentRepository.
func (d *departmentRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]company.Department, error) {
	q := GetQuerier(ctx, d.db)
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM departments
		WHERE company_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []company.Department
	for rows.Next() {
		var dept company.Department
		if err := rows.Scan(&dept.ID, &dept.CompanyID, &dept.Name, &dept.CreatedAt, &dept.UpdatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, dept)
	}

	return departments, rows.Err()
}
