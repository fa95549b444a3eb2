package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
	"github.com/tandemhr/ess-backend-go/internal/domain/claim"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

const claimColumns = `
	c.id, c.company_id, c.employee_id, c.claim_type_id, c.claim_date,
	c.amount, c.description, c.receipt_url,
	c.status, c.approval_level, c.auto_approved,
	c.supervisor_approved_by, c.supervisor_approved_at,
	c.manager_approved_by, c.manager_approved_at,
	c.admin_approved_by, c.admin_approved_at,
	c.rejection_reason, c.created_at, c.updated_at,
	e.full_name, ct.name, e.employee_role`

type claimTypeRepositoryImpl struct {
	db *database.DB
}

func NewClaimTypeRepository(db *database.DB) claim.ClaimTypeRepository {
	return &claimTypeRepositoryImpl{db: db}
}

// GetByID implements claim.ClaimTypeRepository.
func (r *claimTypeRepositoryImpl) GetByID(ctx context.Context, id string) (*claim.ClaimType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, name, max_amount, is_active
		FROM claim_types
		WHERE id = $1
	`

	var ct claim.ClaimType
	err := q.QueryRow(ctx, query, id).Scan(&ct.ID, &ct.CompanyID, &ct.Name, &ct.MaxAmount, &ct.IsActive)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, claim.ErrClaimTypeNotFound
		}
		return nil, err
	}
	return &ct, nil
}

// GetByCompanyID implements claim.ClaimTypeRepository.
func (r *claimTypeRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]claim.ClaimType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, name, max_amount, is_active
		FROM claim_types
		WHERE company_id = $1 AND is_active
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []claim.ClaimType
	for rows.Next() {
		var ct claim.ClaimType
		if err := rows.Scan(&ct.ID, &ct.CompanyID, &ct.Name, &ct.MaxAmount, &ct.IsActive); err != nil {
			return nil, err
		}
		types = append(types, ct)
	}

	return types, rows.Err()
}

type claimRequestRepositoryImpl struct {
	db *database.DB
}

func NewClaimRequestRepository(db *database.DB) claim.ClaimRequestRepository {
	return &claimRequestRepositoryImpl{db: db}
}

func scanClaimRequest(row pgx.Row) (claim.ClaimRequest, error) {
	var c claim.ClaimRequest
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.EmployeeID, &c.ClaimTypeID, &c.ClaimDate,
		&c.Amount, &c.Description, &c.ReceiptURL,
		&c.Status, &c.ApprovalLevel, &c.AutoApproved,
		&c.SupervisorApprovedBy, &c.SupervisorApprovedAt,
		&c.ManagerApprovedBy, &c.ManagerApprovedAt,
		&c.AdminApprovedBy, &c.AdminApprovedAt,
		&c.RejectionReason, &c.CreatedAt, &c.UpdatedAt,
		&c.EmployeeName, &c.ClaimTypeName, &c.OwnerRole,
	)
	return c, err
}

// Create implements claim.ClaimRequestRepository.
func (r *claimRequestRepositoryImpl) Create(ctx context.Context, c *claim.ClaimRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO claim_requests (
			id, company_id, employee_id, claim_type_id, claim_date,
			amount, description, receipt_url,
			status, approval_level, auto_approved
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10
		)
		RETURNING id, created_at, updated_at
	`

	return q.QueryRow(ctx, query,
		c.CompanyID, c.EmployeeID, c.ClaimTypeID, c.ClaimDate,
		c.Amount, c.Description, c.ReceiptURL,
		c.Status, c.ApprovalLevel, c.AutoApproved,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID implements claim.ClaimRequestRepository.
func (r *claimRequestRepositoryImpl) GetByID(ctx context.Context, id string) (*claim.ClaimRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + claimColumns + `
		FROM claim_requests c
		JOIN employees e ON e.id = c.employee_id
		JOIN claim_types ct ON ct.id = c.claim_type_id
		WHERE c.id = $1
	`

	c, err := scanClaimRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, claim.ErrClaimNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetByFilter implements claim.ClaimRequestRepository.
func (r *claimRequestRepositoryImpl) GetByFilter(ctx context.Context, filter claim.ClaimFilter) ([]claim.ClaimRequest, error) {
	q := GetQuerier(ctx, r.db)

	conditions := "c.company_id = $1"
	args := []interface{}{filter.CompanyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions += fmt.Sprintf(" AND c.employee_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions += fmt.Sprintf(" AND c.status = $%d", len(args))
	}
	if filter.OutletIDs != nil || filter.DepartmentIDs != nil {
		args = append(args, filter.OutletIDs)
		conditions += fmt.Sprintf(" AND (e.outlet_id = ANY($%d)", len(args))
		args = append(args, filter.DepartmentIDs)
		conditions += fmt.Sprintf(" OR e.department_id = ANY($%d))", len(args))
	}

	query := `
		SELECT ` + claimColumns + `
		FROM claim_requests c
		JOIN employees e ON e.id = c.employee_id
		JOIN claim_types ct ON ct.id = c.claim_type_id
		WHERE ` + conditions + `
		ORDER BY c.created_at DESC
	`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []claim.ClaimRequest
	for rows.Next() {
		c, err := scanClaimRequest(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}

	return claims, rows.Err()
}

// UpdateTransition implements claim.ClaimRequestRepository.
func (r *claimRequestRepositoryImpl) UpdateTransition(ctx context.Context, id string, tr approval.Transition, actorID string, reason *string) error {
	q := GetQuerier(ctx, r.db)

	set, args := transitionSet(tr, actorID, reason)
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE claim_requests
		SET %s
		WHERE id = $%d
		RETURNING id
	`, set, len(args))

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return claim.ErrClaimNotFound
		}
		return err
	}
	return nil
}
