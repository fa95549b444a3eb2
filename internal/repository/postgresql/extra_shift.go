package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
	"github.com/tandemhr/ess-backend-go/internal/domain/extrashift"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

const extraShiftColumns = `
	x.id, x.company_id, x.employee_id, x.shift_date, x.shift_start, x.shift_end, x.reason,
	x.status, x.approval_level, x.auto_approved,
	x.supervisor_approved_by, x.supervisor_approved_at,
	x.manager_approved_by, x.manager_approved_at,
	x.admin_approved_by, x.admin_approved_at,
	x.rejection_reason, x.created_at, x.updated_at,
	e.full_name, e.employee_role`

type extraShiftRepositoryImpl struct {
	db *database.DB
}

func NewExtraShiftRepository(db *database.DB) extrashift.Repository {
	return &extraShiftRepositoryImpl{db: db}
}

func scanExtraShift(row pgx.Row) (extrashift.ExtraShiftRequest, error) {
	var x extrashift.ExtraShiftRequest
	err := row.Scan(
		&x.ID, &x.CompanyID, &x.EmployeeID, &x.ShiftDate, &x.ShiftStart, &x.ShiftEnd, &x.Reason,
		&x.Status, &x.ApprovalLevel, &x.AutoApproved,
		&x.SupervisorApprovedBy, &x.SupervisorApprovedAt,
		&x.ManagerApprovedBy, &x.ManagerApprovedAt,
		&x.AdminApprovedBy, &x.AdminApprovedAt,
		&x.RejectionReason, &x.CreatedAt, &x.UpdatedAt,
		&x.EmployeeName, &x.OwnerRole,
	)
	return x, err
}

// Create implements extrashift.Repository.
func (r *extraShiftRepositoryImpl) Create(ctx context.Context, x *extrashift.ExtraShiftRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO extra_shift_requests (
			id, company_id, employee_id, shift_date, shift_start, shift_end, reason,
			status, approval_level, auto_approved
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6,
			$7, $8, $9
		)
		RETURNING id, created_at, updated_at
	`

	return q.QueryRow(ctx, query,
		x.CompanyID, x.EmployeeID, x.ShiftDate, x.ShiftStart, x.ShiftEnd, x.Reason,
		x.Status, x.ApprovalLevel, x.AutoApproved,
	).Scan(&x.ID, &x.CreatedAt, &x.UpdatedAt)
}

// GetByID implements extrashift.Repository.
func (r *extraShiftRepositoryImpl) GetByID(ctx context.Context, id string) (*extrashift.ExtraShiftRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + extraShiftColumns + `
		FROM extra_shift_requests x
		JOIN employees e ON e.id = x.employee_id
		WHERE x.id = $1
	`

	x, err := scanExtraShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, extrashift.ErrRequestNotFound
		}
		return nil, err
	}
	return &x, nil
}

// GetByFilter implements extrashift.Repository.
func (r *extraShiftRepositoryImpl) GetByFilter(ctx context.Context, filter extrashift.Filter) ([]extrashift.ExtraShiftRequest, error) {
	q := GetQuerier(ctx, r.db)

	conditions := "x.company_id = $1"
	args := []interface{}{filter.CompanyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions += fmt.Sprintf(" AND x.employee_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions += fmt.Sprintf(" AND x.status = $%d", len(args))
	}
	if filter.OutletIDs != nil || filter.DepartmentIDs != nil {
		args = append(args, filter.OutletIDs)
		conditions += fmt.Sprintf(" AND (e.outlet_id = ANY($%d)", len(args))
		args = append(args, filter.DepartmentIDs)
		conditions += fmt.Sprintf(" OR e.department_id = ANY($%d))", len(args))
	}

	query := `
		SELECT ` + extraShiftColumns + `
		FROM extra_shift_requests x
		JOIN employees e ON e.id = x.employee_id
		WHERE ` + conditions + `
		ORDER BY x.created_at DESC
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

	var requests []extrashift.ExtraShiftRequest
	for rows.Next() {
		x, err := scanExtraShift(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, x)
	}

	return requests, rows.Err()
}

// CheckPendingByDate implements extrashift.Repository.
func (r *extraShiftRepositoryImpl) CheckPendingByDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM extra_shift_requests
			WHERE employee_id = $1 AND shift_date = $2 AND status IN ('pending', 'approved')
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateTransition implements extrashift.Repository.
func (r *extraShiftRepositoryImpl) UpdateTransition(ctx context.Context, id string, tr approval.Transition, actorID string, reason *string) error {
	q := GetQuerier(ctx, r.db)

	set, args := transitionSet(tr, actorID, reason)
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE extra_shift_requests
		SET %s
		WHERE id = $%d
		RETURNING id
	`, set, len(args))

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return extrashift.ErrRequestNotFound
		}
		return err
	}
	return nil
}
