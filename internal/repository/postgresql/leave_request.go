package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/leave"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type_id,
	lr.start_date, lr.end_date, lr.total_days, lr.half_day, lr.reason, lr.mc_url,
	lr.status, lr.approval_level, lr.auto_approved,
	lr.supervisor_approved_by, lr.supervisor_approved_at,
	lr.manager_approved_by, lr.manager_approved_at,
	lr.admin_approved_by, lr.admin_approved_at,
	lr.rejection_reason, lr.created_at, lr.updated_at,
	lt.code, lt.name, e.full_name, e.employee_role`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID,
		&lr.StartDate, &lr.EndDate, &lr.TotalDays, &lr.HalfDay, &lr.Reason, &lr.MCUrl,
		&lr.Status, &lr.ApprovalLevel, &lr.AutoApproved,
		&lr.SupervisorApprovedBy, &lr.SupervisorApprovedAt,
		&lr.ManagerApprovedBy, &lr.ManagerApprovedAt,
		&lr.AdminApprovedBy, &lr.AdminApprovedAt,
		&lr.RejectionReason, &lr.CreatedAt, &lr.UpdatedAt,
		&lr.LeaveTypeCode, &lr.LeaveTypeName, &lr.EmployeeName, &lr.OwnerRole,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id,
			start_date, end_date, total_days, half_day, reason, mc_url,
			status, approval_level, auto_approved,
			admin_approved_by, admin_approved_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5, $6, $7, $8,
			$9, $10, $11,
			$12, $13
		)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.TotalDays, request.HalfDay,
		request.Reason, request.MCUrl,
		request.Status, request.ApprovalLevel, request.AutoApproved,
		request.AdminApprovedBy, request.AdminApprovedAt,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.id = $1
	`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// GetByEmployeeID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, l.db)

	conditions := "lr.employee_id = $1"
	args := []interface{}{employeeID}

	if filter.LeaveTypeID != nil {
		args = append(args, *filter.LeaveTypeID)
		conditions += fmt.Sprintf(" AND lr.leave_type_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions += fmt.Sprintf(" AND lr.status = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions += fmt.Sprintf(" AND lr.end_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions += fmt.Sprintf(" AND lr.start_date <= $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM leave_requests lr WHERE ` + conditions
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}
	args = append(args, limit, offset)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN employees e ON e.id = lr.employee_id
		WHERE ` + conditions + `
		ORDER BY lr.start_date DESC
		LIMIT $` + fmt.Sprint(len(args)-1) + ` OFFSET $` + fmt.Sprint(len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, lr)
	}

	return requests, total, rows.Err()
}

// GetPendingByGroup implements leave.LeaveRequestRepository. With
// wholeCompany set, groupIDs are ignored and every pending request of the
// company is returned.
func (l *leaveRequestRepositoryImpl) GetPendingByGroup(ctx context.Context, companyID string, groupIDs []string, wholeCompany bool) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN employees e ON e.id = lr.employee_id
		WHERE e.company_id = $1 AND lr.status = 'pending'
	`
	args := []interface{}{companyID}

	if !wholeCompany {
		args = append(args, groupIDs)
		query += fmt.Sprintf(" AND (e.outlet_id = ANY($%d) OR e.department_id = ANY($%d))", len(args), len(args))
	}
	query += " ORDER BY lr.created_at"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

// CheckOverlapping implements leave.LeaveRequestRepository. Pending and
// approved requests both block the range.
func (l *leaveRequestRepositoryImpl) CheckOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, startDate, endDate).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CountByTypeYear implements leave.LeaveRequestRepository. Cancelled and
// rejected requests do not count against occurrence caps.
func (l *leaveRequestRepositoryImpl) CountByTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND status IN ('pending', 'approved')
		  AND EXTRACT(YEAR FROM start_date) = $3
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateTransition implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) UpdateTransition(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, l.db)
	query := `
		UPDATE leave_requests
		SET status = $1,
			approval_level = $2,
			auto_approved = $3,
			supervisor_approved_by = $4,
			supervisor_approved_at = $5,
			manager_approved_by = $6,
			manager_approved_at = $7,
			admin_approved_by = $8,
			admin_approved_at = $9,
			rejection_reason = $10,
			updated_at = NOW()
		WHERE id = $11
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		request.Status, request.ApprovalLevel, request.AutoApproved,
		request.SupervisorApprovedBy, request.SupervisorApprovedAt,
		request.ManagerApprovedBy, request.ManagerApprovedAt,
		request.AdminApprovedBy, request.AdminApprovedAt,
		request.RejectionReason, request.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrLeaveRequestNotFound
		}
		return err
	}
	return nil
}

// GetStalePending implements leave.LeaveRequestRepository. Used by the
// expiry job: pending requests whose end date already passed asOf.
func (l *leaveRequestRepositoryImpl) GetStalePending(ctx context.Context, asOf time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.status = 'pending' AND lr.end_date < $1
	`

	rows, err := q.Query(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}
