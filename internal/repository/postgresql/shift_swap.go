package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
	"github.com/tandemhr/ess-backend-go/internal/domain/shiftswap"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

const shiftSwapColumns = `
	w.id, w.company_id, w.requester_id, w.target_id,
	w.requester_schedule_id, w.target_schedule_id, w.reason,
	w.target_accepted, w.target_responded_at,
	w.status, w.approval_level, w.auto_approved,
	w.supervisor_approved_by, w.supervisor_approved_at,
	w.manager_approved_by, w.manager_approved_at,
	w.admin_approved_by, w.admin_approved_at,
	w.rejection_reason, w.created_at, w.updated_at,
	req.full_name, tgt.full_name, rs.schedule_date, ts.schedule_date, req.employee_role`

type shiftSwapRepositoryImpl struct {
	db *database.DB
}

func NewShiftSwapRepository(db *database.DB) shiftswap.Repository {
	return &shiftSwapRepositoryImpl{db: db}
}

func scanShiftSwap(row pgx.Row) (shiftswap.ShiftSwapRequest, error) {
	var s shiftswap.ShiftSwapRequest
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.RequesterID, &s.TargetID,
		&s.RequesterSchedule, &s.TargetSchedule, &s.Reason,
		&s.TargetAccepted, &s.TargetRespondedAt,
		&s.Status, &s.ApprovalLevel, &s.AutoApproved,
		&s.SupervisorApprovedBy, &s.SupervisorApprovedAt,
		&s.ManagerApprovedBy, &s.ManagerApprovedAt,
		&s.AdminApprovedBy, &s.AdminApprovedAt,
		&s.RejectionReason, &s.CreatedAt, &s.UpdatedAt,
		&s.RequesterName, &s.TargetName, &s.RequesterDate, &s.TargetDate, &s.OwnerRole,
	)
	return s, err
}

const shiftSwapJoins = `
		FROM shift_swap_requests w
		JOIN employees req ON req.id = w.requester_id
		JOIN employees tgt ON tgt.id = w.target_id
		JOIN schedules rs ON rs.id = w.requester_schedule_id
		JOIN schedules ts ON ts.id = w.target_schedule_id`

// Create implements shiftswap.Repository.
func (r *shiftSwapRepositoryImpl) Create(ctx context.Context, s *shiftswap.ShiftSwapRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO shift_swap_requests (
			id, company_id, requester_id, target_id,
			requester_schedule_id, target_schedule_id, reason,
			status, approval_level, auto_approved
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6,
			$7, $8, $9
		)
		RETURNING id, created_at, updated_at
	`

	return q.QueryRow(ctx, query,
		s.CompanyID, s.RequesterID, s.TargetID,
		s.RequesterSchedule, s.TargetSchedule, s.Reason,
		s.Status, s.ApprovalLevel, s.AutoApproved,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID implements shiftswap.Repository.
func (r *shiftSwapRepositoryImpl) GetByID(ctx context.Context, id string) (*shiftswap.ShiftSwapRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + shiftSwapColumns + shiftSwapJoins + `
		WHERE w.id = $1
	`

	s, err := scanShiftSwap(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, shiftswap.ErrSwapNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByFilter implements shiftswap.Repository. EmployeeID matches either
// side of the swap so both parties see it in their lists.
func (r *shiftSwapRepositoryImpl) GetByFilter(ctx context.Context, filter shiftswap.Filter) ([]shiftswap.ShiftSwapRequest, error) {
	q := GetQuerier(ctx, r.db)

	conditions := "w.company_id = $1"
	args := []interface{}{filter.CompanyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions += fmt.Sprintf(" AND (w.requester_id = $%d OR w.target_id = $%d)", len(args), len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions += fmt.Sprintf(" AND w.status = $%d", len(args))
	}
	if filter.OutletIDs != nil || filter.DepartmentIDs != nil {
		args = append(args, filter.OutletIDs)
		conditions += fmt.Sprintf(" AND (req.outlet_id = ANY($%d)", len(args))
		args = append(args, filter.DepartmentIDs)
		conditions += fmt.Sprintf(" OR req.department_id = ANY($%d))", len(args))
	}

	query := `
		SELECT ` + shiftSwapColumns + shiftSwapJoins + `
		WHERE ` + conditions + `
		ORDER BY w.created_at DESC
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

	var swaps []shiftswap.ShiftSwapRequest
	for rows.Next() {
		s, err := scanShiftSwap(rows)
		if err != nil {
			return nil, err
		}
		swaps = append(swaps, s)
	}

	return swaps, rows.Err()
}

// SetTargetResponse implements shiftswap.Repository.
func (r *shiftSwapRepositoryImpl) SetTargetResponse(ctx context.Context, id string, accepted bool) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE shift_swap_requests
		SET target_accepted = $1, target_responded_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND target_accepted IS NULL
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, accepted, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return shiftswap.ErrSwapNotFound
		}
		return err
	}
	return nil
}

// UpdateTransition implements shiftswap.Repository.
func (r *shiftSwapRepositoryImpl) UpdateTransition(ctx context.Context, id string, tr approval.Transition, actorID string, reason *string) error {
	q := GetQuerier(ctx, r.db)

	set, args := transitionSet(tr, actorID, reason)
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE shift_swap_requests
		SET %s
		WHERE id = $%d
		RETURNING id
	`, set, len(args))

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return shiftswap.ErrSwapNotFound
		}
		return err
	}
	return nil
}
