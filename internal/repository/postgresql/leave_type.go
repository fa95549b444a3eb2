package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/leave"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

const leaveTypeColumns = `
	id, company_id, code, name,
	is_paid, requires_attachment, is_consecutive, carries_forward, auto_approve,
	max_occurrences, min_service_days, gender_restriction, max_carry_forward,
	default_days_per_year, entitlement_rules,
	created_at, updated_at`

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	err := row.Scan(
		&lt.ID, &lt.CompanyID, &lt.Code, &lt.Name,
		&lt.IsPaid, &lt.RequiresAttachment, &lt.IsConsecutive, &lt.CarriesForward, &lt.AutoApprove,
		&lt.MaxOccurrences, &lt.MinServiceDays, &lt.GenderRestriction, &lt.MaxCarryForward,
		&lt.DefaultDaysPerYear, &lt.EntitlementRules,
		&lt.CreatedAt, &lt.UpdatedAt,
	)
	return lt, err
}

// GetByID implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT ` + leaveTypeColumns + `
		FROM leave_types
		WHERE id = $1
	`

	lt, err := scanLeaveType(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}
	return lt, nil
}

// GetByCompanyID implements leave.LeaveTypeRepository. Shared types
// (company_id IS NULL) are visible to every company.
func (l *leaveTypeRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT ` + leaveTypeColumns + `
		FROM leave_types
		WHERE company_id = $1 OR company_id IS NULL
		ORDER BY code
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, lt)
	}

	return types, rows.Err()
}
