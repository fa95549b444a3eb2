package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/leave"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// Create implements leave.LeaveBalanceRepository. Concurrent lazy
// materialization of the same (employee, type, year) row resolves to the
// existing row.
func (l *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		INSERT INTO leave_balances (
			id, employee_id, leave_type_id, year,
			entitled_days, carried_forward, used_days
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6
		)
		ON CONFLICT (employee_id, leave_type_id, year) DO UPDATE
			SET updated_at = NOW()
		RETURNING id, employee_id, leave_type_id, year,
			entitled_days, carried_forward, used_days, created_at, updated_at
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query,
		balance.EmployeeID, balance.LeaveTypeID, balance.Year,
		balance.EntitledDays, balance.CarriedForward, balance.UsedDays,
	).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.EntitledDays, &b.CarriedForward, &b.UsedDays, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

// GetByEmployeeTypeYear implements leave.LeaveBalanceRepository.
func (l *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT id, employee_id, leave_type_id, year,
			entitled_days, carried_forward, used_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.EntitledDays, &b.CarriedForward, &b.UsedDays, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

// GetByEmployeeYear implements leave.LeaveBalanceRepository.
func (l *leaveBalanceRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT id, employee_id, leave_type_id, year,
			entitled_days, carried_forward, used_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		var b leave.LeaveBalance
		err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&b.EntitledDays, &b.CarriedForward, &b.UsedDays, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

// AddUsedDays implements leave.LeaveBalanceRepository. Positive deltas are
// guarded in SQL so concurrent debits can never push used_days past
// entitled_days + carried_forward; credits always go through.
func (l *leaveBalanceRepositoryImpl) AddUsedDays(ctx context.Context, balanceID string, delta float64) error {
	q := GetQuerier(ctx, l.db)
	query := `
		UPDATE leave_balances
		SET used_days = used_days + $1, updated_at = NOW()
		WHERE id = $2
		  AND ($1 <= 0 OR used_days + $1 <= entitled_days + carried_forward)
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, delta, balanceID).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			exists, checkErr := l.exists(ctx, balanceID)
			if checkErr != nil {
				return checkErr
			}
			if exists {
				return leave.ErrInsufficientBalance
			}
			return leave.ErrBalanceNotFound
		}
		return err
	}
	return nil
}

func (l *leaveBalanceRepositoryImpl) exists(ctx context.Context, balanceID string) (bool, error) {
	q := GetQuerier(ctx, l.db)

	var found bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leave_balances WHERE id = $1)`, balanceID).Scan(&found)
	return found, err
}
