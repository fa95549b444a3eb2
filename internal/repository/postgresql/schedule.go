package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tandemhr/ess-backend-go/internal/domain/schedule"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

const scheduleColumns = `
	s.id, s.employee_id, s.company_id, s.outlet_id, s.department_id, s.schedule_date,
	s.shift_template_id, s.shift_start, s.shift_end, s.break_minutes,
	s.status, s.is_public_holiday, s.created_at, s.updated_at,
	e.full_name, st.code`

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

func scanSchedule(row pgx.Row) (schedule.Schedule, error) {
	var s schedule.Schedule
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.CompanyID, &s.OutletID, &s.DepartmentID, &s.ScheduleDate,
		&s.ShiftTemplateID, &s.ShiftStart, &s.ShiftEnd, &s.BreakMinutes,
		&s.Status, &s.IsPublicHoliday, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName, &s.TemplateCode,
	)
	return s, err
}

// Create implements schedule.ScheduleRepository. The unique key on
// (employee_id, schedule_date) surfaces as ErrDuplicateSchedule.
func (r *scheduleRepositoryImpl) Create(ctx context.Context, s *schedule.Schedule) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO schedules (
			id, employee_id, company_id, outlet_id, department_id, schedule_date,
			shift_template_id, shift_start, shift_end, break_minutes,
			status, is_public_holiday
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11
		)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.EmployeeID, s.CompanyID, s.OutletID, s.DepartmentID, s.ScheduleDate,
		s.ShiftTemplateID, s.ShiftStart, s.ShiftEnd, s.BreakMinutes,
		s.Status, s.IsPublicHoliday,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return schedule.ErrDuplicateSchedule
		}
		return err
	}
	return nil
}

// GetByID implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByID(ctx context.Context, id string) (*schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules s
		JOIN employees e ON e.id = s.employee_id
		LEFT JOIN shift_templates st ON st.id = s.shift_template_id
		WHERE s.id = $1
	`

	s, err := scanSchedule(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, schedule.ErrScheduleNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByEmployeeDate implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (*schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules s
		JOIN employees e ON e.id = s.employee_id
		LEFT JOIN shift_templates st ON st.id = s.shift_template_id
		WHERE s.employee_id = $1 AND s.schedule_date = $2
	`

	s, err := scanSchedule(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, schedule.ErrScheduleNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *scheduleRepositoryImpl) querySchedules(ctx context.Context, query string, args ...interface{}) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}

	return schedules, rows.Err()
}

// GetByEmployeeRange implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]schedule.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules s
		JOIN employees e ON e.id = s.employee_id
		LEFT JOIN shift_templates st ON st.id = s.shift_template_id
		WHERE s.employee_id = $1 AND s.schedule_date BETWEEN $2 AND $3
		ORDER BY s.schedule_date
	`
	return r.querySchedules(ctx, query, employeeID, from, to)
}

// GetByGroupRange implements schedule.ScheduleRepository. Empty group
// slices with outletIDs and departmentIDs both nil means whole company.
func (r *scheduleRepositoryImpl) GetByGroupRange(ctx context.Context, companyID string, outletIDs, departmentIDs []string, from, to time.Time) ([]schedule.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules s
		JOIN employees e ON e.id = s.employee_id
		LEFT JOIN shift_templates st ON st.id = s.shift_template_id
		WHERE s.company_id = $1 AND s.schedule_date BETWEEN $2 AND $3
	`
	args := []interface{}{companyID, from, to}

	if outletIDs != nil || departmentIDs != nil {
		args = append(args, outletIDs)
		query += fmt.Sprintf(" AND (s.outlet_id = ANY($%d)", len(args))
		args = append(args, departmentIDs)
		query += fmt.Sprintf(" OR s.department_id = ANY($%d))", len(args))
	}
	query += " ORDER BY s.schedule_date, e.full_name"

	return r.querySchedules(ctx, query, args...)
}

// Update implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Update(ctx context.Context, s *schedule.Schedule) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE schedules
		SET employee_id = $1,
			schedule_date = $2,
			shift_template_id = $3,
			shift_start = $4,
			shift_end = $5,
			break_minutes = $6,
			status = $7,
			is_public_holiday = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		s.EmployeeID, s.ScheduleDate, s.ShiftTemplateID, s.ShiftStart, s.ShiftEnd, s.BreakMinutes,
		s.Status, s.IsPublicHoliday, s.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.ErrScheduleNotFound
		}
		return err
	}
	return nil
}

// Delete implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}

type shiftTemplateRepositoryImpl struct {
	db *database.DB
}

func NewShiftTemplateRepository(db *database.DB) schedule.ShiftTemplateRepository {
	return &shiftTemplateRepositoryImpl{db: db}
}

// GetByID implements schedule.ShiftTemplateRepository.
func (r *shiftTemplateRepositoryImpl) GetByID(ctx context.Context, id string) (*schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, code, start_time, end_time, break_minutes, is_off, is_active
		FROM shift_templates
		WHERE id = $1
	`

	var st schedule.ShiftTemplate
	err := q.QueryRow(ctx, query, id).Scan(
		&st.ID, &st.CompanyID, &st.Code, &st.StartTime, &st.EndTime,
		&st.BreakMinutes, &st.IsOff, &st.IsActive,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, schedule.ErrShiftTemplateNotFound
		}
		return nil, err
	}
	return &st, nil
}

// GetByCompanyID implements schedule.ShiftTemplateRepository.
func (r *shiftTemplateRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, code, start_time, end_time, break_minutes, is_off, is_active
		FROM shift_templates
		WHERE company_id = $1 AND is_active
		ORDER BY code
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []schedule.ShiftTemplate
	for rows.Next() {
		var st schedule.ShiftTemplate
		err := rows.Scan(
			&st.ID, &st.CompanyID, &st.Code, &st.StartTime, &st.EndTime,
			&st.BreakMinutes, &st.IsOff, &st.IsActive,
		)
		if err != nil {
			return nil, err
		}
		templates = append(templates, st)
	}

	return templates, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
