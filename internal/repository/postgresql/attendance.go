package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/attendance"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
)

const attendanceColumns = `
	a.id, a.employee_id, a.company_id, a.work_date,
	a.clock_in_1_at, a.clock_in_1_photo, a.clock_in_1_lat, a.clock_in_1_lng, a.clock_in_1_addr,
	a.clock_out_1_at, a.clock_out_1_photo, a.clock_out_1_lat, a.clock_out_1_lng, a.clock_out_1_addr,
	a.clock_in_2_at, a.clock_in_2_photo, a.clock_in_2_lat, a.clock_in_2_lng, a.clock_in_2_addr,
	a.clock_out_2_at, a.clock_out_2_photo, a.clock_out_2_lat, a.clock_out_2_lng, a.clock_out_2_addr,
	a.schedule_id, a.inside_schedule, a.total_work_minutes, a.break_minutes,
	a.ot_minutes, a.ot_flagged, a.ot_approved, a.ot_approved_by, a.ot_approved_at, a.ot_rejection_reason,
	a.created_at, a.updated_at, e.full_name, e.employee_role`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// punchColumns flattens an optional punch for scanning.
type punchColumns struct {
	at    *time.Time
	photo *string
	lat   *float64
	lng   *float64
	addr  *string
}

func (p punchColumns) toPunch() *attendance.Punch {
	if p.at == nil {
		return nil
	}
	return &attendance.Punch{
		At:        *p.at,
		PhotoURL:  p.photo,
		Latitude:  p.lat,
		Longitude: p.lng,
		Address:   p.addr,
	}
}

func scanClockInRecord(row pgx.Row) (attendance.ClockInRecord, error) {
	var rec attendance.ClockInRecord
	var in1, out1, in2, out2 punchColumns

	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.WorkDate,
		&in1.at, &in1.photo, &in1.lat, &in1.lng, &in1.addr,
		&out1.at, &out1.photo, &out1.lat, &out1.lng, &out1.addr,
		&in2.at, &in2.photo, &in2.lat, &in2.lng, &in2.addr,
		&out2.at, &out2.photo, &out2.lat, &out2.lng, &out2.addr,
		&rec.ScheduleID, &rec.InsideSchedule, &rec.TotalWorkMinutes, &rec.BreakMinutes,
		&rec.OTMinutes, &rec.OTFlagged, &rec.OTApproved, &rec.OTApprovedBy, &rec.OTApprovedAt, &rec.OTRejectionReason,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName, &rec.OwnerRole,
	)
	if err != nil {
		return attendance.ClockInRecord{}, err
	}

	rec.ClockIn1 = in1.toPunch()
	rec.ClockOut1 = out1.toPunch()
	rec.ClockIn2 = in2.toPunch()
	rec.ClockOut2 = out2.toPunch()
	return rec, nil
}

// Create implements attendance.AttendanceRepository. The first punch of the
// day creates the record with clock_in_1 already set.
func (a *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.ClockInRecord) (attendance.ClockInRecord, error) {
	q := GetQuerier(ctx, a.db)
	query := `
		INSERT INTO clock_in_records (
			id, employee_id, company_id, work_date,
			clock_in_1_at, clock_in_1_photo, clock_in_1_lat, clock_in_1_lng, clock_in_1_addr,
			schedule_id, inside_schedule
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6, $7, $8,
			$9, $10
		)
		RETURNING id, created_at, updated_at
	`

	p := record.ClockIn1
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.CompanyID, record.WorkDate,
		p.At, p.PhotoURL, p.Latitude, p.Longitude, p.Address,
		record.ScheduleID, record.InsideSchedule,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.ClockInRecord{}, err
	}
	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.ClockInRecord, error) {
	q := GetQuerier(ctx, a.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM clock_in_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	rec, err := scanClockInRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ClockInRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.ClockInRecord{}, err
	}
	return rec, nil
}

// GetByEmployeeDate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByEmployeeDate(ctx context.Context, employeeID string, workDate time.Time) (attendance.ClockInRecord, error) {
	q := GetQuerier(ctx, a.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM clock_in_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.work_date = $2
	`

	rec, err := scanClockInRecord(q.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ClockInRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.ClockInRecord{}, err
	}
	return rec, nil
}

// GetByEmployeeRange implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.ClockInRecord, error) {
	q := GetQuerier(ctx, a.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM clock_in_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.work_date BETWEEN $2 AND $3
		ORDER BY a.work_date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.ClockInRecord
	for rows.Next() {
		rec, err := scanClockInRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// SetPunch implements attendance.AttendanceRepository. The slot's WHERE
// guard keeps a set slot from being rewritten even under a concurrent
// double-submit.
func (a *attendanceRepositoryImpl) SetPunch(ctx context.Context, record attendance.ClockInRecord, slot attendance.PunchSlot) error {
	var punch *attendance.Punch
	switch slot {
	case attendance.PunchOut1:
		punch = record.ClockOut1
	case attendance.PunchIn2:
		punch = record.ClockIn2
	case attendance.PunchOut2:
		punch = record.ClockOut2
	default:
		return fmt.Errorf("punch slot %s cannot be written in-band", slot)
	}
	if punch == nil {
		return fmt.Errorf("punch slot %s has no data to write", slot)
	}

	prefix := string(slot)
	q := GetQuerier(ctx, a.db)
	query := fmt.Sprintf(`
		UPDATE clock_in_records
		SET %[1]s_at = $1, %[1]s_photo = $2, %[1]s_lat = $3, %[1]s_lng = $4, %[1]s_addr = $5,
			total_work_minutes = $6,
			break_minutes = $7,
			ot_minutes = $8,
			ot_flagged = $9,
			updated_at = NOW()
		WHERE id = $10 AND %[1]s_at IS NULL
		RETURNING id
	`, prefix)

	var updatedID string
	err := q.QueryRow(ctx, query,
		punch.At, punch.PhotoURL, punch.Latitude, punch.Longitude, punch.Address,
		record.TotalWorkMinutes, record.BreakMinutes, record.OTMinutes, record.OTFlagged,
		record.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrDayComplete
		}
		return err
	}
	return nil
}

// GetPendingOT implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetPendingOT(ctx context.Context, companyID string, groupIDs []string, wholeCompany bool) ([]attendance.ClockInRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM clock_in_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.company_id = $1 AND a.ot_flagged AND a.ot_approved IS NULL
	`
	args := []interface{}{companyID}

	if !wholeCompany {
		args = append(args, groupIDs)
		query += fmt.Sprintf(" AND (e.outlet_id = ANY($%d) OR e.department_id = ANY($%d))", len(args), len(args))
	}
	query += " ORDER BY a.work_date"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.ClockInRecord
	for rows.Next() {
		rec, err := scanClockInRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DecideOT implements attendance.AttendanceRepository. The ot_approved IS
// NULL guard makes a second decision on the same record a no-op error
// instead of an overwrite.
func (a *attendanceRepositoryImpl) DecideOT(ctx context.Context, recordID string, approved bool, decidedBy string, reason *string) error {
	q := GetQuerier(ctx, a.db)
	query := `
		UPDATE clock_in_records
		SET ot_approved = $1,
			ot_approved_by = $2,
			ot_approved_at = NOW(),
			ot_rejection_reason = $3,
			updated_at = NOW()
		WHERE id = $4 AND ot_flagged AND ot_approved IS NULL
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, approved, decidedBy, reason, recordID).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrNotOTCandidate
		}
		return err
	}
	return nil
}
