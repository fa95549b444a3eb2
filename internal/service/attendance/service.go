package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/attendance"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/domain/notification"
	"github.com/tandemhr/ess-backend-go/internal/domain/schedule"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
	"github.com/tandemhr/ess-backend-go/internal/pkg/validator"
	"github.com/tandemhr/ess-backend-go/internal/repository/postgresql"
	approvalsvc "github.com/tandemhr/ess-backend-go/internal/service/approval"
	"github.com/tandemhr/ess-backend-go/internal/service/permission"
	"github.com/tandemhr/ess-backend-go/internal/service/scope"
)

type AttendanceServiceImpl struct {
	tx              postgresql.TxRunner
	attendanceRepo  attendance.AttendanceRepository
	scheduleRepo    schedule.ScheduleRepository
	employeeRepo    employee.EmployeeRepository
	resolver        *scope.Resolver
	notificationSvc notification.Service

	now func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	scheduleRepo schedule.ScheduleRepository,
	employeeRepo employee.EmployeeRepository,
	resolver *scope.Resolver,
	notificationSvc notification.Service,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:              postgresql.NewTxRunner(db),
		attendanceRepo:  attendanceRepo,
		scheduleRepo:    scheduleRepo,
		employeeRepo:    employeeRepo,
		resolver:        resolver,
		notificationSvc: notificationSvc,
		now:             time.Now,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Punch implements attendance.AttendanceService. The first punch of the day
// creates the record; later punches fill the next empty slot and refresh the
// derived measures.
func (a *AttendanceServiceImpl) Punch(ctx context.Context, p identity.Principal, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	emp, sc, err := a.resolver.ResolveEmployee(ctx, p)
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	if !emp.ClockInRequired {
		return attendance.PunchResponse{}, attendance.ErrClockInNotEnabled
	}

	now := a.now()
	workDate := dateOnly(now)
	punch := &attendance.Punch{
		At:        now,
		PhotoURL:  &req.PhotoURL,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
	}

	record, err := a.attendanceRepo.GetByEmployeeDate(ctx, emp.ID, workDate)
	if err == attendance.ErrRecordNotFound {
		return a.firstPunch(ctx, emp, sc, workDate, punch)
	}
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	slot := record.NextAction()
	if slot == attendance.PunchDone {
		return attendance.PunchResponse{}, attendance.ErrDayComplete
	}

	switch slot {
	case attendance.PunchOut1:
		record.ClockOut1 = punch
	case attendance.PunchIn2:
		record.ClockIn2 = punch
	case attendance.PunchOut2:
		record.ClockOut2 = punch
	}

	sched, err := a.matchedSchedule(ctx, record)
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	DeriveMeasures(&record, sched, emp, sc.Company.Settings)

	if err := a.attendanceRepo.SetPunch(ctx, record, slot); err != nil {
		return attendance.PunchResponse{}, err
	}

	return punchResponse(record, slot), nil
}

func (a *AttendanceServiceImpl) firstPunch(ctx context.Context, emp employee.Employee, sc identity.Scope, workDate time.Time, punch *attendance.Punch) (attendance.PunchResponse, error) {
	record := attendance.ClockInRecord{
		EmployeeID: emp.ID,
		CompanyID:  emp.CompanyID,
		WorkDate:   workDate,
		ClockIn1:   punch,
	}

	sched, err := a.scheduleForDate(ctx, emp.ID, workDate)
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	if sched != nil && sched.Status == schedule.StatusScheduled {
		record.ScheduleID = &sched.ID
		record.InsideSchedule = withinShift(punch.At, *sched)
	}
	DeriveMeasures(&record, sched, emp, sc.Company.Settings)

	created, err := a.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	return punchResponse(created, attendance.PunchIn1), nil
}

func (a *AttendanceServiceImpl) scheduleForDate(ctx context.Context, employeeID string, workDate time.Time) (*schedule.Schedule, error) {
	sched, err := a.scheduleRepo.GetByEmployeeDate(ctx, employeeID, workDate)
	if err == schedule.ErrScheduleNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sched, nil
}

func (a *AttendanceServiceImpl) matchedSchedule(ctx context.Context, record attendance.ClockInRecord) (*schedule.Schedule, error) {
	if record.ScheduleID == nil {
		return nil, nil
	}
	sched, err := a.scheduleRepo.GetByID(ctx, *record.ScheduleID)
	if err == schedule.ErrScheduleNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sched, nil
}

// withinShift reports whether the punch moment falls inside the scheduled
// shift. Shifts crossing midnight extend into the next day.
func withinShift(at time.Time, sched schedule.Schedule) bool {
	start, err := time.Parse("15:04", sched.ShiftStart)
	if err != nil {
		return false
	}
	end, err := time.Parse("15:04", sched.ShiftEnd)
	if err != nil {
		return false
	}

	day := dateOnly(at)
	shiftStart := day.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute)
	shiftEnd := day.Add(time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute)
	if !shiftEnd.After(shiftStart) {
		shiftEnd = shiftEnd.Add(24 * time.Hour)
	}
	return !at.Before(shiftStart) && !at.After(shiftEnd)
}

func punchResponse(record attendance.ClockInRecord, slot attendance.PunchSlot) attendance.PunchResponse {
	return attendance.PunchResponse{
		RecordID:         record.ID,
		WorkDate:         record.WorkDate.Format("2006-01-02"),
		Slot:             string(slot),
		NextAction:       string(record.NextAction()),
		InsideSchedule:   record.InsideSchedule,
		TotalWorkMinutes: record.TotalWorkMinutes,
		BreakMinutes:     record.BreakMinutes,
		OTMinutes:        record.OTMinutes,
		OTFlagged:        record.OTFlagged,
	}
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context, p identity.Principal) (attendance.RecordResponse, error) {
	record, err := a.attendanceRepo.GetByEmployeeDate(ctx, p.EmployeeID, dateOnly(a.now()))
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return attendance.ToRecordResponse(record), nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, p identity.Principal, from, to string) ([]attendance.RecordResponse, error) {
	fromDate, ok := validator.IsValidDate(from)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "from", Message: "from must be a valid date (YYYY-MM-DD)"}}
	}
	toDate, ok := validator.IsValidDate(to)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "to", Message: "to must be a valid date (YYYY-MM-DD)"}}
	}

	records, err := a.attendanceRepo.GetByEmployeeRange(ctx, p.EmployeeID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToRecordResponse(r))
	}
	return responses, nil
}

// PendingOT implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PendingOT(ctx context.Context, p identity.Principal) ([]attendance.RecordResponse, error) {
	sc, err := a.requireOTApprover(ctx, p)
	if err != nil {
		return nil, err
	}

	records, err := a.attendanceRepo.GetPendingOT(ctx, sc.Company.ID, sc.Managed(), sc.WholeCompany)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		if r.EmployeeID == p.EmployeeID {
			continue
		}
		if approvalsvc.OwnerLevel(r.OwnerRole) >= sc.HierarchyLevel {
			continue
		}
		responses = append(responses, attendance.ToRecordResponse(r))
	}
	return responses, nil
}

// DecideOTBatch implements attendance.AttendanceService. The batch runs in
// one transaction with a savepoint per record: a record that fails its own
// checks rolls back alone and is reported as skipped.
func (a *AttendanceServiceImpl) DecideOTBatch(ctx context.Context, p identity.Principal, req attendance.BatchOTDecisionRequest) (attendance.BatchOTDecisionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BatchOTDecisionResponse{}, err
	}

	sc, err := a.requireOTApprover(ctx, p)
	if err != nil {
		return attendance.BatchOTDecisionResponse{}, err
	}

	var resp attendance.BatchOTDecisionResponse
	err = a.tx.InTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, recordID := range req.RecordIDs {
			sp, err := tx.Begin(ctx)
			if err != nil {
				return fmt.Errorf("begin savepoint: %w", err)
			}

			spCtx := postgresql.WithTx(ctx, sp)
			if err := a.decideOne(spCtx, p, sc, recordID, req.Approve, req.Reason); err != nil {
				if rbErr := sp.Rollback(ctx); rbErr != nil {
					return fmt.Errorf("rollback savepoint: %v (original error: %w)", rbErr, err)
				}
				resp.Skipped = append(resp.Skipped, attendance.SkippedRecord{
					RecordID: recordID,
					Reason:   err.Error(),
				})
				continue
			}
			if err := sp.Commit(ctx); err != nil {
				return fmt.Errorf("release savepoint: %w", err)
			}

			if req.Approve {
				resp.Approved++
			} else {
				resp.Rejected++
			}
		}
		return nil
	})
	if err != nil {
		return attendance.BatchOTDecisionResponse{}, err
	}
	return resp, nil
}

func (a *AttendanceServiceImpl) decideOne(ctx context.Context, p identity.Principal, sc identity.Scope, recordID string, approve bool, reason string) error {
	record, err := a.attendanceRepo.GetByID(ctx, recordID)
	if err != nil {
		return err
	}
	if !record.OTPending() {
		return attendance.ErrNotOTCandidate
	}

	if _, err := approvalsvc.CheckTarget(ctx, a.resolver, a.employeeRepo, sc, record.EmployeeID); err != nil {
		return err
	}

	var rejectionReason *string
	if !approve {
		rejectionReason = &reason
	}
	if err := a.attendanceRepo.DecideOT(ctx, recordID, approve, p.UserID, rejectionReason); err != nil {
		return err
	}

	title := "Overtime approved"
	body := fmt.Sprintf("Your %d overtime minutes on %s were approved.", record.OTMinutes, record.WorkDate.Format("2006-01-02"))
	if !approve {
		title = "Overtime rejected"
		body = fmt.Sprintf("Your overtime on %s was rejected: %s", record.WorkDate.Format("2006-01-02"), reason)
	}
	return a.notificationSvc.NotifyEmployee(ctx, record.EmployeeID,
		notification.KindOTDecision, title, body, &record.ID)
}

func (a *AttendanceServiceImpl) requireOTApprover(ctx context.Context, p identity.Principal) (identity.Scope, error) {
	sc, err := a.resolver.Resolve(ctx, p)
	if err != nil {
		return identity.Scope{}, err
	}

	var emp employee.Employee
	if !p.IsAdmin() {
		emp, err = a.employeeRepo.GetByID(ctx, p.EmployeeID)
		if err != nil {
			return identity.Scope{}, err
		}
	}

	caps := permission.BuildCapabilities(p, sc, emp)
	if !caps.CanApproveOT {
		return identity.Scope{}, permission.Deny("you are not allowed to approve overtime")
	}
	return sc, nil
}
