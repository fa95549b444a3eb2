package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemhr/ess-backend-go/internal/domain/attendance"
	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/domain/notification"
	"github.com/tandemhr/ess-backend-go/internal/domain/user"
	"github.com/tandemhr/ess-backend-go/internal/repository/postgresql"
	"github.com/tandemhr/ess-backend-go/internal/service/permission"
	"github.com/tandemhr/ess-backend-go/internal/service/scope"
)

// stubTx satisfies pgx.Tx for savepoint bookkeeping; no query ever reaches
// it because the repositories underneath are in-memory.
type stubTx struct{}

func (stubTx) Begin(_ context.Context) (pgx.Tx, error) { return stubTx{}, nil }
func (stubTx) Commit(_ context.Context) error          { return nil }
func (stubTx) Rollback(_ context.Context) error        { return nil }
func (stubTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (stubTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }
func (stubTx) LargeObjects() pgx.LargeObjects                             { return pgx.LargeObjects{} }
func (stubTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (stubTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (stubTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return nil, nil }
func (stubTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row        { return nil }
func (stubTx) Conn() *pgx.Conn                                               { return nil }

type immediateTxRunner struct{}

func (immediateTxRunner) InTx(ctx context.Context, fn postgresql.TxFunc) error {
	return fn(ctx, stubTx{})
}

func (immediateTxRunner) InSerializableTx(ctx context.Context, fn postgresql.TxFunc) error {
	return fn(ctx, stubTx{})
}

type fakeAttendanceRepo struct {
	records map[string]attendance.ClockInRecord
}

func (f *fakeAttendanceRepo) Create(_ context.Context, r attendance.ClockInRecord) (attendance.ClockInRecord, error) {
	f.records[r.ID] = r
	return r, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.ClockInRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return attendance.ClockInRecord{}, attendance.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeDate(_ context.Context, _ string, _ time.Time) (attendance.ClockInRecord, error) {
	return attendance.ClockInRecord{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeRange(_ context.Context, _ string, _, _ time.Time) ([]attendance.ClockInRecord, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) SetPunch(_ context.Context, _ attendance.ClockInRecord, _ attendance.PunchSlot) error {
	return nil
}

func (f *fakeAttendanceRepo) GetPendingOT(_ context.Context, _ string, _ []string, _ bool) ([]attendance.ClockInRecord, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) DecideOT(_ context.Context, recordID string, approved bool, decidedBy string, reason *string) error {
	r, ok := f.records[recordID]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	r.OTApproved = &approved
	r.OTApprovedBy = &decidedBy
	r.OTRejectionReason = reason
	f.records[recordID] = r
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]company.Company
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

type fakeOutletRepo struct{}

func (f *fakeOutletRepo) GetByID(_ context.Context, _ string) (company.Outlet, error) {
	return company.Outlet{}, company.ErrOutletNotFound
}

func (f *fakeOutletRepo) GetByCompanyID(_ context.Context, _ string) ([]company.Outlet, error) {
	return nil, nil
}

type fakeDepartmentRepo struct{}

func (f *fakeDepartmentRepo) GetByID(_ context.Context, _ string) (company.Department, error) {
	return company.Department{}, company.ErrDepartmentNotFound
}

func (f *fakeDepartmentRepo) GetByCompanyID(_ context.Context, _ string) ([]company.Department, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, _, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByCompanyID(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) GetByOutletIDs(_ context.Context, _ []string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) GetByDepartmentIDs(_ context.Context, _ []string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) UpdateProfile(_ context.Context, _ employee.UpdateProfileRequest) error {
	return nil
}

type fakeEmployeeOutletRepo struct{}

func (f *fakeEmployeeOutletRepo) GetOutletIDsByEmployee(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

type fakePositionRepo struct{}

func (f *fakePositionRepo) GetByID(_ context.Context, _ string) (employee.Position, error) {
	return employee.Position{}, employee.ErrPositionNotFound
}

type fakeNotificationSvc struct {
	sent []notification.Kind
}

func (f *fakeNotificationSvc) Notify(_ context.Context, _ string, kind notification.Kind, _, _ string, _ *string) error {
	f.sent = append(f.sent, kind)
	return nil
}

func (f *fakeNotificationSvc) NotifyEmployee(_ context.Context, _ string, kind notification.Kind, _, _ string, _ *string) error {
	f.sent = append(f.sent, kind)
	return nil
}

func (f *fakeNotificationSvc) List(_ context.Context, _ string, _, _ int) ([]notification.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationSvc) UnreadCount(_ context.Context, _ string) (int, error) { return 0, nil }

func (f *fakeNotificationSvc) MarkRead(_ context.Context, _, _ string) error { return nil }

func (f *fakeNotificationSvc) MarkAllRead(_ context.Context, _ string) error { return nil }

type batchFixture struct {
	svc   *AttendanceServiceImpl
	repo  *fakeAttendanceRepo
	notes *fakeNotificationSvc
}

func newBatchFixture() *batchFixture {
	outletID := "out-1"
	repo := &fakeAttendanceRepo{records: map[string]attendance.ClockInRecord{}}
	notes := &fakeNotificationSvc{}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID:           "emp-1",
			CompanyID:    "co-1",
			OutletID:     &outletID,
			EmployeeRole: employee.RoleStaff,
		},
	}}

	resolver := scope.NewResolver(
		&fakeCompanyRepo{companies: map[string]company.Company{
			"co-1": {ID: "co-1", GroupingType: company.GroupingOutlet},
		}},
		&fakeOutletRepo{},
		&fakeDepartmentRepo{},
		employees,
		&fakeEmployeeOutletRepo{},
		&fakePositionRepo{},
	)

	svc := &AttendanceServiceImpl{
		tx:              immediateTxRunner{},
		attendanceRepo:  repo,
		resolver:        resolver,
		employeeRepo:    employees,
		notificationSvc: notes,
		now:             func() time.Time { return time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC) },
	}
	return &batchFixture{svc: svc, repo: repo, notes: notes}
}

func flaggedRecord(id string) attendance.ClockInRecord {
	return attendance.ClockInRecord{
		ID:         id,
		EmployeeID: "emp-1",
		CompanyID:  "co-1",
		WorkDate:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		OTMinutes:  90,
		OTFlagged:  true,
	}
}

func TestDecideOTBatch(t *testing.T) {
	ctx := context.Background()
	admin := identity.Principal{UserID: "usr-adm", CompanyID: "co-1", Role: user.RoleAdmin}

	t.Run("approves flagged and skips decided", func(t *testing.T) {
		f := newBatchFixture()
		f.repo.records["rec-1"] = flaggedRecord("rec-1")
		decided := flaggedRecord("rec-2")
		yes := true
		decided.OTApproved = &yes
		f.repo.records["rec-2"] = decided
		f.repo.records["rec-3"] = flaggedRecord("rec-3")

		resp, err := f.svc.DecideOTBatch(ctx, admin, attendance.BatchOTDecisionRequest{
			RecordIDs: []string{"rec-1", "rec-2", "rec-3"},
			Approve:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Approved)
		assert.Equal(t, 0, resp.Rejected)
		require.Len(t, resp.Skipped, 1)
		assert.Equal(t, "rec-2", resp.Skipped[0].RecordID)

		r := f.repo.records["rec-1"]
		require.NotNil(t, r.OTApproved)
		assert.True(t, *r.OTApproved)
		assert.Equal(t, "usr-adm", *r.OTApprovedBy)
	})

	t.Run("rejection stamps the reason", func(t *testing.T) {
		f := newBatchFixture()
		f.repo.records["rec-1"] = flaggedRecord("rec-1")

		resp, err := f.svc.DecideOTBatch(ctx, admin, attendance.BatchOTDecisionRequest{
			RecordIDs: []string{"rec-1"},
			Approve:   false,
			Reason:    "not pre-approved",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Rejected)

		r := f.repo.records["rec-1"]
		require.NotNil(t, r.OTApproved)
		assert.False(t, *r.OTApproved)
		assert.Equal(t, "not pre-approved", *r.OTRejectionReason)
		assert.Equal(t, []notification.Kind{notification.KindOTDecision}, f.notes.sent)
	})

	t.Run("missing record is skipped, not fatal", func(t *testing.T) {
		f := newBatchFixture()
		f.repo.records["rec-1"] = flaggedRecord("rec-1")

		resp, err := f.svc.DecideOTBatch(ctx, admin, attendance.BatchOTDecisionRequest{
			RecordIDs: []string{"rec-missing", "rec-1"},
			Approve:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Approved)
		require.Len(t, resp.Skipped, 1)
		assert.Equal(t, "rec-missing", resp.Skipped[0].RecordID)
	})

	t.Run("non-approver is denied", func(t *testing.T) {
		f := newBatchFixture()
		staff := identity.Principal{UserID: "usr-1", EmployeeID: "emp-1", CompanyID: "co-1", Role: user.RoleEmployee}

		_, err := f.svc.DecideOTBatch(ctx, staff, attendance.BatchOTDecisionRequest{
			RecordIDs: []string{"rec-1"},
			Approve:   true,
		})
		var denied *permission.DeniedError
		assert.ErrorAs(t, err, &denied)
	})
}
