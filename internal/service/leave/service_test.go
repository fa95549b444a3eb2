package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/domain/leave"
	"github.com/tandemhr/ess-backend-go/internal/domain/notification"
	"github.com/tandemhr/ess-backend-go/internal/domain/user"
	"github.com/tandemhr/ess-backend-go/internal/repository/postgresql"
	"github.com/tandemhr/ess-backend-go/internal/service/scope"
)

// immediateTxRunner executes transactional work inline against the fakes.
type immediateTxRunner struct{}

func (immediateTxRunner) InTx(ctx context.Context, fn postgresql.TxFunc) error {
	return fn(ctx, nil)
}

func (immediateTxRunner) InSerializableTx(ctx context.Context, fn postgresql.TxFunc) error {
	return fn(ctx, nil)
}

type sentNotification struct {
	employeeID string
	kind       notification.Kind
}

type fakeNotificationSvc struct {
	sent []sentNotification
}

func (f *fakeNotificationSvc) Notify(_ context.Context, userID string, kind notification.Kind, _, _ string, _ *string) error {
	f.sent = append(f.sent, sentNotification{employeeID: userID, kind: kind})
	return nil
}

func (f *fakeNotificationSvc) NotifyEmployee(_ context.Context, employeeID string, kind notification.Kind, _, _ string, _ *string) error {
	f.sent = append(f.sent, sentNotification{employeeID: employeeID, kind: kind})
	return nil
}

func (f *fakeNotificationSvc) List(_ context.Context, _ string, _, _ int) ([]notification.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationSvc) UnreadCount(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func (f *fakeNotificationSvc) MarkRead(_ context.Context, _, _ string) error { return nil }

func (f *fakeNotificationSvc) MarkAllRead(_ context.Context, _ string) error { return nil }

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

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType
}

func (f *fakeLeaveTypeRepo) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (f *fakeLeaveTypeRepo) GetByCompanyID(_ context.Context, companyID string) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range f.types {
		if lt.CompanyID == nil || *lt.CompanyID == companyID {
			out = append(out, lt)
		}
	}
	return out, nil
}

type balanceKey struct {
	employeeID  string
	leaveTypeID string
	year        int
}

type fakeBalanceRepo struct {
	balances map[balanceKey]leave.LeaveBalance
	created  []leave.LeaveBalance
}

func (f *fakeBalanceRepo) Create(_ context.Context, b leave.LeaveBalance) (leave.LeaveBalance, error) {
	b.ID = "bal-created"
	if f.balances == nil {
		f.balances = make(map[balanceKey]leave.LeaveBalance)
	}
	f.balances[balanceKey{b.EmployeeID, b.LeaveTypeID, b.Year}] = b
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeBalanceRepo) GetByEmployeeTypeYear(_ context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	b, ok := f.balances[balanceKey{employeeID, leaveTypeID, year}]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (f *fakeBalanceRepo) GetByEmployeeYear(_ context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	var out []leave.LeaveBalance
	for k, b := range f.balances {
		if k.employeeID == employeeID && k.year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

// AddUsedDays mirrors the SQL guard: a positive delta that would push
// used past entitled + carried is refused.
func (f *fakeBalanceRepo) AddUsedDays(_ context.Context, balanceID string, delta float64) error {
	for k, b := range f.balances {
		if b.ID != balanceID {
			continue
		}
		if delta > 0 && b.UsedDays+delta > b.EntitledDays+b.CarriedForward {
			return leave.ErrInsufficientBalance
		}
		b.UsedDays += delta
		f.balances[k] = b
		return nil
	}
	return leave.ErrBalanceNotFound
}

type fakeRequestRepo struct {
	countByTypeYear int
	overlapping     bool
	requests        map[string]leave.LeaveRequest
	nextID          int
}

func (f *fakeRequestRepo) put(r leave.LeaveRequest) leave.LeaveRequest {
	if r.ID == "" {
		f.nextID++
		r.ID = fmt.Sprintf("req-%d", f.nextID)
	}
	if f.requests == nil {
		f.requests = make(map[string]leave.LeaveRequest)
	}
	f.requests[r.ID] = r
	return r
}

func (f *fakeRequestRepo) Create(_ context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
	return f.put(r), nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo) GetByEmployeeID(_ context.Context, _ string, _ leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	return nil, 0, nil
}

func (f *fakeRequestRepo) GetPendingByGroup(_ context.Context, _ string, _ []string, _ bool) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeRequestRepo) CheckOverlapping(_ context.Context, _ string, _, _ time.Time) (bool, error) {
	return f.overlapping, nil
}

func (f *fakeRequestRepo) CountByTypeYear(_ context.Context, _, _ string, _ int) (int, error) {
	return f.countByTypeYear, nil
}

func (f *fakeRequestRepo) UpdateTransition(_ context.Context, r leave.LeaveRequest) error {
	if _, ok := f.requests[r.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	f.requests[r.ID] = r
	return nil
}

func (f *fakeRequestRepo) GetStalePending(_ context.Context, _ time.Time) ([]leave.LeaveRequest, error) {
	return nil, nil
}

type fakeHolidayRepo struct {
	holidays []company.PublicHoliday
}

func (f *fakeHolidayRepo) GetByDateRange(_ context.Context, _ string, from, to time.Time) ([]company.PublicHoliday, error) {
	var out []company.PublicHoliday
	for _, h := range f.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

type leaveFixture struct {
	svc         *LeaveServiceImpl
	principal   identity.Principal
	balanceRepo *fakeBalanceRepo
	requestRepo *fakeRequestRepo
	holidayRepo *fakeHolidayRepo
	types       *fakeLeaveTypeRepo
	notes       *fakeNotificationSvc
}

func (f *leaveFixture) seedBalance(b leave.LeaveBalance) {
	f.balanceRepo.balances[balanceKey{b.EmployeeID, b.LeaveTypeID, b.Year}] = b
}

// newLeaveFixture wires the service over in-memory repositories: an
// outlet company with nearest-half rounding and an active male crew
// member who joined 2023-01-10. The clock is pinned to Mon 2025-09-15.
func newLeaveFixture() *leaveFixture {
	outletID := "out-1"
	companyID := "co-1"
	otherCompanyID := "co-2"
	female := "female"
	tenYears := 3650
	one := 1

	companyRepo := &fakeCompanyRepo{companies: map[string]company.Company{
		companyID: {
			ID:           companyID,
			Name:         "Kopi Kita",
			GroupingType: company.GroupingOutlet,
			Settings:     company.Settings{LeaveProrationRounding: company.RoundNearest},
		},
	}}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID:               "emp-1",
			CompanyID:        companyID,
			OutletID:         &outletID,
			EmployeeCode:     "KK-001",
			FullName:         "Budi Santoso",
			Gender:           employee.Male,
			EmployeeRole:     employee.RoleStaff,
			EmploymentType:   employee.EmploymentTypePermanent,
			EmploymentStatus: employee.EmploymentStatusActive,
			JoinDate:         day(2023, time.January, 10),
			ESSEnabled:       true,
		},
		"sup-1": {
			ID:               "sup-1",
			CompanyID:        companyID,
			OutletID:         &outletID,
			EmployeeCode:     "KK-010",
			FullName:         "Sari Dewi",
			Gender:           employee.Female,
			EmployeeRole:     employee.RoleSupervisor,
			EmploymentType:   employee.EmploymentTypePermanent,
			EmploymentStatus: employee.EmploymentStatusActive,
			JoinDate:         day(2021, time.April, 1),
			ESSEnabled:       true,
		},
		"mgr-1": {
			ID:               "mgr-1",
			CompanyID:        companyID,
			OutletID:         &outletID,
			EmployeeCode:     "KK-020",
			FullName:         "Agus Wijaya",
			Gender:           employee.Male,
			EmployeeRole:     employee.RoleManager,
			EmploymentType:   employee.EmploymentTypePermanent,
			EmploymentStatus: employee.EmploymentStatusActive,
			JoinDate:         day(2020, time.February, 1),
			ESSEnabled:       true,
		},
	}}
	types := &fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
		"lt-al": {
			ID: "lt-al", CompanyID: &companyID, Code: "AL", Name: "Annual Leave",
			IsPaid: true, DefaultDaysPerYear: 12,
		},
		"lt-sl": {
			ID: "lt-sl", CompanyID: &companyID, Code: "SL", Name: "Sick Leave",
			RequiresAttachment: true,
		},
		"lt-mat": {
			ID: "lt-mat", CompanyID: &companyID, Code: "MAT", Name: "Maternity Leave",
			IsConsecutive: true, GenderRestriction: &female,
		},
		"lt-lsl": {
			ID: "lt-lsl", CompanyID: &companyID, Code: "LSL", Name: "Long Service Leave",
			MinServiceDays: &tenYears,
		},
		"lt-mar": {
			ID: "lt-mar", CompanyID: &companyID, Code: "ML", Name: "Marriage Leave",
			MaxOccurrences: &one,
		},
		"lt-foreign": {
			ID: "lt-foreign", CompanyID: &otherCompanyID, Code: "AL", Name: "Annual Leave",
			IsPaid: true, DefaultDaysPerYear: 12,
		},
		"lt-aa": {
			ID: "lt-aa", CompanyID: &companyID, Code: "FL", Name: "Flexi Leave",
			IsPaid: true, AutoApprove: true, DefaultDaysPerYear: 12,
		},
	}}

	balanceRepo := &fakeBalanceRepo{balances: map[balanceKey]leave.LeaveBalance{}}
	requestRepo := &fakeRequestRepo{}
	holidayRepo := &fakeHolidayRepo{}

	resolver := scope.NewResolver(
		companyRepo,
		&fakeOutletRepo{},
		&fakeDepartmentRepo{},
		employeeRepo,
		&fakeEmployeeOutletRepo{},
		&fakePositionRepo{},
	)

	notes := &fakeNotificationSvc{}
	svc := &LeaveServiceImpl{
		tx:              immediateTxRunner{},
		leaveTypeRepo:   types,
		balanceRepo:     balanceRepo,
		requestRepo:     requestRepo,
		employeeRepo:    employeeRepo,
		holidayRepo:     holidayRepo,
		resolver:        resolver,
		notificationSvc: notes,
		now:             func() time.Time { return time.Date(2025, time.September, 15, 10, 0, 0, 0, time.UTC) },
	}

	return &leaveFixture{
		svc: svc,
		principal: identity.Principal{
			UserID:     "usr-1",
			EmployeeID: "emp-1",
			CompanyID:  "co-1",
			Role:       user.RoleEmployee,
		},
		balanceRepo: balanceRepo,
		requestRepo: requestRepo,
		holidayRepo: holidayRepo,
		types:       types,
		notes:       notes,
	}
}

func supervisorPrincipal() identity.Principal {
	return identity.Principal{UserID: "usr-sup", EmployeeID: "sup-1", CompanyID: "co-1", Role: user.RoleEmployee}
}

func managerPrincipal() identity.Principal {
	return identity.Principal{UserID: "usr-mgr", EmployeeID: "mgr-1", CompanyID: "co-1", Role: user.RoleEmployee}
}

func adminPrincipal() identity.Principal {
	return identity.Principal{UserID: "usr-adm", CompanyID: "co-1", Role: user.RoleAdmin}
}

func applyReq(typeID, start, end string) leave.ApplyLeaveRequest {
	return leave.ApplyLeaveRequest{
		LeaveTypeID: typeID,
		StartDate:   start,
		EndDate:     end,
		Reason:      "personal matters",
	}
}

func TestApplyEligibilityGates(t *testing.T) {
	ctx := context.Background()
	mc := "https://files.example.com/mc.pdf"

	t.Run("gender restricted", func(t *testing.T) {
		f := newLeaveFixture()
		_, err := f.svc.Apply(ctx, f.principal, applyReq("lt-mat", "2025-10-01", "2025-10-03"))
		assert.ErrorIs(t, err, leave.ErrGenderRestricted)
	})

	t.Run("minimum service not met", func(t *testing.T) {
		f := newLeaveFixture()
		_, err := f.svc.Apply(ctx, f.principal, applyReq("lt-lsl", "2025-10-01", "2025-10-03"))
		assert.ErrorIs(t, err, leave.ErrInsufficientService)
	})

	t.Run("occurrence cap hit", func(t *testing.T) {
		f := newLeaveFixture()
		f.requestRepo.countByTypeYear = 1
		_, err := f.svc.Apply(ctx, f.principal, applyReq("lt-mar", "2025-10-01", "2025-10-03"))
		assert.ErrorIs(t, err, leave.ErrOccurrenceCapHit)
	})

	t.Run("attachment required", func(t *testing.T) {
		f := newLeaveFixture()
		_, err := f.svc.Apply(ctx, f.principal, applyReq("lt-sl", "2025-09-16", "2025-09-16"))
		assert.ErrorIs(t, err, leave.ErrAttachmentRequired)
	})

	t.Run("past start without attachment", func(t *testing.T) {
		f := newLeaveFixture()
		_, err := f.svc.Apply(ctx, f.principal, applyReq("lt-al", "2025-09-12", "2025-09-12"))
		assert.ErrorIs(t, err, leave.ErrPastDate)
	})

	t.Run("backdated beyond a week", func(t *testing.T) {
		f := newLeaveFixture()
		req := applyReq("lt-sl", "2025-09-05", "2025-09-06")
		req.MCUrl = &mc
		_, err := f.svc.Apply(ctx, f.principal, req)
		assert.ErrorIs(t, err, leave.ErrBackdateTooOld)
	})

	t.Run("end before start", func(t *testing.T) {
		f := newLeaveFixture()
		_, err := f.svc.Apply(ctx, f.principal, applyReq("lt-al", "2025-10-03", "2025-10-01"))
		assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
	})

	t.Run("overlapping request", func(t *testing.T) {
		f := newLeaveFixture()
		f.requestRepo.overlapping = true
		_, err := f.svc.Apply(ctx, f.principal, applyReq("lt-al", "2025-10-01", "2025-10-03"))
		assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
	})

	t.Run("another company's type is invisible", func(t *testing.T) {
		f := newLeaveFixture()
		_, err := f.svc.Apply(ctx, f.principal, applyReq("lt-foreign", "2025-10-01", "2025-10-03"))
		assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
	})

	t.Run("holiday-only range has no working days", func(t *testing.T) {
		f := newLeaveFixture()
		f.holidayRepo.holidays = []company.PublicHoliday{
			{ID: "hol-1", Date: day(2025, time.October, 1), Name: "Founding Day"},
		}
		_, err := f.svc.Apply(ctx, f.principal, applyReq("lt-al", "2025-10-01", "2025-10-01"))
		assert.ErrorIs(t, err, leave.ErrZeroWorkingDays)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		f := newLeaveFixture()
		f.balanceRepo.balances[balanceKey{"emp-1", "lt-al", 2025}] = leave.LeaveBalance{
			ID: "bal-1", EmployeeID: "emp-1", LeaveTypeID: "lt-al", Year: 2025,
			EntitledDays: 12, UsedDays: 11,
		}
		_, err := f.svc.Apply(ctx, f.principal, applyReq("lt-al", "2025-10-01", "2025-10-03"))
		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		f := newLeaveFixture()
		_, err := f.svc.Apply(ctx, f.principal, leave.ApplyLeaveRequest{LeaveTypeID: "lt-al"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, leave.ErrLeaveTypeNotFound)
	})
}

func pendingRequest(f *leaveFixture, totalDays float64, level approval.Level) leave.LeaveRequest {
	return f.requestRepo.put(leave.LeaveRequest{
		EmployeeID:    "emp-1",
		LeaveTypeID:   "lt-al",
		StartDate:     day(2025, time.October, 1),
		EndDate:       day(2025, time.October, 2),
		TotalDays:     totalDays,
		Reason:        "personal matters",
		Status:        approval.StatusPending,
		ApprovalLevel: level,
	})
}

func TestApproveClimbsLadder(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	f.seedBalance(leave.LeaveBalance{
		ID: "bal-1", EmployeeID: "emp-1", LeaveTypeID: "lt-al", Year: 2025,
		EntitledDays: 12,
	})
	req := pendingRequest(f, 2, approval.LevelSupervisor)

	resp, err := f.svc.Approve(ctx, supervisorPrincipal(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusPending), resp.Status)
	assert.Equal(t, int(approval.LevelManager), resp.ApprovalLevel)

	resp, err = f.svc.Approve(ctx, managerPrincipal(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, int(approval.LevelAdmin), resp.ApprovalLevel)

	resp, err = f.svc.Approve(ctx, adminPrincipal(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusApproved), resp.Status)

	stored := f.requestRepo.requests[req.ID]
	require.NotNil(t, stored.SupervisorApprovedBy)
	assert.Equal(t, "usr-sup", *stored.SupervisorApprovedBy)
	require.NotNil(t, stored.ManagerApprovedBy)
	assert.Equal(t, "usr-mgr", *stored.ManagerApprovedBy)
	require.NotNil(t, stored.AdminApprovedBy)
	assert.Equal(t, "usr-adm", *stored.AdminApprovedBy)

	// Final approval debits exactly the requested days.
	b := f.balanceRepo.balances[balanceKey{"emp-1", "lt-al", 2025}]
	assert.Equal(t, 2.0, b.UsedDays)

	last := f.notes.sent[len(f.notes.sent)-1]
	assert.Equal(t, "emp-1", last.employeeID)
	assert.Equal(t, notification.KindRequestApproved, last.kind)
}

func TestApproveRechecksBalanceAtFinal(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	f.seedBalance(leave.LeaveBalance{
		ID: "bal-1", EmployeeID: "emp-1", LeaveTypeID: "lt-al", Year: 2025,
		EntitledDays: 12,
	})

	// Both passed the apply-time check while used_days was still zero.
	first := pendingRequest(f, 10, approval.LevelAdmin)
	second := pendingRequest(f, 10, approval.LevelAdmin)

	_, err := f.svc.Approve(ctx, adminPrincipal(), first.ID)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, adminPrincipal(), second.ID)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	b := f.balanceRepo.balances[balanceKey{"emp-1", "lt-al", 2025}]
	assert.Equal(t, 10.0, b.UsedDays)
}

func TestApplyAutoApproveDebits(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()

	resp, err := f.svc.Apply(ctx, f.principal, applyReq("lt-aa", "2025-10-01", "2025-10-02"))
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusApproved), resp.Status)
	assert.True(t, resp.AutoApproved)
	assert.Equal(t, 2.0, resp.TotalDays)

	b := f.balanceRepo.balances[balanceKey{"emp-1", "lt-aa", 2025}]
	assert.Equal(t, 2.0, b.UsedDays)

	last := f.notes.sent[len(f.notes.sent)-1]
	assert.Equal(t, notification.KindRequestApproved, last.kind)
}

func TestRevertRestoresBalance(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	f.seedBalance(leave.LeaveBalance{
		ID: "bal-aa", EmployeeID: "emp-1", LeaveTypeID: "lt-aa", Year: 2025,
		EntitledDays: 12, UsedDays: 2,
	})
	req := f.requestRepo.put(leave.LeaveRequest{
		EmployeeID:    "emp-1",
		LeaveTypeID:   "lt-aa",
		StartDate:     day(2025, time.October, 1),
		EndDate:       day(2025, time.October, 2),
		TotalDays:     2,
		Status:        approval.StatusApproved,
		ApprovalLevel: approval.LevelAdmin,
		AutoApproved:  true,
	})

	resp, err := f.svc.Revert(ctx, f.principal, req.ID)
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusCancelled), resp.Status)

	// The credit mirrors the auto-approval debit exactly.
	b := f.balanceRepo.balances[balanceKey{"emp-1", "lt-aa", 2025}]
	assert.Equal(t, 0.0, b.UsedDays)
}

func TestRevertRequiresAutoApproved(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	req := f.requestRepo.put(leave.LeaveRequest{
		EmployeeID:    "emp-1",
		LeaveTypeID:   "lt-al",
		StartDate:     day(2025, time.October, 1),
		EndDate:       day(2025, time.October, 2),
		TotalDays:     2,
		Status:        approval.StatusApproved,
		ApprovalLevel: approval.LevelAdmin,
	})

	_, err := f.svc.Revert(ctx, f.principal, req.ID)
	assert.ErrorIs(t, err, approval.ErrNotAutoApproved)
}

func TestRejectRecordsReason(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	req := pendingRequest(f, 2, approval.LevelSupervisor)

	resp, err := f.svc.Reject(ctx, supervisorPrincipal(), req.ID, "short staffed that week")
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusRejected), resp.Status)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "short staffed that week", *resp.RejectionReason)

	last := f.notes.sent[len(f.notes.sent)-1]
	assert.Equal(t, notification.KindRequestRejected, last.kind)
}

func TestCancelOwnerOnly(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	req := pendingRequest(f, 2, approval.LevelSupervisor)

	_, err := f.svc.Cancel(ctx, supervisorPrincipal(), req.ID)
	require.Error(t, err)
	assert.Equal(t, approval.StatusPending, f.requestRepo.requests[req.ID].Status)

	resp, err := f.svc.Cancel(ctx, f.principal, req.ID)
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusCancelled), resp.Status)

	// Decided requests cannot be cancelled again.
	_, err = f.svc.Cancel(ctx, f.principal, req.ID)
	assert.ErrorIs(t, err, approval.ErrAlreadyProcessed)
}

func TestEnsureBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("existing row wins", func(t *testing.T) {
		f := newLeaveFixture()
		f.balanceRepo.balances[balanceKey{"emp-1", "lt-al", 2025}] = leave.LeaveBalance{
			ID: "bal-1", EmployeeID: "emp-1", LeaveTypeID: "lt-al", Year: 2025,
			EntitledDays: 14,
		}
		emp := employee.Employee{ID: "emp-1", JoinDate: day(2023, time.January, 10)}
		lt := f.types.types["lt-al"]

		b, err := f.svc.ensureBalance(ctx, emp, lt, 2025)
		require.NoError(t, err)
		assert.Equal(t, "bal-1", b.ID)
		assert.Equal(t, 14.0, b.EntitledDays)
		assert.Empty(t, f.balanceRepo.created)
	})

	t.Run("materializes with carry-forward capped", func(t *testing.T) {
		f := newLeaveFixture()
		f.balanceRepo.balances[balanceKey{"emp-1", "lt-al", 2024}] = leave.LeaveBalance{
			ID: "bal-prev", EmployeeID: "emp-1", LeaveTypeID: "lt-al", Year: 2024,
			EntitledDays: 12, UsedDays: 7,
		}
		maxCarry := 3.0
		lt := f.types.types["lt-al"]
		lt.CarriesForward = true
		lt.MaxCarryForward = &maxCarry
		emp := employee.Employee{ID: "emp-1", JoinDate: day(2023, time.January, 10)}

		b, err := f.svc.ensureBalance(ctx, emp, lt, 2025)
		require.NoError(t, err)
		assert.Equal(t, 12.0, b.EntitledDays)
		assert.Equal(t, 3.0, b.CarriedForward)
	})

	t.Run("no carry for non-carrying types", func(t *testing.T) {
		f := newLeaveFixture()
		f.balanceRepo.balances[balanceKey{"emp-1", "lt-al", 2024}] = leave.LeaveBalance{
			ID: "bal-prev", EmployeeID: "emp-1", LeaveTypeID: "lt-al", Year: 2024,
			EntitledDays: 12, UsedDays: 7,
		}
		emp := employee.Employee{ID: "emp-1", JoinDate: day(2023, time.January, 10)}

		b, err := f.svc.ensureBalance(ctx, emp, f.types.types["lt-al"], 2025)
		require.NoError(t, err)
		assert.Equal(t, 0.0, b.CarriedForward)
	})
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture()
	f.balanceRepo.balances[balanceKey{"emp-1", "lt-al", 2025}] = leave.LeaveBalance{
		ID: "bal-1", EmployeeID: "emp-1", LeaveTypeID: "lt-al", Year: 2025,
		EntitledDays: 12, CarriedForward: 2, UsedDays: 3,
	}

	summaries, err := f.svc.GetSummary(ctx, f.principal, 2025)
	require.NoError(t, err)

	var al leave.Summary
	for _, s := range summaries {
		if s.LeaveTypeID == "lt-al" {
			al = s
		}
	}
	require.Equal(t, "AL", al.LeaveTypeCode)

	// Tenured employee at mid-September has 8 completed months of 12.
	assert.Equal(t, 12.0, al.EntitledDays)
	assert.Equal(t, 8.0, al.YTDEarned)
	assert.Equal(t, 4.0, al.AdvanceLeave)
	assert.Equal(t, 2.0, al.CarriedForward)
	assert.Equal(t, 3.0, al.UsedDays)
	assert.Equal(t, 7.0, al.EarnedBalance)
}
