package schedule

import (
	"context"
	"time"

	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/domain/schedule"
	"github.com/tandemhr/ess-backend-go/internal/pkg/validator"
	"github.com/tandemhr/ess-backend-go/internal/service/leave"
	"github.com/tandemhr/ess-backend-go/internal/service/permission"
	"github.com/tandemhr/ess-backend-go/internal/service/scope"
)

// editHorizonDays is the T+2 rule: schedules starting sooner than this many
// days out are locked for non-exempt principals.
const editHorizonDays = 2

type ScheduleServiceImpl struct {
	scheduleRepo schedule.ScheduleRepository
	templateRepo schedule.ShiftTemplateRepository
	employeeRepo employee.EmployeeRepository
	holidayRepo  company.PublicHolidayRepository
	resolver     *scope.Resolver

	now func() time.Time
}

func NewScheduleService(
	scheduleRepo schedule.ScheduleRepository,
	templateRepo schedule.ShiftTemplateRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo company.PublicHolidayRepository,
	resolver *scope.Resolver,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		scheduleRepo: scheduleRepo,
		templateRepo: templateRepo,
		employeeRepo: employeeRepo,
		holidayRepo:  holidayRepo,
		resolver:     resolver,
		now:          time.Now,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	fromDate, ok := validator.IsValidDate(from)
	if !ok {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{Field: "from", Message: "from must be a valid date (YYYY-MM-DD)"}}
	}
	toDate, ok := validator.IsValidDate(to)
	if !ok {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{Field: "to", Message: "to must be a valid date (YYYY-MM-DD)"}}
	}
	return fromDate, toDate, nil
}

// GetOwn implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetOwn(ctx context.Context, p identity.Principal, from, to string) ([]schedule.ScheduleResponse, error) {
	fromDate, toDate, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}

	sc, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	schedules, err := s.scheduleRepo.GetByEmployeeRange(ctx, p.EmployeeID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, sc.Company.ID, schedules)
}

// GetTeam implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetTeam(ctx context.Context, p identity.Principal, from, to string) ([]schedule.ScheduleResponse, error) {
	fromDate, toDate, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}

	sc, err := s.requireScheduleManager(ctx, p)
	if err != nil {
		return nil, err
	}

	outletIDs, departmentIDs := sc.ManagedOutlets, sc.ManagedDepartments
	schedules, err := s.scheduleRepo.GetByGroupRange(ctx, sc.Company.ID, outletIDs, departmentIDs, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, sc.Company.ID, schedules)
}

// toResponses decorates rows with the shift template code; rows created
// ad-hoc are matched against templates by start and end time for display.
func (s *ScheduleServiceImpl) toResponses(ctx context.Context, companyID string, schedules []schedule.Schedule) ([]schedule.ScheduleResponse, error) {
	byTimes := map[string]string{}
	templates, err := s.templateRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for _, t := range templates {
		byTimes[t.StartTime+"-"+t.EndTime] = t.Code
	}

	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, row := range schedules {
		if row.TemplateCode == nil {
			if code, ok := byTimes[row.ShiftStart+"-"+row.ShiftEnd]; ok {
				row.TemplateCode = &code
			}
		}
		responses = append(responses, schedule.ToResponse(row))
	}
	return responses, nil
}

// BulkCreate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) BulkCreate(ctx context.Context, p identity.Principal, req schedule.BulkCreateRequest) (schedule.BulkCreateResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.BulkCreateResponse{}, err
	}

	sc, err := s.requireScheduleManager(ctx, p)
	if err != nil {
		return schedule.BulkCreateResponse{}, err
	}
	exempt := s.editExempt(ctx, p)

	resp := schedule.BulkCreateResponse{Errors: []schedule.RowError{}}
	for i, entry := range req.Entries {
		if err := s.createOne(ctx, sc, entry, exempt); err != nil {
			resp.Errors = append(resp.Errors, schedule.RowError{Index: i, Message: err.Error()})
			continue
		}
		resp.Created++
	}
	return resp, nil
}

func (s *ScheduleServiceImpl) createOne(ctx context.Context, sc identity.Scope, entry schedule.ScheduleEntry, exempt bool) error {
	scheduleDate, _ := validator.IsValidDate(entry.ScheduleDate)
	if err := s.checkEditable(scheduleDate, exempt); err != nil {
		return err
	}

	target, err := s.employeeRepo.GetByID(ctx, entry.EmployeeID)
	if err != nil {
		return err
	}
	if target.CompanyID != sc.Company.ID {
		return permission.Deny("target employee belongs to a different company")
	}
	if !sc.WholeCompany && !sc.Covers(target.GroupID()) {
		return schedule.ErrOutsideManagedGroup
	}

	row := schedule.Schedule{
		EmployeeID:   target.ID,
		CompanyID:    target.CompanyID,
		OutletID:     target.OutletID,
		DepartmentID: target.DepartmentID,
		ScheduleDate: scheduleDate,
		Status:       schedule.StatusScheduled,
	}
	if err := s.applyShift(ctx, &row, entry); err != nil {
		return err
	}

	holidays, err := s.holidayRepo.GetByDateRange(ctx, sc.Company.ID, scheduleDate, scheduleDate)
	if err != nil {
		return err
	}
	row.IsPublicHoliday = leave.NewHolidaySet(holidays).Contains(scheduleDate)

	return s.scheduleRepo.Create(ctx, &row)
}

func (s *ScheduleServiceImpl) applyShift(ctx context.Context, row *schedule.Schedule, entry schedule.ScheduleEntry) error {
	if entry.IsOff {
		row.Status = schedule.StatusOff
		row.ShiftStart = "00:00"
		row.ShiftEnd = "00:00"
		return nil
	}

	if entry.ShiftTemplateID != nil {
		tpl, err := s.templateRepo.GetByID(ctx, *entry.ShiftTemplateID)
		if err != nil {
			return err
		}
		if !tpl.IsActive {
			return schedule.ErrShiftTemplateInactive
		}
		row.ShiftTemplateID = &tpl.ID
		row.ShiftStart = tpl.StartTime
		row.ShiftEnd = tpl.EndTime
		row.BreakMinutes = tpl.BreakMinutes
		if tpl.IsOff {
			row.Status = schedule.StatusOff
		}
		return nil
	}

	row.ShiftStart = *entry.ShiftStart
	row.ShiftEnd = *entry.ShiftEnd
	if entry.BreakMinutes != nil {
		row.BreakMinutes = *entry.BreakMinutes
	}
	return nil
}

// Update implements schedule.ScheduleService. Both the row's current date
// and the new date must clear the edit horizon.
func (s *ScheduleServiceImpl) Update(ctx context.Context, p identity.Principal, scheduleID string, entry schedule.ScheduleEntry) (schedule.ScheduleResponse, error) {
	sc, err := s.requireScheduleManager(ctx, p)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	exempt := s.editExempt(ctx, p)

	row, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	if row.CompanyID != sc.Company.ID {
		return schedule.ScheduleResponse{}, schedule.ErrScheduleNotFound
	}
	if err := s.checkEditable(row.ScheduleDate, exempt); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	if entry.ScheduleDate != "" {
		newDate, ok := validator.IsValidDate(entry.ScheduleDate)
		if !ok {
			return schedule.ScheduleResponse{}, validator.ValidationErrors{{Field: "schedule_date", Message: "schedule_date must be in YYYY-MM-DD format"}}
		}
		if err := s.checkEditable(newDate, exempt); err != nil {
			return schedule.ScheduleResponse{}, err
		}
		row.ScheduleDate = newDate
	}

	row.Status = schedule.StatusScheduled
	row.ShiftTemplateID = nil
	if err := s.applyShift(ctx, row, entry); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	if err := s.scheduleRepo.Update(ctx, row); err != nil {
		return schedule.ScheduleResponse{}, err
	}
	return schedule.ToResponse(*row), nil
}

// Delete implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Delete(ctx context.Context, p identity.Principal, scheduleID string) error {
	sc, err := s.requireScheduleManager(ctx, p)
	if err != nil {
		return err
	}

	row, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if row.CompanyID != sc.Company.ID {
		return schedule.ErrScheduleNotFound
	}
	if err := s.checkEditable(row.ScheduleDate, s.editExempt(ctx, p)); err != nil {
		return err
	}

	return s.scheduleRepo.Delete(ctx, scheduleID)
}

// ValidateWeek implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ValidateWeek(ctx context.Context, p identity.Principal, weekOf string) (schedule.WeeklyValidationResponse, error) {
	date, ok := validator.IsValidDate(weekOf)
	if !ok {
		return schedule.WeeklyValidationResponse{}, validator.ValidationErrors{{Field: "week_of", Message: "week_of must be a valid date (YYYY-MM-DD)"}}
	}

	sc, err := s.requireScheduleManager(ctx, p)
	if err != nil {
		return schedule.WeeklyValidationResponse{}, err
	}

	weekStart := schedule.WeekStartOf(date)
	weekEnd := weekStart.AddDate(0, 0, 6)

	members, err := s.scopedEmployees(ctx, sc)
	if err != nil {
		return schedule.WeeklyValidationResponse{}, err
	}

	schedules, err := s.scheduleRepo.GetByGroupRange(ctx, sc.Company.ID, sc.ManagedOutlets, sc.ManagedDepartments, weekStart, weekEnd)
	if err != nil {
		return schedule.WeeklyValidationResponse{}, err
	}

	byEmployee := map[string]map[string]schedule.ScheduleStatus{}
	for _, row := range schedules {
		key := row.ScheduleDate.Format("2006-01-02")
		if byEmployee[row.EmployeeID] == nil {
			byEmployee[row.EmployeeID] = map[string]schedule.ScheduleStatus{}
		}
		byEmployee[row.EmployeeID][key] = row.Status
	}

	resp := schedule.WeeklyValidationResponse{
		WeekStart: weekStart.Format("2006-01-02"),
		Reports:   make([]schedule.WeeklyReport, 0, len(members)),
	}
	for _, m := range members {
		resp.Reports = append(resp.Reports, weeklyReport(m, weekStart, byEmployee[m.ID]))
	}
	return resp, nil
}

func weeklyReport(m employee.Employee, weekStart time.Time, days map[string]schedule.ScheduleStatus) schedule.WeeklyReport {
	report := schedule.WeeklyReport{
		EmployeeID:   m.ID,
		EmployeeName: &m.FullName,
		WeekStart:    weekStart.Format("2006-01-02"),
		Warnings:     []string{},
	}

	run := 0
	for i := 0; i < 7; i++ {
		status, scheduled := days[weekStart.AddDate(0, 0, i).Format("2006-01-02")]
		switch {
		case !scheduled:
			report.UnscheduledDays++
			run = 0
		case status == schedule.StatusOff:
			report.OffDays++
			run = 0
		default:
			report.WorkDays++
			run++
			if run > report.MaxConsecutiveWork {
				report.MaxConsecutiveWork = run
			}
		}
	}

	if report.MaxConsecutiveWork >= 6 && report.OffDays == 0 {
		report.Warnings = append(report.Warnings, "no rest day")
	}
	return report
}

// ListTemplates implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListTemplates(ctx context.Context, p identity.Principal) ([]schedule.ShiftTemplate, error) {
	sc, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.templateRepo.GetByCompanyID(ctx, sc.Company.ID)
}

func (s *ScheduleServiceImpl) scopedEmployees(ctx context.Context, sc identity.Scope) ([]employee.Employee, error) {
	if sc.WholeCompany {
		return s.employeeRepo.GetByCompanyID(ctx, sc.Company.ID)
	}
	if sc.Kind == identity.GroupOutlets {
		return s.employeeRepo.GetByOutletIDs(ctx, sc.ManagedOutlets)
	}
	return s.employeeRepo.GetByDepartmentIDs(ctx, sc.ManagedDepartments)
}

func (s *ScheduleServiceImpl) checkEditable(scheduleDate time.Time, exempt bool) error {
	if exempt {
		return nil
	}
	horizon := dateOnly(s.now()).AddDate(0, 0, editHorizonDays)
	if scheduleDate.Before(horizon) {
		return schedule.ErrScheduleLocked
	}
	return nil
}

// editExempt reports whether the principal bypasses the edit horizon:
// admins and directors only.
func (s *ScheduleServiceImpl) editExempt(ctx context.Context, p identity.Principal) bool {
	if p.IsAdmin() {
		return true
	}
	emp, err := s.employeeRepo.GetByID(ctx, p.EmployeeID)
	if err != nil {
		return false
	}
	return emp.EmployeeRole == employee.RoleDirector
}

func (s *ScheduleServiceImpl) requireScheduleManager(ctx context.Context, p identity.Principal) (identity.Scope, error) {
	sc, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return identity.Scope{}, err
	}

	var emp employee.Employee
	if !p.IsAdmin() {
		emp, err = s.employeeRepo.GetByID(ctx, p.EmployeeID)
		if err != nil {
			return identity.Scope{}, err
		}
	}

	caps := permission.BuildCapabilities(p, sc, emp)
	if !caps.CanManageSchedule {
		return identity.Scope{}, schedule.ErrNotScheduleManager
	}
	return sc, nil
}
