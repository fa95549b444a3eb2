package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/domain/leave"
	"github.com/tandemhr/ess-backend-go/internal/domain/notification"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
	"github.com/tandemhr/ess-backend-go/internal/pkg/validator"
	"github.com/tandemhr/ess-backend-go/internal/repository/postgresql"
	approvalsvc "github.com/tandemhr/ess-backend-go/internal/service/approval"
	"github.com/tandemhr/ess-backend-go/internal/service/permission"
	"github.com/tandemhr/ess-backend-go/internal/service/scope"
)

const backdateWindowDays = 7

type LeaveServiceImpl struct {
	tx              postgresql.TxRunner
	leaveTypeRepo   leave.LeaveTypeRepository
	balanceRepo     leave.LeaveBalanceRepository
	requestRepo     leave.LeaveRequestRepository
	employeeRepo    employee.EmployeeRepository
	holidayRepo     company.PublicHolidayRepository
	resolver        *scope.Resolver
	notificationSvc notification.Service

	now func() time.Time
}

func NewLeaveService(
	db *database.DB,
	leaveTypeRepo leave.LeaveTypeRepository,
	balanceRepo leave.LeaveBalanceRepository,
	requestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo company.PublicHolidayRepository,
	resolver *scope.Resolver,
	notificationSvc notification.Service,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:              postgresql.NewTxRunner(db),
		leaveTypeRepo:   leaveTypeRepo,
		balanceRepo:     balanceRepo,
		requestRepo:     requestRepo,
		employeeRepo:    employeeRepo,
		holidayRepo:     holidayRepo,
		resolver:        resolver,
		notificationSvc: notificationSvc,
		now:             time.Now,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetLeaveTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveTypes(ctx context.Context, p identity.Principal) ([]leave.LeaveType, error) {
	sc, err := l.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	return l.leaveTypeRepo.GetByCompanyID(ctx, sc.Company.ID)
}

// GetSummary implements leave.LeaveService.
func (l *LeaveServiceImpl) GetSummary(ctx context.Context, p identity.Principal, year int) ([]leave.Summary, error) {
	emp, sc, err := l.resolver.ResolveEmployee(ctx, p)
	if err != nil {
		return nil, err
	}

	types, err := l.leaveTypeRepo.GetByCompanyID(ctx, sc.Company.ID)
	if err != nil {
		return nil, err
	}

	balances, err := l.balanceRepo.GetByEmployeeYear(ctx, emp.ID, year)
	if err != nil {
		return nil, err
	}
	byType := make(map[string]leave.LeaveBalance, len(balances))
	for _, b := range balances {
		byType[b.LeaveTypeID] = b
	}

	today := dateOnly(l.now())
	months := CompletedMonths(emp.JoinDate, today)
	rounding := sc.Company.Settings.LeaveProrationRounding

	var summaries []leave.Summary
	for _, lt := range types {
		entitled := SelectEntitlement(lt, emp.JoinDate, today)
		var carried, used float64
		if b, ok := byType[lt.ID]; ok {
			entitled = b.EntitledDays
			carried = b.CarriedForward
			used = b.UsedDays
		}

		ytd := Prorate(entitled, months, rounding)
		summaries = append(summaries, leave.Summary{
			LeaveTypeID:    lt.ID,
			LeaveTypeCode:  lt.Code,
			Year:           year,
			EntitledDays:   entitled,
			CarriedForward: carried,
			UsedDays:       used,
			YTDEarned:      ytd,
			AdvanceLeave:   entitled - ytd,
			EarnedBalance:  ytd + carried - used,
		})
	}
	return summaries, nil
}

// Apply implements leave.LeaveService. All eligibility gates run before the
// request row is created; auto-approving types debit the balance in the
// creation transaction.
func (l *LeaveServiceImpl) Apply(ctx context.Context, p identity.Principal, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, sc, err := l.resolver.ResolveEmployee(ctx, p)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	lt, err := l.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if lt.CompanyID != nil && *lt.CompanyID != sc.Company.ID {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeNotFound
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)
	if endDate.Before(startDate) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	today := dateOnly(l.now())
	if err := l.checkEligibility(ctx, emp, lt, startDate, endDate, today, req.MCUrl); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	totalDays, err := l.countDays(ctx, sc.Company, lt, startDate, endDate, req.HalfDay)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var balance leave.LeaveBalance
	if lt.IsPaid {
		balance, err = l.ensureBalance(ctx, emp, lt, startDate.Year())
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		if balance.Remaining() < totalDays {
			return leave.LeaveRequestResponse{}, leave.ErrInsufficientBalance
		}
	}

	request := leave.LeaveRequest{
		EmployeeID:    emp.ID,
		LeaveTypeID:   lt.ID,
		StartDate:     startDate,
		EndDate:       endDate,
		TotalDays:     totalDays,
		HalfDay:       req.HalfDay,
		Reason:        req.Reason,
		MCUrl:         req.MCUrl,
		Status:        approval.StatusPending,
		ApprovalLevel: approval.InitialLevel(sc.Company.GroupingType, emp.EmployeeRole),
	}

	var created leave.LeaveRequest
	err = l.tx.InTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		if lt.AutoApprove {
			request.Status = approval.StatusApproved
			request.AutoApproved = true
			request.ApprovalLevel = approval.LevelAdmin
		}

		var txErr error
		created, txErr = l.requestRepo.Create(ctx, request)
		if txErr != nil {
			return fmt.Errorf("create leave request: %w", txErr)
		}

		if lt.AutoApprove {
			if lt.IsPaid {
				fresh, txErr := l.balanceRepo.GetByEmployeeTypeYear(ctx, emp.ID, lt.ID, startDate.Year())
				if txErr != nil {
					return txErr
				}
				if fresh.Remaining() < totalDays {
					return leave.ErrInsufficientBalance
				}
				if txErr := l.balanceRepo.AddUsedDays(ctx, fresh.ID, totalDays); txErr != nil {
					return fmt.Errorf("debit balance: %w", txErr)
				}
			}
			return l.notificationSvc.NotifyEmployee(ctx, emp.ID,
				notification.KindRequestApproved,
				"Leave auto-approved",
				fmt.Sprintf("Your %s from %s to %s was auto-approved.", lt.Name, req.StartDate, req.EndDate),
				&created.ID)
		}

		return l.notifyNextApprover(ctx, sc, emp, created.ApprovalLevel,
			fmt.Sprintf("%s requested %s (%s to %s).", emp.FullName, lt.Name, req.StartDate, req.EndDate),
			created.ID)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToResponse(created), nil
}

func (l *LeaveServiceImpl) checkEligibility(ctx context.Context, emp employee.Employee, lt leave.LeaveType, startDate, endDate, today time.Time, mcURL *string) error {
	if lt.GenderRestriction != nil && *lt.GenderRestriction != string(emp.Gender) {
		return leave.ErrGenderRestricted
	}

	if lt.MinServiceDays != nil {
		serviceDays := int(today.Sub(dateOnly(emp.JoinDate)).Hours() / 24)
		if serviceDays < *lt.MinServiceDays {
			return leave.ErrInsufficientService
		}
	}

	if lt.MaxOccurrences != nil {
		count, err := l.requestRepo.CountByTypeYear(ctx, emp.ID, lt.ID, startDate.Year())
		if err != nil {
			return err
		}
		if count >= *lt.MaxOccurrences {
			return leave.ErrOccurrenceCapHit
		}
	}

	if lt.RequiresAttachment && (mcURL == nil || *mcURL == "") {
		return leave.ErrAttachmentRequired
	}

	if startDate.Before(today) {
		// Only attachment-backed types (medical and the like) may be
		// back-dated, and never more than a week.
		if !lt.RequiresAttachment {
			return leave.ErrPastDate
		}
		if today.Sub(startDate).Hours()/24 > backdateWindowDays {
			return leave.ErrBackdateTooOld
		}
	}

	switch emp.EmploymentStatus {
	case employee.EmploymentStatusNotice, employee.EmploymentStatusResignedPending:
		if emp.LastWorkingDay != nil && endDate.After(*emp.LastWorkingDay) {
			return leave.ErrBeyondLastWorkingDay
		}
	}

	overlapping, err := l.requestRepo.CheckOverlapping(ctx, emp.ID, startDate, endDate)
	if err != nil {
		return err
	}
	if overlapping {
		return leave.ErrOverlappingLeave
	}

	return nil
}

func (l *LeaveServiceImpl) countDays(ctx context.Context, comp company.Company, lt leave.LeaveType, startDate, endDate time.Time, halfDay bool) (float64, error) {
	holidays, err := l.holidayRepo.GetByDateRange(ctx, comp.ID, startDate, endDate)
	if err != nil {
		return 0, err
	}

	total := CountDays(startDate, endDate, comp.GroupingType, lt.IsConsecutive, NewHolidaySet(holidays))
	if total == 0 {
		return 0, leave.ErrZeroWorkingDays
	}
	if halfDay && total == 1 {
		total = 0.5
	}
	return total, nil
}

// ensureBalance lazily materializes the (employee, type, year) balance row,
// folding in last year's carry-forward when the type allows it.
func (l *LeaveServiceImpl) ensureBalance(ctx context.Context, emp employee.Employee, lt leave.LeaveType, year int) (leave.LeaveBalance, error) {
	balance, err := l.balanceRepo.GetByEmployeeTypeYear(ctx, emp.ID, lt.ID, year)
	if err == nil {
		return balance, nil
	}
	if err != leave.ErrBalanceNotFound {
		return leave.LeaveBalance{}, err
	}

	today := dateOnly(l.now())
	entitled := SelectEntitlement(lt, emp.JoinDate, today)

	var carried float64
	if lt.CarriesForward {
		prev, err := l.balanceRepo.GetByEmployeeTypeYear(ctx, emp.ID, lt.ID, year-1)
		if err == nil {
			carried = prev.Remaining()
			if carried < 0 {
				carried = 0
			}
			if lt.MaxCarryForward != nil && carried > *lt.MaxCarryForward {
				carried = *lt.MaxCarryForward
			}
		} else if err != leave.ErrBalanceNotFound {
			return leave.LeaveBalance{}, err
		}
	}

	return l.balanceRepo.Create(ctx, leave.LeaveBalance{
		EmployeeID:     emp.ID,
		LeaveTypeID:    lt.ID,
		Year:           year,
		EntitledDays:   entitled,
		CarriedForward: carried,
	})
}

// GetRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetRequest(ctx context.Context, p identity.Principal, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := l.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.EmployeeID != p.EmployeeID {
		sc, err := l.resolver.Resolve(ctx, p)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		if _, err := approvalsvc.CheckTarget(ctx, l.resolver, l.employeeRepo, sc, request.EmployeeID); err != nil {
			return leave.LeaveRequestResponse{}, err
		}
	}

	return leave.ToResponse(request), nil
}

// ListOwn implements leave.LeaveService.
func (l *LeaveServiceImpl) ListOwn(ctx context.Context, p identity.Principal, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, int64, error) {
	requests, total, err := l.requestRepo.GetByEmployeeID(ctx, p.EmployeeID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}
	return responses, total, nil
}

// PendingApprovals implements leave.LeaveService. Hierarchy filtering is
// applied per request: only owners strictly below the principal show up.
func (l *LeaveServiceImpl) PendingApprovals(ctx context.Context, p identity.Principal) ([]leave.LeaveRequestResponse, error) {
	sc, err := l.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	requests, err := l.requestRepo.GetPendingByGroup(ctx, sc.Company.ID, sc.Managed(), sc.WholeCompany)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		if r.EmployeeID == p.EmployeeID {
			continue
		}
		if approvalsvc.OwnerLevel(r.OwnerRole) >= sc.HierarchyLevel {
			continue
		}
		responses = append(responses, leave.ToResponse(r))
	}
	return responses, nil
}

// Approve implements leave.LeaveService. The whole step is one serializable
// transaction: re-read, permission re-check, machine step, write, and the
// notification row all commit together.
func (l *LeaveServiceImpl) Approve(ctx context.Context, p identity.Principal, requestID string) (leave.LeaveRequestResponse, error) {
	sc, tier, err := approvalsvc.ActorContext(ctx, l.resolver, l.employeeRepo, p)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var result leave.LeaveRequest
	err = l.tx.InSerializableTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := l.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}

		target, err := approvalsvc.CheckTarget(ctx, l.resolver, l.employeeRepo, sc, request.EmployeeID)
		if err != nil {
			return err
		}

		tr, err := approval.Approve(request.Status, request.ApprovalLevel, tier)
		if err != nil {
			return err
		}
		l.applyTransition(&request, tr, p.UserID)

		if err := l.requestRepo.UpdateTransition(ctx, request); err != nil {
			return err
		}

		if tr.Status == approval.StatusApproved {
			lt, err := l.leaveTypeRepo.GetByID(ctx, request.LeaveTypeID)
			if err != nil {
				return err
			}
			if lt.IsPaid {
				balance, err := l.ensureBalance(ctx, target, lt, request.StartDate.Year())
				if err != nil {
					return err
				}
				// Apply-time sufficiency is stale by now: another pending
				// request may have been approved since. Re-check against
				// the balance this transaction sees.
				if balance.Remaining() < request.TotalDays {
					return leave.ErrInsufficientBalance
				}
				if err := l.balanceRepo.AddUsedDays(ctx, balance.ID, request.TotalDays); err != nil {
					return fmt.Errorf("debit balance: %w", err)
				}
			}
			result = request
			return l.notificationSvc.NotifyEmployee(ctx, request.EmployeeID,
				notification.KindRequestApproved, "Leave approved",
				fmt.Sprintf("Your leave from %s to %s was approved.", request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02")),
				&request.ID)
		}

		result = request
		return l.notificationSvc.NotifyEmployee(ctx, request.EmployeeID,
			notification.KindRequestSubmitted, "Leave request advanced",
			fmt.Sprintf("Your leave request moved to approval level %d.", request.ApprovalLevel),
			&request.ID)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToResponse(result), nil
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, p identity.Principal, requestID, reason string) (leave.LeaveRequestResponse, error) {
	sc, _, err := approvalsvc.ActorContext(ctx, l.resolver, l.employeeRepo, p)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var result leave.LeaveRequest
	err = l.tx.InSerializableTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := l.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}

		if _, err := approvalsvc.CheckTarget(ctx, l.resolver, l.employeeRepo, sc, request.EmployeeID); err != nil {
			return err
		}

		tr, err := approval.Reject(request.Status)
		if err != nil {
			return err
		}
		request.Status = tr.Status
		request.RejectionReason = &reason

		if err := l.requestRepo.UpdateTransition(ctx, request); err != nil {
			return err
		}

		result = request
		return l.notificationSvc.NotifyEmployee(ctx, request.EmployeeID,
			notification.KindRequestRejected, "Leave rejected",
			fmt.Sprintf("Your leave request was rejected: %s", reason),
			&request.ID)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToResponse(result), nil
}

// Cancel implements leave.LeaveService. Owner-only, and only while pending,
// so no balance was ever debited.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, p identity.Principal, requestID string) (leave.LeaveRequestResponse, error) {
	var result leave.LeaveRequest
	err := l.tx.InSerializableTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := l.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if err := permission.CanActOnSelfCancel(p, request.EmployeeID); err != nil {
			return err
		}

		tr, err := approval.Cancel(request.Status)
		if err != nil {
			return err
		}
		request.Status = tr.Status

		if err := l.requestRepo.UpdateTransition(ctx, request); err != nil {
			return err
		}

		result = request
		return l.notificationSvc.NotifyEmployee(ctx, request.EmployeeID,
			notification.KindRequestCancelled, "Leave cancelled",
			"Your leave request was cancelled.",
			&request.ID)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToResponse(result), nil
}

// Revert implements leave.LeaveService. The reversal credits back exactly
// what approval debited, in the same transaction as the status change.
func (l *LeaveServiceImpl) Revert(ctx context.Context, p identity.Principal, requestID string) (leave.LeaveRequestResponse, error) {
	var result leave.LeaveRequest
	err := l.tx.InSerializableTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := l.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if err := permission.CanActOnSelfCancel(p, request.EmployeeID); err != nil {
			return err
		}

		tr, err := approval.Revert(request.Status, request.AutoApproved)
		if err != nil {
			return err
		}
		request.Status = tr.Status

		if err := l.requestRepo.UpdateTransition(ctx, request); err != nil {
			return err
		}

		lt, err := l.leaveTypeRepo.GetByID(ctx, request.LeaveTypeID)
		if err != nil {
			return err
		}
		if lt.IsPaid {
			balance, err := l.balanceRepo.GetByEmployeeTypeYear(ctx, request.EmployeeID, lt.ID, request.StartDate.Year())
			if err != nil {
				return err
			}
			if err := l.balanceRepo.AddUsedDays(ctx, balance.ID, -request.TotalDays); err != nil {
				return fmt.Errorf("credit balance: %w", err)
			}
		}

		result = request
		return l.notificationSvc.NotifyEmployee(ctx, request.EmployeeID,
			notification.KindRequestCancelled, "Leave reverted",
			"Your auto-approved leave was reverted and the balance restored.",
			&request.ID)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToResponse(result), nil
}

func (l *LeaveServiceImpl) applyTransition(request *leave.LeaveRequest, tr approval.Transition, actorID string) {
	now := l.now()
	request.Status = tr.Status
	request.ApprovalLevel = tr.Level
	for _, slot := range tr.FillSlots {
		switch slot {
		case approval.LevelSupervisor:
			request.SupervisorApprovedBy = &actorID
			request.SupervisorApprovedAt = &now
		case approval.LevelManager:
			request.ManagerApprovedBy = &actorID
			request.ManagerApprovedAt = &now
		case approval.LevelAdmin:
			request.AdminApprovedBy = &actorID
			request.AdminApprovedAt = &now
		}
	}
}

// notifyNextApprover addresses the approvers able to act at the request's
// level. Admin approvers have no employee row and are not addressable; the
// office-company equivalent is the designated schedule manager.
func (l *LeaveServiceImpl) notifyNextApprover(ctx context.Context, sc identity.Scope, owner employee.Employee, level approval.Level, body, requestID string) error {
	var candidates []employee.Employee
	var err error

	if sc.Kind == identity.GroupOutlets {
		if owner.OutletID == nil {
			return nil
		}
		candidates, err = l.employeeRepo.GetByOutletIDs(ctx, []string{*owner.OutletID})
	} else {
		candidates, err = l.employeeRepo.GetByCompanyID(ctx, sc.Company.ID)
	}
	if err != nil {
		return err
	}

	for _, c := range candidates {
		if c.ID == owner.ID {
			continue
		}
		if !l.addressesLevel(sc, c, level) {
			continue
		}
		if err := l.notificationSvc.NotifyEmployee(ctx, c.ID,
			notification.KindRequestSubmitted, "Leave request awaiting your approval", body, &requestID); err != nil {
			return err
		}
	}
	return nil
}

func (l *LeaveServiceImpl) addressesLevel(sc identity.Scope, c employee.Employee, level approval.Level) bool {
	if sc.Kind == identity.GroupDepartments {
		return c.IsScheduleManager
	}
	switch level {
	case approval.LevelSupervisor:
		return c.EmployeeRole == employee.RoleSupervisor
	case approval.LevelManager:
		return c.EmployeeRole == employee.RoleManager
	case approval.LevelAdmin:
		return c.EmployeeRole == employee.RoleBoss || c.EmployeeRole == employee.RoleDirector
	}
	return false
}
