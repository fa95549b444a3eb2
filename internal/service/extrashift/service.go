package extrashift

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/extrashift"
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

type ServiceImpl struct {
	tx              postgresql.TxRunner
	requestRepo     extrashift.Repository
	scheduleRepo    schedule.ScheduleRepository
	employeeRepo    employee.EmployeeRepository
	resolver        *scope.Resolver
	notificationSvc notification.Service

	now func() time.Time
}

func NewService(
	db *database.DB,
	requestRepo extrashift.Repository,
	scheduleRepo schedule.ScheduleRepository,
	employeeRepo employee.EmployeeRepository,
	resolver *scope.Resolver,
	notificationSvc notification.Service,
) extrashift.Service {
	return &ServiceImpl{
		tx:              postgresql.NewTxRunner(db),
		requestRepo:     requestRepo,
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

// Submit implements extrashift.Service.
func (s *ServiceImpl) Submit(ctx context.Context, p identity.Principal, req extrashift.SubmitRequest) (extrashift.Response, error) {
	if err := req.Validate(); err != nil {
		return extrashift.Response{}, err
	}

	emp, sc, err := s.resolver.ResolveEmployee(ctx, p)
	if err != nil {
		return extrashift.Response{}, err
	}

	shiftDate, _ := validator.IsValidDate(req.ShiftDate)
	if shiftDate.Before(dateOnly(s.now())) {
		return extrashift.Response{}, extrashift.ErrDateInPast
	}

	if _, err := s.scheduleRepo.GetByEmployeeDate(ctx, emp.ID, shiftDate); err == nil {
		return extrashift.Response{}, extrashift.ErrAlreadyScheduled
	} else if err != schedule.ErrScheduleNotFound {
		return extrashift.Response{}, err
	}

	pending, err := s.requestRepo.CheckPendingByDate(ctx, emp.ID, shiftDate)
	if err != nil {
		return extrashift.Response{}, err
	}
	if pending {
		return extrashift.Response{}, extrashift.ErrOverlappingRequest
	}

	request := extrashift.ExtraShiftRequest{
		CompanyID:     sc.Company.ID,
		EmployeeID:    emp.ID,
		ShiftDate:     shiftDate,
		ShiftStart:    req.ShiftStart,
		ShiftEnd:      req.ShiftEnd,
		Reason:        req.Reason,
		Status:        approval.StatusPending,
		ApprovalLevel: approval.InitialLevel(sc.Company.GroupingType, emp.EmployeeRole),
	}

	err = s.tx.InTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		if err := s.requestRepo.Create(ctx, &request); err != nil {
			return fmt.Errorf("create extra shift request: %w", err)
		}
		return s.notifyApprovers(ctx, sc, emp,
			fmt.Sprintf("%s requested an extra shift on %s (%s-%s).", emp.FullName, req.ShiftDate, req.ShiftStart, req.ShiftEnd),
			request.ID)
	})
	if err != nil {
		return extrashift.Response{}, err
	}

	return extrashift.ToResponse(request), nil
}

// ListOwn implements extrashift.Service.
func (s *ServiceImpl) ListOwn(ctx context.Context, p identity.Principal, limit, offset int) ([]extrashift.Response, error) {
	sc, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.GetByFilter(ctx, extrashift.Filter{
		CompanyID:  sc.Company.ID,
		EmployeeID: &p.EmployeeID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// PendingApprovals implements extrashift.Service.
func (s *ServiceImpl) PendingApprovals(ctx context.Context, p identity.Principal) ([]extrashift.Response, error) {
	sc, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	status := approval.StatusPending
	filter := extrashift.Filter{CompanyID: sc.Company.ID, Status: &status}
	if !sc.WholeCompany {
		filter.OutletIDs = sc.ManagedOutlets
		filter.DepartmentIDs = sc.ManagedDepartments
	}

	requests, err := s.requestRepo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]extrashift.Response, 0, len(requests))
	for _, r := range requests {
		if r.EmployeeID == p.EmployeeID {
			continue
		}
		if approvalsvc.OwnerLevel(r.OwnerRole) >= sc.HierarchyLevel {
			continue
		}
		responses = append(responses, extrashift.ToResponse(r))
	}
	return responses, nil
}

// Approve implements extrashift.Service.
func (s *ServiceImpl) Approve(ctx context.Context, p identity.Principal, requestID string) (extrashift.Response, error) {
	sc, tier, err := approvalsvc.ActorContext(ctx, s.resolver, s.employeeRepo, p)
	if err != nil {
		return extrashift.Response{}, err
	}

	var result extrashift.ExtraShiftRequest
	err = s.tx.InSerializableTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := s.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		target, err := approvalsvc.CheckTarget(ctx, s.resolver, s.employeeRepo, sc, request.EmployeeID)
		if err != nil {
			return err
		}

		tr, err := approval.Approve(request.Status, request.ApprovalLevel, tier)
		if err != nil {
			return err
		}
		if err := s.requestRepo.UpdateTransition(ctx, request.ID, tr, p.UserID, nil); err != nil {
			return err
		}
		request.Status = tr.Status
		request.ApprovalLevel = tr.Level
		result = *request

		if tr.Status == approval.StatusApproved {
			if err := s.materializeSchedule(ctx, *request, target); err != nil {
				return err
			}
			return s.notificationSvc.NotifyEmployee(ctx, request.EmployeeID,
				notification.KindRequestApproved, "Extra shift approved",
				fmt.Sprintf("Your extra shift on %s was approved and scheduled.", request.ShiftDate.Format("2006-01-02")),
				&request.ID)
		}
		return s.notificationSvc.NotifyEmployee(ctx, request.EmployeeID,
			notification.KindRequestSubmitted, "Extra shift request advanced",
			fmt.Sprintf("Your extra shift request moved to approval level %d.", tr.Level),
			&request.ID)
	})
	if err != nil {
		return extrashift.Response{}, err
	}

	return extrashift.ToResponse(result), nil
}

// materializeSchedule writes the approved shift as a schedule row. The row
// is an approval artifact: the edit horizon does not apply to it.
func (s *ServiceImpl) materializeSchedule(ctx context.Context, request extrashift.ExtraShiftRequest, target employee.Employee) error {
	row := schedule.Schedule{
		EmployeeID:   target.ID,
		CompanyID:    target.CompanyID,
		OutletID:     target.OutletID,
		DepartmentID: target.DepartmentID,
		ScheduleDate: request.ShiftDate,
		ShiftStart:   request.ShiftStart,
		ShiftEnd:     request.ShiftEnd,
		Status:       schedule.StatusScheduled,
	}
	if err := s.scheduleRepo.Create(ctx, &row); err != nil {
		if err == schedule.ErrDuplicateSchedule {
			return extrashift.ErrAlreadyScheduled
		}
		return err
	}
	return nil
}

// Reject implements extrashift.Service.
func (s *ServiceImpl) Reject(ctx context.Context, p identity.Principal, requestID, reason string) (extrashift.Response, error) {
	sc, _, err := approvalsvc.ActorContext(ctx, s.resolver, s.employeeRepo, p)
	if err != nil {
		return extrashift.Response{}, err
	}

	var result extrashift.ExtraShiftRequest
	err = s.tx.InSerializableTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := s.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if _, err := approvalsvc.CheckTarget(ctx, s.resolver, s.employeeRepo, sc, request.EmployeeID); err != nil {
			return err
		}

		tr, err := approval.Reject(request.Status)
		if err != nil {
			return err
		}
		if err := s.requestRepo.UpdateTransition(ctx, request.ID, tr, p.UserID, &reason); err != nil {
			return err
		}
		request.Status = tr.Status
		request.RejectionReason = &reason
		result = *request

		return s.notificationSvc.NotifyEmployee(ctx, request.EmployeeID,
			notification.KindRequestRejected, "Extra shift rejected",
			fmt.Sprintf("Your extra shift request was rejected: %s", reason),
			&request.ID)
	})
	if err != nil {
		return extrashift.Response{}, err
	}

	return extrashift.ToResponse(result), nil
}

// Cancel implements extrashift.Service.
func (s *ServiceImpl) Cancel(ctx context.Context, p identity.Principal, requestID string) (extrashift.Response, error) {
	var result extrashift.ExtraShiftRequest
	err := s.tx.InSerializableTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := s.requestRepo.GetByID(ctx, requestID)
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
		if err := s.requestRepo.UpdateTransition(ctx, request.ID, tr, p.UserID, nil); err != nil {
			return err
		}
		request.Status = tr.Status
		result = *request

		return s.notificationSvc.NotifyEmployee(ctx, request.EmployeeID,
			notification.KindRequestCancelled, "Extra shift cancelled",
			"Your extra shift request was cancelled.",
			&request.ID)
	})
	if err != nil {
		return extrashift.Response{}, err
	}

	return extrashift.ToResponse(result), nil
}

func (s *ServiceImpl) notifyApprovers(ctx context.Context, sc identity.Scope, owner employee.Employee, body, requestID string) error {
	if owner.OutletID == nil && owner.DepartmentID == nil {
		return nil
	}

	var candidates []employee.Employee
	var err error
	if owner.OutletID != nil {
		candidates, err = s.employeeRepo.GetByOutletIDs(ctx, []string{*owner.OutletID})
	} else {
		candidates, err = s.employeeRepo.GetByDepartmentIDs(ctx, []string{*owner.DepartmentID})
	}
	if err != nil {
		return err
	}

	ownerLevel := approvalsvc.OwnerLevel(stringPtr(string(owner.EmployeeRole)))
	for _, cand := range candidates {
		if cand.ID == owner.ID {
			continue
		}
		if cand.EmployeeRole != employee.RoleSupervisor && cand.EmployeeRole != employee.RoleManager {
			continue
		}
		if approvalsvc.OwnerLevel(stringPtr(string(cand.EmployeeRole))) <= ownerLevel {
			continue
		}
		if err := s.notificationSvc.NotifyEmployee(ctx, cand.ID,
			notification.KindRequestSubmitted, "Extra shift awaiting your approval", body, &requestID); err != nil {
			return err
		}
	}
	return nil
}

func toResponses(requests []extrashift.ExtraShiftRequest) []extrashift.Response {
	responses := make([]extrashift.Response, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, extrashift.ToResponse(r))
	}
	return responses
}

func stringPtr(s string) *string {
	return &s
}
