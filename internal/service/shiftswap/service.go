package shiftswap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/domain/notification"
	"github.com/tandemhr/ess-backend-go/internal/domain/schedule"
	"github.com/tandemhr/ess-backend-go/internal/domain/shiftswap"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
	"github.com/tandemhr/ess-backend-go/internal/repository/postgresql"
	approvalsvc "github.com/tandemhr/ess-backend-go/internal/service/approval"
	"github.com/tandemhr/ess-backend-go/internal/service/permission"
	"github.com/tandemhr/ess-backend-go/internal/service/scope"
)

type ServiceImpl struct {
	tx              postgresql.TxRunner
	swapRepo        shiftswap.Repository
	scheduleRepo    schedule.ScheduleRepository
	employeeRepo    employee.EmployeeRepository
	resolver        *scope.Resolver
	notificationSvc notification.Service

	now func() time.Time
}

func NewService(
	db *database.DB,
	swapRepo shiftswap.Repository,
	scheduleRepo schedule.ScheduleRepository,
	employeeRepo employee.EmployeeRepository,
	resolver *scope.Resolver,
	notificationSvc notification.Service,
) shiftswap.Service {
	return &ServiceImpl{
		tx:              postgresql.NewTxRunner(db),
		swapRepo:        swapRepo,
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

// Submit implements shiftswap.Service.
func (s *ServiceImpl) Submit(ctx context.Context, p identity.Principal, req shiftswap.SubmitSwapRequest) (shiftswap.SwapResponse, error) {
	if err := req.Validate(); err != nil {
		return shiftswap.SwapResponse{}, err
	}

	requester, sc, err := s.resolver.ResolveEmployee(ctx, p)
	if err != nil {
		return shiftswap.SwapResponse{}, err
	}
	if req.TargetEmployeeID == requester.ID {
		return shiftswap.SwapResponse{}, shiftswap.ErrSwapSelf
	}

	target, err := s.employeeRepo.GetByID(ctx, req.TargetEmployeeID)
	if err != nil {
		return shiftswap.SwapResponse{}, err
	}
	if target.CompanyID != requester.CompanyID || target.GroupID() != requester.GroupID() {
		return shiftswap.SwapResponse{}, shiftswap.ErrDifferentGroup
	}

	requesterSched, err := s.ownedSchedule(ctx, req.RequesterScheduleID, requester.ID)
	if err != nil {
		return shiftswap.SwapResponse{}, err
	}
	targetSched, err := s.ownedSchedule(ctx, req.TargetScheduleID, target.ID)
	if err != nil {
		return shiftswap.SwapResponse{}, err
	}

	today := dateOnly(s.now())
	if requesterSched.ScheduleDate.Before(today) || targetSched.ScheduleDate.Before(today) {
		return shiftswap.SwapResponse{}, shiftswap.ErrScheduleInPast
	}

	request := shiftswap.ShiftSwapRequest{
		CompanyID:         sc.Company.ID,
		RequesterID:       requester.ID,
		TargetID:          target.ID,
		RequesterSchedule: requesterSched.ID,
		TargetSchedule:    targetSched.ID,
		Reason:            req.Reason,
		Status:            approval.StatusPending,
		ApprovalLevel:     approval.InitialLevel(sc.Company.GroupingType, requester.EmployeeRole),
	}

	err = s.tx.InTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		if err := s.swapRepo.Create(ctx, &request); err != nil {
			return fmt.Errorf("create shift swap request: %w", err)
		}
		return s.notificationSvc.NotifyEmployee(ctx, target.ID,
			notification.KindSwapResponse, "Shift swap proposed",
			fmt.Sprintf("%s wants to swap their %s shift with your %s shift.",
				requester.FullName,
				requesterSched.ScheduleDate.Format("2006-01-02"),
				targetSched.ScheduleDate.Format("2006-01-02")),
			&request.ID)
	})
	if err != nil {
		return shiftswap.SwapResponse{}, err
	}

	return shiftswap.ToResponse(request), nil
}

func (s *ServiceImpl) ownedSchedule(ctx context.Context, scheduleID, employeeID string) (*schedule.Schedule, error) {
	sched, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if sched.EmployeeID != employeeID {
		return nil, schedule.ErrScheduleNotFound
	}
	return sched, nil
}

// Respond implements shiftswap.Service. Declining closes the request so it
// never reaches the approval feed.
func (s *ServiceImpl) Respond(ctx context.Context, p identity.Principal, swapID string, req shiftswap.RespondRequest) (shiftswap.SwapResponse, error) {
	var result shiftswap.ShiftSwapRequest
	err := s.tx.InSerializableTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := s.swapRepo.GetByID(ctx, swapID)
		if err != nil {
			return err
		}
		if request.TargetID != p.EmployeeID {
			return shiftswap.ErrNotSwapTarget
		}

		if err := s.swapRepo.SetTargetResponse(ctx, request.ID, req.Accept); err != nil {
			return err
		}
		request.TargetAccepted = &req.Accept

		if !req.Accept {
			tr, err := approval.Reject(request.Status)
			if err != nil {
				return err
			}
			reason := "Declined by the colleague"
			if err := s.swapRepo.UpdateTransition(ctx, request.ID, tr, p.UserID, &reason); err != nil {
				return err
			}
			request.Status = tr.Status
			request.RejectionReason = &reason
		}
		result = *request

		body := "Your swap was accepted and now awaits approval."
		if !req.Accept {
			body = "Your swap was declined by the colleague."
		}
		return s.notificationSvc.NotifyEmployee(ctx, request.RequesterID,
			notification.KindSwapResponse, "Shift swap response", body, &request.ID)
	})
	if err != nil {
		return shiftswap.SwapResponse{}, err
	}

	return shiftswap.ToResponse(result), nil
}

// ListOwn implements shiftswap.Service. Both sides of a swap see it.
func (s *ServiceImpl) ListOwn(ctx context.Context, p identity.Principal, limit, offset int) ([]shiftswap.SwapResponse, error) {
	sc, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	requests, err := s.swapRepo.GetByFilter(ctx, shiftswap.Filter{
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

// PendingApprovals implements shiftswap.Service. Only swaps the colleague
// has accepted appear in the feed.
func (s *ServiceImpl) PendingApprovals(ctx context.Context, p identity.Principal) ([]shiftswap.SwapResponse, error) {
	sc, err := s.requireSwapApprover(ctx, p)
	if err != nil {
		return nil, err
	}

	status := approval.StatusPending
	filter := shiftswap.Filter{CompanyID: sc.Company.ID, Status: &status}
	if !sc.WholeCompany {
		filter.OutletIDs = sc.ManagedOutlets
		filter.DepartmentIDs = sc.ManagedDepartments
	}

	requests, err := s.swapRepo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]shiftswap.SwapResponse, 0, len(requests))
	for _, r := range requests {
		if r.TargetAccepted == nil || !*r.TargetAccepted {
			continue
		}
		if r.RequesterID == p.EmployeeID || r.TargetID == p.EmployeeID {
			continue
		}
		if approvalsvc.OwnerLevel(r.OwnerRole) >= sc.HierarchyLevel {
			continue
		}
		responses = append(responses, shiftswap.ToResponse(r))
	}
	return responses, nil
}

// Approve implements shiftswap.Service.
func (s *ServiceImpl) Approve(ctx context.Context, p identity.Principal, swapID string) (shiftswap.SwapResponse, error) {
	if _, err := s.requireSwapApprover(ctx, p); err != nil {
		return shiftswap.SwapResponse{}, err
	}
	sc, tier, err := approvalsvc.ActorContext(ctx, s.resolver, s.employeeRepo, p)
	if err != nil {
		return shiftswap.SwapResponse{}, err
	}

	var result shiftswap.ShiftSwapRequest
	err = s.tx.InSerializableTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := s.swapRepo.GetByID(ctx, swapID)
		if err != nil {
			return err
		}
		if request.TargetAccepted == nil {
			return shiftswap.ErrTargetNotResponded
		}
		if !*request.TargetAccepted {
			return shiftswap.ErrTargetDeclined
		}
		if _, err := approvalsvc.CheckTarget(ctx, s.resolver, s.employeeRepo, sc, request.RequesterID); err != nil {
			return err
		}

		tr, err := approval.Approve(request.Status, request.ApprovalLevel, tier)
		if err != nil {
			return err
		}
		if err := s.swapRepo.UpdateTransition(ctx, request.ID, tr, p.UserID, nil); err != nil {
			return err
		}
		request.Status = tr.Status
		request.ApprovalLevel = tr.Level
		result = *request

		if tr.Status == approval.StatusApproved {
			if err := s.exchangeSchedules(ctx, *request); err != nil {
				return err
			}
			return s.notifyBoth(ctx, *request, notification.KindRequestApproved,
				"Shift swap approved", "The shift swap was approved; your schedules have been exchanged.")
		}
		return s.notificationSvc.NotifyEmployee(ctx, request.RequesterID,
			notification.KindRequestSubmitted, "Shift swap advanced",
			fmt.Sprintf("Your shift swap moved to approval level %d.", tr.Level),
			&request.ID)
	})
	if err != nil {
		return shiftswap.SwapResponse{}, err
	}

	return shiftswap.ToResponse(result), nil
}

// exchangeSchedules swaps the owners of the two schedule rows.
func (s *ServiceImpl) exchangeSchedules(ctx context.Context, request shiftswap.ShiftSwapRequest) error {
	requesterSched, err := s.scheduleRepo.GetByID(ctx, request.RequesterSchedule)
	if err != nil {
		return err
	}
	targetSched, err := s.scheduleRepo.GetByID(ctx, request.TargetSchedule)
	if err != nil {
		return err
	}

	requesterSched.EmployeeID, targetSched.EmployeeID = targetSched.EmployeeID, requesterSched.EmployeeID
	if err := s.scheduleRepo.Update(ctx, requesterSched); err != nil {
		return err
	}
	return s.scheduleRepo.Update(ctx, targetSched)
}

func (s *ServiceImpl) notifyBoth(ctx context.Context, request shiftswap.ShiftSwapRequest, kind notification.Kind, title, body string) error {
	if err := s.notificationSvc.NotifyEmployee(ctx, request.RequesterID, kind, title, body, &request.ID); err != nil {
		return err
	}
	return s.notificationSvc.NotifyEmployee(ctx, request.TargetID, kind, title, body, &request.ID)
}

// Reject implements shiftswap.Service.
func (s *ServiceImpl) Reject(ctx context.Context, p identity.Principal, swapID, reason string) (shiftswap.SwapResponse, error) {
	if _, err := s.requireSwapApprover(ctx, p); err != nil {
		return shiftswap.SwapResponse{}, err
	}
	sc, _, err := approvalsvc.ActorContext(ctx, s.resolver, s.employeeRepo, p)
	if err != nil {
		return shiftswap.SwapResponse{}, err
	}

	var result shiftswap.ShiftSwapRequest
	err = s.tx.InSerializableTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := s.swapRepo.GetByID(ctx, swapID)
		if err != nil {
			return err
		}
		if _, err := approvalsvc.CheckTarget(ctx, s.resolver, s.employeeRepo, sc, request.RequesterID); err != nil {
			return err
		}

		tr, err := approval.Reject(request.Status)
		if err != nil {
			return err
		}
		if err := s.swapRepo.UpdateTransition(ctx, request.ID, tr, p.UserID, &reason); err != nil {
			return err
		}
		request.Status = tr.Status
		request.RejectionReason = &reason
		result = *request

		return s.notifyBoth(ctx, *request, notification.KindRequestRejected,
			"Shift swap rejected", fmt.Sprintf("The shift swap was rejected: %s", reason))
	})
	if err != nil {
		return shiftswap.SwapResponse{}, err
	}

	return shiftswap.ToResponse(result), nil
}

// Cancel implements shiftswap.Service. Only the requester may cancel.
func (s *ServiceImpl) Cancel(ctx context.Context, p identity.Principal, swapID string) (shiftswap.SwapResponse, error) {
	var result shiftswap.ShiftSwapRequest
	err := s.tx.InSerializableTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := s.swapRepo.GetByID(ctx, swapID)
		if err != nil {
			return err
		}
		if err := permission.CanActOnSelfCancel(p, request.RequesterID); err != nil {
			return err
		}

		tr, err := approval.Cancel(request.Status)
		if err != nil {
			return err
		}
		if err := s.swapRepo.UpdateTransition(ctx, request.ID, tr, p.UserID, nil); err != nil {
			return err
		}
		request.Status = tr.Status
		result = *request

		return s.notificationSvc.NotifyEmployee(ctx, request.TargetID,
			notification.KindRequestCancelled, "Shift swap cancelled",
			"The proposed shift swap was cancelled by the requester.",
			&request.ID)
	})
	if err != nil {
		return shiftswap.SwapResponse{}, err
	}

	return shiftswap.ToResponse(result), nil
}

func (s *ServiceImpl) requireSwapApprover(ctx context.Context, p identity.Principal) (identity.Scope, error) {
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
	if !caps.CanApproveSwaps {
		return identity.Scope{}, permission.Deny("you are not allowed to approve shift swaps")
	}
	return sc, nil
}

func toResponses(requests []shiftswap.ShiftSwapRequest) []shiftswap.SwapResponse {
	responses := make([]shiftswap.SwapResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, shiftswap.ToResponse(r))
	}
	return responses
}
