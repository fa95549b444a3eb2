package claim

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
	"github.com/tandemhr/ess-backend-go/internal/domain/claim"
	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/domain/notification"
	"github.com/tandemhr/ess-backend-go/internal/pkg/database"
	"github.com/tandemhr/ess-backend-go/internal/pkg/validator"
	"github.com/tandemhr/ess-backend-go/internal/repository/postgresql"
	approvalsvc "github.com/tandemhr/ess-backend-go/internal/service/approval"
	"github.com/tandemhr/ess-backend-go/internal/service/permission"
	"github.com/tandemhr/ess-backend-go/internal/service/scope"
)

type ClaimServiceImpl struct {
	tx              postgresql.TxRunner
	claimTypeRepo   claim.ClaimTypeRepository
	claimRepo       claim.ClaimRequestRepository
	employeeRepo    employee.EmployeeRepository
	resolver        *scope.Resolver
	notificationSvc notification.Service

	now func() time.Time
}

func NewClaimService(
	db *database.DB,
	claimTypeRepo claim.ClaimTypeRepository,
	claimRepo claim.ClaimRequestRepository,
	employeeRepo employee.EmployeeRepository,
	resolver *scope.Resolver,
	notificationSvc notification.Service,
) claim.ClaimService {
	return &ClaimServiceImpl{
		tx:              postgresql.NewTxRunner(db),
		claimTypeRepo:   claimTypeRepo,
		claimRepo:       claimRepo,
		employeeRepo:    employeeRepo,
		resolver:        resolver,
		notificationSvc: notificationSvc,
		now:             time.Now,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetClaimTypes implements claim.ClaimService.
func (c *ClaimServiceImpl) GetClaimTypes(ctx context.Context, p identity.Principal) ([]claim.ClaimType, error) {
	sc, err := c.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	return c.claimTypeRepo.GetByCompanyID(ctx, sc.Company.ID)
}

// Submit implements claim.ClaimService.
func (c *ClaimServiceImpl) Submit(ctx context.Context, p identity.Principal, req claim.SubmitClaimRequest) (claim.ClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return claim.ClaimResponse{}, err
	}

	emp, sc, err := c.resolver.ResolveEmployee(ctx, p)
	if err != nil {
		return claim.ClaimResponse{}, err
	}

	ct, err := c.claimTypeRepo.GetByID(ctx, req.ClaimTypeID)
	if err != nil {
		return claim.ClaimResponse{}, err
	}
	if ct.CompanyID != sc.Company.ID {
		return claim.ClaimResponse{}, claim.ErrClaimTypeNotFound
	}
	if !ct.IsActive {
		return claim.ClaimResponse{}, claim.ErrClaimTypeInactive
	}

	amount, _ := decimal.NewFromString(req.Amount)
	if ct.MaxAmount != nil && amount.GreaterThan(*ct.MaxAmount) {
		return claim.ClaimResponse{}, claim.ErrAmountExceedsMaximum
	}

	claimDate, _ := validator.IsValidDate(req.ClaimDate)
	if claimDate.After(dateOnly(c.now())) {
		return claim.ClaimResponse{}, claim.ErrClaimDateInFuture
	}

	request := claim.ClaimRequest{
		CompanyID:   sc.Company.ID,
		EmployeeID:  emp.ID,
		ClaimTypeID: ct.ID,
		ClaimDate:   claimDate,
		Amount:      amount,
		Description: req.Description,
		ReceiptURL:  req.ReceiptURL,
		Status:      approval.StatusPending,
		// Claims walk the supervisor ladder in both company models; the
		// office shortcut to admin applies to leave only.
		ApprovalLevel: approval.InitialLevel(company.GroupingOutlet, emp.EmployeeRole),
	}

	err = c.tx.InTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		if err := c.claimRepo.Create(ctx, &request); err != nil {
			return fmt.Errorf("create claim request: %w", err)
		}
		return c.notifyApprovers(ctx, sc, emp,
			fmt.Sprintf("%s submitted a claim of %s.", emp.FullName, amount.StringFixed(2)),
			request.ID)
	})
	if err != nil {
		return claim.ClaimResponse{}, err
	}

	return claim.ToResponse(request), nil
}

// ListOwn implements claim.ClaimService.
func (c *ClaimServiceImpl) ListOwn(ctx context.Context, p identity.Principal, limit, offset int) ([]claim.ClaimResponse, error) {
	sc, err := c.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	claims, err := c.claimRepo.GetByFilter(ctx, claim.ClaimFilter{
		CompanyID:  sc.Company.ID,
		EmployeeID: &p.EmployeeID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	return toResponses(claims), nil
}

// PendingApprovals implements claim.ClaimService.
func (c *ClaimServiceImpl) PendingApprovals(ctx context.Context, p identity.Principal) ([]claim.ClaimResponse, error) {
	sc, err := c.requireClaimApprover(ctx, p)
	if err != nil {
		return nil, err
	}

	filter := claim.ClaimFilter{CompanyID: sc.Company.ID, Status: statusPtr(approval.StatusPending)}
	if !sc.WholeCompany {
		filter.OutletIDs = sc.ManagedOutlets
		filter.DepartmentIDs = sc.ManagedDepartments
	}

	claims, err := c.claimRepo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]claim.ClaimResponse, 0, len(claims))
	for _, cl := range claims {
		if cl.EmployeeID == p.EmployeeID {
			continue
		}
		if approvalsvc.OwnerLevel(cl.OwnerRole) >= sc.HierarchyLevel {
			continue
		}
		responses = append(responses, claim.ToResponse(cl))
	}
	return responses, nil
}

// Approve implements claim.ClaimService.
func (c *ClaimServiceImpl) Approve(ctx context.Context, p identity.Principal, claimID string) (claim.ClaimResponse, error) {
	if _, err := c.requireClaimApprover(ctx, p); err != nil {
		return claim.ClaimResponse{}, err
	}
	sc, tier, err := approvalsvc.ActorContext(ctx, c.resolver, c.employeeRepo, p)
	if err != nil {
		return claim.ClaimResponse{}, err
	}

	var result claim.ClaimRequest
	err = c.tx.InSerializableTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := c.claimRepo.GetByID(ctx, claimID)
		if err != nil {
			return err
		}
		if _, err := approvalsvc.CheckTarget(ctx, c.resolver, c.employeeRepo, sc, request.EmployeeID); err != nil {
			return err
		}

		tr, err := approval.Approve(request.Status, request.ApprovalLevel, tier)
		if err != nil {
			return err
		}
		if err := c.claimRepo.UpdateTransition(ctx, request.ID, tr, p.UserID, nil); err != nil {
			return err
		}
		request.Status = tr.Status
		request.ApprovalLevel = tr.Level
		result = *request

		if tr.Status == approval.StatusApproved {
			return c.notificationSvc.NotifyEmployee(ctx, request.EmployeeID,
				notification.KindRequestApproved, "Claim approved",
				fmt.Sprintf("Your claim of %s was approved.", request.Amount.StringFixed(2)),
				&request.ID)
		}
		return c.notificationSvc.NotifyEmployee(ctx, request.EmployeeID,
			notification.KindRequestSubmitted, "Claim advanced",
			fmt.Sprintf("Your claim moved to approval level %d.", tr.Level),
			&request.ID)
	})
	if err != nil {
		return claim.ClaimResponse{}, err
	}

	return claim.ToResponse(result), nil
}

// Reject implements claim.ClaimService.
func (c *ClaimServiceImpl) Reject(ctx context.Context, p identity.Principal, claimID, reason string) (claim.ClaimResponse, error) {
	if _, err := c.requireClaimApprover(ctx, p); err != nil {
		return claim.ClaimResponse{}, err
	}
	sc, _, err := approvalsvc.ActorContext(ctx, c.resolver, c.employeeRepo, p)
	if err != nil {
		return claim.ClaimResponse{}, err
	}

	var result claim.ClaimRequest
	err = c.tx.InSerializableTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := c.claimRepo.GetByID(ctx, claimID)
		if err != nil {
			return err
		}
		if _, err := approvalsvc.CheckTarget(ctx, c.resolver, c.employeeRepo, sc, request.EmployeeID); err != nil {
			return err
		}

		tr, err := approval.Reject(request.Status)
		if err != nil {
			return err
		}
		if err := c.claimRepo.UpdateTransition(ctx, request.ID, tr, p.UserID, &reason); err != nil {
			return err
		}
		request.Status = tr.Status
		request.RejectionReason = &reason
		result = *request

		return c.notificationSvc.NotifyEmployee(ctx, request.EmployeeID,
			notification.KindRequestRejected, "Claim rejected",
			fmt.Sprintf("Your claim was rejected: %s", reason),
			&request.ID)
	})
	if err != nil {
		return claim.ClaimResponse{}, err
	}

	return claim.ToResponse(result), nil
}

// Cancel implements claim.ClaimService.
func (c *ClaimServiceImpl) Cancel(ctx context.Context, p identity.Principal, claimID string) (claim.ClaimResponse, error) {
	var result claim.ClaimRequest
	err := c.tx.InSerializableTx(ctx, func(ctx context.Context, _ pgx.Tx) error {
		request, err := c.claimRepo.GetByID(ctx, claimID)
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
		if err := c.claimRepo.UpdateTransition(ctx, request.ID, tr, p.UserID, nil); err != nil {
			return err
		}
		request.Status = tr.Status
		result = *request

		return c.notificationSvc.NotifyEmployee(ctx, request.EmployeeID,
			notification.KindRequestCancelled, "Claim cancelled",
			"Your claim request was cancelled.",
			&request.ID)
	})
	if err != nil {
		return claim.ClaimResponse{}, err
	}

	return claim.ToResponse(result), nil
}

// notifyApprovers addresses the claim approvers of the owner's group:
// boss/director for outlet companies, supervisor/manager for office ones.
func (c *ClaimServiceImpl) notifyApprovers(ctx context.Context, sc identity.Scope, owner employee.Employee, body, claimID string) error {
	candidates, err := c.employeeRepo.GetByCompanyID(ctx, sc.Company.ID)
	if err != nil {
		return err
	}

	for _, cand := range candidates {
		if cand.ID == owner.ID || !isClaimApprover(sc.Company, cand) {
			continue
		}
		// Office approvers only see their own department's claims.
		if !sc.Company.IsOutletBased() && cand.GroupID() != owner.GroupID() {
			continue
		}
		if err := c.notificationSvc.NotifyEmployee(ctx, cand.ID,
			notification.KindRequestSubmitted, "Claim awaiting your approval", body, &claimID); err != nil {
			return err
		}
	}
	return nil
}

func isClaimApprover(comp company.Company, e employee.Employee) bool {
	if comp.IsOutletBased() {
		return e.EmployeeRole == employee.RoleBoss || e.EmployeeRole == employee.RoleDirector
	}
	return e.EmployeeRole == employee.RoleSupervisor || e.EmployeeRole == employee.RoleManager
}

func (c *ClaimServiceImpl) requireClaimApprover(ctx context.Context, p identity.Principal) (identity.Scope, error) {
	sc, err := c.resolver.Resolve(ctx, p)
	if err != nil {
		return identity.Scope{}, err
	}

	var emp employee.Employee
	if !p.IsAdmin() {
		emp, err = c.employeeRepo.GetByID(ctx, p.EmployeeID)
		if err != nil {
			return identity.Scope{}, err
		}
	}

	caps := permission.BuildCapabilities(p, sc, emp)
	if !caps.CanApproveClaims {
		return identity.Scope{}, permission.Deny("you are not allowed to approve claims")
	}
	return sc, nil
}

func toResponses(claims []claim.ClaimRequest) []claim.ClaimResponse {
	responses := make([]claim.ClaimResponse, 0, len(claims))
	for _, cl := range claims {
		responses = append(responses, claim.ToResponse(cl))
	}
	return responses
}

func statusPtr(s approval.Status) *approval.Status {
	return &s
}
