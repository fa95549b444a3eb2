package leave

import (
	"context"

	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
)

type LeaveService interface {
	GetLeaveTypes(ctx context.Context, p identity.Principal) ([]LeaveType, error)
	// GetSummary returns one derived balance view per leave type for the
	// year, including proration quantities.
	GetSummary(ctx context.Context, p identity.Principal, year int) ([]Summary, error)

	Apply(ctx context.Context, p identity.Principal, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	GetRequest(ctx context.Context, p identity.Principal, requestID string) (LeaveRequestResponse, error)
	ListOwn(ctx context.Context, p identity.Principal, filter LeaveRequestFilter) ([]LeaveRequestResponse, int64, error)
	// PendingApprovals lists requests the principal may decide, filtered
	// by scope and strict hierarchy.
	PendingApprovals(ctx context.Context, p identity.Principal) ([]LeaveRequestResponse, error)

	Approve(ctx context.Context, p identity.Principal, requestID string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, p identity.Principal, requestID, reason string) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, p identity.Principal, requestID string) (LeaveRequestResponse, error)
	// Revert undoes the owner's own auto-approved request and restores
	// the balance.
	Revert(ctx context.Context, p identity.Principal, requestID string) (LeaveRequestResponse, error)
}
