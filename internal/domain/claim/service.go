package claim

import (
	"context"

	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
)

type ClaimService interface {
	GetClaimTypes(ctx context.Context, p identity.Principal) ([]ClaimType, error)

	Submit(ctx context.Context, p identity.Principal, req SubmitClaimRequest) (ClaimResponse, error)
	ListOwn(ctx context.Context, p identity.Principal, limit, offset int) ([]ClaimResponse, error)
	PendingApprovals(ctx context.Context, p identity.Principal) ([]ClaimResponse, error)

	Approve(ctx context.Context, p identity.Principal, claimID string) (ClaimResponse, error)
	Reject(ctx context.Context, p identity.Principal, claimID, reason string) (ClaimResponse, error)
	Cancel(ctx context.Context, p identity.Principal, claimID string) (ClaimResponse, error)
}
