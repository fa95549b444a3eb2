package extrashift

import (
	"context"

	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
)

type Service interface {
	Submit(ctx context.Context, p identity.Principal, req SubmitRequest) (Response, error)
	ListOwn(ctx context.Context, p identity.Principal, limit, offset int) ([]Response, error)
	PendingApprovals(ctx context.Context, p identity.Principal) ([]Response, error)

	// Approve advances the ladder; final approval creates the schedule
	// row for the requested date in the same transaction.
	Approve(ctx context.Context, p identity.Principal, requestID string) (Response, error)
	Reject(ctx context.Context, p identity.Principal, requestID, reason string) (Response, error)
	Cancel(ctx context.Context, p identity.Principal, requestID string) (Response, error)
}
