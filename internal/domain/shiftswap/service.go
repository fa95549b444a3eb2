package shiftswap

import (
	"context"

	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
)

type Service interface {
	Submit(ctx context.Context, p identity.Principal, req SubmitSwapRequest) (SwapResponse, error)
	// Respond records the colleague's accept or decline; a decline closes
	// the request.
	Respond(ctx context.Context, p identity.Principal, swapID string, req RespondRequest) (SwapResponse, error)
	ListOwn(ctx context.Context, p identity.Principal, limit, offset int) ([]SwapResponse, error)
	PendingApprovals(ctx context.Context, p identity.Principal) ([]SwapResponse, error)

	// Approve advances the ladder; final approval exchanges the two
	// schedule rows' owners in the same transaction.
	Approve(ctx context.Context, p identity.Principal, swapID string) (SwapResponse, error)
	Reject(ctx context.Context, p identity.Principal, swapID, reason string) (SwapResponse, error)
	Cancel(ctx context.Context, p identity.Principal, swapID string) (SwapResponse, error)
}
