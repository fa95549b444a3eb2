package letter

import (
	"context"

	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
)

type Service interface {
	Request(ctx context.Context, p identity.Principal, req RequestLetterRequest) (LetterResponse, error)
	ListOwn(ctx context.Context, p identity.Principal) ([]LetterResponse, error)
	// ListRequested is the admin queue of letters awaiting handling.
	ListRequested(ctx context.Context, p identity.Principal) ([]LetterResponse, error)
	// Handle issues or declines a requested letter.
	Handle(ctx context.Context, p identity.Principal, letterID string, req HandleLetterRequest) (LetterResponse, error)
}
