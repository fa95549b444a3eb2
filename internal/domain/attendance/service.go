package attendance

import (
	"context"

	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
)

type AttendanceService interface {
	// Punch records the next punch slot of the principal's workday and
	// returns the refreshed derived measures.
	Punch(ctx context.Context, p identity.Principal, req PunchRequest) (PunchResponse, error)
	Today(ctx context.Context, p identity.Principal) (RecordResponse, error)
	History(ctx context.Context, p identity.Principal, from, to string) ([]RecordResponse, error)

	// PendingOT lists flagged, undecided records within the principal's
	// scope and strictly below their hierarchy level.
	PendingOT(ctx context.Context, p identity.Principal) ([]RecordResponse, error)
	// DecideOTBatch decides each record independently inside one outer
	// transaction; per-record failures are reported as skips, not batch
	// aborts.
	DecideOTBatch(ctx context.Context, p identity.Principal, req BatchOTDecisionRequest) (BatchOTDecisionResponse, error)
}
