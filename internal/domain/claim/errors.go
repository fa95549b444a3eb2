package claim

import "errors"

var (
	ErrClaimNotFound        = errors.New("Claim request not found")
	ErrClaimTypeNotFound    = errors.New("Claim type not found")
	ErrClaimTypeInactive    = errors.New("Claim type is no longer active")
	ErrAmountExceedsMaximum = errors.New("Claim amount exceeds the maximum for this type")
	ErrReceiptRequired      = errors.New("A receipt is required for claim requests")
	ErrClaimDateInFuture    = errors.New("Claim date cannot be in the future")
)
