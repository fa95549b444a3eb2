package approval

import "errors"

var (
	ErrAlreadyProcessed = errors.New("Request already processed")
	ErrLevelMismatch    = errors.New("Request is not at your approval level")
	ErrNotApproved      = errors.New("Request is not approved")
	ErrNotAutoApproved  = errors.New("Only auto-approved requests can be reverted")
	ErrNotOwner         = errors.New("Only the request owner may perform this action")
)
