package extrashift

import "errors"

var (
	ErrRequestNotFound    = errors.New("Extra shift request not found")
	ErrAlreadyScheduled   = errors.New("You already have a schedule on this date")
	ErrOverlappingRequest = errors.New("You already have an extra shift request for this date")
	ErrDateInPast         = errors.New("Extra shift date cannot be in the past")
)
