package shiftswap

import "errors"

var (
	ErrSwapNotFound       = errors.New("Shift swap request not found")
	ErrSwapSelf           = errors.New("You cannot swap shifts with yourself")
	ErrDifferentGroup     = errors.New("Shift swaps are only allowed within the same outlet or department")
	ErrTargetNotResponded = errors.New("The colleague has not accepted the swap yet")
	ErrTargetDeclined     = errors.New("The colleague declined the swap")
	ErrNotSwapTarget      = errors.New("You are not the colleague named in this swap")
	ErrScheduleInPast     = errors.New("Cannot swap schedules that have already passed")
)
