package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("Leave type not found")
	ErrLeaveRequestNotFound = errors.New("Leave request not found")
	ErrBalanceNotFound      = errors.New("Leave balance not found")

	ErrInsufficientBalance  = errors.New("Insufficient leave balance")
	ErrOverlappingLeave     = errors.New("You already have a leave request for these dates")
	ErrGenderRestricted     = errors.New("Leave type is not applicable to your gender")
	ErrInsufficientService  = errors.New("Minimum service period not met for this leave type")
	ErrOccurrenceCapHit     = errors.New("Maximum occurrences reached for this leave type this year")
	ErrAttachmentRequired   = errors.New("An attachment is required for this leave type")
	ErrPastDate             = errors.New("Leave cannot start in the past")
	ErrBackdateTooOld       = errors.New("Backdated leave is limited to 7 days")
	ErrBeyondLastWorkingDay = errors.New("Leave cannot extend beyond your last working day")
	ErrInvalidDateRange     = errors.New("End date must not be before start date")
	ErrZeroWorkingDays      = errors.New("The requested range contains no working days")
)
