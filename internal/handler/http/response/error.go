package response

import (
	"errors"
	"net/http"

	"github.com/tandemhr/ess-backend-go/internal/domain/attendance"
	"github.com/tandemhr/ess-backend-go/internal/domain/auth"
	"github.com/tandemhr/ess-backend-go/internal/domain/claim"
	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/extrashift"
	"github.com/tandemhr/ess-backend-go/internal/domain/leave"
	"github.com/tandemhr/ess-backend-go/internal/domain/letter"
	"github.com/tandemhr/ess-backend-go/internal/domain/notification"
	"github.com/tandemhr/ess-backend-go/internal/domain/schedule"
	"github.com/tandemhr/ess-backend-go/internal/domain/shiftswap"
	"github.com/tandemhr/ess-backend-go/internal/domain/user"
	"github.com/tandemhr/ess-backend-go/internal/pkg/validator"
	"github.com/tandemhr/ess-backend-go/internal/service/permission"

	appr "github.com/tandemhr/ess-backend-go/internal/domain/approval"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Permission denials carry the failing rule; surface it verbatim.
	var denied *permission.DeniedError
	if errors.As(err, &denied) {
		Forbidden(w, denied.Reason)
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive),
		errors.Is(err, auth.ErrESSDisabled),
		errors.Is(err, employee.ErrESSDisabled):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrWrongPassword):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())

	// Lifecycle
	case errors.Is(err, appr.ErrAlreadyProcessed):
		Conflict(w, err.Error())
	case errors.Is(err, appr.ErrLevelMismatch),
		errors.Is(err, appr.ErrNotApproved),
		errors.Is(err, appr.ErrNotAutoApproved),
		errors.Is(err, appr.ErrNotOwner):
		BadRequest(w, err.Error(), nil)

	// Not found
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrPositionNotFound),
		errors.Is(err, company.ErrCompanyNotFound),
		errors.Is(err, company.ErrOutletNotFound),
		errors.Is(err, company.ErrDepartmentNotFound),
		errors.Is(err, leave.ErrLeaveTypeNotFound),
		errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, leave.ErrBalanceNotFound),
		errors.Is(err, attendance.ErrRecordNotFound),
		errors.Is(err, schedule.ErrScheduleNotFound),
		errors.Is(err, schedule.ErrShiftTemplateNotFound),
		errors.Is(err, claim.ErrClaimNotFound),
		errors.Is(err, claim.ErrClaimTypeNotFound),
		errors.Is(err, extrashift.ErrRequestNotFound),
		errors.Is(err, shiftswap.ErrSwapNotFound),
		errors.Is(err, letter.ErrLetterNotFound),
		errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, err.Error())

	// Conflicts
	case errors.Is(err, leave.ErrOverlappingLeave),
		errors.Is(err, attendance.ErrDayComplete),
		errors.Is(err, schedule.ErrDuplicateSchedule),
		errors.Is(err, extrashift.ErrAlreadyScheduled),
		errors.Is(err, extrashift.ErrOverlappingRequest),
		errors.Is(err, letter.ErrAlreadyHandled):
		Conflict(w, err.Error())

	// Business-rule rejections
	case errors.Is(err, leave.ErrInsufficientBalance),
		errors.Is(err, leave.ErrGenderRestricted),
		errors.Is(err, leave.ErrInsufficientService),
		errors.Is(err, leave.ErrOccurrenceCapHit),
		errors.Is(err, leave.ErrAttachmentRequired),
		errors.Is(err, leave.ErrPastDate),
		errors.Is(err, leave.ErrBackdateTooOld),
		errors.Is(err, leave.ErrBeyondLastWorkingDay),
		errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrZeroWorkingDays),
		errors.Is(err, attendance.ErrClockInNotEnabled),
		errors.Is(err, attendance.ErrNotOTCandidate),
		errors.Is(err, schedule.ErrScheduleLocked),
		errors.Is(err, schedule.ErrShiftTemplateInactive),
		errors.Is(err, schedule.ErrInvalidShiftTimes),
		errors.Is(err, claim.ErrClaimTypeInactive),
		errors.Is(err, claim.ErrAmountExceedsMaximum),
		errors.Is(err, claim.ErrReceiptRequired),
		errors.Is(err, claim.ErrClaimDateInFuture),
		errors.Is(err, extrashift.ErrDateInPast),
		errors.Is(err, shiftswap.ErrSwapSelf),
		errors.Is(err, shiftswap.ErrDifferentGroup),
		errors.Is(err, shiftswap.ErrTargetNotResponded),
		errors.Is(err, shiftswap.ErrTargetDeclined),
		errors.Is(err, shiftswap.ErrNotSwapTarget),
		errors.Is(err, shiftswap.ErrScheduleInPast),
		errors.Is(err, letter.ErrInvalidType),
		errors.Is(err, letter.ErrDocumentRequired):
		BadRequest(w, err.Error(), nil)

	// Forbidden
	case errors.Is(err, schedule.ErrNotScheduleManager),
		errors.Is(err, schedule.ErrOutsideManagedGroup):
		Forbidden(w, err.Error())

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
