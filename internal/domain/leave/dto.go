package leave

import (
	"github.com/tandemhr/ess-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	EmployeeID  string  `json:"-"`
	LeaveTypeID string  `json:"leave_type_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Reason      string  `json:"reason"`
	HalfDay     bool    `json:"half_day"`
	MCUrl       *string `json:"mc_url,omitempty"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if r.MCUrl != nil && !validator.IsValidURL(*r.MCUrl) {
		errs = append(errs, validator.ValidationError{
			Field:   "mc_url",
			Message: "mc_url must be a URL",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	RequestID string `json:"request_id"`
	Reason    string `json:"reason,omitempty"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	LeaveTypeID     string  `json:"leave_type_id"`
	LeaveTypeCode   *string `json:"leave_type_code,omitempty"`
	LeaveTypeName   *string `json:"leave_type_name,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       float64 `json:"total_days"`
	HalfDay         bool    `json:"half_day"`
	Reason          string  `json:"reason"`
	MCUrl           *string `json:"mc_url,omitempty"`
	Status          string  `json:"status"`
	ApprovalLevel   int     `json:"approval_level"`
	AutoApproved    bool    `json:"auto_approved"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func ToResponse(lr LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              lr.ID,
		EmployeeID:      lr.EmployeeID,
		EmployeeName:    lr.EmployeeName,
		LeaveTypeID:     lr.LeaveTypeID,
		LeaveTypeCode:   lr.LeaveTypeCode,
		LeaveTypeName:   lr.LeaveTypeName,
		StartDate:       lr.StartDate.Format("2006-01-02"),
		EndDate:         lr.EndDate.Format("2006-01-02"),
		TotalDays:       lr.TotalDays,
		HalfDay:         lr.HalfDay,
		Reason:          lr.Reason,
		MCUrl:           lr.MCUrl,
		Status:          string(lr.Status),
		ApprovalLevel:   int(lr.ApprovalLevel),
		AutoApproved:    lr.AutoApproved,
		RejectionReason: lr.RejectionReason,
	}
}
