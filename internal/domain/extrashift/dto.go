package extrashift

import (
	"time"

	"github.com/tandemhr/ess-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	ShiftDate  string  `json:"shift_date"`
	ShiftStart string  `json:"shift_start"`
	ShiftEnd   string  `json:"shift_end"`
	Reason     *string `json:"reason"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.ShiftDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "shift_date", Message: "shift_date must be in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidTimeOfDay(r.ShiftStart); !ok {
		errs = append(errs, validator.ValidationError{Field: "shift_start", Message: "shift_start must be in HH:MM format"})
	}
	if _, ok := validator.IsValidTimeOfDay(r.ShiftEnd); !ok {
		errs = append(errs, validator.ValidationError{Field: "shift_end", Message: "shift_end must be in HH:MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employee_id"`
	EmployeeName    *string   `json:"employee_name,omitempty"`
	ShiftDate       string    `json:"shift_date"`
	ShiftStart      string    `json:"shift_start"`
	ShiftEnd        string    `json:"shift_end"`
	Reason          *string   `json:"reason,omitempty"`
	Status          string    `json:"status"`
	ApprovalLevel   int       `json:"approval_level"`
	AutoApproved    bool      `json:"auto_approved"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToResponse(r ExtraShiftRequest) Response {
	return Response{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		ShiftDate:       r.ShiftDate.Format("2006-01-02"),
		ShiftStart:      r.ShiftStart,
		ShiftEnd:        r.ShiftEnd,
		Reason:          r.Reason,
		Status:          string(r.Status),
		ApprovalLevel:   int(r.ApprovalLevel),
		AutoApproved:    r.AutoApproved,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
	}
}
