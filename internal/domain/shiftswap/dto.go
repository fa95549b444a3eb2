package shiftswap

import (
	"time"

	"github.com/tandemhr/ess-backend-go/internal/pkg/validator"
)

type SubmitSwapRequest struct {
	TargetEmployeeID    string  `json:"target_employee_id"`
	RequesterScheduleID string  `json:"requester_schedule_id"`
	TargetScheduleID    string  `json:"target_schedule_id"`
	Reason              *string `json:"reason"`
}

func (r *SubmitSwapRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.TargetEmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "target_employee_id", Message: "target_employee_id must be a valid UUID"})
	}
	if !validator.IsValidUUID(r.RequesterScheduleID) {
		errs = append(errs, validator.ValidationError{Field: "requester_schedule_id", Message: "requester_schedule_id must be a valid UUID"})
	}
	if !validator.IsValidUUID(r.TargetScheduleID) {
		errs = append(errs, validator.ValidationError{Field: "target_schedule_id", Message: "target_schedule_id must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RespondRequest struct {
	Accept bool `json:"accept"`
}

type SwapResponse struct {
	ID              string    `json:"id"`
	RequesterID     string    `json:"requester_id"`
	RequesterName   *string   `json:"requester_name,omitempty"`
	TargetID        string    `json:"target_id"`
	TargetName      *string   `json:"target_name,omitempty"`
	RequesterDate   *string   `json:"requester_date,omitempty"`
	TargetDate      *string   `json:"target_date,omitempty"`
	Reason          *string   `json:"reason,omitempty"`
	TargetAccepted  *bool     `json:"target_accepted"`
	Status          string    `json:"status"`
	ApprovalLevel   int       `json:"approval_level"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToResponse(s ShiftSwapRequest) SwapResponse {
	resp := SwapResponse{
		ID:              s.ID,
		RequesterID:     s.RequesterID,
		RequesterName:   s.RequesterName,
		TargetID:        s.TargetID,
		TargetName:      s.TargetName,
		Reason:          s.Reason,
		TargetAccepted:  s.TargetAccepted,
		Status:          string(s.Status),
		ApprovalLevel:   int(s.ApprovalLevel),
		RejectionReason: s.RejectionReason,
		CreatedAt:       s.CreatedAt,
	}
	if s.RequesterDate != nil {
		d := s.RequesterDate.Format("2006-01-02")
		resp.RequesterDate = &d
	}
	if s.TargetDate != nil {
		d := s.TargetDate.Format("2006-01-02")
		resp.TargetDate = &d
	}
	return resp
}
