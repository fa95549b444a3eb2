package attendance

import (
	"github.com/tandemhr/ess-backend-go/internal/pkg/validator"
)

type PunchRequest struct {
	EmployeeID string   `json:"-"`
	PhotoURL   string   `json:"photo_url"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Address    *string  `json:"address,omitempty"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PhotoURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo_url",
			Message: "photo_url is required",
		})
	} else if !validator.IsValidURL(r.PhotoURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo_url",
			Message: "photo_url must be a URL",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PunchResponse struct {
	RecordID         string `json:"record_id"`
	WorkDate         string `json:"work_date"`
	Slot             string `json:"slot"`
	NextAction       string `json:"next_action"`
	InsideSchedule   bool   `json:"inside_schedule"`
	TotalWorkMinutes int    `json:"total_work_minutes"`
	BreakMinutes     int    `json:"break_minutes"`
	OTMinutes        int    `json:"ot_minutes"`
	OTFlagged        bool   `json:"ot_flagged"`
}

// BatchOTDecisionRequest decides a batch of flagged records in one call.
type BatchOTDecisionRequest struct {
	RecordIDs []string `json:"record_ids"`
	Approve   bool     `json:"approve"`
	Reason    string   `json:"reason,omitempty"`
}

func (r *BatchOTDecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "record_ids",
			Message: "record_ids must not be empty",
		})
	}
	if !r.Approve && validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required when rejecting",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SkippedRecord names a batch item that was neither approved nor rejected.
type SkippedRecord struct {
	RecordID string `json:"record_id"`
	Reason   string `json:"reason"`
}

type BatchOTDecisionResponse struct {
	Approved int             `json:"approved"`
	Rejected int             `json:"rejected"`
	Skipped  []SkippedRecord `json:"skipped"`
}

// PunchView is one recorded punch in a response.
type PunchView struct {
	At        string   `json:"at"`
	PhotoURL  *string  `json:"photo_url,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   *string  `json:"address,omitempty"`
}

func toPunchView(p *Punch) *PunchView {
	if p == nil {
		return nil
	}
	return &PunchView{
		At:        p.At.Format("2006-01-02T15:04:05Z07:00"),
		PhotoURL:  p.PhotoURL,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Address:   p.Address,
	}
}

type RecordResponse struct {
	ID                string     `json:"id"`
	EmployeeID        string     `json:"employee_id"`
	EmployeeName      *string    `json:"employee_name,omitempty"`
	WorkDate          string     `json:"work_date"`
	ClockIn1          *PunchView `json:"clock_in_1,omitempty"`
	ClockOut1         *PunchView `json:"clock_out_1,omitempty"`
	ClockIn2          *PunchView `json:"clock_in_2,omitempty"`
	ClockOut2         *PunchView `json:"clock_out_2,omitempty"`
	NextAction        string     `json:"next_action"`
	InsideSchedule    bool       `json:"inside_schedule"`
	TotalWorkMinutes  int        `json:"total_work_minutes"`
	BreakMinutes      int        `json:"break_minutes"`
	OTMinutes         int        `json:"ot_minutes"`
	OTFlagged         bool       `json:"ot_flagged"`
	OTApproved        *bool      `json:"ot_approved,omitempty"`
	OTRejectionReason *string    `json:"ot_rejection_reason,omitempty"`
}

func ToRecordResponse(r ClockInRecord) RecordResponse {
	return RecordResponse{
		ID:                r.ID,
		EmployeeID:        r.EmployeeID,
		EmployeeName:      r.EmployeeName,
		WorkDate:          r.WorkDate.Format("2006-01-02"),
		ClockIn1:          toPunchView(r.ClockIn1),
		ClockOut1:         toPunchView(r.ClockOut1),
		ClockIn2:          toPunchView(r.ClockIn2),
		ClockOut2:         toPunchView(r.ClockOut2),
		NextAction:        string(r.NextAction()),
		InsideSchedule:    r.InsideSchedule,
		TotalWorkMinutes:  r.TotalWorkMinutes,
		BreakMinutes:      r.BreakMinutes,
		OTMinutes:         r.OTMinutes,
		OTFlagged:         r.OTFlagged,
		OTApproved:        r.OTApproved,
		OTRejectionReason: r.OTRejectionReason,
	}
}
