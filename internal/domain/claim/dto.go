package claim

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tandemhr/ess-backend-go/internal/pkg/validator"
)

type SubmitClaimRequest struct {
	ClaimTypeID string  `json:"claim_type_id"`
	ClaimDate   string  `json:"claim_date"`
	Amount      string  `json:"amount"`
	Description *string `json:"description"`
	ReceiptURL  string  `json:"receipt_url"`
}

func (r *SubmitClaimRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.ClaimTypeID) {
		errs = append(errs, validator.ValidationError{Field: "claim_type_id", Message: "claim_type_id must be a valid UUID"})
	}
	if _, ok := validator.IsValidDate(r.ClaimDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "claim_date", Message: "claim_date must be in YYYY-MM-DD format"})
	}
	if amount, err := decimal.NewFromString(r.Amount); err != nil {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be a valid decimal number"})
	} else if amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be greater than zero"})
	}
	if validator.IsEmpty(r.ReceiptURL) {
		errs = append(errs, validator.ValidationError{Field: "receipt_url", Message: "receipt_url is required"})
	} else if !validator.IsValidURL(r.ReceiptURL) {
		errs = append(errs, validator.ValidationError{Field: "receipt_url", Message: "receipt_url must be a valid URL"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClaimResponse struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employee_id"`
	EmployeeName    *string   `json:"employee_name,omitempty"`
	ClaimTypeID     string    `json:"claim_type_id"`
	ClaimTypeName   *string   `json:"claim_type_name,omitempty"`
	ClaimDate       string    `json:"claim_date"`
	Amount          string    `json:"amount"`
	Description     *string   `json:"description,omitempty"`
	ReceiptURL      string    `json:"receipt_url"`
	Status          string    `json:"status"`
	ApprovalLevel   int       `json:"approval_level"`
	AutoApproved    bool      `json:"auto_approved"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToResponse(c ClaimRequest) ClaimResponse {
	return ClaimResponse{
		ID:              c.ID,
		EmployeeID:      c.EmployeeID,
		EmployeeName:    c.EmployeeName,
		ClaimTypeID:     c.ClaimTypeID,
		ClaimTypeName:   c.ClaimTypeName,
		ClaimDate:       c.ClaimDate.Format("2006-01-02"),
		Amount:          c.Amount.StringFixed(2),
		Description:     c.Description,
		ReceiptURL:      c.ReceiptURL,
		Status:          string(c.Status),
		ApprovalLevel:   int(c.ApprovalLevel),
		AutoApproved:    c.AutoApproved,
		RejectionReason: c.RejectionReason,
		CreatedAt:       c.CreatedAt,
	}
}
