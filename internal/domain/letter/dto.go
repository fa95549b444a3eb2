package letter

import (
	"time"

	"github.com/tandemhr/ess-backend-go/internal/pkg/validator"
)

type RequestLetterRequest struct {
	Type    string `json:"type"`
	Purpose string `json:"purpose"`
}

func (r *RequestLetterRequest) Validate() error {
	var errs validator.ValidationErrors
	valid := []string{string(TypeEmployment), string(TypeSalary), string(TypeReference)}
	if !validator.IsInSlice(r.Type, valid) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of employment_verification, salary_certificate, reference"})
	}
	if validator.IsEmpty(r.Purpose) {
		errs = append(errs, validator.ValidationError{Field: "purpose", Message: "purpose is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HandleLetterRequest struct {
	Issue         bool    `json:"issue"`
	DocumentURL   *string `json:"document_url"`
	DeclineReason *string `json:"decline_reason"`
}

func (r *HandleLetterRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Issue {
		if r.DocumentURL == nil || validator.IsEmpty(*r.DocumentURL) {
			errs = append(errs, validator.ValidationError{Field: "document_url", Message: "document_url is required when issuing"})
		} else if !validator.IsValidURL(*r.DocumentURL) {
			errs = append(errs, validator.ValidationError{Field: "document_url", Message: "document_url must be a valid URL"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LetterResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  *string   `json:"employee_name,omitempty"`
	Type          string    `json:"type"`
	Purpose       string    `json:"purpose"`
	Status        string    `json:"status"`
	DocumentURL   *string   `json:"document_url,omitempty"`
	DeclineReason *string   `json:"decline_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToResponse(l LetterRequest) LetterResponse {
	return LetterResponse{
		ID:            l.ID,
		EmployeeID:    l.EmployeeID,
		EmployeeName:  l.EmployeeName,
		Type:          string(l.Type),
		Purpose:       l.Purpose,
		Status:        string(l.Status),
		DocumentURL:   l.DocumentURL,
		DeclineReason: l.DeclineReason,
		CreatedAt:     l.CreatedAt,
	}
}
