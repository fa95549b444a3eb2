package auth

import (
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/pkg/validator"
)

// LoginRequest accepts either an email address or an employee code as the
// identifier.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Identifier) {
		errs = append(errs, validator.ValidationError{Field: "identifier", Message: "identifier is required"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{Field: "current_password", Message: "current_password is required"})
	}
	if len(r.NewPassword) < 8 {
		errs = append(errs, validator.ValidationError{Field: "new_password", Message: "new_password must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SessionResponse struct {
	UserID       string                `json:"user_id"`
	EmployeeID   *string               `json:"employee_id,omitempty"`
	Email        string                `json:"email"`
	Role         string                `json:"role"`
	CompanyID    *string               `json:"company_id,omitempty"`
	Capabilities identity.Capabilities `json:"capabilities"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresAt   int64           `json:"expires_at"`
	Session     SessionResponse `json:"session"`
}
