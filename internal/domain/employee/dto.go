package employee

import "github.com/tandemhr/ess-backend-go/internal/pkg/validator"

// UpdateProfileRequest covers the fields employees may amend themselves.
type UpdateProfileRequest struct {
	EmployeeID  string  `json:"-"`
	FullName    *string `json:"full_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
	BankName    *string `json:"bank_name,omitempty"`
	BankAccount *string `json:"bank_account,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}
	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "phone_number is not a valid phone number",
		})
	}
	if r.FullName == nil && r.PhoneNumber == nil && r.Address == nil &&
		r.BankName == nil && r.BankAccount == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one field must be provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProfileResponse struct {
	ID               string  `json:"id"`
	EmployeeCode     string  `json:"employee_code"`
	FullName         string  `json:"full_name"`
	Gender           string  `json:"gender"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	Address          *string `json:"address,omitempty"`
	BankName         *string `json:"bank_name,omitempty"`
	BankAccount      *string `json:"bank_account,omitempty"`
	EmployeeRole     string  `json:"employee_role"`
	EmploymentType   string  `json:"employment_type"`
	EmploymentStatus string  `json:"employment_status"`
	JoinDate         string  `json:"join_date"`
	OutletID         *string `json:"outlet_id,omitempty"`
	DepartmentID     *string `json:"department_id,omitempty"`
}

func ToProfileResponse(e Employee) ProfileResponse {
	return ProfileResponse{
		ID:               e.ID,
		EmployeeCode:     e.EmployeeCode,
		FullName:         e.FullName,
		Gender:           string(e.Gender),
		PhoneNumber:      e.PhoneNumber,
		Address:          e.Address,
		BankName:         e.BankName,
		BankAccount:      e.BankAccount,
		EmployeeRole:     string(e.EmployeeRole),
		EmploymentType:   string(e.EmploymentType),
		EmploymentStatus: string(e.EmploymentStatus),
		JoinDate:         e.JoinDate.Format("2006-01-02"),
		OutletID:         e.OutletID,
		DepartmentID:     e.DepartmentID,
	}
}
