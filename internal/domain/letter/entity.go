package letter

import "time"

type LetterType string

const (
	TypeEmployment LetterType = "employment_verification"
	TypeSalary     LetterType = "salary_certificate"
	TypeReference  LetterType = "reference"
)

type LetterStatus string

const (
	StatusRequested LetterStatus = "requested"
	StatusIssued    LetterStatus = "issued"
	StatusDeclined  LetterStatus = "declined"
)

// LetterRequest carries the employee's ask; the issued document itself is
// produced and stored outside this service, only its URL lands here.
type LetterRequest struct {
	ID            string
	CompanyID     string
	EmployeeID    string
	Type          LetterType
	Purpose       string
	Status        LetterStatus
	DocumentURL   *string
	DeclineReason *string
	HandledBy     *string
	HandledAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	EmployeeName *string
}
