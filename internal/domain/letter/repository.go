package letter

import "context"

type Repository interface {
	Create(ctx context.Context, l *LetterRequest) error
	GetByID(ctx context.Context, id string) (*LetterRequest, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]LetterRequest, error)
	GetRequestedByCompany(ctx context.Context, companyID string) ([]LetterRequest, error)
	UpdateHandled(ctx context.Context, l *LetterRequest) error
}
