package user

import "context"

// UserRepository - interface for the users table
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
