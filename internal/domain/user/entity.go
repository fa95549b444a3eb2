package user

import "time"

// Role is the account role used for authentication and routing, distinct
// from employee.EmployeeRole which drives approvals.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

type User struct {
	ID           string
	CompanyID    *string // nil for super-admin by contract
	EmployeeID   *string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
