package identity

import (
	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/user"
)

// Principal is the authenticated caller, reconstructed from session claims.
// It carries account identity only; the employee row and its role are
// always re-read by the scope resolver, never trusted from a token.
type Principal struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       user.Role

	// CompanyOverride is honored only when Role is super_admin.
	CompanyOverride *string
}

// IsAdmin reports whether the principal authenticates as admin or
// super-admin.
func (p Principal) IsAdmin() bool {
	return p.Role == user.RoleAdmin || p.Role == user.RoleSuperAdmin
}

// EffectiveCompanyID applies the super-admin company override.
func (p Principal) EffectiveCompanyID() string {
	if p.Role == user.RoleSuperAdmin && p.CompanyOverride != nil {
		return *p.CompanyOverride
	}
	return p.CompanyID
}

// GroupKind names the dimension a Scope's managed set spans.
type GroupKind string

const (
	GroupOutlets     GroupKind = "outlets"
	GroupDepartments GroupKind = "departments"
)

// Scope is what a principal may act on: the company, the managed outlet or
// department set, and the principal's hierarchy level. Resolution is
// read-only and idempotent; callers never mutate state based on a Scope
// older than the current request.
type Scope struct {
	Company company.Company

	// Kind matches Company.GroupingType; exactly one of the managed sets
	// is populated.
	Kind               GroupKind
	ManagedOutlets     []string
	ManagedDepartments []string

	// WholeCompany is set for boss/director and admin principals, whose
	// reach bypasses the managed sets.
	WholeCompany bool

	HierarchyLevel int
}

// Managed returns the managed id set for the scope's kind.
func (s Scope) Managed() []string {
	if s.Kind == GroupOutlets {
		return s.ManagedOutlets
	}
	return s.ManagedDepartments
}

// Covers reports whether the scope reaches the given outlet/department id.
func (s Scope) Covers(groupID string) bool {
	if s.WholeCompany {
		return true
	}
	for _, id := range s.Managed() {
		if id == groupID {
			return true
		}
	}
	return false
}
