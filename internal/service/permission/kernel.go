package permission

import (
	"fmt"

	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
)

// DeniedError names the failing rule; handlers surface the reason verbatim
// with a 403.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string {
	return e.Reason
}

func Deny(format string, args ...interface{}) *DeniedError {
	return &DeniedError{Reason: fmt.Sprintf(format, args...)}
}

// CanActOn decides whether the scoped principal may act on the target
// employee's requests: the target must fall inside the managed set and the
// principal's hierarchy level must strictly exceed the target's. Equal
// levels deny.
func CanActOn(scope identity.Scope, target employee.Employee, targetLevel int) error {
	if target.CompanyID != scope.Company.ID {
		return Deny("target employee belongs to a different company")
	}

	if !scope.WholeCompany {
		groupID := target.GroupID()
		if groupID == "" || !scope.Covers(groupID) {
			if scope.Kind == identity.GroupOutlets {
				return Deny("target employee is outside your managed outlets")
			}
			return Deny("target employee is outside your managed departments")
		}
	}

	if scope.HierarchyLevel <= targetLevel {
		return Deny("your position level (%d) does not exceed the employee's (%d)", scope.HierarchyLevel, targetLevel)
	}

	return nil
}

// CanActOnSelfCancel is the owner path: cancel and revert act on the
// principal's own request and bypass the hierarchy.
func CanActOnSelfCancel(principal identity.Principal, ownerEmployeeID string) error {
	if principal.EmployeeID != ownerEmployeeID {
		return Deny("only the request owner may do this")
	}
	return nil
}
