package approval

import (
	"context"

	approval "github.com/tandemhr/ess-backend-go/internal/domain/approval"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/service/permission"
	"github.com/tandemhr/ess-backend-go/internal/service/scope"
)

// ActorContext resolves what a deciding principal brings to a transition:
// their scope and their tier on the approval ladder. Office-company
// schedule managers carry admin authority even though their account role is
// employee.
func ActorContext(ctx context.Context, resolver *scope.Resolver, employeeRepo employee.EmployeeRepository, p identity.Principal) (identity.Scope, approval.Tier, error) {
	sc, err := resolver.Resolve(ctx, p)
	if err != nil {
		return identity.Scope{}, approval.TierNone, err
	}

	if p.IsAdmin() {
		return sc, approval.TierAdmin, nil
	}

	emp, err := employeeRepo.GetByID(ctx, p.EmployeeID)
	if err != nil {
		return identity.Scope{}, approval.TierNone, err
	}

	if sc.Kind == identity.GroupDepartments && emp.IsScheduleManager {
		return sc, approval.TierAdmin, nil
	}
	return sc, approval.TierOf(p.Role, emp.EmployeeRole), nil
}

// CheckTarget loads the request owner and re-asserts the kernel against the
// actor's scope. Every transition path calls this inside its transaction.
func CheckTarget(ctx context.Context, resolver *scope.Resolver, employeeRepo employee.EmployeeRepository, sc identity.Scope, ownerEmployeeID string) (employee.Employee, error) {
	target, err := employeeRepo.GetByID(ctx, ownerEmployeeID)
	if err != nil {
		return employee.Employee{}, err
	}
	targetLevel, err := resolver.TargetLevel(ctx, target)
	if err != nil {
		return employee.Employee{}, err
	}
	if err := permission.CanActOn(sc, target, targetLevel); err != nil {
		return employee.Employee{}, err
	}
	return target, nil
}

// OwnerLevel maps a joined owner role onto the hierarchy table for feed
// filtering.
func OwnerLevel(role *string) int {
	if role == nil {
		return permission.LevelDefault
	}
	return permission.LevelOf(nil, employee.EmployeeRole(*role), nil)
}
