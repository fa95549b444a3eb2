package scope

import (
	"context"
	"fmt"

	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/service/permission"
)

// Resolver turns an authenticated principal into an actionable Scope:
// the company row, the managed outlet/department set, and the principal's
// hierarchy level. Resolution is read-only.
type Resolver struct {
	companyRepo        company.CompanyRepository
	outletRepo         company.OutletRepository
	departmentRepo     company.DepartmentRepository
	employeeRepo       employee.EmployeeRepository
	employeeOutletRepo employee.EmployeeOutletRepository
	positionRepo       employee.PositionRepository
}

func NewResolver(
	companyRepo company.CompanyRepository,
	outletRepo company.OutletRepository,
	departmentRepo company.DepartmentRepository,
	employeeRepo employee.EmployeeRepository,
	employeeOutletRepo employee.EmployeeOutletRepository,
	positionRepo employee.PositionRepository,
) *Resolver {
	return &Resolver{
		companyRepo:        companyRepo,
		outletRepo:         outletRepo,
		departmentRepo:     departmentRepo,
		employeeRepo:       employeeRepo,
		employeeOutletRepo: employeeOutletRepo,
		positionRepo:       positionRepo,
	}
}

// Resolve builds the Scope for a principal. Admin principals cover the
// whole company; employee principals get the managed set their employee
// role implies.
func (r *Resolver) Resolve(ctx context.Context, p identity.Principal) (identity.Scope, error) {
	companyID := p.EffectiveCompanyID()
	if companyID == "" {
		return identity.Scope{}, company.ErrCompanyNotFound
	}

	comp, err := r.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return identity.Scope{}, err
	}

	scope := identity.Scope{Company: comp}
	if comp.IsOutletBased() {
		scope.Kind = identity.GroupOutlets
	} else {
		scope.Kind = identity.GroupDepartments
	}

	if p.IsAdmin() {
		scope.WholeCompany = true
		scope.HierarchyLevel = permission.LevelTop
		if err := r.expandWholeCompany(ctx, &scope); err != nil {
			return identity.Scope{}, err
		}
		return scope, nil
	}

	emp, err := r.employeeRepo.GetByID(ctx, p.EmployeeID)
	if err != nil {
		return identity.Scope{}, err
	}

	pos, err := r.loadPosition(ctx, emp)
	if err != nil {
		return identity.Scope{}, err
	}
	scope.HierarchyLevel = permission.LevelOfEmployee(emp, pos)

	switch emp.EmployeeRole {
	case employee.RoleBoss, employee.RoleDirector:
		scope.WholeCompany = true
		if err := r.expandWholeCompany(ctx, &scope); err != nil {
			return identity.Scope{}, err
		}

	case employee.RoleManager:
		if scope.Kind == identity.GroupOutlets {
			outletIDs, err := r.employeeOutletRepo.GetOutletIDsByEmployee(ctx, emp.ID)
			if err != nil {
				return identity.Scope{}, fmt.Errorf("resolve managed outlets: %w", err)
			}
			if emp.OutletID != nil && !contains(outletIDs, *emp.OutletID) {
				outletIDs = append(outletIDs, *emp.OutletID)
			}
			scope.ManagedOutlets = outletIDs
		} else if emp.DepartmentID != nil {
			scope.ManagedDepartments = []string{*emp.DepartmentID}
		}

	case employee.RoleSupervisor:
		if scope.Kind == identity.GroupOutlets {
			if emp.OutletID != nil {
				scope.ManagedOutlets = []string{*emp.OutletID}
			} else {
				outletIDs, err := r.employeeOutletRepo.GetOutletIDsByEmployee(ctx, emp.ID)
				if err != nil {
					return identity.Scope{}, fmt.Errorf("resolve managed outlets: %w", err)
				}
				scope.ManagedOutlets = outletIDs
			}
		} else if emp.DepartmentID != nil {
			scope.ManagedDepartments = []string{*emp.DepartmentID}
		}
	}

	// Office-company schedule managers approve across the company even
	// without an approver employee role.
	if scope.Kind == identity.GroupDepartments && emp.IsScheduleManager {
		scope.WholeCompany = true
		if err := r.expandWholeCompany(ctx, &scope); err != nil {
			return identity.Scope{}, err
		}
	}

	return scope, nil
}

// ResolveEmployee loads the principal's employee row alongside the scope,
// for callers that need both.
func (r *Resolver) ResolveEmployee(ctx context.Context, p identity.Principal) (employee.Employee, identity.Scope, error) {
	emp, err := r.employeeRepo.GetByID(ctx, p.EmployeeID)
	if err != nil {
		return employee.Employee{}, identity.Scope{}, err
	}
	scope, err := r.Resolve(ctx, p)
	if err != nil {
		return employee.Employee{}, identity.Scope{}, err
	}
	return emp, scope, nil
}

// TargetLevel resolves the hierarchy level of an arbitrary employee, used
// by the kernel's strict-inequality check.
func (r *Resolver) TargetLevel(ctx context.Context, emp employee.Employee) (int, error) {
	pos, err := r.loadPosition(ctx, emp)
	if err != nil {
		return 0, err
	}
	return permission.LevelOfEmployee(emp, pos), nil
}

func (r *Resolver) loadPosition(ctx context.Context, emp employee.Employee) (*employee.Position, error) {
	if emp.PositionID == nil {
		return nil, nil
	}
	pos, err := r.positionRepo.GetByID(ctx, *emp.PositionID)
	if err != nil {
		if err == employee.ErrPositionNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &pos, nil
}

func (r *Resolver) expandWholeCompany(ctx context.Context, scope *identity.Scope) error {
	if scope.Kind == identity.GroupOutlets {
		outlets, err := r.outletRepo.GetByCompanyID(ctx, scope.Company.ID)
		if err != nil {
			return fmt.Errorf("expand outlets: %w", err)
		}
		scope.ManagedOutlets = make([]string, 0, len(outlets))
		for _, o := range outlets {
			scope.ManagedOutlets = append(scope.ManagedOutlets, o.ID)
		}
		return nil
	}

	departments, err := r.departmentRepo.GetByCompanyID(ctx, scope.Company.ID)
	if err != nil {
		return fmt.Errorf("expand departments: %w", err)
	}
	scope.ManagedDepartments = make([]string, 0, len(departments))
	for _, d := range departments {
		scope.ManagedDepartments = append(scope.ManagedDepartments, d.ID)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
