package permission

import (
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
)

func isApproverRole(role employee.EmployeeRole) bool {
	switch role {
	case employee.RoleSupervisor, employee.RoleManager, employee.RoleBoss, employee.RoleDirector:
		return true
	}
	return false
}

// BuildCapabilities derives the per-principal flag bundle handed to the UI.
// The bundle only gates presentation; every mutating call re-checks the
// kernel.
func BuildCapabilities(p identity.Principal, scope identity.Scope, emp employee.Employee) identity.Capabilities {
	outletCompany := scope.Company.IsOutletBased()
	approver := isApproverRole(emp.EmployeeRole)
	scheduleManager := !outletCompany && emp.IsScheduleManager

	caps := identity.Capabilities{
		EmployeeRole:         string(emp.EmployeeRole),
		ManagedOutlets:       scope.ManagedOutlets,
		IsMimix:              outletCompany,
		IsBossOrDirector:     emp.EmployeeRole == employee.RoleBoss || emp.EmployeeRole == employee.RoleDirector,
		IsIndoorSalesManager: scheduleManager,
	}
	if caps.ManagedOutlets == nil {
		caps.ManagedOutlets = []string{}
	}

	if p.IsAdmin() {
		caps.CanApproveLeave = true
		caps.CanApproveOT = true
		caps.CanApproveSwaps = true
		caps.CanApproveClaims = true
		caps.CanViewTeam = true
		caps.CanManageSchedule = true
		return caps
	}

	caps.CanApproveLeave = (approver && outletCompany) || scheduleManager
	caps.CanApproveOT = caps.CanApproveLeave
	caps.CanApproveSwaps = approver && outletCompany

	if outletCompany {
		caps.CanApproveClaims = emp.EmployeeRole == employee.RoleBoss || emp.EmployeeRole == employee.RoleDirector
	} else {
		caps.CanApproveClaims = emp.EmployeeRole == employee.RoleSupervisor || emp.EmployeeRole == employee.RoleManager
	}

	caps.CanViewTeam = caps.CanApproveLeave || caps.CanApproveOT
	caps.CanManageSchedule = (caps.CanApproveLeave && outletCompany) || scheduleManager

	return caps
}
