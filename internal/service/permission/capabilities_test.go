package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/domain/user"
)

func TestBuildCapabilitiesAdmin(t *testing.T) {
	p := identity.Principal{UserID: "u1", Role: user.RoleAdmin}
	sc := identity.Scope{Company: company.Company{GroupingType: company.GroupingOutlet}, WholeCompany: true}

	caps := BuildCapabilities(p, sc, employee.Employee{})
	assert.True(t, caps.CanApproveLeave)
	assert.True(t, caps.CanApproveOT)
	assert.True(t, caps.CanApproveSwaps)
	assert.True(t, caps.CanApproveClaims)
	assert.True(t, caps.CanViewTeam)
	assert.True(t, caps.CanManageSchedule)
}

func TestBuildCapabilitiesOutletSupervisor(t *testing.T) {
	p := identity.Principal{UserID: "u1", Role: user.RoleEmployee}
	sc := identity.Scope{
		Company:        company.Company{GroupingType: company.GroupingOutlet},
		Kind:           identity.GroupOutlets,
		ManagedOutlets: []string{"o1"},
	}
	emp := employee.Employee{EmployeeRole: employee.RoleSupervisor}

	caps := BuildCapabilities(p, sc, emp)
	assert.True(t, caps.CanApproveLeave)
	assert.True(t, caps.CanApproveOT)
	assert.True(t, caps.CanApproveSwaps)
	// Outlet claim approval belongs to boss and director only.
	assert.False(t, caps.CanApproveClaims)
	assert.True(t, caps.CanManageSchedule)
}

func TestBuildCapabilitiesOutletBoss(t *testing.T) {
	p := identity.Principal{UserID: "u1", Role: user.RoleEmployee}
	sc := identity.Scope{
		Company:      company.Company{GroupingType: company.GroupingOutlet},
		Kind:         identity.GroupOutlets,
		WholeCompany: true,
	}
	caps := BuildCapabilities(p, sc, employee.Employee{EmployeeRole: employee.RoleBoss})
	assert.True(t, caps.CanApproveClaims)
	assert.True(t, caps.IsBossOrDirector)
}

func TestBuildCapabilitiesOfficeStaff(t *testing.T) {
	p := identity.Principal{UserID: "u1", Role: user.RoleEmployee}
	sc := identity.Scope{
		Company: company.Company{GroupingType: company.GroupingDepartment},
		Kind:    identity.GroupDepartments,
	}

	staff := BuildCapabilities(p, sc, employee.Employee{EmployeeRole: employee.RoleStaff})
	assert.False(t, staff.CanApproveLeave)
	assert.False(t, staff.CanManageSchedule)

	// Office supervisors approve claims but not leave.
	sup := BuildCapabilities(p, sc, employee.Employee{EmployeeRole: employee.RoleSupervisor})
	assert.False(t, sup.CanApproveLeave)
	assert.True(t, sup.CanApproveClaims)
	assert.False(t, sup.CanApproveSwaps)
}

func TestBuildCapabilitiesOfficeScheduleManager(t *testing.T) {
	p := identity.Principal{UserID: "u1", Role: user.RoleEmployee}
	sc := identity.Scope{
		Company: company.Company{GroupingType: company.GroupingDepartment},
		Kind:    identity.GroupDepartments,
	}
	emp := employee.Employee{EmployeeRole: employee.RoleStaff, IsScheduleManager: true}

	caps := BuildCapabilities(p, sc, emp)
	assert.True(t, caps.CanApproveLeave)
	assert.True(t, caps.CanApproveOT)
	assert.True(t, caps.CanManageSchedule)
	assert.False(t, caps.CanApproveSwaps)
}
