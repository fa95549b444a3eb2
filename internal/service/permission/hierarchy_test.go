package permission

import (
	"testing"

	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
)

func strPtr(s string) *string { return &s }

func TestLevelOf(t *testing.T) {
	cases := []struct {
		name         string
		positionRole *string
		empRole      employee.EmployeeRole
		positionText *string
		want         int
	}{
		{"position role wins", strPtr("manager"), employee.RoleStaff, nil, LevelManager},
		{"employee role fallback", nil, employee.RoleSupervisor, nil, LevelSupervisor},
		{"free text fallback", nil, "", strPtr("Assistant Supervisor"), LevelAsstSupervisor},
		{"assistant never matches supervisor", strPtr("assistant supervisor"), employee.RoleStaff, nil, LevelAsstSupervisor},
		{"free text substring", nil, "", strPtr("Senior Barista"), LevelCrew},
		{"boss maps to top", nil, employee.RoleBoss, nil, LevelTop},
		{"director", nil, employee.RoleDirector, nil, LevelDirector},
		{"unknown lands on floor", nil, "", strPtr("Consultant"), LevelDefault},
		{"nothing at all", nil, "", nil, LevelDefault},
		{"case and spacing normalized", strPtr("  SUPERVISOR "), employee.RoleStaff, nil, LevelSupervisor},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := LevelOf(c.positionRole, c.empRole, c.positionText)
			if got != c.want {
				t.Errorf("LevelOf() = %d, want %d", got, c.want)
			}
		})
	}
}

func TestLevelOfEmployee(t *testing.T) {
	emp := employee.Employee{EmployeeRole: employee.RoleStaff, Position: strPtr("cashier")}
	if got := LevelOfEmployee(emp, nil); got != LevelCrew {
		t.Errorf("LevelOfEmployee() = %d, want %d", got, LevelCrew)
	}

	pos := &employee.Position{Role: "director"}
	if got := LevelOfEmployee(emp, pos); got != LevelDirector {
		t.Errorf("LevelOfEmployee() with position = %d, want %d", got, LevelDirector)
	}
}
