package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
)

func outletScope(level int, outlets ...string) identity.Scope {
	return identity.Scope{
		Company:        company.Company{ID: "c1", GroupingType: company.GroupingOutlet},
		Kind:           identity.GroupOutlets,
		ManagedOutlets: outlets,
		HierarchyLevel: level,
	}
}

func TestCanActOn(t *testing.T) {
	outlet := "o1"
	target := employee.Employee{ID: "e2", CompanyID: "c1", OutletID: &outlet}

	t.Run("allows strictly higher level inside scope", func(t *testing.T) {
		require.NoError(t, CanActOn(outletScope(LevelSupervisor, "o1"), target, LevelCrew))
	})

	t.Run("denies equal level", func(t *testing.T) {
		err := CanActOn(outletScope(LevelSupervisor, "o1"), target, LevelSupervisor)
		var denied *DeniedError
		require.ErrorAs(t, err, &denied)
		assert.Contains(t, denied.Reason, "does not exceed")
	})

	t.Run("denies lower level", func(t *testing.T) {
		assert.Error(t, CanActOn(outletScope(LevelCrew, "o1"), target, LevelSupervisor))
	})

	t.Run("denies outside managed outlets", func(t *testing.T) {
		err := CanActOn(outletScope(LevelManager, "o9"), target, LevelCrew)
		var denied *DeniedError
		require.ErrorAs(t, err, &denied)
		assert.Contains(t, denied.Reason, "managed outlets")
	})

	t.Run("denies cross company", func(t *testing.T) {
		other := employee.Employee{ID: "e3", CompanyID: "c2", OutletID: &outlet}
		assert.Error(t, CanActOn(outletScope(LevelManager, "o1"), other, LevelCrew))
	})

	t.Run("whole company bypasses the managed set but not the level", func(t *testing.T) {
		sc := outletScope(LevelTop)
		sc.WholeCompany = true
		require.NoError(t, CanActOn(sc, target, LevelDirector))

		sc.HierarchyLevel = LevelCrew
		assert.Error(t, CanActOn(sc, target, LevelCrew))
	})

	t.Run("department scope wording", func(t *testing.T) {
		dept := "d1"
		sc := identity.Scope{
			Company:            company.Company{ID: "c1", GroupingType: company.GroupingDepartment},
			Kind:               identity.GroupDepartments,
			ManagedDepartments: []string{"d9"},
			HierarchyLevel:     LevelManager,
		}
		officeTarget := employee.Employee{ID: "e4", CompanyID: "c1", DepartmentID: &dept}
		err := CanActOn(sc, officeTarget, LevelCrew)
		var denied *DeniedError
		require.ErrorAs(t, err, &denied)
		assert.Contains(t, denied.Reason, "managed departments")
	})
}

func TestCanActOnSelfCancel(t *testing.T) {
	p := identity.Principal{EmployeeID: "e1"}
	require.NoError(t, CanActOnSelfCancel(p, "e1"))
	assert.Error(t, CanActOnSelfCancel(p, "e2"))
}
