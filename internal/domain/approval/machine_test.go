package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/user"
)

func TestTierOf(t *testing.T) {
	assert.Equal(t, TierAdmin, TierOf(user.RoleAdmin, employee.RoleStaff))
	assert.Equal(t, TierAdmin, TierOf(user.RoleSuperAdmin, employee.RoleStaff))
	assert.Equal(t, TierSupervisor, TierOf(user.RoleEmployee, employee.RoleSupervisor))
	assert.Equal(t, TierManager, TierOf(user.RoleEmployee, employee.RoleManager))
	assert.Equal(t, TierBossDirector, TierOf(user.RoleEmployee, employee.RoleBoss))
	assert.Equal(t, TierBossDirector, TierOf(user.RoleEmployee, employee.RoleDirector))
	assert.Equal(t, TierNone, TierOf(user.RoleEmployee, employee.RoleStaff))
}

func TestApproveLadder(t *testing.T) {
	cases := []struct {
		name      string
		level     Level
		tier      Tier
		wantLevel Level
		wantSlots []Level
		wantFinal bool
		wantErr   error
	}{
		{"supervisor at L1", LevelSupervisor, TierSupervisor, LevelManager, []Level{LevelSupervisor}, false, nil},
		{"supervisor at L2", LevelManager, TierSupervisor, 0, nil, false, ErrLevelMismatch},
		{"manager at L1 fills both slots", LevelSupervisor, TierManager, LevelAdmin, []Level{LevelSupervisor, LevelManager}, false, nil},
		{"manager at L2", LevelManager, TierManager, LevelAdmin, []Level{LevelManager}, false, nil},
		{"manager at L3", LevelAdmin, TierManager, 0, nil, false, ErrLevelMismatch},
		{"boss at L1", LevelSupervisor, TierBossDirector, LevelAdmin, []Level{LevelSupervisor, LevelManager}, false, nil},
		{"boss at L2", LevelManager, TierBossDirector, LevelAdmin, []Level{LevelManager}, false, nil},
		{"boss at L3 stays pending", LevelAdmin, TierBossDirector, LevelAdmin, nil, false, nil},
		{"admin at L1", LevelSupervisor, TierAdmin, 0, nil, false, ErrLevelMismatch},
		{"admin finalizes at L3", LevelAdmin, TierAdmin, LevelAdmin, []Level{LevelAdmin}, true, nil},
		{"no tier", LevelSupervisor, TierNone, 0, nil, false, ErrLevelMismatch},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr, err := Approve(StatusPending, c.level, c.tier)
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.wantLevel, tr.Level)
			assert.Equal(t, c.wantSlots, tr.FillSlots)
			assert.Equal(t, c.wantFinal, tr.AutoFinal)
			if c.wantFinal {
				assert.Equal(t, StatusApproved, tr.Status)
			} else {
				assert.Equal(t, StatusPending, tr.Status)
			}
		})
	}
}

func TestApproveNonPending(t *testing.T) {
	for _, status := range []Status{StatusApproved, StatusRejected, StatusCancelled} {
		_, err := Approve(status, LevelAdmin, TierAdmin)
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
	}
}

func TestRejectAndCancel(t *testing.T) {
	tr, err := Reject(StatusPending)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, tr.Status)

	tr, err = Cancel(StatusPending)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, tr.Status)

	_, err = Reject(StatusApproved)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	_, err = Cancel(StatusRejected)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestRevert(t *testing.T) {
	tr, err := Revert(StatusApproved, true)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, tr.Status)

	_, err = Revert(StatusApproved, false)
	assert.ErrorIs(t, err, ErrNotAutoApproved)

	_, err = Revert(StatusPending, true)
	assert.ErrorIs(t, err, ErrNotApproved)
}

func TestInitialLevel(t *testing.T) {
	// Office companies jump straight to admin regardless of the owner.
	assert.Equal(t, LevelAdmin, InitialLevel(company.GroupingDepartment, employee.RoleStaff))
	assert.Equal(t, LevelAdmin, InitialLevel(company.GroupingDepartment, employee.RoleManager))

	assert.Equal(t, LevelSupervisor, InitialLevel(company.GroupingOutlet, employee.RoleStaff))
	assert.Equal(t, LevelManager, InitialLevel(company.GroupingOutlet, employee.RoleSupervisor))
	assert.Equal(t, LevelAdmin, InitialLevel(company.GroupingOutlet, employee.RoleManager))
	assert.Equal(t, LevelAdmin, InitialLevel(company.GroupingOutlet, employee.RoleBoss))
	assert.Equal(t, LevelAdmin, InitialLevel(company.GroupingOutlet, employee.RoleDirector))
}
