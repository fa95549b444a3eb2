package approval

import (
	"github.com/tandemhr/ess-backend-go/internal/domain/company"
	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
	"github.com/tandemhr/ess-backend-go/internal/domain/user"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Level names the next required approver tier while a request is pending.
type Level int

const (
	LevelSupervisor Level = 1
	LevelManager    Level = 2
	LevelAdmin      Level = 3
)

// Tier is the approver's rank as seen by the state machine. It is derived
// from the account role and the employee role; the permission kernel has
// already verified scope and hierarchy before the machine runs.
type Tier int

const (
	TierNone Tier = iota
	TierSupervisor
	TierManager
	TierBossDirector
	TierAdmin
)

// TierOf maps an authenticated approver onto a machine tier.
func TierOf(role user.Role, empRole employee.EmployeeRole) Tier {
	if role == user.RoleAdmin || role == user.RoleSuperAdmin {
		return TierAdmin
	}
	switch empRole {
	case employee.RoleSupervisor:
		return TierSupervisor
	case employee.RoleManager:
		return TierManager
	case employee.RoleBoss, employee.RoleDirector:
		return TierBossDirector
	}
	return TierNone
}

// Transition is the outcome of a machine step: the new status and level,
// plus the approver slots stamped by this step. A manager approving at
// level 1 fills both the supervisor and manager slots in the same step.
type Transition struct {
	Status    Status
	Level     Level
	FillSlots []Level
	AutoFinal bool // set when the step itself finalized the request
}

// Approve runs one approval step of the shared protocol:
//
//	pending(L1) --supervisor--> pending(L2) --manager--> pending(L3) --admin--> approved
//
// with short-circuits: a manager acting at L1 promotes straight to L3, a
// boss/director may act at any pending level and always lands on L3, and
// only an admin finalizes.
func Approve(status Status, level Level, tier Tier) (Transition, error) {
	if status != StatusPending {
		return Transition{}, ErrAlreadyProcessed
	}

	switch tier {
	case TierSupervisor:
		if level != LevelSupervisor {
			return Transition{}, ErrLevelMismatch
		}
		return Transition{Status: StatusPending, Level: LevelManager, FillSlots: []Level{LevelSupervisor}}, nil

	case TierManager:
		switch level {
		case LevelSupervisor:
			return Transition{Status: StatusPending, Level: LevelAdmin, FillSlots: []Level{LevelSupervisor, LevelManager}}, nil
		case LevelManager:
			return Transition{Status: StatusPending, Level: LevelAdmin, FillSlots: []Level{LevelManager}}, nil
		}
		return Transition{}, ErrLevelMismatch

	case TierBossDirector:
		switch level {
		case LevelSupervisor:
			return Transition{Status: StatusPending, Level: LevelAdmin, FillSlots: []Level{LevelSupervisor, LevelManager}}, nil
		case LevelManager:
			return Transition{Status: StatusPending, Level: LevelAdmin, FillSlots: []Level{LevelManager}}, nil
		case LevelAdmin:
			// Boss/director may act at any level but never finalizes;
			// at L3 the step is a stay awaiting the admin, stamping no
			// slot already earned on the way up.
			return Transition{Status: StatusPending, Level: LevelAdmin}, nil
		}
		return Transition{}, ErrLevelMismatch

	case TierAdmin:
		if level != LevelAdmin {
			return Transition{}, ErrLevelMismatch
		}
		return Transition{Status: StatusApproved, Level: LevelAdmin, FillSlots: []Level{LevelAdmin}, AutoFinal: true}, nil
	}

	return Transition{}, ErrLevelMismatch
}

// Reject terminates a pending request. Authority was checked by the kernel;
// the machine only guards the status.
func Reject(status Status) (Transition, error) {
	if status != StatusPending {
		return Transition{}, ErrAlreadyProcessed
	}
	return Transition{Status: StatusRejected}, nil
}

// Cancel is the owner's withdrawal, allowed only while pending.
func Cancel(status Status) (Transition, error) {
	if status != StatusPending {
		return Transition{}, ErrAlreadyProcessed
	}
	return Transition{Status: StatusCancelled}, nil
}

// Revert undoes an auto-approved request at the owner's initiative. The
// window is bounded only by the status remaining approved.
func Revert(status Status, autoApproved bool) (Transition, error) {
	if status != StatusApproved {
		return Transition{}, ErrNotApproved
	}
	if !autoApproved {
		return Transition{}, ErrNotAutoApproved
	}
	return Transition{Status: StatusCancelled}, nil
}

// InitialLevel places a newly created request on the ladder: office-company
// requests go straight to the admin level, an outlet-company staff request
// starts at the supervisor level, and an outlet supervisor's own request
// starts at the manager level. Requests by outlet managers and above also
// await only the admin.
func InitialLevel(grouping company.GroupingType, ownerRole employee.EmployeeRole) Level {
	if grouping == company.GroupingDepartment {
		return LevelAdmin
	}
	switch ownerRole {
	case employee.RoleSupervisor:
		return LevelManager
	case employee.RoleManager, employee.RoleBoss, employee.RoleDirector:
		return LevelAdmin
	}
	return LevelSupervisor
}
