package permission

import (
	"strings"

	"github.com/tandemhr/ess-backend-go/internal/domain/employee"
)

// Hierarchy levels form a total ordering over positions. Approvals require
// the approver's level to strictly exceed the target's; ties deny.
const (
	LevelTop            = 100
	LevelDirector       = 90
	LevelManager        = 80
	LevelSupervisor     = 60
	LevelAsstSupervisor = 40
	LevelCrew           = 20
	LevelDefault        = 10
)

// hierarchyTable maps normalized position strings to levels. Spelling
// variants seen in production data are listed explicitly.
var hierarchyTable = map[string]int{
	"admin":       LevelTop,
	"super_admin": LevelTop,
	"super admin": LevelTop,
	"boss":        LevelTop,

	"director": LevelDirector,

	"manager": LevelManager,

	"supervisor": LevelSupervisor,

	"assistant supervisor": LevelAsstSupervisor,
	"asst supervisor":      LevelAsstSupervisor,
	"asst. supervisor":     LevelAsstSupervisor,

	"service crew": LevelCrew,
	"part timer":   LevelCrew,
	"part-timer":   LevelCrew,
	"cashier":      LevelCrew,
	"barista":      LevelCrew,
	"staff":        LevelCrew,
}

// substringOrder fixes the pass order for free-text matching: the most
// specific titles first, so "assistant supervisor" never resolves through
// its "supervisor" suffix.
var substringOrder = []string{
	"assistant supervisor", "asst. supervisor", "asst supervisor",
	"super admin", "super_admin",
	"service crew", "part timer", "part-timer",
	"director", "manager", "supervisor",
	"cashier", "barista", "staff",
	"admin", "boss",
}

func levelOfString(s string) (int, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return 0, false
	}
	if level, ok := hierarchyTable[normalized]; ok {
		return level, true
	}
	// Free-text positions like "Senior Barista" still map through a
	// substring pass.
	for _, key := range substringOrder {
		if strings.Contains(normalized, key) {
			return hierarchyTable[key], true
		}
	}
	return 0, false
}

// LevelOf resolves an employee's hierarchy level. Candidates are tried in
// order: the position's canonical role, the employee role, then the
// free-text position string. Unmatched employees land on the floor level.
func LevelOf(positionRole *string, empRole employee.EmployeeRole, positionText *string) int {
	if positionRole != nil {
		if level, ok := levelOfString(*positionRole); ok {
			return level
		}
	}
	if level, ok := levelOfString(string(empRole)); ok {
		return level
	}
	if positionText != nil {
		if level, ok := levelOfString(*positionText); ok {
			return level
		}
	}
	return LevelDefault
}

// LevelOfEmployee resolves the level from an employee row plus its loaded
// position, handling the nil cases.
func LevelOfEmployee(emp employee.Employee, pos *employee.Position) int {
	var positionRole *string
	if pos != nil && pos.Role != "" {
		positionRole = &pos.Role
	}
	return LevelOf(positionRole, emp.EmployeeRole, emp.Position)
}
