package postgresql

import (
	"fmt"
	"strings"

	"github.com/tandemhr/ess-backend-go/internal/domain/approval"
)

// approverColumn maps an approval level to its column prefix on the
// request tables.
func approverColumn(level approval.Level) string {
	switch level {
	case approval.LevelSupervisor:
		return "supervisor"
	case approval.LevelManager:
		return "manager"
	default:
		return "admin"
	}
}

// transitionSet builds the shared SET clause for a lifecycle transition
// update: status, approval level, rejection reason, and one approver
// stamp per filled slot. Placeholders start at $1; callers append the
// WHERE arguments after the returned ones.
func transitionSet(tr approval.Transition, actorID string, reason *string) (string, []interface{}) {
	args := []interface{}{tr.Status, int(tr.Level), reason}
	set := []string{
		"status = $1",
		"approval_level = $2",
		"rejection_reason = $3",
		"updated_at = NOW()",
	}

	for _, slot := range tr.FillSlots {
		col := approverColumn(slot)
		args = append(args, actorID)
		set = append(set,
			fmt.Sprintf("%s_approved_by = $%d", col, len(args)),
			fmt.Sprintf("%s_approved_at = NOW()", col),
		)
	}

	return strings.Join(set, ",\n\t\t\t"), args
}
