package identity

// Capabilities is the per-principal flag bundle surfaced to front-ends for
// UI gating. It never grants anything by itself; every mutating call is
// re-checked by the permission kernel.
type Capabilities struct {
	EmployeeRole         string   `json:"employee_role"`
	CanApproveLeave      bool     `json:"can_approve_leave"`
	CanApproveOT         bool     `json:"can_approve_ot"`
	CanApproveSwaps      bool     `json:"can_approve_swaps"`
	CanApproveClaims     bool     `json:"can_approve_claims"`
	CanViewTeam          bool     `json:"can_view_team"`
	CanManageSchedule    bool     `json:"can_manage_schedule"`
	ManagedOutlets       []string `json:"managed_outlets"`
	IsMimix              bool     `json:"is_mimix"`
	IsBossOrDirector     bool     `json:"is_boss_or_director"`
	IsIndoorSalesManager bool     `json:"is_indoor_sales_manager"`
}
