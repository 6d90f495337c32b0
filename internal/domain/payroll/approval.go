package payroll

import "time"

// ApprovalState is the lifecycle position of one (employee, period) pair.
type ApprovalState string

const (
	StateUnapproved ApprovalState = "unapproved"
	StateApproved   ApprovalState = "approved"
	StateSynced     ApprovalState = "synced"
)

// ApprovalSnapshot is the persisted approval flags of a pair, read together.
type ApprovalSnapshot struct {
	TotalDays       int
	ApprovedDays    int
	SummaryRows     int
	FirstApprovedAt *time.Time
	LastApprovedAt  *time.Time
	LastSyncedAt    *time.Time
}

// FullyApproved is true when at least one day exists and every day is approved.
func (s ApprovalSnapshot) FullyApproved() bool {
	return s.TotalDays > 0 && s.ApprovedDays == s.TotalDays
}

func (s ApprovalSnapshot) Synced() bool {
	return s.SummaryRows > 0
}

// State collapses the flags: every day approved plus summary rows is Synced,
// every day approved without them is Approved, anything else is Unapproved.
func (s ApprovalSnapshot) State() ApprovalState {
	switch {
	case s.FullyApproved() && s.Synced():
		return StateSynced
	case s.FullyApproved():
		return StateApproved
	default:
		return StateUnapproved
	}
}

// StaleSync flags summary rows left behind after an unapprove or an edit.
func (s ApprovalSnapshot) StaleSync() bool {
	return s.Synced() && !s.FullyApproved()
}

// CanEdit is true only while no day is approved and nothing has been synced.
func (s ApprovalSnapshot) CanEdit() bool {
	return s.ApprovedDays == 0 && s.SummaryRows == 0
}

// Pending is the number of days an approval without force_resync would select.
func (s ApprovalSnapshot) Pending() int {
	return s.TotalDays - s.ApprovedDays
}
