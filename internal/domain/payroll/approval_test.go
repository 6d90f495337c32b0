package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApprovalSnapshot_State(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		snap      ApprovalSnapshot
		state     ApprovalState
		canEdit   bool
		staleSync bool
	}{
		{"no attendance", ApprovalSnapshot{}, StateUnapproved, true, false},
		{"nothing approved", ApprovalSnapshot{TotalDays: 3}, StateUnapproved, true, false},
		{"partly approved", ApprovalSnapshot{TotalDays: 3, ApprovedDays: 1, LastApprovedAt: &now}, StateUnapproved, false, false},
		{"approved without sync", ApprovalSnapshot{TotalDays: 3, ApprovedDays: 3}, StateApproved, false, false},
		{"synced", ApprovalSnapshot{TotalDays: 3, ApprovedDays: 3, SummaryRows: 3, LastSyncedAt: &now}, StateSynced, false, false},
		{"unapproved after sync", ApprovalSnapshot{TotalDays: 3, SummaryRows: 3}, StateUnapproved, false, true},
		{"edited after sync", ApprovalSnapshot{TotalDays: 3, ApprovedDays: 2, SummaryRows: 3}, StateUnapproved, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.state, tt.snap.State())
			assert.Equal(t, tt.canEdit, tt.snap.CanEdit())
			assert.Equal(t, tt.staleSync, tt.snap.StaleSync())
		})
	}
}

func TestApprovalSnapshot_Pending(t *testing.T) {
	assert.Equal(t, 2, ApprovalSnapshot{TotalDays: 5, ApprovedDays: 3}.Pending())
	assert.Equal(t, 0, ApprovalSnapshot{}.Pending())
}

func TestToStatusResponse(t *testing.T) {
	resp := ToStatusResponse("e", "p", ApprovalSnapshot{TotalDays: 2, ApprovedDays: 2, SummaryRows: 2})
	assert.Equal(t, StateSynced, resp.State)
	assert.True(t, resp.IsFullyApproved)
	assert.True(t, resp.SyncedToPayroll)
	assert.Equal(t, 2, resp.PayrollEntries)
}
