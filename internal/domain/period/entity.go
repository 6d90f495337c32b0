package period

import (
	"fmt"
	"time"
)

// Period is a payroll cycle: an inclusive day range inside one calendar month.
type Period struct {
	ID        string
	Year      int
	Month     string
	StartDay  int
	EndDay    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Name renders the period the way payroll staff refer to it, e.g. "March 1-15, 2024".
func (p Period) Name() string {
	return fmt.Sprintf("%s %d-%d, %d", p.Month, p.StartDay, p.EndDay, p.Year)
}

// Overlaps reports whether both periods cover at least one common calendar date.
func (p Period) Overlaps(o Period) bool {
	pm, ok1 := MonthNumber(p.Month)
	om, ok2 := MonthNumber(o.Month)
	if !ok1 || !ok2 || p.Year != o.Year || pm != om {
		return false
	}
	return p.StartDay <= o.EndDay && o.StartDay <= p.EndDay
}
