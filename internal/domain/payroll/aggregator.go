package payroll

import (
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/period"
	"github.com/shopspring/decimal"
)

type EmployeeTotals struct {
	WorkingDays int
	GrossSalary decimal.Decimal
}

// Aggregate folds one employee's day outcomes for a period. Daily-basis
// employees earn the sum of their PRESENT and FIXED days. Fixed-basis
// employees earn the flat rate and report zero working days.
func Aggregate(outcomes []attendance.DayOutcome, rate employee.RateInfo) EmployeeTotals {
	if rate.Basis == employee.PayBasisFixed {
		return EmployeeTotals{GrossSalary: rate.Amount}
	}
	totals := EmployeeTotals{GrossSalary: decimal.Zero}
	for _, o := range outcomes {
		if !o.Paid() {
			continue
		}
		totals.WorkingDays++
		totals.GrossSalary = totals.GrossSalary.Add(o.Amount)
	}
	return totals
}

// RowSource tells whether a report row was read from live attendance or from
// the frozen payroll summary.
type RowSource string

const (
	SourceAttendance RowSource = "attendance"
	SourceSummary    RowSource = "payroll_summary"
)

type EmployeeRow struct {
	ID           string                  `json:"id"`
	EmployeeCode string                  `json:"employee_id"`
	Name         string                  `json:"name"`
	Position     string                  `json:"position"`
	Department   employee.Department     `json:"department"`
	RateType     employee.PayBasis       `json:"rate_type"`
	Rate         decimal.Decimal         `json:"rate"`
	Attendance   []attendance.DayOutcome `json:"attendance"`
	WorkingDays  int                     `json:"working_days"`
	GrossSalary  decimal.Decimal         `json:"gross_salary"`
	Source       RowSource               `json:"source"`
}

type SummaryReport struct {
	Period      period.PeriodResponse             `json:"period"`
	Dates       []period.Day                      `json:"dates"`
	Employees   map[employee.Bucket][]EmployeeRow `json:"employees"`
	DailyTotals []decimal.Decimal                 `json:"daily_totals"`
	GrandTotal  decimal.Decimal                   `json:"grand_total"`
	Excluded    []string                          `json:"excluded_employee_ids,omitempty"`
}

// EnsureBuckets gives every bucket a non-nil slice so empty groups render as [].
func (r *SummaryReport) EnsureBuckets() {
	if r.Employees == nil {
		r.Employees = make(map[employee.Bucket][]EmployeeRow, len(employee.Buckets))
	}
	for _, b := range employee.Buckets {
		if r.Employees[b] == nil {
			r.Employees[b] = []EmployeeRow{}
		}
	}
}

// Rows returns every grouped row in bucket display order.
func (r SummaryReport) Rows() []EmployeeRow {
	var rows []EmployeeRow
	for _, b := range employee.Buckets {
		rows = append(rows, r.Employees[b]...)
	}
	return rows
}

type ReportInput struct {
	Period     period.Period
	Employees  []employee.Employee
	Attendance []attendance.Entry
	Summary    []SummaryEntry
}

// BuildReport folds a period into department buckets. An employee with
// payroll summary rows is read from them; otherwise live attendance is
// classified. Employees whose department has no bucket are listed in
// Excluded and contribute to no total.
func BuildReport(in ReportInput) SummaryReport {
	dates := in.Period.Dates()
	report := SummaryReport{
		Period:      period.ToResponse(in.Period),
		Dates:       dates,
		DailyTotals: make([]decimal.Decimal, len(dates)),
		GrandTotal:  decimal.Zero,
	}
	report.EnsureBuckets()
	for i := range report.DailyTotals {
		report.DailyTotals[i] = decimal.Zero
	}

	live := make(map[string][]attendance.Entry)
	for _, e := range in.Attendance {
		live[e.EmployeeID] = append(live[e.EmployeeID], e)
	}
	frozen := make(map[string][]SummaryEntry)
	for _, s := range in.Summary {
		frozen[s.EmployeeID] = append(frozen[s.EmployeeID], s)
	}

	for _, emp := range in.Employees {
		bucket, ok := employee.BucketFor(string(emp.Department))
		if !ok {
			report.Excluded = append(report.Excluded, emp.ID)
			continue
		}
		rate, err := emp.Rate()
		if err != nil {
			rate = employee.RateInfo{Basis: emp.RateType, Amount: decimal.Zero}
		}

		cells := make([]attendance.DayOutcome, len(dates))
		source := SourceAttendance
		if rows, ok := frozen[emp.ID]; ok && len(rows) > 0 {
			source = SourceSummary
			for _, s := range rows {
				if s.DayIndex >= 1 && s.DayIndex <= len(cells) {
					cells[s.DayIndex-1] = s.Outcome()
				}
			}
		} else {
			for _, e := range live[emp.ID] {
				if e.DayIndex >= 1 && e.DayIndex <= len(cells) {
					cells[e.DayIndex-1] = attendance.ClassifyStored(e, rate)
				}
			}
		}

		totals := Aggregate(cells, rate)
		report.Employees[bucket] = append(report.Employees[bucket], EmployeeRow{
			ID:           emp.ID,
			EmployeeCode: emp.EmployeeCode,
			Name:         emp.Name,
			Position:     emp.Position,
			Department:   emp.Department,
			RateType:     rate.Basis,
			Rate:         rate.Amount,
			Attendance:   cells,
			WorkingDays:  totals.WorkingDays,
			GrossSalary:  totals.GrossSalary,
			Source:       source,
		})

		report.GrandTotal = report.GrandTotal.Add(totals.GrossSalary)
		if rate.Basis == employee.PayBasisFixed {
			continue
		}
		for i, c := range cells {
			if c.Kind == attendance.OutcomePresent {
				report.DailyTotals[i] = report.DailyTotals[i].Add(c.Amount)
			}
		}
	}

	return report
}
