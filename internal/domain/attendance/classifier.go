package attendance

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

type OutcomeKind string

const (
	OutcomeUnset   OutcomeKind = ""
	OutcomePresent OutcomeKind = "PRESENT"
	OutcomeAbsent  OutcomeKind = "ABSENT"
	OutcomeNoIn    OutcomeKind = "NO_IN"
	OutcomeNoOut   OutcomeKind = "NO_OUT"
	OutcomeFixed   OutcomeKind = "FIXED"
)

// DayOutcome is the canonical classification of one attendance day.
// Only PRESENT and FIXED carry an amount.
type DayOutcome struct {
	Kind   OutcomeKind
	Amount decimal.Decimal
}

func Present(amount decimal.Decimal) DayOutcome {
	return DayOutcome{Kind: OutcomePresent, Amount: amount}
}

func Fixed(amount decimal.Decimal) DayOutcome {
	return DayOutcome{Kind: OutcomeFixed, Amount: amount}
}

func Absent() DayOutcome { return DayOutcome{Kind: OutcomeAbsent} }
func NoIn() DayOutcome   { return DayOutcome{Kind: OutcomeNoIn} }
func NoOut() DayOutcome  { return DayOutcome{Kind: OutcomeNoOut} }

func (o DayOutcome) IsSet() bool { return o.Kind != OutcomeUnset }

// Paid reports whether the day counts as worked (PRESENT or FIXED).
func (o DayOutcome) Paid() bool {
	return o.Kind == OutcomePresent || o.Kind == OutcomeFixed
}

// Status is the tag persisted for this outcome in the payroll summary.
func (o DayOutcome) Status() Status {
	switch o.Kind {
	case OutcomePresent:
		return StatusPresent
	case OutcomeFixed:
		return StatusFixed
	case OutcomeNoIn:
		return StatusNoIn
	case OutcomeNoOut:
		return StatusNoOut
	default:
		return StatusAbsent
	}
}

// Marker is the grid cell text: the amount for PRESENT, otherwise A, NI, NO or F.
func (o DayOutcome) Marker() string {
	switch o.Kind {
	case OutcomePresent:
		return o.Amount.String()
	case OutcomeAbsent:
		return "A"
	case OutcomeNoIn:
		return "NI"
	case OutcomeNoOut:
		return "NO"
	case OutcomeFixed:
		return "F"
	default:
		return ""
	}
}

// MarshalJSON renders PRESENT as a bare number, other outcomes as their
// marker string, and an unset day as null.
func (o DayOutcome) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case OutcomeUnset:
		return []byte("null"), nil
	case OutcomePresent:
		return []byte(o.Amount.String()), nil
	default:
		return json.Marshal(o.Marker())
	}
}

// UnmarshalJSON reverses MarshalJSON. The "F" marker carries no amount, so a
// FIXED day decodes with a zero amount; the period rate is the source of truth.
func (o *DayOutcome) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = DayOutcome{}
		return nil
	}
	if len(data) > 0 && data[0] != '"' {
		var amount decimal.Decimal
		if err := amount.UnmarshalJSON(data); err != nil {
			return err
		}
		*o = Present(amount)
		return nil
	}
	var marker string
	if err := json.Unmarshal(data, &marker); err != nil {
		return err
	}
	switch marker {
	case "A":
		*o = Absent()
	case "NI":
		*o = NoIn()
	case "NO":
		*o = NoOut()
	case "F":
		*o = Fixed(decimal.Zero)
	default:
		*o = Absent()
	}
	return nil
}

// RawInput is what the classifier needs from one day's attendance.
type RawInput struct {
	TimeIn  string
	TimeOut string
	Status  Status
	Amount  decimal.Decimal
}

// HasValidTime reports whether a time_in/time_out value records a real clock
// reading: non-empty and neither "-" nor "FIXED".
func HasValidTime(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != TimeNone && s != TimeFixed
}

// Classify maps one day onto its canonical outcome. Asymmetric clock readings
// decide first, so a missing time_in or time_out overrides the status tag.
// A zero Amount counts as not set.
func Classify(in RawInput, rate employee.RateInfo) DayOutcome {
	hasIn := HasValidTime(in.TimeIn)
	hasOut := HasValidTime(in.TimeOut)

	switch {
	case !hasIn && hasOut:
		return NoIn()
	case hasIn && !hasOut:
		return NoOut()
	case hasIn && hasOut:
		return fromStatus(in.Status, in.Amount, rate)
	default:
		return Absent()
	}
}

// ClassifyStored classifies a persisted row for live views. Rows carrying at
// least one clock reading go through Classify; rows saved without times (grid
// entry) are read from their normalised status tag.
func ClassifyStored(e Entry, rate employee.RateInfo) DayOutcome {
	if HasValidTime(e.TimeIn) || HasValidTime(e.TimeOut) {
		return Classify(e.Raw(), rate)
	}
	switch e.Status {
	case StatusNoIn:
		return NoIn()
	case StatusNoOut:
		return NoOut()
	default:
		return fromStatus(e.Status, e.Amount, rate)
	}
}

// FromSummary rebuilds an outcome from a frozen payroll summary row.
func FromSummary(status Status, amount decimal.Decimal) DayOutcome {
	switch status {
	case StatusPresent, StatusPartial:
		return Present(amount)
	case StatusFixed:
		return Fixed(amount)
	case StatusNoIn:
		return NoIn()
	case StatusNoOut:
		return NoOut()
	default:
		return Absent()
	}
}

func fromStatus(status Status, amount decimal.Decimal, rate employee.RateInfo) DayOutcome {
	switch status {
	case StatusFixed:
		return Fixed(rate.Amount)
	case StatusPresent:
		if amount.IsZero() {
			return Present(rate.Amount)
		}
		return Present(amount)
	case StatusPartial:
		return Present(amount)
	default:
		return Absent()
	}
}

// SaveInput is a client write before normalisation.
type SaveInput struct {
	TimeIn  string
	TimeOut string
	Status  string
	Amount  *decimal.Decimal
}

// NormalizeSave turns a client write into the stored status and amount.
// Rules, first match wins:
//  1. time_in and time_out both "FIXED": fixed at the rate
//  2. status A/absent, NO/no_out, NI/no_in: that status, amount 0
//  3. status fixed: the rate; status partial: the given amount or 0
//  4. an explicit amount: present with that amount
//  5. status present: the rate
//  6. anything else: partial with amount 0
func NormalizeSave(in SaveInput, rate employee.RateInfo) (Status, decimal.Decimal) {
	if strings.EqualFold(in.TimeIn, TimeFixed) && strings.EqualFold(in.TimeOut, TimeFixed) {
		return StatusFixed, rate.Amount
	}

	status := strings.TrimSpace(in.Status)
	switch {
	case status == "A" || strings.EqualFold(status, string(StatusAbsent)):
		return StatusAbsent, decimal.Zero
	case status == "NO" || strings.EqualFold(status, string(StatusNoOut)):
		return StatusNoOut, decimal.Zero
	case status == "NI" || strings.EqualFold(status, string(StatusNoIn)):
		return StatusNoIn, decimal.Zero
	case strings.EqualFold(status, string(StatusFixed)):
		return StatusFixed, rate.Amount
	case strings.EqualFold(status, string(StatusPartial)):
		if in.Amount != nil {
			return StatusPartial, *in.Amount
		}
		return StatusPartial, decimal.Zero
	case in.Amount != nil:
		return StatusPresent, *in.Amount
	case strings.EqualFold(status, string(StatusPresent)):
		return StatusPresent, rate.Amount
	default:
		return StatusPartial, decimal.Zero
	}
}
