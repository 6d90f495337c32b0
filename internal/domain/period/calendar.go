package period

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const isoDate = "2006-01-02"

// Day is one calendar date of a period. Index is 1-based within the period.
type Day struct {
	Index      int       `json:"day_index"`
	DayOfMonth int       `json:"date"`
	Month      string    `json:"month"`
	Weekday    string    `json:"day"`
	IsWeekend  bool      `json:"is_weekend"`
	FullDate   string    `json:"full_date"`
	Time       time.Time `json:"-"`
}

// MonthNumber accepts full or three-letter English month names in any case.
func MonthNumber(name string) (time.Month, bool) {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return 0, false
	}
	title := cases.Title(language.English).String(strings.ToLower(name))
	for m := time.January; m <= time.December; m++ {
		full := m.String()
		if title == full || title == full[:3] {
			return m, true
		}
	}
	return 0, false
}

// CanonicalMonth returns the full English month name, e.g. "mar" -> "March".
func CanonicalMonth(name string) (string, bool) {
	m, ok := MonthNumber(name)
	if !ok {
		return "", false
	}
	return m.String(), true
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Len is the number of days in the period, 0 when the range is invalid.
func (p Period) Len() int {
	if err := p.Validate(); err != nil {
		return 0
	}
	return p.EndDay - p.StartDay + 1
}

// Validate checks the month name and that 1 <= start_day <= end_day <= days in month.
func (p Period) Validate() error {
	m, ok := MonthNumber(p.Month)
	if !ok {
		return ErrInvalidMonth
	}
	if p.StartDay < 1 || p.StartDay > p.EndDay || p.EndDay > DaysIn(p.Year, m) {
		return ErrInvalidDayRange
	}
	return nil
}

// Dates expands the period into its ordered calendar days. Saturday and
// Sunday are weekends.
func (p Period) Dates() []Day {
	n := p.Len()
	if n == 0 {
		return nil
	}
	m, _ := MonthNumber(p.Month)
	days := make([]Day, 0, n)
	for i := 0; i < n; i++ {
		t := time.Date(p.Year, m, p.StartDay+i, 0, 0, 0, 0, time.UTC)
		days = append(days, Day{
			Index:      i + 1,
			DayOfMonth: t.Day(),
			Month:      t.Month().String()[:3],
			Weekday:    t.Weekday().String()[:3],
			IsWeekend:  t.Weekday() == time.Saturday || t.Weekday() == time.Sunday,
			FullDate:   t.Format(isoDate),
			Time:       t,
		})
	}
	return days
}

// Day returns the calendar day at dayIndex (1-based).
func (p Period) Day(dayIndex int) (Day, error) {
	n := p.Len()
	if n == 0 {
		return Day{}, ErrInvalidDayRange
	}
	if dayIndex < 1 || dayIndex > n {
		return Day{}, ErrDayIndexOutOfRange
	}
	return p.Dates()[dayIndex-1], nil
}

// DayIndexOf maps a calendar date onto its 1-based day index.
func (p Period) DayIndexOf(date time.Time) (int, bool) {
	m, ok := MonthNumber(p.Month)
	if !ok || date.Year() != p.Year || date.Month() != m {
		return 0, false
	}
	d := date.Day()
	if d < p.StartDay || d > p.EndDay {
		return 0, false
	}
	return d - p.StartDay + 1, true
}

// Contains reports whether date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	_, ok := p.DayIndexOf(date)
	return ok
}

// Sort orders periods by year, calendar month, then start day.
func Sort(periods []Period) {
	slices.SortFunc(periods, func(a, b Period) int {
		am, _ := MonthNumber(a.Month)
		bm, _ := MonthNumber(b.Month)
		return cmp.Or(
			cmp.Compare(a.Year, b.Year),
			cmp.Compare(am, bm),
			cmp.Compare(a.StartDay, b.StartDay),
		)
	})
}
