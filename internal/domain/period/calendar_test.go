package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod_Dates(t *testing.T) {
	p := Period{Year: 2024, Month: "March", StartDay: 1, EndDay: 5}

	days := p.Dates()
	require.Len(t, days, 5)

	want := []struct {
		fullDate string
		weekday  string
		weekend  bool
	}{
		{"2024-03-01", "Fri", false},
		{"2024-03-02", "Sat", true},
		{"2024-03-03", "Sun", true},
		{"2024-03-04", "Mon", false},
		{"2024-03-05", "Tue", false},
	}
	for i, w := range want {
		assert.Equal(t, i+1, days[i].Index)
		assert.Equal(t, i+1, days[i].DayOfMonth)
		assert.Equal(t, "Mar", days[i].Month)
		assert.Equal(t, w.fullDate, days[i].FullDate)
		assert.Equal(t, w.weekday, days[i].Weekday)
		assert.Equal(t, w.weekend, days[i].IsWeekend)
	}
}

func TestPeriod_SecondHalfIndexing(t *testing.T) {
	p := Period{Year: 2024, Month: "february", StartDay: 16, EndDay: 29}
	require.NoError(t, p.Validate())
	assert.Equal(t, 14, p.Len())

	day, err := p.Day(1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-16", day.FullDate)

	last, err := p.Day(14)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", last.FullDate)

	_, err = p.Day(15)
	assert.ErrorIs(t, err, ErrDayIndexOutOfRange)
	_, err = p.Day(0)
	assert.ErrorIs(t, err, ErrDayIndexOutOfRange)

	idx, ok := p.DayIndexOf(time.Date(2024, time.February, 20, 9, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, 5, idx)
	assert.False(t, p.Contains(time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2023, time.February, 20, 0, 0, 0, 0, time.UTC)))
}

func TestPeriod_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    Period
		err  error
	}{
		{"valid", Period{Year: 2024, Month: "April", StartDay: 16, EndDay: 30}, nil},
		{"abbreviated month", Period{Year: 2024, Month: "apr", StartDay: 1, EndDay: 15}, nil},
		{"unknown month", Period{Year: 2024, Month: "Smarch", StartDay: 1, EndDay: 15}, ErrInvalidMonth},
		{"start after end", Period{Year: 2024, Month: "April", StartDay: 16, EndDay: 15}, ErrInvalidDayRange},
		{"past month end", Period{Year: 2023, Month: "February", StartDay: 16, EndDay: 29}, ErrInvalidDayRange},
		{"zero start", Period{Year: 2024, Month: "April", StartDay: 0, EndDay: 15}, ErrInvalidDayRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, tt.p.Dates())
		})
	}
}

func TestCanonicalMonth(t *testing.T) {
	m, ok := CanonicalMonth("sEpTeMbEr")
	assert.True(t, ok)
	assert.Equal(t, "September", m)

	m, ok = CanonicalMonth("dec")
	assert.True(t, ok)
	assert.Equal(t, "December", m)

	_, ok = CanonicalMonth("de")
	assert.False(t, ok)
}

func TestPeriod_NameAndOverlap(t *testing.T) {
	first := Period{Year: 2024, Month: "March", StartDay: 1, EndDay: 15}
	second := Period{Year: 2024, Month: "March", StartDay: 16, EndDay: 31}
	clash := Period{Year: 2024, Month: "Mar", StartDay: 10, EndDay: 20}

	assert.Equal(t, "March 1-15, 2024", first.Name())
	assert.False(t, first.Overlaps(second))
	assert.True(t, first.Overlaps(clash))
	assert.True(t, second.Overlaps(clash))
	assert.False(t, first.Overlaps(Period{Year: 2025, Month: "March", StartDay: 1, EndDay: 15}))
}

func TestSort(t *testing.T) {
	periods := []Period{
		{ID: "c", Year: 2024, Month: "April", StartDay: 1, EndDay: 15},
		{ID: "b", Year: 2024, Month: "March", StartDay: 16, EndDay: 31},
		{ID: "d", Year: 2025, Month: "January", StartDay: 1, EndDay: 15},
		{ID: "a", Year: 2024, Month: "March", StartDay: 1, EndDay: 15},
	}
	Sort(periods)

	var ids []string
	for _, p := range periods {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
}
