package period

import (
	"errors"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/validator"
)

type CreatePeriodRequest struct {
	Year     int    `json:"year"`
	Month    string `json:"month"`
	StartDay int    `json:"start_day"`
	EndDay   int    `json:"end_day"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs.Add("year", "year must be between 2000 and 2100")
	}
	err := Period{Year: r.Year, Month: r.Month, StartDay: r.StartDay, EndDay: r.EndDay}.Validate()
	switch {
	case errors.Is(err, ErrInvalidMonth):
		errs.Add("month", "month must be an English month name")
	case errors.Is(err, ErrInvalidDayRange):
		errs.Add("end_day", ErrInvalidDayRange.Error())
	}

	return errs.Err()
}

type PeriodResponse struct {
	ID          string `json:"id"`
	Year        int    `json:"year"`
	Month       string `json:"month"`
	StartDay    int    `json:"start_day"`
	EndDay      int    `json:"end_day"`
	PeriodName  string `json:"period_name"`
	DisplayName string `json:"display_name"`
	DayCount    int    `json:"day_count"`
}

func ToResponse(p Period) PeriodResponse {
	return PeriodResponse{
		ID:          p.ID,
		Year:        p.Year,
		Month:       p.Month,
		StartDay:    p.StartDay,
		EndDay:      p.EndDay,
		PeriodName:  p.Name(),
		DisplayName: p.Name(),
		DayCount:    p.Len(),
	}
}

type DatesResponse struct {
	Period PeriodResponse `json:"period"`
	Dates  []Day          `json:"dates"`
}
