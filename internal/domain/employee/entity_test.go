package employee

import (
	"testing"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestEmployee_Rate(t *testing.T) {
	daily := Employee{RateType: PayBasisDaily, DailyRate: dec(500)}
	info, err := daily.Rate()
	require.NoError(t, err)
	assert.Equal(t, PayBasisDaily, info.Basis)
	assert.True(t, info.Amount.Equal(decimal.NewFromInt(500)))

	fixed := Employee{RateType: PayBasisFixed, FixedRate: dec(15000)}
	info, err = fixed.Rate()
	require.NoError(t, err)
	assert.Equal(t, PayBasisFixed, info.Basis)
	assert.True(t, info.Amount.Equal(decimal.NewFromInt(15000)))

	_, err = Employee{RateType: PayBasisDaily, FixedRate: dec(1)}.Rate()
	assert.ErrorIs(t, err, ErrInvalidRateConfig)
	_, err = Employee{RateType: "hourly"}.Rate()
	assert.ErrorIs(t, err, ErrInvalidRateConfig)
	assert.True(t, Employee{RateType: "hourly"}.RateOrZero().IsZero())
}

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		req    CreateEmployeeRequest
		fields []string
	}{
		{
			name: "valid daily",
			req:  CreateEmployeeRequest{Name: "Ana", Department: "office", RateType: "daily", DailyRate: dec(500)},
		},
		{
			name:   "daily without daily rate",
			req:    CreateEmployeeRequest{Name: "Ana", Department: "OFFICE", RateType: "daily", FixedRate: dec(500)},
			fields: []string{"daily_rate"},
		},
		{
			name:   "fixed without fixed rate",
			req:    CreateEmployeeRequest{Name: "Ben", Department: "DRIVER", RateType: "fixed"},
			fields: []string{"fixed_rate"},
		},
		{
			name:   "missing everything",
			req:    CreateEmployeeRequest{},
			fields: []string{"name", "department", "rate_type"},
		},
		{
			name:   "bad code",
			req:    CreateEmployeeRequest{EmployeeCode: "X1", Name: "Ana", Department: "FARM", RateType: "daily", DailyRate: dec(1)},
			fields: []string{"employee_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			for _, f := range tt.fields {
				assert.Contains(t, errs.ToMap(), f)
			}
		})
	}
}

func TestNewFromRequest_KeepsOneRateColumn(t *testing.T) {
	e := NewFromRequest(CreateEmployeeRequest{
		Name: "Ana", Department: "security & custodian", RateType: "fixed",
		DailyRate: dec(500), FixedRate: dec(9000),
	})
	assert.Equal(t, DepartmentSecurity, e.Department)
	assert.Nil(t, e.DailyRate)
	require.NotNil(t, e.FixedRate)
	assert.True(t, e.IsActive)
}

func TestUpdateEmployeeRequest_Apply(t *testing.T) {
	current := Employee{ID: "e1", Name: "Ana", RateType: PayBasisDaily, DailyRate: dec(500), IsActive: true}

	basis := "fixed"
	req := UpdateEmployeeRequest{ID: "e1", RateType: &basis}
	_, err := req.Apply(current)
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "fixed_rate")

	req.FixedRate = dec(12000)
	updated, err := req.Apply(current)
	require.NoError(t, err)
	assert.Equal(t, PayBasisFixed, updated.RateType)
	assert.Nil(t, updated.DailyRate)
	assert.True(t, updated.FixedRate.Equal(decimal.NewFromInt(12000)))
}
