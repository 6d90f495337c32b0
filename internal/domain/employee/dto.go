package employee

import (
	"time"

	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const minPasswordLength = 6

type CreateEmployeeRequest struct {
	EmployeeCode string           `json:"employee_id"`
	Name         string           `json:"name"`
	Department   string           `json:"department"`
	Position     string           `json:"position"`
	RateType     string           `json:"rate_type"`
	DailyRate    *decimal.Decimal `json:"daily_rate"`
	FixedRate    *decimal.Decimal `json:"fixed_rate"`
	Password     *string          `json:"password"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if r.EmployeeCode != "" && !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs.Add("employee_id", "employee_id must look like EMP-001")
	}
	if _, ok := ParseDepartment(r.Department); !ok {
		errs.Add("department", "department must be one of OFFICE, DRIVER, WAREHOUSE, SECURITY & CUSTODIAN, FARM")
	}
	validateRates(&errs, PayBasis(r.RateType), r.DailyRate, r.FixedRate)
	if r.Password != nil && len(*r.Password) < minPasswordLength {
		errs.Add("password", "password must be at least 6 characters")
	}

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID         string           `json:"-"`
	Name       *string          `json:"name"`
	Department *string          `json:"department"`
	Position   *string          `json:"position"`
	RateType   *string          `json:"rate_type"`
	DailyRate  *decimal.Decimal `json:"daily_rate"`
	FixedRate  *decimal.Decimal `json:"fixed_rate"`
	IsActive   *bool            `json:"is_active"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name cannot be empty")
	}
	if r.Department != nil {
		if _, ok := ParseDepartment(*r.Department); !ok {
			errs.Add("department", "department must be one of OFFICE, DRIVER, WAREHOUSE, SECURITY & CUSTODIAN, FARM")
		}
	}
	if r.RateType != nil && !PayBasis(*r.RateType).IsValid() {
		errs.Add("rate_type", "rate_type must be daily or fixed")
	}
	if validator.IsNegative(r.DailyRate) {
		errs.Add("daily_rate", "daily_rate cannot be negative")
	}
	if validator.IsNegative(r.FixedRate) {
		errs.Add("fixed_rate", "fixed_rate cannot be negative")
	}

	return errs.Err()
}

// Apply merges the request into e and enforces the rate invariant on the result.
func (r *UpdateEmployeeRequest) Apply(e Employee) (Employee, error) {
	if r.Name != nil {
		e.Name = *r.Name
	}
	if r.Department != nil {
		e.Department, _ = ParseDepartment(*r.Department)
	}
	if r.Position != nil {
		e.Position = *r.Position
	}
	if r.RateType != nil {
		e.RateType = PayBasis(*r.RateType)
	}
	if r.DailyRate != nil {
		e.DailyRate = r.DailyRate
	}
	if r.FixedRate != nil {
		e.FixedRate = r.FixedRate
	}
	if r.IsActive != nil {
		e.IsActive = *r.IsActive
	}

	var errs validator.ValidationErrors
	validateRates(&errs, e.RateType, e.DailyRate, e.FixedRate)
	if err := errs.Err(); err != nil {
		return Employee{}, err
	}
	e.DailyRate, e.FixedRate = normalizeRates(e.RateType, e.DailyRate, e.FixedRate)
	return e, nil
}

// validateRates enforces that the column for the basis holds a positive amount.
func validateRates(errs *validator.ValidationErrors, basis PayBasis, daily, fixed *decimal.Decimal) {
	switch basis {
	case PayBasisDaily:
		if !validator.IsPositive(daily) {
			errs.Add("daily_rate", "daily_rate is required for daily rate type and must be greater than 0")
		}
	case PayBasisFixed:
		if !validator.IsPositive(fixed) {
			errs.Add("fixed_rate", "fixed_rate is required for fixed rate type and must be greater than 0")
		}
	default:
		errs.Add("rate_type", "rate_type must be daily or fixed")
	}
}

// normalizeRates keeps exactly one rate column populated.
func normalizeRates(basis PayBasis, daily, fixed *decimal.Decimal) (*decimal.Decimal, *decimal.Decimal) {
	if basis == PayBasisDaily {
		return daily, nil
	}
	return nil, fixed
}

// NewFromRequest builds a validated employee ready for persistence.
func NewFromRequest(req CreateEmployeeRequest) Employee {
	dept, _ := ParseDepartment(req.Department)
	basis := PayBasis(req.RateType)
	daily, fixed := normalizeRates(basis, req.DailyRate, req.FixedRate)
	return Employee{
		EmployeeCode: req.EmployeeCode,
		Name:         req.Name,
		Department:   dept,
		Position:     req.Position,
		RateType:     basis,
		DailyRate:    daily,
		FixedRate:    fixed,
		IsActive:     true,
	}
}

type EmployeeFilter struct {
	Department string
	Active     *bool
	Search     string
}

type EmployeeResponse struct {
	ID           string           `json:"id"`
	EmployeeCode string           `json:"employee_id"`
	Name         string           `json:"name"`
	Department   Department       `json:"department"`
	Position     string           `json:"position"`
	RateType     PayBasis         `json:"rate_type"`
	DailyRate    *decimal.Decimal `json:"daily_rate"`
	FixedRate    *decimal.Decimal `json:"fixed_rate"`
	Rate         decimal.Decimal  `json:"rate"`
	IsActive     bool             `json:"is_active"`
	HasPassword  bool             `json:"has_password"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		Name:         e.Name,
		Department:   e.Department,
		Position:     e.Position,
		RateType:     e.RateType,
		DailyRate:    e.DailyRate,
		FixedRate:    e.FixedRate,
		Rate:         e.RateOrZero(),
		IsActive:     e.IsActive,
		HasPassword:  e.HasPassword(),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

type DepartmentGroupsResponse map[Bucket][]EmployeeResponse

type StatsResponse struct {
	Total        int                `json:"total"`
	Active       int                `json:"active"`
	Inactive     int                `json:"inactive"`
	ByDepartment map[Department]int `json:"by_department"`
	ByRateType   map[PayBasis]int   `json:"by_rate_type"`
}

type ResetPasswordRequest struct {
	EmployeeID  string `json:"employee_id"`
	NewPassword string `json:"new_password"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if len(r.NewPassword) < minPasswordLength {
		errs.Add("new_password", "new_password must be at least 6 characters")
	}
	return errs.Err()
}

type UpdatePasswordRequest struct {
	EmployeeID      string `json:"-"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *UpdatePasswordRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if r.CurrentPassword == "" {
		errs.Add("current_password", "current_password is required")
	}
	if len(r.NewPassword) < minPasswordLength {
		errs.Add("new_password", "new_password must be at least 6 characters")
	}
	return errs.Err()
}

type PasswordStatusResponse struct {
	EmployeeID  string `json:"employee_id"`
	HasPassword bool   `json:"has_password"`
}
