package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	EmployeeCode string
	Name         string
	Department   Department
	Position     string
	RateType     PayBasis
	DailyRate    *decimal.Decimal
	FixedRate    *decimal.Decimal
	IsActive     bool
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PayBasis selects which rate column is authoritative.
type PayBasis string

const (
	PayBasisDaily PayBasis = "daily"
	PayBasisFixed PayBasis = "fixed"
)

func (b PayBasis) IsValid() bool {
	return b == PayBasisDaily || b == PayBasisFixed
}

// RateInfo is the Employee Rate Registry answer for one employee.
type RateInfo struct {
	Basis  PayBasis
	Amount decimal.Decimal
}

// Rate resolves the active pay basis and amount. It fails with
// ErrInvalidRateConfig when the column for the basis is empty.
func (e Employee) Rate() (RateInfo, error) {
	switch e.RateType {
	case PayBasisDaily:
		if e.DailyRate == nil {
			return RateInfo{}, ErrInvalidRateConfig
		}
		return RateInfo{Basis: PayBasisDaily, Amount: *e.DailyRate}, nil
	case PayBasisFixed:
		if e.FixedRate == nil {
			return RateInfo{}, ErrInvalidRateConfig
		}
		return RateInfo{Basis: PayBasisFixed, Amount: *e.FixedRate}, nil
	default:
		return RateInfo{}, ErrInvalidRateConfig
	}
}

// RateOrZero is Rate for display paths that tolerate misconfigured rows.
func (e Employee) RateOrZero() decimal.Decimal {
	info, err := e.Rate()
	if err != nil {
		return decimal.Zero
	}
	return info.Amount
}

func (e Employee) HasPassword() bool {
	return e.PasswordHash != nil && *e.PasswordHash != ""
}
