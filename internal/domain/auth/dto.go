package auth

import (
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-payroll-go/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	// Username
	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}
	if len(r.Username) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must not exceed 50 characters",
		})
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginEmployeeCodeRequest struct {
	EmployeeCode string `json:"employee_id"`
	Password     string `json:"password"`
}

func (r *LoginEmployeeCodeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TokenResponse struct {
	AccessToken          string                     `json:"access_token"`
	AccessTokenExpiresIn int64                      `json:"access_token_expires_in"`
	User                 *user.UserResponse         `json:"user,omitempty"`
	Employee             *employee.EmployeeResponse `json:"employee,omitempty"`
}

// Principal is the authenticated caller as carried by the access token.
type Principal struct {
	ID       string
	Username string
	Role     user.Role
}

type MeResponse struct {
	Role     user.Role                  `json:"role"`
	User     *user.UserResponse         `json:"user,omitempty"`
	Employee *employee.EmployeeResponse `json:"employee,omitempty"`
}
