package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrInvalidRateConfig  = errors.New("employee rate configuration is invalid")
	ErrPasswordNotSet     = errors.New("employee password has not been set")
	ErrInvalidPassword    = errors.New("current password is incorrect")
)
