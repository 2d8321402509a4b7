package employee

import "errors"

var (
	ErrInvalidID        = errors.New("employee: invalid id")
	ErrInvalidName      = errors.New("employee: invalid name")
	ErrInvalidEmail     = errors.New("employee: invalid email")
	ErrEmployeeNotFound = errors.New("employee: not found")
	ErrWriteFinished    = errors.New("employee: pending write already finished")
)
