package errors

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrInvalidData = errors.New("invalid data type")
)
