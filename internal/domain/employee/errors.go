package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmailExists       = errors.New("email already in use")
	ErrIncorrectPassword = errors.New("current password is incorrect")
)
