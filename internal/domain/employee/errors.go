package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRequired    = errors.New("email parameter is required")
)
