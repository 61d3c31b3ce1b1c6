package attendance

import "errors"

// Attendance domain errors
var (
	ErrEmployeeIDRequired = errors.New("employee_id is required")
	ErrInvalidDate        = errors.New("date must be in YYYY-MM-DD format")
)
