package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// GetUserDetails resolves a login email to the employee's display identity
	GetUserDetails(ctx context.Context, req UserDetailsRequest) (UserDetailsResponse, error)
}
