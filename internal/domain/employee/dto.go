package employee

import "github.com/cmlabs-hris/attendance-summary-go/internal/pkg/validator"

type UserDetailsRequest struct {
	Email string `json:"email"`
}

func (r *UserDetailsRequest) Validate() error {
	if validator.IsEmpty(r.Email) {
		return ErrEmailRequired
	}
	return nil
}

type UserDetailsResponse struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	EmployeeID string `json:"employee_id,omitempty"`
}
